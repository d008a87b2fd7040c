package scape

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteOBJBootstrapMesh(t *testing.T) {
	hf := flatHeightField(t, 4, 4, 2)
	sub := NewSubdivision(4, 4)
	mesh := NewTriMesh(sub, hf)

	var buf bytes.Buffer
	check(t, WriteOBJ(&buf, mesh))

	var nv, nf int
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		switch {
		case strings.HasPrefix(line, "v "):
			nv++
		case strings.HasPrefix(line, "f "):
			nf++
		}
	}
	if nv != int(mesh.NVerts) {
		t.Fatalf("got %d v lines want %d", nv, mesh.NVerts)
	}
	if nf != int(mesh.NTris) {
		t.Fatalf("got %d f lines want %d", nf, mesh.NTris)
	}
}

func TestWriteOBJFaceIndicesAreOneIndexed(t *testing.T) {
	hf := flatHeightField(t, 4, 4, 2)
	sub := NewSubdivision(4, 4)
	mesh := NewTriMesh(sub, hf)

	var buf bytes.Buffer
	check(t, WriteOBJ(&buf, mesh))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if !strings.HasPrefix(line, "f ") {
			continue
		}
		for _, field := range strings.Fields(line)[1:] {
			if field == "0" {
				t.Fatalf("OBJ face indices must be 1-indexed, got a 0 in line %q", line)
			}
		}
	}
}
