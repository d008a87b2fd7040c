package scape

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/arl/gobj"
)

// WriteOBJ writes mesh as a Wavefront OBJ text file: one "v" line per
// vertex, one "f" line (1-indexed, as OBJ requires) per triangle.
//
// gobj only decodes OBJ files; each mesh vertex is converted to a gobj
// Vertex just before its "v" line is printed, while TriMesh itself keeps
// its own vertex type. The encoder itself is original to this package.
func WriteOBJ(w io.Writer, mesh *TriMesh) error {
	bw := bufio.NewWriter(w)

	for _, v := range mesh.Verts {
		gv := gobj.NewVertex3D(float64(v.X()), float64(v.Y()), float64(v.Z()))
		if _, err := fmt.Fprintf(bw, "v %g %g %g\n", gv.X(), gv.Y(), gv.Z()); err != nil {
			return err
		}
	}
	for i := int32(0); i < mesh.NTris; i++ {
		base := 3 * i
		a, b, c := mesh.Tris[base]+1, mesh.Tris[base+1]+1, mesh.Tris[base+2]+1
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", a, b, c); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteOBJFile creates path and writes mesh to it as an OBJ file.
func WriteOBJFile(path string, mesh *TriMesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteOBJ(f, mesh)
}
