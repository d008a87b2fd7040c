package scape

import (
	"bytes"
	"testing"
)

func TestWriteReadHeightFieldRoundTrip(t *testing.T) {
	elev := []uint16{1, 2, 3, NoData, 5, 6}
	hf, err := NewHeightField(3, 2, elev, nil)
	check(t, err)

	var buf bytes.Buffer
	check(t, WriteHeightField(&buf, hf))

	got, err := ReadHeightField(&buf)
	check(t, err)

	if got.Width != hf.Width || got.Height != hf.Height {
		t.Fatalf("got dims %dx%d want %dx%d", got.Width, got.Height, hf.Width, hf.Height)
	}
	for y := int32(0); y < hf.Height; y++ {
		for x := int32(0); x < hf.Width; x++ {
			if got.RawElevation(x, y) != hf.RawElevation(x, y) {
				t.Fatalf("mismatch at (%d,%d): got %d want %d", x, y, got.RawElevation(x, y), hf.RawElevation(x, y))
			}
		}
	}
	if got.HasTexture() {
		t.Fatal("round-tripped field must not gain a texture")
	}
}

func TestWriteReadHeightFieldWithTextureRoundTrip(t *testing.T) {
	tex := []Color{{R: 0.1, G: 0.2, B: 0.3}, {R: 0.4, G: 0.5, B: 0.6}, {}, {}}
	hf, err := NewHeightField(2, 2, []uint16{1, 2, 3, 4}, tex)
	check(t, err)

	var buf bytes.Buffer
	check(t, WriteHeightField(&buf, hf))

	got, err := ReadHeightField(&buf)
	check(t, err)

	if !got.HasTexture() {
		t.Fatal("round-tripped field must keep its texture")
	}
	if got.Color3(0, 0) != (Color{R: 0.1, G: 0.2, B: 0.3}) {
		t.Fatalf("got color %v want {0.1 0.2 0.3}", got.Color3(0, 0))
	}
}

func TestReadHeightFieldRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0})
	_, err := ReadHeightField(&buf)
	if err == nil {
		t.Fatal("expected an error for bad magic")
	}
}

func TestReadHeightFieldRejectsTruncatedStream(t *testing.T) {
	hf := flatHeightField(t, 3, 3, 1)
	var buf bytes.Buffer
	check(t, WriteHeightField(&buf, hf))

	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-4])
	if _, err := ReadHeightField(truncated); err == nil {
		t.Fatal("expected an error for a truncated stream")
	}
}

func TestLoadHeightFieldFileMissingPath(t *testing.T) {
	if _, err := LoadHeightFieldFile("/nonexistent/path/to/a/heightfield.bin"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
