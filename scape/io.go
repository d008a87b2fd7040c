package scape

import (
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// hfMagic identifies a binary height-field file; hfVersion gates format
// compatibility. Grounded on detour/reader.go's Decode, which validates an
// identical magic+version pair before trusting the rest of the stream.
const (
	hfMagic   uint32 = 0x53544e54 // "TNTS"
	hfVersion uint16 = 1
)

// hfHeader is the fixed-size binary preamble of a height-field file.
type hfHeader struct {
	Magic    uint32
	Version  uint16
	HasColor uint8
	_        uint8 // padding
	Width    int32
	Height   int32
}

// WriteHeightField encodes hf to w in this package's native binary format:
// a fixed header followed by the row-major elevation array and, if hf has
// a texture, the row-major color array.
func WriteHeightField(w io.Writer, hf *HeightField) error {
	hdr := hfHeader{Magic: hfMagic, Version: hfVersion, Width: hf.Width, Height: hf.Height}
	if hf.HasTexture() {
		hdr.HasColor = 1
	}
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, hf.elevation); err != nil {
		return err
	}
	if hf.HasTexture() {
		if err := binary.Write(w, binary.LittleEndian, hf.color); err != nil {
			return err
		}
	}
	return nil
}

// ReadHeightField decodes a HeightField previously written by
// WriteHeightField.
func ReadHeightField(r io.Reader) (*HeightField, error) {
	var hdr hfHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputMalformed, err)
	}
	if hdr.Magic != hfMagic {
		return nil, fmt.Errorf("%w: bad magic %#x", ErrInputMalformed, hdr.Magic)
	}
	if hdr.Version != hfVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInputMalformed, hdr.Version)
	}
	if hdr.Width <= 0 || hdr.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrInputMalformed, hdr.Width, hdr.Height)
	}

	n := int(hdr.Width) * int(hdr.Height)
	elev := make([]uint16, n)
	if err := binary.Read(r, binary.LittleEndian, elev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputMalformed, err)
	}

	var tex []Color
	if hdr.HasColor != 0 {
		tex = make([]Color, n)
		if err := binary.Read(r, binary.LittleEndian, tex); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInputMalformed, err)
		}
	}

	return NewHeightField(hdr.Width, hdr.Height, elev, tex)
}

// LoadHeightFieldFile opens path and decodes a HeightField from it.
func LoadHeightFieldFile(path string) (*HeightField, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputMalformed, err)
	}
	defer f.Close()
	return ReadHeightField(f)
}

// LoadTextureImage decodes a PNG, JPEG, BMP or TIFF image from path and
// returns it as a row-major Color array matching (width, height) exactly;
// ErrInputMalformed if its dimensions differ.
func LoadTextureImage(path string, width, height int32) ([]Color, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputMalformed, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputMalformed, err)
	}
	b := img.Bounds()
	if int32(b.Dx()) != width || int32(b.Dy()) != height {
		return nil, fmt.Errorf("%w: texture %dx%d does not match height field %dx%d", ErrInputMalformed, b.Dx(), b.Dy(), width, height)
	}

	tex := make([]Color, int(width)*int(height))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bb, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			tex[y*int(width)+x] = Color{
				R: float32(r) / 0xffff,
				G: float32(g) / 0xffff,
				B: float32(bb) / 0xffff,
			}
		}
	}
	return tex, nil
}
