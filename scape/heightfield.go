package scape

import "github.com/arl/math32"

// NoData is the elevation sentinel marking "no sample here"; it must be
// ignored by scan conversion and never becomes a candidate (spec.md §3).
const NoData uint16 = 65535

// Color is a 3-channel real-valued sample, one per grid cell, used when a
// HeightField carries a texture.
type Color struct {
	R, G, B float32
}

// HeightField is a read-only regularly sampled grid of elevations with an
// optional per-sample color texture. It is loaded once and never mutated
// by the simplifier; scan routines only read from it.
//
// Grounded on original_source/hfield.H's HField, generalized from the
// original's global DEMdata/RealTexture pair into a single struct owning
// both arrays directly (row-major, index = y*Width+x).
type HeightField struct {
	Width, Height int32

	elevation []uint16
	color     []Color // nil if the field has no texture

	zmin, zmax float32
}

// NewHeightField allocates a HeightField of the given dimensions. elev must
// have exactly width*height elements in row-major order; tex, if non-nil,
// must have the same length.
func NewHeightField(width, height int32, elev []uint16, tex []Color) (*HeightField, error) {
	n := int(width) * int(height)
	if width <= 0 || height <= 0 || len(elev) != n {
		return nil, ErrInputMalformed
	}
	if tex != nil && len(tex) != n {
		return nil, ErrInputMalformed
	}

	hf := &HeightField{
		Width:     width,
		Height:    height,
		elevation: elev,
		color:     tex,
	}
	hf.computeZRange()
	return hf, nil
}

func (hf *HeightField) computeZRange() {
	hf.zmin, hf.zmax = math32.MaxFloat32, -math32.MaxFloat32
	found := false
	for _, v := range hf.elevation {
		if v == NoData {
			continue
		}
		z := float32(v)
		if !found || z < hf.zmin {
			hf.zmin = z
		}
		if !found || z > hf.zmax {
			hf.zmax = z
		}
		found = true
	}
	if !found {
		hf.zmin, hf.zmax = 0, 0
	}
}

// HasTexture reports whether the field carries a color texture.
func (hf *HeightField) HasTexture() bool { return hf.color != nil }

// ZMin returns the minimum elevation among all non-NoData samples.
func (hf *HeightField) ZMin() float32 { return hf.zmin }

// ZMax returns the maximum elevation among all non-NoData samples.
func (hf *HeightField) ZMax() float32 { return hf.zmax }

func (hf *HeightField) inBounds(x, y int32) bool {
	return x >= 0 && x < hf.Width && y >= 0 && y < hf.Height
}

func (hf *HeightField) index(x, y int32) int { return int(y)*int(hf.Width) + int(x) }

// RawElevation returns the unmodified elevation sample at (x, y), including
// the NoData sentinel if present. Out-of-bounds coordinates return NoData.
func (hf *HeightField) RawElevation(x, y int32) uint16 {
	if !hf.inBounds(x, y) {
		return NoData
	}
	return hf.elevation[hf.index(x, y)]
}

// IsNoData reports whether sample (x, y) is the no-data sentinel.
func (hf *HeightField) IsNoData(x, y int32) bool {
	return hf.RawElevation(x, y) == NoData
}

// Eval returns the elevation at integer coordinates (x, y). Out-of-bounds
// coordinates clamp to ZMin, matching original_source/hfield.H's eval().
func (hf *HeightField) Eval(x, y int32) float32 {
	if !hf.inBounds(x, y) {
		return hf.zmin
	}
	v := hf.elevation[hf.index(x, y)]
	if v == NoData {
		return hf.zmin
	}
	return float32(v)
}

// Color3 returns the color at integer coordinates (x, y), or (0,0,0) if the
// field has no texture or the coordinates are out of bounds.
func (hf *HeightField) Color3(x, y int32) Color {
	if hf.color == nil || !hf.inBounds(x, y) {
		return Color{}
	}
	return hf.color[hf.index(x, y)]
}

// EvalInterp bilinearly interpolates the elevation at real coordinates
// (x, y). Corners are read through Eval, so a NoData or out-of-bounds
// corner enters the interpolation as ZMin.
func (hf *HeightField) EvalInterp(x, y float32) float32 {
	x0 := math32.Floor(x)
	y0 := math32.Floor(y)
	fx := x - x0
	fy := y - y0
	ix, iy := int32(x0), int32(y0)

	z00 := hf.Eval(ix, iy)
	z10 := hf.Eval(ix+1, iy)
	z01 := hf.Eval(ix, iy+1)
	z11 := hf.Eval(ix+1, iy+1)

	top := z00 + (z10-z00)*fx
	bot := z01 + (z11-z01)*fx
	return top + (bot-top)*fy
}

// ColorInterp bilinearly interpolates the color at real coordinates
// (x, y).
func (hf *HeightField) ColorInterp(x, y float32) Color {
	if hf.color == nil {
		return Color{}
	}
	x0 := math32.Floor(x)
	y0 := math32.Floor(y)
	fx := x - x0
	fy := y - y0
	ix, iy := int32(x0), int32(y0)

	c00 := hf.Color3(ix, iy)
	c10 := hf.Color3(ix+1, iy)
	c01 := hf.Color3(ix, iy+1)
	c11 := hf.Color3(ix+1, iy+1)

	lerp := func(a, b, t float32) float32 { return a + (b-a)*t }
	top := Color{lerp(c00.R, c10.R, fx), lerp(c00.G, c10.G, fx), lerp(c00.B, c10.B, fx)}
	bot := Color{lerp(c01.R, c11.R, fx), lerp(c01.G, c11.G, fx), lerp(c01.B, c11.B, fx)}
	return Color{lerp(top.R, bot.R, fy), lerp(top.G, bot.G, fy), lerp(top.B, bot.B, fy)}
}

// Vec3At returns the 3D position of grid sample (x, y).
func (hf *HeightField) Vec3At(x, y int32) Vec3 {
	return NewVec3(float32(x), float32(y), hf.Eval(x, y))
}
