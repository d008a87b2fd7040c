package scape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planarHeightField(t *testing.T, w, h int32, f func(x, y int32) float32) *HeightField {
	t.Helper()
	elev := make([]uint16, w*h)
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			elev[y*w+x] = uint16(f(x, y))
		}
	}
	hf, err := NewHeightField(w, h, elev, nil)
	require.NoError(t, err)
	return hf
}

func TestNewSimplifierMarksCornersUsed(t *testing.T) {
	hf := flatHeightField(t, 4, 4, 2)
	s, err := NewSimplifier(hf, DefaultConfig(), nil)
	require.NoError(t, err)

	assert.True(t, s.IsUsedInterp(0, 0), "origin corner must be used")
	assert.True(t, s.IsUsedInterp(3, 0), "width corner must be used")
	assert.True(t, s.IsUsedInterp(3, 3), "far corner must be used")
	assert.True(t, s.IsUsedInterp(0, 3), "height corner must be used")
}

func TestFlatFieldTerminatesImmediately(t *testing.T) {
	hf := flatHeightField(t, 8, 8, 4)
	cfg := DefaultConfig()
	cfg.Thresh = 0.5
	s, err := NewSimplifier(hf, cfg, nil)
	require.NoError(t, err)

	n, err := s.SelectNewPoints(0)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "a perfectly flat field should need no extra vertices")
	assert.Equal(t, float32(0), s.MaxError(), "flat field max error should be zero")
}

func TestPlanarRampReconstructsWithFewPoints(t *testing.T) {
	hf := planarHeightField(t, 10, 10, func(x, y int32) float32 { return float32(x) * 5 })
	cfg := DefaultConfig()
	cfg.Thresh = 0.5
	s, err := NewSimplifier(hf, cfg, nil)
	require.NoError(t, err)

	n, err := s.SelectNewPoints(0)
	require.NoError(t, err)
	assert.LessOrEqual(t, n, 4, "a perfectly planar ramp should reconstruct with very few extra vertices")
	assert.LessOrEqual(t, s.MaxError(), float32(0.5), "max error must respect Thresh")
}

func TestSpikeGetsInserted(t *testing.T) {
	w, h := int32(8), int32(8)
	elev := make([]uint16, w*h)
	elev[4*w+4] = 100
	hf, err := NewHeightField(w, h, elev, nil)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Limit = 1
	s, err := NewSimplifier(hf, cfg, nil)
	require.NoError(t, err)

	n, err := s.SelectNewPoints(0)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "Limit=1 must cap insertion at exactly one vertex")
	assert.Equal(t, 1, s.NumInserted())
}

func TestSelectNewPointsRespectsLimitArgument(t *testing.T) {
	w, h := int32(10), int32(10)
	elev := make([]uint16, w*h)
	for i := range elev {
		elev[i] = uint16(i % 17)
	}
	hf, err := NewHeightField(w, h, elev, nil)
	require.NoError(t, err)

	s, err := NewSimplifier(hf, DefaultConfig(), nil)
	require.NoError(t, err)

	n, err := s.SelectNewPoints(3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, s.NumInserted())
}

func TestDataDependentSwapPassProducesValidTopology(t *testing.T) {
	w, h := int32(12), int32(12)
	elev := make([]uint16, w*h)
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			v := float32(x)*3 + float32(y)*2
			if x == 6 && y == 6 {
				v += 50
			}
			elev[y*w+x] = uint16(v)
		}
	}
	hf, err := NewHeightField(w, h, elev, nil)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.DataDependent = true
	cfg.Limit = 5
	s, err := NewSimplifier(hf, cfg, nil)
	require.NoError(t, err)

	_, err = s.SelectNewPoints(0)
	require.NoError(t, err)

	eulerCheck(t, s.Subdivision())
}

func TestRMSErrorNeverExceedsMaxError(t *testing.T) {
	w, h := int32(10), int32(10)
	elev := make([]uint16, w*h)
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			elev[y*w+x] = uint16((x*7 + y*3) % 23)
		}
	}
	hf, err := NewHeightField(w, h, elev, nil)
	require.NoError(t, err)

	s, err := NewSimplifier(hf, DefaultConfig(), nil)
	require.NoError(t, err)
	_, err = s.SelectNewPoints(5)
	require.NoError(t, err)

	assert.LessOrEqual(t, s.RMSError(), s.MaxError()+1e-3, "RMS error must not exceed max error")
}

func TestSelectNewPointExhaustsToHeapEmpty(t *testing.T) {
	hf := flatHeightField(t, 3, 3, 1)
	s, err := NewSimplifier(hf, DefaultConfig(), nil)
	require.NoError(t, err)

	_, err = s.SelectNewPoint()
	assert.ErrorIs(t, err, ErrHeapEmpty, "a 3x3 flat field has zero error everywhere, so no candidate exceeds Thresh")
}
