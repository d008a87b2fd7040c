package terrainmesh

import (
	"fmt"

	"github.com/arl/tinsimplify/scape"
)

// Builder drives a full terrain-mesh build: it loads a height field, runs
// the greedy-insertion simplifier to the configured stopping point, and
// produces an output TriMesh.
//
// Grounded on sample/solomesh.SoloMesh's shape: settings held alongside a
// BuildContext, Build() staged with timers and progress logging.
type Builder struct {
	ctx      *scape.BuildContext
	settings Settings
	hf       *scape.HeightField
	simp     *scape.Simplifier
}

// New creates a Builder with default settings.
func New(ctx *scape.BuildContext) *Builder {
	return &Builder{ctx: ctx, settings: NewSettings()}
}

// SetSettings sets the build settings for this builder.
func (b *Builder) SetSettings(s Settings) { b.settings = s }

// LoadHeightField loads the height field to simplify from path, and
// optionally a texture image from texturePath ("" for none).
func (b *Builder) LoadHeightField(path, texturePath string) error {
	hf, err := scape.LoadHeightFieldFile(path)
	if err != nil {
		return err
	}
	if texturePath != "" {
		tex, err := scape.LoadTextureImage(texturePath, hf.Width, hf.Height)
		if err != nil {
			return err
		}
		hf, err = scape.NewHeightField(hf.Width, hf.Height, rawElevations(hf), tex)
		if err != nil {
			return err
		}
	}
	b.hf = hf
	return nil
}

// rawElevations extracts hf's elevation samples in row-major order, used
// to rebuild a HeightField once its texture is known.
func rawElevations(hf *scape.HeightField) []uint16 {
	out := make([]uint16, int(hf.Width)*int(hf.Height))
	i := 0
	for y := int32(0); y < hf.Height; y++ {
		for x := int32(0); x < hf.Width; x++ {
			out[i] = hf.RawElevation(x, y)
			i++
		}
	}
	return out
}

// Simplifier returns the builder's simplifier, valid only after Build has
// been called.
func (b *Builder) Simplifier() *scape.Simplifier { return b.simp }

// Build runs the greedy-insertion refinement loop to the stopping point
// configured by Settings (Limit and/or Thresh) and returns the resulting
// mesh.
func (b *Builder) Build() (*scape.TriMesh, error) {
	if b.hf == nil {
		return nil, fmt.Errorf("terrainmesh: no height field loaded")
	}

	//
	// Step 1. Initialize build config.
	//
	cfg := b.settings.toConfig()

	b.ctx.ResetTimers()
	b.ctx.StartTimer(scape.TimerTotal)

	b.ctx.Progressf("Building terrain mesh:")
	b.ctx.Progressf(" - %d x %d samples", b.hf.Width, b.hf.Height)
	b.ctx.Progressf(" - data dependent: %v, criterion: %v", cfg.DataDependent, cfg.Criterion)

	//
	// Step 2. Construct the simplifier and seed the candidate heap.
	//
	simp, err := scape.NewSimplifier(b.hf, cfg, b.ctx)
	if err != nil {
		return nil, err
	}
	b.simp = simp

	//
	// Step 3. Run greedy-insertion refinement to the configured stopping
	// point.
	//
	inserted, err := simp.SelectNewPoints(0)
	if err != nil {
		return nil, err
	}
	b.ctx.Progressf(" - inserted %d vertices", inserted)

	//
	// Step 4. Build the output mesh from the final subdivision.
	//
	mesh := scape.NewTriMesh(simp.Subdivision(), b.hf)

	b.ctx.StopTimer(scape.TimerTotal)
	b.ctx.Progressf(">> TriMesh: %d vertices, %d triangles", mesh.NVerts, mesh.NTris)
	b.ctx.Progressf(">> RMS error: %.4f, max error: %.4f", simp.RMSErrorEstimate(), simp.MaxError())

	return mesh, nil
}
