// Package terrainmesh provides a friendlier, defaulted wrapper around
// scape.Simplifier, in the shape of sample/solomesh's Settings/SoloMesh
// split: a low-level scape.Config mirrors recast.Config, while Settings
// here mirrors solomesh.Settings's named, pre-defaulted fields.
package terrainmesh

import "github.com/arl/tinsimplify/scape"

// Settings contains all the settings required to build a simplified
// terrain mesh from a height field.
type Settings struct {
	// Refinement control
	limit      int32
	thresh     float32
	qualThresh float32
	alpha      float32

	// Error metric
	emphasis   float32
	criterion  scape.Criterion
	areaThresh float32

	// Triangulation mode
	dataDependent bool

	debug int32
}

// NewSettings returns a new Settings struct filled with default values,
// equivalent to scape.DefaultConfig.
func NewSettings() Settings {
	return Settings{
		limit:         0,
		thresh:        0,
		qualThresh:    0.5,
		alpha:         0.3,
		emphasis:      0,
		criterion:     scape.CriterionMAXINF,
		areaThresh:    1e30,
		dataDependent: false,
		debug:         0,
	}
}

// SettingsValues is the plain, exported-field mirror of Settings, used at
// package boundaries (such as the CLI's YAML config file) that need to
// construct a Settings value without reaching into its unexported fields.
type SettingsValues struct {
	Limit         int32
	Thresh        float32
	QualThresh    float32
	Alpha         float32
	Emphasis      float32
	Criterion     scape.Criterion
	AreaThresh    float32
	DataDependent bool
	Debug         int32
}

// NewSettingsFrom returns a Settings built from v.
func NewSettingsFrom(v SettingsValues) Settings {
	return Settings{
		limit:         v.Limit,
		thresh:        v.Thresh,
		qualThresh:    v.QualThresh,
		alpha:         v.Alpha,
		emphasis:      v.Emphasis,
		criterion:     v.Criterion,
		areaThresh:    v.AreaThresh,
		dataDependent: v.DataDependent,
		debug:         v.Debug,
	}
}

func (s Settings) toConfig() scape.Config {
	return scape.Config{
		Emphasis:      s.emphasis,
		DataDependent: s.dataDependent,
		QualThresh:    s.qualThresh,
		Criterion:     s.criterion,
		AreaThresh:    s.areaThresh,
		Limit:         int(s.limit),
		Thresh:        s.thresh,
		Alpha:         s.alpha,
		Debug:         int(s.debug),
	}
}
