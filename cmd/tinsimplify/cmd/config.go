package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arl/tinsimplify/sample/terrainmesh"
	"github.com/arl/tinsimplify/scape"
)

// yamlConfig is the on-disk YAML shape of a build settings file; it exists
// only at the CLI boundary so that terrainmesh.Settings can keep its
// fields unexported like solomesh.Settings does.
type yamlConfig struct {
	Limit         int32   `yaml:"limit"`
	Thresh        float32 `yaml:"thresh"`
	QualThresh    float32 `yaml:"qual_thresh"`
	Alpha         float32 `yaml:"alpha"`
	Emphasis      float32 `yaml:"emphasis"`
	Criterion     string  `yaml:"criterion"`
	AreaThresh    float32 `yaml:"area_thresh"`
	DataDependent bool    `yaml:"data_dependent"`
	Debug         int32   `yaml:"debug"`
}

func defaultYAMLConfig() yamlConfig {
	return yamlConfig{
		Limit:         0,
		Thresh:        0,
		QualThresh:    0.5,
		Alpha:         0.3,
		Emphasis:      0,
		Criterion:     "maxinf",
		AreaThresh:    1e30,
		DataDependent: false,
		Debug:         0,
	}
}

func criterionFromString(s string) (scape.Criterion, error) {
	switch s {
	case "suminf":
		return scape.CriterionSUMINF, nil
	case "maxinf", "":
		return scape.CriterionMAXINF, nil
	case "sum2":
		return scape.CriterionSUM2, nil
	case "abn":
		return scape.CriterionABN, nil
	default:
		return 0, fmt.Errorf("unknown criterion %q, want one of suminf, maxinf, sum2, abn", s)
	}
}

func (c yamlConfig) toSettings() (terrainmesh.Settings, error) {
	criterion, err := criterionFromString(c.Criterion)
	if err != nil {
		return terrainmesh.Settings{}, err
	}
	return terrainmesh.NewSettingsFrom(terrainmesh.SettingsValues{
		Limit:         c.Limit,
		Thresh:        c.Thresh,
		QualThresh:    c.QualThresh,
		Alpha:         c.Alpha,
		Emphasis:      c.Emphasis,
		Criterion:     criterion,
		AreaThresh:    c.AreaThresh,
		DataDependent: c.DataDependent,
		Debug:         c.Debug,
	}), nil
}

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:   "config FILE",
	Short: "create a build settings file",
	Long: `Create a build settings file in YAML format, prefilled with default values.

If FILE is not provided, 'tinsimplify.yml' is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := "tinsimplify.yml"
		if len(args) >= 1 {
			path = args[0]
		}
		ok, err := confirmIfExists(path, fmt.Sprintf("file name %s already exists, overwrite? [y/N]", path))
		if !ok {
			if err == nil {
				fmt.Println("aborted by user...")
			} else {
				fmt.Println("aborted,", err)
			}
			return
		}
		if err := marshalYAMLFile(path, defaultYAMLConfig()); err != nil {
			fmt.Println("error,", err)
			return
		}
		fmt.Printf("build settings written to '%s'\n", path)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}
