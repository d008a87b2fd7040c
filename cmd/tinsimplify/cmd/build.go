package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arl/tinsimplify/sample/terrainmesh"
	"github.com/arl/tinsimplify/scape"
)

var (
	buildCfgVal     string
	buildInputVal   string
	buildTextureVal string
)

// buildCmd represents the build command.
var buildCmd = &cobra.Command{
	Use:   "build OUTFILE",
	Short: "build a simplified terrain mesh from a height field",
	Long: `Build a simplified triangulated irregular network mesh from a
binary height field. Build process is controlled by the provided build
settings. The resulting mesh is saved to OUTFILE in OBJ format.`,
	Run: runBuild,
}

func init() {
	RootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildCfgVal, "config", "tinsimplify.yml", "build settings")
	buildCmd.Flags().StringVar(&buildInputVal, "input", "", "input height field file (required)")
	buildCmd.Flags().StringVar(&buildTextureVal, "texture", "", "optional texture image (PNG, JPEG, BMP or TIFF)")
}

func runBuild(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		fmt.Println("error, exactly one OUTFILE argument is required")
		os.Exit(2)
	}
	outfile := args[0]

	if err := fileExists(buildInputVal); err != nil {
		fmt.Println("error,", err)
		os.Exit(2)
	}

	yc := defaultYAMLConfig()
	if err := fileExists(buildCfgVal); err == nil {
		if err := unmarshalYAMLFile(buildCfgVal, &yc); err != nil {
			fmt.Println("error, invalid build settings:", err)
			os.Exit(2)
		}
	}
	settings, err := yc.toSettings()
	if err != nil {
		fmt.Println("error, invalid build settings:", err)
		os.Exit(2)
	}

	ctx := scape.NewBuildContext(true, int(yc.Debug))
	b := terrainmesh.New(ctx)
	b.SetSettings(settings)

	if err := b.LoadHeightField(buildInputVal, buildTextureVal); err != nil {
		fmt.Println("error,", err)
		os.Exit(scape.ExitCode(err))
	}

	mesh, err := b.Build()
	if err != nil {
		fmt.Println("error,", err)
		os.Exit(scape.ExitCode(err))
	}

	if err := scape.WriteOBJFile(outfile, mesh); err != nil {
		fmt.Println("error,", err)
		os.Exit(1)
	}

	for i := 0; i < ctx.LogCount(); i++ {
		fmt.Println(ctx.LogText(i))
	}
	fmt.Printf("mesh written to '%s'\n", outfile)
	os.Exit(0)
}
