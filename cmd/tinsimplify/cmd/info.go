package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arl/tinsimplify/scape"
)

// infoCmd represents the info command.
var infoCmd = &cobra.Command{
	Use:   "info HEIGHTFIELD",
	Short: "show info about a height field file",
	Long: `Read a height field from binary file, check the data for
consistency, then print information on standard output.`,
	Run: runInfo,
}

func init() {
	RootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		fmt.Println("error, exactly one HEIGHTFIELD argument is required")
		os.Exit(2)
	}

	hf, err := scape.LoadHeightFieldFile(args[0])
	if err != nil {
		fmt.Println("error,", err)
		os.Exit(scape.ExitCode(err))
	}

	fmt.Printf("dimensions : %d x %d\n", hf.Width, hf.Height)
	fmt.Printf("has texture: %v\n", hf.HasTexture())
	fmt.Printf("z range    : [%.3f, %.3f]\n", hf.ZMin(), hf.ZMax())
	os.Exit(0)
}
