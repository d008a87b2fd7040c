package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "tinsimplify",
	Short: "build simplified terrain meshes",
	Long: `This is the command-line application accompanying tinsimplify:
	- build simplified triangulated irregular network meshes from height fields,
	- save them to OBJ files,
	- easily tweak build settings (YAML files),
	- show info about a height field.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
