package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pocket8/eightball/cmd/eightball/internal/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(*cobra.Command, []string) {
		fmt.Println(build.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
