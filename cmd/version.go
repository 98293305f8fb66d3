package cmd

import (
	"github.com/markusressel/emcfan/internal/ui"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of emcfan",
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln(Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
