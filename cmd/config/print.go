package config

import (
	"fmt"

	"github.com/markusressel/emcfan/cmd/global"
	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Prints the effective configuration including default values",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global.LoadConfig()

		out, err := yaml.Marshal(configuration.CurrentConfig)
		if err != nil {
			return fmt.Errorf("unable to render configuration: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	Command.AddCommand(printCmd)
}
