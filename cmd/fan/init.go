package fan

import (
	"github.com/markusressel/emcfan/internal/ui"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Runs the initialization sequence for the fan",
	Long:  `Writes the max step, fan configuration 1 and fan configuration 2 registers of the EMC2301.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		fan, err := getFan()
		if err != nil {
			return err
		}
		defer closeFan(fan, &err)

		if err = fan.Configure(); err != nil {
			return err
		}

		ui.Success("Done!")
		return nil
	},
}

func init() {
	Command.AddCommand(initCmd)
}
