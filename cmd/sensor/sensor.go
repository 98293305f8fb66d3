package sensor

import (
	"fmt"

	"github.com/markusressel/emcfan/cmd/global"
	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/markusressel/emcfan/internal/sensors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "sensor",
	Short: "Print the current value of the temperature sensor",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global.LoadConfig()
		pterm.DisableOutput()

		sensor, err := sensors.NewSensor(configuration.CurrentConfig.Sensor)
		if err != nil {
			return err
		}

		value, err := sensor.GetValue()
		if err != nil {
			return err
		}
		fmt.Printf("%.2f\n", value)
		return nil
	},
}
