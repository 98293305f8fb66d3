package curve

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/emcfan/cmd/global"
	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/markusressel/emcfan/internal/curves"
	"github.com/markusressel/emcfan/internal/ui"
	"github.com/markusressel/emcfan/internal/util"
	"github.com/spf13/cobra"
)

var temperature float64

var Command = &cobra.Command{
	Use:   "curve",
	Short: "Print the configured fan curve to console",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global.LoadConfig()

		curve, err := curves.NewSpeedCurve(configuration.CurrentConfig.Curve)
		if err != nil {
			return err
		}

		var rows [][]string
		for _, point := range curve.GetPoints() {
			rows = append(rows, []string{
				fmt.Sprintf("%.1f", point.Temp),
				fmt.Sprintf("%.1f", point.Duty),
				fmt.Sprintf("%d", util.PercentToPwm(point.Duty)),
			})
		}
		if err := global.PrintTable([]string{"Temperature (°C)", "Duty (%)", "PWM"}, rows); err != nil {
			return err
		}

		samples := curve.Sample(0, 100, 1)
		values := make([]float64, 0, len(samples))
		for _, temp := range util.SortedKeys(samples) {
			values = append(values, samples[temp])
		}
		graph := asciigraph.Plot(
			values,
			asciigraph.Height(15),
			asciigraph.Width(101),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(100),
			asciigraph.Caption("Duty (%) / Temperature (°C)"),
		)
		ui.Printfln(graph)

		if cmd.Flags().Changed("temp") {
			duty := curve.Interpolate(temperature)
			ui.Printfln("")
			ui.Printfln("%.1f°C -> %.2f%% (pwm %d)", temperature, duty, curve.PwmAt(temperature))
		}

		return nil
	},
}

func init() {
	Command.Flags().Float64VarP(
		&temperature,
		"temp", "t",
		0,
		"Print the duty cycle for the given temperature",
	)
}
