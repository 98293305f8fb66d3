package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/markusressel/emcfan/cmd/global"
	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/markusressel/emcfan/internal/fans"
	"github.com/markusressel/emcfan/internal/sensors"
	"github.com/markusressel/emcfan/internal/stress"
	"github.com/markusressel/emcfan/internal/ui"
	"github.com/markusressel/emcfan/internal/util"
	"github.com/spf13/cobra"
)

var stressOutput string

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Log temperature, cpu frequency and duty cycle while stressing the cpu",
	Long: `Logs the cpu temperature, cpu frequency and fan duty cycle to a csv file while
idling, running the stress tool on all cpus and idling again. Use it to tune the fan curve.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		global.LoadConfig()
		config := configuration.CurrentConfig

		if len(stressOutput) > 0 {
			config.Stress.Output = stressOutput
		}
		output, err := util.ExpandHomeDir(config.Stress.Output)
		if err != nil {
			return err
		}

		sensor, err := sensors.NewSensor(config.Sensor)
		if err != nil {
			return err
		}
		fan, err := fans.NewFan(config.Fan)
		if err != nil {
			return err
		}
		defer global.Close(fan, "fan", &err)

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("unable to create output file: %w", err)
		}
		defer global.Close(file, "output file", &err)
		ui.Info("Logging to %s", output)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger := stress.NewLogger(
			config.Stress,
			sensor,
			fan,
			stress.NewFrequencyReader(stress.DefaultScalingFrequencyPath),
			stress.NewProcessLoadGenerator(config.Stress.Exec),
			file,
		)
		return logger.Run(ctx)
	},
}

func init() {
	stressCmd.Flags().StringVarP(&stressOutput, "output", "o", "", "csv file to log to (overrides stress.output)")
	rootCmd.AddCommand(stressCmd)
}
