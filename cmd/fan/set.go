package fan

import (
	"fmt"
	"math"
	"strconv"

	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/markusressel/emcfan/internal/ui"
	"github.com/markusressel/emcfan/internal/util"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <percent>",
	Short: "Set the duty cycle of the fan",
	Long:  `Writes the given duty cycle [0..100] to the pwm register of the fan. A running daemon will overwrite it on its next update.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		duty, err := parseDuty(args[0])
		if err != nil {
			return err
		}

		fan, err := getFan()
		if err != nil {
			return err
		}
		defer closeFan(fan, &err)

		pwm := util.PercentToPwm(duty)
		if err = fan.SetPwm(pwm); err != nil {
			return err
		}

		ui.Success("Set fan '%s' to %.2f%% (pwm %d)", fan.GetId(), duty, pwm)
		return nil
	},
}

func parseDuty(arg string) (float64, error) {
	duty, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duty cycle '%s': %w", arg, err)
	}
	if math.IsNaN(duty) || math.IsInf(duty, 0) {
		return 0, fmt.Errorf("invalid duty cycle '%s': not a finite number", arg)
	}
	if duty < configuration.MinCurveValue || duty > configuration.MaxCurveValue {
		return 0, fmt.Errorf("duty cycle must be in [%.0f..%.0f], got %v", configuration.MinCurveValue, configuration.MaxCurveValue, duty)
	}
	return duty, nil
}

func init() {
	Command.AddCommand(setCmd)
}
