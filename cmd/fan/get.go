package fan

import (
	"fmt"

	"github.com/markusressel/emcfan/internal/util"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Get the current duty cycle of the fan",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		fan, err := getFan()
		if err != nil {
			return err
		}
		defer closeFan(fan, &err)

		pwm, err := fan.GetPwm()
		if err != nil {
			return err
		}

		fmt.Printf("%.2f%% (pwm %d)\n", util.PwmToPercent(pwm), pwm)
		return nil
	},
}

func init() {
	Command.AddCommand(getCmd)
}
