package sensors

import (
	"fmt"
	"strconv"
	"time"

	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/markusressel/emcfan/internal/util"
)

const cmdTimeout = 2 * time.Second

type CmdSensor struct {
	Config configuration.SensorConfig `json:"configuration"`
}

func (sensor CmdSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor CmdSensor) GetLabel() string {
	return fmt.Sprintf("Command %s", sensor.Config.Cmd.Exec)
}

func (sensor CmdSensor) GetValue() (float64, error) {
	exec := sensor.Config.Cmd.Exec
	args := sensor.Config.Cmd.Args
	result, err := util.SafeCmdExecution(exec, args, cmdTimeout)
	if err != nil {
		return 0, &SensorError{SensorId: sensor.GetId(), Err: err}
	}

	temp, err := strconv.ParseFloat(result, 64)
	if err != nil {
		return 0, &SensorError{
			SensorId: sensor.GetId(),
			Err:      fmt.Errorf("unable to parse command output '%s': %w", result, err),
		}
	}

	return temp, nil
}
