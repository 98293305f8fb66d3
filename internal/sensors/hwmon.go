package sensors

import (
	"fmt"

	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/markusressel/emcfan/internal/util"
)

const hwmonDivisor = 1000.0

type HwmonSensor struct {
	// Input is the sysfs file of the temperature input, resolved during creation
	Input  string                     `json:"input"`
	Config configuration.SensorConfig `json:"configuration"`
}

func (sensor HwmonSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor HwmonSensor) GetLabel() string {
	return fmt.Sprintf("%s (temp%d)", sensor.Config.HwMon.Platform, sensor.Config.HwMon.Index)
}

func (sensor HwmonSensor) GetValue() (float64, error) {
	integer, err := util.ReadIntFromFile(sensor.Input)
	if err != nil {
		return 0, &SensorError{SensorId: sensor.GetId(), Err: err}
	}
	return float64(integer) / hwmonDivisor, nil
}
