package sensors

import (
	"fmt"

	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/markusressel/emcfan/internal/util"
)

type FileSensor struct {
	Config configuration.SensorConfig `json:"configuration"`
}

func (sensor FileSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor FileSensor) GetLabel() string {
	return fmt.Sprintf("File %s", sensor.Config.File.Path)
}

func (sensor FileSensor) GetValue() (float64, error) {
	filePath, err := util.ExpandHomeDir(sensor.Config.File.Path)
	if err != nil {
		return 0, &SensorError{SensorId: sensor.GetId(), Err: err}
	}

	value, err := util.ReadFloatFromFile(filePath)
	if err != nil {
		return 0, &SensorError{SensorId: sensor.GetId(), Err: err}
	}

	divisor := sensor.Config.File.Divisor
	if divisor == 0 {
		divisor = 1
	}
	return value / divisor, nil
}
