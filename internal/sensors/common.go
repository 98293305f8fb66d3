package sensors

import (
	"fmt"

	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/markusressel/emcfan/internal/hwmon"
)

// Sensor is a source of temperature readings
type Sensor interface {
	GetId() string

	GetLabel() string

	// GetValue returns the current temperature in degrees celsius
	GetValue() (float64, error)
}

// SensorError is returned when a sensor cannot provide a value
type SensorError struct {
	SensorId string
	Err      error
}

func (e *SensorError) Error() string {
	return fmt.Sprintf("unable to read sensor %s: %v", e.SensorId, e.Err)
}

func (e *SensorError) Unwrap() error {
	return e.Err
}

func NewSensor(config configuration.SensorConfig) (Sensor, error) {
	if config.HwMon != nil {
		input, err := hwmon.FindTempInput(hwmon.GetChips(), config.HwMon.Platform, config.HwMon.Index)
		if err != nil {
			return nil, fmt.Errorf("sensor %s: %w", config.ID, err)
		}
		return &HwmonSensor{
			Input:  input,
			Config: config,
		}, nil
	}

	if config.File != nil {
		return &FileSensor{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdSensor{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}
