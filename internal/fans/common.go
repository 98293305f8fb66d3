package fans

import (
	"fmt"

	"github.com/markusressel/emcfan/internal/configuration"
)

type Fan interface {
	GetId() string

	// Configure writes the static setup registers of the fan controller
	Configure() error

	// GetPwm returns the current PWM value of this fan
	GetPwm() (int, error)
	// SetPwm sets the raw PWM value [0..255] of this fan
	SetPwm(pwm int) error

	Close() error
}

// NewFan creates the fan for the given configuration. An emc2301 fan talks to the chip
// on the configured i2c bus, a file fan simulates the chip using a FileBus.
func NewFan(config configuration.FanConfig) (Fan, error) {
	settings := NewEmc2301Settings(config.Emc2301)

	if config.Emc2301 != nil {
		bus, err := NewI2cBus(config.Emc2301.GetBus(), config.Emc2301.GetAddress())
		if err != nil {
			return nil, err
		}
		return NewEmc2301Fan(config.ID, bus, settings), nil
	}

	if config.File != nil {
		bus, err := NewFileBus(config.File.Path)
		if err != nil {
			return nil, err
		}
		return NewEmc2301Fan(config.ID, bus, settings), nil
	}

	return nil, fmt.Errorf("no matching fan type for fan: %s", config.ID)
}
