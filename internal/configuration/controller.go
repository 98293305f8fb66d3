package configuration

import "time"

type ControllerConfig struct {
	// Interval is the time between two temperature readings
	Interval time.Duration `json:"interval" yaml:"interval"`
	// Readings is the number of temperature readings used to calculate the moving average.
	// Averaging multiple values reduces noise and thus fan hunting.
	Readings int `json:"readings" yaml:"readings"`
	// MinStep is the minimum change of the pwm register value [0..255] required
	// before a new value is written. 0% and 100% are always written.
	MinStep int `json:"minStep" yaml:"minStep"`
	// MaxConsecutiveErrors is the number of failing cycles in a row after which
	// the controller gives up, 0 means never
	MaxConsecutiveErrors int `json:"maxConsecutiveErrors" yaml:"maxConsecutiveErrors"`
}

// MarshalYAML renders the interval as a duration string, so printed configurations can be read back
func (c ControllerConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Interval             string `yaml:"interval"`
		Readings             int    `yaml:"readings"`
		MinStep              int    `yaml:"minStep"`
		MaxConsecutiveErrors int    `yaml:"maxConsecutiveErrors"`
	}{
		Interval:             c.Interval.String(),
		Readings:             c.Readings,
		MinStep:              c.MinStep,
		MaxConsecutiveErrors: c.MaxConsecutiveErrors,
	}, nil
}
