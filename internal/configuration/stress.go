package configuration

import "time"

type StressConfig struct {
	// Output is the path of the csv file the data is logged to
	Output string `json:"output" yaml:"output"`
	// Idle is the time logged before and after the stress phase
	Idle time.Duration `json:"idle" yaml:"idle"`
	// Duration of the stress phase
	Duration time.Duration `json:"duration" yaml:"duration"`
	// Interval between two log entries
	Interval time.Duration `json:"interval" yaml:"interval"`
	// Exec is the stress executable, invoked as "<exec> -q -c <cpus> -t <seconds>"
	Exec string `json:"exec" yaml:"exec"`
}

// MarshalYAML renders all durations as duration strings
func (c StressConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Output   string `yaml:"output"`
		Idle     string `yaml:"idle"`
		Duration string `yaml:"duration"`
		Interval string `yaml:"interval"`
		Exec     string `yaml:"exec"`
	}{
		Output:   c.Output,
		Idle:     c.Idle.String(),
		Duration: c.Duration.String(),
		Interval: c.Interval.String(),
		Exec:     c.Exec,
	}, nil
}
