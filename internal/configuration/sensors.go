package configuration

const (
	DefaultThermalZonePath    = "/sys/class/thermal/thermal_zone0/temp"
	DefaultThermalZoneDivisor = 1000.0
)

type SensorConfig struct {
	ID    string             `json:"id" yaml:"id"`
	File  *FileSensorConfig  `json:"file,omitempty" yaml:"file,omitempty"`
	HwMon *HwMonSensorConfig `json:"hwmon,omitempty" yaml:"hwmon,omitempty"`
	Cmd   *CmdSensorConfig   `json:"cmd,omitempty" yaml:"cmd,omitempty"`
}

type FileSensorConfig struct {
	Path string `json:"path" yaml:"path"`
	// Divisor converts the raw file value to degrees celsius, f.ex. 1000 for milli-degrees
	Divisor float64 `json:"divisor" yaml:"divisor"`
}

type HwMonSensorConfig struct {
	// Platform is a regex matched against the lm-sensors chip name
	Platform string `json:"platform" yaml:"platform"`
	// Index of the temperature input of the chip, starting at 1
	Index int `json:"index" yaml:"index"`
}

type CmdSensorConfig struct {
	Exec string   `json:"exec" yaml:"exec"`
	Args []string `json:"args" yaml:"args"`
}
