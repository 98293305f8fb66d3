package configuration

const (
	DefaultEmc2301Bus            = "10"
	DefaultEmc2301Address        = 0x2F
	DefaultEmc2301MaxStep        = 0x0A
	DefaultEmc2301UpdateInterval = 0x00
)

type FanConfig struct {
	ID      string            `json:"id" yaml:"id"`
	Emc2301 *Emc2301FanConfig `json:"emc2301,omitempty" yaml:"emc2301,omitempty"`
	File    *FileFanConfig    `json:"file,omitempty" yaml:"file,omitempty"`
}

type Emc2301FanConfig struct {
	// Bus is the name or number of the i2c bus, f.ex. "10" or "/dev/i2c-10"
	Bus string `json:"bus" yaml:"bus"`
	// Address is the 7 bit i2c address of the chip
	Address *int `json:"address,omitempty" yaml:"address,omitempty"`
	// MaxStep is the maximum pwm change per update used by the chip internally [0..63]
	MaxStep *int `json:"maxStep,omitempty" yaml:"maxStep,omitempty"`
	// UpdateInterval selects the chip update interval in direct drive mode [0..7]:
	// 0: 100ms, 1: 200ms, 2: 300ms, 3: 400ms, 4: 500ms, 5: 800ms, 6: 1200ms, 7: 1600ms
	UpdateInterval *int `json:"updateInterval,omitempty" yaml:"updateInterval,omitempty"`
	// RampControl enables the chip internal ramp control using MaxStep and UpdateInterval
	RampControl DefaultTrueBool `json:"rampControl" yaml:"rampControl"`
}

func (c Emc2301FanConfig) GetBus() string {
	if len(c.Bus) <= 0 {
		return DefaultEmc2301Bus
	}
	return c.Bus
}

func (c Emc2301FanConfig) GetAddress() int {
	return valueOrDefault(c.Address, DefaultEmc2301Address)
}

func (c Emc2301FanConfig) GetMaxStep() int {
	return valueOrDefault(c.MaxStep, DefaultEmc2301MaxStep)
}

func (c Emc2301FanConfig) GetUpdateInterval() int {
	return valueOrDefault(c.UpdateInterval, DefaultEmc2301UpdateInterval)
}

// FileFanConfig mirrors all register writes to files in a directory, used for dry runs
type FileFanConfig struct {
	Path string `json:"path" yaml:"path"`
}

func valueOrDefault(value *int, def int) int {
	if value == nil {
		return def
	}
	return *value
}
