package fans

import (
	"fmt"
	"time"

	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/markusressel/emcfan/internal/util"
)

const (
	RegisterFanSetting byte = 0x30
	RegisterFanConfig1 byte = 0x32
	RegisterFanConfig2 byte = 0x33
	RegisterMaxStep    byte = 0x37

	RegisterProductId      byte = 0xFD
	RegisterManufacturerId byte = 0xFE

	ProductIdEmc2301 byte = 0x37
	ManufacturerId   byte = 0x5D

	fanConfig1UpdateMask    byte = 0x07
	fanConfig2RampControl   byte = 0x40
	fanConfig2NoRampControl byte = 0x00
	maxStepMask             byte = 0x3F
)

// updateIntervals maps the fan configuration 1 update bits to the chip update interval
var updateIntervals = []time.Duration{
	100 * time.Millisecond,
	200 * time.Millisecond,
	300 * time.Millisecond,
	400 * time.Millisecond,
	500 * time.Millisecond,
	800 * time.Millisecond,
	1200 * time.Millisecond,
	1600 * time.Millisecond,
}

// Emc2301Settings are the static settings written once during initialization
type Emc2301Settings struct {
	MaxStep        int
	UpdateInterval int
	RampControl    bool
}

func NewEmc2301Settings(config *configuration.Emc2301FanConfig) Emc2301Settings {
	if config == nil {
		config = &configuration.Emc2301FanConfig{}
	}
	return Emc2301Settings{
		MaxStep:        config.GetMaxStep(),
		UpdateInterval: config.GetUpdateInterval(),
		RampControl:    config.RampControl.Get(),
	}
}

// UpdateIntervalDuration returns the chip update interval selected by these settings
func (s Emc2301Settings) UpdateIntervalDuration() time.Duration {
	index := util.CoerceInt(s.UpdateInterval, 0, len(updateIntervals)-1)
	return updateIntervals[index]
}

// RegisterWrite is a single value written to a register
type RegisterWrite struct {
	Register byte
	Value    byte
}

func (w RegisterWrite) String() string {
	return fmt.Sprintf("0x%02X=0x%02X", w.Register, w.Value)
}

// SetupSequence returns the register writes needed to configure the chip, in order
func (s Emc2301Settings) SetupSequence() []RegisterWrite {
	fanConfig2 := fanConfig2NoRampControl
	if s.RampControl {
		fanConfig2 = fanConfig2RampControl
	}
	return []RegisterWrite{
		{Register: RegisterMaxStep, Value: byte(s.MaxStep) & maxStepMask},
		{Register: RegisterFanConfig1, Value: byte(s.UpdateInterval) & fanConfig1UpdateMask},
		{Register: RegisterFanConfig2, Value: fanConfig2},
	}
}

// Probe checks whether the device behind the given bus identifies itself as an EMC2301
func Probe(bus RegisterBus) (bool, error) {
	manufacturer, err := bus.ReadRegister(RegisterManufacturerId)
	if err != nil {
		return false, err
	}
	product, err := bus.ReadRegister(RegisterProductId)
	if err != nil {
		return false, err
	}
	return manufacturer == ManufacturerId && product == ProductIdEmc2301, nil
}

// Emc2301Fan drives a fan connected to an EMC2301 in direct setting mode
type Emc2301Fan struct {
	ID       string
	Settings Emc2301Settings
	bus      RegisterBus
}

func NewEmc2301Fan(id string, bus RegisterBus, settings Emc2301Settings) *Emc2301Fan {
	return &Emc2301Fan{
		ID:       id,
		Settings: settings,
		bus:      bus,
	}
}

func (fan *Emc2301Fan) GetId() string {
	return fan.ID
}

func (fan *Emc2301Fan) Configure() error {
	for _, write := range fan.Settings.SetupSequence() {
		if err := fan.bus.WriteRegister(write.Register, write.Value); err != nil {
			return fmt.Errorf("unable to configure fan %s: %w", fan.ID, err)
		}
	}
	return nil
}

func (fan *Emc2301Fan) GetPwm() (int, error) {
	value, err := fan.bus.ReadRegister(RegisterFanSetting)
	if err != nil {
		return util.MinPwmValue, err
	}
	return int(value), nil
}

func (fan *Emc2301Fan) SetPwm(pwm int) error {
	value := util.CoerceInt(pwm, util.MinPwmValue, util.MaxPwmValue)
	return fan.bus.WriteRegister(RegisterFanSetting, byte(value))
}

// Registers returns the register mirror of the underlying bus, nil if it keeps none
func (fan *Emc2301Fan) Registers() map[string]byte {
	if mirror, ok := fan.bus.(RegisterMirror); ok {
		return mirror.Registers()
	}
	return nil
}

func (fan *Emc2301Fan) Close() error {
	return fan.bus.Close()
}

func (fan *Emc2301Fan) String() string {
	return fmt.Sprintf("%s (%v)", fan.ID, fan.bus)
}
