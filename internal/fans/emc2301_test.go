package fans

import (
	"errors"
	"testing"
	"time"

	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmc2301Settings_Defaults(t *testing.T) {
	// WHEN
	settings := NewEmc2301Settings(nil)

	// THEN
	assert.Equal(t, 0x0A, settings.MaxStep)
	assert.Equal(t, 0, settings.UpdateInterval)
	assert.True(t, settings.RampControl)
	assert.Equal(t, 100*time.Millisecond, settings.UpdateIntervalDuration())
}

func TestEmc2301Settings_FromConfig(t *testing.T) {
	// GIVEN
	maxStep := 20
	updateInterval := 6
	config := &configuration.Emc2301FanConfig{
		MaxStep:        &maxStep,
		UpdateInterval: &updateInterval,
		RampControl:    configuration.DefaultTrueBool{Optional: configuration.Optional[bool]{Value: false, Present: true}},
	}

	// WHEN
	settings := NewEmc2301Settings(config)

	// THEN
	assert.Equal(t, 20, settings.MaxStep)
	assert.Equal(t, 6, settings.UpdateInterval)
	assert.False(t, settings.RampControl)
	assert.Equal(t, 1200*time.Millisecond, settings.UpdateIntervalDuration())
}

func TestEmc2301Fan_Configure(t *testing.T) {
	// GIVEN
	bus := NewMockBus()
	fan := NewEmc2301Fan("fan", bus, NewEmc2301Settings(nil))

	// WHEN
	err := fan.Configure()

	// THEN
	require.NoError(t, err)
	assert.Equal(t, []RegisterWrite{
		{Register: 0x37, Value: 0x0A},
		{Register: 0x32, Value: 0x00},
		{Register: 0x33, Value: 0x40},
	}, bus.Writes)
}

func TestEmc2301Fan_ConfigureWithoutRampControl(t *testing.T) {
	// GIVEN
	bus := NewMockBus()
	settings := Emc2301Settings{MaxStep: 63, UpdateInterval: 7, RampControl: false}
	fan := NewEmc2301Fan("fan", bus, settings)

	// WHEN
	err := fan.Configure()

	// THEN
	require.NoError(t, err)
	assert.Equal(t, []RegisterWrite{
		{Register: 0x37, Value: 0x3F},
		{Register: 0x32, Value: 0x07},
		{Register: 0x33, Value: 0x00},
	}, bus.Writes)
}

func TestEmc2301Fan_ConfigureStopsOnBusError(t *testing.T) {
	// GIVEN
	bus := NewMockBus()
	bus.FailOn[RegisterFanConfig1] = errNack
	fan := NewEmc2301Fan("fan", bus, NewEmc2301Settings(nil))

	// WHEN
	err := fan.Configure()

	// THEN
	require.Error(t, err)
	var busError *BusError
	require.True(t, errors.As(err, &busError))
	assert.Equal(t, RegisterFanConfig1, busError.Register)
	assert.Equal(t, OpWrite, busError.Op)
	assert.ErrorIs(t, err, errNack)
	assert.Len(t, bus.Writes, 1)
}

func TestEmc2301Fan_SetPwm(t *testing.T) {
	// GIVEN
	bus := NewMockBus()
	fan := NewEmc2301Fan("fan", bus, NewEmc2301Settings(nil))

	// WHEN
	err := fan.SetPwm(84)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, []RegisterWrite{{Register: 0x30, Value: 84}}, bus.Writes)

	pwm, err := fan.GetPwm()
	require.NoError(t, err)
	assert.Equal(t, 84, pwm)
}

func TestEmc2301Fan_SetPwmIsClamped(t *testing.T) {
	// GIVEN
	bus := NewMockBus()
	fan := NewEmc2301Fan("fan", bus, NewEmc2301Settings(nil))

	// WHEN
	require.NoError(t, fan.SetPwm(300))
	require.NoError(t, fan.SetPwm(-5))

	// THEN
	assert.Equal(t, []RegisterWrite{
		{Register: 0x30, Value: 255},
		{Register: 0x30, Value: 0},
	}, bus.Writes)
}

func TestEmc2301Fan_GetPwmBusError(t *testing.T) {
	// GIVEN
	bus := NewMockBus()
	bus.FailOn[RegisterFanSetting] = errNack
	fan := NewEmc2301Fan("fan", bus, NewEmc2301Settings(nil))

	// WHEN
	_, err := fan.GetPwm()

	// THEN
	var busError *BusError
	assert.True(t, errors.As(err, &busError))
	assert.Equal(t, "read of register 0x30 failed: no ack from device", err.Error())
}

func TestEmc2301Fan_Close(t *testing.T) {
	// GIVEN
	bus := NewMockBus()
	fan := NewEmc2301Fan("fan", bus, NewEmc2301Settings(nil))

	// WHEN
	err := fan.Close()

	// THEN
	assert.NoError(t, err)
	assert.True(t, bus.Closed)
}

func TestNewFan_File(t *testing.T) {
	// GIVEN
	dir := t.TempDir()
	config := configuration.FanConfig{
		ID:   "dry",
		File: &configuration.FileFanConfig{Path: dir},
	}

	// WHEN
	fan, err := NewFan(config)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "dry", fan.GetId())
	require.NoError(t, fan.Configure())
	require.NoError(t, fan.SetPwm(128))
	pwm, err := fan.GetPwm()
	require.NoError(t, err)
	assert.Equal(t, 128, pwm)
}

func TestNewFan_NoType(t *testing.T) {
	// WHEN
	_, err := NewFan(configuration.FanConfig{ID: "none"})

	// THEN
	assert.EqualError(t, err, "no matching fan type for fan: none")
}

func TestNormalizeBusName(t *testing.T) {
	assert.Equal(t, "10", NormalizeBusName("10"))
	assert.Equal(t, "10", NormalizeBusName("/dev/i2c-10"))
	assert.Equal(t, "I2C1", NormalizeBusName(" I2C1 "))
	assert.Equal(t, "", NormalizeBusName(""))
}

func TestProbe(t *testing.T) {
	// GIVEN
	bus := NewMockBus()
	bus.Registers[RegisterManufacturerId] = 0x5D
	bus.Registers[RegisterProductId] = 0x37

	// WHEN
	found, err := Probe(bus)

	// THEN
	require.NoError(t, err)
	assert.True(t, found)
}

func TestProbe_OtherDevice(t *testing.T) {
	// GIVEN
	bus := NewMockBus()
	bus.Registers[RegisterManufacturerId] = 0x5D
	bus.Registers[RegisterProductId] = 0x36

	// WHEN
	found, err := Probe(bus)

	// THEN
	require.NoError(t, err)
	assert.False(t, found)
}

func TestProbe_NoDevice(t *testing.T) {
	// GIVEN
	bus := NewMockBus()
	bus.FailOn[RegisterManufacturerId] = errNack

	// WHEN
	found, err := Probe(bus)

	// THEN
	assert.Error(t, err)
	assert.False(t, found)
}
