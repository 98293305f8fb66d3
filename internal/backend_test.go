package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createDryRunConfig(t *testing.T, milliDegrees string) (configuration.Configuration, string) {
	dir := t.TempDir()
	sensorPath := filepath.Join(dir, "temp")
	err := os.WriteFile(sensorPath, []byte(milliDegrees), 0o644)
	require.NoError(t, err)
	registerDir := filepath.Join(dir, "registers")

	config := configuration.Configuration{
		Sensor: configuration.SensorConfig{
			ID: "cpu",
			File: &configuration.FileSensorConfig{
				Path:    sensorPath,
				Divisor: 1000,
			},
		},
		Fan: configuration.FanConfig{
			ID:   "fan",
			File: &configuration.FileFanConfig{Path: registerDir},
		},
		Curve: configuration.CurveConfig{
			{Temp: 30, Duty: 30},
			{Temp: 45, Duty: 32},
			{Temp: 47, Duty: 34},
			{Temp: 53, Duty: 55},
			{Temp: 55, Duty: 57},
			{Temp: 70, Duty: 59},
		},
		Controller: configuration.ControllerConfig{
			Interval: 5 * time.Millisecond,
			Readings: 30,
			MinStep:  3,
		},
		Stress: configuration.StressConfig{
			Interval: time.Second,
		},
	}
	return config, registerDir
}

func readRegister(t *testing.T, dir string, name string) string {
	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return strings.TrimSpace(string(content))
}

func TestRun_DryRun(t *testing.T) {
	// GIVEN
	config, registerDir := createDryRunConfig(t, "46000")
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// WHEN
	err := Run(ctx, config)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "10", readRegister(t, registerDir, "reg_0x37"))
	assert.Equal(t, "0", readRegister(t, registerDir, "reg_0x32"))
	assert.Equal(t, "64", readRegister(t, registerDir, "reg_0x33"))
	assert.Equal(t, "84", readRegister(t, registerDir, "reg_0x30"))
}

func TestRun_InvalidConfiguration(t *testing.T) {
	// GIVEN
	config, _ := createDryRunConfig(t, "46000")
	config.Curve = configuration.CurveConfig{{Temp: 30, Duty: 30}}

	// WHEN
	err := Run(context.Background(), config)

	// THEN
	var configurationError *configuration.ConfigurationError
	assert.True(t, errors.As(err, &configurationError))
}

func TestRun_GivesUpOnBrokenSensor(t *testing.T) {
	// GIVEN
	config, registerDir := createDryRunConfig(t, "not a number")
	config.Controller.MaxConsecutiveErrors = 2

	// WHEN
	err := Run(context.Background(), config)

	// THEN
	assert.ErrorContains(t, err, "giving up after 2 consecutive errors")
	assert.Equal(t, "255", readRegister(t, registerDir, "reg_0x30"))
}

func TestInitializeObjects(t *testing.T) {
	// GIVEN
	config, _ := createDryRunConfig(t, "46000")

	// WHEN
	objects, err := InitializeObjects(config)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "cpu", objects.Sensor.GetId())
	assert.Equal(t, "fan", objects.Fan.GetId())
	assert.Len(t, objects.Curve.GetPoints(), 6)
	assert.Equal(t, "fan", objects.Controller.GetFanId())
}

func TestChipLagsBehind(t *testing.T) {
	// GIVEN
	config, _ := createDryRunConfig(t, "46000")
	slowChip := 6
	config.Fan.Emc2301 = &configuration.Emc2301FanConfig{UpdateInterval: &slowChip}

	// THEN
	config.Controller.Interval = 100 * time.Millisecond
	assert.True(t, chipLagsBehind(config))

	config.Controller.Interval = 2 * time.Second
	assert.False(t, chipLagsBehind(config))

	config.Controller.Interval = 100 * time.Millisecond
	config.Fan.Emc2301.RampControl = configuration.DefaultTrueBool{
		Optional: configuration.Optional[bool]{Value: false, Present: true},
	}
	assert.False(t, chipLagsBehind(config))
}
