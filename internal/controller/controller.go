package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/markusressel/emcfan/internal/control_loop"
	"github.com/markusressel/emcfan/internal/curves"
	"github.com/markusressel/emcfan/internal/fans"
	"github.com/markusressel/emcfan/internal/sensors"
	"github.com/markusressel/emcfan/internal/ui"
	"github.com/markusressel/emcfan/internal/util"
)

type State int

const (
	StateInitializing State = iota
	StateSampling
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateSampling:
		return "sampling"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Config holds the tuning parameters of a single controller
type Config struct {
	Interval             time.Duration
	Readings             int
	MinStep              int
	MaxConsecutiveErrors int
}

func NewConfig(c configuration.ControllerConfig) Config {
	return Config{
		Interval:             c.Interval,
		Readings:             c.Readings,
		MinStep:              c.MinStep,
		MaxConsecutiveErrors: c.MaxConsecutiveErrors,
	}
}

// Statistics is a snapshot of the counters and last values of a controller
type Statistics struct {
	State             State     `json:"state"`
	Iterations        uint64    `json:"iterations"`
	Writes            uint64    `json:"writes"`
	Suppressed        uint64    `json:"suppressed"`
	SensorErrors      uint64    `json:"sensorErrors"`
	BusErrors         uint64    `json:"busErrors"`
	ConsecutiveErrors int       `json:"consecutiveErrors"`
	LastTemperature   float64   `json:"lastTemperature"`
	LastAverage       float64   `json:"lastAverage"`
	LastDuty          float64   `json:"lastDuty"`
	LastCandidatePwm  int       `json:"lastCandidatePwm"`
	LastWrittenPwm    int       `json:"lastWrittenPwm"`
	LastUpdate        time.Time `json:"lastUpdate"`
	// Samples are the temperatures currently held by the moving average window, oldest first
	Samples []float64 `json:"samples"`
	// Registers is the in-memory register mirror of the fan, only present for dry runs
	Registers map[string]byte `json:"registers,omitempty"`
}

type FanController interface {
	// Run configures the fan and controls it until ctx is cancelled
	Run(ctx context.Context) error
	// UpdateFanSpeed runs a single sampling iteration
	UpdateFanSpeed() error

	GetFanId() string
	GetState() State
	GetStatistics() Statistics
}

type fanController struct {
	mu sync.RWMutex

	sensor sensors.Sensor
	fan    fans.Fan
	curve  curves.SpeedCurve
	window *util.SampleWindow
	gate   *control_loop.HysteresisGate
	config Config

	state State
	// previousPwm is the last value successfully written to the fan
	previousPwm int
	stats       Statistics
}

func NewFanController(sensor sensors.Sensor, fan fans.Fan, curve curves.SpeedCurve, config Config) FanController {
	return &fanController{
		sensor:      sensor,
		fan:         fan,
		curve:       curve,
		window:      util.NewSampleWindow(config.Readings),
		gate:        control_loop.NewHysteresisGate(config.MinStep),
		config:      config,
		state:       StateInitializing,
		previousPwm: util.MinPwmValue,
	}
}

func (f *fanController) Run(ctx context.Context) error {
	defer f.setState(StateStopped)

	f.setState(StateInitializing)
	ui.Info("Configuring fan %s...", f.fan.GetId())
	if err := f.fan.Configure(); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ui.Info("Starting controller loop for fan '%s' (sensor: %s, interval: %s, readings: %d, min step: %d)",
		f.fan.GetId(), f.sensor.GetId(), f.config.Interval, f.window.Capacity(), f.gate.MinStep())
	f.setState(StateSampling)

	timer := time.NewTimer(f.config.Interval)
	defer timer.Stop()
	for {
		if ctx.Err() != nil {
			ui.Info("Stopping controller loop for fan '%s'", f.fan.GetId())
			return nil
		}

		err := f.UpdateFanSpeed()
		if err != nil {
			ui.Warning("Error in controller loop for fan %s: %v", f.fan.GetId(), err)
			if f.tooManyErrors() {
				f.failSafe()
				return fmt.Errorf("giving up after %d consecutive errors: %w", f.config.MaxConsecutiveErrors, err)
			}
		}

		timer.Reset(f.config.Interval)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}
}

func (f *fanController) UpdateFanSpeed() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stats.Iterations++
	f.stats.LastUpdate = time.Now()

	temperature, err := f.sensor.GetValue()
	if err != nil {
		f.stats.SensorErrors++
		f.stats.ConsecutiveErrors++
		var sensorError *sensors.SensorError
		if !errors.As(err, &sensorError) {
			err = &sensors.SensorError{SensorId: f.sensor.GetId(), Err: err}
		}
		return err
	}

	avg := f.window.AddSample(temperature)
	duty := f.curve.Interpolate(avg)
	candidate := util.PercentToPwm(duty)

	f.stats.LastTemperature = temperature
	f.stats.LastAverage = avg
	f.stats.LastDuty = duty
	f.stats.LastCandidatePwm = candidate

	ui.Debug("Temperature: %.1f°C, average: %.2f°C (%d/%d), duty: %.2f%%, pwm: %d",
		temperature, avg, f.window.Len(), f.window.Capacity(), duty, candidate)

	decision := f.gate.Decide(f.previousPwm, candidate)
	if !decision.Write {
		f.stats.Suppressed++
		f.stats.ConsecutiveErrors = 0
		return nil
	}

	if err := f.fan.SetPwm(decision.Value); err != nil {
		f.stats.BusErrors++
		f.stats.ConsecutiveErrors++
		return fmt.Errorf("unable to set pwm of fan %s to %d: %w", f.fan.GetId(), decision.Value, err)
	}

	if decision.Value != f.previousPwm {
		ui.Info("Setting fan PWM to %d (%.1f%%, %.1f°C)", decision.Value, duty, avg)
	}
	f.previousPwm = decision.Value
	f.stats.Writes++
	f.stats.LastWrittenPwm = decision.Value
	f.stats.ConsecutiveErrors = 0
	return nil
}

func (f *fanController) tooManyErrors() bool {
	if f.config.MaxConsecutiveErrors <= 0 {
		return false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.stats.ConsecutiveErrors >= f.config.MaxConsecutiveErrors
}

// failSafe tries to run the fan at full speed before giving up control
func (f *fanController) failSafe() {
	ui.Warning("Trying to set fan %s to full speed before giving up...", f.fan.GetId())
	if err := f.fan.SetPwm(util.MaxPwmValue); err != nil {
		ui.Error("Unable to set fan %s to full speed, make sure it is running: %v", f.fan.GetId(), err)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.previousPwm = util.MaxPwmValue
	f.stats.LastWrittenPwm = util.MaxPwmValue
}

func (f *fanController) setState(state State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = state
}

func (f *fanController) GetFanId() string {
	return f.fan.GetId()
}

func (f *fanController) GetState() State {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

func (f *fanController) GetStatistics() Statistics {
	f.mu.RLock()
	defer f.mu.RUnlock()
	stats := f.stats
	stats.State = f.state
	stats.Samples = f.window.Samples()
	if mirror, ok := f.fan.(fans.RegisterMirror); ok {
		stats.Registers = mirror.Registers()
	}
	return stats
}
