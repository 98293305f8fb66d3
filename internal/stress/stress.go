package stress

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/markusressel/emcfan/internal/fans"
	"github.com/markusressel/emcfan/internal/sensors"
	"github.com/markusressel/emcfan/internal/ui"
	"github.com/markusressel/emcfan/internal/util"
)

var Header = []string{
	"Time (s)",
	"Temperature (C)",
	"CPU Frequency (MHz)",
	"PWM Duty Cycle (%)",
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseStress
	PhaseCooldown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseStress:
		return "stress"
	case PhaseCooldown:
		return "cooldown"
	}
	return "unknown"
}

// Sample is a single logged data point
type Sample struct {
	Elapsed     time.Duration
	Temperature float64
	Frequency   float64
	Duty        float64
}

// Record returns the csv representation of this sample
func (s Sample) Record() []string {
	return []string{
		fmt.Sprintf("%.2f", s.Elapsed.Seconds()),
		fmt.Sprintf("%.2f", s.Temperature),
		fmt.Sprintf("%.2f", s.Frequency),
		fmt.Sprintf("%.2f", s.Duty),
	}
}

// Row returns the terminal representation of this sample as right aligned columns
func (s Sample) Row() string {
	return fmt.Sprintf("%10s  %7s  %10s  %7s",
		fmt.Sprintf("%.2fs", s.Elapsed.Seconds()),
		fmt.Sprintf("%.2fc", s.Temperature),
		fmt.Sprintf("%.2fMHz", s.Frequency),
		fmt.Sprintf("%.2f%%", s.Duty),
	)
}

// Logger records temperature, cpu frequency and fan duty cycle while
// the cpu goes through an idle, a stress and a cooldown phase.
type Logger struct {
	config    configuration.StressConfig
	sensor    sensors.Sensor
	fan       fans.Fan
	frequency FrequencyReader
	load      LoadGenerator

	out *csv.Writer
	now func() time.Time

	frequencyWarned bool
}

func NewLogger(
	config configuration.StressConfig,
	sensor sensors.Sensor,
	fan fans.Fan,
	frequency FrequencyReader,
	load LoadGenerator,
	out io.Writer,
) *Logger {
	return &Logger{
		config:    config,
		sensor:    sensor,
		fan:       fan,
		frequency: frequency,
		load:      load,
		out:       csv.NewWriter(out),
		now:       time.Now,
	}
}

// Run logs all phases, stopping early without error if ctx is cancelled.
// The load generator is always stopped before returning.
func (l *Logger) Run(ctx context.Context) (err error) {
	defer func() {
		if stopErr := l.load.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}()

	if err := l.write(Header); err != nil {
		return err
	}

	start := l.now()
	phases := []struct {
		phase Phase
		until time.Duration
	}{
		{PhaseIdle, l.config.Idle},
		{PhaseStress, l.config.Idle + l.config.Duration},
		{PhaseCooldown, l.config.Idle + l.config.Duration + l.config.Idle},
	}

	for _, p := range phases {
		ui.Info("Starting %s phase", p.phase)
		switch p.phase {
		case PhaseStress:
			if err := l.load.Start(l.config.Duration); err != nil {
				return err
			}
		case PhaseCooldown:
			if err := l.load.Stop(); err != nil {
				return err
			}
		}

		for elapsed := l.now().Sub(start); elapsed <= p.until; elapsed = l.now().Sub(start) {
			if err := l.log(elapsed); err != nil {
				return err
			}
			if !sleep(ctx, l.config.Interval) {
				ui.Info("Stress test cancelled")
				return nil
			}
		}
	}

	return nil
}

func (l *Logger) log(elapsed time.Duration) error {
	sample, err := l.measure(elapsed)
	if err != nil {
		return err
	}
	if err := l.write(sample.Record()); err != nil {
		return err
	}
	ui.Printfln("%s", sample.Row())
	return nil
}

func (l *Logger) measure(elapsed time.Duration) (Sample, error) {
	temperature, err := l.sensor.GetValue()
	if err != nil {
		return Sample{}, err
	}

	frequency, err := l.frequency()
	if err != nil {
		if !l.frequencyWarned {
			ui.Warning("%v", err)
			l.frequencyWarned = true
		}
		frequency = 0
	}

	pwm, err := l.fan.GetPwm()
	if err != nil {
		return Sample{}, err
	}

	return Sample{
		Elapsed:     elapsed,
		Temperature: temperature,
		Frequency:   frequency,
		Duty:        util.PwmToPercent(pwm),
	}, nil
}

func (l *Logger) write(record []string) error {
	if err := l.out.Write(record); err != nil {
		return err
	}
	l.out.Flush()
	return l.out.Error()
}

// sleep waits for the given duration, returns false if ctx was cancelled before
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
