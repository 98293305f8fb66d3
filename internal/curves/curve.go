package curves

import (
	"errors"
	"fmt"
	"sync"

	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/markusressel/emcfan/internal/util"
	"golang.org/x/exp/slices"
)

const (
	// DutyOff is returned for temperatures below the first breakpoint
	DutyOff = 0.0
	// DutyMax is returned for temperatures above the last breakpoint
	DutyMax = 100.0
)

type SpeedCurve interface {
	// Interpolate returns the duty cycle in percent [0..100] for the given temperature
	Interpolate(temperature float64) float64
	GetPoints() []Point
	// CurrentValue returns the last value returned by Interpolate
	CurrentValue() float64
}

// Point is a single breakpoint of a curve
type Point struct {
	Temp float64 `json:"temp"`
	Duty float64 `json:"duty"`
}

// LinearSpeedCurve maps temperatures to duty cycles by linear interpolation
// between its breakpoints. It is immutable after creation.
type LinearSpeedCurve struct {
	points []Point

	mu    sync.Mutex
	value float64
}

// NewSpeedCurve creates a curve from the given configuration, which is expected
// to have passed configuration.ValidateCurve.
func NewSpeedCurve(config configuration.CurveConfig) (*LinearSpeedCurve, error) {
	if len(config) < configuration.MinCurvePoints {
		return nil, fmt.Errorf("curve needs at least %d points, got %d", configuration.MinCurvePoints, len(config))
	}

	points := make([]Point, 0, len(config))
	for i, p := range config {
		if i > 0 && p.Temp <= config[i-1].Temp {
			return nil, errors.New("curve temperatures are not in strictly ascending order")
		}
		points = append(points, Point{Temp: p.Temp, Duty: p.Duty})
	}

	return &LinearSpeedCurve{
		points: points,
	}, nil
}

func (c *LinearSpeedCurve) GetPoints() []Point {
	return slices.Clone(c.points)
}

func (c *LinearSpeedCurve) MinTemp() float64 {
	return c.points[0].Temp
}

func (c *LinearSpeedCurve) MaxTemp() float64 {
	return c.points[len(c.points)-1].Temp
}

// Interpolate returns the duty cycle in percent for the given temperature.
//
// Below the first breakpoint the fan is turned off (0%) and above the last
// breakpoint it runs at full speed (100%), regardless of the duty values of
// the outermost breakpoints.
func (c *LinearSpeedCurve) Interpolate(temperature float64) float64 {
	value := c.interpolate(temperature)
	c.mu.Lock()
	c.value = value
	c.mu.Unlock()
	return value
}

func (c *LinearSpeedCurve) interpolate(temperature float64) float64 {
	if temperature < c.MinTemp() {
		return DutyOff
	}
	if temperature > c.MaxTemp() {
		return DutyMax
	}

	for i := 0; i < len(c.points)-1; i++ {
		current := c.points[i]
		next := c.points[i+1]
		if temperature >= current.Temp && temperature <= next.Temp {
			slope := (next.Duty - current.Duty) / (next.Temp - current.Temp)
			intercept := current.Duty - slope*current.Temp
			return slope*temperature + intercept
		}
	}

	// only reachable for NaN temperatures
	return DutyMax
}

func (c *LinearSpeedCurve) CurrentValue() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Sample evaluates the curve for every step between from and to (inclusive)
// without changing CurrentValue.
func (c *LinearSpeedCurve) Sample(from float64, to float64, step float64) map[float64]float64 {
	result := map[float64]float64{}
	if step <= 0 {
		return result
	}
	for temp := from; temp <= to; temp += step {
		result[temp] = c.interpolate(temp)
	}
	return result
}

// PwmAt returns the register value [0..255] for the given temperature
// without changing CurrentValue.
func (c *LinearSpeedCurve) PwmAt(temperature float64) int {
	return util.PercentToPwm(c.interpolate(temperature))
}
