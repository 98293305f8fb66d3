package control_loop

import (
	"github.com/markusressel/emcfan/internal/util"
)

// Decision is the result of a HysteresisGate evaluation
type Decision struct {
	// Write indicates whether Value should be written to the fan
	Write bool
	// Value is the pwm value to write, only meaningful if Write is true
	Value int
}

func write(value int) Decision {
	return Decision{Write: true, Value: value}
}

var suppress = Decision{Write: false}

// HysteresisGate suppresses pwm changes smaller than a minimum step
// to keep the fan from audibly hunting between close values.
type HysteresisGate struct {
	minStep int
}

func NewHysteresisGate(minStep int) *HysteresisGate {
	return &HysteresisGate{
		minStep: minStep,
	}
}

func (g *HysteresisGate) MinStep() int {
	return g.minStep
}

// Decide returns whether candidate should replace previous.
//
// The extremes bypass the minimum step, so the fan can always be turned off
// completely or run at full speed, regardless of the previous value.
func (g *HysteresisGate) Decide(previous int, candidate int) Decision {
	return Decide(previous, candidate, g.minStep)
}

func Decide(previous int, candidate int, minStep int) Decision {
	switch {
	case candidate == util.MinPwmValue:
		return write(util.MinPwmValue)
	case candidate == util.MaxPwmValue:
		return write(util.MaxPwmValue)
	case abs(previous-candidate) >= minStep:
		return write(candidate)
	default:
		return suppress
	}
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
