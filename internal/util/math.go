package util

import (
	"math"
)

const (
	MinPwmValue = 0
	MaxPwmValue = 255

	MinPercent = 0.0
	MaxPercent = 100.0
)

// Avg calculates the average of all values in the given array
func Avg(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < len(values); i++ {
		sum += values[i]
	}
	return sum / (float64(len(values)))
}

// Coerce returns value, limited to the range [min..max]
func Coerce(value float64, min float64, max float64) float64 {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// CoerceInt returns value, limited to the range [min..max]
func CoerceInt(value int, min int, max int) int {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// PercentToPwm scales a duty cycle in percent [0..100] to the 8 bit register range [0..255].
// Halves are rounded away from zero, f.ex. 50% -> 127.5 -> 128.
func PercentToPwm(percent float64) int {
	if math.IsNaN(percent) {
		return MinPwmValue
	}
	value := math.Round(percent / MaxPercent * MaxPwmValue)
	return int(Coerce(value, MinPwmValue, MaxPwmValue))
}

// PwmToPercent converts a register value [0..255] to a duty cycle in percent
func PwmToPercent(pwm int) float64 {
	return float64(CoerceInt(pwm, MinPwmValue, MaxPwmValue)) / MaxPwmValue * MaxPercent
}

// RoundTo rounds value to the given number of decimal places
func RoundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
