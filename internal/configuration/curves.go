package configuration

// CurvePointConfig is a single breakpoint of the fan curve
type CurvePointConfig struct {
	// Temp is the temperature in degrees celsius [0..100]
	Temp float64 `json:"temp" yaml:"temp"`
	// Duty is the desired fan duty cycle in percent [0..100]
	Duty float64 `json:"duty" yaml:"duty"`
}

// CurveConfig is the list of breakpoints of the fan curve, in ascending order of temperature.
//
// If the temperature is below the first breakpoint, the fan is turned off.
// If the temperature is above the last breakpoint, the fan runs at 100%.
type CurveConfig []CurvePointConfig
