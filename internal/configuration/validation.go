package configuration

import (
	"math"
	"regexp"
	"strings"

	"github.com/markusressel/emcfan/internal/ui"
)

const (
	MinCurvePoints = 2

	MinCurveValue = 0.0
	MaxCurveValue = 100.0

	MaxPwmStep = 255
	// the EMC2301 only supports max step sizes up to 63
	MaxPracticalPwmStep = 63

	MaxEmc2301UpdateInterval = 7
)

func Validate() error {
	return ValidateConfig(&CurrentConfig)
}

// ValidateConfig checks the given configuration and returns the first violation as a *ConfigurationError
func ValidateConfig(config *Configuration) error {
	err := ValidateCurve(config.Curve, config.Controller)
	if err != nil {
		return err
	}
	err = validateSensor(config.Sensor)
	if err != nil {
		return err
	}
	err = validateFan(config.Fan)
	if err != nil {
		return err
	}
	err = validateServers(config)
	if err != nil {
		return err
	}
	return validateStress(config.Stress)
}

// ValidateCurve checks the fan curve and the controller tuning values.
// The checks are applied in a fixed order and the first violation is returned
// as a *ConfigurationError.
func ValidateCurve(curve CurveConfig, controller ControllerConfig) error {
	if len(curve) < MinCurvePoints {
		return newConfigurationError("curve", "must contain at least %d points, got %d", MinCurvePoints, len(curve))
	}

	if controller.Interval <= 0 {
		return newConfigurationError("controller.interval", "must be positive, got %s", controller.Interval)
	}
	if controller.Readings <= 0 {
		return newConfigurationError("controller.readings", "must be a positive integer, got %d", controller.Readings)
	}
	if controller.MinStep < 0 || controller.MinStep > MaxPwmStep {
		return newConfigurationError("controller.minStep", "must be an integer in [0..%d], got %d", MaxPwmStep, controller.MinStep)
	}
	if controller.MinStep > MaxPracticalPwmStep {
		ui.Warning("controller.minStep of %d is very large, fan speed changes will be coarse", controller.MinStep)
	}
	if controller.MaxConsecutiveErrors < 0 {
		return newConfigurationError("controller.maxConsecutiveErrors", "must not be negative, got %d", controller.MaxConsecutiveErrors)
	}

	for i, point := range curve {
		if !isFinite(point.Temp) {
			return newConfigurationError("curve", "point %d: temperature is not numeric", i+1)
		}
		if !isFinite(point.Duty) {
			return newConfigurationError("curve", "point %d: duty is not numeric", i+1)
		}
		if point.Temp < MinCurveValue || point.Temp > MaxCurveValue {
			return newConfigurationError("curve", "point %d: temperature %v is out of range [%v..%v]", i+1, point.Temp, MinCurveValue, MaxCurveValue)
		}
		if point.Duty < MinCurveValue || point.Duty > MaxCurveValue {
			return newConfigurationError("curve", "point %d: duty %v is out of range [%v..%v]", i+1, point.Duty, MinCurveValue, MaxCurveValue)
		}
	}

	for i := 1; i < len(curve); i++ {
		previous := curve[i-1]
		current := curve[i]
		if current.Temp <= previous.Temp {
			return newConfigurationError("curve", "point %d: temperatures must be in strictly ascending order, %v follows %v", i+1, current.Temp, previous.Temp)
		}
	}

	return nil
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

func validateSensor(config SensorConfig) error {
	subConfigs := 0
	if config.File != nil {
		subConfigs++
	}
	if config.HwMon != nil {
		subConfigs++
	}
	if config.Cmd != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return newConfigurationError("sensor", "only one sensor type can be used, use one of: %s", strings.Join(supportedSensorTypes(), " | "))
	}
	if subConfigs <= 0 {
		return newConfigurationError("sensor", "sub-configuration for sensor is missing, use one of: %s", strings.Join(supportedSensorTypes(), " | "))
	}

	if config.File != nil {
		if len(config.File.Path) <= 0 {
			return newConfigurationError("sensor.file.path", "no file path provided")
		}
		if config.File.Divisor <= 0 || !isFinite(config.File.Divisor) {
			return newConfigurationError("sensor.file.divisor", "must be positive, got %v", config.File.Divisor)
		}
	}

	if config.HwMon != nil {
		if len(config.HwMon.Platform) <= 0 {
			return newConfigurationError("sensor.hwmon.platform", "no platform provided")
		}
		if _, err := regexp.Compile(config.HwMon.Platform); err != nil {
			return newConfigurationError("sensor.hwmon.platform", "invalid regex: %v", err)
		}
		if config.HwMon.Index <= 0 {
			return newConfigurationError("sensor.hwmon.index", "invalid index, must be >= 1")
		}
	}

	if config.Cmd != nil {
		if len(config.Cmd.Exec) <= 0 {
			return newConfigurationError("sensor.cmd.exec", "executable is missing")
		}
	}

	return nil
}

func supportedSensorTypes() []string {
	return []string{"file", "hwmon", "cmd"}
}

func validateFan(config FanConfig) error {
	subConfigs := 0
	if config.Emc2301 != nil {
		subConfigs++
	}
	if config.File != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return newConfigurationError("fan", "only one fan type can be used, use one of: emc2301 | file")
	}
	if subConfigs <= 0 {
		return newConfigurationError("fan", "sub-configuration for fan is missing, use one of: emc2301 | file")
	}

	if config.Emc2301 != nil {
		emc := config.Emc2301
		address := emc.GetAddress()
		// 7 bit addresses, excluding the reserved ranges
		if address < 0x08 || address > 0x77 {
			return newConfigurationError("fan.emc2301.address", "invalid i2c address 0x%02X", address)
		}
		maxStep := emc.GetMaxStep()
		if maxStep < 0 || maxStep > MaxPracticalPwmStep {
			return newConfigurationError("fan.emc2301.maxStep", "must be in [0..%d], got %d", MaxPracticalPwmStep, maxStep)
		}
		updateInterval := emc.GetUpdateInterval()
		if updateInterval < 0 || updateInterval > MaxEmc2301UpdateInterval {
			return newConfigurationError("fan.emc2301.updateInterval", "must be in [0..%d], got %d", MaxEmc2301UpdateInterval, updateInterval)
		}
	}

	if config.File != nil {
		if len(config.File.Path) <= 0 {
			return newConfigurationError("fan.file.path", "no directory path provided")
		}
	}

	return nil
}

func validateServers(config *Configuration) error {
	if config.Statistics.Enabled && !isValidPort(config.Statistics.Port) {
		return newConfigurationError("statistics.port", "invalid port %d", config.Statistics.Port)
	}
	if config.Api.Enabled {
		if !isValidPort(config.Api.Port) {
			return newConfigurationError("api.port", "invalid port %d", config.Api.Port)
		}
		if config.Statistics.Enabled && config.Statistics.Port == config.Api.Port {
			return newConfigurationError("api.port", "port %d is already used by statistics", config.Api.Port)
		}
	}
	return nil
}

func isValidPort(port int) bool {
	return port > 0 && port <= 65535
}

func validateStress(config StressConfig) error {
	if config.Interval <= 0 {
		return newConfigurationError("stress.interval", "must be positive, got %s", config.Interval)
	}
	if config.Idle < 0 {
		return newConfigurationError("stress.idle", "must not be negative, got %s", config.Idle)
	}
	if config.Duration < 0 {
		return newConfigurationError("stress.duration", "must not be negative, got %s", config.Duration)
	}
	return nil
}
