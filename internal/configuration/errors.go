package configuration

import "fmt"

// ConfigurationError is returned when the configuration is malformed or violates a constraint.
// It is fatal: the controller must not be started with an invalid configuration.
type ConfigurationError struct {
	// Field is the configuration key the error refers to, empty if not attributable
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if len(e.Field) <= 0 {
		return fmt.Sprintf("invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func newConfigurationError(field string, format string, a ...interface{}) *ConfigurationError {
	return &ConfigurationError{
		Field:  field,
		Reason: fmt.Sprintf(format, a...),
	}
}
