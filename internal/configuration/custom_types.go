package configuration

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/markusressel/emcfan/internal/util"
	"github.com/mitchellh/mapstructure"
)

// Optional is a generic container for optional configuration values.
type Optional[T any] struct {
	// Value holds the actual as unmarshalled.
	Value T
	// Present indicates if the value was present in the configuration.
	Present bool
}

// DefaultTrueBool is a boolean type that defaults to true if not present.
type DefaultTrueBool struct {
	Optional[bool]
}

// Get returns the boolean value, defaulting to true if not present.
func (b DefaultTrueBool) Get() bool {
	if !b.Present {
		return true
	}
	return b.Value
}

func (b DefaultTrueBool) MarshalYAML() (interface{}, error) {
	return b.Get(), nil
}

// DefaultTrueBoolHookFunc returns a mapstructure decode hook function for DefaultTrueBool.
func DefaultTrueBoolHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{}) (interface{}, error) {

		if t != reflect.TypeOf(DefaultTrueBool{}) {
			return data, nil
		}

		var val bool
		switch v := data.(type) {
		case bool:
			val = v
		case string:
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("expected a boolean, got '%s'", v)
			}
			val = parsed
		default:
			return data, nil
		}

		return DefaultTrueBool{
			Optional: Optional[bool]{
				Value:   val,
				Present: true,
			},
		}, nil
	}
}

// CurvePointsHookFunc returns a mapstructure decode hook that accepts the fan curve
// either as a list of {temp, duty} records or in the legacy "temp: duty" map format.
// Map keys have no order, so the legacy format is sorted by temperature.
func CurvePointsHookFunc() mapstructure.DecodeHookFuncType {
	curveType := reflect.TypeOf(CurveConfig{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != curveType {
			return data, nil
		}

		points, err := parseFloatMap(data)
		if err != nil {
			return nil, fmt.Errorf("curve: %w", err)
		}
		if points == nil {
			// not a map, let mapstructure decode the list
			if err := checkCurveList(data); err != nil {
				return nil, fmt.Errorf("curve: %w", err)
			}
			return data, nil
		}

		curve := make(CurveConfig, 0, len(points))
		for _, temp := range util.SortedKeys(points) {
			curve = append(curve, CurvePointConfig{Temp: temp, Duty: points[temp]})
		}
		return curve, nil
	}
}

// SecondsOrDurationHookFunc returns a mapstructure decode hook that decodes time.Duration values
// from numbers (interpreted as seconds) or duration strings like "100ms".
func SecondsOrDurationHookFunc() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != durationType {
			return data, nil
		}

		switch v := data.(type) {
		case time.Duration:
			return v, nil
		case string:
			if seconds, err := strconv.ParseFloat(v, 64); err == nil {
				return secondsToDuration(seconds)
			}
			d, err := time.ParseDuration(v)
			if err != nil {
				return nil, fmt.Errorf("expected a number of seconds or a duration, got '%s'", v)
			}
			return d, nil
		case bool:
			return nil, fmt.Errorf("expected a number of seconds or a duration, got '%v'", v)
		}

		seconds, err := anyToFloat(data)
		if err != nil {
			return nil, fmt.Errorf("expected a number of seconds or a duration: %w", err)
		}
		return secondsToDuration(seconds)
	}
}

// StrictIntHookFunc returns a mapstructure decode hook that rejects non-integral
// numbers for int fields instead of silently truncating them.
func StrictIntHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t.Kind() != reflect.Int {
			return data, nil
		}

		switch v := data.(type) {
		case float64:
			if v != math.Trunc(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("expected an integer, got '%v'", v)
			}
			return int(v), nil
		case float32:
			return nil, fmt.Errorf("expected an integer, got '%v'", v)
		case bool:
			return nil, fmt.Errorf("expected an integer, got '%v'", v)
		case string:
			n, err := strconv.ParseInt(v, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("expected an integer, got '%s'", v)
			}
			return int(n), nil
		}
		return data, nil
	}
}

// StrictFloatHookFunc returns a mapstructure decode hook that rejects booleans and
// non-numeric strings for float fields instead of silently converting them to 0 or 1.
func StrictFloatHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t.Kind() != reflect.Float64 {
			return data, nil
		}

		switch v := data.(type) {
		case bool:
			return nil, fmt.Errorf("expected a number, got '%v'", v)
		case string:
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("expected a number, got '%s'", v)
			}
			return n, nil
		}
		return data, nil
	}
}

// checkCurveList ensures every record of a curve list carries both a temp and a duty value,
// as mapstructure silently decodes missing or null values to 0.
func checkCurveList(data interface{}) error {
	list, ok := data.([]interface{})
	if !ok {
		return nil
	}
	for i, entry := range list {
		var temp, duty interface{}
		switch record := entry.(type) {
		case map[string]interface{}:
			temp, duty = lookupIgnoreCase(record, "temp"), lookupIgnoreCase(record, "duty")
		case map[interface{}]interface{}:
			converted := make(map[string]interface{}, len(record))
			for k, v := range record {
				converted[fmt.Sprint(k)] = v
			}
			temp, duty = lookupIgnoreCase(converted, "temp"), lookupIgnoreCase(converted, "duty")
		default:
			continue
		}
		if temp == nil {
			return fmt.Errorf("point %d has no temp value", i+1)
		}
		if duty == nil {
			return fmt.Errorf("point %d has no duty value", i+1)
		}
	}
	return nil
}

func lookupIgnoreCase(record map[string]interface{}, key string) interface{} {
	for k, v := range record {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

func secondsToDuration(seconds float64) (time.Duration, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("expected a number of seconds, got '%v'", seconds)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// parseFloatMap converts the map types produced by YAML decoding into map[float64]float64.
// Returns nil without error if data is not a map.
func parseFloatMap(data interface{}) (map[float64]float64, error) {
	result := make(map[float64]float64)
	switch v := data.(type) {
	case map[interface{}]interface{}:
		for k, val := range v {
			if err := putFloatPair(result, k, val); err != nil {
				return nil, err
			}
		}
	case map[string]interface{}:
		for k, val := range v {
			if err := putFloatPair(result, k, val); err != nil {
				return nil, err
			}
		}
	case map[float64]float64:
		return v, nil
	case map[int]int:
		for k, val := range v {
			result[float64(k)] = float64(val)
		}
	default:
		return nil, nil
	}
	return result, nil
}

func putFloatPair(target map[float64]float64, k interface{}, val interface{}) error {
	key, err := anyToFloat(k)
	if err != nil {
		return fmt.Errorf("temperature %v is not numeric", k)
	}
	value, err := anyToFloat(val)
	if err != nil {
		return fmt.Errorf("duty %v of temperature %v is not numeric", val, k)
	}
	if _, exists := target[key]; exists {
		return fmt.Errorf("duplicate temperature %v", k)
	}
	target[key] = value
	return nil
}

// anyToFloat converts numeric and string values to float64.
func anyToFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case uint64:
		return float64(val), nil
	case float32:
		return float64(val), nil
	case float64:
		return val, nil
	case string:
		n, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as number: %w", val, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to number", v)
	}
}
