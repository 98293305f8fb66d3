package testingutils

import (
	"errors"
	"sync"
)

// MockSensor returns the given values in order, repeating the last one
type MockSensor struct {
	mu     sync.Mutex
	ID     string
	Label  string
	Values []float64
	// Errors holds the result of each read in order, nil entries fall through to Values
	Errors []error
	// Err is returned by every read if set
	Err   error
	reads int
	// OnRead is called after each read with the number of reads so far
	OnRead func(reads int)
}

func (sensor *MockSensor) GetId() string {
	return sensor.ID
}

func (sensor *MockSensor) GetLabel() string {
	if len(sensor.Label) > 0 {
		return sensor.Label
	}
	return sensor.ID
}

func (sensor *MockSensor) GetValue() (float64, error) {
	sensor.mu.Lock()
	index := sensor.reads
	sensor.reads++
	reads := sensor.reads
	sensor.mu.Unlock()

	if sensor.OnRead != nil {
		defer sensor.OnRead(reads)
	}

	if sensor.Err != nil {
		return 0, sensor.Err
	}
	if index < len(sensor.Errors) && sensor.Errors[index] != nil {
		return 0, sensor.Errors[index]
	}
	if len(sensor.Values) == 0 {
		return 0, errors.New("no values")
	}
	if index >= len(sensor.Values) {
		index = len(sensor.Values) - 1
	}
	return sensor.Values[index], nil
}

// Reads returns the number of GetValue calls so far
func (sensor *MockSensor) Reads() int {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	return sensor.reads
}

// MockFan records all pwm writes without touching any hardware
type MockFan struct {
	mu           sync.Mutex
	ID           string
	PWM          int
	Writes       []int
	Configured   bool
	ConfigureErr error
	// SetPwmErrors holds the result of each SetPwm call in order
	SetPwmErrors []error
	setPwmCalls  int
}

func (fan *MockFan) GetId() string {
	return fan.ID
}

func (fan *MockFan) Configure() error {
	if fan.ConfigureErr != nil {
		return fan.ConfigureErr
	}
	fan.Configured = true
	return nil
}

func (fan *MockFan) GetPwm() (int, error) {
	fan.mu.Lock()
	defer fan.mu.Unlock()
	return fan.PWM, nil
}

func (fan *MockFan) SetPwm(pwm int) error {
	fan.mu.Lock()
	defer fan.mu.Unlock()
	index := fan.setPwmCalls
	fan.setPwmCalls++
	if index < len(fan.SetPwmErrors) && fan.SetPwmErrors[index] != nil {
		return fan.SetPwmErrors[index]
	}
	fan.PWM = pwm
	fan.Writes = append(fan.Writes, pwm)
	return nil
}

func (fan *MockFan) Close() error {
	return nil
}

func (fan *MockFan) GetWrites() []int {
	fan.mu.Lock()
	defer fan.mu.Unlock()
	return append([]int{}, fan.Writes...)
}
