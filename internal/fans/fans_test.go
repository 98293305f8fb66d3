package fans

import (
	"errors"
	"fmt"
)

// MockBus records all register writes and serves reads from its register map
type MockBus struct {
	Writes    []RegisterWrite
	Registers map[byte]byte
	// FailOn makes every transfer to the given register fail
	FailOn map[byte]error
	Closed bool
}

func NewMockBus() *MockBus {
	return &MockBus{
		Registers: map[byte]byte{},
		FailOn:    map[byte]error{},
	}
}

func (b *MockBus) WriteRegister(register byte, value byte) error {
	if err, ok := b.FailOn[register]; ok {
		return newBusError(register, OpWrite, err)
	}
	b.Writes = append(b.Writes, RegisterWrite{Register: register, Value: value})
	b.Registers[register] = value
	return nil
}

func (b *MockBus) ReadRegister(register byte) (byte, error) {
	if err, ok := b.FailOn[register]; ok {
		return 0, newBusError(register, OpRead, err)
	}
	value, ok := b.Registers[register]
	if !ok {
		return 0, newBusError(register, OpRead, fmt.Errorf("register not set"))
	}
	return value, nil
}

func (b *MockBus) Close() error {
	b.Closed = true
	return nil
}

var errNack = errors.New("no ack from device")
