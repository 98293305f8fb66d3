package fans

import (
	"fmt"
)

const (
	OpRead  = "read"
	OpWrite = "write"
)

// RegisterBus gives byte wide access to the registers of a single device
type RegisterBus interface {
	// WriteRegister writes a single byte to the given register
	WriteRegister(register byte, value byte) error
	// ReadRegister reads a single byte from the given register
	ReadRegister(register byte) (byte, error)
	Close() error
}

// RegisterMirror is implemented by buses that keep an in-memory copy of the registers
// they transferred. Reading the mirror never touches the bus.
type RegisterMirror interface {
	// Registers returns the last known value of every register, keyed by RegisterName
	Registers() map[string]byte
}

// RegisterName formats a register address, f.ex. "0x30"
func RegisterName(register byte) string {
	return fmt.Sprintf("0x%02X", register)
}

// BusError is returned when a register transfer fails
type BusError struct {
	Register byte
	Op       string
	Err      error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("%s of register 0x%02X failed: %v", e.Op, e.Register, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

func newBusError(register byte, op string, err error) *BusError {
	return &BusError{
		Register: register,
		Op:       op,
		Err:      err,
	}
}
