package fans

import (
	"fmt"
	"strings"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

const devicePathPrefix = "/dev/i2c-"

var (
	hostInit    sync.Once
	hostInitErr error
)

// InitHost loads the periph host drivers, which is required before any bus can be opened.
// It is safe to call this multiple times.
func InitHost() error {
	hostInit.Do(func() {
		_, hostInitErr = host.Init()
	})
	return hostInitErr
}

// I2cBus is a RegisterBus talking SMBus style byte transfers to a device on an i2c bus
type I2cBus struct {
	mu   sync.Mutex
	name string
	bus  i2c.BusCloser
	dev  *i2c.Dev
}

// NewI2cBus opens the given bus and binds it to the device at address.
// The bus can be given as a number ("10"), a device path ("/dev/i2c-10") or a periph bus name ("I2C10").
// An empty name selects the first available bus.
func NewI2cBus(name string, address int) (*I2cBus, error) {
	if err := InitHost(); err != nil {
		return nil, fmt.Errorf("unable to initialize i2c host drivers: %w", err)
	}

	busName := NormalizeBusName(name)
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("unable to open i2c bus '%s': %w", name, err)
	}

	return &I2cBus{
		name: busName,
		bus:  bus,
		dev:  &i2c.Dev{Addr: uint16(address), Bus: bus},
	}, nil
}

// NormalizeBusName strips the device path prefix from the given bus name
func NormalizeBusName(name string) string {
	name = strings.TrimSpace(name)
	return strings.TrimPrefix(name, devicePathPrefix)
}

func (b *I2cBus) WriteRegister(register byte, value byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.dev.Tx([]byte{register, value}, nil); err != nil {
		return newBusError(register, OpWrite, err)
	}
	return nil
}

func (b *I2cBus) ReadRegister(register byte) (byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	read := make([]byte, 1)
	if err := b.dev.Tx([]byte{register}, read); err != nil {
		return 0, newBusError(register, OpRead, err)
	}
	return read[0], nil
}

func (b *I2cBus) Close() error {
	return b.bus.Close()
}

func (b *I2cBus) String() string {
	return fmt.Sprintf("%s@0x%02X", b.name, b.dev.Addr)
}

// BusInfo describes an i2c bus known to the host drivers
type BusInfo struct {
	Name    string
	Aliases []string
	Number  int
}

// ListBuses returns all i2c buses registered by the host drivers
func ListBuses() ([]BusInfo, error) {
	if err := InitHost(); err != nil {
		return nil, fmt.Errorf("unable to initialize i2c host drivers: %w", err)
	}

	var result []BusInfo
	for _, ref := range i2creg.All() {
		result = append(result, BusInfo{
			Name:    ref.Name,
			Aliases: ref.Aliases,
			Number:  ref.Number,
		})
	}
	return result, nil
}
