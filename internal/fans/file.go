package fans

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/markusressel/emcfan/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// FileBus is a RegisterBus that mirrors every register into its own file
// inside a directory, f.ex. "reg_0x30". It is used for dry runs without hardware.
type FileBus struct {
	dir       string
	registers cmap.ConcurrentMap[string, byte]
}

func NewFileBus(dir string) (*FileBus, error) {
	dir, err := util.ExpandHomeDir(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create register directory %s: %w", dir, err)
	}
	return &FileBus{
		dir:       dir,
		registers: cmap.New[byte](),
	}, nil
}

func registerFileName(register byte) string {
	return fmt.Sprintf("reg_0x%02x", register)
}

// RegisterPath returns the path of the file backing the given register
func (b *FileBus) RegisterPath(register byte) string {
	return filepath.Join(b.dir, registerFileName(register))
}

func (b *FileBus) WriteRegister(register byte, value byte) error {
	if err := util.WriteIntToFileAtomic(int(value), b.RegisterPath(register)); err != nil {
		return newBusError(register, OpWrite, err)
	}
	b.registers.Set(RegisterName(register), value)
	return nil
}

func (b *FileBus) ReadRegister(register byte) (byte, error) {
	value, err := util.ReadIntFromFile(b.RegisterPath(register))
	if err != nil {
		return 0, newBusError(register, OpRead, err)
	}
	if value < 0 || value > 0xFF {
		return 0, newBusError(register, OpRead, errors.New("value does not fit into a single byte"))
	}
	b.registers.Set(RegisterName(register), byte(value))
	return byte(value), nil
}

// Registers returns the last known value of every register touched through this bus
func (b *FileBus) Registers() map[string]byte {
	return b.registers.Items()
}

func (b *FileBus) Close() error {
	b.registers.Clear()
	return nil
}

func (b *FileBus) String() string {
	return b.dir
}
