package stress

import (
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/markusressel/emcfan/internal/ui"
)

// LoadGenerator puts the cpu under load
type LoadGenerator interface {
	Start(duration time.Duration) error
	Stop() error
}

// ProcessLoadGenerator runs an external "stress" compatible executable
// in its own process group, using one worker per cpu.
type ProcessLoadGenerator struct {
	mu   sync.Mutex
	Exec string
	cmd  *exec.Cmd
	done chan error
}

func NewProcessLoadGenerator(executable string) *ProcessLoadGenerator {
	return &ProcessLoadGenerator{
		Exec: executable,
	}
}

// Args returns the arguments used to run the executable for the given duration
func (g *ProcessLoadGenerator) Args(duration time.Duration) []string {
	seconds := int(duration.Round(time.Second) / time.Second)
	return []string{"-q", "-c", strconv.Itoa(runtime.NumCPU()), "-t", strconv.Itoa(seconds)}
}

func (g *ProcessLoadGenerator) Start(duration time.Duration) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cmd != nil {
		return nil
	}

	cmd := exec.Command(g.Exec, g.Args(duration)...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("unable to start %s: %w", g.Exec, err)
	}
	ui.Debug("Started %s with pid %d", g.Exec, cmd.Process.Pid)

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	g.cmd = cmd
	g.done = done
	return nil
}

// Stop interrupts the whole process group and waits for the process to exit
func (g *ProcessLoadGenerator) Stop() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cmd == nil {
		return nil
	}

	select {
	case <-g.done:
		// already exited on its own
	default:
		if err := syscall.Kill(-g.cmd.Process.Pid, syscall.SIGINT); err != nil {
			return fmt.Errorf("unable to stop %s: %w", g.Exec, err)
		}
		<-g.done
	}

	g.cmd = nil
	g.done = nil
	return nil
}
