package global

import (
	"fmt"
	"io"

	"github.com/markusressel/emcfan/internal/ui"
)

// Close closes c and reports a failure through err. If err already holds an error,
// the close error is only logged so the original cause is kept.
func Close(c io.Closer, name string, err *error) {
	closeErr := c.Close()
	if closeErr == nil {
		return
	}
	if *err == nil {
		*err = fmt.Errorf("unable to close %s: %w", name, closeErr)
		return
	}
	ui.Warning("Unable to close %s: %v", name, closeErr)
}
