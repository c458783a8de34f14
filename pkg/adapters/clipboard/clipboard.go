// Package clipboard bridges core.Clipboard to the operating system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/stampt/stampt/pkg/core"
)

// Bridge writes to the system clipboard through atotto/clipboard.
type Bridge struct {
	// unsupported reports whether no clipboard utility is available.
	unsupported func() bool
	write       func(string) error
}

// New returns a Bridge backed by the system clipboard.
func New() *Bridge {
	return &Bridge{
		unsupported: func() bool { return clipboard.Unsupported },
		write:       clipboard.WriteAll,
	}
}

// WriteAll copies text to the clipboard. A missing clipboard service, as on
// a headless machine, is reported as core.ErrClipboardUnavailable.
func (b *Bridge) WriteAll(text string) error {
	if b.unsupported() {
		return core.ErrClipboardUnavailable
	}
	if err := b.write(text); err != nil {
		return fmt.Errorf("%w: %v", core.ErrClipboardUnavailable, err)
	}
	return nil
}

var _ core.Clipboard = (*Bridge)(nil)
