package handoff

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnsupported is returned when no clipboard utility is available
var ErrClipboardUnsupported = errors.New("clipboard not supported on this system")

// Clipboard replaces the system clipboard content with a labelled text
type Clipboard interface {
	WriteText(label, text string) error
}

// SystemClipboard writes through github.com/atotto/clipboard. Desktop
// clipboards carry no label, so the label is ignored.
type SystemClipboard struct{}

// WriteText copies text to the system clipboard
func (SystemClipboard) WriteText(label, text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy %s to clipboard: %w", label, err)
	}
	return nil
}
