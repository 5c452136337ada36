package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard writer is configured.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer writes text to a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

// WriteAll implements Writer.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// Copy writes text with w on a new goroutine. Exactly one result is
// delivered on the returned channel: nil on success or the wrapped failure.
func Copy(w Writer, text string) <-chan error {
	result := make(chan error, 1)
	if w == nil {
		result <- fmt.Errorf("copying to clipboard: %w", ErrUnavailable)
		close(result)
		return result
	}

	go func() {
		defer close(result)
		if err := w.WriteAll(text); err != nil {
			result <- fmt.Errorf("copying to clipboard: %w", err)
			return
		}
		result <- nil
	}()
	return result
}
