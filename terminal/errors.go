package terminal

import (
	"errors"
	"fmt"
)

var (
	// ErrNotTerminal is returned by Init when stdin is not a tty
	ErrNotTerminal = errors.New("stdin is not a terminal")

	// ErrUnsupported is returned by Init on platforms without a backend
	ErrUnsupported = errors.New("terminal backend not supported on this platform")
)

// IOError reports a failed terminal read, write or size query
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
