package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
)

// Terminal is the game's view of the screen and keyboard
// Coordinates are 1-based; writes are buffered until Flush
type Terminal interface {
	// Init enters raw mode and starts the input reader
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int, err error)

	// Events returns the asynchronous input queue; receivers must not block on it
	Events() <-chan Event

	// Clear erases the whole screen immediately
	Clear() error

	// SetCell writes r at column x, row y
	SetCell(x, y int, r rune)

	// SetString writes s starting at column x, row y
	SetString(x, y int, s string)

	// MoveCursor positions the cursor at column x, row y
	MoveCursor(x, y int)

	// Flush sends buffered output to the terminal
	Flush() error
}

// ansiTerminal implements Terminal with direct escape sequences over a Backend
type ansiTerminal struct {
	backend Backend
	writer  *bufio.Writer
	input   *inputReader

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a Terminal on the process's stdin and stdout
func New() Terminal {
	return newANSITerminal(newBackend())
}

func newANSITerminal(b Backend) *ansiTerminal {
	return &ansiTerminal{
		backend: b,
		writer:  bufio.NewWriterSize(backendWriter{b: b}, 16384),
		input:   newInputReader(b),
	}
}

// Init enters raw mode and hides the cursor
func (t *ansiTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}

	t.writer.Write(csiCursorHide)
	if err := t.writer.Flush(); err != nil {
		t.backend.Fini()
		return &IOError{Op: "write", Err: err}
	}

	t.input.start()
	t.initialized = true
	return nil
}

// Fini restores terminal state
func (t *ansiTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	t.input.stop()

	// Pending output is best effort; the buffer may hold a write error already
	t.writer.Write(csiSGR0)
	t.writer.Write(csiCursorShow)
	t.writer.Flush()

	t.backend.Fini()
	t.finalized = true
}

// Size returns current terminal dimensions
func (t *ansiTerminal) Size() (int, int, error) {
	w, h, err := t.backend.Size()
	if err != nil {
		return 0, 0, &IOError{Op: "size", Err: err}
	}
	return w, h, nil
}

// Events returns the input event channel
func (t *ansiTerminal) Events() <-chan Event {
	return t.input.events()
}

// Clear erases the screen and homes the cursor
func (t *ansiTerminal) Clear() error {
	t.writer.Write(csiClear)
	return t.Flush()
}

func (t *ansiTerminal) SetCell(x, y int, r rune) {
	writeGoto(t.writer, x, y)
	if r < 0x80 {
		t.writer.WriteByte(byte(r))
	} else {
		t.writer.WriteRune(r)
	}
}

func (t *ansiTerminal) SetString(x, y int, s string) {
	writeGoto(t.writer, x, y)
	t.writer.WriteString(s)
}

func (t *ansiTerminal) MoveCursor(x, y int) {
	writeGoto(t.writer, x, y)
}

// Flush writes buffered output; bufio keeps the first write error, so it surfaces here
func (t *ansiTerminal) Flush() error {
	if err := t.writer.Flush(); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	return nil
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiSGR0)
	w.Write(csiCursorShow)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
