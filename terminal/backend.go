package terminal

// Backend abstracts platform-specific terminal operations
type Backend interface {
	// Init enters raw mode
	Init() error

	// Fini restores the saved terminal mode
	Fini()

	// Size returns the current column and row counts
	Size() (width, height int, err error)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error

	// Read blocks until input is available, the stop channel is closed, or an error occurs
	// A nil slice with nil error means timeout or stop
	Read(stopCh <-chan struct{}) ([]byte, error)
}

// backendWriter adapts Backend to io.Writer for buffered output
type backendWriter struct {
	b Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
