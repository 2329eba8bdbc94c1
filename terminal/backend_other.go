//go:build !unix

package terminal

type unsupportedBackend struct{}

func newBackend() Backend {
	return unsupportedBackend{}
}

func (unsupportedBackend) Init() error                          { return ErrUnsupported }
func (unsupportedBackend) Fini()                                {}
func (unsupportedBackend) Size() (int, int, error)              { return 0, 0, ErrUnsupported }
func (unsupportedBackend) Write([]byte) error                   { return ErrUnsupported }
func (unsupportedBackend) Read(<-chan struct{}) ([]byte, error) { return nil, ErrUnsupported }

func resetTerminalMode() {}
