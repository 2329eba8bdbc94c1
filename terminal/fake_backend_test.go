package terminal

import (
	"bytes"
	"sync"
	"time"
)

// fakeBackend scripts input chunks and records output
type fakeBackend struct {
	mu       sync.Mutex
	reads    chan []byte
	readErr  error
	out      bytes.Buffer
	writeErr error
	sizeErr  error
	width    int
	height   int
	inits    int
	finis    int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		reads:  make(chan []byte, 16),
		width:  80,
		height: 24,
	}
}

func (b *fakeBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inits++
	return nil
}

func (b *fakeBackend) Fini() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.finis++
}

func (b *fakeBackend) Size() (int, int, error) {
	if b.sizeErr != nil {
		return 0, 0, b.sizeErr
	}
	return b.width, b.height, nil
}

func (b *fakeBackend) Write(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.writeErr != nil {
		return b.writeErr
	}
	b.out.Write(p)
	return nil
}

func (b *fakeBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	if b.readErr != nil {
		return nil, b.readErr
	}
	select {
	case d := <-b.reads:
		return d, nil
	case <-stopCh:
		return nil, nil
	case <-time.After(10 * time.Millisecond):
		return nil, nil
	}
}

func (b *fakeBackend) output() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out.String()
}
