package terminal

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/constants"
)

// tcellTerminal implements Terminal on a tcell.Screen
type tcellTerminal struct {
	screen  tcell.Screen
	style   tcell.Style
	eventCh chan Event
	doneCh  chan struct{}

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewTcell creates a Terminal backed by tcell's terminfo-driven screen
func NewTcell() (Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcell screen: %w", err)
	}
	return NewTcellScreen(screen), nil
}

// NewTcellScreen wraps an existing screen, e.g. a tcell.SimulationScreen in tests
func NewTcellScreen(screen tcell.Screen) Terminal {
	return &tcellTerminal{
		screen:  screen,
		style:   tcell.StyleDefault,
		eventCh: make(chan Event, constants.EventQueueSize),
		doneCh:  make(chan struct{}),
	}
}

func (t *tcellTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	t.screen.SetStyle(t.style)
	t.screen.HideCursor()

	go t.pollLoop()
	t.initialized = true
	return nil
}

// pollLoop forwards key events until the screen is finalized
func (t *tcellTerminal) pollLoop() {
	defer close(t.doneCh)

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			t.send(Event{Type: EventClosed})
			return
		}
		if kev, ok := ev.(*tcell.EventKey); ok {
			t.send(convertTcellKey(kev))
		}
	}
}

func (t *tcellTerminal) send(ev Event) {
	pushLatest(t.eventCh, ev)
}

func (t *tcellTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	t.screen.Fini()
	select {
	case <-t.doneCh:
	case <-time.After(200 * time.Millisecond):
	}
	t.finalized = true
}

func (t *tcellTerminal) Size() (int, int, error) {
	w, h := t.screen.Size()
	return w, h, nil
}

func (t *tcellTerminal) Events() <-chan Event {
	return t.eventCh
}

func (t *tcellTerminal) Clear() error {
	t.screen.Clear()
	t.screen.Show()
	return nil
}

func (t *tcellTerminal) SetCell(x, y int, r rune) {
	t.screen.SetContent(x-1, y-1, r, nil, t.style)
}

func (t *tcellTerminal) SetString(x, y int, s string) {
	for _, r := range s {
		t.screen.SetContent(x-1, y-1, r, nil, t.style)
		x++
	}
}

func (t *tcellTerminal) MoveCursor(x, y int) {
	t.screen.ShowCursor(x-1, y-1)
}

func (t *tcellTerminal) Flush() error {
	t.screen.Show()
	return nil
}

// convertTcellKey maps tcell key events onto the package's Event
// tcell aliases Enter/Tab/Backspace/Escape with Ctrl codes, so those are matched first
func convertTcellKey(ev *tcell.EventKey) Event {
	out := Event{Type: EventKey}

	if ev.Modifiers()&tcell.ModShift != 0 {
		out.Modifiers |= ModShift
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		out.Modifiers |= ModAlt
	}
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		out.Modifiers |= ModCtrl
	}

	switch k := ev.Key(); k {
	case tcell.KeyRune:
		out.Key = KeyRune
		out.Rune = ev.Rune()
	case tcell.KeyUp:
		out.Key = KeyUp
	case tcell.KeyDown:
		out.Key = KeyDown
	case tcell.KeyLeft:
		out.Key = KeyLeft
	case tcell.KeyRight:
		out.Key = KeyRight
	case tcell.KeyEnter:
		out.Key = KeyEnter
	case tcell.KeyTab:
		out.Key = KeyTab
	case tcell.KeyEscape:
		out.Key = KeyEscape
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		out.Key = KeyBackspace
	default:
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			out.Key = CtrlKey('a' + byte(k-tcell.KeyCtrlA))
			out.Modifiers |= ModCtrl
		}
	}
	return out
}
