package engine

import (
	"context"
	"time"

	"github.com/lixenwraith/vi-snake/game"
	"github.com/lixenwraith/vi-snake/terminal"
)

// fakeTerminal keeps a cell grid instead of emitting bytes
type fakeTerminal struct {
	width    int
	height   int
	sizeErr  error
	flushErr error
	events   chan terminal.Event

	grid    map[game.Position]rune
	strings []string
	cursor  game.Position
	clears  int
	flushes int
}

func newFakeTerminal(width, height int) *fakeTerminal {
	return &fakeTerminal{
		width:  width,
		height: height,
		events: make(chan terminal.Event, 64),
		grid:   make(map[game.Position]rune),
	}
}

func (t *fakeTerminal) Init() error { return nil }
func (t *fakeTerminal) Fini()       {}

func (t *fakeTerminal) Size() (int, int, error) {
	if t.sizeErr != nil {
		return 0, 0, &terminal.IOError{Op: "size", Err: t.sizeErr}
	}
	return t.width, t.height, nil
}

func (t *fakeTerminal) Events() <-chan terminal.Event { return t.events }

func (t *fakeTerminal) Clear() error {
	t.clears++
	clear(t.grid)
	return nil
}

func (t *fakeTerminal) SetCell(x, y int, r rune) {
	t.grid[game.Position{X: x, Y: y}] = r
}

func (t *fakeTerminal) SetString(x, y int, s string) {
	t.strings = append(t.strings, s)
	for _, r := range s {
		t.SetCell(x, y, r)
		x++
	}
}

func (t *fakeTerminal) MoveCursor(x, y int) {
	t.cursor = game.Position{X: x, Y: y}
}

func (t *fakeTerminal) Flush() error {
	if t.flushErr != nil {
		return &terminal.IOError{Op: "write", Err: t.flushErr}
	}
	t.flushes++
	return nil
}

func (t *fakeTerminal) cell(x, y int) rune {
	return t.grid[game.Position{X: x, Y: y}]
}

func (t *fakeTerminal) press(r rune) {
	t.events <- terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: r}
}

// fakeClock records requested sleeps without waiting
// onSleep runs after the n-th sleep, 1-based, and may queue input for the next tick
type fakeClock struct {
	slept   []time.Duration
	onSleep func(n int)
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.slept = append(c.slept, d)
	if c.onSleep != nil {
		c.onSleep(len(c.slept))
	}
	return ctx.Err()
}

func (c *fakeClock) total(n int) time.Duration {
	var sum time.Duration
	for _, d := range c.slept[:n] {
		sum += d
	}
	return sum
}

// quitAfter presses q once n ticks have run
func quitAfter(term *fakeTerminal, n int) *fakeClock {
	return &fakeClock{onSleep: func(i int) {
		if i == n {
			term.press('q')
		}
	}}
}

type countingCues struct {
	eats  int
	overs int
}

func (c *countingCues) Eat()      { c.eats++ }
func (c *countingCues) GameOver() { c.overs++ }
