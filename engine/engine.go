// Package engine runs the tick loop: sample size and input, advance the game, paint the delta, sleep.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/lixenwraith/vi-snake/game"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/render"
	"github.com/lixenwraith/vi-snake/status"
	"github.com/lixenwraith/vi-snake/terminal"
)

// Config holds the collaborators of an Engine; zero fields get defaults
type Config struct {
	KeyMap *input.KeyMap
	Rand   game.Rand
	Clock  Clock
	Cues   Cues
	Status *status.Registry

	// State resumes a prepared game instead of starting one sized to the terminal
	State *game.State
}

// Engine owns the terminal for the duration of one game
type Engine struct {
	term     terminal.Terminal
	renderer *render.Renderer
	keymap   *input.KeyMap
	rng      game.Rand
	clock    Clock
	cues     Cues
	status   *status.Registry
	state    *game.State

	// Cached metric pointers
	ticks     *atomic.Int64
	apples    *atomic.Int64
	cells     *atomic.Int64
	coalesced *atomic.Int64
	rejected  *atomic.Int64
	gameOver  *status.AtomicString
}

// New wires an engine over an initialized terminal
func New(term terminal.Terminal, cfg Config) *Engine {
	e := &Engine{
		term:     term,
		renderer: render.NewRenderer(term),
		keymap:   cfg.KeyMap,
		rng:      cfg.Rand,
		clock:    cfg.Clock,
		cues:     cfg.Cues,
		status:   cfg.Status,
		state:    cfg.State,
	}
	if e.keymap == nil {
		e.keymap = input.DefaultKeyMap()
	}
	if e.rng == nil {
		e.rng = game.NewFastRand(0)
	}
	if e.clock == nil {
		e.clock = WallClock{}
	}
	if e.cues == nil {
		e.cues = NopCues{}
	}
	if e.status == nil {
		e.status = status.NewRegistry()
	}

	e.ticks = e.status.Ints.Get(status.Ticks)
	e.apples = e.status.Ints.Get(status.Apples)
	e.cells = e.status.Ints.Get(status.CellsDrawn)
	e.coalesced = e.status.Ints.Get(status.EventsCoalesced)
	e.rejected = e.status.Ints.Get(status.DirectionRejected)
	e.gameOver = e.status.Strings.Get(status.GameOver)
	return e
}

// State exposes the game state; nil until Run has sized a new game
func (e *Engine) State() *game.State {
	return e.state
}

// Run plays until the snake dies, the player quits or ctx is cancelled
// Returns the apples eaten; the error is non-nil only for terminal I/O failures
func (e *Engine) Run(ctx context.Context) (uint, error) {
	if e.state == nil {
		w, h, err := e.term.Size()
		if err != nil {
			return 0, fmt.Errorf("engine start: %w", err)
		}
		e.state = game.NewState(w, h, e.rng)
	}

	if err := e.term.Clear(); err != nil {
		return 0, fmt.Errorf("engine start: %w", err)
	}

	for {
		step, err := e.tick()
		if err != nil {
			return e.state.Apples, err
		}

		if err := e.clock.Sleep(ctx, TickDuration(e.state.Direction.IsVertical())); err != nil {
			// Cancellation ends the game like a quit
			log.Printf("game cancelled: %v", err)
			e.gameOver.Store("cancelled")
			break
		}

		if !game.IsContinuing(step) {
			break
		}
	}

	e.renderer.Finish()
	if err := e.term.Flush(); err != nil {
		return e.state.Apples, fmt.Errorf("engine finish: %w", err)
	}
	return e.state.Apples, nil
}

// tick performs one iteration up to and including the flush
func (e *Engine) tick() (game.Step, error) {
	s := e.state
	n := e.ticks.Load() + 1

	width, height, err := e.term.Size()
	if err != nil {
		return nil, fmt.Errorf("tick %d: %w", n, err)
	}

	cells := e.renderer.Header(width, s.Apples)

	action, err := e.sampleInput()
	if err != nil {
		return nil, fmt.Errorf("tick %d: %w", n, err)
	}

	applesBefore, rejectedBefore := s.Apples, s.Rejected
	step := s.Tick(action, width, height)

	if s.Apples > applesBefore {
		e.cues.Eat()
	}
	e.rejected.Add(int64(s.Rejected - rejectedBefore))
	e.apples.Store(int64(s.Apples))

	switch st := step.(type) {
	case game.Done:
		log.Printf("game over at tick %d: %s", n, st.Message)
		e.gameOver.Store(st.Message)
		e.cues.GameOver()
	case game.Quit:
		log.Printf("player quit at tick %d", n)
		e.gameOver.Store("quit")
	}

	cells += e.renderer.Step(step, width, height)
	if err := e.term.Flush(); err != nil {
		return nil, fmt.Errorf("tick %d: %w", n, err)
	}

	e.cells.Add(int64(cells))
	e.ticks.Add(1)
	return step, nil
}

// sampleInput drains the event queue without blocking and resolves the last event
func (e *Engine) sampleInput() (game.Action, error) {
	ev, n := input.Latest(e.term.Events())
	if n == 0 {
		return game.ActionNone, nil
	}
	e.coalesced.Add(int64(n - 1))

	switch ev.Type {
	case terminal.EventError:
		var ioErr *terminal.IOError
		if errors.As(ev.Err, &ioErr) {
			return game.ActionNone, ev.Err
		}
		return game.ActionNone, &terminal.IOError{Op: "read", Err: ev.Err}
	case terminal.EventClosed:
		return game.ActionQuit, nil
	}
	return e.keymap.Resolve(ev), nil
}
