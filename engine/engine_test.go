package engine

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/game"
	"github.com/lixenwraith/vi-snake/status"
	"github.com/lixenwraith/vi-snake/terminal"
)

type pos = game.Position

func newEngine(term *fakeTerminal, clock Clock, state *game.State) (*Engine, *status.Registry) {
	reg := status.NewRegistry()
	e := New(term, Config{
		Rand:   game.NewFastRand(7),
		Clock:  clock,
		Status: reg,
		State:  state,
	})
	return e, reg
}

func TestRunStraightLine(t *testing.T) {
	term := newFakeTerminal(40, 20)
	clock := quitAfter(term, 5)
	state := game.NewStateFrom(game.SnakeOf(pos{X: 20, Y: 10}), game.Right, pos{X: 1, Y: 20}, 40, 20, game.NewFastRand(1))

	e, reg := newEngine(term, clock, state)
	apples, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if apples != 0 {
		t.Errorf("Expected 0 apples, got %d", apples)
	}
	if head := state.Snake.Head(); head != (pos{X: 25, Y: 10}) {
		t.Errorf("Expected head (25, 10), got %v", head)
	}
	if state.Snake.Len() != 1 || state.Direction != game.Right {
		t.Errorf("Expected length 1 heading right, got %d %v", state.Snake.Len(), state.Direction)
	}

	if term.cell(25, 10) != '#' || term.cell(24, 10) != ' ' {
		t.Errorf("Expected snake drawn at (25, 10) and trail erased, got %q %q", term.cell(25, 10), term.cell(24, 10))
	}
	if term.cell(1, 20) != '@' {
		t.Errorf("Expected apple at (1, 20), got %q", term.cell(1, 20))
	}
	if got := reg.Ints.Get(status.Ticks).Load(); got != 6 {
		t.Errorf("Expected 6 ticks (5 moves and the quit), got %d", got)
	}
	if term.clears != 1 {
		t.Errorf("Expected one clear at start, got %d", term.clears)
	}
}

func TestRunHitRightWall(t *testing.T) {
	term := newFakeTerminal(22, 20)
	clock := &fakeClock{}
	cues := &countingCues{}
	state := game.NewStateFrom(game.SnakeOf(pos{X: 20, Y: 10}), game.Right, pos{X: 1, Y: 3}, 22, 20, game.NewFastRand(1))

	reg := status.NewRegistry()
	e := New(term, Config{Clock: clock, Cues: cues, Status: reg, State: state})

	apples, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if apples != 0 {
		t.Errorf("Expected 0 apples, got %d", apples)
	}

	if len(clock.slept) != 3 {
		t.Errorf("Expected 3 ticks, got %d", len(clock.slept))
	}
	if !slices.Contains(term.strings, "Broke out the sides") {
		t.Errorf("Expected game over message, got %v", term.strings)
	}
	// 22/2 - 19/2 = 2, row 20/2
	if term.cell(2, 10) != 'B' {
		t.Errorf("Expected message to start at (2, 10), got %q", term.cell(2, 10))
	}
	if term.cursor != (pos{X: 1, Y: 1}) {
		t.Errorf("Expected cursor parked at (1, 1), got %v", term.cursor)
	}
	if cues.overs != 1 || cues.eats != 0 {
		t.Errorf("Expected one game-over cue, got eats=%d overs=%d", cues.eats, cues.overs)
	}
	if got := reg.Strings.Get(status.GameOver).Load(); got != "Broke out the sides" {
		t.Errorf("Expected game_over metric, got %q", got)
	}
}

func TestRunNoReverse(t *testing.T) {
	term := newFakeTerminal(40, 20)
	clock := quitAfter(term, 1)
	state := game.NewStateFrom(game.SnakeOf(pos{X: 10, Y: 10}, pos{X: 9, Y: 10}, pos{X: 8, Y: 10}), game.Right, pos{X: 1, Y: 20}, 40, 20, game.NewFastRand(1))
	term.press('h')

	e, reg := newEngine(term, clock, state)
	if _, err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if state.Direction != game.Right {
		t.Errorf("Expected direction to stay right, got %v", state.Direction)
	}
	want := []pos{{X: 11, Y: 10}, {X: 10, Y: 10}, {X: 9, Y: 10}}
	if !slices.Equal(state.Snake.Cells(), want) {
		t.Errorf("Expected %v, got %v", want, state.Snake.Cells())
	}
	if slices.Contains(term.strings, "Self intercept at (9, 10)") {
		t.Error("Reverse request must not cause a self intercept")
	}
	if got := reg.Ints.Get(status.DirectionRejected).Load(); got != 1 {
		t.Errorf("Expected 1 rejected turn, got %d", got)
	}
}

func TestRunEating(t *testing.T) {
	term := newFakeTerminal(40, 20)
	clock := quitAfter(term, 1)
	cues := &countingCues{}
	state := game.NewStateFrom(game.SnakeOf(pos{X: 10, Y: 10}), game.Right, pos{X: 11, Y: 10}, 40, 20, game.NewFastRand(5))

	e := New(term, Config{Clock: clock, Cues: cues, State: state})
	apples, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if apples != 1 {
		t.Errorf("Expected 1 apple, got %d", apples)
	}
	if want := []pos{{X: 11, Y: 10}, {X: 10, Y: 10}}; !slices.Equal(state.Snake.Cells(), want) {
		t.Errorf("Expected %v, got %v", want, state.Snake.Cells())
	}
	if !game.InPlayfield(state.Apple, 40, 20) || state.Snake.Contains(state.Apple) {
		t.Errorf("Respawned apple %v is not a free playfield cell", state.Apple)
	}
	if term.cell(state.Apple.X, state.Apple.Y) != '@' {
		t.Error("Expected respawned apple drawn")
	}
	if cues.eats != 1 {
		t.Errorf("Expected one eat cue, got %d", cues.eats)
	}
	// Header of the quit tick shows the new score
	if !slices.Contains(term.strings, "Apples: 1") {
		t.Errorf("Expected updated score in header, got %v", term.strings)
	}
}

func TestRunQuit(t *testing.T) {
	term := newFakeTerminal(40, 20)
	clock := &fakeClock{}
	state := game.NewStateFrom(game.SnakeOf(pos{X: 20, Y: 10}), game.Right, pos{X: 1, Y: 20}, 40, 20, game.NewFastRand(1))
	term.press('q')

	e, reg := newEngine(term, clock, state)
	apples, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if apples != 0 {
		t.Errorf("Expected 0 apples, got %d", apples)
	}
	if state.Snake.Head() != (pos{X: 20, Y: 10}) {
		t.Errorf("Expected snake not to move, got %v", state.Snake.Head())
	}
	for _, s := range term.strings {
		if s != "Apples: 0" && !strings.HasPrefix(s, "=") {
			t.Errorf("Expected no centered message, got %q", s)
		}
	}
	if reg.Ints.Get(status.Ticks).Load() != 1 {
		t.Errorf("Expected a single tick, got %d", reg.Ints.Get(status.Ticks).Load())
	}
	if term.cursor != (pos{X: 1, Y: 1}) {
		t.Errorf("Expected cursor parked at (1, 1), got %v", term.cursor)
	}
}

func TestRunPacing(t *testing.T) {
	tests := []struct {
		name  string
		start pos
		dir   game.Direction
		want  time.Duration
	}{
		{"vertical", pos{X: 20, Y: 30}, game.Up, 10 * constants.UpDownTick},
		{"horizontal", pos{X: 5, Y: 20}, game.Right, 10 * constants.LeftRightTick},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := newFakeTerminal(80, 40)
			clock := quitAfter(term, 10)
			state := game.NewStateFrom(game.SnakeOf(tt.start), tt.dir, pos{X: 1, Y: 40}, 80, 40, game.NewFastRand(1))

			e, _ := newEngine(term, clock, state)
			if _, err := e.Run(context.Background()); err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if got := clock.total(10); got != tt.want {
				t.Errorf("Expected %v over 10 ticks, got %v", tt.want, got)
			}
		})
	}
}

func TestRunCoalescesInput(t *testing.T) {
	tests := []struct {
		name    string
		keys    string
		wantDir game.Direction
	}{
		{"last direction wins", "kj", game.Down},
		{"earlier quit is discarded", "qk", game.Up},
		{"unbound last event ignores earlier turn", "kx", game.Right},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := newFakeTerminal(40, 20)
			clock := quitAfter(term, 1)
			state := game.NewStateFrom(game.SnakeOf(pos{X: 20, Y: 10}), game.Right, pos{X: 1, Y: 20}, 40, 20, game.NewFastRand(1))
			for _, r := range tt.keys {
				term.press(r)
			}

			e, reg := newEngine(term, clock, state)
			if _, err := e.Run(context.Background()); err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if state.Direction != tt.wantDir {
				t.Errorf("Expected %v, got %v", tt.wantDir, state.Direction)
			}
			if got := reg.Ints.Get(status.EventsCoalesced).Load(); got != int64(len(tt.keys)-1) {
				t.Errorf("Expected %d coalesced events, got %d", len(tt.keys)-1, got)
			}
		})
	}
}

func TestRunArrowKeys(t *testing.T) {
	term := newFakeTerminal(40, 20)
	clock := quitAfter(term, 1)
	state := game.NewStateFrom(game.SnakeOf(pos{X: 20, Y: 10}), game.Right, pos{X: 1, Y: 20}, 40, 20, game.NewFastRand(1))
	term.events <- terminal.Event{Type: terminal.EventKey, Key: terminal.KeyDown}

	e, _ := newEngine(term, clock, state)
	if _, err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if state.Snake.Head() != (pos{X: 20, Y: 11}) {
		t.Errorf("Expected head (20, 11), got %v", state.Snake.Head())
	}
}

func TestRunInputClosedQuits(t *testing.T) {
	term := newFakeTerminal(40, 20)
	state := game.NewStateFrom(game.SnakeOf(pos{X: 20, Y: 10}), game.Right, pos{X: 1, Y: 20}, 40, 20, game.NewFastRand(1))
	term.events <- terminal.Event{Type: terminal.EventClosed}

	e, _ := newEngine(term, &fakeClock{}, state)
	if _, err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if state.Snake.Head() != (pos{X: 20, Y: 10}) {
		t.Errorf("Expected no movement, got %v", state.Snake.Head())
	}
}

func TestRunTerminalErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name   string
		setup  func(*fakeTerminal)
		wantOp string
	}{
		{"size", func(ft *fakeTerminal) { ft.sizeErr = boom }, "size"},
		{"flush", func(ft *fakeTerminal) { ft.flushErr = boom }, "write"},
		{"input", func(ft *fakeTerminal) {
			ft.events <- terminal.Event{Type: terminal.EventError, Err: boom}
		}, "read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := newFakeTerminal(40, 20)
			tt.setup(term)
			state := game.NewStateFrom(game.SnakeOf(pos{X: 20, Y: 10}), game.Right, pos{X: 1, Y: 20}, 40, 20, game.NewFastRand(1))
			clock := &fakeClock{}

			e, _ := newEngine(term, clock, state)
			_, err := e.Run(context.Background())

			var ioErr *terminal.IOError
			if !errors.As(err, &ioErr) || ioErr.Op != tt.wantOp {
				t.Fatalf("Expected %s IOError, got %v", tt.wantOp, err)
			}
			if !errors.Is(err, boom) {
				t.Errorf("Expected cause preserved, got %v", err)
			}
			if len(clock.slept) != 0 {
				t.Error("Expected loop aborted before the first sleep")
			}
		})
	}
}

func TestRunStartsFromTerminalSize(t *testing.T) {
	term := newFakeTerminal(40, 20)
	term.press('q')

	e, _ := newEngine(term, &fakeClock{}, nil)
	if _, err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	s := e.State()
	if s == nil || s.Snake.Head() != (pos{X: 20, Y: 10}) || s.Direction != game.Right {
		t.Fatalf("Expected new game centered at (20, 10) heading right, got %+v", s)
	}
	if !game.InPlayfield(s.Apple, 40, 20) {
		t.Errorf("Apple %v outside playfield", s.Apple)
	}
}

func TestRunCancelled(t *testing.T) {
	term := newFakeTerminal(40, 20)
	state := game.NewStateFrom(game.SnakeOf(pos{X: 20, Y: 10}), game.Right, pos{X: 1, Y: 20}, 40, 20, game.NewFastRand(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e, reg := newEngine(term, WallClock{}, state)
	if _, err := e.Run(ctx); err != nil {
		t.Fatalf("Expected cancellation to end the game cleanly, got %v", err)
	}
	if got := reg.Ints.Get(status.Ticks).Load(); got != 1 {
		t.Errorf("Expected one tick before the cancelled sleep, got %d", got)
	}
	if got := reg.Strings.Get(status.GameOver).Load(); got != "cancelled" {
		t.Errorf("Expected cancelled, got %q", got)
	}
}

func TestRandomPlayConservesApples(t *testing.T) {
	keys := []rune{'h', 'j', 'k', 'l', 'x'}

	for seed := uint64(1); seed <= 20; seed++ {
		term := newFakeTerminal(30, 15)
		rng := game.NewFastRand(seed)
		clock := &fakeClock{onSleep: func(n int) {
			if n > 500 {
				term.press('q')
				return
			}
			term.press(keys[rng.Intn(len(keys))])
		}}
		cues := &countingCues{}
		state := game.NewState(30, 15, game.NewFastRand(seed+100))

		e := New(term, Config{Clock: clock, Cues: cues, State: state})
		apples, err := e.Run(context.Background())
		if err != nil {
			t.Fatalf("seed %d: Run failed: %v", seed, err)
		}

		if apples != uint(cues.eats) {
			t.Errorf("seed %d: score %d, eat cues %d", seed, apples, cues.eats)
		}
		if uint(state.Snake.Len()) != apples+1 {
			t.Errorf("seed %d: length %d, expected %d", seed, state.Snake.Len(), apples+1)
		}
	}
}

func TestWallClock(t *testing.T) {
	if err := (WallClock{}).Sleep(context.Background(), time.Millisecond); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (WallClock{}).Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestTickDuration(t *testing.T) {
	if TickDuration(true) != 150*time.Millisecond || TickDuration(false) != 50*time.Millisecond {
		t.Errorf("Unexpected tick durations %v / %v", TickDuration(true), TickDuration(false))
	}
}
