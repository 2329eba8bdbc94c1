package game

import (
	"fmt"

	"github.com/lixenwraith/vi-snake/constants"
)

// State is the complete game: snake, heading, apple and score
// Mutated only by Tick, driven from a single goroutine
type State struct {
	Snake     *Snake
	Direction Direction
	Apple     Position
	Apples    uint
	Width     int
	Height    int
	Rejected  uint // turn requests swallowed by the no-reverse rule

	rng Rand
}

// NewState starts a one-cell snake in the middle of a width x height terminal, heading right
func NewState(width, height int, rng Rand) *State {
	s := &State{
		Snake:     NewSnake(width/2, height/2),
		Direction: Right,
		Width:     width,
		Height:    height,
		rng:       rng,
	}
	s.Apple = SpawnApple(rng, s.Snake, width, height)
	return s
}

// NewStateFrom resumes a game from an explicit position; rng serves later apple spawns
func NewStateFrom(snake *Snake, dir Direction, apple Position, width, height int, rng Rand) *State {
	return &State{
		Snake:     snake,
		Direction: dir,
		Apple:     apple,
		Width:     width,
		Height:    height,
		rng:       rng,
	}
}

// Turn applies a turn action under the no-reverse rule
// Returns false when the request was swallowed because it reverses the current heading
func (s *State) Turn(a Action) bool {
	d, ok := a.Direction()
	if !ok {
		return true
	}
	if Opposite(s.Direction, d) {
		s.Rejected++
		return false
	}
	s.Direction = d
	return true
}

// Tick runs one game step against the current terminal size
// Quit short-circuits before the snake moves
func (s *State) Tick(a Action, width, height int) Step {
	if a == ActionQuit {
		return Quit{}
	}
	s.Width, s.Height = width, height
	s.Turn(a)

	prev := s.Snake.Clone()
	if s.Snake.Advance(s.Direction, s.Apple) {
		s.Apples++
		s.Apple = SpawnApple(s.rng, s.Snake, width, height)
	}

	head := s.Snake.Head()
	switch {
	case prev.Contains(head):
		return Done{Message: "Self intercept at " + head.String()}
	case head.Y <= constants.HeaderRows || head.Y > height:
		return Done{Message: fmt.Sprintf("Broke out the top(%d) or bottom at %s", height, head)}
	case head.X < 1 || head.X > width:
		return Done{Message: "Broke out the sides"}
	}

	apple := s.Apple
	return Continuing{
		Added:   s.Snake.Difference(prev),
		Removed: prev.Difference(s.Snake),
		Apple:   &apple,
	}
}
