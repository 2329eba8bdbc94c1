package game

import (
	"fmt"
	"slices"
)

// Snake is an ordered chain of cells, head first
// The container does not reject duplicates; self-collision is detected by State.Tick
type Snake struct {
	body []Position
}

// NewSnake creates a one-cell snake at (x, y)
func NewSnake(x, y int) *Snake {
	return &Snake{body: []Position{{X: x, Y: y}}}
}

// SnakeOf builds a snake from cells, head first
func SnakeOf(cells ...Position) *Snake {
	if len(cells) == 0 {
		panic(fmt.Errorf("%w: snake needs at least one cell", ErrInvariant))
	}
	return &Snake{body: slices.Clone(cells)}
}

// Head returns the first cell; an empty snake is an invariant violation and panics
func (s *Snake) Head() Position {
	if len(s.body) == 0 {
		panic(fmt.Errorf("%w: snake has no cells", ErrInvariant))
	}
	return s.body[0]
}

// Len returns the number of cells
func (s *Snake) Len() int {
	return len(s.body)
}

// Cells returns a copy of the chain, head first
func (s *Snake) Cells() []Position {
	return slices.Clone(s.body)
}

// Contains reports whether p is any cell of the snake
func (s *Snake) Contains(p Position) bool {
	return slices.Contains(s.body, p)
}

// Clone returns an independent copy
func (s *Snake) Clone() *Snake {
	return &Snake{body: slices.Clone(s.body)}
}

// Advance prepends the head moved one cell in d
// If the new head lands on apple the tail is kept and true is returned, otherwise the tail is dropped
// No bounds checking: the head may leave the playfield
func (s *Snake) Advance(d Direction, apple Position) bool {
	head := s.Head().Move(d)
	ate := head == apple

	s.body = slices.Insert(s.body, 0, head)
	if !ate {
		s.body = s.body[:len(s.body)-1]
	}
	return ate
}

// Difference returns the cells of s not present in other, in s order
func (s *Snake) Difference(other *Snake) []Position {
	var diff []Position
	for _, p := range s.body {
		if !other.Contains(p) {
			diff = append(diff, p)
		}
	}
	return diff
}
