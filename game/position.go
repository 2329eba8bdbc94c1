package game

import "fmt"

// Position is a terminal cell, 1-based: X is the column, Y is the row
type Position struct {
	X int
	Y int
}

// Move returns the neighbouring cell in direction d
func (p Position) Move(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// String formats as "(x, y)", the form used in game-over messages
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
