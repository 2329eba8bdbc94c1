// Package render turns game steps into cursor-positioned terminal writes.
// It keeps no frame buffer: each tick repaints only the cells a Step names.
package render

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/game"
	"github.com/lixenwraith/vi-snake/terminal"
)

// Renderer writes header and playfield cells to a Terminal
// Output is buffered by the terminal; the caller flushes once per tick
type Renderer struct {
	term terminal.Terminal
}

func NewRenderer(term terminal.Terminal) *Renderer {
	return &Renderer{term: term}
}

// Header draws the score line on row 1 and the border on row 2, columns 1..width-1
// Returns the number of cells written
func (r *Renderer) Header(width int, apples uint) int {
	score := constants.ScorePrefix + strconv.FormatUint(uint64(apples), 10)
	r.term.SetString(1, 1, score)

	cells := len(score)
	if width > 1 {
		r.term.SetString(1, constants.HeaderRows, strings.Repeat(string(constants.BorderGlyph), width-1))
		cells += width - 1
	}
	return cells
}

// Step paints the delta of a Continuing step or the centered message of a Done step
// Quit draws nothing. Returns the number of cells written
func (r *Renderer) Step(step game.Step, width, height int) int {
	switch s := step.(type) {
	case game.Continuing:
		for _, p := range s.Added {
			r.term.SetCell(p.X, p.Y, constants.SnakeGlyph)
		}
		for _, p := range s.Removed {
			r.term.SetCell(p.X, p.Y, constants.EmptyGlyph)
		}
		n := len(s.Added) + len(s.Removed)
		if s.Apple != nil {
			r.term.SetCell(s.Apple.X, s.Apple.Y, constants.AppleGlyph)
			n++
		}
		return n

	case game.Done:
		x, y := MessageOrigin(s.Message, width, height)
		r.term.SetString(x, y, s.Message)
		return utf8.RuneCountInString(s.Message)
	}
	return 0
}

// MessageOrigin centers msg horizontally on row height/2; both coordinates stay >= 1
func MessageOrigin(msg string, width, height int) (x, y int) {
	x = width/2 - utf8.RuneCountInString(msg)/2
	y = height / 2
	return max(x, 1), max(y, 1)
}

// Finish parks the cursor at the top-left corner
func (r *Renderer) Finish() {
	r.term.MoveCursor(1, 1)
}
