package game

// Step is the outcome of one tick: Continuing, Done or Quit
type Step interface {
	step()
}

// Continuing carries the cells to repaint for the next frame
type Continuing struct {
	Added   []Position // painted with the snake glyph
	Removed []Position // painted with the empty glyph
	Apple   *Position  // painted with the apple glyph when non-nil
}

// Done ends the game with a message centered on the screen
type Done struct {
	Message string
}

// Quit ends the game silently
type Quit struct{}

func (Continuing) step() {}
func (Done) step()       {}
func (Quit) step()       {}

// IsContinuing reports whether the loop should run another tick
func IsContinuing(s Step) bool {
	_, ok := s.(Continuing)
	return ok
}
