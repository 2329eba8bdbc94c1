package engine

// Cues receives game events worth an audible signal
type Cues interface {
	Eat()
	GameOver()
}

// NopCues is the silent default
type NopCues struct{}

func (NopCues) Eat()      {}
func (NopCues) GameOver() {}
