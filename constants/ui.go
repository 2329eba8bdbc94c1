package constants

// Glyphs
const (
	BorderGlyph = '='
	EmptyGlyph  = ' '
	SnakeGlyph  = '#'
	AppleGlyph  = '@'
)

// Header text
const (
	ScorePrefix = "Apples: "
)
