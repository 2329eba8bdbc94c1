package constants

import (
	"testing"
)

// TestTickRatio verifies vertical ticks are slower than horizontal ticks
func TestTickRatio(t *testing.T) {
	if UpDownTick <= LeftRightTick {
		t.Errorf("Expected UpDownTick (%v) > LeftRightTick (%v)", UpDownTick, LeftRightTick)
	}
	if UpDownTick != 3*LeftRightTick {
		t.Errorf("Expected 3:1 tick ratio, got %v:%v", UpDownTick, LeftRightTick)
	}
}

// TestGlyphsDistinct verifies every drawn glyph is unique
func TestGlyphsDistinct(t *testing.T) {
	glyphs := []rune{BorderGlyph, EmptyGlyph, SnakeGlyph, AppleGlyph}
	seen := make(map[rune]bool)
	for _, g := range glyphs {
		if seen[g] {
			t.Errorf("Duplicate glyph %q", g)
		}
		seen[g] = true
	}
}

func TestHeaderRows(t *testing.T) {
	if HeaderRows != 2 {
		t.Errorf("Expected HeaderRows to be 2, got %d", HeaderRows)
	}
}
