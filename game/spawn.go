package game

import (
	"log"

	"github.com/lixenwraith/vi-snake/constants"
)

// InPlayfield reports whether p lies in columns 1..=width and rows HeaderRows+1..=height
func InPlayfield(p Position, width, height int) bool {
	return p.X >= 1 && p.X <= width && p.Y > constants.HeaderRows && p.Y <= height
}

// SpawnApple picks a uniformly random playfield cell not covered by snake
// After constants.SpawnRetries rejected samples the first free cell in row-major order is used;
// if the playfield is full the last sample is returned as is
func SpawnApple(rng Rand, snake *Snake, width, height int) Position {
	rows := height - constants.HeaderRows
	if width < 1 || rows < 1 {
		return Position{X: 1, Y: constants.HeaderRows + 1}
	}

	var p Position
	for i := 0; i < constants.SpawnRetries; i++ {
		p = Position{
			X: 1 + rng.Intn(width),
			Y: constants.HeaderRows + 1 + rng.Intn(rows),
		}
		if snake == nil || !snake.Contains(p) {
			return p
		}
	}

	for y := constants.HeaderRows + 1; y <= height; y++ {
		for x := 1; x <= width; x++ {
			free := Position{X: x, Y: y}
			if !snake.Contains(free) {
				log.Printf("apple spawn: %d samples hit the snake, using first free cell %s", constants.SpawnRetries, free)
				return free
			}
		}
	}

	log.Printf("apple spawn: playfield full, apple placed under snake at %s", p)
	return p
}
