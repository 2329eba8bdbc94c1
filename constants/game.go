package constants

import "time"

// Tick pacing. Terminal cells are roughly twice as tall as wide, so vertical
// movement runs at a third of the horizontal rate to keep apparent speed even
const (
	// UpDownTick is the tick duration while moving up or down
	UpDownTick = 150 * time.Millisecond

	// LeftRightTick is the tick duration while moving left or right
	LeftRightTick = 50 * time.Millisecond
)

// HeaderRows is the number of rows above the playfield (score line, border)
const HeaderRows = 2

// Apple spawn
const (
	// SpawnRetries caps random resampling when the apple lands on the snake
	SpawnRetries = 100
)

// Input
const (
	// EventQueueSize is the capacity of the async input event channel
	EventQueueSize = 256
)
