// Package game holds the snake model: positions, directions, the snake chain,
// per-tick step results and the game state that produces them.
//
// Nothing in this package performs I/O; the engine package drives State.Tick
// once per frame and hands the resulting Step to the renderer.
package game
