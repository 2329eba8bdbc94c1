package constants

import "time"

// Audio output
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 44100

	// AudioBufferDuration sizes the speaker buffer; longer is safer, shorter has less latency
	AudioBufferDuration = 100 * time.Millisecond

	// AudioVolume is the linear gain applied to every cue
	AudioVolume = 0.5
)

// Eat cue: one short high blip
const (
	EatToneHz       = 880.0
	EatToneDuration = 50 * time.Millisecond
)

// Game-over cue: a falling two-note pair
const (
	GameOverHighHz       = 440.0
	GameOverHighDuration = 150 * time.Millisecond
	GameOverLowHz        = 220.0
	GameOverLowDuration  = 300 * time.Millisecond
)
