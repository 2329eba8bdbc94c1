// Package sound plays short audio cues through the system speaker.
package sound

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-snake/constants"
)

const sampleRate = beep.SampleRate(constants.AudioSampleRate)

// Player owns the speaker for the lifetime of a game
type Player struct {
	mu     sync.Mutex
	closed bool
}

// NewPlayer initializes the speaker; callers treat an error as "no sound"
func NewPlayer() (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(constants.AudioBufferDuration)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}
	return &Player{}, nil
}

// Eat plays the apple cue
func (p *Player) Eat() {
	p.play(EatCue())
}

// GameOver plays the collision cue
func (p *Player) GameOver() {
	p.play(GameOverCue())
}

// Close stops playback and releases the audio device
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	speaker.Clear()
	speaker.Close()
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || s == nil {
		return
	}
	speaker.Play(s)
}

// EatCue is a single short blip
func EatCue() beep.Streamer {
	return tone(constants.EatToneHz, constants.EatToneDuration)
}

// GameOverCue is a high note followed by one an octave lower
func GameOverCue() beep.Streamer {
	high := tone(constants.GameOverHighHz, constants.GameOverHighDuration)
	low := tone(constants.GameOverLowHz, constants.GameOverLowDuration)
	if high == nil || low == nil {
		return nil
	}
	return beep.Seq(high, low)
}

// tone is a sine of freq Hz lasting exactly d worth of samples, at the cue volume
func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil
	}
	return newVolume(beep.Take(sampleRate.N(d), sine), constants.AudioVolume)
}

// newVolume maps linear gain onto effects.Volume's log scale; zero is silence
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
