package engine

import (
	"context"
	"time"

	"github.com/lixenwraith/vi-snake/constants"
)

// Clock paces the loop; Sleep is the only suspension point of a tick
type Clock interface {
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the latter case
	Sleep(ctx context.Context, d time.Duration) error
}

// WallClock sleeps on real timers
type WallClock struct{}

func (WallClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TickDuration is the pause after a tick; cells are about twice as tall as wide, so vertical ticks are longer
func TickDuration(vertical bool) time.Duration {
	if vertical {
		return constants.UpDownTick
	}
	return constants.LeftRightTick
}
