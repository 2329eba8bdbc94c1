package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metric names recorded by the game engine
const (
	Ticks             = "ticks"
	Apples            = "apples"
	CellsDrawn        = "cells_drawn"
	EventsCoalesced   = "events_coalesced"
	DirectionRejected = "direction_rejected"
	GameOver          = "game_over"
	Backend           = "backend"
)

// Registry groups the counters and labels of one game session
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Strings: NewMetricMap[AtomicString](),
	}
}

func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Strings.Count()
}

// Summary renders every metric as sorted key=value pairs, counters first
func (r *Registry) Summary() string {
	var sb strings.Builder
	r.Ints.Range(func(key string, v *atomic.Int64) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%d", key, v.Load())
	})
	r.Strings.Range(func(key string, v *AtomicString) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%q", key, v.Load())
	})
	return sb.String()
}
