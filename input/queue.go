package input

import (
	"github.com/lixenwraith/vi-snake/terminal"
)

// Latest empties the queue without blocking and returns the most recent event
// n counts the events taken; an EventError or EventClosed stops the drain and is returned as is
func Latest(ch <-chan terminal.Event) (last terminal.Event, n int) {
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return terminal.Event{Type: terminal.EventClosed}, n + 1
			}
			n++
			last = ev
			if ev.Type != terminal.EventKey {
				return last, n
			}
		default:
			return last, n
		}
	}
}
