package engine

import "time"

// Clock arms one-shot timers. The engine schedules every advance through a
// Clock so tests can substitute a manual implementation.
type Clock interface {
	// AfterFunc runs f on its own goroutine after d elapses.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop cancels the timer. Stopping an already-fired timer is a no-op.
	Stop()
}

type realClock struct{}

type realTimer struct{ t *time.Timer }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return realTimer{t: time.AfterFunc(d, f)}
}

func (t realTimer) Stop() { t.t.Stop() }

// NewClock returns a Clock backed by the runtime timers.
func NewClock() Clock { return realClock{} }
