package app

import "time"

// Timer is a cancellable single wake-up
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// Clock abstracts time for the orchestrator so tests can drive phase
// advancement deterministically. Game transitions themselves never touch a
// clock; they receive explicit timestamps.
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) Timer
}

type realTimer struct {
	t *time.Timer
}

func (r realTimer) C() <-chan time.Time { return r.t.C }
func (r realTimer) Stop() bool          { return r.t.Stop() }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTimer(d time.Duration) Timer {
	if d < 0 {
		d = 0
	}
	return realTimer{t: time.NewTimer(d)}
}

// NewRealClock returns the wall clock
func NewRealClock() Clock {
	return realClock{}
}
