package service

import "time"

// Clock abstracts wall-clock reads and timer waits so that polling and
// progress ticking can be driven deterministically in tests.
type Clock interface {
	Now() time.Time
	// After returns a channel that delivers once d has elapsed.
	After(d time.Duration) <-chan time.Time
}

// realClock is the production Clock backed by the time package.
type realClock struct{}

// NewRealClock returns the wall-clock Clock.
func NewRealClock() Clock { //nolint:ireturn // constructor intentionally returns the interface
	return realClock{}
}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
