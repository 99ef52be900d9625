package session

import (
	"sync"
	"time"
)

// TickScheduler drives the session's one-second countdown. The session owns
// exactly one scheduled tick at a time and cancels it deterministically on
// submission, which is what keeps the double-tick and leaked-timer class of
// bugs out of the state machine.
type TickScheduler interface {
	// Every runs fn repeatedly at the given interval until the returned
	// stop function is called. Stop must be safe to call more than once.
	Every(interval time.Duration, fn func()) (stop func())
}

// TickerScheduler is the production scheduler, backed by a time.Ticker.
type TickerScheduler struct{}

func (TickerScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
