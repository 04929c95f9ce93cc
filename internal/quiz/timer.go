package quiz

import (
	"sync"
	"time"
)

// StartCountdown runs the per-second timer for one session in a goroutine.
// onExpire fires at most once, when a tick drains the clock to zero. The
// goroutine exits as soon as the session leaves play, and the returned stop
// function cancels it early (abandonment, server shutdown). Because ticks go
// through Session.Tick, a runner that outlives its session is harmless.
func StartCountdown(s *Session, interval time.Duration, onExpire func()) (stop func()) {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if s.Tick() {
					if onExpire != nil {
						onExpire()
					}
					return
				}
				if s.State() != StateInProgress {
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
