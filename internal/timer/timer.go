// Package timer provides cancellable one-shot and repeating timers behind
// an interface, so view controllers own their timer handles explicitly and
// tests can drive time by hand.
package timer

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Handle cancels a scheduled timer. Stop is idempotent.
type Handle interface {
	Stop()
}

type Scheduler interface {
	// AfterFunc runs fn once after d
	AfterFunc(d time.Duration, fn func()) Handle
	// Every runs fn every d until the handle is stopped
	Every(d time.Duration, fn func()) Handle
}

type handleFunc func()

func (h handleFunc) Stop() { h() }

// Clock schedules timers on a clockwork clock.
type Clock struct {
	clock clockwork.Clock
}

func New(clock clockwork.Clock) *Clock {
	return &Clock{clock: clock}
}

// NewReal returns a scheduler on the wall clock.
func NewReal() *Clock {
	return New(clockwork.NewRealClock())
}

var _ Scheduler = (*Clock)(nil)

func (c *Clock) AfterFunc(d time.Duration, fn func()) Handle {
	t := c.clock.AfterFunc(d, fn)
	return handleFunc(func() { t.Stop() })
}

func (c *Clock) Every(d time.Duration, fn func()) Handle {
	ticker := c.clock.NewTicker(d)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.Chan():
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	return handleFunc(func() {
		once.Do(func() { close(done) })
	})
}
