// Package timertest provides a timer.Scheduler driven by hand. Callbacks
// run synchronously inside Advance, in due order.
package timertest

import (
	"sync"
	"time"

	"github.com/orgball2608/class-gallery/internal/timer"
)

type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	owner   *Manual
	due     time.Duration
	period  time.Duration
	fn      func()
	seq     int
	stopped bool
}

func (t *manualTimer) Stop() {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	t.stopped = true
}

func NewManual() *Manual {
	return &Manual{}
}

var _ timer.Scheduler = (*Manual)(nil)

func (m *Manual) add(d, period time.Duration, fn func()) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{owner: m, due: m.now + d, period: period, fn: fn, seq: m.seq}
	m.timers = append(m.timers, t)
	return t
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) timer.Handle {
	return m.add(d, 0, fn)
}

func (m *Manual) Every(d time.Duration, fn func()) timer.Handle {
	return m.add(d, d, fn)
}

// Advance moves time forward by d, firing every timer that falls due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.due
		if next.period > 0 {
			next.due += next.period
		} else {
			next.stopped = true
		}
		fn := next.fn
		m.mu.Unlock()
		fn()
		m.mu.Lock()
	}
	m.now = target
	m.compact()
	m.mu.Unlock()
}

func (m *Manual) nextDue(target time.Duration) *manualTimer {
	var next *manualTimer
	for _, t := range m.timers {
		if t.stopped || t.due > target {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (m *Manual) compact() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	m.timers = live
}

// Live counts timers that have not fired (one-shot) or been stopped.
func (m *Manual) Live() int {
	return m.LiveWithPeriod(-1)
}

// LiveWithPeriod counts live repeating timers with the given period; a
// negative period counts every live timer.
func (m *Manual) LiveWithPeriod(period time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.timers {
		if t.stopped {
			continue
		}
		if period < 0 || t.period == period {
			n++
		}
	}
	return n
}
