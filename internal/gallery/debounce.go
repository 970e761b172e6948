package gallery

import (
	"sync"
	"time"

	"github.com/orgball2608/class-gallery/internal/timer"
)

// Debouncer runs only the last call made within a quiet period.
type Debouncer struct {
	mu     sync.Mutex
	sched  timer.Scheduler
	delay  time.Duration
	handle timer.Handle
	gen    uint64
}

func NewDebouncer(sched timer.Scheduler, delay time.Duration) *Debouncer {
	return &Debouncer{sched: sched, delay: delay}
}

// Call replaces any pending call with fn.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.handle != nil {
		d.handle.Stop()
	}
	d.gen++
	gen := d.gen
	d.handle = d.sched.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.handle = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.handle != nil {
		d.handle.Stop()
		d.handle = nil
	}
	d.gen++
}

// Pending reports whether a call is waiting to run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.handle != nil
}
