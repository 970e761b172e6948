package timer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestEveryTicksUntilStopped(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(clock)

	var ticks atomic.Int32
	h := s.Every(time.Second, func() { ticks.Add(1) })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("ticker never registered: %v", err)
	}

	clock.Advance(time.Second)
	waitFor(t, func() bool { return ticks.Load() == 1 })
	clock.Advance(time.Second)
	waitFor(t, func() bool { return ticks.Load() == 2 })

	h.Stop()
	h.Stop()
	if err := clock.BlockUntilContext(ctx, 0); err != nil {
		t.Fatalf("ticker not released: %v", err)
	}
	clock.Advance(5 * time.Second)
	time.Sleep(10 * time.Millisecond)
	if got := ticks.Load(); got != 2 {
		t.Fatalf("ticks after stop = %d, want 2", got)
	}
}

func TestAfterFuncCanBeCancelled(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(clock)

	var fired atomic.Int32
	keep := s.AfterFunc(time.Second, func() { fired.Add(1) })
	cancelled := s.AfterFunc(time.Second, func() { fired.Add(10) })
	cancelled.Stop()

	clock.Advance(time.Second)
	waitFor(t, func() bool { return fired.Load() >= 1 })
	time.Sleep(10 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Fatalf("fired = %d, want 1", got)
	}
	keep.Stop()
}
