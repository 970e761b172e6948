package ratelimit

import (
	"testing"
	"time"
)

func TestInMemoryLimiterAllow(t *testing.T) {
	l := NewInMemoryLimiter(1, time.Hour, 2)
	fixed := time.Date(2025, 7, 14, 7, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	if !l.Allow("10.0.0.1") || !l.Allow("10.0.0.1") {
		t.Fatal("burst of 2 should be allowed")
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("third request should be limited")
	}
	if !l.Allow("10.0.0.2") {
		t.Fatal("other clients keep their own bucket")
	}
}

func TestInMemoryLimiterSweep(t *testing.T) {
	l := NewInMemoryLimiter(10, time.Second, 10)
	now := time.Date(2025, 7, 14, 7, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("a")
	now = now.Add(11 * time.Minute)
	l.Allow("b")

	if dropped := l.Sweep(); dropped != 1 {
		t.Fatalf("Sweep() = %d, want 1", dropped)
	}
	if _, ok := l.clients["b"]; !ok {
		t.Fatal("recent client should be kept")
	}
}
