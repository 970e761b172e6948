package story

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/timer"
	"github.com/orgball2608/class-gallery/internal/timer/timertest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	global = DefaultGlobalInterval
	slide  = DefaultSlideInterval
)

func memories(photoCounts ...int) []domain.MemoryItem {
	items := make([]domain.MemoryItem, len(photoCounts))
	for i, n := range photoCounts {
		items[i] = domain.MemoryItem{ID: int64(i + 1), Order: i}
		for j := 0; j < n; j++ {
			items[i].Photos = append(items[i].Photos, domain.MemoryPhoto{URL: string(rune('a'+i)) + string(rune('0'+j))})
		}
	}
	return items
}

func TestGlobalAdvancesAndWraps(t *testing.T) {
	sched := timertest.NewManual()
	var seen []int
	s := New(sched, Opts{OnMemory: func(st State, _ domain.MemoryItem) { seen = append(seen, st.MemoryIndex) }})
	s.SetMemories(memories(2, 2, 2))
	seen = nil

	s.ToggleGlobal()
	if s.State().Mode != PlayingGlobal {
		t.Fatalf("mode = %s", s.State().Mode)
	}

	for _, want := range []int{1, 2, 0} {
		sched.Advance(global)
		if got := s.State().MemoryIndex; got != want {
			t.Fatalf("memoryIndex = %d, want %d", got, want)
		}
		if n := sched.LiveWithPeriod(slide); n > 1 {
			t.Fatalf("%d inner timers live", n)
		}
		if s.State().PhotoIndex != 0 {
			t.Fatal("entering a memory should restart at its first photo")
		}
	}
	if len(seen) != 3 {
		t.Fatalf("rendered %d memories, want 3", len(seen))
	}

	s.ToggleGlobal()
	if st := s.State(); st.Mode != Stopped || st.MemoryIndex != 0 {
		t.Fatalf("stop should keep the last memory: %+v", st)
	}
	if sched.Live() != 0 {
		t.Fatalf("%d timers still live after stop", sched.Live())
	}
}

func TestSingleCyclesPhotos(t *testing.T) {
	sched := timertest.NewManual()
	var urls []string
	s := New(sched, Opts{OnPhoto: func(_ State, url string) { urls = append(urls, url) }})
	s.SetMemories(memories(2))

	s.ToggleSingle()
	sched.Advance(slide)
	if got := s.State().PhotoIndex; got != 1 {
		t.Fatalf("photoIndex = %d, want 1", got)
	}
	sched.Advance(slide)
	if got := s.State().PhotoIndex; got != 0 {
		t.Fatalf("photoIndex = %d, want 0", got)
	}
	if sched.LiveWithPeriod(global) != 0 {
		t.Fatal("single mode must not start the outer timer")
	}
	if len(urls) != 2 || urls[0] != "a1" || urls[1] != "a0" {
		t.Fatalf("urls = %v", urls)
	}

	s.ToggleSingle()
	if s.State().Mode != Stopped || sched.Live() != 0 {
		t.Fatal("second toggle should stop the slideshow")
	}
}

func TestEmptyInputsAreNoOps(t *testing.T) {
	sched := timertest.NewManual()
	s := New(sched, Opts{})

	s.ToggleGlobal()
	if s.State().Mode != Stopped || sched.Live() != 0 {
		t.Fatal("toggle with no memories must do nothing")
	}

	s.SetMemories(memories(0, 1))
	s.ToggleSingle()
	if s.State().Mode != Stopped || sched.Live() != 0 {
		t.Fatal("memory without photos must skip the slideshow")
	}

	s.ToggleGlobal()
	if sched.LiveWithPeriod(slide) != 0 || sched.LiveWithPeriod(global) != 1 {
		t.Fatal("global on a photo-less memory runs only the outer timer")
	}
	sched.Advance(global)
	if s.State().MemoryIndex != 1 || sched.LiveWithPeriod(slide) != 1 {
		t.Fatal("next memory should start its slideshow")
	}
	s.Dispose()
}

func TestSelectKeepsOuterPhase(t *testing.T) {
	sched := timertest.NewManual()
	s := New(sched, Opts{})
	s.SetMemories(memories(1, 2, 3))

	s.ToggleGlobal()
	sched.Advance(5 * time.Second)
	if err := s.SelectMemory(2); err != nil {
		t.Fatal(err)
	}
	if sched.LiveWithPeriod(slide) != 1 {
		t.Fatal("selected memory should run exactly one slideshow")
	}

	sched.Advance(4 * time.Second)
	if got := s.State().MemoryIndex; got != 0 {
		t.Fatalf("outer tick at 9s should wrap to 0, got %d", got)
	}

	if err := s.SelectMemory(3); err != ErrOutOfRange {
		t.Fatalf("err = %v, want ErrOutOfRange", err)
	}
	s.Dispose()
}

func TestSelectWhileSingleReplacesInner(t *testing.T) {
	sched := timertest.NewManual()
	s := New(sched, Opts{})
	s.SetMemories(memories(2, 3, 0))

	s.ToggleSingle()
	sched.Advance(slide)
	_ = s.SelectMemory(1)
	if st := s.State(); st.PhotoIndex != 0 || st.Mode != PlayingSingle || sched.LiveWithPeriod(slide) != 1 {
		t.Fatalf("unexpected state %+v live=%d", st, sched.LiveWithPeriod(slide))
	}

	_ = s.SelectMemory(2)
	if s.State().Mode != Stopped || sched.Live() != 0 {
		t.Fatal("selecting a photo-less memory ends the single slideshow")
	}
}

func TestGlobalReplacesSingle(t *testing.T) {
	sched := timertest.NewManual()
	s := New(sched, Opts{})
	s.SetMemories(memories(2, 2))

	s.ToggleSingle()
	s.ToggleGlobal()
	if s.State().Mode != PlayingGlobal {
		t.Fatal("global should take over")
	}
	if sched.LiveWithPeriod(slide) != 1 || sched.LiveWithPeriod(global) != 1 {
		t.Fatalf("live timers: inner=%d outer=%d", sched.LiveWithPeriod(slide), sched.LiveWithPeriod(global))
	}
	s.Dispose()
}

func TestDisposeStopsEverything(t *testing.T) {
	sched := timertest.NewManual()
	calls := 0
	s := New(sched, Opts{
		OnMemory: func(State, domain.MemoryItem) { calls++ },
		OnPhoto:  func(State, string) { calls++ },
	})
	s.SetMemories(memories(2, 2))
	s.ToggleGlobal()
	calls = 0

	s.Dispose()
	if sched.Live() != 0 {
		t.Fatalf("%d timers live after dispose", sched.Live())
	}
	s.ToggleGlobal()
	s.ToggleSingle()
	sched.Advance(time.Minute)
	if calls != 0 {
		t.Fatalf("disposed story rendered %d times", calls)
	}
}

func TestRealClockLeavesNoGoroutines(t *testing.T) {
	var mu sync.Mutex
	ticks := 0
	s := New(timer.NewReal(), Opts{
		GlobalInterval: 5 * time.Millisecond,
		SlideInterval:  2 * time.Millisecond,
		OnPhoto: func(State, string) {
			mu.Lock()
			ticks++
			mu.Unlock()
		},
	})
	s.SetMemories(memories(3, 3))
	s.ToggleGlobal()
	time.Sleep(30 * time.Millisecond)
	s.Dispose()

	mu.Lock()
	defer mu.Unlock()
	if ticks == 0 {
		t.Fatal("expected the slideshow to tick on the real clock")
	}
}
