// Package story plays memories as a slideshow: an outer timer walks the
// memory list while an inner timer cycles the photos of the active memory.
package story

import (
	"errors"
	"sync"
	"time"

	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/timer"
)

const (
	DefaultGlobalInterval = 9 * time.Second
	DefaultSlideInterval  = 2200 * time.Millisecond
)

var ErrOutOfRange = errors.New("memory index out of range")

type Mode string

const (
	Stopped       Mode = "stopped"
	PlayingGlobal Mode = "global"
	PlayingSingle Mode = "single"
)

type State struct {
	Mode        Mode `json:"mode"`
	MemoryIndex int  `json:"memoryIndex"`
	PhotoIndex  int  `json:"photoIndex"`
	Memories    int  `json:"memories"`
}

type Opts struct {
	GlobalInterval time.Duration
	SlideInterval  time.Duration

	// OnMemory is called when a memory becomes active.
	OnMemory func(State, domain.MemoryItem)
	// OnPhoto is called when the active memory shows another photo.
	OnPhoto func(State, string)
	// OnState is called on every mode change.
	OnState func(State)
}

type Story struct {
	mu    sync.Mutex
	sched timer.Scheduler
	opts  Opts

	memories    []domain.MemoryItem
	mode        Mode
	memoryIndex int
	photoIndex  int

	outer    timer.Handle
	inner    timer.Handle
	outerGen uint64
	innerGen uint64
	disposed bool
}

func New(sched timer.Scheduler, opts Opts) *Story {
	if opts.GlobalInterval <= 0 {
		opts.GlobalInterval = DefaultGlobalInterval
	}
	if opts.SlideInterval <= 0 {
		opts.SlideInterval = DefaultSlideInterval
	}
	return &Story{sched: sched, opts: opts, mode: Stopped}
}

// SetMemories replaces the playlist, stops playback and activates the
// first memory.
func (s *Story) SetMemories(items []domain.MemoryItem) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.stopOuterLocked()
	s.stopInnerLocked()
	s.memories = append([]domain.MemoryItem(nil), items...)
	s.mode = Stopped
	s.memoryIndex = 0
	s.photoIndex = 0

	var emit []func()
	emit = append(emit, s.stateEvent())
	if len(s.memories) > 0 {
		emit = append(emit, s.memoryEvent())
	}
	s.mu.Unlock()

	run(emit)
}

// ToggleGlobal starts or stops the memory-to-memory slideshow. With no
// memories it does nothing.
func (s *Story) ToggleGlobal() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}

	var emit []func()
	switch {
	case s.mode == PlayingGlobal:
		s.stopOuterLocked()
		s.stopInnerLocked()
		s.mode = Stopped
		emit = append(emit, s.stateEvent())
	case len(s.memories) == 0:
	default:
		s.stopInnerLocked()
		s.mode = PlayingGlobal
		s.outerGen++
		gen := s.outerGen
		s.outer = s.sched.Every(s.opts.GlobalInterval, func() { s.outerTick(gen) })
		s.startInnerLocked()
		emit = append(emit, s.stateEvent())
	}
	s.mu.Unlock()

	run(emit)
}

// ToggleSingle starts or stops the photo slideshow of the active memory
// without advancing to other memories. A memory without photos is skipped.
func (s *Story) ToggleSingle() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}

	var emit []func()
	switch {
	case s.mode == PlayingSingle:
		s.stopInnerLocked()
		s.mode = Stopped
		emit = append(emit, s.stateEvent())
	case len(s.currentPhotosLocked()) == 0:
	default:
		s.stopOuterLocked()
		s.stopInnerLocked()
		s.mode = PlayingSingle
		s.startInnerLocked()
		emit = append(emit, s.stateEvent())
	}
	s.mu.Unlock()

	run(emit)
}

// SelectMemory activates memory i. The outer schedule keeps its phase.
func (s *Story) SelectMemory(i int) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil
	}
	if i < 0 || i >= len(s.memories) {
		s.mu.Unlock()
		return ErrOutOfRange
	}

	emit := s.enterMemoryLocked(i)
	if s.mode == PlayingSingle && s.inner == nil {
		s.mode = Stopped
		emit = append(emit, s.stateEvent())
	}
	s.mu.Unlock()

	run(emit)
	return nil
}

// Dispose cancels every timer. The story ignores all calls afterwards.
func (s *Story) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopOuterLocked()
	s.stopInnerLocked()
	s.mode = Stopped
	s.disposed = true
}

func (s *Story) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Story) outerTick(gen uint64) {
	s.mu.Lock()
	if gen != s.outerGen || s.mode != PlayingGlobal || len(s.memories) == 0 {
		s.mu.Unlock()
		return
	}
	emit := s.enterMemoryLocked((s.memoryIndex + 1) % len(s.memories))
	s.mu.Unlock()

	run(emit)
}

func (s *Story) innerTick(gen uint64) {
	s.mu.Lock()
	photos := s.currentPhotosLocked()
	if gen != s.innerGen || len(photos) == 0 {
		s.mu.Unlock()
		return
	}
	s.photoIndex = (s.photoIndex + 1) % len(photos)
	emit := []func(){s.photoEvent()}
	s.mu.Unlock()

	run(emit)
}

// enterMemoryLocked makes memory i active, replacing any inner slideshow.
func (s *Story) enterMemoryLocked(i int) []func() {
	s.stopInnerLocked()
	s.memoryIndex = i
	s.photoIndex = 0
	if s.mode != Stopped {
		s.startInnerLocked()
	}
	return []func(){s.memoryEvent()}
}

func (s *Story) startInnerLocked() {
	if len(s.currentPhotosLocked()) == 0 {
		return
	}
	s.innerGen++
	gen := s.innerGen
	s.inner = s.sched.Every(s.opts.SlideInterval, func() { s.innerTick(gen) })
}

func (s *Story) stopInnerLocked() {
	s.innerGen++
	if s.inner != nil {
		s.inner.Stop()
		s.inner = nil
	}
}

func (s *Story) stopOuterLocked() {
	s.outerGen++
	if s.outer != nil {
		s.outer.Stop()
		s.outer = nil
	}
}

func (s *Story) currentPhotosLocked() []domain.MemoryPhoto {
	if s.memoryIndex < 0 || s.memoryIndex >= len(s.memories) {
		return nil
	}
	return s.memories[s.memoryIndex].Photos
}

func (s *Story) stateLocked() State {
	return State{
		Mode:        s.mode,
		MemoryIndex: s.memoryIndex,
		PhotoIndex:  s.photoIndex,
		Memories:    len(s.memories),
	}
}

func (s *Story) stateEvent() func() {
	st := s.stateLocked()
	return func() {
		if s.opts.OnState != nil {
			s.opts.OnState(st)
		}
	}
}

func (s *Story) memoryEvent() func() {
	st := s.stateLocked()
	m := s.memories[s.memoryIndex]
	return func() {
		if s.opts.OnMemory != nil {
			s.opts.OnMemory(st, m)
		}
	}
}

func (s *Story) photoEvent() func() {
	st := s.stateLocked()
	url := s.currentPhotosLocked()[s.photoIndex].URL
	return func() {
		if s.opts.OnPhoto != nil {
			s.opts.OnPhoto(st, url)
		}
	}
}

func run(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
