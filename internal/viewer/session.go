package viewer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/orgball2608/class-gallery/internal/backend"
	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/gallery"
	"github.com/orgball2608/class-gallery/internal/popup"
	"github.com/orgball2608/class-gallery/internal/story"
	"github.com/orgball2608/class-gallery/internal/timer"
	apperrors "github.com/orgball2608/class-gallery/pkg/errors"
	"github.com/orgball2608/class-gallery/pkg/logger"
)

// Submitter runs a task on a shared worker pool. *ants.Pool satisfies it.
type Submitter interface {
	Submit(task func()) error
}

type SessionOpts struct {
	Backend   backend.Client
	Scheduler timer.Scheduler
	Logger    logger.Logger
	// Pool bounds the startup loads across sessions; nil runs them on
	// plain goroutines
	Pool Submitter
	// Send delivers a render instruction; it may be called from timer
	// goroutines and must be safe for concurrent use
	Send func(Outbound)

	PageSize       int
	Debounce       time.Duration
	GlobalInterval time.Duration
	SlideInterval  time.Duration
}

type memoriesPayload struct {
	Items []domain.MemoryItem `json:"items"`
}

type newsPayload struct {
	Items []domain.NewsItem `json:"items"`
}

type eventsPayload struct {
	Items []domain.EventItem `json:"items"`
}

type photosPayload struct {
	Items     []domain.MediaItem `json:"items"`
	Filter    domain.Filter      `json:"filter"`
	Exhausted bool               `json:"exhausted"`
}

type storyMemoryPayload struct {
	State  story.State       `json:"state"`
	Memory domain.MemoryItem `json:"memory"`
}

type storyPhotoPayload struct {
	State story.State `json:"state"`
	URL   string      `json:"url"`
}

// Session is one connected viewer. Handle, timer callbacks and the first
// page load all run under mu, so no two transitions interleave.
type Session struct {
	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	backend  backend.Client
	logger   logger.Logger
	pool     Submitter
	send     func(Outbound)
	gallery  *gallery.Gallery
	popup    *popup.Popup
	story    *story.Story
	memories []domain.MemoryItem
	disposed bool
}

func NewSession(ctx context.Context, opts SessionOpts) *Session {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		ctx:     ctx,
		cancel:  cancel,
		backend: opts.Backend,
		logger:  opts.Logger,
		pool:    opts.Pool,
		send:    opts.Send,
	}
	sched := lockedScheduler{sched: opts.Scheduler, s: s}

	s.gallery = gallery.New(ctx, opts.Backend.ListPhotos, sched, gallery.Opts{
		PageSize: opts.PageSize,
		Debounce: opts.Debounce,
		OnReset: func(f domain.Filter) {
			s.send(Outbound{Type: TypeResetPhotos, Data: photosPayload{Items: []domain.MediaItem{}, Filter: f}})
		},
		OnAppend: func(items []domain.MediaItem, f domain.Filter) {
			s.send(Outbound{Type: TypeAppendPhotos, Data: photosPayload{Items: items, Filter: f}})
		},
		OnError: func(err error) {
			s.notice(err, "Could not load photos, try again")
		},
	})
	s.popup = popup.New(func(st popup.State) {
		s.send(Outbound{Type: TypePopup, Data: st})
	})
	s.story = story.New(sched, story.Opts{
		GlobalInterval: opts.GlobalInterval,
		SlideInterval:  opts.SlideInterval,
		OnMemory: func(st story.State, m domain.MemoryItem) {
			s.send(Outbound{Type: TypeStoryMemory, Data: storyMemoryPayload{State: st, Memory: m}})
		},
		OnPhoto: func(st story.State, url string) {
			s.send(Outbound{Type: TypeStoryPhoto, Data: storyPhotoPayload{State: st, URL: url}})
		},
		OnState: func(st story.State) {
			s.send(Outbound{Type: TypeStoryState, Data: st})
		},
	})
	return s
}

// Start loads the first photo page, the memories, the news and the
// events concurrently. A failure in one does not prevent the others.
func (s *Session) Start() {
	loads := []func(){s.loadFirstPage, s.loadMemories, s.loadNews, s.loadEvents}

	var wg sync.WaitGroup
	for _, load := range loads {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			load()
		}
		if s.pool == nil {
			go task()
			continue
		}
		if err := s.pool.Submit(task); err != nil {
			s.logger.Warn("Worker pool rejected startup load", "error", err)
			go task()
		}
	}
	wg.Wait()
}

func (s *Session) loadFirstPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	// failures reach the viewer through OnError
	_, _ = s.gallery.LoadMore()
}

func (s *Session) loadMemories() {
	items, err := s.backend.ListMemories(s.ctx, domain.ListOptions{OrderBy: "order", Ascending: true})
	if err != nil {
		s.notice(apperrors.WrapWithCode(err, apperrors.CodeFetchFailed, "failed to load memories"), "Could not load memories")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.memories = items
	s.send(Outbound{Type: TypeMemories, Data: memoriesPayload{Items: items}})
	s.story.SetMemories(items)
}

func (s *Session) loadNews() {
	items, err := s.backend.ListNews(s.ctx, domain.ListOptions{OrderBy: "published_at"})
	if err != nil {
		s.notice(apperrors.WrapWithCode(err, apperrors.CodeFetchFailed, "failed to load news"), "Could not load news")
		return
	}
	s.send(Outbound{Type: TypeNews, Data: newsPayload{Items: items}})
}

func (s *Session) loadEvents() {
	items, err := s.backend.ListEvents(s.ctx, domain.ListOptions{OrderBy: "date_end", Ascending: true})
	if err != nil {
		s.notice(apperrors.WrapWithCode(err, apperrors.CodeFetchFailed, "failed to load events"), "Could not load events")
		return
	}
	s.send(Outbound{Type: TypeEvents, Data: eventsPayload{Items: items}})
}

// Handle applies one viewer message.
func (s *Session) Handle(msg Inbound) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return nil
	}

	switch msg.Type {
	case TypeLoadMore:
		_, _ = s.gallery.LoadMore()
	case TypeSetQuery:
		s.gallery.SetQuery(msg.Query)
	case TypeSelectTag:
		s.gallery.SelectTag(msg.Tag)
	case TypeApplyTags:
		s.gallery.ApplyTags(msg.Tags, domain.ParseTagMode(msg.Mode))
	case TypeClearFilters:
		s.gallery.ClearFilters()
	case TypePopupOpen:
		s.popup.Open(s.popupItemsLocked(msg.Source), msg.Index)
	case TypePopupNext:
		s.popup.Next()
	case TypePopupPrev:
		s.popup.Prev()
	case TypePopupClose:
		s.popup.Close()
	case TypeKey:
		s.popup.HandleKey(popup.Key(msg.Key))
	case TypeStoryToggleGlobal:
		s.story.ToggleGlobal()
	case TypeStoryToggleSingle:
		s.story.ToggleSingle()
	case TypeStorySelect:
		if err := s.story.SelectMemory(msg.Index); err != nil {
			return apperrors.WrapWithCode(err, apperrors.CodeBadRequest, fmt.Sprintf("memory %d", msg.Index))
		}
	default:
		return apperrors.NewWithCode(apperrors.CodeBadRequest, fmt.Sprintf("unknown message type %q", msg.Type))
	}
	return nil
}

func (s *Session) popupItemsLocked(source string) []string {
	if source != SourceMemory {
		return s.gallery.URLs()
	}
	idx := s.story.State().MemoryIndex
	if idx < 0 || idx >= len(s.memories) {
		return nil
	}
	return s.memories[idx].PhotoURLs()
}

// Notice sends err to the viewer as a notice with a readable message.
func (s *Session) Notice(err error) {
	s.notice(err, apperrors.GetMessage(err))
}

func (s *Session) notice(err error, message string) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.CodeInternal
	}
	s.logger.Warn("Viewer notice", "code", code, "error", err)
	s.send(Outbound{Type: TypeNotice, Data: Notice{Code: code, Message: message}})
}

// Dispose stops every timer and abandons requests in flight.
func (s *Session) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.disposed = true
	s.cancel()
	s.gallery.Dispose()
	s.story.Dispose()
}

// lockedScheduler runs timer callbacks under the session lock and drops
// them once the session is disposed.
type lockedScheduler struct {
	sched timer.Scheduler
	s     *Session
}

func (l lockedScheduler) AfterFunc(d time.Duration, fn func()) timer.Handle {
	return l.sched.AfterFunc(d, l.wrap(fn))
}

func (l lockedScheduler) Every(d time.Duration, fn func()) timer.Handle {
	return l.sched.Every(d, l.wrap(fn))
}

func (l lockedScheduler) wrap(fn func()) func() {
	return func() {
		l.s.mu.Lock()
		defer l.s.mu.Unlock()
		if l.s.disposed {
			return
		}
		fn()
	}
}
