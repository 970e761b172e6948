package gallery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/orgball2608/class-gallery/internal/domain"
	apperrors "github.com/orgball2608/class-gallery/pkg/errors"
)

// fakeBackend serves photos newest first, filtered with Matches.
type fakeBackend struct {
	mu    sync.Mutex
	items []domain.MediaItem
	calls []domain.ListOptions
	err   error
	block chan struct{}
}

func newFakeBackend(n int, tag func(i int) []string) *fakeBackend {
	base := time.Date(2025, 7, 14, 7, 0, 0, 0, time.UTC)
	b := &fakeBackend{}
	for i := 0; i < n; i++ {
		item := domain.MediaItem{
			ID:        int64(n - i),
			Title:     fmt.Sprintf("foto %d", n-i),
			URL:       fmt.Sprintf("https://kelas.example/media/photos/%d.jpg", n-i),
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		}
		if tag != nil {
			item.Tags = tag(n - i)
		}
		b.items = append(b.items, item)
	}
	return b
}

func (b *fakeBackend) fetch(ctx context.Context, opts domain.ListOptions) ([]domain.MediaItem, error) {
	b.mu.Lock()
	b.calls = append(b.calls, opts)
	err := b.err
	block := b.block
	b.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}

	var matched []domain.MediaItem
	for _, it := range b.items {
		if Matches(it, opts.Filter) {
			matched = append(matched, it)
		}
	}
	if opts.Offset >= len(matched) {
		return nil, nil
	}
	end := min(opts.Offset+opts.Limit, len(matched))
	return matched[opts.Offset:end], nil
}

func (b *fakeBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func TestPagerPagesDoNotOverlap(t *testing.T) {
	for _, size := range []int{1, 5, 36} {
		t.Run(fmt.Sprintf("page size %d", size), func(t *testing.T) {
			backend := newFakeBackend(100, nil)
			p := NewPager(backend.fetch, PagerOpts[domain.MediaItem]{PageSize: size})

			seen := map[int64]bool{}
			for i := 0; i < 200; i++ {
				items, err := p.LoadNext(context.Background())
				if err != nil {
					t.Fatalf("LoadNext: %v", err)
				}
				if len(items) == 0 {
					break
				}
				for _, it := range items {
					if seen[it.ID] {
						t.Fatalf("record %d returned twice", it.ID)
					}
					seen[it.ID] = true
				}
			}
			if len(seen) != 100 {
				t.Fatalf("loaded %d records, want 100", len(seen))
			}
			for i, call := range backend.calls {
				if call.Offset != i*size || call.Limit != size {
					t.Fatalf("call %d used offset=%d limit=%d", i, call.Offset, call.Limit)
				}
				if call.OrderBy != "created_at" || call.Ascending {
					t.Fatalf("call %d not ordered by created_at desc: %+v", i, call)
				}
			}
		})
	}
}

func TestPagerExhaustionIsSticky(t *testing.T) {
	backend := newFakeBackend(3, nil)
	var appended [][]domain.MediaItem
	p := NewPager(backend.fetch, PagerOpts[domain.MediaItem]{
		PageSize: 36,
		OnAppend: func(items []domain.MediaItem) { appended = append(appended, items) },
	})
	ctx := context.Background()

	if items, _ := p.LoadNext(ctx); len(items) != 3 {
		t.Fatalf("first page = %d items", len(items))
	}
	if items, _ := p.LoadNext(ctx); items != nil || !p.Exhausted() {
		t.Fatalf("second page should exhaust the pager, got %d items", len(items))
	}
	calls := backend.callCount()
	for i := 0; i < 3; i++ {
		if items, err := p.LoadNext(ctx); items != nil || err != nil {
			t.Fatalf("exhausted pager returned %v, %v", items, err)
		}
	}
	if backend.callCount() != calls {
		t.Fatal("exhausted pager must not fetch")
	}
	if len(p.Items()) != 3 || len(appended) != 1 {
		t.Fatalf("cache changed after exhaustion: %d items, %d renders", len(p.Items()), len(appended))
	}

	p.Reset(domain.Filter{})
	if p.Exhausted() || p.Page() != 0 || len(p.Items()) != 0 {
		t.Fatal("Reset should clear exhaustion, page and cache")
	}
	if items, _ := p.LoadNext(ctx); len(items) != 3 {
		t.Fatalf("reload after reset = %d items", len(items))
	}
}

func TestPagerFailureKeepsState(t *testing.T) {
	backend := newFakeBackend(50, nil)
	var notices []error
	p := NewPager(backend.fetch, PagerOpts[domain.MediaItem]{
		PageSize: 10,
		OnError:  func(err error) { notices = append(notices, err) },
	})
	ctx := context.Background()

	if _, err := p.LoadNext(ctx); err != nil {
		t.Fatalf("LoadNext: %v", err)
	}

	backend.err = errors.New("connection reset")
	_, err := p.LoadNext(ctx)
	if err == nil {
		t.Fatal("expected error")
	}
	if apperrors.GetCode(err) != apperrors.CodeFetchFailed {
		t.Fatalf("error code = %q", apperrors.GetCode(err))
	}
	if len(notices) != 1 {
		t.Fatalf("notices = %d, want 1", len(notices))
	}
	if p.Page() != 1 || len(p.Items()) != 10 || p.Loading() || p.Exhausted() {
		t.Fatal("failed load must leave pager state unchanged")
	}

	backend.err = nil
	if _, err := p.LoadNext(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	last := backend.calls[len(backend.calls)-1]
	if last.Offset != 10 {
		t.Fatalf("retry should request the same page, offset = %d", last.Offset)
	}
	if p.Page() != 2 {
		t.Fatalf("page = %d, want 2", p.Page())
	}
}

func TestPagerInFlightGuard(t *testing.T) {
	backend := newFakeBackend(50, nil)
	backend.block = make(chan struct{})
	p := NewPager(backend.fetch, PagerOpts[domain.MediaItem]{PageSize: 10})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.LoadNext(context.Background())
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !p.Loading() {
		if time.Now().After(deadline) {
			t.Fatal("load never started")
		}
		time.Sleep(time.Millisecond)
	}

	if items, err := p.LoadNext(context.Background()); items != nil || err != nil {
		t.Fatal("concurrent load should be a no-op")
	}
	close(backend.block)
	<-done

	if backend.callCount() != 1 {
		t.Fatalf("fetch calls = %d, want 1", backend.callCount())
	}
}

func TestPagerDropsResultsFromBeforeReset(t *testing.T) {
	backend := newFakeBackend(50, nil)
	backend.block = make(chan struct{})
	p := NewPager(backend.fetch, PagerOpts[domain.MediaItem]{PageSize: 10})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.LoadNext(context.Background())
	}()
	for !p.Loading() {
		time.Sleep(time.Millisecond)
	}

	p.Reset(domain.Filter{Query: "foto 4"})
	close(backend.block)
	<-done

	if len(p.Items()) != 0 || p.Page() != 0 {
		t.Fatal("stale page leaked into the new filter's cache")
	}
}
