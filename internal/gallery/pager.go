package gallery

import (
	"context"
	"slices"
	"sync"

	"github.com/orgball2608/class-gallery/internal/domain"
	apperrors "github.com/orgball2608/class-gallery/pkg/errors"
)

const DefaultPageSize = 36

// FetchFunc loads one window of records from the backend.
type FetchFunc[T any] func(ctx context.Context, opts domain.ListOptions) ([]T, error)

type PagerOpts[T any] struct {
	PageSize  int
	OrderBy   string
	Ascending bool
	// OnAppend receives only the records added by a successful load
	OnAppend func(items []T)
	// OnError receives fetch failures after retries are exhausted
	OnError func(err error)
	// OnReset is called by Reset once the cache is cleared
	OnReset func(filter domain.Filter)
}

// Pager loads a record list page by page into an append-only cache.
// Callbacks are delivered under emitMu, so an append from an old filter
// can never follow the reset that replaced it.
type Pager[T any] struct {
	emitMu sync.Mutex
	mu     sync.Mutex
	fetch  FetchFunc[T]
	opts   PagerOpts[T]

	filter    domain.Filter
	items     []T
	page      int
	loading   bool
	exhausted bool
	gen       uint64
}

func NewPager[T any](fetch FetchFunc[T], opts PagerOpts[T]) *Pager[T] {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.OrderBy == "" {
		opts.OrderBy = "created_at"
	}
	return &Pager[T]{fetch: fetch, opts: opts}
}

// LoadPage requests page n (1-based). It returns the appended records, or
// nil without fetching when a load is already in flight or the list is
// exhausted. On failure the pager is left as it was so the page can be
// retried.
func (p *Pager[T]) LoadPage(ctx context.Context, n int) ([]T, error) {
	if n < 1 {
		n = 1
	}

	p.mu.Lock()
	if p.loading || p.exhausted {
		p.mu.Unlock()
		return nil, nil
	}
	p.loading = true
	gen := p.gen
	opts := domain.ListOptions{
		OrderBy:   p.opts.OrderBy,
		Ascending: p.opts.Ascending,
		Offset:    (n - 1) * p.opts.PageSize,
		Limit:     p.opts.PageSize,
		Filter:    p.filter,
	}
	p.mu.Unlock()

	items, err := p.fetch(ctx, opts)

	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	p.mu.Lock()
	if gen != p.gen {
		// reset while in flight; the result belongs to an old filter
		p.mu.Unlock()
		return nil, nil
	}
	p.loading = false
	if err != nil {
		p.mu.Unlock()
		err = apperrors.WrapWithCode(err, apperrors.CodeFetchFailed, "failed to load page")
		if p.opts.OnError != nil {
			p.opts.OnError(err)
		}
		return nil, err
	}
	if len(items) == 0 {
		p.exhausted = true
		p.mu.Unlock()
		return nil, nil
	}
	p.items = append(p.items, items...)
	p.page = n
	p.mu.Unlock()

	if p.opts.OnAppend != nil {
		p.opts.OnAppend(items)
	}
	return items, nil
}

// LoadNext loads the page after the last one loaded.
func (p *Pager[T]) LoadNext(ctx context.Context) ([]T, error) {
	p.mu.Lock()
	next := p.page + 1
	p.mu.Unlock()
	return p.LoadPage(ctx, next)
}

// Reset switches to filter and forgets everything loaded so far. Any load
// in flight is orphaned.
func (p *Pager[T]) Reset(filter domain.Filter) {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	p.mu.Lock()
	p.filter = filter
	p.items = nil
	p.page = 0
	p.loading = false
	p.exhausted = false
	p.gen++
	p.mu.Unlock()

	if p.opts.OnReset != nil {
		p.opts.OnReset(filter)
	}
}

func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.items)
}

func (p *Pager[T]) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

func (p *Pager[T]) Exhausted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exhausted
}

func (p *Pager[T]) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

func (p *Pager[T]) Filter() domain.Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}
