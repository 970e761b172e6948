// Package gallery holds the photo gallery view state: the active filter,
// a debounced free-text query and the pager feeding the photo grid.
package gallery

import (
	"context"
	"time"

	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/timer"
)

const DefaultDebounce = 450 * time.Millisecond

type Opts struct {
	PageSize int
	Debounce time.Duration
	// OnReset is called after a filter change cleared the cache
	OnReset func(filter domain.Filter)
	// OnAppend receives new photos with the filter they were loaded for
	OnAppend func(items []domain.MediaItem, filter domain.Filter)
	OnError  func(err error)
}

type Gallery struct {
	ctx       context.Context
	filter    FilterState
	pager     *Pager[domain.MediaItem]
	debouncer *Debouncer
}

// New builds a gallery bound to ctx; loads triggered by timers use ctx.
func New(ctx context.Context, fetch FetchFunc[domain.MediaItem], sched timer.Scheduler, opts Opts) *Gallery {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	g := &Gallery{
		ctx:       ctx,
		debouncer: NewDebouncer(sched, opts.Debounce),
	}
	g.filter.Clear()

	var onAppend func(items []domain.MediaItem)
	if opts.OnAppend != nil {
		// the pager filter cannot change here: Reset waits for the append
		onAppend = func(items []domain.MediaItem) {
			opts.OnAppend(items, g.pager.Filter())
		}
	}
	g.pager = NewPager(fetch, PagerOpts[domain.MediaItem]{
		PageSize: opts.PageSize,
		OrderBy:  "created_at",
		OnAppend: onAppend,
		OnError:  opts.OnError,
		OnReset:  opts.OnReset,
	})
	// initial filter; there is nothing to clear yet
	g.pager.filter = g.filter.Filter()
	return g
}

// LoadMore fetches the next page for the current filter.
func (g *Gallery) LoadMore() ([]domain.MediaItem, error) {
	return g.pager.LoadNext(g.ctx)
}

// SetQuery records a keystroke; the reload happens once typing pauses.
func (g *Gallery) SetQuery(q string) {
	g.debouncer.Call(func() {
		g.filter.SetQuery(q)
		g.reload()
	})
}

func (g *Gallery) SelectTag(tag string) {
	g.filter.SelectTag(tag)
	g.reload()
}

func (g *Gallery) ApplyTags(tags []string, mode domain.TagMode) {
	g.filter.ApplyChecklist(tags, mode)
	g.reload()
}

// ClearFilters drops the query, the tag selection and any pending
// debounced query, then reloads.
func (g *Gallery) ClearFilters() {
	g.debouncer.Cancel()
	g.filter.Clear()
	g.reload()
}

func (g *Gallery) reload() {
	g.pager.Reset(g.filter.Filter())
	_, _ = g.pager.LoadPage(g.ctx, 1)
}

func (g *Gallery) Filter() domain.Filter {
	return g.filter.Filter()
}

func (g *Gallery) Items() []domain.MediaItem {
	return g.pager.Items()
}

func (g *Gallery) Exhausted() bool {
	return g.pager.Exhausted()
}

// URLs returns the cached photos' urls in display order, the list the
// lightbox navigates.
func (g *Gallery) URLs() []string {
	items := g.pager.Items()
	urls := make([]string, 0, len(items))
	for _, it := range items {
		urls = append(urls, it.URL)
	}
	return urls
}

// Dispose cancels the pending debounced query.
func (g *Gallery) Dispose() {
	g.debouncer.Cancel()
}
