package backendimpl

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/orgball2608/class-gallery/internal/backend"
	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/repositories/event"
	"github.com/orgball2608/class-gallery/internal/repositories/memory"
	"github.com/orgball2608/class-gallery/internal/repositories/message"
	"github.com/orgball2608/class-gallery/internal/repositories/news"
	"github.com/orgball2608/class-gallery/internal/repositories/photo"
	"github.com/orgball2608/class-gallery/internal/repositories/setting"
	"github.com/orgball2608/class-gallery/internal/repositories/tag"
	"github.com/orgball2608/class-gallery/internal/storage"
	"github.com/orgball2608/class-gallery/pkg/config"
	"github.com/orgball2608/class-gallery/pkg/logger"
	"github.com/orgball2608/class-gallery/pkg/retry"
	"go.uber.org/fx"
)

type BackendImpl struct {
	photos   photo.Repository
	memories memory.Repository
	news     news.Repository
	events   event.Repository
	tags     tag.Repository
	messages message.Repository
	settings setting.Repository
	storage  storage.Client
	retry    retry.Config
	logger   logger.Logger
}

type Opts struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Photos   photo.Repository
	Memories memory.Repository
	News     news.Repository
	Events   event.Repository
	Tags     tag.Repository
	Messages message.Repository
	Settings setting.Repository
	Storage  storage.Client
}

func New(opts Opts) *BackendImpl {
	rc := retry.DefaultConfig()
	if opts.Config != nil {
		rc.MaxRetries = opts.Config.Retry.Attempts
		if opts.Config.Retry.Delay > 0 {
			rc.Interval = opts.Config.Retry.Delay
		}
	}
	return &BackendImpl{
		photos:   opts.Photos,
		memories: opts.Memories,
		news:     opts.News,
		events:   opts.Events,
		tags:     opts.Tags,
		messages: opts.Messages,
		settings: opts.Settings,
		storage:  opts.Storage,
		retry:    rc,
		logger:   opts.Logger.WithComponent("Backend"),
	}
}

var _ backend.Client = (*BackendImpl)(nil)

func (b *BackendImpl) ListPhotos(ctx context.Context, opts domain.ListOptions) ([]domain.MediaItem, error) {
	rows, err := query(ctx, b, "list photos", func() ([]*domain.MediaItem, error) {
		return b.photos.List(ctx, opts)
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.MediaItem, 0, len(rows))
	for _, row := range rows {
		item := *row
		if item.Tags == nil {
			item.Tags = []string{}
		}
		if item.URL == "" {
			item.URL = b.storage.PublicURL(domain.BucketPhotos, item.StoragePath)
		}
		items = append(items, item)
	}
	return items, nil
}

func (b *BackendImpl) ListMemories(ctx context.Context, opts domain.ListOptions) ([]domain.MemoryItem, error) {
	rows, err := query(ctx, b, "list memories", func() ([]*domain.MemoryItem, error) {
		return b.memories.List(ctx, opts)
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.MemoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, b.resolveMemory(*row))
	}
	slices.SortStableFunc(items, func(x, y domain.MemoryItem) int {
		return x.Order - y.Order
	})
	return items, nil
}

func (b *BackendImpl) ListNews(ctx context.Context, opts domain.ListOptions) ([]domain.NewsItem, error) {
	rows, err := query(ctx, b, "list news", func() ([]*domain.NewsItem, error) {
		return b.news.List(ctx, opts)
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.NewsItem, 0, len(rows))
	for _, row := range rows {
		item := *row
		if item.ImageURL == "" && item.ImagePath != "" {
			item.ImageURL = b.storage.PublicURL(domain.BucketNews, item.ImagePath)
		}
		items = append(items, item)
	}
	return items, nil
}

func (b *BackendImpl) ListEvents(ctx context.Context, opts domain.ListOptions) ([]domain.EventItem, error) {
	rows, err := query(ctx, b, "list events", func() ([]*domain.EventItem, error) {
		return b.events.List(ctx, opts)
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.EventItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, *row)
	}
	return items, nil
}

func (b *BackendImpl) ListTags(ctx context.Context) ([]string, error) {
	return query(ctx, b, "list tags", func() ([]string, error) {
		return b.tags.List(ctx)
	})
}

func (b *BackendImpl) GetMemory(ctx context.Context, id int64) (*domain.MemoryItem, error) {
	row, err := query(ctx, b, "get memory", func() (*domain.MemoryItem, error) {
		return b.memories.GetByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, memory.ErrNotFound) {
			return nil, fmt.Errorf("memory %d: %w", id, backend.ErrNotFound)
		}
		return nil, err
	}

	item := b.resolveMemory(*row)
	return &item, nil
}

func (b *BackendImpl) ListFiles(ctx context.Context, bucket, prefix string) ([]domain.FileInfo, error) {
	return query(ctx, b, "list files", func() ([]domain.FileInfo, error) {
		files, err := b.storage.List(ctx, bucket, prefix)
		if errors.Is(err, storage.ErrUnknownBucket) || errors.Is(err, storage.ErrInvalidPath) {
			return nil, retry.Permanent(err)
		}
		return files, err
	})
}

func (b *BackendImpl) PublicURL(bucket, objectPath string) string {
	return b.storage.PublicURL(bucket, objectPath)
}

func (b *BackendImpl) resolveMemory(m domain.MemoryItem) domain.MemoryItem {
	photos := make([]domain.MemoryPhoto, 0, len(m.Photos))
	for _, p := range m.Photos {
		if p.URL == "" {
			p.URL = b.storage.PublicURL(domain.BucketMemories, p.StoragePath)
		}
		if p.URL == "" {
			continue
		}
		photos = append(photos, p)
	}
	m.Photos = photos
	return m
}

// query runs op with the configured retry policy. Not-found results are
// final and never retried.
func query[T any](ctx context.Context, b *BackendImpl, name string, op func() (T, error)) (T, error) {
	return retry.DoValue(ctx, b.logger, name, func() (T, error) {
		v, err := op()
		if err != nil && isNotFound(err) {
			return v, retry.Permanent(err)
		}
		return v, err
	}, b.retry)
}

func isNotFound(err error) bool {
	return errors.Is(err, photo.ErrNotFound) ||
		errors.Is(err, memory.ErrNotFound) ||
		errors.Is(err, news.ErrNotFound) ||
		errors.Is(err, event.ErrNotFound) ||
		errors.Is(err, tag.ErrNotFound) ||
		errors.Is(err, message.ErrNotFound)
}
