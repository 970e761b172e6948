package adminimpl

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/class-gallery/internal/admin"
	"github.com/orgball2608/class-gallery/internal/backend"
	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/media"
	"github.com/orgball2608/class-gallery/internal/repositories/event"
	"github.com/orgball2608/class-gallery/internal/repositories/memory"
	"github.com/orgball2608/class-gallery/internal/repositories/message"
	"github.com/orgball2608/class-gallery/internal/repositories/news"
	"github.com/orgball2608/class-gallery/internal/repositories/photo"
	"github.com/orgball2608/class-gallery/internal/repositories/setting"
	"github.com/orgball2608/class-gallery/internal/repositories/tag"
	"github.com/orgball2608/class-gallery/internal/storage"
	"github.com/orgball2608/class-gallery/pkg/config"
	apperrors "github.com/orgball2608/class-gallery/pkg/errors"
	"github.com/orgball2608/class-gallery/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Lc       fx.Lifecycle `optional:"true"`
	Config   *config.Config
	Logger   logger.Logger
	Photos   photo.Repository
	Memories memory.Repository
	Tags     tag.Repository
	News     news.Repository
	Events   event.Repository
	Messages message.Repository
	Settings setting.Repository
	Storage  storage.Client
	Media    media.Client
	Backend  backend.Client
	Clock    clockwork.Clock `optional:"true"`
}

type AdminImpl struct {
	Photos   photo.Repository
	Memories memory.Repository
	Tags     tag.Repository
	News     news.Repository
	Events   event.Repository
	Messages message.Repository
	Settings setting.Repository
	Storage  storage.Client
	Media    media.Client
	Backend  backend.Client
	Logger   logger.Logger
	Config   *config.Config

	clock clockwork.Clock
	pool  *ants.Pool
}

func New(opts Opts) (*AdminImpl, error) {
	workers := opts.Config.Limits.UploadWorkers
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create upload pool: %w", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	a := &AdminImpl{
		Photos:   opts.Photos,
		Memories: opts.Memories,
		Tags:     opts.Tags,
		News:     opts.News,
		Events:   opts.Events,
		Messages: opts.Messages,
		Settings: opts.Settings,
		Storage:  opts.Storage,
		Media:    opts.Media,
		Backend:  opts.Backend,
		Logger:   opts.Logger.WithComponent("Admin"),
		Config:   opts.Config,
		clock:    clock,
		pool:     pool,
	}

	if opts.Lc != nil {
		opts.Lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return a.pool.ReleaseTimeout(5 * time.Second)
			},
		})
	}
	return a, nil
}

var _ admin.Service = (*AdminImpl)(nil)

// Close releases the upload pool.
func (a *AdminImpl) Close() {
	a.pool.Release()
}

// storeImage compresses f and uploads it to bucket, returning the object
// path and its public url.
func (a *AdminImpl) storeImage(ctx context.Context, bucket string, f admin.File) (string, string, error) {
	if f.Open == nil {
		return "", "", apperrors.WrapWithCode(media.ErrEmpty, apperrors.CodeBadRequest, "no file")
	}
	rc, err := f.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()

	img, err := a.Media.Compress(rc, f.ContentType)
	if err != nil {
		return "", "", apperrors.WrapWithCode(err, apperrors.CodeBadRequest, fmt.Sprintf("cannot process %s", f.Name))
	}

	name := storage.ObjectName(f.Name, img.Ext, a.clock.Now())
	objectPath, err := a.Storage.Upload(ctx, bucket, name, bytes.NewReader(img.Data))
	if err != nil {
		return "", "", apperrors.WrapWithCode(err, apperrors.CodeUploadFailed, fmt.Sprintf("upload %s failed", f.Name))
	}
	return objectPath, a.Storage.PublicURL(bucket, objectPath), nil
}

// removeObjects deletes stored objects, logging instead of failing; the
// rows referencing them are already gone or were never written.
func (a *AdminImpl) removeObjects(ctx context.Context, bucket string, paths ...string) {
	var keep []string
	for _, p := range paths {
		if p != "" {
			keep = append(keep, p)
		}
	}
	if len(keep) == 0 {
		return
	}
	if err := a.Storage.Remove(ctx, bucket, keep...); err != nil {
		a.Logger.Warn("Failed to remove stored objects", "bucket", bucket, "paths", keep, "error", err)
	}
}

func (a *AdminImpl) Dashboard(ctx context.Context) (domain.DashboardCounts, error) {
	var counts domain.DashboardCounts
	var err error

	if counts.Photos, err = a.Photos.Count(ctx); err != nil {
		return counts, fmt.Errorf("count photos: %w", err)
	}
	if counts.News, err = a.News.Count(ctx); err != nil {
		return counts, fmt.Errorf("count news: %w", err)
	}
	if counts.Events, err = a.Events.Count(ctx); err != nil {
		return counts, fmt.Errorf("count events: %w", err)
	}
	if counts.Memories, err = a.Memories.Count(ctx); err != nil {
		return counts, fmt.Errorf("count memories: %w", err)
	}
	if counts.Messages, err = a.Messages.Count(ctx); err != nil {
		return counts, fmt.Errorf("count messages: %w", err)
	}
	return counts, nil
}
