package photo

import (
	"context"
	"errors"

	"github.com/orgball2608/class-gallery/internal/domain"
)

var ErrNotFound = errors.New("photo not found")
var ErrCannotCreate = errors.New("error create photo")

//go:generate go run go.uber.org/mock/mockgen -source=photo.go -destination=mocks/mock.go

type Repository interface {
	// List returns one window of photos matching opts.Filter
	List(ctx context.Context, opts domain.ListOptions) ([]*domain.MediaItem, error)
	GetByID(ctx context.Context, id int64) (*domain.MediaItem, error)
	// ListByTag returns every photo carrying tag, regardless of paging
	ListByTag(ctx context.Context, tag string) ([]*domain.MediaItem, error)
	Create(ctx context.Context, item domain.MediaItem) (int64, error)
	Update(ctx context.Context, item domain.MediaItem) error
	UpdateTags(ctx context.Context, id int64, tags []string) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
