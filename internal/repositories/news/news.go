package news

import (
	"context"
	"errors"

	"github.com/orgball2608/class-gallery/internal/domain"
)

var ErrNotFound = errors.New("news not found")

//go:generate go run go.uber.org/mock/mockgen -source=news.go -destination=mocks/mock.go

type Repository interface {
	List(ctx context.Context, opts domain.ListOptions) ([]*domain.NewsItem, error)
	GetByID(ctx context.Context, id int64) (*domain.NewsItem, error)
	Create(ctx context.Context, item domain.NewsItem) (int64, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
