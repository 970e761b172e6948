package event

import (
	"context"
	"errors"

	"github.com/orgball2608/class-gallery/internal/domain"
)

var ErrNotFound = errors.New("event not found")

//go:generate go run go.uber.org/mock/mockgen -source=event.go -destination=mocks/mock.go

type Repository interface {
	// List returns events ordered by end date, soonest first by default
	List(ctx context.Context, opts domain.ListOptions) ([]*domain.EventItem, error)
	Create(ctx context.Context, item domain.EventItem) (int64, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
