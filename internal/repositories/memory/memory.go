package memory

import (
	"context"
	"errors"

	"github.com/orgball2608/class-gallery/internal/domain"
)

var ErrNotFound = errors.New("memory not found")
var ErrCannotCreate = errors.New("error create memory")

//go:generate go run go.uber.org/mock/mockgen -source=memory.go -destination=mocks/mock.go

type Repository interface {
	// List returns visible memories ordered by their display order
	List(ctx context.Context, opts domain.ListOptions) ([]*domain.MemoryItem, error)
	GetByID(ctx context.Context, id int64) (*domain.MemoryItem, error)
	Create(ctx context.Context, memory domain.MemoryItem) (int64, error)
	UpdateDetails(ctx context.Context, id int64, title, shortDesc string) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
