package message

import (
	"context"
	"errors"

	"github.com/orgball2608/class-gallery/internal/domain"
)

var ErrNotFound = errors.New("message not found")

//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=mocks/mock.go

type Repository interface {
	// List returns board messages, newest first
	List(ctx context.Context, opts domain.ListOptions) ([]*domain.Message, error)
	Create(ctx context.Context, msg domain.Message) (*domain.Message, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
