package tag

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("tag not found")

//go:generate go run go.uber.org/mock/mockgen -source=tag.go -destination=mocks/mock.go

type Repository interface {
	List(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
}
