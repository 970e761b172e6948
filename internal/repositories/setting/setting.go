package setting

import (
	"context"
)

//go:generate go run go.uber.org/mock/mockgen -source=setting.go -destination=mocks/mock.go

// Repository stores site settings as raw JSON documents keyed by name.
type Repository interface {
	All(ctx context.Context) (map[string][]byte, error)
	Upsert(ctx context.Context, key string, value []byte) error
}
