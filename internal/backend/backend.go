// Package backend is the narrow query surface the viewer side reads
// through: windowed record lists, single memory lookup, storage listing,
// site settings and the confess board.
package backend

import (
	"context"
	"errors"

	"github.com/orgball2608/class-gallery/internal/domain"
)

var ErrNotFound = errors.New("record not found")

//go:generate go run go.uber.org/mock/mockgen -source=backend.go -destination=mocks/mock.go

type Client interface {
	ListPhotos(ctx context.Context, opts domain.ListOptions) ([]domain.MediaItem, error)
	// ListMemories returns visible memories sorted by display order; ties
	// keep the order the backend returned them in
	ListMemories(ctx context.Context, opts domain.ListOptions) ([]domain.MemoryItem, error)
	ListNews(ctx context.Context, opts domain.ListOptions) ([]domain.NewsItem, error)
	ListEvents(ctx context.Context, opts domain.ListOptions) ([]domain.EventItem, error)
	ListTags(ctx context.Context) ([]string, error)
	GetMemory(ctx context.Context, id int64) (*domain.MemoryItem, error)
	ListFiles(ctx context.Context, bucket, prefix string) ([]domain.FileInfo, error)
	PublicURL(bucket, objectPath string) string

	// ListMessages returns confess board messages, newest first
	ListMessages(ctx context.Context, opts domain.ListOptions) ([]domain.Message, error)
	// PostMessage validates and stores one board message. It is not retried.
	PostMessage(ctx context.Context, msg domain.Message) (*domain.Message, error)
	// SiteSettings returns the hero and footer; a malformed section is left
	// empty rather than failing the whole read
	SiteSettings(ctx context.Context) (domain.SiteSettings, error)
}
