// Package admin is the content management surface: uploads, photo and
// tag maintenance, memories, news, events, the confess board, site
// settings and storage reporting.
package admin

import (
	"context"
	"io"
	"time"

	"github.com/orgball2608/class-gallery/internal/domain"
)

// File is one uploaded file as received from a form.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type PhotoMeta struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// PhotoUpdate replaces a photo's details and, when File is set, its image.
type PhotoUpdate struct {
	PhotoMeta
	File *File `json:"-"`
}

// UploadResult reports the outcome of one file in a batch.
type UploadResult struct {
	Name  string `json:"name"`
	ID    int64  `json:"id,omitempty"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

type MemoryInput struct {
	Title            string     `json:"title"`
	ShortDescription string     `json:"short_desc"`
	EventDate        *time.Time `json:"event_date,omitempty"`
	Order            int        `json:"order"`
	Visible          bool       `json:"visible"`
}

type NewsInput struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"published_at"`
}

type EventInput struct {
	Title   string    `json:"title"`
	DateEnd time.Time `json:"date_end"`
}

type HeroInput struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

//go:generate go run go.uber.org/mock/mockgen -source=admin.go -destination=mocks/mock.go

type Service interface {
	// UploadPhotos compresses and stores every file, creating one photo per
	// file. Failures are reported per file.
	UploadPhotos(ctx context.Context, files []File, meta PhotoMeta) []UploadResult
	UpdatePhoto(ctx context.Context, id int64, update PhotoUpdate) error
	DeletePhoto(ctx context.Context, id int64) error
	// BulkTags applies comma separated tag operations to every photo in
	// ids; "remove:name" removes a tag, anything else adds it
	BulkTags(ctx context.Context, ids []int64, ops string) (int, error)
	BulkDelete(ctx context.Context, ids []int64) (int, error)

	AddTag(ctx context.Context, name string) error
	RenameTag(ctx context.Context, oldName, newName string) error
	DeleteTag(ctx context.Context, name string) error

	CreateMemory(ctx context.Context, input MemoryInput, files []File) (int64, error)
	UpdateMemory(ctx context.Context, id int64, title, shortDesc string) error
	DeleteMemory(ctx context.Context, id int64) error

	CreateNews(ctx context.Context, input NewsInput, image *File) (int64, error)
	DeleteNews(ctx context.Context, id int64) error
	CreateEvent(ctx context.Context, input EventInput) (int64, error)
	DeleteEvent(ctx context.Context, id int64) error

	DeleteMessage(ctx context.Context, id int64) error
	// SaveHero stores the hero section. Without an image the previous one
	// is kept; a replaced image is removed from storage.
	SaveHero(ctx context.Context, input HeroInput, image *File) (domain.Hero, error)
	SaveFooter(ctx context.Context, text string) (domain.Footer, error)

	Dashboard(ctx context.Context) (domain.DashboardCounts, error)
	StorageUsage(ctx context.Context) ([]domain.BucketUsage, error)
	ScheduleStorageReport(ctx context.Context) error
}
