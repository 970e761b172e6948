package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/orgball2608/class-gallery/internal/domain"
)

var (
	ErrUnknownBucket = errors.New("unknown bucket")
	ErrInvalidPath   = errors.New("invalid object path")
)

//go:generate go run go.uber.org/mock/mockgen -source=storage.go -destination=mocks/mock.go

type Client interface {
	// Upload stores r under bucket/name and returns the stored object path
	Upload(ctx context.Context, bucket, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, bucket string, paths ...string) error
	List(ctx context.Context, bucket, prefix string) ([]domain.FileInfo, error)
	// PublicURL resolves an object path to a fetchable url, or "" when the
	// path is empty or invalid
	PublicURL(bucket, objectPath string) string
}

// Buckets lists every bucket the site writes to.
var Buckets = []string{domain.BucketPhotos, domain.BucketNews, domain.BucketMemories}

func KnownBucket(bucket string) bool {
	for _, b := range Buckets {
		if b == bucket {
			return true
		}
	}
	return false
}

// CleanPath normalises an object path and rejects anything that would
// escape its bucket.
func CleanPath(objectPath string) (string, error) {
	p := strings.TrimSpace(strings.ReplaceAll(objectPath, `\`, "/"))
	if p == "" || strings.HasPrefix(p, "/") {
		return "", ErrInvalidPath
	}
	p = path.Clean(p)
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return "", ErrInvalidPath
	}
	return p, nil
}

// ObjectName builds a unique, time ordered object name keeping a readable
// form of the original file name.
func ObjectName(original, ext string, now time.Time) string {
	base := path.Base(strings.ReplaceAll(original, `\`, "/"))
	base = strings.TrimSuffix(base, path.Ext(base))

	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ', r == '_', r == '.':
			b.WriteRune('-')
		}
		if b.Len() >= 40 {
			break
		}
	}
	slug := strings.Trim(b.String(), "-")

	id := ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
	if slug == "" {
		return strings.ToLower(id) + ext
	}
	return strings.ToLower(id) + "_" + slug + ext
}
