package diskimpl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/storage"
	"github.com/orgball2608/class-gallery/pkg/logger"
)

func newDisk(t *testing.T) *DiskImpl {
	t.Helper()
	d, err := NewWithRoot(t.TempDir(), "https://kelas.example/media/", logger.Nop())
	if err != nil {
		t.Fatalf("NewWithRoot: %v", err)
	}
	return d
}

func TestUploadListRemove(t *testing.T) {
	ctx := context.Background()
	d := newDisk(t)

	p, err := d.Upload(ctx, domain.BucketPhotos, "2025/a.jpg", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if p != "2025/a.jpg" {
		t.Fatalf("path = %q", p)
	}
	if _, err := d.Upload(ctx, domain.BucketPhotos, "b.jpg", strings.NewReader("xy")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	files, err := d.List(ctx, domain.BucketPhotos, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("List returned %d files, want 2", len(files))
	}

	files, err = d.List(ctx, domain.BucketPhotos, "2025/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 1 || files[0].Name != "2025/a.jpg" || files[0].Size != int64(len("jpeg-bytes")) {
		t.Fatalf("unexpected prefixed listing %+v", files)
	}

	if err := d.Remove(ctx, domain.BucketPhotos, "2025/a.jpg", "missing.jpg"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	files, _ = d.List(ctx, domain.BucketPhotos, "")
	if len(files) != 1 {
		t.Fatalf("expected 1 file after remove, got %d", len(files))
	}
}

func TestUploadRejectsEscapes(t *testing.T) {
	d := newDisk(t)

	_, err := d.Upload(context.Background(), domain.BucketPhotos, "../../evil", strings.NewReader("x"))
	if !errors.Is(err, storage.ErrInvalidPath) {
		t.Fatalf("err = %v, want ErrInvalidPath", err)
	}
	_, err = d.Upload(context.Background(), "private", "a.jpg", strings.NewReader("x"))
	if !errors.Is(err, storage.ErrUnknownBucket) {
		t.Fatalf("err = %v, want ErrUnknownBucket", err)
	}
}

func TestPublicURL(t *testing.T) {
	d := newDisk(t)

	tests := []struct {
		bucket string
		path   string
		want   string
	}{
		{domain.BucketPhotos, "a.jpg", "https://kelas.example/media/photos/a.jpg"},
		{domain.BucketMemories, "trip/foto 1.jpg", "https://kelas.example/media/memories/trip/foto%201.jpg"},
		{domain.BucketPhotos, "", ""},
		{domain.BucketPhotos, "../x", ""},
		{"nope", "a.jpg", ""},
	}
	for _, tt := range tests {
		if got := d.PublicURL(tt.bucket, tt.path); got != tt.want {
			t.Errorf("PublicURL(%q, %q) = %q, want %q", tt.bucket, tt.path, got, tt.want)
		}
	}
}
