package diskimpl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/storage"
	"github.com/orgball2608/class-gallery/pkg/config"
	"github.com/orgball2608/class-gallery/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// DiskImpl keeps each bucket as a directory under a root folder. Objects
// are served by the HTTP server under the public base url.
type DiskImpl struct {
	root    string
	baseURL string
	logger  logger.Logger
}

func New(opts Opts) (*DiskImpl, error) {
	return NewWithRoot(opts.Config.Storage.Root, opts.Config.Storage.PublicBaseURL, opts.Logger)
}

func NewWithRoot(root, baseURL string, log logger.Logger) (*DiskImpl, error) {
	for _, b := range storage.Buckets {
		if err := os.MkdirAll(filepath.Join(root, b), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create bucket dir %s: %w", b, err)
		}
	}
	return &DiskImpl{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log.WithComponent("DiskStorage"),
	}, nil
}

var _ storage.Client = (*DiskImpl)(nil)

// Root is the directory holding the buckets.
func (d *DiskImpl) Root() string {
	return d.root
}

func (d *DiskImpl) resolve(bucket, objectPath string) (string, string, error) {
	if !storage.KnownBucket(bucket) {
		return "", "", storage.ErrUnknownBucket
	}
	clean, err := storage.CleanPath(objectPath)
	if err != nil {
		return "", "", err
	}
	return clean, filepath.Join(d.root, bucket, filepath.FromSlash(clean)), nil
}

func (d *DiskImpl) Upload(ctx context.Context, bucket, name string, r io.Reader) (string, error) {
	clean, full, err := d.resolve(bucket, name)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp object: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close object: %w", err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return "", fmt.Errorf("failed to store object: %w", err)
	}

	d.logger.Debug("Stored object", "bucket", bucket, "path", clean)
	return clean, nil
}

func (d *DiskImpl) Remove(ctx context.Context, bucket string, paths ...string) error {
	var errs []error
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, full, err := d.resolve(bucket, p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}
		if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

func (d *DiskImpl) List(ctx context.Context, bucket, prefix string) ([]domain.FileInfo, error) {
	if !storage.KnownBucket(bucket) {
		return nil, storage.ErrUnknownBucket
	}
	bucketDir := filepath.Join(d.root, bucket)

	files := []domain.FileInfo{}
	err := filepath.WalkDir(bucketDir, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".upload-") {
			return nil
		}
		rel, err := filepath.Rel(bucketDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !strings.HasPrefix(rel, prefix) {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		files = append(files, domain.FileInfo{
			Name:       rel,
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bucket %s: %w", bucket, err)
	}

	return files, nil
}

func (d *DiskImpl) PublicURL(bucket, objectPath string) string {
	if !storage.KnownBucket(bucket) {
		return ""
	}
	clean, err := storage.CleanPath(objectPath)
	if err != nil {
		return ""
	}

	segments := strings.Split(clean, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return d.baseURL + "/" + path.Join(bucket, strings.Join(segments, "/"))
}
