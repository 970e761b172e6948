package mediaimpl

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/orgball2608/class-gallery/internal/media"
	"github.com/orgball2608/class-gallery/pkg/config"
	"go.uber.org/fx"
)

const (
	DefaultMaxDimension = 1600
	DefaultQuality      = 82
)

type Opts struct {
	fx.In

	Config *config.Config
}

type MediaImpl struct {
	MaxDimension int
	Quality      int
	MaxBytes     int64
}

func New(opts Opts) *MediaImpl {
	return &MediaImpl{
		MaxDimension: DefaultMaxDimension,
		Quality:      DefaultQuality,
		MaxBytes:     int64(opts.Config.Limits.MaxUploadMB) * 1024 * 1024,
	}
}

var _ media.Client = (*MediaImpl)(nil)

func (m *MediaImpl) Compress(r io.Reader, contentType string) (*media.Image, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err != nil {
		if err == io.EOF {
			return nil, media.ErrEmpty
		}
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, err := decode(br, contentType)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Dx() > m.MaxDimension || bounds.Dy() > m.MaxDimension {
		img = imaging.Fit(img, m.MaxDimension, m.MaxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(m.Quality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	if m.MaxBytes > 0 && int64(buf.Len()) > m.MaxBytes {
		return nil, media.ErrTooLarge
	}

	out := img.Bounds()
	return &media.Image{
		Data:        buf.Bytes(),
		Width:       out.Dx(),
		Height:      out.Dy(),
		Ext:         ".jpg",
		ContentType: "image/jpeg",
	}, nil
}

func decode(r *bufio.Reader, contentType string) (image.Image, error) {
	if strings.Contains(contentType, "webp") || isWebP(r) {
		img, err := webp.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", media.ErrUnsupported, err)
		}
		return img, nil
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", media.ErrUnsupported, err)
	}
	return img, nil
}

// isWebP sniffs the RIFF....WEBP container header.
func isWebP(r *bufio.Reader) bool {
	header, err := r.Peek(12)
	if err != nil {
		return false
	}
	return string(header[0:4]) == "RIFF" && string(header[8:12]) == "WEBP"
}
