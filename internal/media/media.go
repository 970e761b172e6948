package media

import (
	"errors"
	"io"
)

var (
	ErrEmpty       = errors.New("empty image")
	ErrUnsupported = errors.New("unsupported image format")
	ErrTooLarge    = errors.New("image too large")
)

// Image is a compressed, upload ready picture.
type Image struct {
	Data        []byte
	Width       int
	Height      int
	Ext         string
	ContentType string
}

//go:generate go run go.uber.org/mock/mockgen -source=media.go -destination=mocks/mock.go

type Client interface {
	// Compress downsizes r so neither side exceeds the configured maximum
	// and re-encodes it as JPEG
	Compress(r io.Reader, contentType string) (*Image, error)
}
