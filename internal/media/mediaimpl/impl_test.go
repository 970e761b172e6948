package mediaimpl

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/orgball2608/class-gallery/internal/media"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.NRGBA{R: 200, G: 40, B: 90, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestCompress(t *testing.T) {
	m := &MediaImpl{MaxDimension: DefaultMaxDimension, Quality: DefaultQuality}

	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{name: "landscape is fitted", w: 3200, h: 1600, wantW: 1600, wantH: 800},
		{name: "portrait is fitted", w: 1000, h: 2000, wantW: 800, wantH: 1600},
		{name: "small image keeps size", w: 640, h: 480, wantW: 640, wantH: 480},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := m.Compress(bytes.NewReader(pngBytes(t, tt.w, tt.h)), "image/png")
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if out.Width != tt.wantW || out.Height != tt.wantH {
				t.Fatalf("size = %dx%d, want %dx%d", out.Width, out.Height, tt.wantW, tt.wantH)
			}
			if out.Ext != ".jpg" || out.ContentType != "image/jpeg" {
				t.Fatalf("unexpected output type %q %q", out.Ext, out.ContentType)
			}
			decoded, err := imaging.Decode(bytes.NewReader(out.Data))
			if err != nil {
				t.Fatalf("output is not decodable: %v", err)
			}
			if decoded.Bounds().Dx() != tt.wantW {
				t.Fatalf("decoded width = %d", decoded.Bounds().Dx())
			}
		})
	}
}

func TestCompressRejectsBadInput(t *testing.T) {
	m := &MediaImpl{MaxDimension: DefaultMaxDimension, Quality: DefaultQuality}

	if _, err := m.Compress(strings.NewReader(""), "image/png"); !errors.Is(err, media.ErrEmpty) {
		t.Fatalf("empty input: err = %v", err)
	}
	if _, err := m.Compress(strings.NewReader("definitely not an image"), "image/png"); !errors.Is(err, media.ErrUnsupported) {
		t.Fatalf("garbage input: err = %v", err)
	}
}

func TestCompressEnforcesLimit(t *testing.T) {
	m := &MediaImpl{MaxDimension: DefaultMaxDimension, Quality: DefaultQuality, MaxBytes: 16}

	_, err := m.Compress(bytes.NewReader(pngBytes(t, 64, 64)), "image/png")
	if !errors.Is(err, media.ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}
