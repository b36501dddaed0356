// Package snapshot converts pixel buffers to images and encodes them.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/joshvictor1024/mandelbrot-explorer/internal/raster"
)

var ErrUnknownFormat = errors.New("snapshot: unknown image format")

type Format int

const (
	PNG Format = iota
	BMP
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case BMP:
		return "bmp"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	}
	return PNG, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Image copies b into a new image.RGBA.
func Image(b *raster.Buffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	CopyTo(img, b)
	return img
}

// CopyTo writes b into img, which must be at least as large as b.
func CopyTo(img *image.RGBA, b *raster.Buffer) {
	for y := 0; y < b.Height; y += 1 {
		row := b.Rows(y, y+1)
		off := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		for x, c := range row {
			r, g, bl, a := c.RGBA()
			p := img.Pix[off+x*4 : off+x*4+4 : off+x*4+4]
			p[0], p[1], p[2], p[3] = r, g, bl, a
		}
	}
}

// Encode writes b to w in format f.
func Encode(w io.Writer, b *raster.Buffer, f Format) error {
	img := Image(b)
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("snapshot: encode %v: %w", f, err)
	}
	return nil
}
