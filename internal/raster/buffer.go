// Package raster fills pixel buffers with escape-time colors in parallel.
//
// A Buffer is an arena sized before a pass starts. The Scheduler hands each
// worker a disjoint band of rows, so workers write without locking and never
// read each other's rows.
package raster

import (
	"errors"
	"fmt"

	"github.com/joshvictor1024/mandelbrot-explorer/internal/escape"
)

var ErrSizeMismatch = errors.New("raster: buffer length does not match its size")

// Buffer is a row-major pixel buffer with its origin at the top-left.
// len(Pix) == Width*Height always holds after NewBuffer or Resize.
type Buffer struct {
	Width, Height int
	Pix           []escape.Color
}

func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize reallocates b to width x height, zero filled.
// Negative sizes are treated as zero.
func (b *Buffer) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	b.Width = width
	b.Height = height
	b.Pix = make([]escape.Color, width*height)
}

func (b *Buffer) At(x, y int) escape.Color {
	return b.Pix[y*b.Width+x]
}

// Rows returns the pixels of rows [y0, y1) as a view into b.
func (b *Buffer) Rows(y0, y1 int) []escape.Color {
	return b.Pix[y0*b.Width : y1*b.Width]
}

func (b *Buffer) check() error {
	if b.Width < 0 || b.Height < 0 || len(b.Pix) != b.Width*b.Height {
		return fmt.Errorf("%w: %dx%d with %d pixels", ErrSizeMismatch, b.Width, b.Height, len(b.Pix))
	}
	return nil
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{Width: b.Width, Height: b.Height, Pix: make([]escape.Color, len(b.Pix))}
	copy(c.Pix, b.Pix)
	return c
}
