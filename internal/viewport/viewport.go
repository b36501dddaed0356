// Package viewport maps pixels to the complex plane and applies pan and zoom.
//
// A Viewport is a plain value: every transform either replaces all four
// bounds or, when the result would break MaxRe > MinRe and MaxIm > MinIm,
// returns an error and leaves them untouched.
package viewport

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MinExtent is the smallest whole-view extent allowed, relative to the
	// magnitude of the plane coordinates involved. It only keeps the bounds
	// ordered and finite; pixel spacing runs out of float64 resolution
	// roughly width times earlier, so deep zooms turn blocky before they stop.
	MinExtent = 1e-13

	// MaxExtent bounds zoom-out. The whole set fits in an extent of 4.
	MaxExtent = 1e3
)

var (
	ErrDegenerate    = errors.New("viewport: degenerate extent")
	ErrInvalidFactor = errors.New("viewport: invalid zoom factor")
	ErrInvalidSize   = errors.New("viewport: invalid buffer size")
	ErrInvalidDelta  = errors.New("viewport: invalid pan delta")
)

type Viewport struct {
	MinRe, MaxRe float64
	MinIm, MaxIm float64
}

// Default returns the initial view, [-2, 1] on the real axis starting at
// -1.2 on the imaginary axis, fitted to a width x height buffer.
func Default(width, height int) Viewport {
	v := Viewport{MinRe: -2.0, MaxRe: 1.0, MinIm: -1.2, MaxIm: 1.2}
	// an invalid size keeps the symmetric imaginary range
	_ = v.Resize(width, height)
	return v
}

func (v Viewport) RealExtent() float64 { return v.MaxRe - v.MinRe }
func (v Viewport) ImagExtent() float64 { return v.MaxIm - v.MinIm }

func (v Viewport) Center() (re, im float64) {
	return v.MinRe + v.RealExtent()/2, v.MinIm + v.ImagExtent()/2
}

// Valid reports whether all bounds are finite and both extents positive.
func (v Viewport) Valid() bool {
	for _, f := range [...]float64{v.MinRe, v.MaxRe, v.MinIm, v.MaxIm} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return v.MaxRe > v.MinRe && v.MaxIm > v.MinIm
}

func (v Viewport) String() string {
	return fmt.Sprintf("re [%g, %g] im [%g, %g]", v.MinRe, v.MaxRe, v.MinIm, v.MaxIm)
}

// At maps a normalized position to the plane. (0, 0) is the top-left corner
// (MinRe, MaxIm) and (1, 1) the bottom-right corner (MaxRe, MinIm).
func (v Viewport) At(nx, ny float64) (re, im float64) {
	return v.MinRe + nx*v.RealExtent(), v.MaxIm - ny*v.ImagExtent()
}

// Normalize converts a pixel position of a width x height buffer to the
// normalized position At expects, so that At(Normalize(p)) == PixelToComplex(p).
// A single-pixel axis normalizes to 0.
func Normalize(px, py float64, width, height int) (nx, ny float64) {
	if width > 1 {
		nx = px / float64(width-1)
	}
	if height > 1 {
		ny = py / float64(height-1)
	}
	return nx, ny
}

// PixelToComplex maps pixel (px, py) of a width x height buffer to the plane.
// Row 0 maps to MaxIm: pixel rows grow downwards, the imaginary axis upwards.
func (v Viewport) PixelToComplex(px, py, width, height int) (re, im float64) {
	re = v.MinRe
	if width > 1 {
		re += float64(px) * v.RealExtent() / float64(width-1)
	}
	im = v.MaxIm
	if height > 1 {
		im -= float64(py) * v.ImagExtent() / float64(height-1)
	}
	return re, im
}

// ZoomAt scales the view by factor about the normalized position (nx, ny).
// The plane point under (nx, ny) stays under it. factor < 1 zooms in.
func (v *Viewport) ZoomAt(nx, ny, factor float64) error {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidFactor, factor)
	}
	if !finite(nx) || !finite(ny) {
		return fmt.Errorf("%w: anchor (%g, %g)", ErrInvalidDelta, nx, ny)
	}
	if factor == 1 {
		return nil
	}

	re, im := v.At(nx, ny)
	w := v.RealExtent() * factor
	h := v.ImagExtent() * factor
	if err := checkExtent(w, re); err != nil {
		return err
	}
	if err := checkExtent(h, im); err != nil {
		return err
	}

	minRe := re - nx*w
	maxIm := im + ny*h
	next := Viewport{MinRe: minRe, MaxRe: minRe + w, MinIm: maxIm - h, MaxIm: maxIm}
	if !next.Valid() {
		return fmt.Errorf("%w: %v", ErrDegenerate, next)
	}
	*v = next
	return nil
}

// PanBy shifts the view by a normalized delta so that content follows the
// pointer: dragging right (dx > 0) moves the view towards smaller real parts,
// dragging down (dy > 0) towards larger imaginary parts.
func (v *Viewport) PanBy(dx, dy float64) error {
	if !finite(dx) || !finite(dy) {
		return fmt.Errorf("%w: (%g, %g)", ErrInvalidDelta, dx, dy)
	}
	sre := dx * v.RealExtent()
	sim := dy * v.ImagExtent()
	next := Viewport{
		MinRe: v.MinRe - sre,
		MaxRe: v.MaxRe - sre,
		MinIm: v.MinIm + sim,
		MaxIm: v.MaxIm + sim,
	}
	if !next.Valid() {
		return fmt.Errorf("%w: %v", ErrDegenerate, next)
	}
	*v = next
	return nil
}

// Resize re-derives MaxIm so pixels of a width x height buffer stay square.
// The real bounds and MinIm are kept.
func (v *Viewport) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	maxIm := v.MinIm + v.RealExtent()*float64(height)/float64(width)
	if !(maxIm > v.MinIm) || !finite(maxIm) {
		return fmt.Errorf("%w: %dx%d", ErrDegenerate, width, height)
	}
	v.MaxIm = maxIm
	return nil
}

// Magnification is how far v is zoomed in relative to ref.
func (v Viewport) Magnification(ref Viewport) float64 {
	return ref.RealExtent() / v.RealExtent()
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func checkExtent(extent, at float64) error {
	if !finite(extent) || extent <= 0 {
		return fmt.Errorf("%w: extent %g", ErrDegenerate, extent)
	}
	if extent < MinExtent*math.Max(1, math.Abs(at)) {
		return fmt.Errorf("%w: extent %g below precision limit", ErrDegenerate, extent)
	}
	if extent > MaxExtent {
		return fmt.Errorf("%w: extent %g above %g", ErrDegenerate, extent, MaxExtent)
	}
	return nil
}
