// Package hud draws the status overlay shown on top of the fractal: a few
// lines of text and an overview minimap with the current view outlined.
package hud

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/joshvictor1024/mandelbrot-explorer/internal/escape"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/frame"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/raster"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/snapshot"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/viewport"
	"github.com/joshvictor1024/mandelbrot-explorer/pkg/types"
)

const (
	// minimap width relative to the frame width
	MinimapRatio = 0.15
	minMinimapW  = 64
	padding      = 4
	lineHeight   = 13
)

var (
	background = color.RGBA{0, 0, 0, 160}
	foreground = color.RGBA{255, 230, 90, 255}
	outline    = color.RGBA{255, 40, 40, 255}
)

// Overlay renders the HUD panel. The overview is computed once at creation.
type Overlay struct {
	home     viewport.Viewport
	overview *image.RGBA
	face     font.Face
	panel    *image.RGBA
}

// New renders the overview of the default view at w x h with s.
func New(s *raster.Scheduler, p escape.Params, w, h int) (*Overlay, error) {
	home := viewport.Default(w, h)
	b := raster.NewBuffer(w, h)
	if _, err := s.Render(home, p, b); err != nil {
		return nil, fmt.Errorf("hud: overview: %w", err)
	}
	return &Overlay{
		home:     home,
		overview: snapshot.Image(b),
		face:     basicfont.Face7x13,
	}, nil
}

// Lines returns the status text for f.
func Lines(f frame.Frame) []string {
	re, im := f.View.Center()
	return []string{
		fmt.Sprintf("re %+.12f", re),
		fmt.Sprintf("im %+.12f", im),
		fmt.Sprintf("zoom x%.4g", f.Magnification),
		fmt.Sprintf("iter %d", f.Params.MaxIterations),
		fmt.Sprintf("%dx%d  %d workers", f.Buffer.Width, f.Buffer.Height, f.Stats.Workers),
		fmt.Sprintf("pass %v", f.Stats.Duration.Round(100*time.Microsecond)),
	}
}

// Render draws the panel for f. The returned image is reused by the next call.
func (o *Overlay) Render(f frame.Frame) *image.RGBA {
	lines := Lines(f)

	mw := max(int(float64(f.Buffer.Width)*MinimapRatio), minMinimapW)
	mh := mw * o.overview.Bounds().Dy() / o.overview.Bounds().Dx()

	textW := 0
	for _, l := range lines {
		textW = max(textW, font.MeasureString(o.face, l).Ceil())
	}
	w := max(mw, textW) + 2*padding
	h := mh + len(lines)*lineHeight + 3*padding

	if o.panel == nil || o.panel.Bounds().Dx() != w || o.panel.Bounds().Dy() != h {
		o.panel = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	draw.Draw(o.panel, o.panel.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	mini := image.Rect(padding, padding, padding+mw, padding+mh)
	xdraw.ApproxBiLinear.Scale(o.panel, mini, o.overview, o.overview.Bounds(), draw.Src, nil)
	o.outline(mini, f.View)

	d := &font.Drawer{
		Dst:  o.panel,
		Src:  image.NewUniform(foreground),
		Face: o.face,
	}
	for i, l := range lines {
		d.Dot = fixed.P(padding, mini.Max.Y+padding+(i+1)*lineHeight-2)
		d.DrawString(l)
	}
	return o.panel
}

// ViewRect maps v onto a minimap occupying mini, in panel pixels. The result
// is not clipped and may lie partly or wholly outside mini.
func (o *Overlay) ViewRect(mini image.Rectangle, v viewport.Viewport) types.Recti {
	sx := float64(mini.Dx()) / o.home.RealExtent()
	sy := float64(mini.Dy()) / o.home.ImagExtent()
	x0 := int(math.Round((v.MinRe - o.home.MinRe) * sx))
	y0 := int(math.Round((o.home.MaxIm - v.MaxIm) * sy))
	x1 := int(math.Round((v.MaxRe - o.home.MinRe) * sx))
	y1 := int(math.Round((o.home.MaxIm - v.MinIm) * sy))
	r := types.Recti{X: mini.Min.X + x0, Y: mini.Min.Y + y0, W: x1 - x0, H: y1 - y0}
	// keep tiny views visible
	if r.W < 3 {
		r.X -= (3 - r.W) / 2
		r.W = 3
	}
	if r.H < 3 {
		r.Y -= (3 - r.H) / 2
		r.H = 3
	}
	return r
}

func (o *Overlay) outline(mini image.Rectangle, v viewport.Viewport) {
	bounds := types.Recti{X: mini.Min.X, Y: mini.Min.Y, W: mini.Dx(), H: mini.Dy()}
	full := o.ViewRect(mini, v)
	r := full.Intersect(bounds)
	if r.Empty() {
		return
	}
	// only the edges that are actually inside the minimap are drawn
	for x := r.X; x < r.X+r.W; x += 1 {
		if full.Y >= bounds.Y {
			o.panel.SetRGBA(x, r.Y, outline)
		}
		if full.Y+full.H <= bounds.Y+bounds.H {
			o.panel.SetRGBA(x, r.Y+r.H-1, outline)
		}
	}
	for y := r.Y; y < r.Y+r.H; y += 1 {
		if full.X >= bounds.X {
			o.panel.SetRGBA(r.X, y, outline)
		}
		if full.X+full.W <= bounds.X+bounds.W {
			o.panel.SetRGBA(r.X+r.W-1, y, outline)
		}
	}
}
