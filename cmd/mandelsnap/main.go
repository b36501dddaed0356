// Command mandelsnap renders a single view to an image file.
//
//	mandelsnap -landmark seahorse-valley -o seahorse.png
//	mandelsnap -re -0.745 -im 0.1 -extent 0.01 -iter 2000 -o spot.bmp
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/joshvictor1024/mandelbrot-explorer/internal/escape"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/logging"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/raster"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/snapshot"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/viewport"
)

type config struct {
	width, height int
	iterations    int
	workers       int
	landmark      string
	re, im        float64
	extent        float64
	out           string
	verbose       bool
}

func main() {
	var cfg config
	flag.IntVar(&cfg.width, "width", 900, "image width")
	flag.IntVar(&cfg.height, "height", 600, "image height")
	flag.IntVar(&cfg.iterations, "iter", escape.DefaultMaxIterations, "maximum iterations per point")
	flag.IntVar(&cfg.workers, "workers", 0, "raster workers, 0 to use the CPU count")
	flag.StringVar(&cfg.landmark, "landmark", "", fmt.Sprintf("view to render, one of %v", viewport.Names()))
	flag.Float64Var(&cfg.re, "re", math.NaN(), "real part of the view center")
	flag.Float64Var(&cfg.im, "im", math.NaN(), "imaginary part of the view center")
	flag.Float64Var(&cfg.extent, "extent", 0, "real extent of the view, with -re and -im")
	flag.StringVar(&cfg.out, "o", "out.png", "output file, .png or .bmp")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		log.Fatalf("mandelsnap: %v", err)
	}
}

func run(cfg config) error {
	format, err := snapshot.FormatFromPath(cfg.out)
	if err != nil {
		return err
	}
	view, err := cfg.view()
	if err != nil {
		return err
	}

	b := raster.NewBuffer(cfg.width, cfg.height)
	stats, err := raster.NewScheduler(cfg.workers).Render(view, escape.Params{MaxIterations: cfg.iterations}, b)
	if err != nil {
		return err
	}
	logging.Logger().Info("rendered", "view", view, "workers", stats.Workers, "duration", stats.Duration)

	f, err := os.Create(cfg.out)
	if err != nil {
		return err
	}
	if err := snapshot.Encode(f, b, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logging.Logger().Info("saved", "file", cfg.out, "format", format)
	return nil
}

// view picks the view to render: a landmark, an explicit center and extent,
// or the default view, in that order.
func (cfg config) view() (viewport.Viewport, error) {
	if cfg.width <= 0 || cfg.height <= 0 {
		return viewport.Viewport{}, fmt.Errorf("%w: %dx%d", viewport.ErrInvalidSize, cfg.width, cfg.height)
	}
	if cfg.landmark != "" {
		return viewport.Lookup(cfg.landmark, cfg.width, cfg.height)
	}
	if math.IsNaN(cfg.re) && math.IsNaN(cfg.im) && cfg.extent == 0 {
		return viewport.Default(cfg.width, cfg.height), nil
	}
	if math.IsNaN(cfg.re) || math.IsNaN(cfg.im) || !(cfg.extent > 0) {
		return viewport.Viewport{}, errors.New("-re, -im and a positive -extent go together")
	}
	half := cfg.extent / 2
	v := viewport.Viewport{MinRe: cfg.re - half, MaxRe: cfg.re + half, MinIm: cfg.im - half, MaxIm: cfg.im + half}
	if err := v.Resize(cfg.width, cfg.height); err != nil {
		return viewport.Viewport{}, err
	}
	// Resize keeps MinIm; move the view back onto the requested center
	shift := cfg.im - (v.MinIm+v.MaxIm)/2
	v.MinIm += shift
	v.MaxIm += shift
	if !v.Valid() {
		return viewport.Viewport{}, fmt.Errorf("%w: %v", viewport.ErrDegenerate, v)
	}
	return v, nil
}
