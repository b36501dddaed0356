package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/joshvictor1024/mandelbrot-explorer/internal/escape"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/frame"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/hud"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/logging"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/raster"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/viewport"
)

const (
	windowTitle = "Mandelbrot"
	// overview rendered for the HUD minimap
	overviewWidth  = 240
	overviewHeight = 192
)

type config struct {
	width, height int
	iterations    int
	workers       int
	landmark      string
	hud           bool
	verbose       bool
}

func init() {
	// SDL calls, including event polling, must stay on the thread that
	// initialized video
	runtime.LockOSThread()
}

func main() {
	cfg := parseFlags()
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func parseFlags() config {
	var cfg config
	flag.IntVar(&cfg.width, "width", 900, "initial window width")
	flag.IntVar(&cfg.height, "height", 600, "initial window height")
	flag.IntVar(&cfg.iterations, "iter", escape.DefaultMaxIterations, "maximum iterations per point")
	flag.IntVar(&cfg.workers, "workers", 0, "raster workers, 0 to use the CPU count")
	flag.StringVar(&cfg.landmark, "landmark", "", fmt.Sprintf("initial view, one of %v", viewport.Names()))
	flag.BoolVar(&cfg.hud, "hud", true, "show the status overlay (toggle with H)")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.Parse()
	return cfg
}

func run(cfg config) error {
	window, renderer, err := sdlInit(windowTitle, cfg.width, cfg.height)
	if err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	defer sdlClose(window, renderer)

	// the window manager may not honour the requested size
	w, h := window.GetSize()
	params := escape.Params{MaxIterations: cfg.iterations}
	orch, err := frame.New(frame.Config{
		Width:    int(w),
		Height:   int(h),
		Params:   params,
		Workers:  cfg.workers,
		Landmark: cfg.landmark,
	})
	if err != nil {
		return err
	}

	overlay, err := hud.New(raster.NewScheduler(cfg.workers), params, overviewWidth, overviewHeight)
	if err != nil {
		return err
	}

	s := newScene(renderer, overlay, cfg.hud)
	defer s.close()
	src := newSDLSource(s, int(w), int(h))

	logging.Logger().Info("window created", "width", w, "height", h, "workers", orch.Workers())
	err = orch.Run(context.Background(), src, s)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func sdlInit(title string, width, height int) (*sdl.Window, *sdl.Renderer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, nil, err
	}
	sdl.StopTextInput()

	window, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width), int32(height), sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return nil, nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, nil, err
	}

	return window, renderer, nil
}

func sdlClose(window *sdl.Window, renderer *sdl.Renderer) {
	renderer.Destroy()
	window.Destroy()
	sdl.Quit()
}
