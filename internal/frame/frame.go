// Package frame drives the explorer one iteration at a time.
//
// Each iteration has two stages that never overlap: first all pending events
// are applied to the viewport and buffer, which is cheap and sequential;
// then, if anything changed, a raster pass recomputes the whole buffer and
// joins before the frame is handed to the presenter. Events arriving during a
// pass wait for the next iteration.
package frame

import (
	"context"
	"errors"
	"fmt"

	"github.com/joshvictor1024/mandelbrot-explorer/internal/escape"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/gesture"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/input"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/logging"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/raster"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/viewport"
)

// ErrQuit is returned by Step once a Quit event has been seen.
var ErrQuit = errors.New("frame: quit")

// Source yields the events pending since the previous call. It may block
// until at least one event arrives or some frontend-specific timeout passes.
type Source interface {
	Events(ctx context.Context) ([]input.Event, error)
}

// Presenter displays a frame. It is called every iteration, also when the
// buffer was not recomputed.
type Presenter interface {
	Present(f Frame) error
}

// Frame is what a presenter gets. Buffer is owned by the orchestrator and
// must not be modified or retained past the next iteration.
type Frame struct {
	Buffer        *raster.Buffer
	View          viewport.Viewport
	Params        escape.Params
	Rendered      bool
	Stats         raster.Stats
	Magnification float64
}

type Config struct {
	Width, Height int
	Params        escape.Params
	// Workers <= 0 detects the CPU count.
	Workers int
	// Landmark, if set, names the initial view.
	Landmark string
}

// Orchestrator owns the viewport, the pixel buffer and the dirty flag.
// It is not safe for concurrent use: one goroutine drives it.
type Orchestrator struct {
	view     viewport.Viewport
	buf      *raster.Buffer
	params   escape.Params
	sched    *raster.Scheduler
	gestures *gesture.Interpreter
	dirty    bool
	stats    raster.Stats
	quit     bool
}

func New(cfg Config) (*Orchestrator, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("frame: %w: %dx%d", viewport.ErrInvalidSize, cfg.Width, cfg.Height)
	}
	if cfg.Params.MaxIterations <= 0 {
		cfg.Params = escape.DefaultParams()
	}
	view := viewport.Default(cfg.Width, cfg.Height)
	if cfg.Landmark != "" {
		v, err := viewport.Lookup(cfg.Landmark, cfg.Width, cfg.Height)
		if err != nil {
			return nil, fmt.Errorf("frame: %w", err)
		}
		view = v
	}
	return &Orchestrator{
		view:     view,
		buf:      raster.NewBuffer(cfg.Width, cfg.Height),
		params:   cfg.Params,
		sched:    raster.NewScheduler(cfg.Workers),
		gestures: gesture.New(),
		dirty:    true,
	}, nil
}

func (o *Orchestrator) View() viewport.Viewport { return o.view }
func (o *Orchestrator) Buffer() *raster.Buffer   { return o.buf }
func (o *Orchestrator) Dirty() bool              { return o.dirty }
func (o *Orchestrator) Workers() int             { return o.sched.Workers() }

// Handle applies one event. Only the viewport, buffer size and dirty flag
// change; no pixels are computed.
func (o *Orchestrator) Handle(e input.Event) {
	switch e := e.(type) {
	case input.Quit:
		o.quit = true
	case input.Resize:
		o.resize(e.Width, e.Height)
	case input.Reset:
		o.view = viewport.Default(o.buf.Width, o.buf.Height)
		o.dirty = true
	case input.Goto:
		v, err := viewport.Lookup(e.Name, o.buf.Width, o.buf.Height)
		if err != nil {
			logging.Logger().Warn("goto ignored", "err", err)
			return
		}
		o.view = v
		o.dirty = true
	default:
		if o.gestures.Handle(e, &o.view) {
			o.dirty = true
		}
	}
}

// resize reallocates the buffer before any pass can touch it.
func (o *Orchestrator) resize(width, height int) {
	if width == o.buf.Width && height == o.buf.Height {
		return
	}
	if err := o.view.Resize(width, height); err != nil {
		logging.Logger().Debug("resize ignored", "err", err)
		return
	}
	o.buf.Resize(width, height)
	o.dirty = true
}

// Frame recomputes the buffer if dirty and returns the current frame.
func (o *Orchestrator) Frame() (Frame, error) {
	rendered := false
	if o.dirty {
		st, err := o.sched.Render(o.view, o.params, o.buf)
		if err != nil {
			return Frame{}, fmt.Errorf("frame: %w", err)
		}
		o.stats = st
		o.dirty = false
		rendered = true
	}
	return Frame{
		Buffer:        o.buf,
		View:          o.view,
		Params:        o.params,
		Rendered:      rendered,
		Stats:         o.stats,
		Magnification: o.view.Magnification(viewport.Default(o.buf.Width, o.buf.Height)),
	}, nil
}

// Step applies events, then produces a frame. It returns ErrQuit without
// rendering if any of the events asked to quit.
func (o *Orchestrator) Step(events []input.Event) (Frame, error) {
	for _, e := range events {
		o.Handle(e)
	}
	if o.quit {
		return Frame{}, ErrQuit
	}
	return o.Frame()
}

// Run loops until a Quit event, ctx is done, or src or p fail.
// A Quit ends the loop with a nil error.
func (o *Orchestrator) Run(ctx context.Context, src Source, p Presenter) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		events, err := src.Events(ctx)
		if err != nil {
			return fmt.Errorf("frame: events: %w", err)
		}
		f, err := o.Step(events)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := p.Present(f); err != nil {
			return fmt.Errorf("frame: present: %w", err)
		}
	}
}
