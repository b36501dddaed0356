package main

import (
	"context"
	"math"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/joshvictor1024/mandelbrot-explorer/internal/input"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/viewport"
)

const (
	// upper bound on one idle wait, keeps the loop responsive to ctx
	waitTimeoutMS = 16
	// SDL_TOUCH_MOUSEID, set on mouse events synthesized from touches
	touchMouseID = math.MaxUint32
)

// sdlSource translates SDL events into input events. Keys that only
// concern the window (HUD toggle, snapshot) are handled by the scene.
type sdlSource struct {
	scene    *scene
	w, h     int
	dragging bool
	events   []input.Event
}

func newSDLSource(s *scene, w, h int) *sdlSource {
	return &sdlSource{scene: s, w: w, h: h}
}

// Events waits briefly for the first event and drains the rest. The
// returned slice is reused by the next call.
func (src *sdlSource) Events(ctx context.Context) ([]input.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src.events = src.events[:0]
	for e := sdl.WaitEventTimeout(waitTimeoutMS); e != nil; e = sdl.PollEvent() {
		src.translate(e)
	}
	return src.events, nil
}

func (src *sdlSource) emit(e input.Event) {
	src.events = append(src.events, e)
}

func (src *sdlSource) normalize(x, y int32) (float64, float64) {
	return viewport.Normalize(float64(x), float64(y), src.w, src.h)
}

func (src *sdlSource) translate(e sdl.Event) {
	switch t := e.(type) {
	case *sdl.QuitEvent:
		src.emit(input.Quit{})

	case *sdl.WindowEvent:
		if t.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			src.w, src.h = int(t.Data1), int(t.Data2)
			src.emit(input.Resize{Width: src.w, Height: src.h})
		}

	case *sdl.MouseWheelEvent:
		ticks := t.Y
		if t.Direction == sdl.MOUSEWHEEL_FLIPPED {
			ticks = -ticks
		}
		mx, my, _ := sdl.GetMouseState()
		x, y := src.normalize(mx, my)
		dir := input.In
		if ticks < 0 {
			dir, ticks = input.Out, -ticks
		}
		for range ticks {
			src.emit(input.Wheel{Dir: dir, X: x, Y: y})
		}

	case *sdl.MouseButtonEvent:
		if t.Which == touchMouseID || t.Button != sdl.BUTTON_LEFT {
			return
		}
		switch t.Type {
		case sdl.MOUSEBUTTONDOWN:
			x, y := src.normalize(t.X, t.Y)
			src.dragging = true
			src.emit(input.FingerDown{ID: input.MouseFinger, X: x, Y: y})
		case sdl.MOUSEBUTTONUP:
			if src.dragging {
				src.dragging = false
				src.emit(input.FingerUp{ID: input.MouseFinger})
			}
		}

	case *sdl.MouseMotionEvent:
		if t.Which == touchMouseID || !src.dragging {
			return
		}
		x, y := src.normalize(t.X, t.Y)
		src.emit(input.FingerMotion{ID: input.MouseFinger, X: x, Y: y})

	case *sdl.TouchFingerEvent:
		// SDL reports touches as fractions of the window
		x, y := viewport.Normalize(float64(t.X)*float64(src.w), float64(t.Y)*float64(src.h), src.w, src.h)
		id := input.FingerID(t.FingerID)
		switch t.Type {
		case sdl.FINGERDOWN:
			src.emit(input.FingerDown{ID: id, X: x, Y: y})
		case sdl.FINGERMOTION:
			src.emit(input.FingerMotion{ID: id, X: x, Y: y})
		case sdl.FINGERUP:
			src.emit(input.FingerUp{ID: id})
		}

	case *sdl.KeyboardEvent:
		if t.Type != sdl.KEYDOWN || t.Repeat != 0 {
			return
		}
		src.key(t.Keysym.Sym)
	}
}

func (src *sdlSource) key(k sdl.Keycode) {
	switch {
	case k == sdl.K_ESCAPE:
		src.emit(input.Quit{})
	case k == sdl.K_r || k == sdl.K_0:
		src.emit(input.Reset{})
	case k >= sdl.K_1 && k <= sdl.K_9:
		if i := int(k - sdl.K_1); i < len(viewport.Landmarks) {
			src.emit(input.Goto{Name: viewport.Landmarks[i].Name})
		}
	case k == sdl.K_h:
		src.scene.toggleHUD()
	case k == sdl.K_s:
		src.scene.requestSnapshot()
	}
}
