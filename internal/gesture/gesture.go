// Package gesture turns wheel ticks and finger positions into pan and zoom
// requests.
//
// The interpreter is a state machine keyed on how many fingers are down:
//
//	0 fingers   idle, no anchor
//	1 finger    drag: pan by the frame-to-frame delta against the anchor
//	2 fingers   pinch: zoom about the midpoint when the distance changes
//	3+ fingers  ignored; anchors are dropped and re-latched when fingers lift
//
// Wheel ticks zoom about the pointer regardless of the finger state.
package gesture

import (
	"github.com/joshvictor1024/mandelbrot-explorer/internal/input"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/logging"
	"github.com/joshvictor1024/mandelbrot-explorer/pkg/types"
)

const (
	ZoomInFactor  = 0.9
	ZoomOutFactor = 1.1
)

// Transformer is what gestures act on; *viewport.Viewport implements it.
type Transformer interface {
	ZoomAt(nx, ny, factor float64) error
	PanBy(dx, dy float64) error
}

type Mode int

const (
	Idle Mode = iota
	Drag
	Pinch
	Ignored
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Drag:
		return "drag"
	case Pinch:
		return "pinch"
	}
	return "ignored"
}

type Interpreter struct {
	fingers map[input.FingerID]types.Pointf64
	mode    Mode
	anchor  types.Pointf64 // last drag position
	dist    float64        // last pinch distance
}

func New() *Interpreter {
	return &Interpreter{fingers: map[input.FingerID]types.Pointf64{}}
}

func (g *Interpreter) Mode() Mode   { return g.mode }
func (g *Interpreter) Fingers() int { return len(g.fingers) }

// Handle feeds one event and applies the resulting transform to t.
// It reports whether t changed. Events it does not understand, and finger
// motion or release for unknown identities, leave all state unchanged.
func (g *Interpreter) Handle(e input.Event, t Transformer) (dirty bool) {
	switch e := e.(type) {
	case input.Wheel:
		factor := ZoomInFactor
		if e.Dir == input.Out {
			factor = ZoomOutFactor
		}
		return apply("wheel zoom", t.ZoomAt(e.X, e.Y, factor))
	case input.FingerDown:
		g.fingers[e.ID] = types.Pointf64{X: e.X, Y: e.Y}
		return g.update(false, t)
	case input.FingerMotion:
		if _, ok := g.fingers[e.ID]; !ok {
			return false
		}
		g.fingers[e.ID] = types.Pointf64{X: e.X, Y: e.Y}
		return g.update(true, t)
	case input.FingerUp:
		if _, ok := g.fingers[e.ID]; !ok {
			return false
		}
		delete(g.fingers, e.ID)
		return g.update(false, t)
	}
	return false
}

// Clear forgets all fingers, as when the window loses focus mid-gesture.
func (g *Interpreter) Clear() {
	clear(g.fingers)
	g.mode = Idle
}

// update re-evaluates the state after the finger set changed. Entering a
// state only latches its anchor; transforms happen on later motion.
func (g *Interpreter) update(moved bool, t Transformer) bool {
	switch len(g.fingers) {
	case 0:
		g.mode = Idle
		return false

	case 1:
		var p types.Pointf64
		for _, q := range g.fingers {
			p = q
		}
		if g.mode != Drag || !moved {
			g.mode = Drag
			g.anchor = p
			return false
		}
		d := p.Sub(g.anchor)
		g.anchor = p
		if d == (types.Pointf64{}) {
			return false
		}
		return apply("pan", t.PanBy(d.X, d.Y))

	case 2:
		a, b := g.pair()
		dist := a.Dist(b)
		if g.mode != Pinch || !moved {
			g.mode = Pinch
			g.dist = dist
			return false
		}
		factor := ZoomOutFactor
		if dist > g.dist {
			factor = ZoomInFactor
		}
		g.dist = dist
		mid := a.Mid(b)
		return apply("pinch zoom", t.ZoomAt(mid.X, mid.Y, factor))

	default:
		g.mode = Ignored
		return false
	}
}

func (g *Interpreter) pair() (a, b types.Pointf64) {
	i := 0
	for _, p := range g.fingers {
		if i == 0 {
			a = p
		} else {
			b = p
		}
		i += 1
	}
	return a, b
}

func apply(what string, err error) bool {
	if err != nil {
		logging.Logger().Debug("transform rejected", "gesture", what, "err", err)
		return false
	}
	return true
}
