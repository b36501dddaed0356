package web

import (
	"fmt"

	"github.com/joshvictor1024/mandelbrot-explorer/internal/input"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/viewport"
)

// message is one client event as sent by index.html. Positions are
// normalized to the displayed image.
type message struct {
	Type  string  `json:"type"`
	ID    int64   `json:"id,omitempty"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Dir   string  `json:"dir,omitempty"`
	W     int     `json:"w,omitempty"`
	H     int     `json:"h,omitempty"`
	Name  string  `json:"name,omitempty"`
	Index *int    `json:"index,omitempty"`
}

// status is sent as a text message after every recomputed frame.
type status struct {
	Lines []string `json:"lines"`
}

// event converts m, clamping resize requests to maxSize per side.
func (m message) event(maxSize int) (input.Event, error) {
	switch m.Type {
	case "resize":
		if m.W <= 0 || m.H <= 0 {
			return nil, fmt.Errorf("web: invalid size %dx%d", m.W, m.H)
		}
		return input.Resize{Width: min(m.W, maxSize), Height: min(m.H, maxSize)}, nil
	case "wheel":
		d, err := input.ParseDirection(m.Dir)
		if err != nil {
			return nil, err
		}
		return input.Wheel{Dir: d, X: m.X, Y: m.Y}, nil
	case "down":
		return input.FingerDown{ID: input.FingerID(m.ID), X: m.X, Y: m.Y}, nil
	case "move":
		return input.FingerMotion{ID: input.FingerID(m.ID), X: m.X, Y: m.Y}, nil
	case "up":
		return input.FingerUp{ID: input.FingerID(m.ID)}, nil
	case "reset":
		return input.Reset{}, nil
	case "goto":
		if m.Index != nil {
			i := *m.Index
			if i < 0 || i >= len(viewport.Landmarks) {
				return nil, fmt.Errorf("web: landmark index %d out of range", i)
			}
			return input.Goto{Name: viewport.Landmarks[i].Name}, nil
		}
		return input.Goto{Name: m.Name}, nil
	}
	return nil, fmt.Errorf("web: unknown message type %q", m.Type)
}
