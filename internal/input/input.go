// Package input defines the events a frontend feeds into the explorer.
//
// Positions are normalized to the current buffer: (0, 0) is the top-left
// pixel, (1, 1) the bottom-right one. Frontends reporting pixels convert with
// viewport.Normalize.
package input

import "fmt"

// FingerID identifies a finger for as long as it touches the surface.
type FingerID int64

// MouseFinger is the identity used for a mouse drag, which is handled as a
// single finger.
const MouseFinger FingerID = -1

type Event interface {
	event()
}

type Direction int

const (
	In Direction = iota
	Out
)

func (d Direction) String() string {
	if d == In {
		return "in"
	}
	return "out"
}

func ParseDirection(s string) (Direction, error) {
	switch s {
	case "in":
		return In, nil
	case "out":
		return Out, nil
	}
	return In, fmt.Errorf("input: unknown wheel direction %q", s)
}

// Wheel is one discrete wheel tick with the pointer at (X, Y).
type Wheel struct {
	Dir  Direction
	X, Y float64
}

type FingerDown struct {
	ID   FingerID
	X, Y float64
}

type FingerMotion struct {
	ID   FingerID
	X, Y float64
}

type FingerUp struct {
	ID FingerID
}

// Resize reports new buffer dimensions in pixels.
type Resize struct {
	Width, Height int
}

// Reset restores the initial view.
type Reset struct{}

// Goto jumps to a named landmark.
type Goto struct {
	Name string
}

type Quit struct{}

func (Wheel) event()        {}
func (FingerDown) event()   {}
func (FingerMotion) event() {}
func (FingerUp) event()     {}
func (Resize) event()       {}
func (Reset) event()        {}
func (Goto) event()         {}
func (Quit) event()         {}
