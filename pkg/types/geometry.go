package types

import "math"

type Pointf64 struct {
	X, Y float64
}

func (p Pointf64) Sub(q Pointf64) Pointf64 {
	return Pointf64{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mid returns the point halfway between p and q.
func (p Pointf64) Mid(q Pointf64) Pointf64 {
	return Pointf64{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

func (p Pointf64) Dist(q Pointf64) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// origin is top-left, W and H extend right and down
type Recti struct {
	X, Y, W, H int
}

func (r Recti) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersect returns the overlap of r and s, empty if they do not overlap.
func (r Recti) Intersect(s Recti) Recti {
	x0 := max(r.X, s.X)
	y0 := max(r.Y, s.Y)
	x1 := min(r.X+r.W, s.X+s.W)
	y1 := min(r.Y+r.H, s.Y+s.H)
	if x1 <= x0 || y1 <= y0 {
		return Recti{}
	}
	return Recti{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
