// Package escape classifies points of the complex plane by escape time.
package escape

// DefaultMaxIterations is the iteration cap used when none is configured.
const DefaultMaxIterations = 500

// escape radius squared
const bailout = 4.0

// Params are fixed for a whole raster pass and shared read-only by workers.
type Params struct {
	MaxIterations int
}

func DefaultParams() Params {
	return Params{MaxIterations: DefaultMaxIterations}
}

// Iterate runs z = z^2 + c starting from z = c and returns the number of
// iterations completed before |z|^2 exceeds 4, capped at maxIt.
// A return of maxIt means c did not escape.
func Iterate(cre, cim float64, maxIt int) int {
	zre, zim := cre, cim
	it := 0
	for ; it < maxIt; it += 1 {
		zre2 := zre * zre
		zim2 := zim * zim
		if zre2+zim2 > bailout {
			break
		}
		// z = z ^ 2 + c
		zim = 2*zre*zim + cim
		zre = zre2 - zim2 + cre
	}
	return it
}

// Intensity maps an escape count to a gray level in [0, 255].
func Intensity(it, maxIt int) uint8 {
	if maxIt <= 0 || it <= 0 {
		return 0
	}
	if it >= maxIt {
		return 255
	}
	return uint8(255 * it / maxIt)
}

// Eval returns the color of c.
func (p Params) Eval(cre, cim float64) Color {
	return Gray(Intensity(Iterate(cre, cim, p.MaxIterations), p.MaxIterations))
}
