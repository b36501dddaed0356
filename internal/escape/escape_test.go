package escape

import (
	"math"
	"testing"
)

func TestIterate_Origin(t *testing.T) {
	if got := Iterate(0, 0, DefaultMaxIterations); got != DefaultMaxIterations {
		t.Errorf("Iterate(0, 0) = %d, want %d", got, DefaultMaxIterations)
	}
}

func TestIterate_OutsideRadiusEscapes(t *testing.T) {
	for i := range 64 {
		theta := 2 * math.Pi * float64(i) / 64
		for _, r := range []float64{2.0001, 2.5, 10, 1e6} {
			re, im := r*math.Cos(theta), r*math.Sin(theta)
			if got := Iterate(re, im, DefaultMaxIterations); got >= DefaultMaxIterations {
				t.Errorf("Iterate(%g, %g) = %d, want < %d", re, im, got, DefaultMaxIterations)
			}
		}
	}
}

func TestIterate_Known(t *testing.T) {
	tests := []struct {
		name   string
		re, im float64
		maxIt  int
		want   int
	}{
		{"far outside", 3, 0, 100, 0},
		{"main cardioid", -0.5, 0, 100, 100},
		{"period two bulb", -1, 0, 100, 100},
		{"tip of antenna", -2, 0, 100, 100},
		{"just right of cusp", 0.26, 0, 1000, 29},
		{"zero cap", 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Iterate(tt.re, tt.im, tt.maxIt); got != tt.want {
				t.Errorf("Iterate(%g, %g, %d) = %d, want %d", tt.re, tt.im, tt.maxIt, got, tt.want)
			}
		})
	}
}

func TestIterate_OneStep(t *testing.T) {
	// c = 1: z0 = 1, z1 = 2, z2 = 5 escapes on the third check.
	if got := Iterate(1, 0, 50); got != 2 {
		t.Errorf("Iterate(1, 0) = %d, want 2", got)
	}
}

func TestIntensity(t *testing.T) {
	tests := []struct {
		it, maxIt int
		want      uint8
	}{
		{0, 500, 0},
		{500, 500, 255},
		{250, 500, 127},
		{1, 500, 0},
		{2, 500, 1},
		{600, 500, 255},
		{-1, 500, 0},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := Intensity(tt.it, tt.maxIt); got != tt.want {
			t.Errorf("Intensity(%d, %d) = %d, want %d", tt.it, tt.maxIt, got, tt.want)
		}
	}
}

func TestGray(t *testing.T) {
	c := Gray(0x80)
	if c != 0x808080FF {
		t.Errorf("Gray(0x80) = %#08x, want 0x808080ff", uint32(c))
	}
	r, g, b, a := c.RGBA()
	if r != 0x80 || g != 0x80 || b != 0x80 || a != 0xFF {
		t.Errorf("RGBA() = %d %d %d %d, want 128 128 128 255", r, g, b, a)
	}
}

func TestParams_Eval(t *testing.T) {
	p := DefaultParams()
	if got := p.Eval(0, 0); got != Gray(255) {
		t.Errorf("Eval(0, 0) = %#08x, want white", uint32(got))
	}
	if got := p.Eval(5, 5); got != Gray(0) {
		t.Errorf("Eval(5, 5) = %#08x, want black", uint32(got))
	}
}
