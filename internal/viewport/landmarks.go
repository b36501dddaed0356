package viewport

import (
	"fmt"
	"strings"
)

// Landmark is a named region worth visiting.
type Landmark struct {
	Name string
	View Viewport
}

// Landmarks are classic regions of the set, in keyboard order.
var Landmarks = []Landmark{
	// dense filaments and repeating "seahorse" curls
	{"seahorse-valley", Viewport{MinRe: -0.8, MaxRe: -0.7, MinIm: 0.05, MaxIm: 0.15}},
	// large bulb with trunk-like tendrils
	{"elephant-valley", Viewport{MinRe: -1.85, MaxRe: -1.75, MinIm: -0.10, MaxIm: -0.02}},
	// small copy of the set with tight spiral arms
	{"spiral-minibrot", Viewport{MinRe: -0.7435, MaxRe: -0.7420, MinIm: 0.1310, MaxIm: 0.1325}},
	// threefold symmetric spiral
	{"triple-spiral", Viewport{MinRe: -0.7480, MaxRe: -0.7450, MinIm: 0.0950, MaxIm: 0.0980}},
	{"valley-of-the-dragon", Viewport{MinRe: -0.7400, MaxRe: -0.7350, MinIm: 0.1800, MaxIm: 0.1850}},
	{"minibrot-in-mini-spiral", Viewport{MinRe: -1.7390, MaxRe: -1.7375, MinIm: -0.0235, MaxIm: -0.0220}},
}

// Lookup finds a landmark by name, ignoring case. The returned view is
// fitted to a width x height buffer.
func Lookup(name string, width, height int) (Viewport, error) {
	for _, l := range Landmarks {
		if strings.EqualFold(l.Name, name) {
			v := l.View
			if err := v.Resize(width, height); err != nil {
				return Viewport{}, err
			}
			return v, nil
		}
	}
	return Viewport{}, fmt.Errorf("viewport: unknown landmark %q", name)
}

// Names lists landmark names in keyboard order.
func Names() []string {
	names := make([]string, len(Landmarks))
	for i, l := range Landmarks {
		names[i] = l.Name
	}
	return names
}
