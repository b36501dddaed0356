package escape

// Color is a packed 0xRRGGBBAA value, the layout of SDL's RGBA8888.
type Color uint32

const Opaque Color = 0xFF

// Gray returns the opaque color with all channels set to v.
func Gray(v uint8) Color {
	c := Color(v)
	return c<<24 | c<<16 | c<<8 | Opaque
}

func (c Color) RGBA() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}
