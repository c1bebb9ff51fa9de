package fractal

import "github.com/chewxy/math32"

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Named colors used by the depth palette.
var (
	White   = Color{1, 1, 1, 1}
	Yellow  = Color{1, 0.92, 0.016, 1}
	Cyan    = Color{0, 1, 1, 1}
	Magenta = Color{1, 0, 1, 1}
	Red     = Color{1, 0, 0, 1}
)

// Lerp interpolates from c to other. t is clamped to [0, 1].
func (c Color) Lerp(other Color, t float32) Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// IsNaN reports whether any component is NaN.
func (c Color) IsNaN() bool {
	return math32.IsNaN(c.R) || math32.IsNaN(c.G) || math32.IsNaN(c.B) || math32.IsNaN(c.A)
}

// RGB returns the color channels without alpha.
func (c Color) RGB() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}
