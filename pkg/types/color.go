package types

// Color4 is an RGBA color with float64 channels in [0, 1].
type Color4 struct {
	R, G, B, A float64
}

// White is the neutral particle tint.
var White = Color4{R: 1, G: 1, B: 1, A: 1}

// LerpColor4 returns the channel-wise linear interpolation between a and b.
func LerpColor4(a, b Color4, t float64) Color4 {
	return Color4{
		R: Lerp(a.R, b.R, t),
		G: Lerp(a.G, b.G, t),
		B: Lerp(a.B, b.B, t),
		A: Lerp(a.A, b.A, t),
	}
}

// Scale returns the color with all channels multiplied by s.
func (c Color4) Scale(s float64) Color4 {
	return Color4{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A * s}
}

// Clamped returns the color with every channel clamped to [0, 1].
// Gradient extrapolation and additive math can push channels out of range;
// the render snapshot always receives clamped values.
func (c Color4) Clamped() Color4 {
	return Color4{
		R: Clamp(c.R, 0, 1),
		G: Clamp(c.G, 0, 1),
		B: Clamp(c.B, 0, 1),
		A: Clamp(c.A, 0, 1),
	}
}
