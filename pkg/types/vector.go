// Package types defines the shared base value types used across the engine.
// It depends on nothing but the standard library so that every other package
// can import it without cycles.
package types

import "math"

// Vector3 is a 3D vector in world space.
type Vector3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vector3) Add(w Vector3) Vector3 {
	return Vector3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vector3) Sub(w Vector3) Vector3 {
	return Vector3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v * s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// AddScaled returns v + w*s without an intermediate allocation.
// This is the hot-path form used by the integration pass.
func (v Vector3) AddScaled(w Vector3, s float64) Vector3 {
	return Vector3{v.X + w.X*s, v.Y + w.Y*s, v.Z + w.Z*s}
}

// Length returns the Euclidean length of v.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged rather than producing NaNs.
func (v Vector3) Normalize() Vector3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Lerp returns the linear interpolation between a and b at t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVector3 returns the component-wise linear interpolation between a and b.
func LerpVector3(a, b Vector3, t float64) Vector3 {
	return Vector3{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
