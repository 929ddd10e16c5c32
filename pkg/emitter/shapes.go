package emitter

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/gonewx/ember/pkg/types"
)

// Shape construction errors.
var (
	ErrNegativeExtent = errors.New("emitter: negative extent")
	ErrNegativeRadius = errors.New("emitter: negative radius")
	ErrInvalidAngle   = errors.New("emitter: cone angle must be in (0, pi]")
	ErrNilSampleFunc  = errors.New("emitter: custom sample func is nil")
)

// Point emits from the emitter origin with a uniformly random direction.
type Point struct{}

// NewPoint returns a point emitter.
func NewPoint() *Point { return &Point{} }

func (p *Point) Sample(rng *rand.Rand, spawn *Spawn) {
	spawn.Position = types.Vector3{}
	spawn.Direction = unitSphereDirection(rng)
}

func (p *Point) Clone() Shape { return &Point{} }

func (p *Point) Kind() string { return KindPoint }

// Box emits from a uniformly random offset within half-extents around the
// origin. The direction is picked component-wise between two direction
// bounds, which lets configurations bias emission along gravity or any
// other axis.
type Box struct {
	halfExtents types.Vector3
	direction1  types.Vector3
	direction2  types.Vector3
}

// NewBox returns a box emitter. Half-extents must be non-negative.
func NewBox(halfExtents, direction1, direction2 types.Vector3) (*Box, error) {
	if halfExtents.X < 0 || halfExtents.Y < 0 || halfExtents.Z < 0 {
		return nil, fmt.Errorf("%w: half extents %+v", ErrNegativeExtent, halfExtents)
	}
	return &Box{halfExtents: halfExtents, direction1: direction1, direction2: direction2}, nil
}

func (b *Box) Sample(rng *rand.Rand, spawn *Spawn) {
	spawn.Position = types.Vector3{
		X: (2*rng.Float64() - 1) * b.halfExtents.X,
		Y: (2*rng.Float64() - 1) * b.halfExtents.Y,
		Z: (2*rng.Float64() - 1) * b.halfExtents.Z,
	}
	dir := types.Vector3{
		X: types.Lerp(b.direction1.X, b.direction2.X, rng.Float64()),
		Y: types.Lerp(b.direction1.Y, b.direction2.Y, rng.Float64()),
		Z: types.Lerp(b.direction1.Z, b.direction2.Z, rng.Float64()),
	}
	if dir == (types.Vector3{}) {
		dir = unitSphereDirection(rng)
	}
	spawn.Direction = dir.Normalize()
}

func (b *Box) Clone() Shape {
	c := *b
	return &c
}

func (b *Box) Kind() string { return KindBox }

// HalfExtents returns the configured half-extents.
func (b *Box) HalfExtents() types.Vector3 { return b.halfExtents }

// Directions returns the configured direction bounds.
func (b *Box) Directions() (types.Vector3, types.Vector3) {
	return b.direction1, b.direction2
}

// Sphere emits from a uniformly random point inside a sphere. The direction
// points outward from the center, blended toward a fully random direction
// by the direction randomizer in [0, 1].
type Sphere struct {
	radius              float64
	directionRandomizer float64
}

// NewSphere returns a sphere emitter. The radius must be non-negative and
// the direction randomizer within [0, 1].
func NewSphere(radius, directionRandomizer float64) (*Sphere, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNegativeRadius, radius)
	}
	if directionRandomizer < 0 || directionRandomizer > 1 {
		return nil, fmt.Errorf("emitter: direction randomizer %v outside [0, 1]", directionRandomizer)
	}
	return &Sphere{radius: radius, directionRandomizer: directionRandomizer}, nil
}

func (s *Sphere) Sample(rng *rand.Rand, spawn *Spawn) {
	dir := unitSphereDirection(rng)
	// Cube root keeps the volume distribution uniform.
	r := s.radius * math.Cbrt(rng.Float64())
	spawn.Position = dir.Scale(r)

	out := dir
	if s.directionRandomizer > 0 {
		out = types.LerpVector3(dir, unitSphereDirection(rng), s.directionRandomizer).Normalize()
	}
	if out == (types.Vector3{}) {
		out = unitSphereDirection(rng)
	}
	spawn.Direction = out
}

func (s *Sphere) Clone() Shape {
	c := *s
	return &c
}

func (s *Sphere) Kind() string { return KindSphere }

// Radius returns the configured radius.
func (s *Sphere) Radius() float64 { return s.radius }

// DirectionRandomizer returns the configured randomizer factor.
func (s *Sphere) DirectionRandomizer() float64 { return s.directionRandomizer }

// Cone emits upward along +Y within a cone of the given half-angle.
// Positions spread across a disc of the given radius at the apex; a square
// root on the radial pick keeps the disc distribution uniform.
type Cone struct {
	radius float64
	angle  float64
}

// NewCone returns a cone emitter. The radius must be non-negative and the
// half-angle within (0, pi].
func NewCone(radius, angle float64) (*Cone, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNegativeRadius, radius)
	}
	if angle <= 0 || angle > math.Pi {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAngle, angle)
	}
	return &Cone{radius: radius, angle: angle}, nil
}

func (c *Cone) Sample(rng *rand.Rand, spawn *Spawn) {
	phi := 2 * math.Pi * rng.Float64()
	r := c.radius * math.Sqrt(rng.Float64())
	spawn.Position = types.Vector3{X: r * math.Cos(phi), Z: r * math.Sin(phi)}

	// Uniform direction within the cone around +Y.
	theta := c.angle * rng.Float64()
	dphi := 2 * math.Pi * rng.Float64()
	sin := math.Sin(theta)
	spawn.Direction = types.Vector3{
		X: sin * math.Cos(dphi),
		Y: math.Cos(theta),
		Z: sin * math.Sin(dphi),
	}
}

func (c *Cone) Clone() Shape {
	cl := *c
	return &cl
}

func (c *Cone) Kind() string { return KindCone }

// Radius returns the configured base radius.
func (c *Cone) Radius() float64 { return c.radius }

// Angle returns the configured half-angle in radians.
func (c *Cone) Angle() float64 { return c.angle }

// Custom delegates sampling to a user-supplied function. Custom shapes do
// not round-trip through configuration.
type Custom struct {
	fn func(rng *rand.Rand, spawn *Spawn)
}

// NewCustom returns a custom emitter driven by fn.
func NewCustom(fn func(rng *rand.Rand, spawn *Spawn)) (*Custom, error) {
	if fn == nil {
		return nil, ErrNilSampleFunc
	}
	return &Custom{fn: fn}, nil
}

func (c *Custom) Sample(rng *rand.Rand, spawn *Spawn) { c.fn(rng, spawn) }

func (c *Custom) Clone() Shape { return &Custom{fn: c.fn} }

func (c *Custom) Kind() string { return KindCustom }
