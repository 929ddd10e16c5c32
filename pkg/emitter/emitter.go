// Package emitter provides the emitter shape abstraction: where a new
// particle is born and in what direction it initially travels.
//
// Shapes hold configuration only and keep no per-particle state. Sampling
// is deterministic for a given random source, which the owning particle
// system injects, so simulations are reproducible under a fixed seed.
// Malformed shape parameters are rejected by the constructors; Sample never
// fails on a constructed shape.
package emitter

import (
	"math"
	"math/rand"

	"github.com/gonewx/ember/pkg/types"
)

// Spawn receives the one-time sample for a newly born particle. Position is
// local to the emitter origin; Direction is a unit-length direction the
// particle system scales by its emit power range.
type Spawn struct {
	Position  types.Vector3
	Direction types.Vector3
}

// Shape is the polymorphic emitter capability.
type Shape interface {
	// Sample fills spawn with a birth position and unit direction.
	Sample(rng *rand.Rand, spawn *Spawn)
	// Clone returns an independent copy of the shape.
	Clone() Shape
	// Kind identifies the shape variant for serialization.
	Kind() string
}

// Shape kind identifiers used by configuration round-trips.
const (
	KindPoint  = "point"
	KindBox    = "box"
	KindSphere = "sphere"
	KindCone   = "cone"
	KindCustom = "custom"
)

// unitSphereDirection returns a uniformly distributed unit vector.
func unitSphereDirection(rng *rand.Rand) types.Vector3 {
	z := 2*rng.Float64() - 1
	phi := 2 * math.Pi * rng.Float64()
	r := math.Sqrt(1 - z*z)
	return types.Vector3{X: r * math.Cos(phi), Y: z, Z: r * math.Sin(phi)}
}
