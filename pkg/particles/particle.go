package particles

import "github.com/gonewx/ember/pkg/types"

// Particle is a single pool slot. Particles are owned exclusively by their
// pool, recycled on expiry and never individually heap-allocated: a spawn
// only rewrites the fields of a free slot.
type Particle struct {
	Position types.Vector3
	Velocity types.Vector3

	// Age grows from 0 toward LifeTime; the particle is alive while
	// Age < LifeTime. LifeTime is fixed at birth.
	Age      float64
	LifeTime float64

	Size         float64
	AngularSpeed float64
	Rotation     float64

	// Color is the render-visible color, recomputed every frame.
	Color types.Color4
	// colorStart is the birth-time random blend of the system's Color1 and
	// Color2; colorEnd is the system's ColorDead. Used by the fallback
	// interpolation when no color track is configured.
	colorStart types.Color4
	colorEnd   types.Color4

	ScaleX float64
	ScaleY float64

	// Gradient re-roll state: the keyframe window each roll was made for
	// and the roll factor itself. A window change re-rolls once; sampling
	// within a window reuses the factor so ranged keyframes stay stable
	// frame to frame.
	colorWindow int
	sizeWindow  int
	angWindow   int
	colorRoll   float64
	sizeRoll    float64
	angRoll     float64
}
