package particles

import (
	"math/rand"

	"github.com/gonewx/ember/pkg/emitter"
)

// Clone returns a new stopped system with an independent pool of the same
// capacity and a deep copy of the configuration and gradient tracks. The
// texture handle is shared by reference; runtime state (alive particles,
// emission carry, lifecycle) is not copied. When newEmitter is nil the
// source emitter's clone is used.
//
// The clone gets its own random source seeded from the parent's, so a
// seeded parent yields a deterministic clone without coupling the two
// sample streams.
func (s *System) Clone(name string, newEmitter emitter.Shape) *System {
	capacity := s.pool.Capacity()
	if capacity <= 0 {
		capacity = 1
	}
	c, _ := NewSystem(name, capacity, rand.New(rand.NewSource(s.rng.Int63())))

	if newEmitter != nil {
		c.Emitter = newEmitter
	} else if s.Emitter != nil {
		c.Emitter = s.Emitter.Clone()
	}
	c.EmitterPosition = s.EmitterPosition
	c.Gravity = s.Gravity

	c.Color1 = s.Color1
	c.Color2 = s.Color2
	c.ColorDead = s.ColorDead

	c.MinLifeTime = s.MinLifeTime
	c.MaxLifeTime = s.MaxLifeTime
	c.MinSize = s.MinSize
	c.MaxSize = s.MaxSize
	c.MinScaleX = s.MinScaleX
	c.MaxScaleX = s.MaxScaleX
	c.MinScaleY = s.MinScaleY
	c.MaxScaleY = s.MaxScaleY
	c.MinEmitPower = s.MinEmitPower
	c.MaxEmitPower = s.MaxEmitPower
	c.MinAngularSpeed = s.MinAngularSpeed
	c.MaxAngularSpeed = s.MaxAngularSpeed
	c.MinInitialRotation = s.MinInitialRotation
	c.MaxInitialRotation = s.MaxInitialRotation

	c.EmitRate = s.EmitRate
	c.UpdateSpeed = s.UpdateSpeed
	c.TargetStopDuration = s.TargetStopDuration
	c.PreWarmCycles = s.PreWarmCycles
	c.PreWarmStepOffset = s.PreWarmStepOffset
	c.BlendMode = s.BlendMode

	if s.colorTrack != nil {
		c.colorTrack = s.colorTrack.Clone()
	}
	if s.sizeTrack != nil {
		c.sizeTrack = s.sizeTrack.Clone()
	}
	if s.angTrack != nil {
		c.angTrack = s.angTrack.Clone()
	}

	// Shared by reference; configuration templates and textures must not be
	// mutated while clones simulate concurrently.
	c.texture = s.texture

	return c
}
