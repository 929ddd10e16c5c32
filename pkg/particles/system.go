// Package particles implements the CPU particle simulation core: a
// fixed-capacity particle pool, the per-frame update algorithm, gradient
// attribute tracks and the lifecycle controller around them.
//
// One System instance is single-threaded: an Animate call performs one full
// simulation step synchronously and Render must be sequenced after it by
// the caller. Independent systems own their pool, tracks and emitter
// exclusively and may be simulated concurrently with each other.
package particles

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gonewx/ember/internal/gradient"
	"github.com/gonewx/ember/pkg/emitter"
	"github.com/gonewx/ember/pkg/types"
)

// DefaultFrameTime is the step size assumed by pre-warm replay, matching a
// 60 Hz frame.
const DefaultFrameTime = 1.0 / 60.0

// System is the particle system aggregate: pool, emitter shape, gradient
// tracks and the scalar configuration ranges sampled at particle birth.
//
// The exported range fields are plain configuration; they are validated at
// Start, not on assignment. Capacity is fixed at construction and exceeding
// it stalls emission rather than growing the pool.
type System struct {
	Emitter         emitter.Shape
	EmitterPosition types.Vector3
	Gravity         types.Vector3

	// Color1 and Color2 bound the birth-time random color blend; ColorDead
	// is the color approached as age/lifeTime goes to 1. Used only when no
	// color gradient track is configured.
	Color1    types.Color4
	Color2    types.Color4
	ColorDead types.Color4

	MinLifeTime float64
	MaxLifeTime float64

	MinSize float64
	MaxSize float64

	MinScaleX float64
	MaxScaleX float64
	MinScaleY float64
	MaxScaleY float64

	// Emit power scales the emitter shape's unit direction into a birth
	// velocity.
	MinEmitPower float64
	MaxEmitPower float64

	MinAngularSpeed float64
	MaxAngularSpeed float64

	MinInitialRotation float64
	MaxInitialRotation float64

	// EmitRate is particles per second. The fractional remainder of
	// EmitRate*dt carries over to the next frame so the rate does not
	// drift under variable frame time.
	EmitRate float64

	// UpdateSpeed scales every caller-supplied delta time.
	UpdateSpeed float64

	// TargetStopDuration, when positive, auto-stops emission after that
	// much simulated running time.
	TargetStopDuration float64

	// PreWarmCycles simulation steps of DefaultFrameTime*PreWarmStepOffset
	// are replayed inside Start so the first rendered frame already shows
	// a steady-state population.
	PreWarmCycles     int
	PreWarmStepOffset int

	BlendMode BlendMode

	name     string
	pool     *Pool
	rng      *rand.Rand
	snapshot *RenderSnapshot

	colorTrack *gradient.ColorTrack
	sizeTrack  *gradient.Track
	angTrack   *gradient.Track

	texture Texture

	started   bool
	disposed  bool
	elapsed   float64
	emitCarry float64
	burst     int
}

// NewSystem returns a stopped system with the given fixed pool capacity.
// rng seeds all randomness of the instance; pass a seeded source for
// reproducible simulations, or nil for a time-seeded one.
func NewSystem(name string, capacity int, rng *rand.Rand) (*System, error) {
	pool, err := NewPool(capacity)
	if err != nil {
		return nil, fmt.Errorf("system %q: %w", name, err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &System{
		name:     name,
		pool:     pool,
		rng:      rng,
		snapshot: newRenderSnapshot(capacity),

		Color1:    types.White,
		Color2:    types.White,
		ColorDead: types.Color4{},

		MinLifeTime: 1,
		MaxLifeTime: 1,
		MinSize:     1,
		MaxSize:     1,
		MinScaleX:   1,
		MaxScaleX:   1,
		MinScaleY:   1,
		MaxScaleY:   1,

		MinEmitPower: 1,
		MaxEmitPower: 1,

		EmitRate:          10,
		UpdateSpeed:       1,
		PreWarmStepOffset: 1,
	}, nil
}

// Name returns the system's name.
func (s *System) Name() string { return s.name }

// GetCapacity returns the fixed pool capacity.
func (s *System) GetCapacity() int { return s.pool.Capacity() }

// AliveCount returns the current number of alive particles.
func (s *System) AliveCount() int { return s.pool.Alive() }

// IsStarted reports whether the system is in the Running state.
func (s *System) IsStarted() bool { return s.started }

// IsReady reports whether the system can animate and render: a texture is
// bound, an emitter is configured and the system is not disposed.
func (s *System) IsReady() bool {
	return !s.disposed && s.texture != nil && s.Emitter != nil
}

// SetTexture binds the opaque texture handle. The core never mutates it.
func (s *System) SetTexture(t Texture) { s.texture = t }

// Texture returns the bound texture handle, or nil.
func (s *System) Texture() Texture { return s.texture }

// validate checks the static configuration ranges. Inverted ranges are the
// fatal ConfigurationError class and are rejected here, before simulation.
func (s *System) validate() error {
	ranges := []struct {
		name     string
		min, max float64
	}{
		{"lifeTime", s.MinLifeTime, s.MaxLifeTime},
		{"size", s.MinSize, s.MaxSize},
		{"scaleX", s.MinScaleX, s.MaxScaleX},
		{"scaleY", s.MinScaleY, s.MaxScaleY},
		{"emitPower", s.MinEmitPower, s.MaxEmitPower},
		{"angularSpeed", s.MinAngularSpeed, s.MaxAngularSpeed},
		{"initialRotation", s.MinInitialRotation, s.MaxInitialRotation},
	}
	for _, r := range ranges {
		if r.min > r.max {
			return fmt.Errorf("%w: %s [%v, %v]", ErrInvalidRange, r.name, r.min, r.max)
		}
	}
	if s.MinLifeTime <= 0 {
		return fmt.Errorf("%w: lifeTime must be positive, got %v", ErrInvalidRange, s.MinLifeTime)
	}
	return nil
}

// Start transitions Stopped -> Running. It validates the static
// configuration and requires an emitter shape; both are fatal setup errors.
// When PreWarmCycles is positive the configured number of simulation steps
// is replayed immediately so the first render shows a settled population.
func (s *System) Start() error {
	if s.disposed {
		return fmt.Errorf("system %q: %w", s.name, ErrDisposed)
	}
	if s.Emitter == nil {
		return fmt.Errorf("system %q: %w", s.name, ErrMissingEmitter)
	}
	if err := s.validate(); err != nil {
		return fmt.Errorf("system %q: %w", s.name, err)
	}
	s.started = true
	s.elapsed = 0

	if s.PreWarmCycles > 0 {
		offset := s.PreWarmStepOffset
		if offset < 1 {
			offset = 1
		}
		dt := DefaultFrameTime * float64(offset) * s.UpdateSpeed
		for i := 0; i < s.PreWarmCycles && s.started; i++ {
			s.step(dt)
		}
	}
	return nil
}

// Stop transitions Running -> Stopped. Emission halts immediately; already
// alive particles keep simulating on subsequent Animate calls until they
// expire.
func (s *System) Stop() { s.started = false }

// Reset returns every alive particle to the pool without changing any
// configuration. Valid in both lifecycle states.
func (s *System) Reset() {
	s.pool.Reset()
	s.emitCarry = 0
	s.burst = 0
}

// Burst queues n additional particles to spawn on the next simulation
// step, independent of EmitRate. Spawns beyond the free slot count are
// dropped like any other exhausted emission.
func (s *System) Burst(n int) {
	if n > 0 {
		s.burst += n
	}
}

// Animate advances the simulation by one step of the caller-supplied delta
// time (seconds), scaled by UpdateSpeed. It is a no-op while the system is
// not ready. A step runs to completion synchronously; there are no
// suspension points.
func (s *System) Animate(deltaTime float64) {
	if !s.IsReady() || deltaTime <= 0 {
		return
	}
	dt := deltaTime * s.UpdateSpeed
	s.step(dt)

	if s.started {
		s.elapsed += dt
		if s.TargetStopDuration > 0 && s.elapsed >= s.TargetStopDuration {
			s.Stop()
		}
	}
}

// step is one full simulation step: retire, integrate, sample attributes,
// emit. Pre-warm replays it without rendering side effects.
func (s *System) step(dt float64) {
	// 1. Retirement: age every particle, free the expired. Indexed loop
	// because Release swaps the last alive particle into slot i, which must
	// then be examined at the same index.
	for i := 0; i < s.pool.Alive(); {
		pt := s.pool.At(i)
		pt.Age += dt
		if pt.Age >= pt.LifeTime {
			s.pool.Release(i)
			continue
		}
		i++
	}

	// 2. Integration.
	s.pool.ForEachAlive(func(pt *Particle) {
		pt.Velocity = pt.Velocity.AddScaled(s.Gravity, dt)
		pt.Position = pt.Position.AddScaled(pt.Velocity, dt)
		pt.Rotation += pt.AngularSpeed * dt
	})

	// 3. Attribute sampling over normalized lifetime.
	s.pool.ForEachAlive(func(pt *Particle) {
		s.sampleAttributes(pt, pt.Age/pt.LifeTime)
	})

	// 4. Emission. Whole units spawn; the fractional remainder carries to
	// the next frame. Exhaustion drops the remainder, carry included.
	if !s.started {
		return
	}
	emit := s.EmitRate*dt + s.emitCarry
	count := int(math.Floor(emit))
	s.emitCarry = emit - float64(count)
	count += s.burst
	s.burst = 0

	for i := 0; i < count; i++ {
		if !s.spawn() {
			s.emitCarry = 0
			break
		}
	}
}

// sampleAttributes evaluates the gradient tracks at normalized lifetime t,
// re-rolling a track's range factor whenever the particle enters a new
// keyframe window. Tracks left empty fall back to the static birth values.
func (s *System) sampleAttributes(pt *Particle, t float64) {
	if s.colorTrack != nil && !s.colorTrack.Empty() {
		if w := s.colorTrack.WindowIndex(t); w != pt.colorWindow {
			pt.colorWindow = w
			pt.colorRoll = s.rng.Float64()
		}
		pt.Color = s.colorTrack.Sample(t, pt.colorRoll)
	} else {
		pt.Color = types.LerpColor4(pt.colorStart, pt.colorEnd, t)
	}

	if s.sizeTrack != nil && !s.sizeTrack.Empty() {
		if w := s.sizeTrack.WindowIndex(t); w != pt.sizeWindow {
			pt.sizeWindow = w
			pt.sizeRoll = s.rng.Float64()
		}
		pt.Size = s.sizeTrack.Sample(t, pt.sizeRoll)
	}

	if s.angTrack != nil && !s.angTrack.Empty() {
		if w := s.angTrack.WindowIndex(t); w != pt.angWindow {
			pt.angWindow = w
			pt.angRoll = s.rng.Float64()
		}
		pt.AngularSpeed = s.angTrack.Sample(t, pt.angRoll)
	}
}

// spawn initializes one new particle. Returns false when the pool is
// exhausted, which is a silent degradation, not an error.
func (s *System) spawn() bool {
	pt, ok := s.pool.Acquire()
	if !ok {
		return false
	}

	var sp emitter.Spawn
	s.Emitter.Sample(s.rng, &sp)

	power := s.randRange(s.MinEmitPower, s.MaxEmitPower)
	pt.Position = s.EmitterPosition.Add(sp.Position)
	pt.Velocity = sp.Direction.Scale(power)

	pt.Age = 0
	pt.LifeTime = s.randRange(s.MinLifeTime, s.MaxLifeTime)

	pt.Size = s.randRange(s.MinSize, s.MaxSize)
	pt.ScaleX = s.randRange(s.MinScaleX, s.MaxScaleX)
	pt.ScaleY = s.randRange(s.MinScaleY, s.MaxScaleY)
	pt.Rotation = s.randRange(s.MinInitialRotation, s.MaxInitialRotation)
	pt.AngularSpeed = s.randRange(s.MinAngularSpeed, s.MaxAngularSpeed)

	pt.colorStart = types.LerpColor4(s.Color1, s.Color2, s.rng.Float64())
	pt.colorEnd = s.ColorDead

	// Force a fresh roll on the first gradient sample of each track, then
	// evaluate the tracks at birth so the first integrated step already
	// uses sampled values.
	pt.colorWindow = -2
	pt.sizeWindow = -2
	pt.angWindow = -2
	s.sampleAttributes(pt, 0)

	return true
}

func (s *System) randRange(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + s.rng.Float64()*(max-min)
}

// Render packs the current alive set into the system's render snapshot and
// returns the alive count. It is a no-op returning zero while the system
// is not ready. Callers sequence Render strictly after Animate for the
// same frame.
func (s *System) Render() int {
	if !s.IsReady() {
		return 0
	}
	return s.snapshot.pack(s.pool, s.BlendMode)
}

// Snapshot returns the buffer filled by the last Render call. The buffer
// is reused; it is valid until the next Render.
func (s *System) Snapshot() *RenderSnapshot { return s.snapshot }

// Dispose releases the pool storage; the system cannot be restarted. When
// disposeTexture is set and a texture is bound, the texture's Dispose is
// invoked as well (ownership hand-off, still opaque to the core).
func (s *System) Dispose(disposeTexture bool) {
	if s.disposed {
		return
	}
	s.disposed = true
	s.started = false
	s.pool = &Pool{}
	s.snapshot = &RenderSnapshot{}
	if disposeTexture && s.texture != nil {
		s.texture.Dispose()
	}
	s.texture = nil
}
