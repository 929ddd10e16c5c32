package particles

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/gonewx/ember/pkg/emitter"
	"github.com/gonewx/ember/pkg/types"
)

// stubTexture satisfies the opaque texture handle for tests.
type stubTexture struct {
	disposed bool
}

func (t *stubTexture) Dispose() { t.disposed = true }

// newTestSystem builds a ready, deterministic system: point emitter, bound
// texture, seeded random source, 1-second fixed lifetime.
func newTestSystem(t *testing.T, capacity int) *System {
	t.Helper()
	s, err := NewSystem("test", capacity, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSystem() error: %v", err)
	}
	s.Emitter = emitter.NewPoint()
	s.SetTexture(&stubTexture{})
	return s
}

// TestSystem_RejectsNonPositiveCapacity verifies the fatal capacity check.
func TestSystem_RejectsNonPositiveCapacity(t *testing.T) {
	if _, err := NewSystem("bad", 0, nil); !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("NewSystem(0) error = %v, want ErrInvalidCapacity", err)
	}
}

// TestSystem_StartRequiresEmitter verifies Start fails fast without an
// emitter shape.
func TestSystem_StartRequiresEmitter(t *testing.T) {
	s, _ := NewSystem("noemitter", 10, nil)
	if err := s.Start(); !errors.Is(err, ErrMissingEmitter) {
		t.Errorf("Start() error = %v, want ErrMissingEmitter", err)
	}
	if s.IsStarted() {
		t.Error("IsStarted() = true after failed Start")
	}
}

// TestSystem_StartRejectsInvertedRange verifies inverted min/max ranges are
// fatal at Start, not mid-simulation.
func TestSystem_StartRejectsInvertedRange(t *testing.T) {
	s := newTestSystem(t, 10)
	s.MinLifeTime = 2
	s.MaxLifeTime = 1

	if err := s.Start(); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Start() error = %v, want ErrInvalidRange", err)
	}
}

// TestSystem_NotReadyIsNoOp verifies Animate and Render silently do nothing
// before a texture is bound.
func TestSystem_NotReadyIsNoOp(t *testing.T) {
	s, _ := NewSystem("noready", 10, rand.New(rand.NewSource(1)))
	s.Emitter = emitter.NewPoint()
	if s.IsReady() {
		t.Fatal("IsReady() = true without texture")
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	s.Animate(1)
	if s.AliveCount() != 0 {
		t.Errorf("AliveCount = %d after not-ready Animate, want 0", s.AliveCount())
	}
	if got := s.Render(); got != 0 {
		t.Errorf("Render() = %d while not ready, want 0", got)
	}
}

// TestSystem_SteadyStateEmission runs the fixed-lifetime scenario:
// minLifeTime=maxLifeTime=1, emitRate=5, deltaTime=1, capacity=100.
// One step spawns exactly 5 particles at age 0; the next step retires them
// and spawns 5 more, holding the alive count at 5.
func TestSystem_SteadyStateEmission(t *testing.T) {
	s := newTestSystem(t, 100)
	s.MinLifeTime = 1
	s.MaxLifeTime = 1
	s.EmitRate = 5
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	s.Animate(1)
	if s.AliveCount() != 5 {
		t.Fatalf("alive after step 1 = %d, want 5", s.AliveCount())
	}
	s.pool.ForEachAlive(func(pt *Particle) {
		if pt.Age != 0 {
			t.Errorf("new particle Age = %v, want 0", pt.Age)
		}
	})

	s.Animate(1)
	if s.AliveCount() != 5 {
		t.Errorf("alive after step 2 = %d, want 5 (retire 5, spawn 5)", s.AliveCount())
	}

	s.Animate(1)
	if s.AliveCount() != 5 {
		t.Errorf("alive after step 3 = %d, want steady 5", s.AliveCount())
	}
}

// TestSystem_EmissionNeverExceedsCapacity verifies pool exhaustion degrades
// to dropped spawns: emitRate=1000, capacity=10, one second step.
func TestSystem_EmissionNeverExceedsCapacity(t *testing.T) {
	s := newTestSystem(t, 10)
	s.MinLifeTime = 100
	s.MaxLifeTime = 100
	s.EmitRate = 1000
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	s.Animate(1)
	if s.AliveCount() != 10 {
		t.Errorf("alive = %d, want capped at capacity 10", s.AliveCount())
	}

	// Further steps stay capped without error.
	s.Animate(1)
	if s.AliveCount() != 10 {
		t.Errorf("alive = %d after second step, want 10", s.AliveCount())
	}
}

// TestSystem_AgeInvariant verifies 0 <= Age < LifeTime for every alive
// particle at every observed frame, and that expiry frees the slot.
func TestSystem_AgeInvariant(t *testing.T) {
	s := newTestSystem(t, 50)
	s.MinLifeTime = 0.3
	s.MaxLifeTime = 0.9
	s.EmitRate = 40
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	for frame := 0; frame < 120; frame++ {
		s.Animate(DefaultFrameTime)
		s.pool.ForEachAlive(func(pt *Particle) {
			if pt.Age < 0 || pt.Age >= pt.LifeTime {
				t.Fatalf("frame %d: alive particle violates 0 <= %v < %v", frame, pt.Age, pt.LifeTime)
			}
			if pt.LifeTime < s.MinLifeTime || pt.LifeTime > s.MaxLifeTime {
				t.Fatalf("frame %d: lifeTime %v outside [%v, %v]", frame, pt.LifeTime, s.MinLifeTime, s.MaxLifeTime)
			}
		})
	}
}

// TestSystem_EmissionCarry verifies the fractional emission remainder
// carries across frames: emitRate=0.5 at deltaTime=1 spawns one particle
// every two steps.
func TestSystem_EmissionCarry(t *testing.T) {
	s := newTestSystem(t, 10)
	s.MinLifeTime = 100
	s.MaxLifeTime = 100
	s.EmitRate = 0.5
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	s.Animate(1)
	if s.AliveCount() != 0 {
		t.Errorf("alive after step 1 = %d, want 0 (carry 0.5)", s.AliveCount())
	}
	s.Animate(1)
	if s.AliveCount() != 1 {
		t.Errorf("alive after step 2 = %d, want 1 (carry consumed)", s.AliveCount())
	}
	s.Animate(1)
	s.Animate(1)
	if s.AliveCount() != 2 {
		t.Errorf("alive after step 4 = %d, want 2", s.AliveCount())
	}
}

// TestSystem_GravityIntegration verifies velocity and position integration
// under gravity for one step.
func TestSystem_GravityIntegration(t *testing.T) {
	s := newTestSystem(t, 10)
	s.Gravity = types.Vector3{Y: -10}
	s.MinLifeTime = 100
	s.MaxLifeTime = 100
	s.MinEmitPower = 0
	s.MaxEmitPower = 0
	s.EmitRate = 1
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	s.Animate(1) // spawns one particle at rest
	s.Animate(1) // integrates: v += g*dt; p += v*dt
	if s.AliveCount() != 2 {
		t.Fatalf("alive = %d, want 2", s.AliveCount())
	}
	old := s.pool.At(0)
	if old.Velocity.Y != -10 {
		t.Errorf("Velocity.Y = %v, want -10", old.Velocity.Y)
	}
	if old.Position.Y != -10 {
		t.Errorf("Position.Y = %v, want -10", old.Position.Y)
	}
}

// TestSystem_UpdateSpeedScalesStep verifies UpdateSpeed scales the
// caller-supplied delta time.
func TestSystem_UpdateSpeedScalesStep(t *testing.T) {
	s := newTestSystem(t, 10)
	s.MinLifeTime = 100
	s.MaxLifeTime = 100
	s.EmitRate = 1
	s.UpdateSpeed = 2
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	s.Animate(1) // effective dt = 2 => 2 spawns
	if s.AliveCount() != 2 {
		t.Errorf("alive = %d with UpdateSpeed=2, want 2", s.AliveCount())
	}
}

// TestSystem_ResetClearsAlive verifies Reset always returns the alive count
// to zero, in both lifecycle states, without touching configuration.
func TestSystem_ResetClearsAlive(t *testing.T) {
	s := newTestSystem(t, 50)
	s.MinLifeTime = 100
	s.MaxLifeTime = 100
	s.EmitRate = 20
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	s.Animate(1)
	if s.AliveCount() == 0 {
		t.Fatal("expected alive particles before Reset")
	}

	s.Reset()
	if s.AliveCount() != 0 {
		t.Errorf("alive = %d after Reset while running, want 0", s.AliveCount())
	}

	s.Animate(1)
	s.Stop()
	s.Reset()
	if s.AliveCount() != 0 {
		t.Errorf("alive = %d after Reset while stopped, want 0", s.AliveCount())
	}
	if s.EmitRate != 20 {
		t.Errorf("EmitRate = %v after Reset, want configuration unchanged", s.EmitRate)
	}
}

// TestSystem_StopHaltsEmissionDrainsAlive verifies Stop ends emission while
// existing particles keep aging out.
func TestSystem_StopHaltsEmissionDrainsAlive(t *testing.T) {
	s := newTestSystem(t, 50)
	s.MinLifeTime = 2
	s.MaxLifeTime = 2
	s.EmitRate = 5
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	s.Animate(1)
	if s.AliveCount() != 5 {
		t.Fatalf("alive = %d, want 5", s.AliveCount())
	}

	s.Stop()
	if s.IsStarted() {
		t.Error("IsStarted() = true after Stop")
	}

	s.Animate(1) // ages to 1, no new spawns
	if s.AliveCount() != 5 {
		t.Errorf("alive = %d one step after Stop, want 5 (still draining)", s.AliveCount())
	}
	s.Animate(1) // ages to 2 => expired
	if s.AliveCount() != 0 {
		t.Errorf("alive = %d two steps after Stop, want 0", s.AliveCount())
	}
}

// TestSystem_TargetStopDurationAutoStops verifies the Running -> Stopped
// auto-transition after the configured simulated time.
func TestSystem_TargetStopDurationAutoStops(t *testing.T) {
	s := newTestSystem(t, 50)
	s.MinLifeTime = 100
	s.MaxLifeTime = 100
	s.EmitRate = 1
	s.TargetStopDuration = 3
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	s.Animate(1)
	s.Animate(1)
	if !s.IsStarted() {
		t.Fatal("stopped before target duration")
	}
	s.Animate(1)
	if s.IsStarted() {
		t.Error("IsStarted() = true past targetStopDuration, want auto-stop")
	}
}

// TestSystem_BurstSpawnsImmediately verifies queued burst particles spawn
// on the next step regardless of emit rate, capped by free slots.
func TestSystem_BurstSpawnsImmediately(t *testing.T) {
	s := newTestSystem(t, 8)
	s.MinLifeTime = 100
	s.MaxLifeTime = 100
	s.EmitRate = 0
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	s.Burst(5)
	s.Animate(DefaultFrameTime)
	if s.AliveCount() != 5 {
		t.Errorf("alive = %d after Burst(5), want 5", s.AliveCount())
	}

	s.Burst(100)
	s.Animate(DefaultFrameTime)
	if s.AliveCount() != 8 {
		t.Errorf("alive = %d after oversized burst, want capacity 8", s.AliveCount())
	}
}

// TestSystem_PreWarmMatchesRealSteps verifies pre-warming N cycles yields
// the same alive count as N real Animate calls at DefaultFrameTime.
func TestSystem_PreWarmMatchesRealSteps(t *testing.T) {
	const cycles = 30

	build := func() *System {
		s := newTestSystem(t, 100)
		s.MinLifeTime = 0.2
		s.MaxLifeTime = 0.2
		s.EmitRate = 300
		return s
	}

	warmed := build()
	warmed.PreWarmCycles = cycles
	if err := warmed.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	stepped := build()
	if err := stepped.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	for i := 0; i < cycles; i++ {
		stepped.Animate(DefaultFrameTime)
	}

	if warmed.AliveCount() != stepped.AliveCount() {
		t.Errorf("pre-warmed alive = %d, stepped alive = %d, want equal",
			warmed.AliveCount(), stepped.AliveCount())
	}
	if warmed.AliveCount() == 0 {
		t.Error("pre-warm produced no particles")
	}
}

// TestSystem_DisposeReleasesAndBlocksRestart verifies Dispose semantics and
// optional texture hand-off.
func TestSystem_DisposeReleasesAndBlocksRestart(t *testing.T) {
	tex := &stubTexture{}
	s := newTestSystem(t, 10)
	s.SetTexture(tex)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	s.Dispose(false)
	if tex.disposed {
		t.Error("texture disposed despite disposeTexture=false")
	}
	if s.IsReady() {
		t.Error("IsReady() = true after Dispose")
	}
	if err := s.Start(); !errors.Is(err, ErrDisposed) {
		t.Errorf("Start() after Dispose error = %v, want ErrDisposed", err)
	}

	tex2 := &stubTexture{}
	s2 := newTestSystem(t, 10)
	s2.SetTexture(tex2)
	s2.Dispose(true)
	if !tex2.disposed {
		t.Error("texture not disposed despite disposeTexture=true")
	}
}
