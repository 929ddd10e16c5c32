package particles

import (
	"fmt"
	"math/rand"

	"github.com/gonewx/ember/pkg/config"
)

// boundPtr copies a range bound into the optional config representation.
func boundPtr(v float64) *float64 {
	return &v
}

// ParseBlendMode maps a config blend mode name to a BlendMode. Unknown
// names fall back to standard blending.
func ParseBlendMode(name string) BlendMode {
	if name == "additive" {
		return BlendAdditive
	}
	return BlendStandard
}

// Serialize captures the system's full static configuration: scalar
// ranges, gradient tracks and emitter parameters. Runtime particle state
// is deliberately excluded; a deserialized system starts empty.
func (s *System) Serialize() *config.SystemConfig {
	cfg := &config.SystemConfig{
		Name:     s.name,
		Capacity: s.pool.Capacity(),
		Emitter:  config.EmitterToConfig(s.Emitter),

		EmitterPosition: s.EmitterPosition,
		Gravity:         s.Gravity,

		Color1:    s.Color1,
		Color2:    s.Color2,
		ColorDead: s.ColorDead,

		MinLifeTime: s.MinLifeTime,
		MaxLifeTime: s.MaxLifeTime,

		MinSize: s.MinSize,
		MaxSize: boundPtr(s.MaxSize),

		MinScaleX: s.MinScaleX,
		MaxScaleX: boundPtr(s.MaxScaleX),
		MinScaleY: s.MinScaleY,
		MaxScaleY: boundPtr(s.MaxScaleY),

		MinEmitPower: s.MinEmitPower,
		MaxEmitPower: boundPtr(s.MaxEmitPower),

		MinAngularSpeed: s.MinAngularSpeed,
		MaxAngularSpeed: boundPtr(s.MaxAngularSpeed),

		MinInitialRotation: s.MinInitialRotation,
		MaxInitialRotation: boundPtr(s.MaxInitialRotation),

		EmitRate:           s.EmitRate,
		UpdateSpeed:        s.UpdateSpeed,
		TargetStopDuration: s.TargetStopDuration,
		PreWarmCycles:      s.PreWarmCycles,
		PreWarmStepOffset:  s.PreWarmStepOffset,

		BlendMode: s.BlendMode.String(),
	}

	for _, k := range s.GetColorGradients() {
		g := config.ColorGradientConfig{Gradient: k.Gradient, Color: k.Color}
		if k.HasRange {
			c2 := k.Color2
			g.Color2 = &c2
		}
		cfg.ColorGradients = append(cfg.ColorGradients, g)
	}
	for _, k := range s.GetSizeGradients() {
		g := config.ScalarGradientConfig{Gradient: k.Gradient, Value: k.Value}
		if k.HasRange {
			v2 := k.Value2
			g.Value2 = &v2
		}
		cfg.SizeGradients = append(cfg.SizeGradients, g)
	}
	for _, k := range s.GetAngularSpeedGradients() {
		g := config.ScalarGradientConfig{Gradient: k.Gradient, Value: k.Value}
		if k.HasRange {
			v2 := k.Value2
			g.Value2 = &v2
		}
		cfg.AngularSpeedGradients = append(cfg.AngularSpeedGradients, g)
	}

	return cfg
}

// FromConfig builds a stopped, texture-less system from a preset. The
// caller binds a texture and calls Start. rng may be nil for a time-seeded
// source.
func FromConfig(cfg *config.SystemConfig, rng *rand.Rand) (*System, error) {
	if cfg == nil {
		return nil, fmt.Errorf("particles: config is nil")
	}
	config.ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s, err := NewSystem(cfg.Name, cfg.Capacity, rng)
	if err != nil {
		return nil, err
	}

	if cfg.Emitter != nil {
		shape, err := config.BuildEmitter(cfg.Emitter)
		if err != nil {
			return nil, fmt.Errorf("config %q: %w", cfg.Name, err)
		}
		s.Emitter = shape
	}
	s.EmitterPosition = cfg.EmitterPosition
	s.Gravity = cfg.Gravity

	s.Color1 = cfg.Color1
	s.Color2 = cfg.Color2
	s.ColorDead = cfg.ColorDead

	s.MinLifeTime = cfg.MinLifeTime
	s.MaxLifeTime = cfg.MaxLifeTime
	s.MinSize = cfg.MinSize
	s.MaxSize = *cfg.MaxSize
	s.MinScaleX = cfg.MinScaleX
	s.MaxScaleX = *cfg.MaxScaleX
	s.MinScaleY = cfg.MinScaleY
	s.MaxScaleY = *cfg.MaxScaleY
	s.MinEmitPower = cfg.MinEmitPower
	s.MaxEmitPower = *cfg.MaxEmitPower
	s.MinAngularSpeed = cfg.MinAngularSpeed
	s.MaxAngularSpeed = *cfg.MaxAngularSpeed
	s.MinInitialRotation = cfg.MinInitialRotation
	s.MaxInitialRotation = *cfg.MaxInitialRotation

	s.EmitRate = cfg.EmitRate
	s.UpdateSpeed = cfg.UpdateSpeed
	s.TargetStopDuration = cfg.TargetStopDuration
	s.PreWarmCycles = cfg.PreWarmCycles
	s.PreWarmStepOffset = cfg.PreWarmStepOffset
	s.BlendMode = ParseBlendMode(cfg.BlendMode)

	for _, g := range cfg.ColorGradients {
		if g.Color2 != nil {
			s.AddColorGradient(g.Gradient, g.Color, *g.Color2)
		} else {
			s.AddColorGradient(g.Gradient, g.Color)
		}
	}
	for _, g := range cfg.SizeGradients {
		if g.Value2 != nil {
			s.AddSizeGradient(g.Gradient, g.Value, *g.Value2)
		} else {
			s.AddSizeGradient(g.Gradient, g.Value)
		}
	}
	for _, g := range cfg.AngularSpeedGradients {
		if g.Value2 != nil {
			s.AddAngularSpeedGradient(g.Gradient, g.Value, *g.Value2)
		} else {
			s.AddAngularSpeedGradient(g.Gradient, g.Value)
		}
	}

	return s, nil
}
