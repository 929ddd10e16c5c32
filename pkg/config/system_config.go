// Package config defines the YAML schema for particle system presets and
// the loading, defaulting and validation around it.
//
// A SystemConfig captures everything needed to reconstruct a system: scalar
// configuration ranges, gradient tracks and emitter parameters. Runtime
// particle state is never part of a config.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/ember/pkg/types"
)

// ColorGradientConfig is one color keyframe. Color2, when present, makes
// the keyframe a range re-rolled per particle.
type ColorGradientConfig struct {
	Gradient float64       `yaml:"gradient"`
	Color    types.Color4  `yaml:"color"`
	Color2   *types.Color4 `yaml:"color2,omitempty"`
}

// ScalarGradientConfig is one scalar keyframe. Value2, when present, makes
// the keyframe a range re-rolled per particle.
type ScalarGradientConfig struct {
	Gradient float64  `yaml:"gradient"`
	Value    float64  `yaml:"value"`
	Value2   *float64 `yaml:"value2,omitempty"`
}

// SystemConfig is the serializable description of a particle system.
type SystemConfig struct {
	Name     string         `yaml:"name"`
	Capacity int            `yaml:"capacity"`
	Emitter  *EmitterConfig `yaml:"emitter,omitempty"`

	EmitterPosition types.Vector3 `yaml:"emitterPosition,omitempty"`
	Gravity         types.Vector3 `yaml:"gravity,omitempty"`

	Color1    types.Color4 `yaml:"color1,omitempty"`
	Color2    types.Color4 `yaml:"color2,omitempty"`
	ColorDead types.Color4 `yaml:"colorDead,omitempty"`

	MinLifeTime float64 `yaml:"minLifeTime"`
	MaxLifeTime float64 `yaml:"maxLifeTime"`

	// Max bounds are pointers so an explicit zero (as in a spin range of
	// [-2, 0]) survives serialization. nil means the bound was absent and
	// ApplyDefaults resolves it.
	MinSize float64  `yaml:"minSize,omitempty"`
	MaxSize *float64 `yaml:"maxSize,omitempty"`

	MinScaleX float64  `yaml:"minScaleX,omitempty"`
	MaxScaleX *float64 `yaml:"maxScaleX,omitempty"`
	MinScaleY float64  `yaml:"minScaleY,omitempty"`
	MaxScaleY *float64 `yaml:"maxScaleY,omitempty"`

	MinEmitPower float64  `yaml:"minEmitPower,omitempty"`
	MaxEmitPower *float64 `yaml:"maxEmitPower,omitempty"`

	MinAngularSpeed float64  `yaml:"minAngularSpeed,omitempty"`
	MaxAngularSpeed *float64 `yaml:"maxAngularSpeed,omitempty"`

	MinInitialRotation float64  `yaml:"minInitialRotation,omitempty"`
	MaxInitialRotation *float64 `yaml:"maxInitialRotation,omitempty"`

	EmitRate           float64 `yaml:"emitRate"`
	UpdateSpeed        float64 `yaml:"updateSpeed,omitempty"`
	TargetStopDuration float64 `yaml:"targetStopDuration,omitempty"`
	PreWarmCycles      int     `yaml:"preWarmCycles,omitempty"`
	PreWarmStepOffset  int     `yaml:"preWarmStepOffset,omitempty"`

	// BlendMode is "standard" or "additive".
	BlendMode string `yaml:"blendMode,omitempty"`

	ColorGradients        []ColorGradientConfig  `yaml:"colorGradients,omitempty"`
	SizeGradients         []ScalarGradientConfig `yaml:"sizeGradients,omitempty"`
	AngularSpeedGradients []ScalarGradientConfig `yaml:"angularSpeedGradients,omitempty"`
}

// Load reads and parses a system config from a YAML file, applies defaults
// and validates it.
func Load(path string) (*SystemConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read system config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid system config in %s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses YAML bytes into a defaulted, validated SystemConfig.
func Parse(data []byte) (*SystemConfig, error) {
	var cfg SystemConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse system config YAML: %w", err)
	}
	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Marshal serializes the config to YAML.
func (c *SystemConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal system config: %w", err)
	}
	return data, nil
}

// ApplyDefaults fills the optional fields older or hand-written presets
// leave out.
func ApplyDefaults(c *SystemConfig) {
	if c.UpdateSpeed == 0 {
		c.UpdateSpeed = 1
	}
	if c.PreWarmStepOffset == 0 {
		c.PreWarmStepOffset = 1
	}
	if c.BlendMode == "" {
		c.BlendMode = "standard"
	}
	// A fully zero color pair means "unset": default to white so particles
	// show the raw texture color.
	if c.Color1 == (types.Color4{}) && c.Color2 == (types.Color4{}) {
		c.Color1 = types.White
		c.Color2 = types.White
	}
	if c.MaxLifeTime == 0 {
		c.MaxLifeTime = c.MinLifeTime
	}
	c.MaxSize = resolveMax(&c.MinSize, c.MaxSize, 1)
	c.MaxScaleX = resolveMax(&c.MinScaleX, c.MaxScaleX, 1)
	c.MaxScaleY = resolveMax(&c.MinScaleY, c.MaxScaleY, 1)
	c.MaxEmitPower = resolveMax(&c.MinEmitPower, c.MaxEmitPower, 1)
	c.MaxAngularSpeed = resolveMax(&c.MinAngularSpeed, c.MaxAngularSpeed, 0)
	c.MaxInitialRotation = resolveMax(&c.MinInitialRotation, c.MaxInitialRotation, 0)
}

// resolveMax fills an absent max bound: a fully untouched pair defaults to
// (fallback, fallback), a lone min closes the range at min. An explicit max
// always survives, zero included, so a serialized range like [-2, 0] loads
// back intact.
func resolveMax(min *float64, max *float64, fallback float64) *float64 {
	if max != nil {
		return max
	}
	if *min == 0 {
		*min = fallback
	}
	v := *min
	return &v
}

// boundOrZero reads an optional max bound. Validate runs after
// ApplyDefaults, which materializes every bound; nil only occurs on a
// hand-built config that skipped defaulting.
func boundOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Validate rejects malformed static configuration. These are the fatal
// configuration errors of the engine, surfaced at load time.
func (c *SystemConfig) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("config %q: capacity must be positive, got %d", c.Name, c.Capacity)
	}
	if c.MinLifeTime <= 0 {
		return fmt.Errorf("config %q: minLifeTime must be positive, got %v", c.Name, c.MinLifeTime)
	}
	ranges := []struct {
		name     string
		min, max float64
	}{
		{"lifeTime", c.MinLifeTime, c.MaxLifeTime},
		{"size", c.MinSize, boundOrZero(c.MaxSize)},
		{"scaleX", c.MinScaleX, boundOrZero(c.MaxScaleX)},
		{"scaleY", c.MinScaleY, boundOrZero(c.MaxScaleY)},
		{"emitPower", c.MinEmitPower, boundOrZero(c.MaxEmitPower)},
		{"angularSpeed", c.MinAngularSpeed, boundOrZero(c.MaxAngularSpeed)},
		{"initialRotation", c.MinInitialRotation, boundOrZero(c.MaxInitialRotation)},
	}
	for _, r := range ranges {
		if r.min > r.max {
			return fmt.Errorf("config %q: inverted %s range [%v, %v]", c.Name, r.name, r.min, r.max)
		}
	}
	if c.EmitRate < 0 {
		return fmt.Errorf("config %q: emitRate must not be negative, got %v", c.Name, c.EmitRate)
	}
	if c.BlendMode != "standard" && c.BlendMode != "additive" {
		return fmt.Errorf("config %q: unknown blend mode %q", c.Name, c.BlendMode)
	}
	if c.Emitter != nil {
		if err := c.Emitter.Validate(); err != nil {
			return fmt.Errorf("config %q: %w", c.Name, err)
		}
	}
	for _, g := range c.ColorGradients {
		if g.Gradient < 0 || g.Gradient > 1 {
			return fmt.Errorf("config %q: color gradient %v outside [0, 1]", c.Name, g.Gradient)
		}
	}
	for _, g := range c.SizeGradients {
		if g.Gradient < 0 || g.Gradient > 1 {
			return fmt.Errorf("config %q: size gradient %v outside [0, 1]", c.Name, g.Gradient)
		}
	}
	for _, g := range c.AngularSpeedGradients {
		if g.Gradient < 0 || g.Gradient > 1 {
			return fmt.Errorf("config %q: angular speed gradient %v outside [0, 1]", c.Name, g.Gradient)
		}
	}
	return nil
}
