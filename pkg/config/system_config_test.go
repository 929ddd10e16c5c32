package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gonewx/ember/pkg/emitter"
)

const sampleYAML = `
name: campfire
capacity: 500
emitter:
  type: cone
  radius: 0.4
  angle: 0.5
gravity:
  y: 1.2
minLifeTime: 0.8
maxLifeTime: 1.6
emitRate: 90
blendMode: additive
colorGradients:
  - gradient: 0
    color: {r: 1, g: 0.6, b: 0.1, a: 1}
  - gradient: 1
    color: {r: 0.3, g: 0.05, b: 0, a: 0}
sizeGradients:
  - gradient: 0
    value: 0.5
    value2: 0.9
  - gradient: 1
    value: 0.1
`

// TestParse_SampleConfig verifies a realistic preset parses with defaults
// applied.
func TestParse_SampleConfig(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if cfg.Name != "campfire" || cfg.Capacity != 500 {
		t.Errorf("parsed header = %q/%d", cfg.Name, cfg.Capacity)
	}
	if cfg.Emitter == nil || cfg.Emitter.Type != emitter.KindCone {
		t.Fatalf("emitter = %+v, want cone", cfg.Emitter)
	}
	if cfg.UpdateSpeed != 1 {
		t.Errorf("UpdateSpeed default = %v, want 1", cfg.UpdateSpeed)
	}
	if cfg.MinSize != 1 || cfg.MaxSize == nil || *cfg.MaxSize != 1 {
		t.Errorf("size default = [%v, %v], want [1, 1]", cfg.MinSize, cfg.MaxSize)
	}
	if cfg.Color1.R != 1 || cfg.Color1.A != 1 {
		t.Errorf("Color1 default = %+v, want white", cfg.Color1)
	}
	if len(cfg.ColorGradients) != 2 || len(cfg.SizeGradients) != 2 {
		t.Errorf("gradients = %d color / %d size, want 2/2",
			len(cfg.ColorGradients), len(cfg.SizeGradients))
	}
	if cfg.SizeGradients[0].Value2 == nil || *cfg.SizeGradients[0].Value2 != 0.9 {
		t.Errorf("ranged size gradient = %+v, want value2 0.9", cfg.SizeGradients[0])
	}
	if cfg.SizeGradients[1].Value2 != nil {
		t.Errorf("plain size gradient carries value2: %+v", cfg.SizeGradients[1])
	}
}

func bound(v float64) *float64 { return &v }

// TestParse_ExplicitZeroMaxSurvives verifies an explicit zero upper bound is
// kept instead of being rewritten by defaulting, so a spin range like
// [-2, 0] loads back as written.
func TestParse_ExplicitZeroMaxSurvives(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML + "minAngularSpeed: -2\nmaxAngularSpeed: 0\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.MinAngularSpeed != -2 || cfg.MaxAngularSpeed == nil || *cfg.MaxAngularSpeed != 0 {
		t.Errorf("angular speed range = [%v, %v], want [-2, 0]",
			cfg.MinAngularSpeed, cfg.MaxAngularSpeed)
	}
}

// TestParse_LoneMinClosesRange verifies a min without a max still closes the
// range at min for hand-written presets.
func TestParse_LoneMinClosesRange(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML + "minAngularSpeed: 0.5\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.MaxAngularSpeed == nil || *cfg.MaxAngularSpeed != 0.5 {
		t.Errorf("max angular speed = %v, want 0.5", cfg.MaxAngularSpeed)
	}
}

// TestLoad_RoundTripFile verifies Load reads what Marshal wrote.
func TestLoad_RoundTripFile(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "campfire.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Name != cfg.Name || loaded.EmitRate != cfg.EmitRate {
		t.Errorf("loaded = %q/%v, want %q/%v", loaded.Name, loaded.EmitRate, cfg.Name, cfg.EmitRate)
	}
}

// TestLoad_MissingFile verifies the wrapped read error.
func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load of missing file should fail")
	}
}

// TestValidate_Rejections verifies the fatal configuration taxonomy.
func TestValidate_Rejections(t *testing.T) {
	base := func() *SystemConfig {
		cfg, err := Parse([]byte(sampleYAML))
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*SystemConfig)
	}{
		{"zero capacity", func(c *SystemConfig) { c.Capacity = 0 }},
		{"negative capacity", func(c *SystemConfig) { c.Capacity = -5 }},
		{"zero lifetime", func(c *SystemConfig) { c.MinLifeTime = 0 }},
		{"inverted lifetime", func(c *SystemConfig) { c.MinLifeTime = 2; c.MaxLifeTime = 1 }},
		{"inverted size", func(c *SystemConfig) { c.MinSize = 3; c.MaxSize = bound(1) }},
		{"negative emit rate", func(c *SystemConfig) { c.EmitRate = -1 }},
		{"bad blend mode", func(c *SystemConfig) { c.BlendMode = "screen" }},
		{"gradient out of range", func(c *SystemConfig) { c.SizeGradients[0].Gradient = 1.5 }},
		{"negative cone radius", func(c *SystemConfig) { c.Emitter.Radius = -1 }},
		{"cone angle too wide", func(c *SystemConfig) { c.Emitter.Angle = 4 }},
	}
	for _, c := range cases {
		cfg := base()
		c.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate succeeded, want error", c.name)
		}
	}
}

// TestBuildEmitter_Variants verifies config-to-shape construction for every
// serializable variant.
func TestBuildEmitter_Variants(t *testing.T) {
	cases := []struct {
		cfg  EmitterConfig
		kind string
	}{
		{EmitterConfig{Type: emitter.KindPoint}, emitter.KindPoint},
		{EmitterConfig{Type: emitter.KindBox}, emitter.KindBox},
		{EmitterConfig{Type: emitter.KindSphere, Radius: 2, DirectionRandomizer: 0.5}, emitter.KindSphere},
		{EmitterConfig{Type: emitter.KindCone, Radius: 1, Angle: 0.7}, emitter.KindCone},
	}
	for _, c := range cases {
		shape, err := BuildEmitter(&c.cfg)
		if err != nil {
			t.Errorf("BuildEmitter(%s) error: %v", c.cfg.Type, err)
			continue
		}
		if shape.Kind() != c.kind {
			t.Errorf("built kind = %s, want %s", shape.Kind(), c.kind)
		}
	}

	if _, err := BuildEmitter(&EmitterConfig{Type: emitter.KindCustom}); err == nil {
		t.Error("BuildEmitter(custom) should fail")
	}
	if _, err := BuildEmitter(nil); err == nil {
		t.Error("BuildEmitter(nil) should fail")
	}
}

// TestEmitterToConfig_CapturesParams verifies shape parameters survive the
// shape -> config mapping.
func TestEmitterToConfig_CapturesParams(t *testing.T) {
	sphere, err := emitter.NewSphere(3, 0.25)
	if err != nil {
		t.Fatalf("NewSphere() error: %v", err)
	}
	cfg := EmitterToConfig(sphere)
	if cfg.Type != emitter.KindSphere || cfg.Radius != 3 || cfg.DirectionRandomizer != 0.25 {
		t.Errorf("sphere config = %+v", cfg)
	}

	if EmitterToConfig(nil) != nil {
		t.Error("EmitterToConfig(nil) should be nil")
	}
}
