package config

import (
	"fmt"
	"math"

	"github.com/gonewx/ember/pkg/emitter"
	"github.com/gonewx/ember/pkg/types"
)

// EmitterConfig is the serializable description of an emitter shape. Only
// the fields relevant to the chosen type are read; the rest stay zero.
// Custom emitters carry code and do not round-trip: they serialize as bare
// {type: custom} and cannot be rebuilt from config.
type EmitterConfig struct {
	Type string `yaml:"type"`

	// Sphere and cone.
	Radius float64 `yaml:"radius,omitempty"`
	// Cone half-angle in radians.
	Angle float64 `yaml:"angle,omitempty"`
	// Sphere direction jitter in [0, 1].
	DirectionRandomizer float64 `yaml:"directionRandomizer,omitempty"`

	// Box.
	HalfExtents types.Vector3 `yaml:"halfExtents,omitempty"`
	Direction1  types.Vector3 `yaml:"direction1,omitempty"`
	Direction2  types.Vector3 `yaml:"direction2,omitempty"`
}

// Validate rejects unknown types and malformed shape parameters without
// building the shape.
func (c *EmitterConfig) Validate() error {
	switch c.Type {
	case emitter.KindPoint:
		return nil
	case emitter.KindBox:
		if c.HalfExtents.X < 0 || c.HalfExtents.Y < 0 || c.HalfExtents.Z < 0 {
			return fmt.Errorf("emitter: negative box half extents %+v", c.HalfExtents)
		}
		return nil
	case emitter.KindSphere:
		if c.Radius < 0 {
			return fmt.Errorf("emitter: negative sphere radius %v", c.Radius)
		}
		if c.DirectionRandomizer < 0 || c.DirectionRandomizer > 1 {
			return fmt.Errorf("emitter: direction randomizer %v outside [0, 1]", c.DirectionRandomizer)
		}
		return nil
	case emitter.KindCone:
		if c.Radius < 0 {
			return fmt.Errorf("emitter: negative cone radius %v", c.Radius)
		}
		if c.Angle <= 0 || c.Angle > math.Pi {
			return fmt.Errorf("emitter: cone angle %v outside (0, pi]", c.Angle)
		}
		return nil
	case emitter.KindCustom:
		return fmt.Errorf("emitter: custom shapes cannot be built from config")
	default:
		return fmt.Errorf("emitter: unknown type %q", c.Type)
	}
}

// BuildEmitter constructs the shape described by the config.
func BuildEmitter(c *EmitterConfig) (emitter.Shape, error) {
	if c == nil {
		return nil, fmt.Errorf("emitter: config is nil")
	}
	switch c.Type {
	case emitter.KindPoint:
		return emitter.NewPoint(), nil
	case emitter.KindBox:
		return emitter.NewBox(c.HalfExtents, c.Direction1, c.Direction2)
	case emitter.KindSphere:
		return emitter.NewSphere(c.Radius, c.DirectionRandomizer)
	case emitter.KindCone:
		return emitter.NewCone(c.Radius, c.Angle)
	default:
		return nil, c.Validate()
	}
}

// EmitterToConfig captures a shape's parameters for serialization.
func EmitterToConfig(s emitter.Shape) *EmitterConfig {
	if s == nil {
		return nil
	}
	cfg := &EmitterConfig{Type: s.Kind()}
	switch sh := s.(type) {
	case *emitter.Box:
		cfg.HalfExtents = sh.HalfExtents()
		cfg.Direction1, cfg.Direction2 = sh.Directions()
	case *emitter.Sphere:
		cfg.Radius = sh.Radius()
		cfg.DirectionRandomizer = sh.DirectionRandomizer()
	case *emitter.Cone:
		cfg.Radius = sh.Radius()
		cfg.Angle = sh.Angle()
	}
	return cfg
}
