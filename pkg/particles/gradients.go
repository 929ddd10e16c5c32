package particles

import (
	"github.com/gonewx/ember/internal/gradient"
	"github.com/gonewx/ember/pkg/types"
)

// Keyframe and ColorKeyframe are the entries returned by the gradient
// getters, re-exported so callers outside the module can name them.
type (
	Keyframe      = gradient.Keyframe
	ColorKeyframe = gradient.ColorKeyframe
)

// Gradient mutators are chainable and follow one policy throughout:
// inserting at an already-present lifetime fraction overwrites the prior
// keyframe, and removing an absent fraction is a no-op. An empty track is
// not an error; sampling falls back to the static at-birth ranges.

// AddColorGradient adds a color keyframe at the given lifetime fraction.
// An optional second color turns the keyframe into a range, re-rolled once
// per particle when it enters the keyframe window.
func (s *System) AddColorGradient(gradientAt float64, c types.Color4, second ...types.Color4) *System {
	if s.colorTrack == nil {
		s.colorTrack = &gradient.ColorTrack{}
	}
	if len(second) > 0 {
		s.colorTrack.AddRange(gradientAt, c, second[0])
	} else {
		s.colorTrack.Add(gradientAt, c)
	}
	return s
}

// RemoveColorGradient removes the color keyframe at exactly the given
// fraction; absent fractions are ignored.
func (s *System) RemoveColorGradient(gradientAt float64) *System {
	if s.colorTrack != nil {
		s.colorTrack.Remove(gradientAt)
	}
	return s
}

// GetColorGradients returns the ordered color keyframes, or nil when unset.
func (s *System) GetColorGradients() []ColorKeyframe {
	if s.colorTrack == nil {
		return nil
	}
	return s.colorTrack.Keys()
}

// AddSizeGradient adds a size keyframe at the given lifetime fraction,
// optionally ranged.
func (s *System) AddSizeGradient(gradientAt, value float64, second ...float64) *System {
	if s.sizeTrack == nil {
		s.sizeTrack = &gradient.Track{}
	}
	if len(second) > 0 {
		s.sizeTrack.AddRange(gradientAt, value, second[0])
	} else {
		s.sizeTrack.Add(gradientAt, value)
	}
	return s
}

// RemoveSizeGradient removes the size keyframe at exactly the given
// fraction; absent fractions are ignored.
func (s *System) RemoveSizeGradient(gradientAt float64) *System {
	if s.sizeTrack != nil {
		s.sizeTrack.Remove(gradientAt)
	}
	return s
}

// GetSizeGradients returns the ordered size keyframes, or nil when unset.
func (s *System) GetSizeGradients() []Keyframe {
	if s.sizeTrack == nil {
		return nil
	}
	return s.sizeTrack.Keys()
}

// AddAngularSpeedGradient adds an angular-speed keyframe at the given
// lifetime fraction, optionally ranged.
func (s *System) AddAngularSpeedGradient(gradientAt, value float64, second ...float64) *System {
	if s.angTrack == nil {
		s.angTrack = &gradient.Track{}
	}
	if len(second) > 0 {
		s.angTrack.AddRange(gradientAt, value, second[0])
	} else {
		s.angTrack.Add(gradientAt, value)
	}
	return s
}

// RemoveAngularSpeedGradient removes the angular-speed keyframe at exactly
// the given fraction; absent fractions are ignored.
func (s *System) RemoveAngularSpeedGradient(gradientAt float64) *System {
	if s.angTrack != nil {
		s.angTrack.Remove(gradientAt)
	}
	return s
}

// GetAngularSpeedGradients returns the ordered angular-speed keyframes, or
// nil when unset.
func (s *System) GetAngularSpeedGradients() []Keyframe {
	if s.angTrack == nil {
		return nil
	}
	return s.angTrack.Keys()
}
