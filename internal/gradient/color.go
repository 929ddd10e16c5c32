package gradient

import (
	"sort"

	"github.com/gonewx/ember/pkg/types"
)

// ColorKeyframe is a single color keyframe. When HasRange is set, the
// effective color is the channel-wise blend between Color and Color2 at the
// particle's roll factor.
type ColorKeyframe struct {
	Gradient float64
	Color    types.Color4
	Color2   types.Color4
	HasRange bool
}

func (k ColorKeyframe) resolve(roll float64) types.Color4 {
	if !k.HasRange {
		return k.Color
	}
	return types.LerpColor4(k.Color, k.Color2, roll)
}

// ColorTrack is the Color4 counterpart of Track. Same ordering, overwrite
// and windowing rules.
type ColorTrack struct {
	keys []ColorKeyframe
}

// Add inserts a color keyframe, overwriting any entry at the same gradient.
// Returns the track for chaining.
func (t *ColorTrack) Add(gradient float64, c types.Color4) *ColorTrack {
	return t.insert(ColorKeyframe{Gradient: gradient, Color: c})
}

// AddRange inserts a ranged color keyframe re-rolled per particle between
// c and c2. Returns the track for chaining.
func (t *ColorTrack) AddRange(gradient float64, c, c2 types.Color4) *ColorTrack {
	return t.insert(ColorKeyframe{Gradient: gradient, Color: c, Color2: c2, HasRange: true})
}

func (t *ColorTrack) insert(k ColorKeyframe) *ColorTrack {
	i := sort.Search(len(t.keys), func(i int) bool {
		return t.keys[i].Gradient >= k.Gradient
	})
	if i < len(t.keys) && t.keys[i].Gradient == k.Gradient {
		t.keys[i] = k
		return t
	}
	t.keys = append(t.keys, ColorKeyframe{})
	copy(t.keys[i+1:], t.keys[i:])
	t.keys[i] = k
	return t
}

// Remove deletes the keyframe with exactly the given gradient; no-op when
// absent.
func (t *ColorTrack) Remove(gradient float64) {
	i := sort.Search(len(t.keys), func(i int) bool {
		return t.keys[i].Gradient >= gradient
	})
	if i < len(t.keys) && t.keys[i].Gradient == gradient {
		t.keys = append(t.keys[:i], t.keys[i+1:]...)
	}
}

// Len returns the number of keyframes.
func (t *ColorTrack) Len() int { return len(t.keys) }

// Empty reports whether the track has no keyframes.
func (t *ColorTrack) Empty() bool { return len(t.keys) == 0 }

// Keys returns a copy of the ordered keyframe sequence, or nil when empty.
func (t *ColorTrack) Keys() []ColorKeyframe {
	if len(t.keys) == 0 {
		return nil
	}
	out := make([]ColorKeyframe, len(t.keys))
	copy(out, t.keys)
	return out
}

// Clone returns an independently mutable deep copy of the track.
func (t *ColorTrack) Clone() *ColorTrack {
	return &ColorTrack{keys: t.Keys()}
}

// WindowIndex mirrors Track.WindowIndex for color keyframes.
func (t *ColorTrack) WindowIndex(tn float64) int {
	n := len(t.keys)
	if n == 0 {
		return -1
	}
	if tn <= t.keys[0].Gradient || n == 1 {
		return 0
	}
	if tn >= t.keys[n-1].Gradient {
		return n - 2
	}
	i := sort.Search(n, func(i int) bool { return t.keys[i].Gradient > tn })
	return i - 1
}

// Sample returns the interpolated color at normalized lifetime tn,
// clamping outside the keyframe range exactly like Track.Sample.
func (t *ColorTrack) Sample(tn, roll float64) types.Color4 {
	n := len(t.keys)
	if n == 0 {
		return types.Color4{}
	}
	if tn <= t.keys[0].Gradient || n == 1 {
		return t.keys[0].resolve(roll)
	}
	if tn >= t.keys[n-1].Gradient {
		return t.keys[n-1].resolve(roll)
	}
	i := t.WindowIndex(tn)
	k0, k1 := t.keys[i], t.keys[i+1]
	span := k1.Gradient - k0.Gradient
	if span <= 0 {
		return k0.resolve(roll)
	}
	ratio := (tn - k0.Gradient) / span
	return types.LerpColor4(k0.resolve(roll), k1.resolve(roll), ratio)
}
