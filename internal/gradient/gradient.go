// Package gradient implements ordered keyframe tracks over a particle's
// normalized lifetime. A track maps lifetime fractions in [0, 1] to scalar
// or color values and answers clamped, linearly interpolated samples.
//
// A keyframe may carry a second value, turning it into a range. The
// effective value of a ranged keyframe is a random pick inside the range,
// re-rolled once per particle when the particle enters the keyframe window
// (never per frame). The roll itself is owned by the caller so the track
// stays stateless and a seeded random source keeps sampling reproducible.
package gradient

import "sort"

// Keyframe is a single scalar keyframe.
// When HasRange is set, the effective value is Value + roll*(Value2-Value).
type Keyframe struct {
	Gradient float64
	Value    float64
	Value2   float64
	HasRange bool
}

// resolve returns the keyframe's effective value for a given roll in [0, 1).
func (k Keyframe) resolve(roll float64) float64 {
	if !k.HasRange {
		return k.Value
	}
	return k.Value + roll*(k.Value2-k.Value)
}

// Track is an ordered set of scalar keyframes. The zero value is an empty,
// usable track. Keyframes are kept sorted by Gradient; inserting at an
// already-present gradient overwrites the prior entry.
type Track struct {
	keys []Keyframe
}

// Add inserts a keyframe, keeping the track sorted. A duplicate gradient
// overwrites the existing entry. Returns the track for chaining.
func (t *Track) Add(gradient, value float64) *Track {
	return t.insert(Keyframe{Gradient: gradient, Value: value})
}

// AddRange inserts a ranged keyframe whose effective value is re-rolled
// per particle within [value, value2]. Returns the track for chaining.
func (t *Track) AddRange(gradient, value, value2 float64) *Track {
	return t.insert(Keyframe{Gradient: gradient, Value: value, Value2: value2, HasRange: true})
}

func (t *Track) insert(k Keyframe) *Track {
	i := sort.Search(len(t.keys), func(i int) bool {
		return t.keys[i].Gradient >= k.Gradient
	})
	if i < len(t.keys) && t.keys[i].Gradient == k.Gradient {
		t.keys[i] = k
		return t
	}
	t.keys = append(t.keys, Keyframe{})
	copy(t.keys[i+1:], t.keys[i:])
	t.keys[i] = k
	return t
}

// Remove deletes the keyframe with exactly the given gradient.
// Removing an absent gradient is a no-op, not an error.
func (t *Track) Remove(gradient float64) {
	i := sort.Search(len(t.keys), func(i int) bool {
		return t.keys[i].Gradient >= gradient
	})
	if i < len(t.keys) && t.keys[i].Gradient == gradient {
		t.keys = append(t.keys[:i], t.keys[i+1:]...)
	}
}

// Len returns the number of keyframes.
func (t *Track) Len() int { return len(t.keys) }

// Empty reports whether the track has no keyframes.
func (t *Track) Empty() bool { return len(t.keys) == 0 }

// Keys returns a copy of the ordered keyframe sequence, or nil when empty.
func (t *Track) Keys() []Keyframe {
	if len(t.keys) == 0 {
		return nil
	}
	out := make([]Keyframe, len(t.keys))
	copy(out, t.keys)
	return out
}

// Clone returns an independently mutable deep copy of the track.
func (t *Track) Clone() *Track {
	return &Track{keys: t.Keys()}
}

// WindowIndex returns the index of the keyframe window containing the
// normalized lifetime t. Samples before the first keyframe fall into
// window 0; samples at or past the last keyframe stay in the final
// interpolation span, so a roll carried across the clamp boundary is kept
// instead of re-rolled. Returns -1 for an empty track. Callers re-roll
// their range factor when the window index changes between frames.
func (t *Track) WindowIndex(tn float64) int {
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
	// Index of the first keyframe strictly past tn; the window is the one
	// before it.
	i := sort.Search(n, func(i int) bool { return t.keys[i].Gradient > tn })
	return i - 1
}

// Sample returns the track value at normalized lifetime tn, linearly
// interpolated between the two adjacent keyframes. Before the first
// keyframe the first value is returned, past the last keyframe the last.
// roll in [0, 1) resolves ranged keyframes; it is ignored for plain ones.
func (t *Track) Sample(tn, roll float64) float64 {
	n := len(t.keys)
	if n == 0 {
		return 0
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
	v0, v1 := k0.resolve(roll), k1.resolve(roll)
	return v0 + ratio*(v1-v0)
}
