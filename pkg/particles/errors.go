package particles

import "errors"

// Configuration errors. These are the only fatal conditions in the engine:
// they surface at construction or Start, never mid-simulation. Runtime
// degradations (pool exhaustion, empty gradient tracks, not-ready calls)
// are absorbed silently per the non-fatal failure policy.
var (
	// ErrInvalidCapacity rejects pools and systems sized at zero or less.
	ErrInvalidCapacity = errors.New("particles: capacity must be positive")
	// ErrInvalidRange rejects inverted min/max configuration ranges.
	ErrInvalidRange = errors.New("particles: inverted min/max range")
	// ErrMissingEmitter rejects Start on a system without an emitter shape.
	ErrMissingEmitter = errors.New("particles: emitter shape not configured")
	// ErrDisposed rejects Start on a disposed system.
	ErrDisposed = errors.New("particles: system is disposed")
)
