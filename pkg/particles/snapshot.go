package particles

// BlendMode tags how a rendering backend should composite the system's
// particles. The core never interprets it beyond carrying it into the
// snapshot.
type BlendMode int

const (
	// BlendStandard is ordinary alpha blending.
	BlendStandard BlendMode = iota
	// BlendAdditive adds source onto destination, used for glow effects.
	BlendAdditive
)

// String returns the configuration name of the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendAdditive:
		return "additive"
	default:
		return "standard"
	}
}

// Texture is the opaque material handle bound to a system. The core only
// carries it for blend-mode tagging and optional disposal; it never reads
// or mutates the underlying resource.
type Texture interface {
	Dispose()
}

// Snapshot field offsets within one particle record of Data.
const (
	SnapX = iota
	SnapY
	SnapZ
	SnapSize
	SnapScaleX
	SnapScaleY
	SnapRotation
	SnapR
	SnapG
	SnapB
	SnapA

	// SnapshotStride is the number of float32 values per particle.
	SnapshotStride
)

// RenderSnapshot is the backend-agnostic draw buffer produced by Render.
// Data holds SnapshotStride float32 values per alive particle in iteration
// order. The buffer is reused across frames; it is valid until the next
// Render call on the owning system.
type RenderSnapshot struct {
	Data  []float32
	Count int
	Blend BlendMode
}

func newRenderSnapshot(capacity int) *RenderSnapshot {
	return &RenderSnapshot{Data: make([]float32, 0, capacity*SnapshotStride)}
}

// pack rewrites the snapshot from the pool's current alive set.
func (s *RenderSnapshot) pack(pool *Pool, blend BlendMode) int {
	s.Data = s.Data[:0]
	s.Blend = blend
	pool.ForEachAlive(func(pt *Particle) {
		c := pt.Color.Clamped()
		s.Data = append(s.Data,
			float32(pt.Position.X), float32(pt.Position.Y), float32(pt.Position.Z),
			float32(pt.Size), float32(pt.ScaleX), float32(pt.ScaleY),
			float32(pt.Rotation),
			float32(c.R), float32(c.G), float32(c.B), float32(c.A),
		)
	})
	s.Count = pool.Alive()
	return s.Count
}
