package particles

import (
	"testing"
)

// TestRender_PacksAliveParticles verifies Render returns the alive count
// and packs one stride of data per particle with clamped colors.
func TestRender_PacksAliveParticles(t *testing.T) {
	s := newTestSystem(t, 16)
	s.MinLifeTime = 100
	s.MaxLifeTime = 100
	s.EmitRate = 4
	s.BlendMode = BlendAdditive
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	s.Animate(1)

	got := s.Render()
	if got != 4 {
		t.Fatalf("Render() = %d, want 4", got)
	}

	snap := s.Snapshot()
	if snap.Count != 4 {
		t.Errorf("snapshot Count = %d, want 4", snap.Count)
	}
	if len(snap.Data) != 4*SnapshotStride {
		t.Errorf("snapshot Data length = %d, want %d", len(snap.Data), 4*SnapshotStride)
	}
	if snap.Blend != BlendAdditive {
		t.Errorf("snapshot Blend = %v, want additive", snap.Blend)
	}

	for i := 0; i < snap.Count; i++ {
		rec := snap.Data[i*SnapshotStride:]
		for _, ch := range []int{SnapR, SnapG, SnapB, SnapA} {
			if rec[ch] < 0 || rec[ch] > 1 {
				t.Fatalf("particle %d channel %d = %v outside [0, 1]", i, ch, rec[ch])
			}
		}
	}
}

// TestRender_BufferReusedAcrossFrames verifies the snapshot buffer does not
// grow new backing storage frame to frame.
func TestRender_BufferReusedAcrossFrames(t *testing.T) {
	s := newTestSystem(t, 32)
	s.MinLifeTime = 100
	s.MaxLifeTime = 100
	s.EmitRate = 8
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	s.Animate(1)
	s.Render()
	first := &s.Snapshot().Data[0]

	s.Animate(1)
	s.Render()
	second := &s.Snapshot().Data[0]

	if first != second {
		t.Error("snapshot backing array reallocated between frames")
	}
}
