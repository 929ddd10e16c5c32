package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/ember/pkg/particles"
)

// View maps simulation coordinates to screen coordinates. Simulation space
// is Y-up; the screen is Y-down, so Y is flipped around the origin.
type View struct {
	OriginX float64 // screen X of the simulation origin
	OriginY float64 // screen Y of the simulation origin
	Scale   float64 // screen pixels per simulation unit
}

// additiveBlend accumulates source onto destination, used for glow effects
// such as fire and explosions.
var additiveBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// maxQuadsPerBatch bounds one DrawTriangles submission so every quad index
// stays inside the uint16 index space (4 vertices per quad).
const maxQuadsPerBatch = math.MaxUint16 / 4

// Renderer submits render snapshots as batched triangle draws, flushing a
// batch whenever its vertex count would outgrow the uint16 index space.
// Vertex and index buffers are reused across frames.
type Renderer struct {
	vertices []ebiten.Vertex
	indices  []uint16

	// drawTriangles submits one batch; swapped out in tests.
	drawTriangles func(dst *ebiten.Image, vs []ebiten.Vertex, is []uint16, src *ebiten.Image, op *ebiten.DrawTrianglesOptions)
}

// NewRenderer returns a renderer with buffers preallocated for about a
// thousand particles.
func NewRenderer() *Renderer {
	return &Renderer{
		vertices: make([]ebiten.Vertex, 0, 4096),
		indices:  make([]uint16, 0, 6144),
		drawTriangles: func(dst *ebiten.Image, vs []ebiten.Vertex, is []uint16, src *ebiten.Image, op *ebiten.DrawTrianglesOptions) {
			dst.DrawTriangles(vs, is, src, op)
		},
	}
}

// Draw renders every particle in the snapshot as a rotated, center-anchored
// quad of the system's texture. Systems drawn later end up on top; callers
// wanting glow on top should draw standard-blend systems before additive
// ones, the usual layering for fire over smoke.
func (r *Renderer) Draw(screen *ebiten.Image, snap *particles.RenderSnapshot, tex *Texture, view View) {
	if snap == nil || snap.Count == 0 || tex == nil || tex.Image() == nil {
		return
	}

	img := tex.Image()
	bounds := img.Bounds()
	srcX0 := float32(bounds.Min.X)
	srcY0 := float32(bounds.Min.Y)
	srcX1 := float32(bounds.Max.X)
	srcY1 := float32(bounds.Max.Y)

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	if snap.Blend == particles.BlendAdditive {
		op.Blend = additiveBlend
	}

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]

	for i := 0; i < snap.Count; i++ {
		rec := snap.Data[i*particles.SnapshotStride : (i+1)*particles.SnapshotStride]
		verts := buildVertices(rec, view, srcX0, srcY0, srcX1, srcY1)

		base := uint16(len(r.vertices))
		r.vertices = append(r.vertices, verts[0], verts[1], verts[2], verts[3])
		r.indices = append(r.indices,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
		if len(r.vertices) == maxQuadsPerBatch*4 {
			r.drawTriangles(screen, r.vertices, r.indices, img, op)
			r.vertices = r.vertices[:0]
			r.indices = r.indices[:0]
		}
	}
	if len(r.vertices) > 0 {
		r.drawTriangles(screen, r.vertices, r.indices, img, op)
	}
}

// buildVertices produces the four corner vertices of one particle quad:
// top-left, top-right, bottom-left, bottom-right. The quad is SnapSize
// simulation units across, stretched per axis by SnapScaleX/SnapScaleY,
// rotated by SnapRotation radians, centered on the particle position.
func buildVertices(rec []float32, view View, srcX0, srcY0, srcX1, srcY1 float32) [4]ebiten.Vertex {
	cx := view.OriginX + float64(rec[particles.SnapX])*view.Scale
	cy := view.OriginY - float64(rec[particles.SnapY])*view.Scale

	halfW := float64(rec[particles.SnapSize]) * float64(rec[particles.SnapScaleX]) * view.Scale / 2
	halfH := float64(rec[particles.SnapSize]) * float64(rec[particles.SnapScaleY]) * view.Scale / 2

	corners := [4][2]float64{
		{-halfW, -halfH},
		{halfW, -halfH},
		{-halfW, halfH},
		{halfW, halfH},
	}

	sin, cos := math.Sincos(float64(rec[particles.SnapRotation]))

	srcX := [4]float32{srcX0, srcX1, srcX0, srcX1}
	srcY := [4]float32{srcY0, srcY0, srcY1, srcY1}

	var verts [4]ebiten.Vertex
	for i, corner := range corners {
		x := corner[0]*cos - corner[1]*sin
		y := corner[0]*sin + corner[1]*cos
		verts[i] = ebiten.Vertex{
			DstX:   float32(cx + x),
			DstY:   float32(cy + y),
			SrcX:   srcX[i],
			SrcY:   srcY[i],
			ColorR: rec[particles.SnapR],
			ColorG: rec[particles.SnapG],
			ColorB: rec[particles.SnapB],
			ColorA: rec[particles.SnapA],
		}
	}
	return verts
}
