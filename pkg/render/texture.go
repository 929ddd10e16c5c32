// Package render draws particle system snapshots onto an Ebiten screen.
//
// The simulation side never touches Ebiten: systems hold an opaque texture
// handle and produce packed float32 snapshots. This package owns the other
// half — the ebiten.Image behind the handle and the batched triangle
// submission that turns a snapshot into pixels.
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture wraps an ebiten.Image behind the opaque handle the simulation
// holds. Dispose releases the GPU-side image.
type Texture struct {
	img *ebiten.Image
}

// NewTexture wraps an existing image. The texture takes ownership: Dispose
// deallocates it.
func NewTexture(img *ebiten.Image) *Texture {
	return &Texture{img: img}
}

// Image returns the underlying ebiten image, or nil after Dispose.
func (t *Texture) Image() *ebiten.Image {
	return t.img
}

// Dispose releases the underlying image. Safe to call more than once.
func (t *Texture) Dispose() {
	if t.img != nil {
		t.img.Deallocate()
		t.img = nil
	}
}

// NewRadialTexture builds a size x size sprite with the given tint fading
// radially from opaque at the center to transparent at the edge. This is the
// usual particle sprite when no artwork is available.
func NewRadialTexture(size int, tint color.RGBA) *Texture {
	if size < 2 {
		size = 2
	}
	img := ebiten.NewImage(size, size)

	pix := make([]byte, size*size*4)
	center := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) - center) / center
			dy := (float64(y) - center) / center
			d := math.Sqrt(dx*dx + dy*dy)
			fade := 1 - d
			if fade < 0 {
				fade = 0
			}
			// Quadratic falloff reads as a soft glow.
			fade *= fade

			i := (y*size + x) * 4
			// Premultiplied alpha, as WritePixels expects.
			pix[i+0] = byte(float64(tint.R) * fade)
			pix[i+1] = byte(float64(tint.G) * fade)
			pix[i+2] = byte(float64(tint.B) * fade)
			pix[i+3] = byte(float64(tint.A) * fade)
		}
	}
	img.WritePixels(pix)
	return &Texture{img: img}
}
