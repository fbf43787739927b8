//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Overlay previews the brush footprint under the cursor.
type Overlay struct {
	scale   int
	visible bool
	cells   []image.Point
	tint    color.RGBA
	w, h    int
	pixel   *ebiten.Image
}

// NewOverlay constructs an overlay for a grid drawn at scale.
func NewOverlay(scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update positions the brush at grid cell (cx, cy) on a w*h grid. A false
// visible hides the preview.
func (o *Overlay) Update(cx, cy, radius, w, h int, tint color.RGBA, visible bool) {
	o.visible = visible
	o.w, o.h = w, h
	o.tint = tint
	if !visible {
		return
	}
	o.cells = BrushCells(cx, cy, radius)
}

// Draw renders the preview onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.visible {
		return
	}
	tint := color.NRGBA{R: o.tint.R, G: o.tint.G, B: o.tint.B, A: 110}
	s := float64(o.scale)
	for _, p := range o.cells {
		if p.X < 0 || p.Y < 0 || p.X >= o.w || p.Y >= o.h {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(float64(p.X)*s, float64(p.Y)*s)
		op.ColorScale.ScaleWithColor(tint)
		screen.DrawImage(o.pixel, op)
	}
}
