//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"entropy/internal/sims/entropy"
)

// GridPainter keeps a single RGBA image in sync with the latest frame.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette []color.RGBA
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int, palette []color.RGBA) *GridPainter {
	gp := &GridPainter{palette: palette}
	gp.Resize(w, h)
	return gp
}

// Resize reallocates the painter image when the grid dimensions change.
func (gp *GridPainter) Resize(w, h int) {
	if w == gp.w && h == gp.h && gp.img != nil {
		return
	}
	if gp.img != nil {
		gp.img.Dispose()
	}
	gp.w, gp.h = w, h
	gp.buf = make([]byte, 4*w*h)
	gp.img = ebiten.NewImage(w, h)
}

// Upload converts a frame into the painter image. Frames of the wrong size
// are ignored.
func (gp *GridPainter) Upload(f entropy.Frame) {
	if f.W != gp.w || f.H != gp.h || len(f.Cells) != gp.w*gp.h {
		return
	}
	FillPaletteRGBA(gp.buf, f.Cells, gp.palette, entropy.FallbackColor)
	gp.img.WritePixels(gp.buf)
}

// Draw blits the painter image onto dst at the given scale.
func (gp *GridPainter) Draw(dst *ebiten.Image, scale int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
