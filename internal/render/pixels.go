package render

import (
	"image"
	"image/color"

	"entropy/internal/sims/entropy"
)

// FillPaletteRGBA converts cell codes into RGBA pixels in buf using a palette
// indexed by code. Codes past the end of the palette are drawn with fallback.
// buf must hold 4*len(cells) bytes.
func FillPaletteRGBA[T ~uint8](buf []byte, cells []T, palette []color.RGBA, fallback color.RGBA) {
	for i, c := range cells {
		col := fallback
		if idx := int(c); idx < len(palette) {
			col = palette[idx]
		}
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// FrameImage renders a frame at one pixel per cell. Empty cells stay fully
// transparent.
func FrameImage(f entropy.Frame, palette []color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.W, f.H))
	if len(f.Cells) != f.W*f.H {
		return img
	}
	FillPaletteRGBA(img.Pix, f.Cells, palette, entropy.FallbackColor)
	return img
}

// ScaledFrameImage renders a frame with scale×scale pixels per cell over an
// opaque background, for encoders without alpha support.
func ScaledFrameImage(f entropy.Frame, palette []color.RGBA, scale int, background color.RGBA) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, f.W*scale, f.H*scale))
	if len(f.Cells) != f.W*f.H {
		return img
	}
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			col := background
			c := int(f.Cells[y*f.W+x])
			switch {
			case c >= len(palette):
				col = entropy.FallbackColor
			case palette[c].A != 0:
				col = palette[c]
			}
			for sy := 0; sy < scale; sy++ {
				row := (y*scale+sy)*img.Stride + x*scale*4
				for sx := 0; sx < scale; sx++ {
					base := row + sx*4
					img.Pix[base+0] = col.R
					img.Pix[base+1] = col.G
					img.Pix[base+2] = col.B
					img.Pix[base+3] = 0xff
				}
			}
		}
	}
	return img
}
