package render

import (
	"image/color"
	"testing"

	"entropy/internal/sims/entropy"
)

func TestFillPaletteRGBAUsesFallback(t *testing.T) {
	palette := []color.RGBA{{}, {R: 1, G: 2, B: 3, A: 255}}
	fallback := color.RGBA{R: 9, G: 9, B: 9, A: 255}
	cells := []uint8{0, 1, 5}
	buf := make([]byte, 4*len(cells))

	FillPaletteRGBA(buf, cells, palette, fallback)

	want := []byte{0, 0, 0, 0, 1, 2, 3, 255, 9, 9, 9, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, buf[i], want[i])
		}
	}
}

func TestFrameImageMapsMaterials(t *testing.T) {
	f := entropy.Frame{
		W:     3,
		H:     1,
		Cells: []entropy.Material{entropy.Empty, entropy.Data, entropy.Material(42)},
	}
	img := FrameImage(f, entropy.Palette())
	if got := img.RGBAAt(0, 0); got.A != 0 {
		t.Fatalf("Empty should be transparent, got %v", got)
	}
	if got := img.RGBAAt(1, 0); got != entropy.Data.Color() {
		t.Fatalf("Data colour mismatch: %v", got)
	}
	if got := img.RGBAAt(2, 0); got != entropy.FallbackColor {
		t.Fatalf("unknown code should render fallback, got %v", got)
	}
}

func TestScaledFrameImage(t *testing.T) {
	f := entropy.Frame{W: 2, H: 1, Cells: []entropy.Material{entropy.Empty, entropy.Cache}}
	bg := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	img := ScaledFrameImage(f, entropy.Palette(), 3, bg)
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if got := img.RGBAAt(2, 2); got != bg {
		t.Fatalf("Empty should show background, got %v", got)
	}
	if got := img.RGBAAt(5, 0); got != entropy.Cache.Color() {
		t.Fatalf("Cache colour mismatch: %v", got)
	}
}
