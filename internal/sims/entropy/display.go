package entropy

import "image/color"

// FallbackColor is drawn for codes outside the palette.
var FallbackColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

var entropyPalette = [NumMaterials]color.RGBA{
	Empty:    {},
	Data:     {R: 0x06, G: 0xb6, B: 0xd4, A: 0xff},
	Cache:    {R: 0x10, G: 0xb9, B: 0x81, A: 0xff},
	Virus:    {R: 0xd9, G: 0x46, B: 0xef, A: 0xff},
	Process:  {R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff},
	Firewall: {R: 0xff, G: 0x55, B: 0x00, A: 0xff},
	AntiData: {R: 0xff, G: 0x00, B: 0xff, A: 0xff},
}

// Palette returns the render colour of every material indexed by code. Empty
// is fully transparent.
func Palette() []color.RGBA {
	out := make([]color.RGBA, NumMaterials)
	copy(out, entropyPalette[:])
	return out
}

// Color returns the render colour of m, or FallbackColor for unknown codes.
func (m Material) Color() color.RGBA {
	if !m.Valid() {
		return FallbackColor
	}
	return entropyPalette[m]
}
