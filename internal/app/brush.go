package app

import "entropy/internal/sims/entropy"

const (
	// DefaultBrushRadius is the starting paint radius in cells.
	DefaultBrushRadius = 3
	// MaxBrushRadius bounds the paint radius.
	MaxBrushRadius = 32
)

// Brush is the current paint tool.
type Brush struct {
	Material    entropy.Material
	Radius      int
	AntiGravity bool
}

// NewBrush returns a Data brush of the given radius.
func NewBrush(radius int, antiGravity bool) Brush {
	b := Brush{Material: entropy.Data, AntiGravity: antiGravity}
	b.Resize(radius)
	return b
}

// Select switches to m if it can be painted. It reports whether the brush
// changed material.
func (b *Brush) Select(m entropy.Material) bool {
	if !m.Valid() || (m.AntiGravity() && !b.AntiGravity) || m == b.Material {
		return false
	}
	b.Material = m
	return true
}

// SelectDigit maps 0 to the eraser and 1..6 to material codes.
func (b *Brush) SelectDigit(d int) bool {
	if d < 0 || d >= entropy.NumMaterials {
		return false
	}
	return b.Select(entropy.Material(d))
}

// Resize sets the radius, clamped to [0, MaxBrushRadius].
func (b *Brush) Resize(r int) {
	b.Radius = min(max(r, 0), MaxBrushRadius)
}

// ScreenToGrid maps a cursor position to a grid cell at scale. ok is false
// outside a w*h grid.
func ScreenToGrid(mx, my, scale, w, h int) (x, y int, ok bool) {
	if scale <= 0 {
		scale = 1
	}
	if mx < 0 || my < 0 {
		return 0, 0, false
	}
	x, y = mx/scale, my/scale
	return x, y, x < w && y < h
}
