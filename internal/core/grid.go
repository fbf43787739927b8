package core

import "math"

// Grid stores a 2D grid of byte-sized cell values in row-major order.
type Grid[T ~uint8] struct {
	W, H int
	data []T
}

// NewGrid allocates a zeroed grid with the given dimensions. Callers are
// expected to validate the dimensions first; non-positive sizes, or sizes
// whose product overflows, yield an empty grid.
func NewGrid[T ~uint8](w, h int) *Grid[T] {
	if w <= 0 || h <= 0 || w > math.MaxInt/h {
		return &Grid[T]{}
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the value at (x, y). The coordinates must be in bounds.
func (g *Grid[T]) At(x, y int) T { return g.data[y*g.W+x] }

// Set writes v at (x, y). Out-of-bounds writes are ignored.
func (g *Grid[T]) Set(x, y int, v T) {
	if !g.InBounds(x, y) {
		return
	}
	g.data[y*g.W+x] = v
}

// Clone returns a copy of the cell values that shares no memory with g.
func (g *Grid[T]) Clone() []T {
	out := make([]T, len(g.data))
	copy(out, g.data)
	return out
}

// Clear fills the grid with zeros.
func (g *Grid[T]) Clear() {
	clear(g.data)
}
