package ui

import (
	"image"
	"math"
	"strconv"

	"entropy/internal/core"
)

// nextValue returns the value one step in direction from current, clamped to
// the control's bounds, and whether it differs from current.
func nextValue(ctrl core.ParameterControl, current float64, direction int) (float64, bool) {
	if direction == 0 || ctrl.Type != core.ParamTypeFloat {
		return current, false
	}
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	target := ctrl.Clamp(current + float64(direction)*step)
	// Snap to the step grid so repeated clicks do not accumulate float drift.
	target = math.Round(target/step) * step
	target = ctrl.Clamp(target)
	if math.Abs(target-current) < 1e-9 {
		return current, false
	}
	return target, true
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	var precision int
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	default:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

// BrushCells returns the grid cells covered by a brush of radius r at
// (cx, cy), using the same disc as painting.
func BrushCells(cx, cy, r int) []image.Point {
	if r < 0 {
		return nil
	}
	out := make([]image.Point, 0, (2*r+1)*(2*r+1))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				out = append(out, image.Pt(cx+dx, cy+dy))
			}
		}
	}
	return out
}
