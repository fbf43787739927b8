//go:build !ebiten

package ui

import (
	"image/color"

	"entropy/internal/core"
)

// Source is what the HUD reads and adjusts.
type Source interface {
	core.ParameterProvider
	core.ParameterControlsProvider
	core.FloatParameterSetter
}

// StatusLine is a label/value pair shown above the controls.
type StatusLine struct {
	Label  string
	Value  string
	Swatch *color.RGBA
}

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(Source, int) *HUD { return nil }

// Width is always zero in the headless build.
func (h *HUD) Width() int { return 0 }

// SetStatus is a no-op in the headless build.
func (h *HUD) SetStatus([]StatusLine) {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) bool { return false }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
