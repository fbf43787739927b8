//go:build ebiten

package app

import (
	"errors"
	"fmt"
	"image/color"

	log "github.com/sirupsen/logrus"

	"entropy/internal/core"
	"entropy/internal/driver"
	"entropy/internal/render"
	"entropy/internal/sims/entropy"
	"entropy/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var background = color.RGBA{R: 10, G: 10, B: 14, A: 255}

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
}

// Game adapts a running driver to the ebiten.Game interface. It never touches
// the engine directly: input becomes driver commands and drawing uses the
// latest published frame.
type Game struct {
	drv     *driver.Driver
	log     log.FieldLogger
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	brush      Brush
	scale      int
	frame      entropy.Frame
	statusRate *core.FixedStep
}

// statusHz bounds how often the HUD status lines are rebuilt.
const statusHz = 10

// New constructs a Game for drv. The driver must already be running.
func New(drv *driver.Driver, cfg *Config, logger log.FieldLogger) *Game {
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	return &Game{
		drv:     drv,
		log:     logger.WithField("component", "app"),
		painter: render.NewGridPainter(cfg.Width, cfg.Height, entropy.Palette()),
		hud:     ui.NewHUD(drv, cfg.HUDWidth),
		overlay: ui.NewOverlay(scale),
		brush:   NewBrush(cfg.Brush, cfg.AntiGravity),
		scale:   scale,
		frame:   entropy.Frame{W: cfg.Width, H: cfg.Height},

		statusRate: core.NewFixedStep(statusHz),
	}
}

// Update handles input and pulls the newest frame from the driver.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	select {
	case f := <-g.drv.Frames():
		g.frame = f
		g.painter.Resize(f.W, f.H)
		g.painter.Upload(f)
	case <-g.drv.Done():
		return ebiten.Termination
	default:
	}

	if err := g.handleKeys(); err != nil {
		return g.commandError(err)
	}

	gridW := g.frame.W * g.scale
	if g.hud.Update(gridW) {
		g.overlay.Update(0, 0, 0, 0, 0, color.RGBA{}, false)
	} else if err := g.handleMouse(); err != nil {
		return g.commandError(err)
	}

	if g.statusRate.ShouldStep() {
		g.hud.SetStatus(g.status())
	}
	return nil
}

func (g *Game) handleKeys() error {
	for d, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) && g.brush.SelectDigit(d) {
			g.log.WithField("material", g.brush.Material).Debug("brush material")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.brush.Select(entropy.Empty)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.brush.Resize(g.brush.Radius - 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.brush.Resize(g.brush.Radius + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := g.drv.Reset(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		var err error
		if g.drv.Paused() {
			err = g.drv.Resume()
		} else {
			err = g.drv.Pause()
		}
		if err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := g.drv.StepOnce(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) handleMouse() error {
	mx, my := ebiten.CursorPosition()
	x, y, ok := ScreenToGrid(mx, my, g.scale, g.frame.W, g.frame.H)
	g.overlay.Update(x, y, g.brush.Radius, g.frame.W, g.frame.H, g.brush.Material.Color(), ok)
	if !ok {
		return nil
	}
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		return g.drv.Paint(x, y, g.brush.Radius, g.brush.Material)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		return g.drv.Paint(x, y, g.brush.Radius, entropy.Empty)
	}
	return nil
}

func (g *Game) commandError(err error) error {
	if errors.Is(err, driver.ErrStopped) {
		return ebiten.Termination
	}
	return err
}

func (g *Game) status() []ui.StatusLine {
	swatch := g.brush.Material.Color()
	state := "running"
	if g.drv.Paused() {
		state = "paused"
	}
	return []ui.StatusLine{
		{Label: "Material", Value: g.brush.Material.String(), Swatch: &swatch},
		{Label: "Brush", Value: fmt.Sprintf("r=%d", g.brush.Radius)},
		{Label: "Tick", Value: fmt.Sprintf("%d (%s)", g.frame.Tick, state)},
		{Label: "Cells", Value: fmt.Sprintf("%d", entropy.Census(g.frame.Cells).Occupied())},
	}
}

// Draw renders the latest frame, the brush preview and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.painter.Draw(screen, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.frame.W*g.scale, g.frame.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.frame.W*g.scale + g.hud.Width(), g.frame.H*g.scale
}

// WindowSize reports the initial window size for a grid of size s.
func (g *Game) WindowSize(s core.Size) (int, int) {
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
