// Package term renders driver frames in a terminal and turns keyboard and
// mouse input into driver commands.
package term

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"entropy/internal/app"
	"entropy/internal/core"
	"entropy/internal/driver"
	"entropy/internal/sims/entropy"
)

// Front is a terminal front end for a running driver. Each grid cell is two
// columns wide so cells look roughly square.
type Front struct {
	drv    *driver.Driver
	screen tcell.Screen
	log    log.FieldLogger
	fps    int

	brush  app.Brush
	frame  entropy.Frame
	styles []tcell.Style
	dirty  bool
}

// New builds a front end drawing to an initialised screen at most fps times
// per second.
func New(drv *driver.Driver, screen tcell.Screen, brush app.Brush, fps int, logger log.FieldLogger) *Front {
	palette := entropy.Palette()
	styles := make([]tcell.Style, len(palette))
	for i, c := range palette {
		if i == int(entropy.Empty) {
			styles[i] = tcell.StyleDefault.Background(tcell.ColorBlack)
			continue
		}
		styles[i] = tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	screen.EnableMouse()
	return &Front{
		drv:    drv,
		screen: screen,
		log:    logger.WithField("component", "term"),
		fps:    fps,
		brush:  brush,
		styles: styles,
	}
}

// Run processes input and redraws until ctx is cancelled, the user quits or
// the driver stops.
func (f *Front) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(core.TickInterval(f.fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-f.drv.Done():
			return nil
		case fr := <-f.drv.Frames():
			f.frame = fr
			f.dirty = true
		case ev := <-events:
			done, err := f.Handle(ev)
			if errors.Is(err, driver.ErrStopped) || done {
				return nil
			}
			if err != nil {
				return err
			}
		case <-ticker.C:
			if f.dirty {
				f.Draw()
				f.dirty = false
			}
		}
	}
}

// Handle applies one input event. done reports a quit request.
func (f *Front) Handle(ev tcell.Event) (done bool, err error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		f.screen.Sync()
		f.dirty = true
	case *tcell.EventKey:
		return f.handleKey(ev)
	case *tcell.EventMouse:
		return false, f.handleMouse(ev)
	}
	return false, nil
}

func (f *Front) handleKey(ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		f.brush.Select(entropy.Empty)
		f.dirty = true
		return false, nil
	case tcell.KeyRune:
	default:
		return false, nil
	}

	f.dirty = true
	r := ev.Rune()
	switch {
	case r == 'q' || r == 'Q':
		return true, nil
	case r >= '0' && r <= '9':
		if f.brush.SelectDigit(int(r - '0')) {
			f.log.WithField("material", f.brush.Material).Debug("brush material")
		}
	case r == '[':
		f.brush.Resize(f.brush.Radius - 1)
	case r == ']':
		f.brush.Resize(f.brush.Radius + 1)
	case r == 'c' || r == 'C':
		return false, f.drv.Reset()
	case r == ' ':
		if f.drv.Paused() {
			return false, f.drv.Resume()
		}
		return false, f.drv.Pause()
	case r == 'n' || r == 'N':
		return false, f.drv.StepOnce()
	}
	return false, nil
}

func (f *Front) handleMouse(ev *tcell.EventMouse) error {
	mx, my := ev.Position()
	x, y, ok := app.ScreenToGrid(mx/2, my, 1, f.frame.W, f.frame.H)
	if !ok {
		return nil
	}
	switch buttons := ev.Buttons(); {
	case buttons&tcell.Button1 != 0:
		return f.drv.Paint(x, y, f.brush.Radius, f.brush.Material)
	case buttons&tcell.Button2 != 0:
		return f.drv.Paint(x, y, f.brush.Radius, entropy.Empty)
	}
	return nil
}

// Brush returns the current paint tool.
func (f *Front) Brush() app.Brush { return f.brush }

// Draw renders the latest frame and a status line below it.
func (f *Front) Draw() {
	f.screen.Clear()
	fallback := tcell.StyleDefault.Background(tcell.ColorWhite)
	for y := 0; y < f.frame.H; y++ {
		for x := 0; x < f.frame.W; x++ {
			style := fallback
			if m := f.frame.At(x, y); int(m) < len(f.styles) {
				style = f.styles[m]
			}
			f.screen.SetContent(2*x, y, ' ', nil, style)
			f.screen.SetContent(2*x+1, y, ' ', nil, style)
		}
	}

	state := "running"
	if f.drv.Paused() {
		state = "paused"
	}
	status := fmt.Sprintf(" %s r=%d | tick %d (%s) | 0-6 material  [ ] brush  c reset  space pause  n step  q quit",
		f.brush.Material, f.brush.Radius, f.frame.Tick, state)
	drawText(f.screen, 0, f.frame.H, status, tcell.StyleDefault.Foreground(tcell.ColorSilver))
	f.screen.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
