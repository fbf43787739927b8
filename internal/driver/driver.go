// Package driver runs an entropy engine on a single goroutine. Commands from
// the UI are queued and applied between ticks; every tick publishes a fresh
// frame for renderers.
package driver

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"entropy/internal/core"
	"entropy/internal/sims/entropy"
)

// ErrStopped is returned by commands sent after Run has returned.
var ErrStopped = errors.New("driver: stopped")

// Config controls the loop driver.
type Config struct {
	// TPS is the target tick rate; non-positive values select core.DefaultTPS.
	TPS int
	// Engine seeds the engine built on the first Init. Its Width and Height
	// are ignored in favour of the Init arguments.
	Engine entropy.Config
	// Logger receives lifecycle events; nil selects the logrus standard logger.
	Logger log.FieldLogger
	// QueueSize bounds the number of commands waiting for the loop.
	QueueSize int
}

// DefaultConfig returns the standard driver configuration.
func DefaultConfig() Config {
	return Config{
		TPS:       core.DefaultTPS,
		Engine:    entropy.DefaultConfig(),
		QueueSize: 256,
	}
}

type commandKind int

const (
	cmdInit commandKind = iota
	cmdPaint
	cmdReset
	cmdParams
	cmdPause
	cmdResume
	cmdStepOnce
)

func (k commandKind) String() string {
	switch k {
	case cmdInit:
		return "init"
	case cmdPaint:
		return "paint"
	case cmdReset:
		return "reset"
	case cmdParams:
		return "params"
	case cmdPause:
		return "pause"
	case cmdResume:
		return "resume"
	case cmdStepOnce:
		return "step"
	default:
		return "unknown"
	}
}

type command struct {
	kind commandKind

	w, h    int
	x, y, r int
	m       entropy.Material
	params  entropy.Params

	reply chan error
}

// Driver owns an engine and steps it at a fixed rate.
type Driver struct {
	cfg      Config
	log      log.FieldLogger
	commands chan command
	frames   chan entropy.Frame
	done     chan struct{}
	running  atomic.Bool
	paused   atomic.Bool

	mu     sync.Mutex
	params entropy.Params
	size   core.Size
}

// New builds a driver. Call Run to start it and Init to create the grid.
func New(cfg Config) *Driver {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultConfig().QueueSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Driver{
		cfg:      cfg,
		log:      logger.WithField("component", "driver"),
		commands: make(chan command, cfg.QueueSize),
		frames:   make(chan entropy.Frame, 1),
		done:     make(chan struct{}),
		params:   cfg.Engine.Params,
	}
}

// Frames delivers one frame per tick. Only the newest frame is buffered; a
// consumer that falls behind skips stale frames.
func (d *Driver) Frames() <-chan entropy.Frame { return d.frames }

// Done is closed once Run has returned.
func (d *Driver) Done() <-chan struct{} { return d.done }

// Init (re)creates a width×height grid. It blocks until the loop has applied
// it and returns entropy.ErrInvalidDimensions for non-positive sizes.
func (d *Driver) Init(width, height int) error {
	reply := make(chan error, 1)
	if err := d.send(command{kind: cmdInit, w: width, h: height, reply: reply}); err != nil {
		return err
	}
	select {
	case err := <-reply:
		return err
	case <-d.done:
		return ErrStopped
	}
}

// Paint queues a circular paint stroke.
func (d *Driver) Paint(x, y, radius int, m entropy.Material) error {
	return d.send(command{kind: cmdPaint, x: x, y: y, r: radius, m: m})
}

// Reset queues a clear of the whole grid.
func (d *Driver) Reset() error { return d.send(command{kind: cmdReset}) }

// Pause stops stepping until Resume; commands are still applied.
func (d *Driver) Pause() error { return d.send(command{kind: cmdPause}) }

// Resume restarts stepping after Pause.
func (d *Driver) Resume() error { return d.send(command{kind: cmdResume}) }

// StepOnce advances a paused simulation by a single tick.
func (d *Driver) StepOnce() error { return d.send(command{kind: cmdStepOnce}) }

// Paused reports whether the loop is paused.
func (d *Driver) Paused() bool { return d.paused.Load() }

// SetFloatParameter queues a change to one rule probability.
func (d *Driver) SetFloatParameter(key string, value float64) bool {
	d.mu.Lock()
	params := d.params
	if !params.SetFloat(key, value) {
		d.mu.Unlock()
		return false
	}
	d.params = params
	d.mu.Unlock()
	return d.send(command{kind: cmdParams, params: params}) == nil
}

// Parameters reports the tunables as last requested through the driver.
func (d *Driver) Parameters() core.ParameterSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	cfg := d.cfg.Engine
	cfg.Params = d.params
	cfg.Width, cfg.Height = d.size.W, d.size.H
	return entropy.ParametersFor(cfg)
}

// ParameterControls lists the HUD-adjustable probabilities.
func (d *Driver) ParameterControls() []core.ParameterControl {
	return entropy.ParameterControls()
}

// Size reports the grid dimensions applied by the last successful Init.
func (d *Driver) Size() core.Size {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.size
}

func (d *Driver) send(cmd command) error {
	select {
	case <-d.done:
		return ErrStopped
	default:
	}
	select {
	case d.commands <- cmd:
		return nil
	case <-d.done:
		return ErrStopped
	}
}

// loop holds the state only the Run goroutine may touch.
type loop struct {
	engine   *entropy.Engine
	stepOnce bool
}

// Run steps the engine until ctx is cancelled. It must be called once.
func (d *Driver) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return errors.New("driver: Run called twice")
	}
	defer close(d.done)

	interval := core.TickInterval(d.cfg.TPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.log.WithField("interval", interval).Info("loop started")
	var l loop
	for {
		select {
		case <-ctx.Done():
			d.log.Info("loop stopped")
			return ctx.Err()
		case cmd := <-d.commands:
			d.apply(&l, cmd)
		case <-ticker.C:
			// Commands queued before this tick land before the step.
			d.drain(&l)
			d.tick(&l)
		}
	}
}

func (d *Driver) drain(l *loop) {
	for {
		select {
		case cmd := <-d.commands:
			d.apply(l, cmd)
		default:
			return
		}
	}
}

func (d *Driver) tick(l *loop) {
	if l.engine == nil {
		return
	}
	if d.paused.Load() {
		if !l.stepOnce {
			return
		}
	}
	// A pending single step is consumed by any tick that runs.
	l.stepOnce = false
	l.engine.Step()
	frame := l.engine.Snapshot()
	if tps := d.cfg.TPS; tps > 0 && frame.Tick%uint64(tps) == 0 {
		counts := entropy.Census(frame.Cells)
		d.log.WithFields(log.Fields{
			"tick":     frame.Tick,
			"occupied": counts.Occupied(),
			"data":     counts.Of(entropy.Data),
			"virus":    counts.Of(entropy.Virus),
		}).Debug("tick")
	}
	d.publish(frame)
}

func (d *Driver) apply(l *loop, cmd command) {
	if cmd.kind != cmdInit && l.engine == nil {
		switch cmd.kind {
		case cmdPause, cmdResume:
			d.paused.Store(cmd.kind == cmdPause)
			return
		case cmdParams:
			// The first Init picks up the mirrored params.
			return
		}
		d.log.WithField("command", cmd.kind).Warn("dropping command sent before init")
		return
	}

	switch cmd.kind {
	case cmdInit:
		err := d.init(l, cmd.w, cmd.h)
		cmd.reply <- err
		if err != nil {
			d.log.WithError(err).Warn("init rejected")
			return
		}
		d.log.WithFields(log.Fields{"width": cmd.w, "height": cmd.h}).Info("grid initialised")
	case cmdPaint:
		l.engine.Paint(cmd.x, cmd.y, cmd.r, cmd.m)
	case cmdReset:
		l.engine.Reset()
		d.log.Info("grid reset")
	case cmdParams:
		l.engine.SetParams(cmd.params)
	case cmdPause:
		d.paused.Store(true)
		return
	case cmdResume:
		d.paused.Store(false)
		return
	case cmdStepOnce:
		// Only meaningful while paused; a running loop steps anyway.
		l.stepOnce = d.paused.Load()
		return
	}

	// A paused loop publishes no ticks, so mutations are shown directly.
	if d.paused.Load() || cmd.kind == cmdInit {
		d.publish(l.engine.Snapshot())
	}
}

func (d *Driver) init(l *loop, w, h int) error {
	if l.engine != nil {
		if err := l.engine.Init(w, h); err != nil {
			return err
		}
	} else {
		cfg := d.cfg.Engine
		cfg.Width, cfg.Height = w, h
		d.mu.Lock()
		cfg.Params = d.params
		d.mu.Unlock()
		engine, err := entropy.New(cfg)
		if err != nil {
			return err
		}
		l.engine = engine
	}
	d.mu.Lock()
	d.size = core.Size{W: w, H: h}
	d.mu.Unlock()
	return nil
}

// publish hands frame to the consumer, replacing an unread older frame.
func (d *Driver) publish(frame entropy.Frame) {
	select {
	case d.frames <- frame:
		return
	default:
	}
	select {
	case <-d.frames:
	default:
	}
	select {
	case d.frames <- frame:
	default:
	}
}
