package entropy

import (
	"errors"
	"fmt"
	"math"

	"entropy/internal/core"
)

// ErrInvalidDimensions is returned when a grid is requested with a
// non-positive width or height, or with more than MaxCells cells.
var ErrInvalidDimensions = errors.New("entropy: invalid grid dimensions")

// MaxCells bounds width*height.
const MaxCells = 1 << 26

// Frame is an immutable copy of the grid taken after a tick. The engine never
// touches a Frame's cells after handing it out.
type Frame struct {
	W, H  int
	Tick  uint64
	Cells []Material
}

// At returns the material at (x, y), or Empty outside the frame.
func (f Frame) At(x, y int) Material {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return Empty
	}
	return f.Cells[y*f.W+x]
}

// Engine owns the material grid and advances it one tick per Step. It is not
// safe for concurrent use; see the driver package for the owning loop.
type Engine struct {
	cfg  Config
	grid *core.Grid[Material]
	rng  *core.RNG
	tick uint64
}

// New returns an engine with an all-Empty grid sized from cfg.
func New(cfg Config) (*Engine, error) {
	e := &Engine{cfg: cfg, rng: core.NewRNG(cfg.Seed)}
	if err := e.Init(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	return e, nil
}

// Init (re)allocates a width×height grid with every cell Empty. Existing
// contents are discarded.
func (e *Engine) Init(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxCells/height {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	e.cfg.Width = width
	e.cfg.Height = height
	e.grid = core.NewGrid[Material](width, height)
	e.tick = 0
	return nil
}

// Name returns the simulation identifier.
func (e *Engine) Name() string { return "entropy" }

// Size reports the grid dimensions.
func (e *Engine) Size() core.Size { return core.Size{W: e.grid.W, H: e.grid.H} }

// Tick reports how many steps ran since the last Init or Reset.
func (e *Engine) Tick() uint64 { return e.tick }

// Config returns the active configuration.
func (e *Engine) Config() Config { return e.cfg }

// Cells exposes the live grid buffer. Only the goroutine that owns the engine
// may use it; renderers must use Snapshot.
func (e *Engine) Cells() []Material { return e.grid.Cells() }

// Supports reports whether m belongs to the configured material set.
func (e *Engine) Supports(m Material) bool {
	if !m.Valid() {
		return false
	}
	if m.AntiGravity() {
		return e.cfg.AntiGravity
	}
	return true
}

// SetParams replaces the rule probabilities.
func (e *Engine) SetParams(p Params) { e.cfg.Params = p }

// Parameters reports the current tunables.
func (e *Engine) Parameters() core.ParameterSnapshot { return ParametersFor(e.cfg) }

// Paint sets every cell within radius of (cx, cy) to m and returns how many
// cells changed. Wall cells only yield to Empty. Cells outside the grid are
// skipped; a negative radius or an unsupported material paints nothing.
func (e *Engine) Paint(cx, cy, radius int, m Material) int {
	if radius < 0 || !e.Supports(m) {
		return 0
	}
	g := e.grid
	fx, fy, fr := float64(cx), float64(cy), float64(radius)
	r2 := fr * fr
	y0, y1 := span(fy, fr, g.H)
	x0, x1 := span(fx, fr, g.W)
	changed := 0
	for y := y0; y <= y1; y++ {
		dy := float64(y) - fy
		for x := x0; x <= x1; x++ {
			dx := float64(x) - fx
			if dx*dx+dy*dy > r2 {
				continue
			}
			cur := g.At(x, y)
			if cur.Wall() && m != Empty {
				continue
			}
			if cur != m {
				g.Set(x, y, m)
				changed++
			}
		}
	}
	return changed
}

// span clips [c-r, c+r] to the indices [0, n). lo > hi when nothing is left.
func span(c, r float64, n int) (lo, hi int) {
	from, to := math.Ceil(c-r), math.Floor(c+r)
	if to < 0 || from > float64(n-1) {
		return 0, -1
	}
	return int(max(from, 0)), int(min(to, float64(n-1)))
}

// Reset empties every cell without reallocating.
func (e *Engine) Reset() {
	e.grid.Clear()
	e.tick = 0
}

// Snapshot returns a copy of the grid that shares no memory with the engine.
func (e *Engine) Snapshot() Frame {
	return Frame{
		W:     e.grid.W,
		H:     e.grid.H,
		Tick:  e.tick,
		Cells: e.grid.Clone(),
	}
}

// Step advances the simulation by one tick. Cells are updated in place, so a
// cell moved earlier in a pass is visible to the cells scanned after it.
func (e *Engine) Step() {
	w, h := e.grid.W, e.grid.H
	if w == 0 || h == 0 {
		return
	}

	// One scan direction per tick keeps competing movers from drifting
	// toward a fixed side.
	dir := e.rng.Sign()
	startX, endX := 0, w
	if dir < 0 {
		startX, endX = w-1, -1
	}

	cells := e.grid.Cells()
	for y := h - 1; y >= 0; y-- {
		for x := startX; x != endX; x += dir {
			switch cells[y*w+x] {
			case Data:
				e.updateData(x, y)
			case Virus:
				e.updateVirus(x, y)
			case Process:
				e.updateProcess(x, y)
			case Empty, Cache, Firewall, AntiData:
			}
		}
	}

	if e.cfg.AntiGravity {
		for y := 0; y < h; y++ {
			for x := startX; x != endX; x += dir {
				switch cells[y*w+x] {
				case Firewall:
					e.updateFirewall(x, y)
				case AntiData:
					e.updateAntiData(x, y)
				case Empty, Data, Cache, Virus, Process:
				}
			}
		}
	}

	e.tick++
}
