package entropy

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func newTestEngine(t *testing.T, w, h int, antiGravity bool) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Seed = 42
	cfg.AntiGravity = antiGravity
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New(%dx%d): %v", w, h, err)
	}
	return e
}

func set(e *Engine, x, y int, m Material) {
	e.Cells()[y*e.Size().W+x] = m
}

func at(e *Engine, x, y int) Material {
	return e.Cells()[y*e.Size().W+x]
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {3, -7}} {
		cfg := DefaultConfig()
		cfg.Width, cfg.Height = dims[0], dims[1]
		if _, err := New(cfg); !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("New(%dx%d) error = %v, want ErrInvalidDimensions", dims[0], dims[1], err)
		}
	}

	e := newTestEngine(t, 4, 4, true)
	for _, dims := range [][2]int{{0, 0}, {1 << 32, 1 << 32}, {MaxCells + 1, 1}, {1 << 14, 1 << 13}} {
		if err := e.Init(dims[0], dims[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("Init(%dx%d) error = %v, want ErrInvalidDimensions", dims[0], dims[1], err)
		}
		if got := e.Size(); got.W != 4 || got.H != 4 || len(e.Cells()) != 16 {
			t.Fatalf("failed Init must keep the old grid, got %dx%d", got.W, got.H)
		}
	}
	if n := e.Paint(0, 0, 0, Data); n != 1 {
		t.Fatalf("paint after rejected Init changed %d cells, want 1", n)
	}
	e.Step()

	if err := e.Init(MaxCells, 1); err != nil {
		t.Fatalf("Init at the cell cap: %v", err)
	}
}

func TestInitReallocatesEmptyGrid(t *testing.T) {
	e := newTestEngine(t, 4, 4, true)
	e.Paint(1, 1, 2, Data)
	e.Step()

	if err := e.Init(6, 3); err != nil {
		t.Fatalf("Init: %v", err)
	}
	frame := e.Snapshot()
	if frame.W != 6 || frame.H != 3 || len(frame.Cells) != 18 {
		t.Fatalf("unexpected frame shape %dx%d len %d", frame.W, frame.H, len(frame.Cells))
	}
	if occupied := Census(frame.Cells).Occupied(); occupied != 0 {
		t.Fatalf("expected empty grid after Init, %d cells occupied", occupied)
	}
	if frame.Tick != 0 {
		t.Fatalf("expected tick reset, got %d", frame.Tick)
	}
}

func TestResetYieldsAllEmpty(t *testing.T) {
	e := newTestEngine(t, 17, 11, true)
	e.Paint(8, 5, 4, Data)
	e.Paint(3, 3, 2, Cache)
	e.Paint(12, 8, 1, Virus)
	e.Paint(14, 2, 1, Firewall)
	for i := 0; i < 5; i++ {
		e.Step()
	}

	e.Reset()
	frame := e.Snapshot()
	if len(frame.Cells) != 17*11 {
		t.Fatalf("expected %d cells, got %d", 17*11, len(frame.Cells))
	}
	for i, m := range frame.Cells {
		if m != Empty {
			t.Fatalf("cell %d = %v after Reset", i, m)
		}
	}
}

func TestPaintNeverOverwritesWalls(t *testing.T) {
	e := newTestEngine(t, 20, 20, true)
	e.Paint(10, 10, 3, Cache)
	walls := append([]Material(nil), e.Cells()...)

	for _, m := range []Material{Data, Virus, Process, Firewall, AntiData} {
		e.Paint(10, 10, 5, m)
		for i, before := range walls {
			if before == Cache && e.Cells()[i] != Cache {
				t.Fatalf("painting %v overwrote wall cell %d", m, i)
			}
		}
	}
	if got := at(e, 10, 15); got != AntiData {
		t.Fatalf("non-wall cell in radius should take the last paint, got %v", got)
	}
}

func TestPaintEmptyErasesWalls(t *testing.T) {
	e := newTestEngine(t, 20, 20, true)
	e.Paint(10, 10, 3, Cache)
	e.Paint(10, 10, 3, Empty)
	if occupied := Census(e.Cells()).Occupied(); occupied != 0 {
		t.Fatalf("expected erase to clear all walls, %d cells remain", occupied)
	}
}

func TestPaintRadiusZeroEraseHitsSingleCell(t *testing.T) {
	e := newTestEngine(t, 20, 20, true)
	painted := e.Paint(5, 5, 3, Cache)
	before := append([]Material(nil), e.Cells()...)

	if n := e.Paint(5, 5, 0, Empty); n != 1 {
		t.Fatalf("expected one cell erased, got %d", n)
	}
	if at(e, 5, 5) != Empty {
		t.Fatal("center cell should be Empty")
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if x == 5 && y == 5 {
				continue
			}
			if at(e, x, y) != before[y*20+x] {
				t.Fatalf("cell (%d,%d) changed from %v to %v", x, y, before[y*20+x], at(e, x, y))
			}
		}
	}
	if got := Census(e.Cells()).Of(Cache); got != painted-1 {
		t.Fatalf("expected %d walls, got %d", painted-1, got)
	}
}

func TestPaintCircleUsesSquaredDistance(t *testing.T) {
	e := newTestEngine(t, 9, 9, true)
	if n := e.Paint(4, 4, 2, Data); n != 13 {
		t.Fatalf("radius 2 disc should cover 13 cells, got %d", n)
	}
	if at(e, 6, 6) != Empty {
		t.Fatal("corner at distance sqrt(8) must stay outside radius 2")
	}
	if at(e, 6, 4) != Data {
		t.Fatal("cell at distance 2 must be painted")
	}
}

func TestPaintOutOfBoundsIsIgnored(t *testing.T) {
	e := newTestEngine(t, 8, 8, false)
	if n := e.Paint(-10, -10, 3, Data); n != 0 {
		t.Fatalf("fully out-of-bounds paint changed %d cells", n)
	}
	if n := e.Paint(0, 0, 1, Data); n != 3 {
		t.Fatalf("corner paint should clip to 3 cells, got %d", n)
	}
	if n := e.Paint(4, 4, -1, Data); n != 0 {
		t.Fatalf("negative radius changed %d cells", n)
	}
	if n := e.Paint(4, 4, 1, Material(99)); n != 0 {
		t.Fatalf("unknown material changed %d cells", n)
	}
	if n := e.Paint(4, 4, 1, Firewall); n != 0 {
		t.Fatalf("anti-gravity material painted while disabled: %d cells", n)
	}
}

func TestPaintHugeRadiusClipsToGrid(t *testing.T) {
	e := newTestEngine(t, 10, 10, false)
	if n := e.Paint(5, 5, 1<<40, Data); n != 100 {
		t.Fatalf("huge radius should cover the grid, changed %d cells", n)
	}
	e.Reset()

	// A far-away centre still reaches the grid when the radius is big enough.
	if n := e.Paint(-1<<40, 5, 1<<41, Data); n != 100 {
		t.Fatalf("far centre with covering radius changed %d cells, want 100", n)
	}
	e.Reset()
	if n := e.Paint(-1<<40, 5, 1<<20, Data); n != 0 {
		t.Fatalf("far centre with short radius changed %d cells, want 0", n)
	}
	if n := e.Paint(math.MaxInt, math.MaxInt, math.MaxInt, Data); n != 0 {
		t.Fatalf("extreme paint changed %d cells, want 0", n)
	}
	if n := e.Paint(math.MinInt, 3, 2, Data); n != 0 {
		t.Fatalf("extreme negative centre changed %d cells, want 0", n)
	}
}

func TestSnapshotDoesNotAliasGrid(t *testing.T) {
	e := newTestEngine(t, 6, 6, true)
	e.Paint(2, 2, 1, Cache)
	frame := e.Snapshot()
	want := append([]Material(nil), frame.Cells...)

	e.Paint(2, 2, 2, Empty)
	e.Paint(4, 4, 1, Data)
	e.Step()

	if !slices.Equal(want, frame.Cells) {
		t.Fatal("engine mutated a frame after producing it")
	}
}

func TestDataFallsToBottomRow(t *testing.T) {
	e := newTestEngine(t, 10, 10, false)
	for x := 0; x < 10; x++ {
		if x != 5 {
			set(e, x, 9, Cache)
		}
	}
	set(e, 5, 0, Data)

	for step := 1; step <= 9; step++ {
		e.Step()
		if got := at(e, 5, step); got != Data {
			t.Fatalf("after step %d expected Data at (5,%d), got %v", step, step, got)
		}
		if got := Census(e.Cells()).Of(Data); got != 1 {
			t.Fatalf("after step %d expected one Data cell, got %d", step, got)
		}
	}

	e.Step()
	if at(e, 5, 9) != Data {
		t.Fatal("Data on the bottom row must stay put")
	}
}

func TestDataSlidesDiagonally(t *testing.T) {
	e := newTestEngine(t, 3, 2, false)
	set(e, 1, 1, Cache)
	set(e, 1, 0, Data)
	e.Step()
	if at(e, 1, 0) != Empty {
		t.Fatal("blocked Data should slide to a free diagonal")
	}
	if at(e, 0, 1) != Data && at(e, 2, 1) != Data {
		t.Fatal("Data should land on one of the lower diagonals")
	}

	set(e, 0, 1, Cache)
	set(e, 2, 1, Cache)
	set(e, 1, 0, Data)
	e.Step()
	if at(e, 1, 0) != Data {
		t.Fatal("Data with no free cell below must stay")
	}
}

func TestDataAndAntiDataAnnihilate(t *testing.T) {
	e := newTestEngine(t, 5, 5, true)
	set(e, 2, 1, Data)
	set(e, 2, 2, AntiData)
	e.Step()
	if occupied := Census(e.Cells()).Occupied(); occupied != 0 {
		t.Fatalf("expected mutual annihilation, %d cells remain", occupied)
	}
}

func TestAntiDataRisesToTopRow(t *testing.T) {
	e := newTestEngine(t, 1, 5, true)
	set(e, 0, 4, AntiData)
	for step := 1; step <= 4; step++ {
		e.Step()
		if got := at(e, 0, 4-step); got != AntiData {
			t.Fatalf("after step %d expected AntiData at row %d, got %v", step, 4-step, got)
		}
	}
	e.Step()
	if at(e, 0, 0) != AntiData {
		t.Fatal("AntiData on the top row must stay put")
	}
}

func TestDataBurnsOnFirewall(t *testing.T) {
	e := newTestEngine(t, 5, 5, true)
	e.cfg.Params = Params{}
	set(e, 2, 1, Data)
	set(e, 2, 2, Firewall)
	e.Step()
	counts := Census(e.Cells())
	if counts.Of(Data) != 0 {
		t.Fatal("Data falling onto Firewall must burn")
	}
	if counts.Of(Firewall) != 1 || at(e, 2, 2) != Firewall {
		t.Fatal("Firewall must survive burning Data")
	}
}

func TestCountsConservedWithoutReactions(t *testing.T) {
	e := newTestEngine(t, 30, 30, false)
	rng := e.rng
	for i := 0; i < 200; i++ {
		x, y := rng.IntN(30), rng.IntN(30)
		if rng.Bool() {
			set(e, x, y, Data)
		} else {
			set(e, x, y, Cache)
		}
	}
	want := Census(e.Cells())
	walls := append([]Material(nil), e.Cells()...)

	for step := 0; step < 60; step++ {
		e.Step()
		if got := Census(e.Cells()); got != want {
			t.Fatalf("step %d: counts changed from %v to %v", step, want, got)
		}
	}
	for i, m := range walls {
		if m == Cache && e.Cells()[i] != Cache {
			t.Fatalf("wall at %d moved", i)
		}
	}
}

func TestVirusWanderingConservesCount(t *testing.T) {
	e := newTestEngine(t, 20, 20, false)
	set(e, 10, 10, Virus)
	set(e, 2, 3, Virus)
	for step := 0; step < 100; step++ {
		e.Step()
		if got := Census(e.Cells()).Of(Virus); got != 2 {
			t.Fatalf("step %d: expected 2 viruses, got %d", step, got)
		}
	}
}

func runUntil(t *testing.T, e *Engine, limit int, done func() bool) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if done() {
			return
		}
		e.Step()
	}
	if !done() {
		t.Fatalf("condition not reached within %d steps", limit)
	}
}

func TestVirusConsumesAndRelocates(t *testing.T) {
	e := newTestEngine(t, 3, 1, false)
	e.cfg.Params.VirusReplicateChance = 0
	e.cfg.Params.VirusStarveChance = 0
	set(e, 0, 0, Data)
	set(e, 1, 0, Virus)
	set(e, 2, 0, Cache)

	runUntil(t, e, 500, func() bool {
		counts := Census(e.Cells())
		if counts.Of(Virus) != 1 {
			t.Fatalf("virus count changed to %d", counts.Of(Virus))
		}
		return counts.Of(Data)+counts.Of(Cache) == 0
	})
}

func TestVirusReplicates(t *testing.T) {
	e := newTestEngine(t, 3, 1, false)
	e.cfg.Params.VirusReplicateChance = 1
	set(e, 0, 0, Data)
	set(e, 1, 0, Virus)
	set(e, 2, 0, Data)

	runUntil(t, e, 500, func() bool {
		counts := Census(e.Cells())
		if counts.Of(Virus) != 3-counts.Of(Data) {
			t.Fatalf("each consumed cell should leave a virus copy: %v", counts)
		}
		return counts.Of(Data) == 0
	})
}

func TestVirusStarves(t *testing.T) {
	e := newTestEngine(t, 3, 1, false)
	e.cfg.Params.VirusReplicateChance = 0
	e.cfg.Params.VirusStarveChance = 1
	set(e, 0, 0, Data)
	set(e, 1, 0, Virus)
	set(e, 2, 0, Data)

	runUntil(t, e, 500, func() bool {
		return Census(e.Cells()).Of(Virus) == 0
	})
	if got := Census(e.Cells()).Of(Data); got != 1 {
		t.Fatalf("starving virus should eat exactly one cell, %d Data left", got)
	}
}

func TestVirusCatchesFire(t *testing.T) {
	e := newTestEngine(t, 3, 1, true)
	e.cfg.Params = Params{}
	set(e, 0, 0, Firewall)
	set(e, 1, 0, Virus)
	set(e, 2, 0, Firewall)

	runUntil(t, e, 500, func() bool {
		return Census(e.Cells()).Of(Virus) == 0
	})
	if got := Census(e.Cells()).Of(Firewall); got != 3 {
		t.Fatalf("virus should turn into Firewall, got %d Firewall cells", got)
	}
}

func TestProcessSpawnsDataBelow(t *testing.T) {
	e := newTestEngine(t, 3, 3, false)
	e.cfg.Params.ProcessSpawnChance = 1
	set(e, 1, 0, Process)

	e.Step()
	if at(e, 1, 1) != Data {
		t.Fatal("process should spawn Data directly below")
	}
	e.Step()
	if at(e, 1, 2) != Data || at(e, 1, 1) != Data {
		t.Fatal("spawned Data should fall and be replaced")
	}
	if at(e, 1, 0) != Process {
		t.Fatal("process must stay put")
	}

	e.Reset()
	e.cfg.Params.ProcessSpawnChance = 0
	set(e, 1, 0, Process)
	for i := 0; i < 20; i++ {
		e.Step()
	}
	if got := Census(e.Cells()).Occupied(); got != 1 {
		t.Fatalf("zero spawn chance must never create Data, %d cells occupied", got)
	}
}

func TestFirewallDecays(t *testing.T) {
	e := newTestEngine(t, 3, 3, true)
	e.cfg.Params = Params{FirewallDecayChance: 1}
	set(e, 1, 1, Firewall)
	e.Step()
	if got := Census(e.Cells()).Occupied(); got != 0 {
		t.Fatalf("firewall should burn out, %d cells remain", got)
	}
}

func TestFirewallRises(t *testing.T) {
	e := newTestEngine(t, 1, 3, true)
	e.cfg.Params = Params{FirewallRiseChance: 1}
	set(e, 0, 2, Firewall)
	e.Step()
	if at(e, 0, 1) != Firewall {
		t.Fatal("firewall should rise one row per step")
	}
	e.Step()
	if at(e, 0, 0) != Firewall {
		t.Fatal("firewall should reach the top row")
	}
}

func TestFirewallSpreadsToFlammable(t *testing.T) {
	e := newTestEngine(t, 3, 1, true)
	e.cfg.Params = Params{FirewallSpreadChance: 1}
	set(e, 0, 0, Data)
	set(e, 1, 0, Firewall)
	set(e, 2, 0, Cache)

	runUntil(t, e, 500, func() bool {
		return at(e, 0, 0) == Firewall
	})
	if at(e, 2, 0) != Cache {
		t.Fatal("walls are not flammable")
	}
}

func TestSameSeedSameEvolution(t *testing.T) {
	a := newTestEngine(t, 24, 24, true)
	b := newTestEngine(t, 24, 24, true)
	for _, e := range []*Engine{a, b} {
		e.Paint(6, 4, 3, Data)
		e.Paint(12, 12, 2, Virus)
		e.Paint(18, 2, 1, Process)
		e.Paint(12, 20, 2, Firewall)
		e.Paint(4, 20, 2, AntiData)
	}
	for i := 0; i < 50; i++ {
		a.Step()
		b.Step()
	}
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("identically seeded engines diverged")
	}
	if a.Tick() != 50 {
		t.Fatalf("expected tick 50, got %d", a.Tick())
	}
}
