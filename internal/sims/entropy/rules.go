package entropy

var mooreOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

func (e *Engine) idx(x, y int) int { return y*e.grid.W + x }

// isEmpty reports whether (x, y) is inside the grid and Empty.
func (e *Engine) isEmpty(x, y int) bool {
	return e.grid.InBounds(x, y) && e.grid.Cells()[e.idx(x, y)] == Empty
}

func (e *Engine) move(from, to int) {
	cells := e.grid.Cells()
	cells[to] = cells[from]
	cells[from] = Empty
}

// updateData falls straight down, then diagonally, and reacts with what it
// lands on.
func (e *Engine) updateData(x, y int) {
	e.fall(x, y, 1, AntiData)
}

// updateAntiData mirrors Data but rises.
func (e *Engine) updateAntiData(x, y int) {
	e.fall(x, y, -1, Data)
}

// fall moves the cell at (x, y) one row in direction dy. Meeting annihilator
// removes both cells; meeting Firewall removes only the mover.
func (e *Engine) fall(x, y, dy int, annihilator Material) {
	ny := y + dy
	if ny < 0 || ny >= e.grid.H {
		return
	}
	cells := e.grid.Cells()
	i := e.idx(x, y)
	target := e.idx(x, ny)
	switch cells[target] {
	case Empty:
		e.move(i, target)
		return
	case annihilator:
		cells[i] = Empty
		cells[target] = Empty
		return
	case Firewall:
		cells[i] = Empty
		return
	}

	dir := e.rng.Sign()
	if e.isEmpty(x-dir, ny) {
		e.move(i, e.idx(x-dir, ny))
	} else if e.isEmpty(x+dir, ny) {
		e.move(i, e.idx(x+dir, ny))
	}
}

// updateVirus wanders to a random neighbour, eating Data and Cache on the way.
func (e *Engine) updateVirus(x, y int) {
	off := mooreOffsets[e.rng.IntN(len(mooreOffsets))]
	tx, ty := x+off[0], y+off[1]
	if !e.grid.InBounds(tx, ty) {
		return
	}
	cells := e.grid.Cells()
	i := e.idx(x, y)
	target := e.idx(tx, ty)
	switch t := cells[target]; {
	case t == Empty:
		e.move(i, target)
	case t.Consumable():
		cells[target] = Empty
		p := e.cfg.Params
		switch {
		case e.rng.Chance(p.VirusReplicateChance):
			cells[target] = Virus
		case e.rng.Chance(p.VirusStarveChance):
			cells[i] = Empty
		default:
			e.move(i, target)
		}
	case t == Firewall:
		cells[i] = Firewall
	}
}

// updateProcess occasionally drips Data into the cell below.
func (e *Engine) updateProcess(x, y int) {
	if !e.isEmpty(x, y+1) {
		return
	}
	if e.rng.Chance(e.cfg.Params.ProcessSpawnChance) {
		e.grid.Cells()[e.idx(x, y+1)] = Data
	}
}

// updateFirewall burns out, rises, or spreads into flammable neighbours.
func (e *Engine) updateFirewall(x, y int) {
	p := e.cfg.Params
	cells := e.grid.Cells()
	i := e.idx(x, y)
	if e.rng.Chance(p.FirewallDecayChance) {
		cells[i] = Empty
		return
	}
	if e.isEmpty(x, y-1) && e.rng.Chance(p.FirewallRiseChance) {
		e.move(i, e.idx(x, y-1))
		return
	}

	tx, ty := x, y-1
	if e.rng.IntN(2) == 1 {
		tx, ty = x+e.rng.Sign(), y
	}
	if !e.grid.InBounds(tx, ty) {
		return
	}
	target := e.idx(tx, ty)
	if cells[target].Flammable() && e.rng.Chance(p.FirewallSpreadChance) {
		cells[target] = Firewall
	}
}
