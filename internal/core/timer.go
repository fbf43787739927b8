package core

import "time"

// DefaultTPS is the tick rate used when a non-positive rate is requested.
const DefaultTPS = 60

// TickInterval converts a ticks-per-second rate into the delay between ticks.
func TickInterval(tps int) time.Duration {
	if tps <= 0 {
		tps = DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

// FixedStep helps run updates at a steady ticks-per-second rate from a loop
// that wakes up more often than that.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	f.step = TickInterval(tps)
}

// ShouldStep reports whether the caller should act on this wake-up.
func (f *FixedStep) ShouldStep() bool {
	return f.shouldStepAt(time.Now())
}

func (f *FixedStep) shouldStepAt(now time.Time) bool {
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		// Slow callers are not owed a burst of catch-up steps.
		if f.accumulator > f.step {
			f.accumulator = f.step
		}
		return true
	}
	return false
}
