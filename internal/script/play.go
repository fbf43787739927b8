package script

import (
	"fmt"

	"entropy/internal/sims/entropy"
)

// Play runs the script against e. onStep, when non-nil, receives a snapshot
// after every tick.
func Play(e *entropy.Engine, s Script, onStep func(entropy.Frame)) error {
	for _, cmd := range s {
		switch cmd.Op {
		case OpInit:
			if err := e.Init(cmd.W, cmd.H); err != nil {
				return fmt.Errorf("line %d: %w", cmd.Line, err)
			}
		case OpPaint:
			e.Paint(cmd.X, cmd.Y, cmd.R, cmd.Material)
		case OpReset:
			e.Reset()
		case OpSet:
			params := e.Config().Params
			if !params.SetFloat(cmd.Key, cmd.Value) {
				return fmt.Errorf("line %d: unknown parameter %q", cmd.Line, cmd.Key)
			}
			e.SetParams(params)
		case OpStep:
			for i := 0; i < cmd.Steps; i++ {
				e.Step()
				if onStep != nil {
					onStep(e.Snapshot())
				}
			}
		}
	}
	return nil
}
