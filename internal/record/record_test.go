package record

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"entropy/internal/sims/entropy"
)

func sampleFrames(t *testing.T, n int) []entropy.Frame {
	t.Helper()
	cfg := entropy.DefaultConfig()
	cfg.Width, cfg.Height = 16, 12
	cfg.Seed = 11
	cfg.Params.ProcessSpawnChance = 1
	e, err := entropy.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.Paint(8, 0, 0, entropy.Process)
	e.Paint(8, 10, 2, entropy.Cache)
	frames := make([]entropy.Frame, 0, n)
	for i := 0; i < n; i++ {
		e.Step()
		frames = append(frames, e.Snapshot())
	}
	return frames
}

func TestPopulationAndChart(t *testing.T) {
	var p Population
	for _, f := range sampleFrames(t, 12) {
		p.Add(f)
	}
	if len(p.Ticks) != 12 || p.Ticks[11] != 12 {
		t.Fatalf("unexpected ticks %v", p.Ticks)
	}
	if p.Peak(entropy.Data) == 0 || p.Peak(entropy.Process) != 1 {
		t.Fatalf("unexpected peaks data=%f process=%f", p.Peak(entropy.Data), p.Peak(entropy.Process))
	}

	var buf bytes.Buffer
	if err := WriteChart(&buf, &p, 480, 240); err != nil {
		t.Fatalf("WriteChart: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatal("chart output is not a PNG")
	}
}

func TestWriteChartWithoutSamples(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteChart(&buf, &Population{}, 100, 100); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("WriteChart error = %v, want ErrNoSamples", err)
	}
}

func TestVideoWritesAVI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.avi")
	opts := DefaultVideoOptions()
	opts.Every = 3
	opts.Scale = 2
	v := NewVideo(path, opts)
	for _, f := range sampleFrames(t, 9) {
		if err := v.Add(f); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if v.Written() != 3 {
		t.Fatalf("expected 3 sampled frames, got %d", v.Written())
	}
	// The 10th frame falls on the sampling interval and has the wrong size.
	if err := v.Add(entropy.Frame{W: 2, H: 2, Cells: make([]entropy.Material, 4)}); !errors.Is(err, ErrFrameSize) {
		t.Fatalf("resized frame error = %v, want ErrFrameSize", err)
	}
	if err := v.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "AVI " {
		t.Fatal("output is not an AVI file")
	}
}
