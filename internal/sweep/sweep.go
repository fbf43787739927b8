// Package sweep evaluates rule-probability candidates against a scripted
// scenario on a pool of workers.
package sweep

import (
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"entropy/internal/script"
	"entropy/internal/sims/entropy"
)

// Axis lists the values to try for one parameter key.
type Axis struct {
	Key    string
	Values []float64
}

// ParseAxis reads "key=v1,v2,v3".
func ParseAxis(s string) (Axis, error) {
	key, list, ok := strings.Cut(s, "=")
	if !ok || key == "" || list == "" {
		return Axis{}, fmt.Errorf("axis %q: want key=v1,v2", s)
	}
	var probe entropy.Params
	if _, known := probe.Float(key); !known {
		return Axis{}, fmt.Errorf("axis %q: unknown parameter %q", s, key)
	}
	ax := Axis{Key: key}
	for _, part := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Axis{}, fmt.Errorf("axis %q: %w", s, err)
		}
		ax.Values = append(ax.Values, v)
	}
	return ax, nil
}

// Candidate is one parameter set to evaluate.
type Candidate struct {
	Index  int
	Params entropy.Params
	Label  string
}

// Expand builds the cartesian product of axes over base.
func Expand(base entropy.Params, axes []Axis) []Candidate {
	cands := []Candidate{{Params: base}}
	for _, ax := range axes {
		next := make([]Candidate, 0, len(cands)*len(ax.Values))
		for _, c := range cands {
			for _, v := range ax.Values {
				p := c.Params
				p.SetFloat(ax.Key, v)
				label := ax.Key + "=" + strconv.FormatFloat(v, 'g', -1, 64)
				if c.Label != "" {
					label = c.Label + " " + label
				}
				next = append(next, Candidate{Params: p, Label: label})
			}
		}
		cands = next
	}
	for i := range cands {
		cands[i].Index = i
	}
	return cands
}

// Result summarises one scenario run.
type Result struct {
	Candidate Candidate
	Final     entropy.Counts
	Peak      entropy.Counts
	Steps     int
	// ExtinctAt is the first tick after which a material that had been
	// present was gone, per material; zero means it never died out.
	ExtinctAt [entropy.NumMaterials]uint64
	Err       error
}

// Evaluate runs s once with cand's parameters.
func Evaluate(cfg entropy.Config, s script.Script, cand Candidate) Result {
	res := Result{Candidate: cand}
	cfg.Params = cand.Params
	e, err := entropy.New(cfg)
	if err != nil {
		res.Err = err
		return res
	}
	var seen [entropy.NumMaterials]bool
	err = script.Play(e, s, func(f entropy.Frame) {
		counts := entropy.Census(f.Cells)
		res.Steps++
		for m, n := range counts {
			if n > res.Peak[m] {
				res.Peak[m] = n
			}
			if n > 0 {
				seen[m] = true
				res.ExtinctAt[m] = 0
			} else if seen[m] && res.ExtinctAt[m] == 0 {
				res.ExtinctAt[m] = f.Tick
			}
		}
		res.Final = counts
	})
	res.Err = err
	return res
}

// Run evaluates every candidate on workers goroutines and returns results in
// candidate order.
func Run(cfg entropy.Config, s script.Script, cands []Candidate, workers int) []Result {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	jobs := make(chan Candidate)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cand := range jobs {
				results <- Evaluate(cfg, s, cand)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, c := range cands {
			jobs <- c
		}
		close(jobs)
	}()

	all := make([]Result, 0, len(cands))
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Candidate.Index < all[j].Candidate.Index })
	return all
}

// RankBy orders results by the final count of m, highest first. Failed runs
// sort last.
func RankBy(results []Result, m entropy.Material) []Result {
	out := append([]Result(nil), results...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		return a.Final.Of(m) > b.Final.Of(m)
	})
	return out
}
