package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"

	"entropy/internal/app"
	"entropy/internal/script"
	"entropy/internal/sims/entropy"
	"entropy/internal/sweep"
)

func main() {
	scriptPath := flag.String("script", "scripts/demo.txt", "scenario script evaluated per candidate")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seed := flag.Int64("seed", 1337, "seed shared by every candidate")
	rank := flag.String("rank", "virus", "material whose final count ranks the results")
	top := flag.Int("top", 10, "number of results to print")
	logLevel := flag.String("log-level", "info", "log level")
	var overrides, axes app.KVList
	flag.Var(&overrides, "set", "base config override in key=value form (repeatable)")
	flag.Var(&axes, "axis", "swept parameter in key=v1,v2,... form (repeatable)")
	flag.Parse()

	logger, err := app.NewLogger(*logLevel, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	rankBy, err := entropy.ParseMaterial(*rank)
	if err != nil {
		logger.Fatal(err)
	}
	s, err := script.Load(*scriptPath)
	if err != nil {
		logger.Fatal(err)
	}

	cfg := entropy.FromMap(overrides.Map())
	cfg.Seed = *seed

	var parsed []sweep.Axis
	for _, raw := range axes {
		ax, err := sweep.ParseAxis(raw)
		if err != nil {
			logger.Fatal(err)
		}
		parsed = append(parsed, ax)
	}
	if len(parsed) == 0 {
		parsed = []sweep.Axis{
			{Key: "virus_replicate_chance", Values: []float64{0, 0.05, 0.1, 0.2}},
			{Key: "virus_starve_chance", Values: []float64{0, 0.05, 0.1, 0.2}},
		}
	}
	cands := sweep.Expand(cfg.Params, parsed)

	logger.WithFields(log.Fields{
		"candidates": len(cands),
		"workers":    *workers,
		"steps":      s.Steps(),
	}).Info("sweeping")
	start := time.Now()
	results := sweep.RankBy(sweep.Run(cfg, s, cands, *workers), rankBy)
	elapsed := time.Since(start)

	fmt.Printf("\nTop %d by final %s (elapsed %s):\n", min(*top, len(results)), rankBy, elapsed.Round(time.Millisecond))
	for i := 0; i < len(results) && i < *top; i++ {
		res := results[i]
		if res.Err != nil {
			fmt.Printf("%2d) error=%v params=%s\n", i+1, res.Err, res.Candidate.Label)
			continue
		}
		extinct := "never"
		if t := res.ExtinctAt[rankBy]; t > 0 {
			extinct = fmt.Sprintf("tick %d", t)
		}
		fmt.Printf("%2d) final=%d peak=%d extinct=%s occupied=%d params=%s\n",
			i+1, res.Final.Of(rankBy), res.Peak.Of(rankBy), extinct, res.Final.Occupied(), res.Candidate.Label)
	}
}
