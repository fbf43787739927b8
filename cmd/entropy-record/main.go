package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"entropy/internal/app"
	"entropy/internal/record"
	"entropy/internal/script"
	"entropy/internal/sims/entropy"
)

func main() {
	scriptPath := flag.String("script", "scripts/demo.txt", "command script to play")
	videoPath := flag.String("out", "entropy.avi", "MJPEG video output path (empty to skip)")
	chartPath := flag.String("chart", "population.png", "population chart output path (empty to skip)")
	seed := flag.Int64("seed", 1, "random seed (0 = time based)")
	every := flag.Int("every", 2, "record every n-th tick")
	scale := flag.Int("scale", 4, "video pixel scale")
	fps := flag.Int("fps", 30, "video frame rate")
	logLevel := flag.String("log-level", "info", "log level")
	var overrides app.KVList
	flag.Var(&overrides, "set", "config override in key=value form (repeatable)")
	flag.Parse()

	logger, err := app.NewLogger(*logLevel, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	s, err := script.Load(*scriptPath)
	if err != nil {
		logger.Fatal(err)
	}

	cfg := entropy.FromMap(overrides.Map())
	if _, ok := overrides.Map()["seed"]; !ok {
		cfg.Seed = *seed
	}
	engine, err := entropy.New(cfg)
	if err != nil {
		logger.Fatal(err)
	}

	var video *record.Video
	if *videoPath != "" {
		opts := record.DefaultVideoOptions()
		opts.Every, opts.Scale, opts.FPS = *every, *scale, *fps
		video = record.NewVideo(*videoPath, opts)
	}
	pop := &record.Population{}

	logger.WithFields(log.Fields{"script": *scriptPath, "steps": s.Steps(), "seed": cfg.Seed}).Info("playing script")
	var videoErr error
	err = script.Play(engine, s, func(f entropy.Frame) {
		pop.Add(f)
		if video != nil && videoErr == nil {
			videoErr = video.Add(f)
		}
	})
	if err != nil {
		logger.Fatal(err)
	}
	if video != nil {
		if videoErr != nil {
			logger.Fatal(videoErr)
		}
		if err := video.Close(); err != nil {
			logger.Fatal(err)
		}
		logger.WithFields(log.Fields{"path": *videoPath, "frames": video.Written()}).Info("video written")
	}

	if *chartPath != "" {
		f, err := os.Create(*chartPath)
		if err != nil {
			logger.Fatal(err)
		}
		if err := record.WriteChart(f, pop, 1024, 512); err != nil {
			f.Close()
			logger.Fatal(err)
		}
		if err := f.Close(); err != nil {
			logger.Fatal(err)
		}
		logger.WithField("path", *chartPath).Info("chart written")
	}

	final := entropy.Census(engine.Cells())
	for _, m := range entropy.Materials() {
		if m == entropy.Empty {
			continue
		}
		fmt.Printf("%-9s final=%6d peak=%6.0f\n", m, final.Of(m), pop.Peak(m))
	}
}
