package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"entropy/internal/app"
	"entropy/internal/driver"
	"entropy/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.Width, cfg.Height = 60, 30
	cfg.Brush = 1
	cfg.Bind(flag.CommandLine)
	fps := flag.Int("fps", 30, "terminal redraw rate")
	logPath := flag.String("log-file", "", "write logs to this file (default: discard)")
	flag.Parse()

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	logger, err := app.NewLogger(cfg.LogLevel, out)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("initializing screen: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dcfg := driver.DefaultConfig()
	dcfg.TPS = cfg.TPS
	dcfg.Engine = cfg.EngineConfig()
	dcfg.Logger = logger
	drv := driver.New(dcfg)
	go func() {
		if err := drv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.WithError(err).Error("driver exited")
		}
	}()

	if err := drv.Init(cfg.Width, cfg.Height); err != nil {
		screen.Fini()
		log.Fatal(err)
	}

	front := term.New(drv, screen, app.NewBrush(cfg.Brush, cfg.AntiGravity), *fps, logger)
	runErr := front.Run(ctx)
	screen.Fini()
	stop()
	<-drv.Done()
	if runErr != nil {
		log.Fatal(runErr)
	}
}
