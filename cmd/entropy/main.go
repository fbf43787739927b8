//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"

	"entropy/internal/app"
	"entropy/internal/core"
	"entropy/internal/driver"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger, err := app.NewLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatal(err)
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
		logger.Fatal(err)
	}

	game := app.New(drv, cfg, logger)
	ebiten.SetWindowTitle("entropy")
	ebiten.SetWindowSize(game.WindowSize(core.Size{W: cfg.Width, H: cfg.Height}))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal(err)
	}
	stop()
	<-drv.Done()
}
