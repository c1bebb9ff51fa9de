// Package main is the entry point for the interactive fractal viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/fractals/internal/config"
	"github.com/Faultbox/fractals/internal/game"
	"github.com/Faultbox/fractals/internal/logger"
	"github.com/Faultbox/fractals/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load(config.CLI())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Fractals ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(ctx context.Context, cfg *config.Config) error {
	g, err := game.New(cfg)
	if err != nil {
		return err
	}
	defer g.Close()

	v, err := viewer.New(cfg, g)
	if err != nil {
		return err
	}
	defer v.Close()

	if err := g.Start(ctx); err != nil {
		return err
	}
	logger.Info("fractal seeded", zap.Uint64("seed", g.Seed()))
	return v.Run(ctx)
}
