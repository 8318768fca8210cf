package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/mealdb/internal/app"
	"github.com/samvad-hq/mealdb/internal/config"
	"github.com/samvad-hq/mealdb/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mealfeed start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg, nil)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("mealfeed starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	feeder, err := app.NewFeeder(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize feeder", "error", err)
		return err
	}

	if err := feeder.Run(ctx); err != nil {
		return fmt.Errorf("feeder run: %w", err)
	}

	return nil
}
