package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movpress/internal/config"
	"movpress/internal/encoding"
	"movpress/internal/history"
	"movpress/internal/logging"
	"movpress/internal/web"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := logging.NewForDir(cfg.Logging.Level, cfg.Logging.Format, cfg.Paths.LogDir, "movpressd.log")
	if err != nil {
		return err
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.HistoryPath())
		if err != nil {
			return err
		}
		defer store.Close()
	}

	runner, err := encoding.NewRunner(
		cfg.Encoder.FFmpegBinary,
		encoding.WithTimeout(time.Duration(cfg.Encoder.EncodeTimeout)*time.Second),
		encoding.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	server, err := web.New(cfg, runner, store, logger)
	if err != nil {
		return err
	}

	if err := server.Start(ctx); err != nil {
		return err
	}

	logger.Info("movpressd started",
		logging.String("address", server.Addr()),
		logging.String("work_dir", cfg.Paths.WorkDir),
	)

	<-ctx.Done()
	logger.Info("movpressd stopping")
	server.Stop()
	return nil
}
