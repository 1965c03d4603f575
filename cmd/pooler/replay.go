package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fundpool/internal/config"
	"fundpool/internal/journal"
	"fundpool/internal/storage"
	"fundpool/internal/storage/postgres"
)

func runReplay(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadReplay(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Input == "" {
		return fmt.Errorf("input journal path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var projection journal.ProjectionStore
	var stateStore journal.StateStore
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		projection = store
		stateStore = &journal.DBStateStore{Store: store, Name: cfg.StateName}
	}
	if cfg.StateFile != "" {
		stateStore = &journal.FileStateStore{Path: cfg.StateFile}
	}

	world, err := journal.NewWorld(logger)
	if err != nil {
		return err
	}

	replayer := journal.NewReplayer(journal.Config{
		BatchSize:  cfg.BatchSize,
		StateStore: stateStore,
		Projection: projection,
		Results:    storage.NewJsonlSink(cfg.Results),
	}, world, logger)

	logger.Info("replay start",
		zap.String("in", cfg.Input),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
		zap.String("results", cfg.Results),
		zap.Int("batch_size", cfg.BatchSize),
	)

	return replayer.Run(ctx, cfg.Input)
}
