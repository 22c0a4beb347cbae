package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/recall-bot/internal/config"
	"github.com/aliskhannn/recall-bot/internal/logger"
	"github.com/aliskhannn/recall-bot/internal/repository"
	"github.com/aliskhannn/recall-bot/internal/service"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:          "recall",
	Short:        "Spaced repetition review with the SM-2 algorithm",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./config/config.yaml)")
}

// app bundles what every command needs.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   service.ItemStore
	cleanup func()
}

func (a *app) Close() {
	if a.cleanup != nil {
		a.cleanup()
	}
	_ = a.logger.Sync()
}

// newApp loads configuration, builds the logger and opens the store. With
// seed set an empty store is filled from cfg.SeedPath when that file exists.
func newApp(ctx context.Context, seed bool) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	store, cleanup, err := openStore(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}

	a := &app{cfg: cfg, logger: log, store: store, cleanup: cleanup}

	if !seed {
		return a, nil
	}

	if err := a.seed(ctx); err != nil {
		log.Warn("failed to seed review items", zap.String("path", cfg.SeedPath), zap.Error(err))
	}

	return a, nil
}

func (a *app) seed(ctx context.Context) error {
	if a.cfg.SeedPath == "" {
		return nil
	}

	items, err := a.store.Load(ctx)
	if err != nil || len(items) > 0 {
		// A failed load is reported by the scheduler.
		return nil
	}

	seed, err := repository.ReadItemsFile(a.cfg.SeedPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	res, err := service.NewImporter(a.store, a.logger).Import(ctx, seed, time.Now())
	if err != nil {
		return err
	}

	a.logger.Info("collection seeded", zap.String("path", a.cfg.SeedPath), zap.Int("added", res.Added))
	return nil
}

// newScheduler loads the collection into a scheduler. A failed load is
// logged and returned, the scheduler stays usable and empty.
func (a *app) newScheduler(ctx context.Context) (*service.ReviewScheduler, error) {
	s := service.NewReviewScheduler(a.store, a.logger)
	return s, s.Load(ctx)
}
