package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/recall-bot/internal/config"
	"github.com/aliskhannn/recall-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/recall-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/recall-bot/internal/infra/sqlite"
	sqliterepo "github.com/aliskhannn/recall-bot/internal/infra/sqlite/repository"
	"github.com/aliskhannn/recall-bot/internal/repository"
	"github.com/aliskhannn/recall-bot/internal/service"
)

// openStore opens the store selected by cfg.Store.Driver. The returned
// cleanup releases its connections.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (service.ItemStore, func(), error) {
	noop := func() {}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		return repository.NewMemoryStore(), noop, nil

	case config.DriverJSON:
		log.Info("using json store", zap.String("path", cfg.Store.JSONPath))
		return repository.NewFileStore(cfg.Store.JSONPath), noop, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using sqlite store",
			zap.String("path", cfg.Store.SQLitePath),
			zap.String("collection", cfg.Store.Collection),
		)
		return sqliterepo.NewReviewItemRepository(db, cfg.Store.Collection), func() { _ = db.Close() }, nil

	case config.DriverPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, err
		}

		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}

		log.Info("using postgres store", zap.String("collection", cfg.Store.Collection))
		return pgrepo.NewReviewItemRepository(pool, cfg.Store.Collection), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown store driver %q", config.ErrInvalidConfig, cfg.Store.Driver)
	}
}
