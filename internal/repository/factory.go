package repository

import (
	"context"
	"fmt"

	"finance-assistant/pkg/config"
	"finance-assistant/pkg/mongodb"
	"finance-assistant/pkg/postgres"
	"finance-assistant/pkg/sqlite"

	"go.uber.org/zap"
)

// Cleanup releases the resources held by a store.
type Cleanup func()

// NewExpenseStore builds the backend named by cfg.Driver.
func NewExpenseStore(ctx context.Context, cfg *config.StoreConfig, logger *zap.Logger) (ExpenseStore, Cleanup, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := mongodb.NewClient(ctx, &cfg.Mongo, logger)
		if err != nil {
			return nil, nil, unavailable("connect", err)
		}
		collection := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		cleanup := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("MongoDB disconnect failed", zap.Error(err))
			}
		}
		return NewMongoExpenseRepository(collection, nil, logger), cleanup, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, nil, unavailable("connect", err)
		}
		repo := NewPostgresExpenseRepository(pool, nil, logger)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path, logger)
		if err != nil {
			return nil, nil, unavailable("open", err)
		}
		repo := NewSQLiteExpenseRepository(db, nil, logger)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		cleanup := func() {
			if err := db.Close(); err != nil {
				logger.Warn("SQLite close failed", zap.Error(err))
			}
		}
		return repo, cleanup, nil

	case config.DriverMemory:
		logger.Warn("Using in-memory expense store, data will not survive restarts")
		return NewMemoryExpenseRepository(nil), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
}
