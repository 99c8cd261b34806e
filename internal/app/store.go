package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/adapter/mongo"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/adapter/postgres"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/adapter/sqlite"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/config"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/service/dictionary"
)

// OpenStore connects to the configured backend, bootstraps its schema and
// returns the store with a function that releases its connections.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (dictionary.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("postgres store ready")
		return postgres.New(pool), pool.Close, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("sqlite store ready", slog.String("path", cfg.SQLite.Path))
		return sqlite.New(db), func() { _ = db.Close() }, nil

	case config.BackendMongo:
		store, closeFn, err := OpenMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("mongo store ready",
			slog.String("database", cfg.Mongo.Database),
			slog.Bool("transactions", cfg.Mongo.Transactions),
		)
		return store, closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}

// OpenMongo connects to MongoDB and ensures the parent-reference indexes.
func OpenMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Store, func(), error) {
	client, err := mongo.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = client.Disconnect(context.Background()) }

	store := mongo.New(client, cfg.Database, cfg.Transactions)
	if err := store.EnsureIndexes(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}

	return store, closeFn, nil
}
