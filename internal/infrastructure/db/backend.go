// Package db selects and opens the storage backend named by the config.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/copebusiness/portal/internal/core/ports"
	"github.com/copebusiness/portal/internal/infrastructure/db/memory"
	mongostore "github.com/copebusiness/portal/internal/infrastructure/db/mongo"
	"github.com/copebusiness/portal/internal/infrastructure/db/postgres"
	redisstore "github.com/copebusiness/portal/internal/infrastructure/db/redis"
	"github.com/copebusiness/portal/internal/pkg/config"
)

// KeyValueStore is everything the services keep outside the primary store:
// token revocations, one-time tokens and purchase idempotency keys.
type KeyValueStore interface {
	ports.TokenRevoker
	ports.OneTimeTokenStore
	ports.IdempotencyStore
}

// Backend is an opened storage stack.
type Backend struct {
	Repos  ports.Repositories
	Tokens KeyValueStore
	Checks map[string]func(ctx context.Context) error

	closers []func(ctx context.Context)
}

// Open connects the primary store selected by STORE_DRIVER and, when
// REDIS_ADDR is set, Redis for tokens. Without Redis tokens live in memory.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	b := &Backend{Checks: make(map[string]func(ctx context.Context) error)}

	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, database, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		})
		if err := mongostore.EnsureIndexes(ctx, database); err != nil {
			b.Close(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		b.Repos = mongostore.NewRepositories(database)
		b.Checks["mongodb"] = mongostore.Pinger(database)

	case config.DriverPostgres:
		store, err := postgres.Open(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func(context.Context) { store.Close() })
		b.Repos = store.Repositories()
		b.Checks["postgres"] = store.Ping

	case config.DriverMemory:
		b.Repos = memory.New().Repositories()

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.Redis.Addr == "" {
		b.Tokens = memory.NewTokenStore()
		log.Info().Str("driver", cfg.StoreDriver).Msg("storage ready, tokens in memory")
		return b, nil
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		b.Close(ctx)
		return nil, err
	}
	b.closers = append(b.closers, func(context.Context) {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	})
	b.Tokens = redisstore.NewTokenStore(rdb)
	b.Checks["redis"] = redisstore.Pinger(rdb)

	log.Info().Str("driver", cfg.StoreDriver).Str("redis", cfg.Redis.Addr).Msg("storage ready")
	return b, nil
}

// Close releases connections in reverse order of opening.
func (b *Backend) Close(ctx context.Context) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i](ctx)
	}
	b.closers = nil
}
