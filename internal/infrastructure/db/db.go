// Package db opens the key-value backend selected by configuration.
package db

import (
	"context"
	"fmt"

	"github.com/99minutos/record-admin/internal/core/ports"
	"github.com/99minutos/record-admin/internal/infrastructure/config"
	"github.com/99minutos/record-admin/internal/infrastructure/db/memory"
	mongostore "github.com/99minutos/record-admin/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/record-admin/internal/infrastructure/db/redis"
	"github.com/99minutos/record-admin/internal/infrastructure/db/sqlkv"
)

// Open connects to the backend named by cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config) (ports.StoreBackend, error) {
	switch cfg.Store.Driver {
	case "memory":
		return memory.NewStore(), nil
	case "redis":
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return redisstore.NewStore(client), nil
	case "mongo":
		store, err := mongostore.Open(ctx, mongostore.Config{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case sqlkv.DriverSQLite, sqlkv.DriverPostgres:
		store, err := sqlkv.Open(ctx, sqlkv.Config{Driver: cfg.Store.Driver, DSN: cfg.SQL.DSN})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("db: unknown driver %q", cfg.Store.Driver)
	}
}
