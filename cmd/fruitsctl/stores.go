package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/fruits-in-go/pkg/db"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/server/store"
	gormstore "github.com/doodlesbykumbi/fruits-in-go/pkg/server/store/gorm"
	mongostore "github.com/doodlesbykumbi/fruits-in-go/pkg/server/store/mongo"
)

// stores is the pair of stores backing one database connection
type stores struct {
	Fruits  store.FruitsStore
	Health  store.HealthStore
	Backend db.Backend
	close   func(context.Context) error
}

// Close releases the database connection
func (s *stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// connectStores opens the database named by dbURL.
func connectStores(ctx context.Context, dbURL string, debug bool) (*stores, error) {
	if dbURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	cfg := db.Config{URL: dbURL, Debug: debug}
	backend := db.DetectBackend(dbURL)

	switch backend {
	case db.BackendMongo:
		client, database, err := db.ConnectMongo(cfg)
		if err != nil {
			return nil, err
		}
		return &stores{
			Fruits:  mongostore.NewFruitsStore(database),
			Health:  mongostore.NewHealthStore(client),
			Backend: backend,
			close:   client.Disconnect,
		}, nil

	case db.BackendPostgres, db.BackendSQLite:
		database, err := db.Connect(cfg)
		if err != nil {
			return nil, err
		}
		fruits := gormstore.NewFruitsStore(database)
		if err := fruits.EnsureTable(ctx); err != nil {
			return nil, fmt.Errorf("failed to prepare fruits table: %w", err)
		}
		return &stores{
			Fruits:  fruits,
			Health:  gormstore.NewHealthStore(database),
			Backend: backend,
			close: func(context.Context) error {
				sqlDB, err := database.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL scheme, expected mongodb://, postgres:// or sqlite://")
	}
}

// openStores is connectStores for the server: a connection failure is logged
// and every request is then answered with that failure.
func openStores(ctx context.Context, dbURL string, logger *zap.Logger) *stores {
	s, err := connectStores(ctx, dbURL, logger.Core().Enabled(zap.DebugLevel))
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		unavailable := store.NewUnavailableStore(err)
		return &stores{Fruits: unavailable, Health: unavailable}
	}
	logger.Info("Database configured", zap.String("backend", s.Backend.String()))
	return s
}
