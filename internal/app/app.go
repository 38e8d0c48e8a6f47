// Package app assembles the catalog service from configuration.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"musicstore/internal/busy"
	"musicstore/internal/config"
	"musicstore/internal/events"
	"musicstore/internal/fixtures"
	"musicstore/internal/modules/auth"
	"musicstore/internal/pkg/jwt"
	"musicstore/internal/repository"
	"musicstore/internal/storage"
)

type App struct {
	Config *config.Config
	KV     storage.KV
	Hub    *events.Hub
	Stores *repository.Stores
	Busy   *busy.Counter
	JWT    *jwt.Service
	Auth   *auth.Service
}

// New opens the configured storage backend and builds the service over it.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	kv, err := storage.Open(storage.Options{
		Driver:      cfg.StorageDriver,
		DatabaseURL: cfg.DatabaseURL,
		BoltPath:    cfg.BoltPath,
	})
	if err != nil {
		return nil, err
	}

	a, err := NewWithKV(ctx, cfg, kv)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	return a, nil
}

// NewWithKV hydrates every collection from kv, seeding the embedded catalog
// for keys never written, and makes sure the bootstrap admin exists.
func NewWithKV(ctx context.Context, cfg *config.Config, kv storage.KV) (*App, error) {
	seed, err := fixtures.Default()
	if err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	hub := events.NewHub()
	stores := repository.NewStores(kv, hub)
	if err := stores.Hydrate(ctx, seed); err != nil {
		return nil, fmt.Errorf("hydrate stores: %w", err)
	}

	j := jwt.New(cfg.JWTSecret, cfg.JWTTTL)
	authSvc := auth.NewService(stores.Users, j, cfg.JWTTTL)
	if err := authSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("bootstrap admin: %w", err)
	}

	zap.S().Infow("catalog ready",
		"driver", cfg.StorageDriver,
		"tutors", stores.Tutors.Len(),
		"products", stores.Products.Len(),
		"courses", stores.Courses.Len(),
	)

	return &App{
		Config: cfg,
		KV:     kv,
		Hub:    hub,
		Stores: stores,
		Busy:   &busy.Counter{},
		JWT:    j,
		Auth:   authSvc,
	}, nil
}

// Close disconnects feed subscribers and releases the storage backend.
func (a *App) Close() error {
	a.Hub.Close()
	return a.KV.Close()
}
