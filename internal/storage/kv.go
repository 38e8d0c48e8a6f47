// Package storage holds the durable key-value backends that mirror the
// in-memory catalog collections. Each collection is written as one value
// under a fixed key.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"musicstore/internal/database"
)

var ErrKeyNotFound = errors.New("storage: key not found")

type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

const (
	DriverGorm   = "gorm"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

type Options struct {
	Driver      string
	DatabaseURL string
	BoltPath    string
}

// Open returns the backend named by opts.Driver. An empty driver means gorm.
func Open(opts Options) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverGorm:
		db, err := database.Connect(opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		return NewGormKV(db)
	case DriverBolt:
		return OpenBolt(opts.BoltPath)
	case DriverMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
