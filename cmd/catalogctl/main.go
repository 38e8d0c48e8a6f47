// Command catalogctl maintains the durable catalog collections offline:
// seeding, exporting and importing fixture documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"musicstore/internal/config"
	"musicstore/internal/fixtures"
	"musicstore/internal/pkg/logger"
	"musicstore/internal/repository"
	"musicstore/internal/storage"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "catalogctl",
	Short:         "Maintain the musicstore catalog storage",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		_, err = logger.Init(cfg.IsProduction(), cfg.LogFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(seedCmd, exportCmd, importCmd, keysCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
	_ = zap.L().Sync()
}

// openStores opens the configured backend and hydrates every collection,
// seeding keys that were never written.
func openStores(ctx context.Context) (*repository.Stores, storage.KV, error) {
	kv, err := storage.Open(storage.Options{
		Driver:      cfg.StorageDriver,
		DatabaseURL: cfg.DatabaseURL,
		BoltPath:    cfg.BoltPath,
	})
	if err != nil {
		return nil, nil, err
	}

	seed, err := fixtures.Default()
	if err != nil {
		_ = kv.Close()
		return nil, nil, err
	}

	stores := repository.NewStores(kv, nil)
	if err := stores.Hydrate(ctx, seed); err != nil {
		_ = kv.Close()
		return nil, nil, err
	}
	return stores, kv, nil
}
