package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"musicstore/internal/domain"
	"musicstore/internal/fixtures"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the embedded catalog to storage",
	Long: `Write the embedded catalog to every collection key that has never been
written. With --force every collection is reset to the embedded catalog,
registered users included.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "overwrite collections that already exist")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	stores, kv, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer kv.Close()

	if seedForce {
		seed, err := fixtures.Default()
		if err != nil {
			return err
		}
		if seed.Users == nil {
			seed.Users = []domain.User{}
		}
		if err := stores.Replace(ctx, seed); err != nil {
			return err
		}
	}

	zap.S().Infow("catalog seeded",
		"force", seedForce,
		"tutors", stores.Tutors.Len(),
		"products", stores.Products.Len(),
		"courses", stores.Courses.Len(),
		"services", stores.Services.Len(),
		"news", stores.News.Len(),
	)
	return nil
}
