package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/fruits-in-go/pkg/server/store"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace every fruit with the starter set",
	Long: `Delete every fruit in the configured database and insert the starter set.

This is the same operation as GET /fruits/seed. The inserted records are
printed as a JSON array.

Example:
  DATABASE_URL=mongodb://localhost:27017/fruits fruitsctl seed`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		ctx := context.Background()
		backing, err := connectStores(ctx, cfg.DatabaseURL, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = backing.Close(ctx) }()

		if err := seedFruits(ctx, backing.Fruits, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func seedFruits(ctx context.Context, fruits store.FruitsStore, out io.Writer) error {
	if err := fruits.DeleteAll(ctx); err != nil {
		return err
	}
	created, err := fruits.CreateMany(ctx, store.StarterFruits())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(created)
}
