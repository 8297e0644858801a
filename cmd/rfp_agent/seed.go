package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/A3V1/B2B-RFP/internal/catalog"
	"github.com/A3V1/B2B-RFP/internal/db"
)

const seedWorkers = 8

var seedCmd = &cobra.Command{
	Use:   "seed [catalog.csv]",
	Short: "Load a component catalog CSV into the database",
	Long:  `Read a component catalog CSV and upsert every row into the components table. Requires DATABASE_URL.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	components, err := catalog.LoadCSV(args[0])
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	if len(components) == 0 {
		return fmt.Errorf("catalog %s contains no components", args[0])
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(seedWorkers)
	for _, component := range components {
		g.Go(func() error {
			return database.InsertComponent(gctx, component)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("Seeded %d components from %s\n", len(components), args[0])
	return nil
}
