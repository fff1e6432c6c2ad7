package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/souqrisk/souqrisk/internal/config"
	"github.com/souqrisk/souqrisk/internal/dataset"
	"github.com/souqrisk/souqrisk/internal/storage"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a listing CSV into the local database",
		Long: `Import listings from a CSV batch into the local database. Rows with an
existing listing_id are updated in place.

Examples:
  souqrisk import --input listings.csv
  souqrisk import -i listings.csv --db ./souqrisk.db`,
		RunE: runImport,
	}

	cmd.Flags().StringP("input", "i", "", "Listing CSV to import (required)")
	cmd.Flags().String("db", "", "Database path (default: user data dir)")
	_ = cmd.MarkFlagRequired("input")

	_ = viper.BindPFlag("import.input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("import.db", cmd.Flags().Lookup("db"))

	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	input := config.ExpandPath(viper.GetString("import.input"))
	batch, err := dataset.ReadListings(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to load listings: %w", err)
	}

	dbPath := config.ExpandPath(viper.GetString("import.db"))
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := db.SaveListings(ctx, batch); err != nil {
		return fmt.Errorf("failed to import listings: %w", err)
	}

	stored, err := db.GetListings(ctx)
	if err != nil {
		return fmt.Errorf("failed to count stored listings: %w", err)
	}

	slog.Info("Listings imported",
		"path", input, "rows", len(batch), "total_stored", len(stored), "db", dbPath)
	return nil
}
