package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/souqrisk/souqrisk/internal/config"
	"github.com/souqrisk/souqrisk/internal/storage"
)

func topCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the highest-risk listings stored in the database",
		Long: `Show the highest-risk scored listings persisted by score --save,
descending by risk score.

Examples:
  souqrisk top
  souqrisk top --limit 25 --db ./souqrisk.db`,
		RunE: runTop,
	}

	cmd.Flags().IntP("limit", "n", 10, "Number of listings to show")
	cmd.Flags().String("db", "", "Database path (default: user data dir)")

	_ = viper.BindPFlag("top.limit", cmd.Flags().Lookup("limit"))
	_ = viper.BindPFlag("top.db", cmd.Flags().Lookup("db"))

	return cmd
}

func runTop(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	limit := viper.GetInt("top.limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}

	dbPath := config.ExpandPath(viper.GetString("top.db"))
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

	scored, err := db.TopScores(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to query scores: %w", err)
	}
	if len(scored) == 0 {
		fmt.Println("No scored listings stored yet. Run score --save first.")
		return nil
	}

	printScoredTable(scored)
	return nil
}
