package main

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/souqrisk/souqrisk/internal/config"
	"github.com/souqrisk/souqrisk/internal/dataset"
	"github.com/souqrisk/souqrisk/internal/model"
	"github.com/souqrisk/souqrisk/internal/scorer"
	"github.com/souqrisk/souqrisk/internal/storage"
)

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a listing batch against the trained model",
		Long: `Score listings from a CSV batch with a previously trained model bundle.
Output rows are ordered descending by risk score.

Examples:
  souqrisk score --input new_listings.csv --output scored.csv
  souqrisk score -i new_listings.csv -o scored.csv --save
  souqrisk score -i new_listings.csv --top 10`,
		RunE: runScore,
	}

	cmd.Flags().StringP("input", "i", "", "Listing CSV to score (required)")
	cmd.Flags().StringP("output", "o", "", "Scored CSV output path (optional)")
	cmd.Flags().String("model", "", "Model bundle path (default: user data dir)")
	cmd.Flags().Int("top", 0, "Print the N highest-risk listings")
	cmd.Flags().Bool("save", false, "Persist scores to the local database")
	cmd.Flags().String("db", "", "Database path (default: user data dir)")
	_ = cmd.MarkFlagRequired("input")

	_ = viper.BindPFlag("score.input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("score.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("score.model", cmd.Flags().Lookup("model"))
	_ = viper.BindPFlag("score.top", cmd.Flags().Lookup("top"))
	_ = viper.BindPFlag("score.save", cmd.Flags().Lookup("save"))
	_ = viper.BindPFlag("score.db", cmd.Flags().Lookup("db"))

	return cmd
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	input := config.ExpandPath(viper.GetString("score.input"))
	output := config.ExpandPath(viper.GetString("score.output"))
	modelPath := config.ExpandPath(viper.GetString("score.model"))
	if modelPath == "" {
		modelPath = config.DefaultModelPath()
	}

	batch, err := dataset.ReadListings(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to load listings: %w", err)
	}

	s, err := scorer.Load(modelPath)
	if err != nil {
		return fmt.Errorf("failed to load model bundle: %w", err)
	}

	scored, err := s.Score(ctx, batch)
	if err != nil {
		return err
	}

	var flagged int
	for _, sl := range scored {
		flagged += sl.PredictedSuspicious
	}
	slog.Info("Batch scored", "rows", len(scored), "flagged", flagged)

	if output != "" {
		if err := dataset.WriteScored(output, scored); err != nil {
			return fmt.Errorf("failed to write scored output: %w", err)
		}
		slog.Info("Scored output written", "path", output)
	}

	if viper.GetBool("score.save") {
		dbPath := config.ExpandPath(viper.GetString("score.db"))
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
		if err := db.SaveScores(ctx, uuid.NewString(), scored); err != nil {
			return fmt.Errorf("failed to save scores: %w", err)
		}
		slog.Info("Scores saved", "db", dbPath)
	}

	if top := viper.GetInt("score.top"); top > 0 {
		if top > len(scored) {
			top = len(scored)
		}
		printScoredTable(scored[:top])
	}
	return nil
}

func printScoredTable(scored []model.ScoredListing) {
	fmt.Printf("%-10s %-12s %-40s %10s %6s\n",
		"id", "category", "title", "price_aed", "risk")
	for _, sl := range scored {
		title := sl.Title
		if runes := []rune(title); len(runes) > 40 {
			title = string(runes[:37]) + "..."
		}
		fmt.Printf("%-10s %-12s %-40s %10.0f %6.3f\n",
			sl.ListingID, sl.Category, title, sl.PriceAED, sl.RiskScore)
	}
}
