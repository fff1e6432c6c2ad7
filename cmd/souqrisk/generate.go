package main

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/souqrisk/souqrisk/internal/dataset"
	"github.com/souqrisk/souqrisk/internal/model"
	"github.com/souqrisk/souqrisk/internal/synthetic"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a labeled synthetic listing dataset",
		Long: `Generate synthetic marketplace listings with a configurable share of
injected suspicious signals (spam titles, contact details, price
undercutting, keyword stuffing), labeled with the injection reasons.

Examples:
  souqrisk generate --count 2500 --output listings.csv
  souqrisk generate --count 500 --suspicious-ratio 0.4 --seed 7 -o batch.csv`,
		RunE: runGenerate,
	}

	cmd.Flags().IntP("count", "n", 2500, "Number of listings to generate")
	cmd.Flags().Float64("suspicious-ratio", 0.3, "Fraction of listings with injected suspicious signals")
	cmd.Flags().Int64("seed", 42, "Random seed")
	cmd.Flags().StringP("output", "o", "synthetic_listings.csv", "Output CSV path")

	_ = viper.BindPFlag("generate.count", cmd.Flags().Lookup("count"))
	_ = viper.BindPFlag("generate.suspicious_ratio", cmd.Flags().Lookup("suspicious-ratio"))
	_ = viper.BindPFlag("generate.seed", cmd.Flags().Lookup("seed"))
	_ = viper.BindPFlag("generate.output", cmd.Flags().Lookup("output"))

	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	count := viper.GetInt("generate.count")
	ratio := viper.GetFloat64("generate.suspicious_ratio")
	seed := viper.GetInt64("generate.seed")
	output := viper.GetString("generate.output")

	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}
	if ratio < 0 || ratio > 1 {
		return fmt.Errorf("suspicious-ratio must be in [0,1], got %v", ratio)
	}

	slog.Info("Generating synthetic listings",
		"count", count, "suspicious_ratio", ratio, "seed", seed)

	g := synthetic.NewGenerator(seed)
	nSuspicious := int(float64(count) * ratio)

	bar := progressbar.Default(int64(count), "generating")
	listings := make([]model.Listing, 0, count)
	for i := 0; i < count; i++ {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		listings = append(listings, g.Listing(i < nSuspicious))
		_ = bar.Add(1)
	}

	// Interleave suspicious and normal rows so the file doesn't lead with
	// one class.
	shuffle := rand.New(rand.NewSource(seed))
	shuffle.Shuffle(len(listings), func(i, j int) {
		listings[i], listings[j] = listings[j], listings[i]
	})

	if err := dataset.WriteListings(output, listings); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	slog.Info("Dataset written", "path", output, "rows", len(listings), "suspicious", nSuspicious)
	return nil
}
