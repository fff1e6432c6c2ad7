package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/souqrisk/souqrisk/internal/artifact"
	"github.com/souqrisk/souqrisk/internal/config"
	"github.com/souqrisk/souqrisk/internal/dataset"
	"github.com/souqrisk/souqrisk/internal/report"
	"github.com/souqrisk/souqrisk/internal/trainer"
	"github.com/souqrisk/souqrisk/internal/vectorize"
)

func trainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the risk model on labeled listings",
		Long: `Train the listing risk classifier on a labeled CSV batch.

The batch is stratified-split 80/20, the text vectorizer is fitted on the
training partition only, and the resulting bundle (classifier, vectorizer,
feature schema, price statistics) is persisted for scoring.

Examples:
  souqrisk train --input listings.csv
  souqrisk train -i listings.csv --model ./models/risk_model.msgpack`,
		RunE: runTrain,
	}

	cmd.Flags().StringP("input", "i", "", "Labeled listing CSV (required)")
	cmd.Flags().String("model", "", "Model bundle output path (default: user data dir)")
	cmd.Flags().Float64("test-fraction", trainer.DefaultTestFraction, "Held-out fraction for evaluation")
	cmd.Flags().Int("max-features", vectorize.DefaultMaxFeatures, "Lexical vocabulary bound")
	cmd.Flags().Int64("seed", 42, "Split and training seed")
	_ = cmd.MarkFlagRequired("input")

	_ = viper.BindPFlag("train.input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("train.model", cmd.Flags().Lookup("model"))
	_ = viper.BindPFlag("train.test_fraction", cmd.Flags().Lookup("test-fraction"))
	_ = viper.BindPFlag("train.max_features", cmd.Flags().Lookup("max-features"))
	_ = viper.BindPFlag("train.seed", cmd.Flags().Lookup("seed"))

	return cmd
}

func runTrain(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	input := config.ExpandPath(viper.GetString("train.input"))
	modelPath := config.ExpandPath(viper.GetString("train.model"))
	if modelPath == "" {
		modelPath = config.DefaultModelPath()
	}

	batch, err := dataset.ReadListings(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to load training data: %w", err)
	}
	slog.Info("Loaded training data", "path", input, "rows", len(batch))

	t := trainer.New(
		trainer.WithTestFraction(viper.GetFloat64("train.test_fraction")),
		trainer.WithMaxFeatures(viper.GetInt("train.max_features")),
		trainer.WithSeed(viper.GetInt64("train.seed")),
	)

	result, err := t.Train(ctx, batch)
	if err != nil {
		return err
	}

	if err := artifact.Save(modelPath, result.Bundle); err != nil {
		return fmt.Errorf("failed to persist model bundle: %w", err)
	}
	slog.Info("Model bundle saved", "path", modelPath)

	fmt.Println(report.Render(result.Report))
	return nil
}
