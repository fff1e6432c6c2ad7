// Package trainer fits the listing risk model: stratified split, leak-free
// vectorizer fitting on the training partition only, classifier training,
// held-out evaluation, and artifact assembly.
package trainer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/souqrisk/souqrisk/internal/artifact"
	"github.com/souqrisk/souqrisk/internal/common"
	"github.com/souqrisk/souqrisk/internal/features"
	"github.com/souqrisk/souqrisk/internal/ml"
	"github.com/souqrisk/souqrisk/internal/model"
	"github.com/souqrisk/souqrisk/internal/pricing"
	"github.com/souqrisk/souqrisk/internal/vectorize"
)

// DefaultTestFraction is the held-out share of the labeled batch.
const DefaultTestFraction = 0.2

// Trainer holds the training configuration. The zero value is not usable;
// construct with New.
type Trainer struct {
	assembler    *features.Assembler
	TestFraction float64
	MaxFeatures  int
	Seed         int64
}

// Option customizes a Trainer.
type Option func(*Trainer)

// WithTestFraction overrides the held-out fraction.
func WithTestFraction(f float64) Option {
	return func(t *Trainer) { t.TestFraction = f }
}

// WithMaxFeatures bounds the lexical vocabulary.
func WithMaxFeatures(n int) Option {
	return func(t *Trainer) { t.MaxFeatures = n }
}

// WithSeed fixes the split and SGD shuffle seed.
func WithSeed(seed int64) Option {
	return func(t *Trainer) { t.Seed = seed }
}

// WithAssembler swaps the feature assembler, e.g. for a different locale's
// detector set.
func WithAssembler(a *features.Assembler) Option {
	return func(t *Trainer) { t.assembler = a }
}

// New returns a trainer with default settings.
func New(opts ...Option) *Trainer {
	t := &Trainer{
		assembler:    features.NewAssembler(),
		TestFraction: DefaultTestFraction,
		MaxFeatures:  vectorize.DefaultMaxFeatures,
		Seed:         42,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Result carries the evaluation report and the persistable bundle of a
// completed training run.
type Result struct {
	Bundle *artifact.Bundle
	Report model.TrainingReport
}

// Train fits the full pipeline on a labeled batch. Every listing must carry
// a label; training is all-or-nothing.
func (t *Trainer) Train(ctx context.Context, batch []model.Listing) (*Result, error) {
	if len(batch) == 0 {
		return nil, common.ErrEmptyBatch
	}

	labels := make([]int, len(batch))
	for i, l := range batch {
		label, ok := l.Label()
		if !ok {
			return nil, fmt.Errorf("%w: listing %s has no is_suspicious value",
				common.ErrMissingLabel, l.ListingID)
		}
		labels[i] = label
	}

	trainIdx, testIdx, err := ml.StratifiedSplit(labels, t.TestFraction, t.Seed)
	if err != nil {
		return nil, common.NewUserError("cannot split training data", err)
	}

	trainSet, yTrain := subset(batch, labels, trainIdx)
	testSet, yTest := subset(batch, labels, testIdx)

	slog.Info("Training risk model",
		"train_rows", len(trainSet),
		"test_rows", len(testSet),
		"max_features", t.MaxFeatures)

	// Price statistics and the scaler are fitted on the training partition
	// only and persisted, so evaluation and inference see no batch leakage.
	prices := pricing.Fit(trainSet)
	numTrain := t.assembler.NumericMatrix(trainSet, prices)
	scaler := ml.FitScaler(numTrain)

	vec := vectorize.New(t.MaxFeatures)
	if err := vec.Fit(t.assembler.Texts(trainSet)); err != nil {
		return nil, fmt.Errorf("failed to fit vectorizer: %w", err)
	}

	xTrain, err := combine(t.assembler, vec, scaler, prices, trainSet)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clf := ml.NewLogisticRegression(t.Seed)
	if err := clf.Fit(xTrain, yTrain); err != nil {
		return nil, fmt.Errorf("failed to fit classifier: %w", err)
	}

	xTest, err := combine(t.assembler, vec, scaler, prices, testSet)
	if err != nil {
		return nil, err
	}
	probs, err := clf.PredictProba(xTest)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate classifier: %w", err)
	}

	preds := make([]int, len(probs))
	for i, p := range probs {
		if p >= 0.5 {
			preds[i] = 1
		}
	}

	report := model.TrainingReport{
		TrainSize:  len(trainSet),
		TestSize:   len(testSet),
		Normal:     ml.PrecisionRecallF1(yTest, preds, 0),
		Suspicious: ml.PrecisionRecallF1(yTest, preds, 1),
		ROCAUC:     ml.ROCAUC(yTest, probs),
	}
	for _, y := range labels {
		if y == 1 {
			report.Positives++
		} else {
			report.Negatives++
		}
	}

	schema := features.NewSchema(vec.Vocabulary())
	bundle := artifact.New(schema, clf, scaler, vec.State(), prices)

	slog.Info("Training complete",
		"roc_auc", report.ROCAUC,
		"suspicious_recall", report.Suspicious.Recall,
		"features", schema.Dims())

	return &Result{Bundle: bundle, Report: report}, nil
}

func subset(batch []model.Listing, labels []int, idx []int) ([]model.Listing, []int) {
	listings := make([]model.Listing, len(idx))
	ys := make([]int, len(idx))
	for i, j := range idx {
		listings[i] = batch[j]
		ys[i] = labels[j]
	}
	return listings, ys
}

// combine builds the full sparse feature rows: standardized numeric block
// concatenated with the TF-IDF block.
func combine(a *features.Assembler, vec *vectorize.Vectorizer, scaler *ml.Scaler, prices *pricing.Table, batch []model.Listing) ([]features.Vector, error) {
	lex, err := vec.Transform(a.Texts(batch))
	if err != nil {
		return nil, fmt.Errorf("failed to vectorize text: %w", err)
	}

	rows := make([]features.Vector, len(batch))
	for i, l := range batch {
		numeric := scaler.Transform(a.NumericRow(l, prices))
		rows[i] = features.Dense(numeric).Concat(lex[i])
	}
	return rows, nil
}
