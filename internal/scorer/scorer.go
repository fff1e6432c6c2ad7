// Package scorer runs inference: it loads a persisted model bundle, rebuilds
// the exact training-time feature space, and assigns each listing a risk
// score and a thresholded decision.
package scorer

import (
	"context"
	"fmt"
	"sort"

	"github.com/souqrisk/souqrisk/internal/artifact"
	"github.com/souqrisk/souqrisk/internal/common"
	"github.com/souqrisk/souqrisk/internal/features"
	"github.com/souqrisk/souqrisk/internal/model"
	"github.com/souqrisk/souqrisk/internal/vectorize"
)

// Threshold converts a risk score into the binary suspicious decision.
const Threshold = 0.5

// Scorer scores listing batches against one loaded model bundle. It is
// stateless across calls and safe for concurrent use; the bundle is
// read-only after construction.
type Scorer struct {
	bundle    *artifact.Bundle
	vec       *vectorize.Vectorizer
	assembler *features.Assembler
}

// Load reads a bundle from disk and prepares a scorer for it.
func Load(path string, opts ...features.Option) (*Scorer, error) {
	b, err := artifact.Load(path)
	if err != nil {
		return nil, err
	}
	return FromBundle(b, opts...)
}

// FromBundle prepares a scorer from an already-loaded bundle, failing fast
// if the persisted feature schema does not match what this build assembles.
func FromBundle(b *artifact.Bundle, opts ...features.Option) (*Scorer, error) {
	vec, err := vectorize.FromState(b.Vectorizer)
	if err != nil {
		return nil, err
	}

	current := features.NewSchema(vec.Vocabulary())
	if err := current.Check(b.Schema); err != nil {
		return nil, err
	}
	if got := len(b.Model.Weights); got != current.Dims() {
		return nil, fmt.Errorf("%w: model has %d coefficients, schema has %d columns",
			common.ErrSchemaMismatch, got, current.Dims())
	}

	return &Scorer{
		bundle:    b,
		vec:       vec,
		assembler: features.NewAssembler(opts...),
	}, nil
}

// Schema returns the feature schema the scorer was trained against.
func (s *Scorer) Schema() features.Schema { return s.bundle.Schema }

// Score assigns a risk score and decision to every listing and returns the
// batch sorted descending by risk score. Ties keep their input order, so the
// output is deterministic. The batch is all-or-nothing: any failure returns
// no partial results.
func (s *Scorer) Score(ctx context.Context, batch []model.Listing) ([]model.ScoredListing, error) {
	if len(batch) == 0 {
		return nil, common.ErrEmptyBatch
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lex, err := s.vec.Transform(s.assembler.Texts(batch))
	if err != nil {
		return nil, fmt.Errorf("failed to vectorize text: %w", err)
	}

	rows := make([]features.Vector, len(batch))
	for i, l := range batch {
		numeric := s.bundle.Scaler.Transform(s.assembler.NumericRow(l, s.bundle.Prices))
		rows[i] = features.Dense(numeric).Concat(lex[i])
	}

	probs, err := s.bundle.Model.PredictProba(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to score batch: %w", err)
	}

	scored := make([]model.ScoredListing, len(batch))
	for i, l := range batch {
		decision := 0
		if probs[i] >= Threshold {
			decision = 1
		}
		scored[i] = model.ScoredListing{
			Listing:             l,
			RiskScore:           probs[i],
			PredictedSuspicious: decision,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RiskScore > scored[j].RiskScore
	})
	return scored, nil
}
