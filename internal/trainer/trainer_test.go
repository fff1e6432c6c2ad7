package trainer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqrisk/souqrisk/internal/common"
	"github.com/souqrisk/souqrisk/internal/model"
	"github.com/souqrisk/souqrisk/internal/synthetic"
)

func TestTrainEndToEnd(t *testing.T) {
	batch := synthetic.NewGenerator(42).Dataset(300, 0.3)

	result, err := New(WithSeed(42), WithMaxFeatures(500)).Train(context.Background(), batch)
	require.NoError(t, err)

	// Regression floor on a batch with strongly injected suspicious
	// signals, not a strict bound.
	assert.Greater(t, result.Report.ROCAUC, 0.7)
	assert.Greater(t, result.Report.Suspicious.Recall, 0.5)

	assert.Equal(t, 240, result.Report.TrainSize)
	assert.Equal(t, 60, result.Report.TestSize)
	assert.Equal(t, 90, result.Report.Positives)

	require.NotNil(t, result.Bundle)
	assert.NotEmpty(t, result.Bundle.Model.Weights)
	assert.NotEmpty(t, result.Bundle.Vectorizer.Terms)
	assert.NotEmpty(t, result.Bundle.Prices.ByCategory)
	assert.Equal(t, result.Bundle.Schema.Dims(), len(result.Bundle.Model.Weights))
}

func TestTrainDeterministic(t *testing.T) {
	batch := synthetic.NewGenerator(7).Dataset(120, 0.3)

	a, err := New(WithSeed(1), WithMaxFeatures(200)).Train(context.Background(), batch)
	require.NoError(t, err)
	b, err := New(WithSeed(1), WithMaxFeatures(200)).Train(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, a.Bundle.Model.Weights, b.Bundle.Model.Weights)
	assert.Equal(t, a.Report, b.Report)
}

func TestTrainEmptyBatch(t *testing.T) {
	_, err := New().Train(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrEmptyBatch)
}

func TestTrainUnlabeledListing(t *testing.T) {
	batch := synthetic.NewGenerator(1).Dataset(20, 0.3)
	batch[3].IsSuspicious = nil

	_, err := New().Train(context.Background(), batch)
	assert.ErrorIs(t, err, common.ErrMissingLabel)
}

func TestTrainImbalancedLabels(t *testing.T) {
	g := synthetic.NewGenerator(2)
	batch := make([]model.Listing, 0, 20)
	for i := 0; i < 19; i++ {
		batch = append(batch, g.Listing(false))
	}
	batch = append(batch, g.Listing(true))

	_, err := New().Train(context.Background(), batch)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrLabelImbalance)

	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr, "imbalance surfaces as a user-facing error")
}

func TestTrainCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := synthetic.NewGenerator(3).Dataset(100, 0.3)
	_, err := New().Train(ctx, batch)
	assert.ErrorIs(t, err, context.Canceled)
}
