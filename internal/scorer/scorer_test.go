package scorer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqrisk/souqrisk/internal/artifact"
	"github.com/souqrisk/souqrisk/internal/common"
	"github.com/souqrisk/souqrisk/internal/features"
	"github.com/souqrisk/souqrisk/internal/model"
	"github.com/souqrisk/souqrisk/internal/synthetic"
	"github.com/souqrisk/souqrisk/internal/trainer"
)

func trainedBundle(t *testing.T) *artifact.Bundle {
	t.Helper()
	batch := synthetic.NewGenerator(42).Dataset(300, 0.3)
	result, err := trainer.New(trainer.WithSeed(42), trainer.WithMaxFeatures(500)).Train(context.Background(), batch)
	require.NoError(t, err)
	return result.Bundle
}

func TestScoreOrderingAndRange(t *testing.T) {
	s, err := FromBundle(trainedBundle(t))
	require.NoError(t, err)

	batch := synthetic.NewGenerator(99).Dataset(80, 0.3)
	scored, err := s.Score(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, scored, 80)

	for i, sl := range scored {
		assert.GreaterOrEqual(t, sl.RiskScore, 0.0)
		assert.LessOrEqual(t, sl.RiskScore, 1.0)
		if sl.RiskScore >= Threshold {
			assert.Equal(t, 1, sl.PredictedSuspicious)
		} else {
			assert.Equal(t, 0, sl.PredictedSuspicious)
		}
		if i > 0 {
			assert.GreaterOrEqual(t, scored[i-1].RiskScore, sl.RiskScore,
				"output must be sorted descending by risk score")
		}
	}
}

func TestScoreSeparatesInjectedSignals(t *testing.T) {
	s, err := FromBundle(trainedBundle(t))
	require.NoError(t, err)

	batch := []model.Listing{
		{
			ListingID: "clean-1", Category: "Mobiles", SellerType: model.SellerBusiness,
			Title: "Apple iPhone 14 128GB Like New", PostedDaysAgo: 12, PriceAED: 2800,
			Description: "Like New. No issues. Can meet in Dubai Marina.",
		},
		{
			ListingID: "scam-1", Category: "Mobiles", SellerType: model.SellerIndividual,
			Title: "URGENT SALE \U0001F525 CHEAP IPHONE 15 PRO", PostedDaysAgo: 0, PriceAED: 150,
			Description: "100% original guaranteed cheap cheap cheap cheap Contact WhatsApp +971501234567",
		},
		{
			ListingID: "clean-2", Category: "Mobiles", SellerType: model.SellerIndividual,
			Title: "Samsung S23 Ultra 256GB Used", PostedDaysAgo: 8, PriceAED: 2400,
			Description: "Used. Battery good. Includes charger. Available in JLT.",
		},
	}

	scored, err := s.Score(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, "scam-1", scored[0].ListingID,
		"the listing with injected suspicious signals should rank first")
}

func TestScoreDeterministic(t *testing.T) {
	s, err := FromBundle(trainedBundle(t))
	require.NoError(t, err)

	batch := synthetic.NewGenerator(17).Dataset(40, 0.3)
	first, err := s.Score(context.Background(), batch)
	require.NoError(t, err)
	second, err := s.Score(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, first, second, "scoring the same batch twice is byte-identical")
}

func TestScoreEmptyBatch(t *testing.T) {
	s, err := FromBundle(trainedBundle(t))
	require.NoError(t, err)

	_, err = s.Score(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrEmptyBatch)
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), artifact.DefaultFileName)
	require.NoError(t, artifact.Save(path, trainedBundle(t)))

	s, err := Load(path)
	require.NoError(t, err)

	batch := synthetic.NewGenerator(23).Dataset(20, 0.3)
	scored, err := s.Score(context.Background(), batch)
	require.NoError(t, err)
	assert.Len(t, scored, 20)
}

func TestLoadMissingArtifact(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.msgpack"))
	assert.ErrorIs(t, err, common.ErrArtifactNotFound)
}

func TestFromBundleSchemaMismatch(t *testing.T) {
	b := trainedBundle(t)
	b.Schema.Numeric[0] = "renamed_column"

	_, err := FromBundle(b)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSchemaMismatch)
}

func TestFromBundleVersionMismatch(t *testing.T) {
	b := trainedBundle(t)
	b.Schema.Version = features.SchemaVersion + 1

	_, err := FromBundle(b)
	assert.ErrorIs(t, err, common.ErrSchemaMismatch)
}
