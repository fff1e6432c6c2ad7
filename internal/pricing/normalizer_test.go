package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqrisk/souqrisk/internal/model"
)

func listings(category string, prices ...float64) []model.Listing {
	out := make([]model.Listing, len(prices))
	for i, p := range prices {
		out[i] = model.Listing{Category: category, PriceAED: p}
	}
	return out
}

func TestFitOutlier(t *testing.T) {
	batch := listings("Mobiles", 100, 100, 100, 10)
	table := Fit(batch)

	z := table.ZScore(batch[3])
	assert.Less(t, z, -1.4, "outlier should sit well below the category mean")

	zNormal := table.ZScore(batch[0])
	assert.Greater(t, zNormal, 0.0)
}

func TestFeaturesFlags(t *testing.T) {
	// A larger group so the outlier clears the -2 sigma threshold.
	batch := listings("Mobiles", 100, 100, 100, 100, 100, 100, 100, 100, 100, 5)
	table := Fit(batch)

	z, tooLow, tooHigh := table.Features(batch[len(batch)-1])
	assert.Less(t, z, -2.0)
	assert.Equal(t, 1.0, tooLow)
	assert.Equal(t, 0.0, tooHigh)

	expensive := model.Listing{Category: "Mobiles", PriceAED: 250}
	z, tooLow, tooHigh = table.Features(expensive)
	assert.Greater(t, z, 2.0)
	assert.Equal(t, 0.0, tooLow)
	assert.Equal(t, 1.0, tooHigh)
}

func TestSingleMemberCategory(t *testing.T) {
	batch := listings("Apartments", 5000)
	table := Fit(batch)

	s := table.Lookup("Apartments")
	require.Equal(t, 1, s.Count)
	assert.Equal(t, 1.0, s.Std, "undefined std must be clamped to 1")

	z, tooLow, tooHigh := table.Features(batch[0])
	assert.Equal(t, 0.0, z, "single member equals its mean")
	assert.Equal(t, 0.0, tooLow)
	assert.Equal(t, 0.0, tooHigh)
}

func TestZeroVarianceCategory(t *testing.T) {
	batch := listings("Jobs", 0, 0, 0)
	table := Fit(batch)

	s := table.Lookup("Jobs")
	assert.Equal(t, 1.0, s.Std)
	assert.Equal(t, 0.0, table.ZScore(batch[0]))
}

func TestUnseenCategoryFallsBackToGlobal(t *testing.T) {
	batch := listings("Mobiles", 100, 200, 300)
	table := Fit(batch)

	unseen := model.Listing{Category: "Boats", PriceAED: 200}
	assert.Equal(t, table.Global.Mean, table.Lookup("Boats").Mean)
	assert.InDelta(t, 0.0, table.ZScore(unseen), 1e-9)
}
