package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqrisk/souqrisk/internal/model"
	"github.com/souqrisk/souqrisk/internal/pricing"
)

func sampleBatch() []model.Listing {
	return []model.Listing{
		{
			ListingID:     "L1",
			Category:      "Mobiles",
			SellerType:    model.SellerBusiness,
			Title:         "iPhone 14 128GB",
			Description:   "Like new, with box. Call +971501234567",
			PostedDaysAgo: 3,
			PriceAED:      2500,
		},
		{
			ListingID:   "L2",
			Category:    "Mobiles",
			SellerType:  model.SellerIndividual,
			Title:       "URGENT SALE iPhone",
			Description: "cheap cheap cheap best price",
			PriceAED:    200,
		},
	}
}

func TestNumericRowOrder(t *testing.T) {
	batch := sampleBatch()
	prices := pricing.Fit(batch)
	a := NewAssembler()

	row := a.NumericRow(batch[0], prices)
	require.Len(t, row, len(NumericColumns()))

	cols := NumericColumns()
	byName := make(map[string]float64, len(cols))
	for i, name := range cols {
		byName[name] = row[i]
	}

	assert.Equal(t, 15.0, byName["title_len"])
	assert.Equal(t, 1.0, byName["has_phone"])
	assert.Equal(t, 0.0, byName["has_email"])
	assert.Equal(t, 1.0, byName["seller_is_business"])
	assert.Equal(t, 3.0, byName["posted_days_ago"])
	assert.Equal(t, 2500.0, byName["price_aed"])
}

func TestColumnOrderStableAcrossCallsAndRowOrder(t *testing.T) {
	batch := sampleBatch()
	prices := pricing.Fit(batch)
	a := NewAssembler()

	first := NumericColumns()
	second := NumericColumns()
	assert.Equal(t, first, second, "column names must be identical across calls")

	m1 := a.NumericMatrix(batch, prices)
	reversed := []model.Listing{batch[1], batch[0]}
	m2 := a.NumericMatrix(reversed, prices)

	require.Len(t, m1, 2)
	require.Len(t, m2, 2)
	assert.Equal(t, m1[0], m2[1], "row content must not depend on batch order")
	assert.Equal(t, m1[1], m2[0])
}

func TestCombinedText(t *testing.T) {
	a := NewAssembler()

	l := model.Listing{Title: "Sofa set", Description: "barely used"}
	assert.Equal(t, "Sofa set barely used", a.CombinedText(l))

	empty := model.Listing{Title: "Sofa set"}
	assert.Equal(t, "Sofa set ", a.CombinedText(empty), "missing description coerces to empty string")
}

func TestSchemaCheck(t *testing.T) {
	vocab := []string{"cheap", "cheap offer", "urgent"}
	s := NewSchema(vocab)

	require.Equal(t, len(NumericColumns())+3, s.Dims())
	assert.Equal(t, "tfidf_cheap", s.Lexical[0])

	t.Run("matching schema passes", func(t *testing.T) {
		assert.NoError(t, s.Check(NewSchema(vocab)))
	})

	t.Run("version mismatch fails", func(t *testing.T) {
		other := NewSchema(vocab)
		other.Version = SchemaVersion + 1
		assert.Error(t, s.Check(other))
	})

	t.Run("vocabulary mismatch fails", func(t *testing.T) {
		other := NewSchema([]string{"cheap", "urgent", "cheap offer"})
		assert.Error(t, s.Check(other))
	})

	t.Run("column count mismatch fails", func(t *testing.T) {
		other := NewSchema(vocab[:2])
		assert.Error(t, s.Check(other))
	})
}

func TestVectorConcatAndDot(t *testing.T) {
	num := Dense([]float64{1, 0, 2})
	lex := Vector{Indices: []int{1}, Values: []float64{0.5}, Dims: 4}

	v := num.Concat(lex)
	assert.Equal(t, 7, v.Dims)
	assert.Equal(t, []int{0, 2, 4}, v.Indices)
	assert.Equal(t, []float64{1, 2, 0.5}, v.Values)

	weights := []float64{1, 1, 1, 1, 2, 1, 1}
	assert.InDelta(t, 1+2+1.0, v.Dot(weights), 1e-9)
}
