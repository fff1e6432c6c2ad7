// Package pricing computes category-relative price anomaly features.
//
// Absolute price thresholds are meaningless across heterogeneous categories,
// so a listing's price is expressed as standard deviations from its
// category's mean. The statistics are fitted once on the training batch and
// persisted with the model, so a listing's z-score does not depend on
// whatever else happens to be scored alongside it.
package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/souqrisk/souqrisk/internal/model"
)

// Z-score thresholds for the anomaly flags.
const (
	tooLowThreshold  = -2.0
	tooHighThreshold = 2.0
)

// Stats holds the fitted price distribution of one category.
type Stats struct {
	Mean  float64 `msgpack:"mean"`
	Std   float64 `msgpack:"std"`
	Count int     `msgpack:"count"`
}

// Table maps categories to their fitted price statistics. Categories unseen
// at fit time fall back to the global statistics.
type Table struct {
	ByCategory map[string]Stats `msgpack:"by_category"`
	Global     Stats            `msgpack:"global"`
}

// Fit computes per-category price statistics over a batch. A standard
// deviation that is zero, NaN (single-member category), or negative is
// clamped to 1 so division never fails.
func Fit(batch []model.Listing) *Table {
	prices := make(map[string][]float64)
	all := make([]float64, 0, len(batch))

	for _, l := range batch {
		p := l.PriceAED
		if math.IsNaN(p) {
			p = 0
		}
		prices[l.Category] = append(prices[l.Category], p)
		all = append(all, p)
	}

	t := &Table{
		ByCategory: make(map[string]Stats, len(prices)),
		Global:     fitStats(all),
	}
	for category, ps := range prices {
		t.ByCategory[category] = fitStats(ps)
	}
	return t
}

func fitStats(prices []float64) Stats {
	if len(prices) == 0 {
		return Stats{Std: 1}
	}
	mean, std := stat.MeanStdDev(prices, nil)
	if math.IsNaN(std) || std <= 0 {
		std = 1
	}
	return Stats{Mean: mean, Std: std, Count: len(prices)}
}

// Lookup returns the statistics for a category, falling back to the global
// statistics for categories unseen at fit time.
func (t *Table) Lookup(category string) Stats {
	if s, ok := t.ByCategory[category]; ok {
		return s
	}
	return t.Global
}

// ZScore returns the listing's price in standard deviations from its
// category's fitted mean.
func (t *Table) ZScore(l model.Listing) float64 {
	p := l.PriceAED
	if math.IsNaN(p) {
		p = 0
	}
	s := t.Lookup(l.Category)
	return (p - s.Mean) / s.Std
}

// Features returns the three price-anomaly features for a listing: the
// z-score and the low/high outlier flags.
func (t *Table) Features(l model.Listing) (zscore, tooLow, tooHigh float64) {
	zscore = t.ZScore(l)
	if zscore < tooLowThreshold {
		tooLow = 1
	}
	if zscore > tooHighThreshold {
		tooHigh = 1
	}
	return zscore, tooLow, tooHigh
}
