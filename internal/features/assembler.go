package features

import (
	"github.com/souqrisk/souqrisk/internal/model"
	"github.com/souqrisk/souqrisk/internal/pricing"
	"github.com/souqrisk/souqrisk/internal/signals"
)

// Assembler turns listing batches into the canonical numeric feature matrix
// and the combined text used for lexical modeling. The same assembler
// configuration must be used at training and inference time.
type Assembler struct {
	spam  signals.Detector
	phone signals.Detector
	email signals.Detector
}

// Option customizes an Assembler.
type Option func(*Assembler)

// WithSpamDetector swaps the spam trigger-phrase counter.
func WithSpamDetector(d signals.Detector) Option {
	return func(a *Assembler) { a.spam = d }
}

// WithPhoneDetector swaps the locale-specific phone detector.
func WithPhoneDetector(d signals.Detector) Option {
	return func(a *Assembler) { a.phone = d }
}

// WithEmailDetector swaps the email detector.
func WithEmailDetector(d signals.Detector) Option {
	return func(a *Assembler) { a.email = d }
}

// NewAssembler builds an assembler with the default UAE detector set.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		spam:  signals.SpamKeywords(),
		phone: signals.UAEPhone(),
		email: signals.Email(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NumericRow computes the numeric features of one listing in the canonical
// column order. The price table supplies the category-relative anomaly
// features.
func (a *Assembler) NumericRow(l model.Listing, prices *pricing.Table) []float64 {
	zscore, tooLow, tooHigh := prices.Features(l)

	return []float64{
		float64(len([]rune(l.Title))),
		float64(len([]rune(l.Description))),
		signals.CapsRatio(l.Title),
		signals.CapsRatio(l.Description),
		signals.EmojiCount(l.Title),
		signals.EmojiCount(l.Description),
		a.spam.Score(l.Title),
		a.spam.Score(l.Description),
		signals.RepeatedWordScore(l.Description),
		a.phone.Score(l.Description),
		a.email.Score(l.Description),
		float64(l.PostedDaysAgo),
		l.SellerIsBusiness(),
		l.PriceAED,
		zscore,
		tooLow,
		tooHigh,
	}
}

// NumericMatrix computes the numeric feature matrix for a batch, one row per
// listing, columns in the canonical order.
func (a *Assembler) NumericMatrix(batch []model.Listing, prices *pricing.Table) [][]float64 {
	rows := make([][]float64, len(batch))
	for i, l := range batch {
		rows[i] = a.NumericRow(l, prices)
	}
	return rows
}

// CombinedText returns the space-joined title and description used for
// lexical modeling.
func (a *Assembler) CombinedText(l model.Listing) string {
	return l.Title + " " + l.Description
}

// Texts returns the combined text of every listing in the batch.
func (a *Assembler) Texts(batch []model.Listing) []string {
	out := make([]string, len(batch))
	for i, l := range batch {
		out[i] = a.CombinedText(l)
	}
	return out
}
