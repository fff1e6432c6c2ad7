// Package vectorize converts free text into a bounded, reproducible TF-IDF
// representation over unigrams and bigrams.
//
// A Vectorizer is fit exactly once, on the training corpus, and then only
// transforms. Transforming before fitting, or fitting twice, desynchronizes
// the training and inference feature spaces, so both are hard errors.
package vectorize

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/souqrisk/souqrisk/internal/common"
	"github.com/souqrisk/souqrisk/internal/features"
)

// DefaultMaxFeatures bounds the vocabulary to the most frequent terms.
const DefaultMaxFeatures = 4000

// Vectorizer is a fit-once/reuse-many TF-IDF projection. The zero value is
// unfitted; use New.
type Vectorizer struct {
	vocab       map[string]int
	terms       []string
	idf         []float64
	maxFeatures int
}

// New returns an unfitted vectorizer with the given vocabulary bound.
// maxFeatures <= 0 selects the default.
func New(maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &Vectorizer{maxFeatures: maxFeatures}
}

// Fitted reports whether the vocabulary has been learned.
func (v *Vectorizer) Fitted() bool { return len(v.terms) > 0 }

// Vocabulary returns the learned terms in column order.
func (v *Vectorizer) Vocabulary() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Dims returns the width of transformed vectors.
func (v *Vectorizer) Dims() int { return len(v.terms) }

// tokenize lowercases, splits on non-alphanumeric runes, and drops stop
// words and single-character tokens.
func tokenize(text string) []string {
	raw := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := raw[:0]
	for _, tok := range raw {
		if len(tok) < 2 || isStopWord(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// ngrams returns the unigrams and bigrams of the token stream. Bigrams are
// built after stop-word removal and joined with a single space.
func ngrams(tokens []string) []string {
	out := make([]string, 0, 2*len(tokens))
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// Fit learns the vocabulary and document frequencies from the training
// corpus. It must be called exactly once per vectorizer.
func (v *Vectorizer) Fit(corpus []string) error {
	if v.Fitted() {
		return common.ErrAlreadyFitted
	}
	if len(corpus) == 0 {
		return common.ErrEmptyBatch
	}

	termFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range corpus {
		grams := ngrams(tokenize(doc))
		seen := make(map[string]struct{}, len(grams))
		for _, g := range grams {
			termFreq[g]++
			seen[g] = struct{}{}
		}
		for g := range seen {
			docFreq[g]++
		}
	}

	// Keep the top maxFeatures terms by corpus frequency; ties resolve
	// alphabetically so the vocabulary is reproducible.
	terms := make([]string, 0, len(termFreq))
	for t := range termFreq {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if termFreq[terms[i]] != termFreq[terms[j]] {
			return termFreq[terms[i]] > termFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.maxFeatures {
		terms = terms[:v.maxFeatures]
	}

	// Column order is alphabetical over the selected vocabulary.
	sort.Strings(terms)

	v.terms = terms
	v.vocab = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, t := range terms {
		v.vocab[t] = i
		// Smoothed idf, as if one extra document contained every term.
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}
	return nil
}

// Transform projects texts onto the learned vocabulary. Out-of-vocabulary
// terms contribute nothing; each row is L2-normalized.
func (v *Vectorizer) Transform(texts []string) ([]features.Vector, error) {
	if !v.Fitted() {
		return nil, fmt.Errorf("%w: call Fit before Transform", common.ErrNotFitted)
	}

	out := make([]features.Vector, len(texts))
	for i, text := range texts {
		counts := make(map[int]float64)
		for _, g := range ngrams(tokenize(text)) {
			if col, ok := v.vocab[g]; ok {
				counts[col]++
			}
		}

		vec := features.Vector{Dims: len(v.terms)}
		if len(counts) > 0 {
			cols := make([]int, 0, len(counts))
			for col := range counts {
				cols = append(cols, col)
			}
			sort.Ints(cols)

			var norm float64
			vec.Indices = cols
			vec.Values = make([]float64, len(cols))
			for j, col := range cols {
				w := counts[col] * v.idf[col]
				vec.Values[j] = w
				norm += w * w
			}
			norm = math.Sqrt(norm)
			for j := range vec.Values {
				vec.Values[j] /= norm
			}
		}
		out[i] = vec
	}
	return out, nil
}

// State is the serializable form of a fitted vectorizer.
type State struct {
	Terms       []string  `msgpack:"terms"`
	IDF         []float64 `msgpack:"idf"`
	MaxFeatures int       `msgpack:"max_features"`
}

// State captures the fitted vocabulary and weights for persistence.
func (v *Vectorizer) State() State {
	return State{Terms: v.Vocabulary(), IDF: append([]float64(nil), v.idf...), MaxFeatures: v.maxFeatures}
}

// FromState reconstructs a fitted vectorizer from persisted state.
func FromState(s State) (*Vectorizer, error) {
	if len(s.Terms) == 0 || len(s.Terms) != len(s.IDF) {
		return nil, fmt.Errorf("%w: vectorizer state has %d terms and %d idf weights",
			common.ErrArtifactCorrupt, len(s.Terms), len(s.IDF))
	}
	v := New(s.MaxFeatures)
	v.terms = append([]string(nil), s.Terms...)
	v.idf = append([]float64(nil), s.IDF...)
	v.vocab = make(map[string]int, len(s.Terms))
	for i, t := range s.Terms {
		v.vocab[t] = i
	}
	return v, nil
}
