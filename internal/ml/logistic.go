// Package ml provides the learning primitives behind the risk model: a
// probabilistic linear classifier, feature standardization, a stratified
// splitter, and evaluation metrics.
package ml

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/souqrisk/souqrisk/internal/common"
	"github.com/souqrisk/souqrisk/internal/features"
)

// Training hyperparameters. Tuned for standardized numeric features plus
// L2-normalized TF-IDF columns.
const (
	defaultEpochs       = 200
	defaultLearningRate = 0.1
	defaultL2           = 1e-4
)

// LogisticRegression is a binary logistic classifier trained with
// stochastic gradient descent. Fields are exported for artifact
// serialization; treat a fitted model as immutable.
type LogisticRegression struct {
	Weights      []float64 `msgpack:"weights"`
	Bias         float64   `msgpack:"bias"`
	Epochs       int       `msgpack:"epochs"`
	LearningRate float64   `msgpack:"learning_rate"`
	L2           float64   `msgpack:"l2"`
	Seed         int64     `msgpack:"seed"`
}

// NewLogisticRegression returns an untrained classifier with default
// hyperparameters and a deterministic shuffle seed.
func NewLogisticRegression(seed int64) *LogisticRegression {
	return &LogisticRegression{
		Epochs:       defaultEpochs,
		LearningRate: defaultLearningRate,
		L2:           defaultL2,
		Seed:         seed,
	}
}

func sigmoid(z float64) float64 {
	// Clamp to keep exp from overflowing on wild inputs.
	if z > 30 {
		return 1
	}
	if z < -30 {
		return 0
	}
	return 1 / (1 + math.Exp(-z))
}

// Fit trains the classifier on sparse rows X against binary labels y.
func (m *LogisticRegression) Fit(x []features.Vector, y []int) error {
	if len(x) == 0 {
		return common.ErrEmptyBatch
	}
	if len(x) != len(y) {
		return fmt.Errorf("feature rows (%d) and labels (%d) differ in length", len(x), len(y))
	}

	dims := x[0].Dims
	m.Weights = make([]float64, dims)
	m.Bias = 0

	rng := rand.New(rand.NewSource(m.Seed))
	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}

	for epoch := 0; epoch < m.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		// Simple 1/(1+epoch) decay keeps late epochs from oscillating.
		lr := m.LearningRate / (1 + float64(epoch)*0.01)

		for _, i := range order {
			row := x[i]
			if row.Dims != dims {
				return fmt.Errorf("row %d has %d dims, want %d", i, row.Dims, dims)
			}

			p := sigmoid(row.Dot(m.Weights) + m.Bias)
			grad := p - float64(y[i])

			for j, col := range row.Indices {
				w := m.Weights[col]
				m.Weights[col] = w - lr*(grad*row.Values[j]+m.L2*w)
			}
			m.Bias -= lr * grad
		}
	}
	return nil
}

// PredictProba returns the predicted probability of the positive class for
// each row.
func (m *LogisticRegression) PredictProba(x []features.Vector) ([]float64, error) {
	if len(m.Weights) == 0 {
		return nil, fmt.Errorf("%w: classifier has no fitted weights", common.ErrArtifactCorrupt)
	}
	out := make([]float64, len(x))
	for i, row := range x {
		if row.Dims != len(m.Weights) {
			return nil, fmt.Errorf("%w: row has %d dims, model has %d",
				common.ErrSchemaMismatch, row.Dims, len(m.Weights))
		}
		out[i] = sigmoid(row.Dot(m.Weights) + m.Bias)
	}
	return out, nil
}
