package ml

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes the numeric feature block column by column. It is
// fitted on the training matrix and persisted with the model so inference
// applies identical scaling; the TF-IDF block is already L2-normalized and
// is never scaled.
type Scaler struct {
	Mean []float64 `msgpack:"mean"`
	Std  []float64 `msgpack:"std"`
}

// FitScaler computes per-column mean and standard deviation over a dense
// matrix. Degenerate columns get std 1 so scaling never divides by zero.
func FitScaler(rows [][]float64) *Scaler {
	if len(rows) == 0 {
		return &Scaler{}
	}
	dims := len(rows[0])
	s := &Scaler{
		Mean: make([]float64, dims),
		Std:  make([]float64, dims),
	}

	col := make([]float64, len(rows))
	for j := 0; j < dims; j++ {
		for i, row := range rows {
			col[i] = row[j]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if math.IsNaN(std) || std <= 0 {
			std = 1
		}
		s.Mean[j] = mean
		s.Std[j] = std
	}
	return s
}

// Transform returns a standardized copy of one row.
func (s *Scaler) Transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, x := range row {
		out[j] = (x - s.Mean[j]) / s.Std[j]
	}
	return out
}

// TransformAll standardizes every row of a matrix.
func (s *Scaler) TransformAll(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = s.Transform(row)
	}
	return out
}
