// Package features assembles listing batches into fixed-order feature
// matrices. The numeric column names and order are the canonical contract
// between training and inference; they are persisted with the model and
// re-checked before scoring.
package features

// Vector is a sparse feature vector. Indices are strictly increasing and
// Values runs parallel to them; Dims is the full width of the vector.
type Vector struct {
	Indices []int
	Values  []float64
	Dims    int
}

// Dense converts a dense row into a Vector, keeping only nonzero entries.
func Dense(row []float64) Vector {
	v := Vector{Dims: len(row)}
	for i, x := range row {
		if x != 0 {
			v.Indices = append(v.Indices, i)
			v.Values = append(v.Values, x)
		}
	}
	return v
}

// Concat appends other after v, shifting other's indices by v.Dims.
func (v Vector) Concat(other Vector) Vector {
	out := Vector{
		Indices: make([]int, 0, len(v.Indices)+len(other.Indices)),
		Values:  make([]float64, 0, len(v.Values)+len(other.Values)),
		Dims:    v.Dims + other.Dims,
	}
	out.Indices = append(out.Indices, v.Indices...)
	out.Values = append(out.Values, v.Values...)
	for i, idx := range other.Indices {
		out.Indices = append(out.Indices, idx+v.Dims)
		out.Values = append(out.Values, other.Values[i])
	}
	return out
}

// Dot returns the inner product of v with a dense weight vector.
func (v Vector) Dot(weights []float64) float64 {
	var sum float64
	for i, idx := range v.Indices {
		sum += weights[idx] * v.Values[i]
	}
	return sum
}
