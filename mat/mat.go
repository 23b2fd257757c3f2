// Package mat converts the fixed tabular datasets into gonum matrices used by the regression models
package mat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmptyArray  = errors.New("array has no rows or columns")
	ErrColMismatch = errors.New("column size mismatch")
)

// NewDenseFromArray builds a row-major dense matrix where each inner slice is a row
func NewDenseFromArray(x [][]float64) (*mat.Dense, error) {
	m := len(x)
	if m == 0 {
		return nil, ErrEmptyArray
	}

	n := len(x[0])
	for i, row := range x {
		if len(row) != n {
			return nil, fmt.Errorf("at row %d expected %d columns but got %d, %w", i, n, len(row), ErrColMismatch)
		}
	}
	if n == 0 {
		return nil, ErrEmptyArray
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for _, row := range x {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

// NewColumn returns a single column matrix backed by a copy of y
func NewColumn(y []float64) (*mat.Dense, error) {
	if len(y) == 0 {
		return nil, ErrEmptyArray
	}
	data := make([]float64, len(y))
	copy(data, y)
	return mat.NewDense(len(y), 1, data), nil
}

// WithIntercept prepends a column of ones to x so the first fitted weight acts as the bias
func WithIntercept(x mat.Matrix) *mat.Dense {
	m, _ := x.Dims()
	ones := make([]float64, m)
	floats.AddConst(1.0, ones)
	onesMx := mat.NewDense(m, 1, ones)

	var xWithOnes mat.Dense
	xWithOnes.Augment(onesMx, x)
	return &xWithOnes
}
