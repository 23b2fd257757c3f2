package mat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewDenseFromArray(t *testing.T) {
	testData := map[string]struct {
		err error
		x   [][]float64
		m   int
		n   int
	}{
		"nil input": {
			ErrEmptyArray,
			nil,
			0, 0,
		},
		"empty input": {
			ErrEmptyArray,
			[][]float64{},
			0, 0,
		},
		"empty rows": {
			ErrEmptyArray,
			[][]float64{{}, {}},
			0, 0,
		},
		"single element": {
			nil,
			[][]float64{{1}},
			1, 1,
		},
		"one row multiple cols": {
			nil,
			[][]float64{{1, 2, 3}},
			1, 3,
		},
		"multiple rows one col": {
			nil,
			[][]float64{{2.5}, {5.1}, {3.2}},
			3, 1,
		},
		"multiple rows and cols": {
			nil,
			[][]float64{{1, 1, 1}, {2, 1, 0}},
			2, 3,
		},
		"inconsistent cols": {
			ErrColMismatch,
			[][]float64{{1, 2, 3}, {4, 5}},
			0, 0,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			mx, err := NewDenseFromArray(td.x)
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)

			m, n := mx.Dims()
			assert.Equal(t, td.m, m, "m")
			assert.Equal(t, td.n, n, "n")

			for ri, row := range td.x {
				assert.Equal(t, row, mat.Row(nil, ri, mx), "array")
			}
		})
	}
}

func TestNewColumnCopies(t *testing.T) {
	y := []float64{21, 47, 27}
	col, err := NewColumn(y)
	require.Nil(t, err)

	y[0] = 100
	m, n := col.Dims()
	assert.Equal(t, 3, m)
	assert.Equal(t, 1, n)
	assert.Equal(t, 21.0, col.At(0, 0))

	_, err = NewColumn(nil)
	assert.ErrorIs(t, err, ErrEmptyArray)
}

func TestWithIntercept(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{3, 5, 9, 20})
	res := WithIntercept(x)

	m, n := res.Dims()
	assert.Equal(t, 2, m)
	assert.Equal(t, 3, n)
	assert.Equal(t, []float64{1, 3, 5}, mat.Row(nil, 0, res))
	assert.Equal(t, []float64{1, 9, 20}, mat.Row(nil, 1, res))
}
