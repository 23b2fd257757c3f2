package models

import (
	"testing"

	mat_ "github.com/aouyang1/go-multitool/mat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testModel(t *testing.T, model Model, x, y mat.Matrix, intercept float64, coef []float64, tol float64) {
	t.Helper()
	err := model.Fit(x, y)
	require.Nil(t, err)

	assert.InDelta(t, intercept, model.Intercept(), tol, "intercept")

	c := model.Coef()
	assert.InDeltaSlice(t, coef, c, tol, "coefficients")

	r2, err := model.Score(x, y)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, r2, tol, "score")
}

func TestOLSOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *OLSOptions
		err      error
		expected *OLSOptions
	}{
		"nil": {nil, nil, NewDefaultOLSOptions()},
		"valid": {
			&OLSOptions{
				FitIntercept: false,
			}, nil,
			&OLSOptions{
				FitIntercept: false,
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt, err := td.opt.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, opt)
		})
	}
}

func TestOLSRegression(t *testing.T) {
	tol := 1e-5
	testData := map[string]struct {
		x         [][]float64
		y         []float64
		opt       *OLSOptions
		intercept float64
		coef      []float64
	}{
		"ols model intercept": {
			x: [][]float64{
				{0, 0},
				{3, 5},
				{9, 20},
				{12, 6},
				{15, 10},
			},
			y:         []float64{2, 31, 109, 62, 87},
			intercept: 2.0,
			coef:      []float64{3.0, 4.0},
		},
		"ols model no intercept": {
			x: [][]float64{
				{1, 0, 0},
				{1, 3, 5},
				{1, 9, 20},
				{1, 12, 6},
				{1, 15, 10},
			},
			y: []float64{2, 31, 109, 62, 87},
			opt: &OLSOptions{
				FitIntercept: false,
			},
			intercept: 0.0,
			coef:      []float64{2.0, 3.0, 4.0},
		},
		"single feature": {
			x:         [][]float64{{1}, {2}, {3}, {4}},
			y:         []float64{3.5, 6, 8.5, 11},
			intercept: 1.0,
			coef:      []float64{2.5},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			x, err := mat_.NewDenseFromArray(td.x)
			require.Nil(t, err)

			y := mat.NewDense(len(td.y), 1, td.y)

			model, err := NewOLSRegression(td.opt)
			require.Nil(t, err)

			testModel(t, model, x, y, td.intercept, td.coef, tol)
		})
	}
}

func TestOLSRegressionFitErrors(t *testing.T) {
	testData := map[string]struct {
		x   [][]float64
		y   []float64
		err error
	}{
		"target mismatch": {
			x:   [][]float64{{1}, {2}, {3}},
			y:   []float64{1, 2},
			err: ErrTargetLenMismatch,
		},
		"underdetermined": {
			x:   [][]float64{{1, 2}, {3, 4}},
			y:   []float64{1, 2},
			err: ErrUnderdetermined,
		},
		"linearly dependent features": {
			x:   [][]float64{{1, 2}, {2, 4}, {3, 6}, {4, 8}},
			y:   []float64{1, 2, 3, 4},
			err: ErrSingularMatrix,
		},
		"constant feature collides with intercept": {
			x:   [][]float64{{5}, {5}, {5}},
			y:   []float64{1, 2, 3},
			err: ErrSingularMatrix,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			x, err := mat_.NewDenseFromArray(td.x)
			require.Nil(t, err)
			y := mat.NewDense(len(td.y), 1, td.y)

			model, err := NewOLSRegression(nil)
			require.Nil(t, err)

			err = model.Fit(x, y)
			assert.ErrorIs(t, err, td.err)
		})
	}
}

func TestOLSRegressionPredict(t *testing.T) {
	model, err := NewOLSRegression(nil)
	require.Nil(t, err)

	_, err = model.Predict(mat.NewDense(1, 2, []float64{1, 1}))
	assert.ErrorIs(t, err, ErrNotFit)

	x, err := mat_.NewDenseFromArray([][]float64{{0, 0}, {3, 5}, {9, 20}, {12, 6}})
	require.Nil(t, err)
	y := mat.NewDense(4, 1, []float64{2, 31, 109, 62})
	require.Nil(t, model.Fit(x, y))

	res, err := model.Predict(mat.NewDense(2, 2, []float64{1, 1, 2, 0}))
	require.Nil(t, err)
	assert.InDeltaSlice(t, []float64{9, 8}, res, 1e-6)

	_, err = model.Predict(mat.NewDense(1, 3, []float64{1, 1, 1}))
	assert.ErrorIs(t, err, ErrFeatureLenMismatch)

	_, err = model.Predict(nil)
	assert.ErrorIs(t, err, ErrNoDesignMatrix)
}

func BenchmarkOLSRegression(b *testing.B) {
	nObs, nFeat := 1000, 100
	data := make([][]float64, nObs)
	target := make([]float64, nObs)
	for i := 0; i < nObs; i++ {
		data[i] = make([]float64, nFeat)
		for j := 0; j < nFeat; j++ {
			data[i][j] = float64((i*7+j*13)%101) + float64(i%(j+2))
		}
		target[i] = float64(i)
	}
	x, err := mat_.NewDenseFromArray(data)
	if err != nil {
		b.Fatal(err)
	}
	y := mat.NewDense(nObs, 1, target)

	for b.Loop() {
		model, err := NewOLSRegression(nil)
		if err != nil {
			b.Error(err)
			continue
		}
		// rank deficiency is acceptable here, only the factorization cost is measured
		_ = model.Fit(x, y)
	}
}
