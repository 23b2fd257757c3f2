package multitool

import (
	"testing"

	"github.com/aouyang1/go-multitool/electric"
	"github.com/aouyang1/go-multitool/regression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestToolkit(t *testing.T) *Toolkit {
	t.Helper()
	tk, err := New(nil)
	require.Nil(t, err)
	return tk
}

func TestEstimateElectricity(t *testing.T) {
	tk := newTestToolkit(t)

	res, err := tk.EstimateElectricity(electric.Inputs{
		Rooms: 2, Halls: 1, RoomArea: 120, HallArea: 180, Gauge: electric.Gauge1p5mm,
	})
	require.Nil(t, err)
	assert.Equal(t, 7480, res.Breakdown.TotalCost)
	assert.Len(t, res.Tips, 3)

	_, err = tk.EstimateElectricity(electric.Inputs{Rooms: 0, RoomArea: 120, HallArea: 180, Gauge: electric.Gauge1mm})
	assert.ErrorIs(t, err, electric.ErrInvalidInput)
}

func TestPredictMarks(t *testing.T) {
	tk := newTestToolkit(t)

	testData := map[string]struct {
		hours float64
		err   error
	}{
		"default":     {hours: 5.0},
		"lower bound": {hours: MinStudyHours},
		"upper bound": {hours: MaxStudyHours},
		"too low":     {hours: 0.25, err: ErrInvalidHours},
		"too high":    {hours: 24.5, err: ErrInvalidHours},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := tk.PredictMarks(td.hours)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.InDelta(t, res.Intercept+res.Slope*td.hours, res.Prediction, 1e-9)
			assert.Len(t, res.LineHours, 100)
			assert.Len(t, res.LineMarks, 100)
			assert.Len(t, res.HoursData, 10)
			assert.Len(t, res.MarksData, 10)
			assert.Equal(t, "Marks = 9.39 × Hours + 0.44", res.Equation)
		})
	}
}

func TestPredictMarksCentroid(t *testing.T) {
	tk := newTestToolkit(t)

	means, targetMean := tk.MarksDataset().Means()
	res, err := tk.PredictMarks(means[0])
	require.Nil(t, err)
	assert.InDelta(t, targetMean, res.Prediction, 1e-9)
}

func TestPredictRent(t *testing.T) {
	tk := newTestToolkit(t)

	res, err := tk.PredictRent(RentInputs{Persons: 2, AC: true, Food: false})
	require.Nil(t, err)

	coef := tk.RentPredictor().Coef()
	expected := tk.RentPredictor().Intercept() + float64(2*coef[0]) + float64(1*coef[1]) + float64(0*coef[2])
	assert.Equal(t, expected, res.Prediction)
	assert.InDelta(t, 6636.734694, res.Prediction, 1e-4)
	assert.Equal(t, "For a 2-person AC room without food: ₹6636.73", res.Summary)
	assert.Len(t, res.Coefficients, 3)
	assert.NotNil(t, res.Diagnostics)

	res, err = tk.PredictRent(RentInputs{Persons: 1, AC: false, Food: true})
	require.Nil(t, err)
	assert.Equal(t, "For a 1-person Non-AC room with food: ₹8134.69", res.Summary)

	for _, persons := range []int{0, 4, -1} {
		_, err := tk.PredictRent(RentInputs{Persons: persons})
		assert.ErrorIs(t, err, ErrInvalidPersons)
	}
}

func TestPredictRentIdempotent(t *testing.T) {
	tk := newTestToolkit(t)
	in := RentInputs{Persons: 3, AC: true, Food: true}

	first, err := tk.PredictRent(in)
	require.Nil(t, err)
	second, err := tk.PredictRent(in)
	require.Nil(t, err)
	assert.Equal(t, first, second)
}

func TestCareers(t *testing.T) {
	tk := newTestToolkit(t)

	upper := tk.Careers("Math")
	lower := tk.Careers("math")
	assert.True(t, upper.Found)
	assert.Equal(t, upper.Careers, lower.Careers)
	assert.Equal(t, "Math", lower.Subject)
	assert.Nil(t, upper.Suggestions)

	missing := tk.Careers("underwater basket weaving")
	assert.False(t, missing.Found)
	assert.Empty(t, missing.Careers)
	assert.Equal(t, []string{"Math", "Science", "Physics", "Computer"}, missing.Suggestions)

	assert.False(t, tk.Careers("").Found)
}

func TestOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *Options
		err      error
		expected *Options
	}{
		"nil": {
			expected: NewDefaultOptions(),
		},
		"fill defaults": {
			opt:      &Options{},
			expected: NewDefaultOptions(),
		},
		"invalid line points": {
			opt: &Options{LinePoints: 1},
			err: ErrInvalidLinePoints,
		},
		"invalid regression options": {
			opt: &Options{RegressionOptions: &regression.Options{OutlierLowerPercentile: 0.9, OutlierUpperPercentile: 0.1}},
			err: regression.ErrInvalidOutlierPercentile,
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

func TestParseMode(t *testing.T) {
	testData := map[string]struct {
		in       string
		expected Mode
		err      error
	}{
		"slug":        {"marks", ModeMarks, nil},
		"title":       {"PG Rent Predictor", ModeRent, nil},
		"title lower": {"student career guidance", ModeCareers, nil},
		"padded":      {" electricity ", ModeElectricity, nil},
		"unknown":     {"weather", "", ErrUnknownMode},
		"empty":       {"", "", ErrUnknownMode},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			m, err := ParseMode(td.in)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, m)
		})
	}
	assert.Len(t, Modes(), 4)
}
