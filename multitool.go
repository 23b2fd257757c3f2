// Package multitool bundles four small calculators behind one stateless facade: an electric
// fitting cost estimator, a study hours to marks predictor, a PG rent predictor and a career
// guidance lookup. The two regression models are fit once when the Toolkit is created.
package multitool

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-multitool/career"
	"github.com/aouyang1/go-multitool/dataset"
	"github.com/aouyang1/go-multitool/electric"
	"github.com/aouyang1/go-multitool/regression"
)

var (
	ErrInvalidHours   = errors.New("study hours out of range")
	ErrInvalidPersons = errors.New("persons per room out of range")
)

const (
	MinStudyHours = 0.5
	MaxStudyHours = 24.0

	MinPersons = 1
	MaxPersons = 3
)

// Toolkit holds the fitted predictors and lookup tables. It is read only after New and safe for
// concurrent use.
type Toolkit struct {
	opt *Options

	marksData *dataset.Dataset
	rentData  *dataset.Dataset

	marks *regression.Predictor
	rent  *regression.Predictor
	guide *career.Guide
}

// New fits the marks and rent predictors using the provided options. If no options are provided
// a default is used.
func New(opt *Options) (*Toolkit, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	tk := &Toolkit{
		opt:       opt,
		marksData: dataset.Marks(),
		rentData:  dataset.PGRent(),
		guide:     career.Default(),
	}

	tk.marks, err = regression.Fit(tk.marksData, opt.RegressionOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to fit marks predictor, %w", err)
	}
	tk.rent, err = regression.Fit(tk.rentData, opt.RegressionOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to fit pg rent predictor, %w", err)
	}
	return tk, nil
}

// EstimateElectricity prices the electric fitting of the described house
func (tk *Toolkit) EstimateElectricity(in electric.Inputs) (*ElectricityResult, error) {
	b, err := electric.Estimate(in)
	if err != nil {
		return nil, err
	}
	return &ElectricityResult{
		Inputs:    in,
		Breakdown: b,
		Tips:      electric.Tips(),
	}, nil
}

// PredictMarks predicts exam marks for the given daily study hours
func (tk *Toolkit) PredictMarks(hours float64) (*MarksResult, error) {
	if !(hours >= MinStudyHours && hours <= MaxStudyHours) {
		return nil, fmt.Errorf("hours must be between %.1f and %.1f, got %v, %w", MinStudyHours, MaxStudyHours, hours, ErrInvalidHours)
	}
	pred, err := tk.marks.Predict([]float64{hours})
	if err != nil {
		return nil, err
	}

	lo, hi, err := tk.marksData.Range(dataset.LabelHours)
	if err != nil {
		return nil, err
	}
	lineX, lineY, err := tk.marks.Line(lo, hi, tk.opt.LinePoints)
	if err != nil {
		return nil, err
	}
	hoursData, err := tk.marksData.Column(dataset.LabelHours)
	if err != nil {
		return nil, err
	}

	return &MarksResult{
		Hours:      hours,
		Prediction: pred,
		Slope:      tk.marks.Coef()[0],
		Intercept:  tk.marks.Intercept(),
		Equation:   tk.marks.ModelEq(),
		Model:      tk.marks.Model(),
		HoursData:  hoursData,
		MarksData:  tk.marksData.Targets(),
		LineHours:  lineX,
		LineMarks:  lineY,
	}, nil
}

// PredictRent predicts the monthly PG rent for the room preferences
func (tk *Toolkit) PredictRent(in RentInputs) (*RentResult, error) {
	if in.Persons < MinPersons || in.Persons > MaxPersons {
		return nil, fmt.Errorf("persons must be between %d and %d, got %d, %w", MinPersons, MaxPersons, in.Persons, ErrInvalidPersons)
	}
	pred, err := tk.rent.Predict(in.Features())
	if err != nil {
		return nil, err
	}
	return &RentResult{
		Inputs:       in,
		Prediction:   pred,
		Summary:      in.Summary(pred),
		Coefficients: tk.rent.Coefficients(),
		Intercept:    tk.rent.Intercept(),
		Equation:     tk.rent.ModelEq(),
		Model:        tk.rent.Model(),
		Diagnostics:  tk.rent.Diagnostics(),
	}, nil
}

// Careers looks up careers for a favourite subject. An unknown subject is not an error, the result
// reports Found false with suggestions instead.
func (tk *Toolkit) Careers(subject string) *CareerResult {
	careers, found := tk.guide.Lookup(subject)
	res := &CareerResult{
		Subject:     career.DisplayName(subject),
		Found:       found,
		Careers:     careers,
		Suggestions: career.Suggestions(),
	}
	if found {
		res.Suggestions = nil
	}
	return res
}

// MarksPredictor exposes the fitted marks model
func (tk *Toolkit) MarksPredictor() *regression.Predictor {
	return tk.marks
}

// RentPredictor exposes the fitted PG rent model
func (tk *Toolkit) RentPredictor() *regression.Predictor {
	return tk.rent
}

// MarksDataset returns the training data of the marks predictor
func (tk *Toolkit) MarksDataset() *dataset.Dataset {
	return tk.marksData
}

// RentDataset returns the training data of the PG rent predictor
func (tk *Toolkit) RentDataset() *dataset.Dataset {
	return tk.rentData
}

// Subjects lists every subject with career guidance
func (tk *Toolkit) Subjects() []string {
	return tk.guide.Subjects()
}
