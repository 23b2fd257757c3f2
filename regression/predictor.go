// Package regression wraps a least squares fit over a fixed dataset into a reusable predictor.
// Both regression pages go through Fit so the fitting logic lives in one place.
package regression

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aouyang1/go-multitool/dataset"
	"github.com/aouyang1/go-multitool/models"
	"github.com/aouyang1/go-multitool/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoDataset          = errors.New("no dataset to fit")
	ErrFeatureLenMismatch = errors.New("feature vector length does not match number of model coefficients")
	ErrInvalidGrid        = errors.New("line grid needs at least 2 points and a single feature model")
	ErrNoModelWeights     = errors.New("model has no coefficients")
)

// Predictor is a fitted linear model, intercept + sum(coef_i * feature_i)
type Predictor struct {
	opt *Options

	name      string
	labels    []string
	target    string
	coef      []float64
	intercept float64

	scores      *stats.Scores
	diagnostics *Diagnostics
}

// Fit runs ordinary least squares over the dataset and returns a predictor for it
func Fit(ds *dataset.Dataset, opt *Options) (*Predictor, error) {
	if ds == nil {
		return nil, ErrNoDataset
	}
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	x, err := ds.FeatureMatrix()
	if err != nil {
		return nil, fmt.Errorf("unable to build feature matrix for %s, %w", ds.Name(), err)
	}
	y, err := ds.TargetMatrix()
	if err != nil {
		return nil, fmt.Errorf("unable to build target matrix for %s, %w", ds.Name(), err)
	}

	model, err := models.NewOLSRegression(&models.OLSOptions{FitIntercept: opt.FitIntercept})
	if err != nil {
		return nil, err
	}
	if err := model.Fit(x, y); err != nil {
		return nil, fmt.Errorf("unable to fit %s, %w", ds.Name(), err)
	}

	p := &Predictor{
		opt:       opt,
		name:      ds.Name(),
		labels:    ds.FeatureLabels(),
		target:    ds.TargetLabel(),
		coef:      model.Coef(),
		intercept: model.Intercept(),
	}

	fitted, err := model.Predict(x)
	if err != nil {
		return nil, fmt.Errorf("unable to predict training set of %s, %w", ds.Name(), err)
	}
	actual := mat.Col(nil, 0, y)
	p.scores, err = stats.NewScores(fitted, actual)
	if err != nil {
		return nil, err
	}
	p.diagnostics, err = newDiagnostics(ds, fitted, actual, opt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewFromModel restores a predictor from a previously exported model skipping the fit
func NewFromModel(m Model) (*Predictor, error) {
	if len(m.Weights) == 0 {
		return nil, ErrNoModelWeights
	}
	opt, err := m.Options.Validate()
	if err != nil {
		return nil, err
	}
	p := &Predictor{
		opt:       opt,
		name:      m.Name,
		target:    m.Target,
		intercept: m.Intercept,
		scores:    m.Scores,
	}
	for _, w := range m.Weights {
		p.labels = append(p.labels, w.Label)
		p.coef = append(p.coef, w.Value)
	}
	return p, nil
}

// Predict evaluates the linear formula for a single feature vector ordered like Labels
func (p *Predictor) Predict(features []float64) (float64, error) {
	if len(features) != len(p.coef) {
		return 0, fmt.Errorf("got %d features but %s expects %d, %w", len(features), p.name, len(p.coef), ErrFeatureLenMismatch)
	}
	// accumulate left to right so the result matches the written formula bit for bit. The
	// explicit conversion rounds each product and keeps the compiler from fusing it into an FMA.
	res := p.intercept
	for i, c := range p.coef {
		res += float64(c * features[i])
	}
	return res, nil
}

// PredictBatch evaluates every row in x
func (p *Predictor) PredictBatch(x [][]float64) ([]float64, error) {
	res := make([]float64, len(x))
	for i, row := range x {
		val, err := p.Predict(row)
		if err != nil {
			return nil, fmt.Errorf("at row %d, %w", i, err)
		}
		res[i] = val
	}
	return res, nil
}

// Line evaluates a single feature model on n evenly spaced points between lo and hi inclusive
func (p *Predictor) Line(lo, hi float64, n int) ([]float64, []float64, error) {
	if n < 2 || len(p.coef) != 1 {
		return nil, nil, ErrInvalidGrid
	}
	x := make([]float64, n)
	floats.Span(x, lo, hi)
	y := make([]float64, n)
	for i, v := range x {
		// unfused, as in Predict
		y[i] = p.intercept + float64(p.coef[0]*v)
	}
	return x, y, nil
}

func (p *Predictor) Name() string {
	return p.name
}

// Labels returns the feature labels in coefficient order
func (p *Predictor) Labels() []string {
	return append([]string(nil), p.labels...)
}

func (p *Predictor) Target() string {
	return p.target
}

func (p *Predictor) Intercept() float64 {
	return p.intercept
}

// Coef returns a copy of the coefficients in feature order
func (p *Predictor) Coef() []float64 {
	return append([]float64(nil), p.coef...)
}

// Coefficients returns each coefficient keyed by its feature label
func (p *Predictor) Coefficients() map[string]float64 {
	coef := make(map[string]float64, len(p.coef))
	for i, label := range p.labels {
		coef[label] = p.coef[i]
	}
	return coef
}

// Scores returns the goodness of fit against the training data
func (p *Predictor) Scores() *stats.Scores {
	if p.scores == nil {
		return nil
	}
	s := *p.scores
	return &s
}

// Diagnostics returns the collinearity and residual checks computed during the fit. Predictors
// restored from a model have none.
func (p *Predictor) Diagnostics() *Diagnostics {
	return p.diagnostics
}

// ModelEq renders the fitted formula, e.g. Marks = 9.39 × Hours + 0.44
func (p *Predictor) ModelEq() string {
	var sb strings.Builder
	sb.WriteString(p.target)
	sb.WriteString(" = ")
	for i, label := range p.labels {
		if i > 0 {
			sb.WriteString(" + ")
		}
		fmt.Fprintf(&sb, "%.2f × %s", p.coef[i], label)
	}
	fmt.Fprintf(&sb, " + %.2f", p.intercept)
	return sb.String()
}

// Model generates a serializeable representation of the fit
func (p *Predictor) Model() Model {
	weights := make([]Weight, len(p.coef))
	for i, label := range p.labels {
		weights[i] = Weight{Label: label, Value: p.coef[i]}
	}
	return Model{
		Name:      p.name,
		Target:    p.target,
		Options:   p.opt,
		Intercept: p.intercept,
		Weights:   weights,
		Scores:    p.Scores(),
	}
}
