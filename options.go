package multitool

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-multitool/regression"
)

var ErrInvalidLinePoints = errors.New("line points must be at least 2")

// Options configures the fitted predictors
type Options struct {
	RegressionOptions *regression.Options `json:"regression_options" mapstructure:"regression"`

	// LinePoints is the number of points on the fitted marks line returned for plotting
	LinePoints int `json:"line_points" mapstructure:"line_points"`
}

func NewDefaultOptions() *Options {
	return &Options{
		RegressionOptions: regression.NewDefaultOptions(),
		LinePoints:        100,
	}
}

// Validate fills unset fields with defaults
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	regOpt, err := o.RegressionOptions.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid regression options, %w", err)
	}
	o.RegressionOptions = regOpt
	if o.LinePoints == 0 {
		o.LinePoints = 100
	}
	if o.LinePoints < 2 {
		return nil, fmt.Errorf("got %d, %w", o.LinePoints, ErrInvalidLinePoints)
	}
	return o, nil
}
