package regression

import (
	"errors"
	"fmt"
)

var ErrInvalidOutlierPercentile = errors.New("outlier percentiles must satisfy 0 <= lower < upper <= 1")

// Options configures the fit and the residual outlier check run alongside it
type Options struct {
	FitIntercept bool `json:"fit_intercept" mapstructure:"fit_intercept"`

	OutlierLowerPercentile float64 `json:"outlier_lower_percentile" mapstructure:"outlier_lower_percentile"`
	OutlierUpperPercentile float64 `json:"outlier_upper_percentile" mapstructure:"outlier_upper_percentile"`
	OutlierTukeyFactor     float64 `json:"outlier_tukey_factor" mapstructure:"outlier_tukey_factor"`
}

// NewDefaultOptions fits an intercept and flags residuals outside 1.5 times the interquartile range
func NewDefaultOptions() *Options {
	return &Options{
		FitIntercept:           true,
		OutlierLowerPercentile: 0.25,
		OutlierUpperPercentile: 0.75,
		OutlierTukeyFactor:     1.5,
	}
}

// Validate returns the default options when unset and fills in the default outlier band when
// neither percentile is set
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	if o.OutlierLowerPercentile == 0 && o.OutlierUpperPercentile == 0 {
		def := NewDefaultOptions()
		o.OutlierLowerPercentile = def.OutlierLowerPercentile
		o.OutlierUpperPercentile = def.OutlierUpperPercentile
	}
	if o.OutlierLowerPercentile < 0 || o.OutlierUpperPercentile > 1 || o.OutlierLowerPercentile >= o.OutlierUpperPercentile {
		return nil, fmt.Errorf("got lower %.2f and upper %.2f, %w",
			o.OutlierLowerPercentile, o.OutlierUpperPercentile, ErrInvalidOutlierPercentile)
	}
	if o.OutlierTukeyFactor < 0 {
		o.OutlierTukeyFactor = 0
	}
	return o, nil
}
