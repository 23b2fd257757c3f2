package regression

import (
	"fmt"
	"math"

	"github.com/aouyang1/go-multitool/dataset"
	"github.com/aouyang1/go-multitool/stats"
	"gonum.org/v1/gonum/floats"
)

// Diagnostics reports collinearity between features and training rows the fit explains poorly
type Diagnostics struct {
	// VIF is only populated for models with two or more features
	VIF          map[string]float64 `json:"variance_inflation_factor,omitempty"`
	Residuals    []float64          `json:"residuals"`
	OutlierRows  []int              `json:"outlier_rows,omitempty"`
	MaxAbsResid  float64            `json:"max_abs_residual"`
	Collinearity bool               `json:"collinearity"`
}

// collinearVIF is the usual rule of thumb above which a feature is considered redundant
const collinearVIF = 10.0

func newDiagnostics(ds *dataset.Dataset, fitted, actual []float64, opt *Options) (*Diagnostics, error) {
	residuals := make([]float64, len(actual))
	floats.SubTo(residuals, actual, fitted)

	d := &Diagnostics{
		Residuals: residuals,
		OutlierRows: stats.DetectOutliers(
			residuals,
			opt.OutlierLowerPercentile,
			opt.OutlierUpperPercentile,
			opt.OutlierTukeyFactor,
		),
	}
	for _, r := range residuals {
		d.MaxAbsResid = math.Max(d.MaxAbsResid, math.Abs(r))
	}

	if ds.NumFeatures() < 2 {
		return d, nil
	}
	vif, err := stats.VarianceInflationFactor(ds.Columns())
	if err != nil {
		return nil, fmt.Errorf("unable to compute variance inflation factor for %s, %w", ds.Name(), err)
	}
	d.VIF = make(map[string]float64, len(vif))
	for label, v := range vif {
		if math.IsInf(v, 1) || v > collinearVIF {
			d.Collinearity = true
		}
		// json has no representation for +Inf
		d.VIF[label] = math.Min(v, math.MaxFloat64)
	}
	return d, nil
}
