// Package dataset holds the fixed in-memory tables the regression pages are fit against. Every
// accessor hands out copies so the shipped tables can never be mutated by callers.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	mat_ "github.com/aouyang1/go-multitool/mat"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrNoRows             = errors.New("dataset has no rows")
	ErrNoFeatures         = errors.New("dataset has no feature labels")
	ErrTargetLenMismatch  = errors.New("number of targets does not match number of rows")
	ErrFeatureLenMismatch = errors.New("row length does not match number of feature labels")
	ErrUnknownFeature     = errors.New("unknown feature label")
)

// Dataset is an ordered set of records, each a fixed length feature vector with one target
type Dataset struct {
	name   string
	labels []string
	target string
	x      [][]float64
	y      []float64
}

// New validates and copies the input rows into an immutable dataset
func New(name string, labels []string, target string, x [][]float64, y []float64) (*Dataset, error) {
	if len(labels) == 0 {
		return nil, ErrNoFeatures
	}
	if len(x) == 0 {
		return nil, ErrNoRows
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%s has %d rows and %d targets, %w", name, len(x), len(y), ErrTargetLenMismatch)
	}
	for i, row := range x {
		if len(row) != len(labels) {
			return nil, fmt.Errorf("%s row %d has %d values for %d labels, %w", name, i, len(row), len(labels), ErrFeatureLenMismatch)
		}
	}

	ds := &Dataset{
		name:   name,
		labels: append([]string(nil), labels...),
		target: target,
		x:      copyRows(x),
		y:      append([]float64(nil), y...),
	}
	return ds, nil
}

func copyRows(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

func (d *Dataset) Name() string {
	return d.name
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.y)
}

// NumFeatures returns the length of every feature vector
func (d *Dataset) NumFeatures() int {
	return len(d.labels)
}

// FeatureLabels returns the feature names in column order
func (d *Dataset) FeatureLabels() []string {
	return append([]string(nil), d.labels...)
}

func (d *Dataset) TargetLabel() string {
	return d.target
}

// Rows returns a copy of the feature vectors
func (d *Dataset) Rows() [][]float64 {
	return copyRows(d.x)
}

// Targets returns a copy of the target values
func (d *Dataset) Targets() []float64 {
	return append([]float64(nil), d.y...)
}

// Column returns a copy of the values of a single feature
func (d *Dataset) Column(label string) ([]float64, error) {
	idx := -1
	for i, l := range d.labels {
		if l == label {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%s in %s, %w", label, d.name, ErrUnknownFeature)
	}
	col := make([]float64, len(d.x))
	for i, row := range d.x {
		col[i] = row[idx]
	}
	return col, nil
}

// Columns returns every feature keyed by its label
func (d *Dataset) Columns() map[string][]float64 {
	cols := make(map[string][]float64, len(d.labels))
	for _, label := range d.labels {
		col, _ := d.Column(label)
		cols[label] = col
	}
	return cols
}

// FeatureMatrix returns the N x F design matrix without an intercept column
func (d *Dataset) FeatureMatrix() (*mat.Dense, error) {
	return mat_.NewDenseFromArray(d.x)
}

// TargetMatrix returns the N x 1 target column
func (d *Dataset) TargetMatrix() (*mat.Dense, error) {
	return mat_.NewColumn(d.y)
}

// Means returns the per feature means and the target mean, i.e. the centroid of the data
func (d *Dataset) Means() ([]float64, float64) {
	means := make([]float64, len(d.labels))
	for i, label := range d.labels {
		col, _ := d.Column(label)
		means[i] = stat.Mean(col, nil)
	}
	return means, stat.Mean(d.y, nil)
}

// Range returns the min and max values of a feature
func (d *Dataset) Range(label string) (float64, float64, error) {
	col, err := d.Column(label)
	if err != nil {
		return 0, 0, err
	}
	lo, hi := col[0], col[0]
	for _, v := range col[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, nil
}

// TablePrint writes the raw records as an aligned table
func (d *Dataset) TablePrint(w io.Writer) error {
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	header := append(d.FeatureLabels(), d.target)
	if _, err := fmt.Fprintf(tbl, "%s\t\n", strings.Join(header, "\t")); err != nil {
		return err
	}
	for i, row := range d.x {
		vals := make([]string, 0, len(row)+1)
		for _, v := range row {
			vals = append(vals, strconv.FormatFloat(v, 'f', -1, 64))
		}
		vals = append(vals, strconv.FormatFloat(d.y[i], 'f', -1, 64))
		if _, err := fmt.Fprintf(tbl, "%s\t\n", strings.Join(vals, "\t")); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
