package regression

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aouyang1/go-multitool/stats"
	"github.com/goccy/go-json"
)

// Model represents a serializeable format of a fitted predictor storing the options, fit scores,
// and coefficients
type Model struct {
	Name      string        `json:"name"`
	Target    string        `json:"target"`
	Options   *Options      `json:"options"`
	Intercept float64       `json:"intercept"`
	Weights   []Weight      `json:"weights"`
	Scores    *stats.Scores `json:"scores,omitempty"`
}

// Weight is the coefficient of a single feature
type Weight struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Encode writes the model as indented json
func (m Model) Encode(w io.Writer) error {
	bytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal model %s, %w", m.Name, err)
	}
	_, err = w.Write(append(bytes, '\n'))
	return err
}

// DecodeModel reads a model written by Encode
func DecodeModel(r io.Reader) (Model, error) {
	var m Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Model{}, fmt.Errorf("unable to unmarshal model, %w", err)
	}
	return m, nil
}

func (m Model) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%sModel: %s\n", prefix, m.Name); err != nil {
		return err
	}
	if m.Scores != nil {
		if _, err := fmt.Fprintf(w, "%s%sMAPE: %.3f    MSE: %.3f    R2: %.3f\n",
			prefix, indent,
			m.Scores.MAPE,
			m.Scores.MSE,
			m.Scores.R2,
		); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s%sWeights:\n", prefix, indent); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%s%sLabel\tValue\t\n", prefix, indent, indent); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tbl, "%s%s%sIntercept\t%.3f\t\n", prefix, indent, indent, m.Intercept); err != nil {
		return err
	}
	for _, weight := range m.Weights {
		if _, err := fmt.Fprintf(tbl, "%s%s%s%s\t%.3f\t\n", prefix, indent, indent, weight.Label, weight.Value); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
