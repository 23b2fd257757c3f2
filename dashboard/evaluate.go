package dashboard

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/aouyang1/go-multitool"
	"github.com/aouyang1/go-multitool/electric"
)

// Evaluate reads the mode's inputs from the query and runs the matching tool. The result is one
// of the multitool result types.
func Evaluate(tk *multitool.Toolkit, mode multitool.Mode, q url.Values) (any, error) {
	switch mode {
	case multitool.ModeElectricity:
		in, err := ElectricityInputs(q)
		if err != nil {
			return nil, err
		}
		return tk.EstimateElectricity(in)
	case multitool.ModeMarks:
		hours, err := MarksInputs(q)
		if err != nil {
			return nil, err
		}
		return tk.PredictMarks(hours)
	case multitool.ModeRent:
		in, err := RentInputs(q)
		if err != nil {
			return nil, err
		}
		return tk.PredictRent(in)
	case multitool.ModeCareers:
		return tk.Careers(CareerInputs(q)), nil
	}
	return nil, fmt.Errorf("%q, %w", string(mode), multitool.ErrUnknownMode)
}

// isInvalidInput reports errors caused by the caller's inputs rather than the server
func isInvalidInput(err error) bool {
	return errors.Is(err, ErrBadParam) ||
		errors.Is(err, electric.ErrInvalidInput) ||
		errors.Is(err, electric.ErrUnknownWireGauge) ||
		errors.Is(err, multitool.ErrInvalidHours) ||
		errors.Is(err, multitool.ErrInvalidPersons)
}

// outcome classifies a tool response for metrics
func outcome(res any, err error) string {
	switch {
	case err == nil:
		if c, ok := res.(*multitool.CareerResult); ok && !c.Found {
			return resultNotFound
		}
		return resultOK
	case isInvalidInput(err):
		return resultInvalidInput
	case errors.Is(err, multitool.ErrUnknownMode):
		return resultNotFound
	}
	return resultError
}

// prediction extracts the predicted value of the regression tools
func prediction(res any) (float64, bool) {
	switch r := res.(type) {
	case *multitool.MarksResult:
		return r.Prediction, true
	case *multitool.RentResult:
		return r.Prediction, true
	}
	return 0, false
}
