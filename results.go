package multitool

import (
	"fmt"

	"github.com/aouyang1/go-multitool/electric"
	"github.com/aouyang1/go-multitool/regression"
)

type ElectricityResult struct {
	Inputs    electric.Inputs    `json:"inputs"`
	Breakdown electric.Breakdown `json:"breakdown"`
	Tips      []string           `json:"tips"`
}

type MarksResult struct {
	Hours      float64          `json:"hours"`
	Prediction float64          `json:"predicted_marks"`
	Slope      float64          `json:"slope"`
	Intercept  float64          `json:"intercept"`
	Equation   string           `json:"equation"`
	Model      regression.Model `json:"model"`

	// training points and fitted line for plotting
	HoursData []float64 `json:"hours_data"`
	MarksData []float64 `json:"marks_data"`
	LineHours []float64 `json:"line_hours"`
	LineMarks []float64 `json:"line_marks"`
}

// RentInputs are the room preferences of the PG rent page
type RentInputs struct {
	Persons int  `json:"persons"`
	AC      bool `json:"ac"`
	Food    bool `json:"food"`
}

// Features orders the preferences like the rent dataset columns with flags as 1 or 0
func (in RentInputs) Features() []float64 {
	return []float64{float64(in.Persons), flag(in.AC), flag(in.Food)}
}

// Summary describes the room and its predicted price, e.g.
// For a 2-person AC room without food: ₹6636.73
func (in RentInputs) Summary(price float64) string {
	room := "Non-AC"
	if in.AC {
		room = "AC"
	}
	with := "with"
	if !in.Food {
		with = "without"
	}
	return fmt.Sprintf("For a %d-person %s room %s food: ₹%.2f", in.Persons, room, with, price)
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

type RentResult struct {
	Inputs       RentInputs              `json:"inputs"`
	Prediction   float64                 `json:"predicted_price"`
	Summary      string                  `json:"summary"`
	Coefficients map[string]float64      `json:"coefficients"`
	Intercept    float64                 `json:"intercept"`
	Equation     string                  `json:"equation"`
	Model        regression.Model        `json:"model"`
	Diagnostics  *regression.Diagnostics `json:"diagnostics,omitempty"`
}

type CareerResult struct {
	Subject     string   `json:"subject"`
	Found       bool     `json:"found"`
	Careers     []string `json:"careers,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}
