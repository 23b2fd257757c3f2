package multitool

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMode = errors.New("unknown mode")

// Mode selects one of the four tools
type Mode string

const (
	ModeElectricity Mode = "electricity"
	ModeMarks       Mode = "marks"
	ModeRent        Mode = "pg-rent"
	ModeCareers     Mode = "careers"
)

var modeTitles = map[Mode]string{
	ModeElectricity: "Electricity Cost Estimator",
	ModeMarks:       "Marks Predictor",
	ModeRent:        "PG Rent Predictor",
	ModeCareers:     "Student Career Guidance",
}

// Modes returns every mode in menu order
func Modes() []Mode {
	return []Mode{ModeElectricity, ModeMarks, ModeRent, ModeCareers}
}

// Title is the menu label of the mode
func (m Mode) Title() string {
	return modeTitles[m]
}

func (m Mode) String() string {
	return string(m)
}

// ParseMode accepts either the mode slug or its menu title, case insensitive
func ParseMode(s string) (Mode, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, m := range Modes() {
		if norm == string(m) || norm == strings.ToLower(m.Title()) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%q, %w", s, ErrUnknownMode)
}
