package dashboard

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/aouyang1/go-multitool"
	"github.com/aouyang1/go-multitool/electric"
)

var ErrBadParam = errors.New("invalid query parameter")

// ElectricityInputs reads the estimator fields, falling back to the page defaults for missing ones
func ElectricityInputs(q url.Values) (electric.Inputs, error) {
	in := electric.NewDefaultInputs()
	var err error
	if in.Rooms, err = intParam(q, "rooms", in.Rooms); err != nil {
		return in, err
	}
	if in.Halls, err = intParam(q, "halls", in.Halls); err != nil {
		return in, err
	}
	if in.RoomArea, err = floatParam(q, "room_area", in.RoomArea); err != nil {
		return in, err
	}
	if in.HallArea, err = floatParam(q, "hall_area", in.HallArea); err != nil {
		return in, err
	}
	if raw := q.Get("wire"); raw != "" {
		in.Gauge, err = electric.ParseWireGauge(raw)
		if err != nil {
			return in, fmt.Errorf("wire, %w, %w", err, ErrBadParam)
		}
	}
	return in, nil
}

// DefaultStudyHours is the initial value of the marks page
const DefaultStudyHours = 5.0

// MarksInputs reads the study hours
func MarksInputs(q url.Values) (float64, error) {
	return floatParam(q, "hours", DefaultStudyHours)
}

// RentInputs reads the room preferences. ac accepts "AC"/"Non-AC" and food accepts "Yes"/"No",
// both also accept boolean strings.
func RentInputs(q url.Values) (multitool.RentInputs, error) {
	in := multitool.RentInputs{Persons: 1, AC: true, Food: true}
	var err error
	if in.Persons, err = intParam(q, "persons", in.Persons); err != nil {
		return in, err
	}
	if in.AC, err = choiceParam(q, "ac", "ac", "non-ac", in.AC); err != nil {
		return in, err
	}
	if in.Food, err = choiceParam(q, "food", "yes", "no", in.Food); err != nil {
		return in, err
	}
	return in, nil
}

// CareerInputs reads the free text subject
func CareerInputs(q url.Values) string {
	return q.Get("subject")
}

func intParam(q url.Values, key string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not an integer, %w", key, raw, ErrBadParam)
	}
	return v, nil
}

func floatParam(q url.Values, key string, def float64) (float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a number, %w", key, raw, ErrBadParam)
	}
	return v, nil
}

func choiceParam(q url.Values, key, yes, no string, def bool) (bool, error) {
	raw := strings.ToLower(strings.TrimSpace(q.Get(key)))
	switch raw {
	case "":
		return def, nil
	case yes:
		return true, nil
	case no:
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s=%q expected %s or %s, %w", key, raw, yes, no, ErrBadParam)
	}
	return v, nil
}
