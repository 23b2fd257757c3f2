package electric

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownWireGauge = errors.New("unknown wire gauge")

// WireGauge is the copper wire thickness used for the whole installation
type WireGauge string

const (
	Gauge1mm   WireGauge = "1.0 mm"
	Gauge1p5mm WireGauge = "1.5 mm"
	Gauge2p5mm WireGauge = "2.5 mm"
	Gauge4mm   WireGauge = "4.0 mm"
)

// wireCost is the price per meter of each gauge
var wireCost = map[WireGauge]int{
	Gauge1mm:   20,
	Gauge1p5mm: 30,
	Gauge2p5mm: 40,
	Gauge4mm:   60,
}

// WireGauges lists the gauges in increasing thickness
func WireGauges() []WireGauge {
	return []WireGauge{Gauge1mm, Gauge1p5mm, Gauge2p5mm, Gauge4mm}
}

// UnitCost returns the price per meter of the gauge
func (g WireGauge) UnitCost() (int, error) {
	cost, exists := wireCost[g]
	if !exists {
		return 0, fmt.Errorf("%q, %w", string(g), ErrUnknownWireGauge)
	}
	return cost, nil
}

func (g WireGauge) String() string {
	return string(g)
}

// ParseWireGauge accepts "1.5 mm", "1.5mm" or "1.5" as well as the integer shorthands "1" and "4"
func ParseWireGauge(s string) (WireGauge, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.TrimSpace(strings.TrimSuffix(norm, "mm"))
	switch norm {
	case "1", "1.0":
		return Gauge1mm, nil
	case "1.5":
		return Gauge1p5mm, nil
	case "2.5":
		return Gauge2p5mm, nil
	case "4", "4.0":
		return Gauge4mm, nil
	}
	return "", fmt.Errorf("%q, %w", s, ErrUnknownWireGauge)
}
