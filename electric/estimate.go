// Package electric estimates the cost of the electrical fitting of a house from its room layout.
// The sizing rules are fixed heuristics using floor division throughout.
package electric

import (
	"errors"
	"fmt"
	"math"
)

const (
	CostPerLight  = 150
	CostPerFan    = 1200
	CostPerSwitch = 40
	CostPerSocket = 120
	CostPerMCB    = 500

	// square feet served by a single fixture
	AreaPerLight  = 50
	AreaPerFan    = 120
	AreaPerSocket = 100

	MinRooms    = 1
	MinHalls    = 0
	MinRoomArea = 50
	MinHallArea = 100

	// upper bounds keep every count and subtotal well inside int range
	MaxRooms    = 1000
	MaxHalls    = 1000
	MaxRoomArea = 100000
	MaxHallArea = 100000
)

var ErrInvalidInput = errors.New("invalid estimate input")

// Inputs describes the house layout. Areas are in square feet.
type Inputs struct {
	Rooms    int       `json:"rooms"`
	Halls    int       `json:"halls"`
	RoomArea float64   `json:"room_area"`
	HallArea float64   `json:"hall_area"`
	Gauge    WireGauge `json:"wire_gauge"`
}

// NewDefaultInputs returns a two room, one hall layout with 1.0 mm wire
func NewDefaultInputs() Inputs {
	return Inputs{
		Rooms:    2,
		Halls:    1,
		RoomArea: 120,
		HallArea: 180,
		Gauge:    Gauge1mm,
	}
}

// Validate rejects layouts outside the supported room counts and areas
func (in Inputs) Validate() error {
	if in.Rooms < MinRooms {
		return fmt.Errorf("rooms must be at least %d, got %d, %w", MinRooms, in.Rooms, ErrInvalidInput)
	}
	if in.Rooms > MaxRooms {
		return fmt.Errorf("rooms must be at most %d, got %d, %w", MaxRooms, in.Rooms, ErrInvalidInput)
	}
	if in.Halls < MinHalls {
		return fmt.Errorf("halls must be at least %d, got %d, %w", MinHalls, in.Halls, ErrInvalidInput)
	}
	if in.Halls > MaxHalls {
		return fmt.Errorf("halls must be at most %d, got %d, %w", MaxHalls, in.Halls, ErrInvalidInput)
	}
	if math.IsNaN(in.RoomArea) || in.RoomArea < MinRoomArea {
		return fmt.Errorf("room area must be at least %d sq. ft., got %v, %w", MinRoomArea, in.RoomArea, ErrInvalidInput)
	}
	if in.RoomArea > MaxRoomArea {
		return fmt.Errorf("room area must be at most %d sq. ft., got %v, %w", MaxRoomArea, in.RoomArea, ErrInvalidInput)
	}
	if math.IsNaN(in.HallArea) || in.HallArea < MinHallArea {
		return fmt.Errorf("hall area must be at least %d sq. ft., got %v, %w", MinHallArea, in.HallArea, ErrInvalidInput)
	}
	if in.HallArea > MaxHallArea {
		return fmt.Errorf("hall area must be at most %d sq. ft., got %v, %w", MaxHallArea, in.HallArea, ErrInvalidInput)
	}
	if _, err := in.Gauge.UnitCost(); err != nil {
		return fmt.Errorf("%w, %w", err, ErrInvalidInput)
	}
	return nil
}

// LineItem is one priced component of the estimate
type LineItem struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	UnitCost int    `json:"unit_cost"`
	Subtotal int    `json:"subtotal"`
}

// Breakdown is the derived fixture counts and the total cost
type Breakdown struct {
	TotalArea    float64    `json:"total_area"`
	Lights       int        `json:"lights"`
	Fans         int        `json:"fans"`
	Switches     int        `json:"switches"`
	Sockets      int        `json:"sockets"`
	MCBBoxes     int        `json:"mcb_boxes"`
	WiringLength int        `json:"wiring_length_m"`
	Gauge        WireGauge  `json:"wire_gauge"`
	TotalCost    int        `json:"total_cost"`
	Items        []LineItem `json:"items"`
}

// Estimate derives the fixture counts from the total area and prices them
func Estimate(in Inputs) (Breakdown, error) {
	if err := in.Validate(); err != nil {
		return Breakdown{}, err
	}
	wirePrice, _ := in.Gauge.UnitCost()

	area := float64(in.Rooms)*in.RoomArea + float64(in.Halls)*in.HallArea

	lights := floorDiv(area, AreaPerLight)
	fans := floorDiv(area, AreaPerFan)
	b := Breakdown{
		TotalArea: area,
		Lights:    lights,
		Fans:      fans,
		Switches:  lights + fans,
		Sockets:   floorDiv(area, AreaPerSocket),
		MCBBoxes:  1,
		// ten meters of wire per hundred square feet, truncated
		WiringLength: int((area / 100) * 10),
		Gauge:        in.Gauge,
	}

	b.Items = []LineItem{
		newLineItem("Lights", b.Lights, CostPerLight),
		newLineItem("Fans", b.Fans, CostPerFan),
		newLineItem("Switches", b.Switches, CostPerSwitch),
		newLineItem("Power Sockets", b.Sockets, CostPerSocket),
		newLineItem("MCB Box", b.MCBBoxes, CostPerMCB),
		newLineItem(fmt.Sprintf("Wire (%s) meters", in.Gauge), b.WiringLength, wirePrice),
	}
	for _, item := range b.Items {
		b.TotalCost += item.Subtotal
	}
	return b, nil
}

func newLineItem(name string, qty, unitCost int) LineItem {
	return LineItem{
		Item:     name,
		Quantity: qty,
		UnitCost: unitCost,
		Subtotal: qty * unitCost,
	}
}

func floorDiv(area float64, per int) int {
	return int(math.Floor(area / float64(per)))
}

// Tips are the general installation notes shown alongside an estimate
func Tips() []string {
	return []string{
		"Always keep 10–15% extra wiring for flexibility.",
		"For kitchen and AC, use 2.5 mm or 4 mm wire.",
		"Confirm socket placements with an electrician.",
	}
}
