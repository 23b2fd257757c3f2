package dataset

const (
	LabelHours = "Hours"
	LabelMarks = "Marks"

	LabelPersons = "Persons"
	LabelAC      = "AC"
	LabelFood    = "Food"
	LabelPrice   = "Price"
)

var (
	marksHours = []float64{2.5, 5.1, 3.2, 8.5, 3.5, 1.5, 9.2, 5.5, 8.3, 2.7}
	marksScore = []float64{21, 47, 27, 75, 30, 20, 88, 60, 81, 25}

	pgPersons = []float64{1, 2, 2, 3, 3, 1, 1, 2, 3}
	pgAC      = []float64{1, 1, 0, 1, 0, 0, 1, 0, 1}
	pgFood    = []float64{1, 0, 1, 1, 0, 1, 1, 0, 1}
	pgPrice   = []float64{9000, 6500, 5500, 5000, 4000, 8500, 9500, 5200, 4800}
)

// Marks returns the ten row study hours to exam marks dataset
func Marks() *Dataset {
	x := make([][]float64, len(marksHours))
	for i, h := range marksHours {
		x[i] = []float64{h}
	}
	ds, err := New("marks", []string{LabelHours}, LabelMarks, x, marksScore)
	if err != nil {
		// static table, only reachable if the literals above are edited inconsistently
		panic(err)
	}
	return ds
}

// PGRent returns the nine row paid guest housing dataset of persons per room, AC and food
// flags against monthly price
func PGRent() *Dataset {
	x := make([][]float64, len(pgPersons))
	for i := range pgPersons {
		x[i] = []float64{pgPersons[i], pgAC[i], pgFood[i]}
	}
	ds, err := New("pg_rent", []string{LabelPersons, LabelAC, LabelFood}, LabelPrice, x, pgPrice)
	if err != nil {
		panic(err)
	}
	return ds
}
