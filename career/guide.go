// Package career maps a favourite school subject to careers worth exploring
package career

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

var defaultGuidance = map[string][]string{
	"math":      {"Engineer", "Data Scientist", "Mathematician", "Actuary", "Economist"},
	"science":   {"Doctor", "Pharmacist", "Research Scientist", "Biotechnologist", "Environmentalist"},
	"physics":   {"Mechanical Engineer", "Physicist", "Astronomer", "Robotics Engineer"},
	"chemistry": {"Chemical Engineer", "Pharmacologist", "Forensic Scientist", "Material Scientist"},
	"biology":   {"Doctor", "Geneticist", "Zoologist", "Microbiologist"},
	"computer":  {"Software Engineer", "Web Developer", "AI/ML Engineer", "Cybersecurity Expert"},
	"english":   {"Journalist", "Content Writer", "Teacher", "Editor"},
	"history":   {"Historian", "Archaeologist", "Civil Services", "Museum Curator"},
	"geography": {"Geologist", "Urban Planner", "Cartographer", "Environmental Consultant"},
	"commerce":  {"CA (Chartered Accountant)", "Banker", "Business Analyst", "Financial Advisor"},
	"arts":      {"Designer", "Animator", "Musician", "Fine Artist"},
}

// Guide is a read only subject to careers table. Subjects are stored lowercase.
type Guide struct {
	guidance map[string][]string
}

// NewGuide copies the table, lowercasing subjects. Later duplicates after lowercasing win.
func NewGuide(guidance map[string][]string) *Guide {
	g := &Guide{guidance: make(map[string][]string, len(guidance))}
	for subject, careers := range guidance {
		g.guidance[normalize(subject)] = append([]string(nil), careers...)
	}
	return g
}

// Default returns the guide for the shipped subject table
func Default() *Guide {
	return NewGuide(defaultGuidance)
}

func normalize(subject string) string {
	return strings.ToLower(strings.TrimSpace(subject))
}

// Lookup returns the careers for an exact, case insensitive subject match. Unknown or empty
// subjects report false.
func (g *Guide) Lookup(subject string) ([]string, bool) {
	key := normalize(subject)
	if key == "" {
		return nil, false
	}
	careers, exists := g.guidance[key]
	if !exists {
		return nil, false
	}
	return append([]string(nil), careers...), true
}

// Subjects returns every known subject sorted alphabetically
func (g *Guide) Subjects() []string {
	subjects := make([]string, 0, len(g.guidance))
	for subject := range g.guidance {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return subjects
}

// Suggestions are the subjects offered when a lookup finds nothing
func Suggestions() []string {
	return []string{"Math", "Science", "Physics", "Computer"}
}

// DisplayName upper cases the first letter and lower cases the rest, e.g. "mATH" becomes "Math"
func DisplayName(subject string) string {
	s := strings.TrimSpace(subject)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
