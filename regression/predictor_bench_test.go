package regression

import (
	"testing"

	"github.com/aouyang1/go-multitool/dataset"
	"github.com/pkg/profile"
)

var benchPredictRes float64

func BenchmarkFitPGRent(b *testing.B) {
	ds := dataset.PGRent()

	b.ResetTimer()
	for b.Loop() {
		if _, err := Fit(ds, nil); err != nil {
			panic(err)
		}
	}
}

func BenchmarkPredictPGRent(b *testing.B) {
	p, err := Fit(dataset.PGRent(), nil)
	if err != nil {
		panic(err)
	}
	features := []float64{2, 1, 0}

	b.ResetTimer()
	defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	for b.Loop() {
		benchPredictRes, err = p.Predict(features)
		if err != nil {
			panic(err)
		}
	}
}
