package fit

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// GonumBackend computes p-values with gonum's chi-squared distribution
type GonumBackend struct{}

// NewGonumBackend creates a GonumBackend
func NewGonumBackend() *GonumBackend {
	return &GonumBackend{}
}

// Name implements Backend
func (GonumBackend) Name() string {
	return "gonum"
}

// Test implements Backend
func (GonumBackend) Test(observed, expected []float64, df int) (float64, float64) {
	chiSquare := stat.ChiSquare(observed, expected)
	dist := distuv.ChiSquared{K: float64(df)}
	return chiSquare, dist.Survival(chiSquare)
}
