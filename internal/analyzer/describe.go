package analyzer

import (
	"github.com/montanaflynn/stats"
)

// Descriptive summarises the spread of per-category counts
type Descriptive struct {
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
	// CV is the coefficient of variation (StdDev / Mean), 0 when Mean is 0
	CV float64 `json:"cv" yaml:"cv"`
}

// Describe computes descriptive statistics over counts. An empty slice
// yields the zero value.
func Describe(counts []int) Descriptive {
	data := stats.LoadRawData(counts)
	if data.Len() == 0 {
		return Descriptive{}
	}

	// Errors are only returned for empty input, handled above.
	var d Descriptive
	d.Min, _ = stats.Min(data)
	d.Max, _ = stats.Max(data)
	d.Mean, _ = stats.Mean(data)
	d.Median, _ = stats.Median(data)
	d.StdDev, _ = stats.StandardDeviationPopulation(data)
	if d.Mean != 0 {
		d.CV = d.StdDev / d.Mean
	}
	return d
}
