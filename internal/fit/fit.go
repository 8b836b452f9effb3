// Package fit runs the chi-square goodness-of-fit test against a uniform
// distribution.
package fit

import (
	"context"
	"math"

	"github.com/pthm/uniformcheck/pkg/logger"
)

// agreementTolerance bounds the relative difference allowed between the
// statistic computed here and the one a Backend recomputes
const agreementTolerance = 1e-9

// Backend computes the p-value of a chi-square statistic. A nil Backend
// means p-values are unavailable.
type Backend interface {
	// Name identifies the backend in reports and logs
	Name() string

	// Test recomputes the statistic for observed against expected and
	// returns it with the upper-tail probability under chi-square(df)
	Test(observed, expected []float64, df int) (statistic, pValue float64)
}

// Result is the outcome of one test. PValue is only meaningful when
// HasPValue is true.
type Result struct {
	ChiSquare           float64
	DegreesOfFreedom    int
	Expected            float64
	PValue              float64
	HasPValue           bool
	Backend             string
	BackendStatistic    float64
	BackendDisagreement bool
}

// Evaluator computes Results. Backend and Logger may be nil.
type Evaluator struct {
	Backend Backend
	Logger  logger.Logger
}

// NewEvaluator creates an Evaluator with an optional backend
func NewEvaluator(backend Backend, log logger.Logger) *Evaluator {
	return &Evaluator{Backend: backend, Logger: log}
}

// ExpectedPerCategory returns total/k, or 0 when k is 0
func ExpectedPerCategory(total, k int) float64 {
	if k == 0 {
		return 0
	}
	return float64(total) / float64(k)
}

// ChiSquare returns the Pearson statistic of counts against a constant
// expected value. A non-positive expected value yields +Inf.
func ChiSquare(counts []int, expected float64) float64 {
	if expected <= 0 {
		return math.Inf(1)
	}
	var chiSquare float64
	for _, c := range counts {
		chiSquare += math.Pow(float64(c)-expected, 2) / expected
	}
	return chiSquare
}

// Evaluate tests counts (one per category) summing to total. It returns
// false when there are fewer than two categories and the test does not apply.
func (e *Evaluator) Evaluate(ctx context.Context, counts []int, total int) (Result, bool) {
	k := len(counts)
	if k < 2 {
		return Result{}, false
	}

	expected := ExpectedPerCategory(total, k)
	res := Result{
		ChiSquare:        ChiSquare(counts, expected),
		DegreesOfFreedom: k - 1,
		Expected:         expected,
	}

	if e.Backend == nil || expected <= 0 {
		return res, true
	}

	observed := make([]float64, k)
	exp := make([]float64, k)
	for i, c := range counts {
		observed[i] = float64(c)
		exp[i] = expected
	}

	stat, p := e.Backend.Test(observed, exp, res.DegreesOfFreedom)
	res.PValue = p
	res.HasPValue = true
	res.Backend = e.Backend.Name()
	res.BackendStatistic = stat

	if !agrees(stat, res.ChiSquare) {
		res.BackendDisagreement = true
		if e.Logger != nil {
			e.Logger.Warn(ctx, "backend chi-square statistic disagrees",
				logger.String("backend", res.Backend),
				logger.Float64("computed", res.ChiSquare),
				logger.Float64("backend_statistic", stat),
			)
		}
	}
	return res, true
}

func agrees(a, b float64) bool {
	return math.Abs(a-b) <= agreementTolerance*math.Max(1, math.Abs(b))
}
