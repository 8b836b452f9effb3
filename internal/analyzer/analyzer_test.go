package analyzer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/pthm/uniformcheck/internal/fit"
	"github.com/pthm/uniformcheck/internal/rating"
	"github.com/pthm/uniformcheck/internal/tally"
	"github.com/pthm/uniformcheck/pkg/logger"
)

// buildInput renders INSTANCE: lines for ids and RESPONSE: lines per counts
func buildInput(ids []int, counts []int) string {
	var sb strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&sb, "INSTANCE:\t%d\treuseport\n", id)
	}
	for i, c := range counts {
		for j := 0; j < c; j++ {
			fmt.Fprintf(&sb, "RESPONSE:\t%d\n", ids[i])
		}
	}
	return sb.String()
}

func run(t *testing.T, backend fit.Backend, input string) (*Report, error) {
	t.Helper()
	return New(backend, nil).Run(context.Background(), strings.NewReader(input))
}

func TestConservation(t *testing.T) {
	input := strings.Join([]string{
		"INSTANCE:\t1",
		"INSTANCE:\t2",
		"INSTANCE:\t3",
		"RESPONSE:\t1",
		"RESPONSE:\tx1",
		"RESPONSE:\t2",
		"RESPONSE:",
		"RESPONSE:\t2",
		"SUM:\t3\t0",
		"RESPONSE:\t-1",
	}, "\n")

	rep, err := run(t, fit.NewGonumBackend(), input)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	sum := 0
	for _, c := range rep.Table.Counts {
		sum += c
	}
	if sum != rep.Table.Total || rep.Table.Total != rep.Parse.Responses || sum != 3 {
		t.Errorf("sum=%d total=%d responses=%d, want all 3", sum, rep.Table.Total, rep.Parse.Responses)
	}
	if rep.Parse.Ignored != 4 {
		t.Errorf("Ignored = %d, want 4", rep.Parse.Ignored)
	}
}

func TestCategoryOrdering(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []uint64
	}{
		{
			name:  "instances win regardless of response order",
			input: "RESPONSE:\t1\nINSTANCE:\t9\nRESPONSE:\t9\nINSTANCE:\t1\nINSTANCE:\t9\n",
			want:  []uint64{9, 1},
		},
		{
			name:  "sorted responses without instances",
			input: "RESPONSE:\t30\nRESPONSE:\t4\nRESPONSE:\t100\nRESPONSE:\t4\n",
			want:  []uint64{4, 30, 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := run(t, nil, tt.input)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if !slices.Equal(rep.Table.Order, tt.want) {
				t.Errorf("Order = %v, want %v", rep.Table.Order, tt.want)
			}
		})
	}
}

func TestUniformInputRatesExcellent(t *testing.T) {
	rep, err := run(t, fit.NewGonumBackend(), buildInput([]int{11, 12, 13, 14}, []int{1000, 1000, 1000, 1000}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !rep.Applicable {
		t.Fatal("expected applicable test")
	}
	if rep.Fit.ChiSquare != 0 {
		t.Errorf("ChiSquare = %v, want 0", rep.Fit.ChiSquare)
	}
	if !rep.HasRating || rep.Rating != rating.Excellent {
		t.Errorf("Rating = %v (has=%v), want Excellent", rep.Rating, rep.HasRating)
	}
	if rep.SmallExpected {
		t.Error("SmallExpected should be false for expected 1000")
	}
}

func TestSkewedInputRatesPoor(t *testing.T) {
	rep, err := run(t, fit.NewGonumBackend(), buildInput([]int{1, 2}, []int{950, 50}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Fit.ChiSquare != 810 {
		t.Errorf("ChiSquare = %v, want 810", rep.Fit.ChiSquare)
	}
	if rep.Fit.DegreesOfFreedom != 1 {
		t.Errorf("DegreesOfFreedom = %d, want 1", rep.Fit.DegreesOfFreedom)
	}
	if rep.Rating != rating.Poor {
		t.Errorf("Rating = %v, want Poor", rep.Rating)
	}
}

func TestSingleCategoryNotApplicable(t *testing.T) {
	rep, err := run(t, fit.NewGonumBackend(), buildInput([]int{7}, []int{25}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Applicable || rep.HasRating {
		t.Errorf("single category should not be tested: %+v", rep)
	}
	if rep.Table.Total != 25 {
		t.Errorf("Total = %d, want 25", rep.Table.Total)
	}
}

func TestNoResponses(t *testing.T) {
	rep, err := run(t, fit.NewGonumBackend(), "INSTANCE:\t1\nINSTANCE:\t2\n")
	if !errors.Is(err, tally.ErrNoResponses) {
		t.Fatalf("err = %v, want ErrNoResponses", err)
	}
	if rep == nil || rep.Table != nil {
		t.Fatalf("expected report without table, got %+v", rep)
	}
	if rep.Parse.Instances != 2 {
		t.Errorf("Parse.Instances = %d, want 2", rep.Parse.Instances)
	}
}

func TestOverLongLinesDoNotAbort(t *testing.T) {
	input := strings.Join([]string{
		"INSTANCE:\t1",
		"INSTANCE:\t2",
		"RESPONSE:\t1",
		"RESPONSE:\t2",
		"SUM:\t" + strings.Repeat("x", 2<<20),
		"RESPONSE:\t1",
	}, "\n")

	rep, err := run(t, fit.NewGonumBackend(), input)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !slices.Equal(rep.Table.Counts, []int{2, 1}) || rep.Table.Total != 3 {
		t.Errorf("counts = %v, total = %d, want [2 1] and 3", rep.Table.Counts, rep.Table.Total)
	}
	if rep.Parse.Ignored != 1 {
		t.Errorf("Parse.Ignored = %d, want 1", rep.Parse.Ignored)
	}
	if !rep.Applicable || !rep.HasRating {
		t.Errorf("expected a rated test, got %+v", rep)
	}
}

func TestSmallExpectedFlag(t *testing.T) {
	ids := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	counts := []int{3, 3, 3, 3, 3, 3, 3, 3, 3, 3}

	rep, err := run(t, fit.NewGonumBackend(), buildInput(ids, counts))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Fit.Expected != 3 {
		t.Errorf("Expected = %v, want 3", rep.Fit.Expected)
	}
	if !rep.SmallExpected {
		t.Error("SmallExpected should be true for expected 3")
	}

	a := New(fit.NewGonumBackend(), nil)
	a.SmallExpected = 2
	rep, err = a.Run(context.Background(), strings.NewReader(buildInput(ids, counts)))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.SmallExpected {
		t.Error("SmallExpected should honour a lower threshold")
	}
}

func TestBackendAbsentKeepsStatistic(t *testing.T) {
	input := buildInput([]int{1, 2, 3}, []int{40, 25, 35})

	with, err := run(t, fit.NewGonumBackend(), input)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	without, err := run(t, nil, input)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if with.Fit.ChiSquare != without.Fit.ChiSquare {
		t.Errorf("ChiSquare differs: %v vs %v", with.Fit.ChiSquare, without.Fit.ChiSquare)
	}
	if !slices.Equal(with.Table.Counts, without.Table.Counts) || with.Table.Total != without.Table.Total {
		t.Error("tables differ between backends")
	}
	if without.HasRating || without.Fit.HasPValue {
		t.Error("no-backend run must not carry a p-value or rating")
	}
}

func TestUnlistedResponsesAreLogged(t *testing.T) {
	var buf bytes.Buffer
	if err := logger.InitWriter(&buf); err != nil {
		t.Fatalf("InitWriter: %v", err)
	}

	a := New(fit.NewGonumBackend(), logger.Get())
	rep, err := a.Run(context.Background(), strings.NewReader("INSTANCE:\t1\nINSTANCE:\t2\nRESPONSE:\t1\nRESPONSE:\t2\nRESPONSE:\t5\n"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Table.Total != 3 || rep.Table.Listed() != 2 {
		t.Errorf("Total=%d Listed=%d", rep.Table.Total, rep.Table.Listed())
	}
	if !strings.Contains(buf.String(), "ids=5") {
		t.Errorf("expected warning naming id 5, got %q", buf.String())
	}
}

type recordingProgress struct {
	stages []Stage
	lines  int
}

func (p *recordingProgress) SetStage(s Stage) { p.stages = append(p.stages, s) }
func (p *recordingProgress) SetLines(n int)   { p.lines = n }

func TestProgressStages(t *testing.T) {
	p := &recordingProgress{}
	a := New(nil, nil)
	a.Progress = p

	if _, err := a.Run(context.Background(), strings.NewReader("RESPONSE:\t1\nRESPONSE:\t2\n")); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []Stage{StageRead, StageTabulate, StageEvaluate, StageDone}
	if !slices.Equal(p.stages, want) {
		t.Errorf("stages = %v, want %v", p.stages, want)
	}
	if p.lines != 2 {
		t.Errorf("lines = %d, want 2", p.lines)
	}
}

func TestDescribe(t *testing.T) {
	d := Describe([]int{2, 4, 4, 4, 5, 5, 7, 9})
	if d.Min != 2 || d.Max != 9 || d.Mean != 5 || d.Median != 4.5 {
		t.Errorf("unexpected summary %+v", d)
	}
	if math.Abs(d.StdDev-2) > 1e-12 {
		t.Errorf("StdDev = %v, want 2", d.StdDev)
	}
	if math.Abs(d.CV-0.4) > 1e-12 {
		t.Errorf("CV = %v, want 0.4", d.CV)
	}

	if got := Describe(nil); got != (Descriptive{}) {
		t.Errorf("Describe(nil) = %+v, want zero", got)
	}
}
