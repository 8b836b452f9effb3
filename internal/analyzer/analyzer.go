// Package analyzer runs the full uniformity check over an input stream:
// parse, tabulate, test and rate.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pthm/uniformcheck/internal/fit"
	"github.com/pthm/uniformcheck/internal/parser"
	"github.com/pthm/uniformcheck/internal/rating"
	"github.com/pthm/uniformcheck/internal/tally"
	"github.com/pthm/uniformcheck/pkg/logger"
)

// DefaultSmallExpected is the expected-per-category count below which the
// chi-square approximation is flagged as unreliable
const DefaultSmallExpected = 5.0

// progressEvery controls how often line counts are pushed to Progress
const progressEvery = 4096

// Stage identifies a pipeline step for progress display
type Stage int

const (
	StageRead Stage = iota
	StageTabulate
	StageEvaluate
	StageDone
)

// Progress receives pipeline updates. Implementations must be cheap.
type Progress interface {
	SetStage(stage Stage)
	SetLines(n int)
}

// Report is everything the renderers need. Table is nil when no responses
// were parsed.
type Report struct {
	Parse parser.Counts
	Table *tally.Table
	Stats Descriptive

	// Applicable is false when there are fewer than two categories
	Applicable bool
	Fit        fit.Result

	Rating    rating.Rating
	HasRating bool

	SmallExpected          bool
	SmallExpectedThreshold float64
}

// Analyzer wires the pipeline stages together
type Analyzer struct {
	Evaluator     *fit.Evaluator
	SmallExpected float64
	Progress      Progress
	Logger        logger.Logger
}

// New creates an Analyzer with an optional p-value backend
func New(backend fit.Backend, log logger.Logger) *Analyzer {
	return &Analyzer{
		Evaluator:     fit.NewEvaluator(backend, log),
		SmallExpected: DefaultSmallExpected,
		Logger:        log,
	}
}

// Run consumes r and produces a Report. When no responses were parsed it
// returns a Report with a nil Table together with tally.ErrNoResponses.
func (a *Analyzer) Run(ctx context.Context, r io.Reader) (*Report, error) {
	a.stage(StageRead)

	sc := parser.NewScanner(r)
	tab := tally.NewTabulator()
	for sc.Scan() {
		tab.Add(sc.Event())
		if n := sc.Counts().Lines; a.Progress != nil && n%progressEvery == 0 {
			a.Progress.SetLines(n)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	counts := sc.Counts()
	if a.Progress != nil {
		a.Progress.SetLines(counts.Lines)
	}
	a.info(ctx, "input parsed",
		logger.Int("lines", counts.Lines),
		logger.Int("instances", counts.Instances),
		logger.Int("responses", counts.Responses),
		logger.Int("ignored", counts.Ignored),
	)

	a.stage(StageTabulate)
	tbl, err := tab.Table()
	if err != nil {
		a.stage(StageDone)
		if errors.Is(err, tally.ErrNoResponses) {
			return &Report{Parse: counts}, err
		}
		return nil, err
	}

	a.stage(StageEvaluate)
	rep := a.Evaluate(ctx, tbl)
	rep.Parse = counts
	a.stage(StageDone)
	return rep, nil
}

// Evaluate tests an already tabulated Table
func (a *Analyzer) Evaluate(ctx context.Context, tbl *tally.Table) *Report {
	threshold := a.SmallExpected
	if threshold <= 0 {
		threshold = DefaultSmallExpected
	}

	rep := &Report{
		Table:                  tbl,
		Stats:                  Describe(tbl.Counts),
		SmallExpectedThreshold: threshold,
	}

	if len(tbl.Unlisted) > 0 && a.Logger != nil {
		a.Logger.Warn(ctx, "responses outside the instance list are counted in Total only",
			logger.String("ids", joinIDs(tbl.Unlisted)),
			logger.Int("responses", tbl.Total-tbl.Listed()),
		)
	}

	res, ok := a.Evaluator.Evaluate(ctx, tbl.Counts, tbl.Total)
	if !ok {
		a.info(ctx, "single category, chi-square test skipped", logger.Int("k", tbl.K()))
		return rep
	}

	rep.Applicable = true
	rep.Fit = res
	rep.SmallExpected = res.Expected < threshold
	if res.HasPValue {
		rep.Rating = rating.Classify(res.PValue)
		rep.HasRating = true
	}

	a.info(ctx, "goodness of fit computed",
		logger.Int("k", tbl.K()),
		logger.Float64("chi_square", res.ChiSquare),
		logger.Int("df", res.DegreesOfFreedom),
		logger.Float64("expected", res.Expected),
		logger.Float64("mean", rep.Stats.Mean),
		logger.Float64("stddev", rep.Stats.StdDev),
	)
	return rep
}

func (a *Analyzer) stage(s Stage) {
	if a.Progress != nil {
		a.Progress.SetStage(s)
	}
}

func (a *Analyzer) info(ctx context.Context, msg string, fields ...logger.Field) {
	if a.Logger != nil {
		a.Logger.Info(ctx, msg, fields...)
	}
}

func joinIDs(buckets []tally.Bucket) string {
	ids := make([]string, len(buckets))
	for i, b := range buckets {
		ids[i] = strconv.FormatUint(b.ID, 10)
	}
	return strings.Join(ids, ",")
}
