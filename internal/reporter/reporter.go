package reporter

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pthm/uniformcheck/internal/analyzer"
	"github.com/pthm/uniformcheck/internal/tally"
	"github.com/pthm/uniformcheck/internal/ui"
)

// ErrUnknownFormat is returned by New for unsupported output formats
var ErrUnknownFormat = errors.New("unknown output format")

// Output formats
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Formats lists every supported format
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}

// Reporter defines the interface for outputting analysis results
type Reporter interface {
	// Report writes rep. A Report with a nil Table means no responses.
	Report(rep *analyzer.Report) error
}

// Meta carries run information that is not part of the analysis itself
type Meta struct {
	RunID   string
	Version string
	Input   string
}

// New returns the Reporter for format
func New(format string, w io.Writer, u *ui.UI, meta Meta) (Reporter, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		var styles *ui.Styles
		if u != nil {
			styles = u.Styles
		}
		return NewTextReporter(w, styles), nil
	case FormatJSON:
		return NewJSONReporter(w, meta), nil
	case FormatYAML:
		return NewYAMLReporter(w, meta), nil
	case FormatMarkdown:
		return NewMarkdownReporter(w, meta, false), nil
	case FormatHTML:
		return NewMarkdownReporter(w, meta, true), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
	}
}

// Document is the structured form of a Report shared by json and yaml
type Document struct {
	RunID   string `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Input   string `json:"input,omitempty" yaml:"input,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`

	Parse ParseSummary `json:"parse" yaml:"parse"`

	CategorySource string                `json:"category_source,omitempty" yaml:"category_source,omitempty"`
	Categories     []tally.Bucket        `json:"categories" yaml:"categories"`
	Total          int                   `json:"total" yaml:"total"`
	Unlisted       []tally.Bucket        `json:"unlisted,omitempty" yaml:"unlisted,omitempty"`
	Stats          *analyzer.Descriptive `json:"stats,omitempty" yaml:"stats,omitempty"`

	Applicable bool         `json:"applicable" yaml:"applicable"`
	Test       *TestSummary `json:"test,omitempty" yaml:"test,omitempty"`
}

// ParseSummary holds per-kind line counters
type ParseSummary struct {
	Lines     int `json:"lines" yaml:"lines"`
	Instances int `json:"instances" yaml:"instances"`
	Responses int `json:"responses" yaml:"responses"`
	Ignored   int `json:"ignored" yaml:"ignored"`
}

// TestSummary holds the goodness-of-fit outcome. ChiSquare is nil when the
// statistic is infinite; PValue and Rating are empty without a backend.
type TestSummary struct {
	ChiSquare              *float64 `json:"chi_square" yaml:"chi_square"`
	DegreesOfFreedom       int      `json:"degrees_of_freedom" yaml:"degrees_of_freedom"`
	ExpectedPerCategory    float64  `json:"expected_per_category" yaml:"expected_per_category"`
	PValue                 *float64 `json:"p_value,omitempty" yaml:"p_value,omitempty"`
	Backend                string   `json:"backend,omitempty" yaml:"backend,omitempty"`
	Rating                 string   `json:"rating,omitempty" yaml:"rating,omitempty"`
	SmallExpected          bool     `json:"small_expected" yaml:"small_expected"`
	SmallExpectedThreshold float64  `json:"small_expected_threshold" yaml:"small_expected_threshold"`
}

// NewDocument converts a Report into its structured form
func NewDocument(rep *analyzer.Report, meta Meta) Document {
	doc := Document{
		RunID:   meta.RunID,
		Version: meta.Version,
		Input:   meta.Input,
		Parse: ParseSummary{
			Lines:     rep.Parse.Lines,
			Instances: rep.Parse.Instances,
			Responses: rep.Parse.Responses,
			Ignored:   rep.Parse.Ignored,
		},
		Categories: []tally.Bucket{},
	}

	if rep.Table == nil {
		doc.Error = NoResponsesMessage
		return doc
	}

	doc.CategorySource = rep.Table.Source.String()
	doc.Categories = rep.Table.Buckets()
	doc.Total = rep.Table.Total
	doc.Unlisted = rep.Table.Unlisted
	stats := rep.Stats
	doc.Stats = &stats
	doc.Applicable = rep.Applicable

	if !rep.Applicable {
		return doc
	}

	ts := &TestSummary{
		DegreesOfFreedom:       rep.Fit.DegreesOfFreedom,
		ExpectedPerCategory:    rep.Fit.Expected,
		SmallExpected:          rep.SmallExpected,
		SmallExpectedThreshold: rep.SmallExpectedThreshold,
	}
	if !math.IsInf(rep.Fit.ChiSquare, 0) {
		chi := rep.Fit.ChiSquare
		ts.ChiSquare = &chi
	}
	if rep.Fit.HasPValue {
		p := rep.Fit.PValue
		ts.PValue = &p
		ts.Backend = rep.Fit.Backend
	}
	if rep.HasRating {
		ts.Rating = rep.Rating.String()
	}
	doc.Test = ts
	return doc
}
