package reporter

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pthm/uniformcheck/internal/analyzer"
	"github.com/pthm/uniformcheck/internal/rating"
	"github.com/pthm/uniformcheck/internal/ui"
)

// Fixed report lines
const (
	NoResponsesMessage    = "No responses parsed from STDIN."
	NotApplicableMessage  = "Only one category detected; chi-square test not applicable."
	Separator             = "---------------------------------------"
	SmallExpectedNote     = "NOTE:\texpected per bucket < 5; chi-square approximation may be unreliable"
	MissingBackendMessage = "p-value requires-scipy"

	notePrefix = "NOTE:\t"
)

// TextReporter writes the line-oriented, tab-separated report
type TextReporter struct {
	w      io.Writer
	styles *ui.Styles
}

// NewTextReporter creates a new text reporter. styles may be nil.
func NewTextReporter(w io.Writer, styles *ui.Styles) *TextReporter {
	if styles == nil {
		styles = ui.NewStyles(false)
	}
	return &TextReporter{w: w, styles: styles}
}

// Report writes rep in the text format
func (r *TextReporter) Report(rep *analyzer.Report) error {
	ew := &errWriter{w: r.w}

	if rep.Table == nil {
		ew.line(NoResponsesMessage)
		return ew.err
	}

	for _, b := range rep.Table.Buckets() {
		ew.printf("SUMMARY\t%d\t%d\n", b.ID, b.Count)
	}
	ew.printf("Total\t%d\n", rep.Table.Total)

	if !rep.Applicable {
		ew.line(NotApplicableMessage)
		return ew.err
	}

	if !rep.Fit.HasPValue {
		ew.printf("Chi-square: %s\n", FormatFloat(rep.Fit.ChiSquare))
		ew.printf("df,%d\n", rep.Fit.DegreesOfFreedom)
		ew.line(MissingBackendMessage)
		return ew.err
	}

	ew.printf("Chi-square:\t%.3f\n", rep.Fit.ChiSquare)
	ew.printf("p-value:\t%s\n", FormatPValue(rep.Fit.PValue))
	ew.printf("RANDOMNESS:\t%s %s\n", rep.Rating.Emoji(), r.styles.Rating(rep.Rating))
	ew.line(Separator)
	ew.line("")
	ew.line("SCALE:\t" + rating.Scale)
	if rep.SmallExpected {
		advice := strings.TrimPrefix(SmallExpectedNote, notePrefix)
		if rep.SmallExpectedThreshold != analyzer.DefaultSmallExpected {
			advice = fmt.Sprintf("expected per bucket < %g; chi-square approximation may be unreliable",
				rep.SmallExpectedThreshold)
		}
		// tabs stay outside the styled span; lipgloss expands them
		ew.line(notePrefix + r.styles.Warn(advice))
	}
	return ew.err
}

// FormatPValue renders tiny p-values as truncation markers
func FormatPValue(p float64) string {
	switch {
	case p < 1e-6:
		return "< 1e-6"
	case p < 1e-3:
		return "< 0.001"
	default:
		return fmt.Sprintf("%.3f", p)
	}
}

// FormatFloat renders f in shortest round-trip form, always with a decimal
// point or exponent (810 -> "810.0", +Inf -> "inf").
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// errWriter keeps the first write error and skips later writes
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) line(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
