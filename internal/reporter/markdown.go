package reporter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pthm/uniformcheck/internal/analyzer"
	"github.com/pthm/uniformcheck/internal/rating"
)

// MarkdownReporter writes a Markdown summary, optionally rendered to HTML
type MarkdownReporter struct {
	w    io.Writer
	meta Meta
	html bool
	md   goldmark.Markdown
}

// NewMarkdownReporter creates a Markdown reporter. With html set, the
// Markdown is converted to an HTML fragment.
func NewMarkdownReporter(w io.Writer, meta Meta, html bool) *MarkdownReporter {
	return &MarkdownReporter{
		w:    w,
		meta: meta,
		html: html,
		md:   goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Report writes rep as Markdown or HTML
func (r *MarkdownReporter) Report(rep *analyzer.Report) error {
	src := r.markdown(rep)
	if !r.html {
		_, err := r.w.Write(src)
		return err
	}

	var out bytes.Buffer
	if err := r.md.Convert(src, &out); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	_, err := r.w.Write(out.Bytes())
	return err
}

func (r *MarkdownReporter) markdown(rep *analyzer.Report) []byte {
	var b bytes.Buffer

	b.WriteString("# Uniformity report\n\n")
	if r.meta.Input != "" || r.meta.RunID != "" {
		fmt.Fprintf(&b, "Input: `%s`, run `%s`\n\n", r.meta.Input, r.meta.RunID)
	}

	if rep.Table == nil {
		b.WriteString(NoResponsesMessage + "\n")
		return b.Bytes()
	}

	b.WriteString("| Category | Observed |\n|---:|---:|\n")
	for _, bucket := range rep.Table.Buckets() {
		fmt.Fprintf(&b, "| %d | %d |\n", bucket.ID, bucket.Count)
	}
	fmt.Fprintf(&b, "| **Total** | **%d** |\n\n", rep.Table.Total)

	if len(rep.Table.Unlisted) > 0 {
		b.WriteString("Responses outside the instance list (counted in total):\n\n")
		for _, bucket := range rep.Table.Unlisted {
			fmt.Fprintf(&b, "- %d: %d\n", bucket.ID, bucket.Count)
		}
		b.WriteString("\n")
	}

	if !rep.Applicable {
		b.WriteString(NotApplicableMessage + "\n")
		return b.Bytes()
	}

	b.WriteString("## Chi-square goodness of fit\n\n")
	fmt.Fprintf(&b, "- Chi-square: %s\n", FormatFloat(rep.Fit.ChiSquare))
	fmt.Fprintf(&b, "- Degrees of freedom: %d\n", rep.Fit.DegreesOfFreedom)
	fmt.Fprintf(&b, "- Expected per category: %s\n", FormatFloat(rep.Fit.Expected))
	if rep.Fit.HasPValue {
		fmt.Fprintf(&b, "- p-value: %s\n", FormatPValue(rep.Fit.PValue))
		fmt.Fprintf(&b, "- Randomness: %s **%s**\n\n", rep.Rating.Emoji(), rep.Rating)
		fmt.Fprintf(&b, "Scale: %s\n", rating.Scale)
	} else {
		b.WriteString("- p-value: unavailable (no statistics backend)\n")
	}

	if rep.SmallExpected {
		fmt.Fprintf(&b, "\n> Expected per bucket < %g; chi-square approximation may be unreliable.\n",
			rep.SmallExpectedThreshold)
	}
	return b.Bytes()
}
