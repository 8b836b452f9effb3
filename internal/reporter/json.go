package reporter

import (
	"encoding/json"
	"io"

	"github.com/pthm/uniformcheck/internal/analyzer"
)

// JSONReporter outputs results as JSON
type JSONReporter struct {
	w    io.Writer
	meta Meta
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer, meta Meta) *JSONReporter {
	return &JSONReporter{w: w, meta: meta}
}

// Report outputs rep as indented JSON
func (r *JSONReporter) Report(rep *analyzer.Report) error {
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewDocument(rep, r.meta))
}
