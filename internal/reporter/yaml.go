package reporter

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pthm/uniformcheck/internal/analyzer"
)

// YAMLReporter outputs results as YAML
type YAMLReporter struct {
	w    io.Writer
	meta Meta
}

// NewYAMLReporter creates a new YAML reporter
func NewYAMLReporter(w io.Writer, meta Meta) *YAMLReporter {
	return &YAMLReporter{w: w, meta: meta}
}

// Report outputs rep as a YAML document
func (r *YAMLReporter) Report(rep *analyzer.Report) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(rep, r.meta)); err != nil {
		return err
	}
	return enc.Close()
}
