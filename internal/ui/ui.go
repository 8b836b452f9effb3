package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode determines how output should be formatted
type OutputMode int

const (
	// OutputModeInteractive enables colors and the progress spinner
	OutputModeInteractive OutputMode = iota
	// OutputModePlain disables colors and progress (for piped output)
	OutputModePlain
	// OutputModeMachine is used for json/yaml/markdown/html output
	OutputModeMachine
)

// UI provides a unified interface for terminal output with TTY detection
type UI struct {
	Mode      OutputMode
	Writer    io.Writer
	ErrWriter io.Writer
	Styles    *Styles

	// errInteractive is true when ErrWriter is a terminal
	errInteractive bool
}

// New creates a new UI instance with automatic TTY detection
func New(w, errW io.Writer, format string) *UI {
	mode := detectMode(w, format)
	return &UI{
		Mode:           mode,
		Writer:         w,
		ErrWriter:      errW,
		Styles:         NewStyles(mode == OutputModeInteractive),
		errInteractive: isTerminal(errW),
	}
}

// detectMode determines the output mode based on TTY and format flags
func detectMode(w io.Writer, format string) OutputMode {
	if format != "" && format != "text" {
		return OutputModeMachine
	}
	if isTerminal(w) {
		return OutputModeInteractive
	}
	return OutputModePlain
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// IsInteractive returns true if the report goes to a terminal
func (ui *UI) IsInteractive() bool {
	return ui.Mode == OutputModeInteractive
}

// CanShowProgress reports whether a spinner can be drawn on ErrWriter
func (ui *UI) CanShowProgress() bool {
	return ui.errInteractive
}
