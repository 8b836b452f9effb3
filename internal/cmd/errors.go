package cmd

import (
	"errors"
	"io"

	"github.com/charmbracelet/fang"

	"github.com/pthm/uniformcheck/internal/tally"
)

// IsSilentError reports whether err has already been reported on stdout
// and should only affect the exit status
func IsSilentError(err error) bool {
	return errors.Is(err, tally.ErrNoResponses)
}

// ErrorHandler is the fang error handler. Silent errors print nothing;
// everything else goes through fang's default rendering.
func ErrorHandler(w io.Writer, styles fang.Styles, err error) {
	if IsSilentError(err) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
