package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pthm/uniformcheck/internal/analyzer"
)

// ProgressController manages the bubbletea program for progress display.
// It implements analyzer.Progress. All methods are safe on a nil receiver.
type ProgressController struct {
	ui      *UI
	program *tea.Program
	done    chan struct{}
}

// StartProgress starts the spinner on ErrWriter if it is a terminal.
// Returns nil otherwise.
func (ui *UI) StartProgress() *ProgressController {
	if !ui.CanShowProgress() {
		return nil
	}

	// Input comes from stdin, so the program must not read keys from it.
	p := tea.NewProgram(NewModel(), tea.WithOutput(ui.ErrWriter), tea.WithInput(nil))

	ctrl := &ProgressController{
		ui:      ui,
		program: p,
		done:    make(chan struct{}),
	}

	go func() {
		// Program errors only affect the spinner, never the report.
		_, _ = p.Run()
		close(ctrl.done)
	}()

	return ctrl
}

// SetStage implements analyzer.Progress
func (pc *ProgressController) SetStage(stage analyzer.Stage) {
	if pc != nil && pc.program != nil {
		pc.program.Send(StageMsg(stage))
	}
}

// SetLines implements analyzer.Progress
func (pc *ProgressController) SetLines(n int) {
	if pc != nil && pc.program != nil {
		pc.program.Send(LinesMsg(n))
	}
}

// Done stops the spinner and waits for the terminal to be restored
func (pc *ProgressController) Done(err error) {
	if pc != nil && pc.program != nil {
		pc.program.Send(DoneMsg{Err: err})
		<-pc.done
		pc.program = nil
	}
}
