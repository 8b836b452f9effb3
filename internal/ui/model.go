package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pthm/uniformcheck/internal/analyzer"
)

// Message types for updating the model
type (
	StageMsg analyzer.Stage
	LinesMsg int
	DoneMsg  struct{ Err error }
)

// Model is the Bubbletea model for progress display
type Model struct {
	stage    analyzer.Stage
	spinner  spinner.Model
	lines    int
	quitting bool
	err      error
}

// NewModel creates a new progress model
func NewModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		stage:   analyzer.StageRead,
		spinner: s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StageMsg:
		m.stage = analyzer.Stage(msg)
		return m, nil

	case LinesMsg:
		m.lines = int(msg)
		return m, nil

	case DoneMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.spinner.View())

	switch m.stage {
	case analyzer.StageRead:
		sb.WriteString(fmt.Sprintf(" Reading input (%d lines)", m.lines))
	case analyzer.StageTabulate:
		sb.WriteString(fmt.Sprintf(" Tabulating %d lines", m.lines))
	case analyzer.StageEvaluate:
		sb.WriteString(" Computing chi-square")
	case analyzer.StageDone:
		sb.WriteString(" Done")
	}

	return sb.String()
}
