package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pthm/uniformcheck/internal/rating"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Rating styles
	Excellent lipgloss.Style
	Good      lipgloss.Style
	Fair      lipgloss.Style
	Poor      lipgloss.Style

	// Warning marks advisory lines
	Warning lipgloss.Style
}

// NewStyles creates a new Styles instance.
// When enabled is false, styles return text unchanged (for non-TTY output).
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if !enabled {
		s.Excellent = lipgloss.NewStyle()
		s.Good = lipgloss.NewStyle()
		s.Fair = lipgloss.NewStyle()
		s.Poor = lipgloss.NewStyle()
		s.Warning = lipgloss.NewStyle()
		return s
	}

	s.Excellent = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")) // Green
	s.Good = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))      // Yellow
	s.Fair = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))     // Orange
	s.Poor = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))       // Red

	s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}

// Rating renders a rating name in its band colour
func (s *Styles) Rating(r rating.Rating) string {
	var st lipgloss.Style
	switch r {
	case rating.Excellent:
		st = s.Excellent
	case rating.Good:
		st = s.Good
	case rating.Fair:
		st = s.Fair
	default:
		st = s.Poor
	}
	if !s.enabled {
		return r.String()
	}
	return st.Render(r.String())
}

// Warn renders an advisory line
func (s *Styles) Warn(text string) string {
	if !s.enabled {
		return text
	}
	return s.Warning.Render(text)
}
