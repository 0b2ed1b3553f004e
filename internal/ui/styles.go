package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Prompt      lipgloss.Style
	LineNumber  lipgloss.Style
	Timing      lipgloss.Style
	ActiveRow   lipgloss.Style
	SelectedRow lipgloss.Style
	CommentRow  lipgloss.Style
	DirtyMark   lipgloss.Style
	Help        lipgloss.Style
	Scroll      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		LineNumber:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Timing:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		ActiveRow:   lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		SelectedRow: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		CommentRow:  lipgloss.NewStyle().Faint(true).Italic(true),
		DirtyMark:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Help:        lipgloss.NewStyle().Faint(true),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}
