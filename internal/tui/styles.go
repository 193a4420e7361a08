package tui

import "github.com/charmbracelet/lipgloss"

var (
	Accent = lipgloss.Color("#8BC34A")
	Muted  = lipgloss.Color("#6B7280")
	Border = lipgloss.Color("#2a3850")
)

// Styles groups the lipgloss styles used by the browser view.
type Styles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Pager  lipgloss.Style
	Help   lipgloss.Style
	Header lipgloss.Style
	Frame  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(Accent).MarginBottom(1),
		Label:  lipgloss.NewStyle().Foreground(Muted),
		Value:  lipgloss.NewStyle().Bold(true),
		Pager:  lipgloss.NewStyle().MarginTop(1),
		Help:   lipgloss.NewStyle().Foreground(Muted).MarginTop(1),
		Header: lipgloss.NewStyle().Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(Border),
		Frame:  lipgloss.NewStyle().Padding(1, 2),
	}
}
