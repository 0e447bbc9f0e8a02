package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// reportStyles holds the lipgloss styles used by the table renderers.
type reportStyles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Normal  lipgloss.Style
	Muted   lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
}

// defaultStyles returns the report colour scheme.
func defaultStyles() reportStyles {
	return reportStyles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		Normal:  lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
	}
}

var styles = defaultStyles()
