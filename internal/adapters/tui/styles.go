package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	caption lipgloss.Style
	image   lipgloss.Style
	timer   lipgloss.Style
	urgent  lipgloss.Style
	stats   lipgloss.Style
	hint    lipgloss.Style
	err     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
		caption: lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		image: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("244")).
			Padding(1, 4).
			Align(lipgloss.Center),
		timer:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		urgent: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		stats:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		hint:   lipgloss.NewStyle().Faint(true),
		err:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
