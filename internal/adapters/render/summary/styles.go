package summary

import "github.com/charmbracelet/lipgloss"

type styles struct {
	box    lipgloss.Style
	title  lipgloss.Style
	reason lipgloss.Style
	key    lipgloss.Style
	value  lipgloss.Style
	answer lipgloss.Style
	record lipgloss.Style
}

func newStyles() styles {
	return styles{
		box:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("213")).Padding(0, 2),
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
		reason: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		key:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		value:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		answer: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		record: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
	}
}
