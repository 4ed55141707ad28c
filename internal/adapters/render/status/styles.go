package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	account  lipgloss.Style
	active   lipgloss.Style
	detail   lipgloss.Style
	warning  lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	key      lipgloss.Style
	running  lipgloss.Style
	stopped  lipgloss.Style
	marker   lipgloss.Style
	footer   lipgloss.Style
	errorMsg lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		account:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		active:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		key:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		running:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		stopped:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		marker:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		footer:   lipgloss.NewStyle().Faint(true).MarginTop(1),
		errorMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
