package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the lipgloss styles for markup tags and the surrounding UI.
type Theme struct {
	// Markup tags, keyed by lower-case tag name
	Tags map[string]lipgloss.Style

	// Layout
	Frame     lipgloss.Style
	StatusBar lipgloss.Style

	// Status indicators
	StatusRunning lipgloss.Style
	StatusPaused  lipgloss.Style
	StatusIdle    lipgloss.Style

	// Misc
	Muted lipgloss.Style
	Error lipgloss.Style
}

// DefaultTheme returns the default style configuration.
func DefaultTheme() Theme {
	bold := lipgloss.NewStyle().Bold(true)
	italic := lipgloss.NewStyle().Italic(true)
	strike := lipgloss.NewStyle().Strikethrough(true)
	code := lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	return Theme{
		Tags: map[string]lipgloss.Style{
			"strong": bold,
			"b":      bold,
			"h1":     bold,
			"h2":     bold,
			"h3":     bold,
			"em":     italic,
			"i":      italic,
			"u":      lipgloss.NewStyle().Underline(true),
			"s":      strike,
			"del":    strike,
			"strike": strike,
			"code":   code,
			"kbd":    code,
			"a": lipgloss.NewStyle().
				Underline(true).
				Foreground(lipgloss.Color("39")),
			"mark": lipgloss.NewStyle().
				Background(lipgloss.Color("220")).
				Foreground(lipgloss.Color("0")),
		},

		// Layout - minimal borders, let content breathe
		Frame: lipgloss.NewStyle().
			Padding(1, 2),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		StatusRunning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("71")), // Muted green
		StatusPaused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("179")), // Muted yellow
		StatusIdle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")), // Gray

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
	}
}
