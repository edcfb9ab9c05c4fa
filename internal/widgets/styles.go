package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles controls how the widgets render. The host usually derives it from
// its theme.
type Styles struct {
	Title    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style

	// Rule is the character repeated for separators.
	Rule string
}

// DefaultStyles returns terminal-default colors.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true),
		Text:     lipgloss.NewStyle(),
		Muted:    lipgloss.NewStyle().Faint(true),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Selected: lipgloss.NewStyle().Reverse(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Rule:     "─",
	}
}

func (s Styles) rule(width int) string {
	if width <= 0 {
		width = 40
	}
	r := s.Rule
	if r == "" {
		r = "─"
	}
	return s.Muted.Render(strings.Repeat(r, width))
}

// arrow renders the expand/collapse marker.
func arrow(open bool) string {
	if open {
		return "▾"
	}
	return "▸"
}

// hint renders a "key label" pair for button rows.
func (s Styles) hint(keyName, label string) string {
	return s.Accent.Render(keyName) + " " + s.Muted.Render(label)
}
