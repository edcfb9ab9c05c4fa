package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: collector counters and, for a few
// seconds after a warning or error arrives, a flash of its level.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("tracepanel", styles.Logo)}

	if m.flashing() {
		lvl := m.logState.worst
		badge := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.Background)).
			Background(lipgloss.Color(m.theme.LevelColors[lvl])).
			Bold(true).
			Padding(0, 1)
		parts = append(parts, badge.Render("● "+lvl.String()))
	}

	if m.log != nil {
		parts = append(parts,
			bg.Render("Records:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d/%d", m.log.Len(), m.log.Cap()), styles.Text))
	}

	if m.collector != nil {
		parts = append(parts,
			bg.Render("Spans:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", m.collector.OpenSpans()), styles.Text))
		if !compact {
			parts = append(parts,
				bg.Render("Delivered:", styles.MutedText)+bg.Space()+
					bg.Render(fmt.Sprintf("%d", m.collector.Delivered()), styles.Text))
		}
		dropStyle := styles.Text
		if m.collector.Dropped() > 0 {
			dropStyle = styles.WarningText
		}
		parts = append(parts,
			bg.Render("Dropped:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", m.collector.Dropped()), dropStyle))
	}

	if !m.lastTick.IsZero() && !compact {
		parts = append(parts, bg.Render(m.lastTick.Format("15:04:05"), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// flashing reports whether the header should highlight the last warning.
func (m Model) flashing() bool {
	return !m.logState.flashUntil.IsZero() && m.lastTick.Before(m.logState.flashUntil)
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewWidgets:
		commands = []cmd{
			{"[/]", "Focus"},
			{"j/k", "Navigate"},
			{"Space", "Toggle"},
			{"enter", "Edit"},
			{"/", "Filter"},
			{"Tab", "Logs"},
			{"?", "More"},
		}
	default:
		followLabel := "Pause"
		if !m.logState.follow {
			followLabel = "Follow"
		}
		commands = []cmd{
			{"Space", followLabel},
			{"/", "Search"},
			{"n/N", "Next/Prev"},
			{"F", "Filters"},
			{"C", "Clear"},
			{"Tab", "Widgets"},
			{"?", "More"},
		}
	}

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if m.currentView == ViewLogs && m.logState.searchQuery != "" {
		segments = append(segments, bg.Render("/"+truncate(m.logState.searchQuery, 18), styles.AccentText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderBox draws content in a rounded border with title set into the top edge.
func (m Model) renderBox(title, content string, width, height int, focused bool) string {
	borderColor := m.theme.BorderMuted
	bgColor := m.theme.Surface
	if focused {
		borderColor = m.theme.BorderFocus
		bgColor = m.theme.FocusBg
	}
	border := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text)).Bold(true)

	label := " " + truncate(title, max(width-6, 1)) + " "
	fill := max(width-3-lipgloss.Width(label), 0)
	top := edge.Render(border.TopLeft+border.Top) +
		titleStyle.Render(label) +
		edge.Render(strings.Repeat(border.Top, fill)+border.TopRight)

	body := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(lipgloss.Color(borderColor)).
		Background(lipgloss.Color(bgColor)).
		Padding(0, 1).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Render(content)

	return top + "\n" + body
}
