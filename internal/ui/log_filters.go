package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tracepanel/internal/tracelog"
)

// Filter field order in the modal.
const (
	filterLevel = iota
	filterSpanData
	filterData
	filterMessage
	filterFieldCount
)

// filtersAppliedMsg carries the filter confirmed in the modal.
type filtersAppliedMsg struct {
	filter tracelog.Filter
}

// filtersModal edits the log panel filter: a level threshold and three
// substring fields, labelled from the log's DisplayInfo.
type filtersModal struct {
	title  string
	labels [filterFieldCount]string
	inputs [filterFieldCount]textinput.Model
	focus  int
	err    error
}

func newFiltersModal(display tracelog.DisplayInfo, current tracelog.Filter) (filtersModal, tea.Cmd) {
	levels := make([]string, 0, 5)
	for _, l := range tracelog.Levels() {
		levels = append(levels, strings.ToLower(l.String()))
	}

	f := filtersModal{
		title:  display.Filter,
		labels: [filterFieldCount]string{display.Level, display.SpanData, display.Data, display.Message},
	}
	placeholders := [filterFieldCount]string{
		strings.Join(levels, ", "),
		"span name, key or value",
		"field key or value",
		"message text",
	}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 100
		in.Width = 32
		f.inputs[i] = in
	}

	if current.Level != nil {
		f.inputs[filterLevel].SetValue(strings.ToLower(current.Level.String()))
	}
	f.inputs[filterSpanData].SetValue(current.SpanData)
	f.inputs[filterData].SetValue(current.Data)
	f.inputs[filterMessage].SetValue(current.Message)

	cmd := f.inputs[0].Focus()
	return f, cmd
}

// filter parses the modal fields. An empty level disables the threshold.
func (f filtersModal) filter() (tracelog.Filter, error) {
	out := tracelog.Filter{
		SpanData: f.inputs[filterSpanData].Value(),
		Data:     f.inputs[filterData].Value(),
		Message:  f.inputs[filterMessage].Value(),
	}
	if raw := strings.TrimSpace(f.inputs[filterLevel].Value()); raw != "" {
		lvl, err := tracelog.ParseLevel(raw)
		if err != nil {
			return tracelog.Filter{}, fmt.Errorf("%s: %w", f.labels[filterLevel], err)
		}
		out.Level = &lvl
	}
	return out, nil
}

func (f filtersModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return f, cmd, false
	}

	switch {
	case key.Matches(km, keys.Escape):
		return f, nil, true

	case key.Matches(km, keys.Confirm):
		filter, err := f.filter()
		if err != nil {
			f.err = err
			return f, nil, false
		}
		return f, func() tea.Msg { return filtersAppliedMsg{filter: filter} }, true

	case key.Matches(km, keys.Tab), km.Type == tea.KeyDown:
		cmd := f.moveFocus(1)
		return f, cmd, false

	case key.Matches(km, keys.ShiftTab), km.Type == tea.KeyUp:
		cmd := f.moveFocus(-1)
		return f, cmd, false

	case key.Matches(km, keys.ClearFields):
		for i := range f.inputs {
			f.inputs[i].SetValue("")
		}
		f.err = nil
		return f, nil, false
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(km)
	return f, cmd, false
}

func (f *filtersModal) moveFocus(step int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + step + filterFieldCount) % filterFieldCount
	return f.inputs[f.focus].Focus()
}

func (f filtersModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	labelWidth := 0
	for _, l := range f.labels {
		labelWidth = max(labelWidth, len([]rune(l)))
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(f.title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Substring matches are case-sensitive."))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Leave blank to disable a filter."))
	b.WriteString("\n\n")

	for i, in := range f.inputs {
		label := padRight(f.labels[i]+":", labelWidth+2)
		if i == f.focus {
			b.WriteString(styles.AccentText.Render(label))
		} else {
			b.WriteString(styles.MutedText.Render(label))
		}
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	if f.err != nil {
		b.WriteString(styles.DangerText.Render(f.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(styles.FaintText.Render("Enter: Apply  •  Esc: Cancel  •  Ctrl+C: Clear"))

	return placeModal(theme, width, height, b.String(), 56)
}
