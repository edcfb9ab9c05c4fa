package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tracepanel/internal/tracelog"
	"github.com/five82/tracepanel/internal/widgets"
)

// Widget IDs, also used as ChangedMsg and SelectedMsg IDs.
const (
	widgetIDServices = "services"
	widgetIDBrowser  = "browser"
	widgetIDTags     = "tags"
	widgetIDLevel    = "level"
	widgetIDSuffix   = "suffix"
)

// Focus order of the widgets view.
const (
	focusServices = iota
	focusBrowser
	focusTags
	focusLevel
	focusSuffix
	focusCount
)

// widgetsState holds the widgets demo. The slices live behind pointers
// because the editors keep them across Model copies.
type widgetsState struct {
	services *[]*service
	tags     *[]*widgets.StringItem

	editor  widgets.ListEditor[*service, serviceData]
	browser widgets.ListViewer[*service, serviceData]
	tagList widgets.ListEditor[*widgets.StringItem, widgets.StringData]
	level   widgets.SelectEdit
	suffix  widgets.OptionValue[string]

	focus int
}

func (m *Model) initWidgets() {
	services := demoServices()
	tags := widgets.StringItems("prod", "eu-west")
	data := serviceData{DefaultPort: 8080}
	text := widgets.DefaultText()

	w := widgetsState{services: &services, tags: &tags}
	w.editor = widgets.NewListEditor(widgetIDServices, w.services, data, newService, text).DefaultOpen()
	w.browser = widgets.NewListViewer(widgetIDBrowser, "Browse", services, data, text)
	w.tagList = widgets.NewListEditor(widgetIDTags, w.tags,
		widgets.StringData{NewTitle: "new tag"}, widgets.NewStringItem, text)

	w.level = widgets.NewSelectEdit(widgetIDLevel, widgets.Options(tracelog.Levels()))
	w.level.Filter = true
	w.level.SetHint("level")

	w.suffix = widgets.NewOptionValue[string](widgetIDSuffix, "Suffix", nil)
	w.suffix.Editor = widgets.NewTextEditor("suffix")

	m.widgets = w
	m.applyWidgetStyles()
	m.focusWidget(focusServices)
}

func (m *Model) applyWidgetStyles() {
	s := m.theme.WidgetStyles()
	w := &m.widgets
	w.editor.Styles = s
	w.browser.Styles = s
	w.tagList.Styles = s
	w.level.Styles = s
	w.suffix.Styles = s
}

// widgetColumnWidth is the outer width of one column of boxes.
func (m Model) widgetColumnWidth() int {
	if m.width < LayoutCompactWidth {
		return m.width
	}
	return m.width / 2
}

func (m *Model) resizeWidgets() {
	inner := max(m.widgetColumnWidth()-4, 10)
	w := &m.widgets
	w.editor.Width = inner
	w.browser.Width = inner
	w.tagList.Width = inner
}

// focusWidget moves widget focus to i, wrapping around.
func (m *Model) focusWidget(i int) {
	w := &m.widgets
	w.editor.Blur()
	w.browser.Blur()
	w.tagList.Blur()
	w.level.Blur()
	w.suffix.Blur()

	w.focus = ((i % focusCount) + focusCount) % focusCount
	switch w.focus {
	case focusServices:
		w.editor.Focus()
	case focusBrowser:
		w.browser.Focus()
	case focusTags:
		w.tagList.Focus()
	case focusSuffix:
		w.suffix.Focus()
	}
	// The level select only takes focus on enter; focus would open its popup.
}

// capturing reports whether the focused widget is consuming every key.
func (w widgetsState) capturing() bool {
	switch w.focus {
	case focusServices:
		return w.editor.Capturing()
	case focusBrowser:
		return w.browser.Capturing()
	case focusTags:
		return w.tagList.Capturing()
	case focusLevel:
		return w.level.Capturing()
	case focusSuffix:
		return w.suffix.Capturing()
	}
	return false
}

// handleWidgetsKey processes keyboard input for the widgets view.
func (m *Model) handleWidgetsKey(msg tea.KeyMsg) tea.Cmd {
	w := &m.widgets
	if !w.capturing() {
		switch {
		case key.Matches(msg, m.keys.NextWidget):
			m.focusWidget(w.focus + 1)
			return nil
		case key.Matches(msg, m.keys.PrevWidget):
			m.focusWidget(w.focus - 1)
			return nil
		case w.focus == focusLevel && key.Matches(msg, m.keys.Confirm):
			return w.level.Focus()
		}
	}
	return m.updateFocusedWidget(msg)
}

// updateFocusedWidget hands msg to the focused widget.
func (m *Model) updateFocusedWidget(msg tea.Msg) tea.Cmd {
	w := &m.widgets
	var cmd tea.Cmd
	switch w.focus {
	case focusServices:
		w.editor, cmd = w.editor.Update(msg)
	case focusBrowser:
		w.browser, cmd = w.browser.Update(msg)
	case focusTags:
		w.tagList, cmd = w.tagList.Update(msg)
	case focusLevel:
		w.level, cmd = w.level.Update(msg)
	case focusSuffix:
		w.suffix, cmd = w.suffix.Update(msg)
	}
	return cmd
}

// onWidgetChanged reacts to a ChangedMsg. Every change is logged, so the
// widgets view shows up in the logs view too.
func (m *Model) onWidgetChanged(id string) {
	w := &m.widgets
	switch id {
	case widgetIDServices:
		w.browser.SetItems(*w.services)
		m.logger.Info("services changed", "count", len(*w.services))
	case widgetIDTags:
		m.logger.Debug("tags changed", "tags", widgets.StringValues(*w.tags))
	case widgetIDLevel:
		value := w.level.Value()
		if lvl, err := tracelog.ParseLevel(value); err == nil {
			m.logger.Info("level picked", "level", lvl.String())
		} else {
			m.logger.Debug("level typed", "text", value)
		}
	case widgetIDSuffix:
		v, ok := w.suffix.Value()
		m.logger.Info("suffix changed", "set", ok, "value", v)
	}
}

// renderWidgets lays the widgets out in one column, or two on wide terminals.
func (m Model) renderWidgets() string {
	w := m.widgets
	colWidth := m.widgetColumnWidth()

	box := func(title, content string, focus int) string {
		return m.renderBox(title, content, colWidth, lipgloss.Height(content)+2, w.focus == focus)
	}

	services := box("Services", w.editor.View(), focusServices)
	browser := box("Browser", w.browser.View(), focusBrowser)
	tags := box("Tags", w.tagList.View(), focusTags)
	level := box("Level", w.level.View(), focusLevel)
	suffix := box("Suffix", w.suffix.View(), focusSuffix)

	var body string
	if m.width < LayoutCompactWidth {
		body = lipgloss.JoinVertical(lipgloss.Left, services, browser, tags, level, suffix)
	} else {
		left := lipgloss.JoinVertical(lipgloss.Left, services, tags)
		right := lipgloss.JoinVertical(lipgloss.Left, browser, level, suffix)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}
	return lipgloss.NewStyle().MaxHeight(max(m.height-2, 0)).Render(body)
}
