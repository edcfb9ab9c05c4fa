package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tracepanel/internal/tracelog"
)

// logState holds all log-panel state.
type logState struct {
	// records are the visible records, oldest first.
	records []tracelog.Record
	// lineStart maps a record index to its first row in the last render.
	lineStart []int
	follow    bool

	// Worst level of the last non-empty drain and when its flash ends.
	worst      tracelog.Level
	flashUntil time.Time

	searchActive   bool
	searchQuery    string
	searchRegex    *regexp.Regexp
	searchInput    textinput.Model
	searchMatches  []int // record indices
	searchMatchIdx int

	// Skip re-rendering while nothing changed.
	contentVersion uint64
	lastRendered   uint64
}

func (m *Model) initLogState() {
	ti := textinput.New()
	ti.Placeholder = "regex"
	ti.CharLimit = 100

	m.logState = logState{follow: true, searchInput: ti}
}

func (m *Model) initLogViewport() {
	m.logViewport = viewport.New(max(m.width-4, 0), max(m.height-chromeHeight-1, 0))
}

// updateLogViewport resizes the viewport and re-renders changed content.
func (m *Model) updateLogViewport() {
	m.logViewport.Width = max(m.width-4, 0)
	// One row of the box goes to the column heading.
	m.logViewport.Height = max(m.height-chromeHeight-1, 0)
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	if m.logState.lastRendered == 0 || m.logState.contentVersion != m.logState.lastRendered {
		m.logViewport.SetContent(m.renderLogContent())
		m.logState.lastRendered = max(m.logState.contentVersion, 1)
	}

	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

// drainLog moves pending records into the ring. A warning or error among
// them starts a header flash.
func (m *Model) drainLog(now time.Time) {
	if m.log == nil {
		return
	}
	worst, ok := m.log.Update()
	if !ok {
		return
	}
	if worst.AtLeast(tracelog.LevelWarn) {
		m.logState.worst = worst
		m.logState.flashUntil = now.Add(FlashDuration)
	}
	m.refreshRecords()
}

// refreshRecords re-reads the visible records after the ring or the filter changed.
func (m *Model) refreshRecords() {
	if m.log == nil {
		return
	}
	m.logState.records = m.log.Visible()
	m.findSearchMatches()
	m.logState.contentVersion++
	m.updateLogViewport()
}

// applyFilter installs a new filter on the log.
func (m *Model) applyFilter(f tracelog.Filter) {
	if m.log == nil {
		return
	}
	m.log.Filter = f
	m.refreshRecords()
}

// clearLog empties the ring.
func (m *Model) clearLog() {
	if m.log == nil {
		return
	}
	m.log.Clear()
	m.clearLogSearch()
	m.refreshRecords()
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.FocusBg)

	content := m.renderLogHeading(styles, bg) + "\n" + m.logViewport.View()
	box := m.renderBox(m.getLogTitle(), content, m.width, m.height-3, true)
	return box + "\n" + m.renderLogStatus(styles, bg)
}

// renderLogHeading renders the column labels, aligned with renderRecord.
func (m Model) renderLogHeading(styles Styles, bg BgStyle) string {
	d := tracelog.DefaultDisplayInfo()
	if m.log != nil {
		d = m.log.Display
	}
	cols := []string{
		padRight(d.Level, 5),
		padRight(d.Time, len(tracelog.TimeLayout)),
	}
	if m.width >= LayoutSpanWidth {
		cols = append(cols, d.SpanData)
	}
	cols = append(cols, d.Data, d.Message)

	width := m.logViewport.Width
	text := truncate(strings.Join(cols, " "), max(width-7, 1))
	return bg.FillLine(bg.Spaces(7)+bg.Render(text, styles.MutedText), width)
}

func (m Model) getLogTitle() string {
	if m.log != nil && m.log.Filter.Active() {
		return "Log (" + strings.ToLower(m.log.Display.Filter) + ")"
	}
	return "Log"
}

// renderLogStatus renders the line under the log box.
func (m Model) renderLogStatus(styles Styles, bg BgStyle) string {
	if m.logState.searchRegex != nil && len(m.logState.searchMatches) > 0 {
		return bg.Render("/"+m.logState.searchQuery, styles.AccentText) +
			bg.Render(" - ", styles.FaintText) +
			bg.Render(fmt.Sprintf("%d/%d", m.logState.searchMatchIdx+1, len(m.logState.searchMatches)), styles.WarningText) +
			bg.Render(" - Press ", styles.FaintText) +
			bg.Render("n", styles.AccentText) +
			bg.Render(" for next, ", styles.FaintText) +
			bg.Render("N", styles.AccentText) +
			bg.Render(" for previous, ", styles.FaintText) +
			bg.Render("Esc", styles.AccentText) +
			bg.Render(" to clear", styles.FaintText)
	}
	if m.logState.searchRegex != nil {
		return bg.Render("Pattern not found: "+m.logState.searchQuery, styles.DangerText)
	}

	var parts []string
	if m.log != nil {
		follow := "off"
		if m.logState.follow {
			follow = "on"
		}
		parts = append(parts, bg.Render(fmt.Sprintf("%d/%d records, %d shown, follow %s",
			m.log.Len(), m.log.Cap(), len(m.logState.records), follow), styles.FaintText))
		if dropped := m.log.Dropped(); dropped > 0 {
			parts = append(parts, bg.Render(fmt.Sprintf("%d dropped", dropped), styles.WarningText))
		}
	}

	if m.logState.searchActive {
		parts = append(parts, bg.Render("search: ", styles.AccentText)+m.logState.searchInput.View())
	}

	if m.log != nil && m.log.Filter.Active() {
		parts = append(parts, bg.Render(m.filterSummary(), styles.MutedText))
	}

	return strings.Join(parts, bg.Space()+bg.Render("•", styles.FaintText)+bg.Space())
}

// filterSummary renders the active filter criteria with their display labels.
func (m Model) filterSummary() string {
	f := m.log.Filter
	d := m.log.Display
	var parts []string
	if f.Level != nil {
		parts = append(parts, d.Level+"≥"+f.Level.String())
	}
	if f.SpanData != "" {
		parts = append(parts, d.SpanData+"~"+f.SpanData)
	}
	if f.Data != "" {
		parts = append(parts, d.Data+"~"+f.Data)
	}
	if f.Message != "" {
		parts = append(parts, d.Message+"~"+f.Message)
	}
	return strings.ToLower(d.Filter) + ": " + strings.Join(parts, " ")
}

// renderLogContent renders every visible record with line numbers.
func (m *Model) renderLogContent() string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles()
	width := m.logViewport.Width

	if len(m.logState.records) == 0 {
		m.logState.lineStart = m.logState.lineStart[:0]
		return bg.FillLine(bg.Render("No log entries", styles.MutedText), width)
	}

	matchSet := make(map[int]bool, len(m.logState.searchMatches))
	for _, idx := range m.logState.searchMatches {
		matchSet[idx] = true
	}
	activeMatch := -1
	if m.logState.searchMatchIdx < len(m.logState.searchMatches) {
		activeMatch = m.logState.searchMatches[m.logState.searchMatchIdx]
	}
	showSpans := m.width >= LayoutSpanWidth

	m.logState.lineStart = m.logState.lineStart[:0]
	row := 0

	var b strings.Builder
	for i, r := range m.logState.records {
		m.logState.lineStart = append(m.logState.lineStart, row)
		var lines []string
		if i == activeMatch {
			lines = m.renderRecordHighlighted(i, r, styles)
		} else {
			lines = m.renderRecord(i, r, styles, bg, showSpans, matchSet[i])
		}
		for j, line := range lines {
			// Long lines wrap, so count rendered rows rather than records.
			filled := bg.FillLine(line, width)
			row += lipgloss.Height(filled)
			b.WriteString(filled)
			if i < len(m.logState.records)-1 || j < len(lines)-1 {
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// renderRecord renders one record: level, time, span chain, fields and the
// message. Continuation lines of a multi-line message are indented.
func (m *Model) renderRecord(idx int, r tracelog.Record, styles Styles, bg BgStyle, showSpans, match bool) []string {
	gutter := styles.FaintText
	if match {
		gutter = styles.AccentText
	}

	msgLines := strings.Split(r.Message, "\n")

	var head strings.Builder
	head.WriteString(bg.Render(fmt.Sprintf("%4d │ ", idx+1), gutter))
	head.WriteString(bg.Render(padRight(r.Level.String(), 5), styles.LevelStyle(r.Level)))
	head.WriteString(bg.Space())
	head.WriteString(bg.Render(r.Time, styles.FaintText))
	if spans := formatSpans(r.Spans); showSpans && spans != "" {
		head.WriteString(bg.Space())
		head.WriteString(bg.Render(spans, styles.AccentText))
	}
	if fields := formatFields(r.Fields); fields != "" {
		head.WriteString(bg.Space())
		head.WriteString(bg.Render(fields, styles.MutedText))
	}
	if msgLines[0] != "" {
		head.WriteString(bg.Space())
		head.WriteString(bg.Render(msgLines[0], styles.Text))
	}

	lines := make([]string, 0, len(msgLines))
	lines = append(lines, head.String())
	for _, l := range msgLines[1:] {
		lines = append(lines, bg.Render("     │ ", gutter)+bg.Spaces(4)+bg.Render(l, styles.Text))
	}
	return lines
}

// renderRecordHighlighted renders the active search match on the warning color.
func (m *Model) renderRecordHighlighted(idx int, r tracelog.Record, styles Styles) []string {
	hl := NewBgStyle(m.theme.Warning)
	text := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Background))

	plain := strings.Split(formatRecord(r), "\n")
	lines := make([]string, len(plain))
	for i, l := range plain {
		gutter := "     │ "
		if i == 0 {
			gutter = fmt.Sprintf("%4d │ ", idx+1)
		}
		lines[i] = hl.Render(gutter, styles.FaintText) + hl.Render(l, text)
	}
	return lines
}

// handleLogsKey processes keyboard input for the logs view.
func (m *Model) handleLogsKey(msg tea.KeyMsg) tea.Cmd {
	if m.logState.searchActive {
		return m.handleLogSearchInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logState.follow = !m.logState.follow
		m.updateLogViewport()

	case key.Matches(msg, m.keys.Search):
		m.logState.searchActive = true
		m.logState.searchInput.SetValue("")
		return m.logState.searchInput.Focus()

	case key.Matches(msg, m.keys.LogFilters):
		return m.openLogFilters()

	case key.Matches(msg, m.keys.ClearLog):
		m.clearLog()

	case key.Matches(msg, m.keys.NextMatch):
		m.nextSearchMatch()

	case key.Matches(msg, m.keys.PrevMatch):
		m.previousSearchMatch()

	case key.Matches(msg, m.keys.Escape):
		if m.logState.searchRegex != nil {
			m.clearLogSearch()
			m.updateLogViewport()
		}

	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		m.logState.follow = false

	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		m.logState.follow = true

	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
		m.logState.follow = false

	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)
		m.logState.follow = false

	case key.Matches(msg, m.keys.HalfPageDown):
		m.logViewport.HalfPageDown()
		m.logState.follow = false

	case key.Matches(msg, m.keys.HalfPageUp):
		m.logViewport.HalfPageUp()
		m.logState.follow = false

	case key.Matches(msg, m.keys.PageDown):
		m.logViewport.PageDown()
		m.logState.follow = false

	case key.Matches(msg, m.keys.PageUp):
		m.logViewport.PageUp()
		m.logState.follow = false
	}
	return nil
}

// handleLogSearchInput handles keyboard input while the search box is open.
func (m *Model) handleLogSearchInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		query := m.logState.searchInput.Value()
		if query == "" {
			m.logState.searchActive = false
			m.logState.searchInput.Blur()
			return nil
		}
		re, err := regexp.Compile("(?i)" + query)
		if err != nil {
			// Invalid pattern: keep the box open for correction.
			return nil
		}
		m.logState.searchRegex = re
		m.logState.searchQuery = query
		m.logState.searchActive = false
		m.logState.searchInput.Blur()

		m.findSearchMatches()
		if len(m.logState.searchMatches) > 0 {
			m.logState.searchMatchIdx = 0
			m.scrollToSearchMatch()
		}
		m.updateLogViewport()
		return nil

	case key.Matches(msg, m.keys.Escape):
		m.logState.searchActive = false
		m.logState.searchInput.Blur()
		m.logState.searchInput.SetValue("")
		return nil
	}

	var cmd tea.Cmd
	m.logState.searchInput, cmd = m.logState.searchInput.Update(msg)
	return cmd
}

func (m *Model) clearLogSearch() {
	m.logState.searchRegex = nil
	m.logState.searchQuery = ""
	m.logState.searchMatches = nil
	m.logState.searchMatchIdx = 0
	m.logState.contentVersion++
}

// findSearchMatches collects the visible records whose text matches the search.
func (m *Model) findSearchMatches() {
	m.logState.searchMatches = nil
	if m.logState.searchRegex == nil {
		return
	}
	for i, r := range m.logState.records {
		if m.logState.searchRegex.MatchString(formatRecord(r)) {
			m.logState.searchMatches = append(m.logState.searchMatches, i)
		}
	}
	if m.logState.searchMatchIdx >= len(m.logState.searchMatches) {
		m.logState.searchMatchIdx = 0
	}
	m.logState.contentVersion++
}

func (m *Model) nextSearchMatch() {
	n := len(m.logState.searchMatches)
	if n == 0 {
		return
	}
	m.logState.searchMatchIdx = (m.logState.searchMatchIdx + 1) % n
	m.logState.contentVersion++
	m.scrollToSearchMatch()
	m.updateLogViewport()
}

func (m *Model) previousSearchMatch() {
	n := len(m.logState.searchMatches)
	if n == 0 {
		return
	}
	m.logState.searchMatchIdx = (m.logState.searchMatchIdx - 1 + n) % n
	m.logState.contentVersion++
	m.scrollToSearchMatch()
	m.updateLogViewport()
}

// scrollToSearchMatch centers the current match and stops following.
func (m *Model) scrollToSearchMatch() {
	if m.logState.searchMatchIdx >= len(m.logState.searchMatches) {
		return
	}
	rec := m.logState.searchMatches[m.logState.searchMatchIdx]
	if rec >= len(m.logState.lineStart) {
		return
	}
	m.logState.follow = false
	m.logViewport.SetYOffset(max(m.logState.lineStart[rec]-m.logViewport.Height/2, 0))
}

// openLogFilters shows the filters modal pre-filled with the current filter.
func (m *Model) openLogFilters() tea.Cmd {
	if m.log == nil {
		return nil
	}
	modal, cmd := newFiltersModal(m.log.Display, m.log.Filter)
	m.modal = modal
	return cmd
}
