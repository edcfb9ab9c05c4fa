package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// EditItem is an element of a ListEditor. T is the element type itself,
// usually a pointer so that Field setters edit the stored item. D is caller
// data handed to every call.
type EditItem[T any, D any] interface {
	// Title is shown on the item's row.
	Title(data D) string
	// NewTitle is shown on the draft row when this item is the draft.
	NewTitle(data D) string
	// Matches reports whether the item passes the filter text.
	Matches(query string, data D) bool
	// Fields lists the editable properties shown when the row is expanded.
	Fields(data D) []Field
	// Clone returns an independent copy.
	Clone() T
}

// Field is one editable property of an item. A nil Set makes it read-only.
type Field struct {
	Label string
	Value string
	Set   func(string) error
}

// draftRow identifies the draft ("new item") row.
const draftRow = -1

// ListEditor edits a caller-owned slice. It keeps a draft item that Add
// appends, a filter box, and per-row expand state; expanded rows show their
// fields and can be edited in place.
type ListEditor[T EditItem[T, D], D any] struct {
	ID     string
	Width  int
	Keys   KeyMap
	Styles Styles

	items   *[]T
	data    D
	factory func(D) T
	text    Text

	draft     T
	draftOpen bool
	open      map[int]bool
	cursor    int // 0 is the draft row, n > 0 the n-th visible item
	focused   bool

	search    textinput.Model
	searching bool

	editing bool
	editRow int
	editIdx int
	input   textinput.Model
	err     error
}

// NewListEditor returns an editor over items. factory builds the draft and
// must not be nil.
func NewListEditor[T EditItem[T, D], D any](id string, items *[]T, data D, factory func(D) T, text Text) ListEditor[T, D] {
	text = text.orDefault()

	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = text.SearchHint
	search.CharLimit = 100

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 500

	return ListEditor[T, D]{
		ID:      id,
		Width:   60,
		Keys:    DefaultKeyMap(),
		Styles:  DefaultStyles(),
		items:   items,
		data:    data,
		factory: factory,
		text:    text,
		draft:   factory(data),
		open:    make(map[int]bool),
		search:  search,
		input:   input,
	}
}

// DefaultOpen expands the draft row initially.
func (l ListEditor[T, D]) DefaultOpen() ListEditor[T, D] {
	l.draftOpen = true
	return l
}

// Focus gives the editor keyboard focus.
func (l *ListEditor[T, D]) Focus() { l.focused = true }

// Blur removes keyboard focus and abandons any field edit in progress.
func (l *ListEditor[T, D]) Blur() {
	l.focused = false
	l.stopEdit()
	l.searching = false
	l.search.Blur()
}

// Focused reports whether the editor has focus.
func (l ListEditor[T, D]) Focused() bool { return l.focused }

// Capturing reports whether a text field is consuming every key.
func (l ListEditor[T, D]) Capturing() bool { return l.editing || l.searching }

// Draft returns the pending new item.
func (l ListEditor[T, D]) Draft() T { return l.draft }

// Add appends the draft to the list and starts a fresh one.
func (l *ListEditor[T, D]) Add() {
	*l.items = append(*l.items, l.draft)
	l.draft = l.factory(l.data)
	if l.editing && l.editRow == draftRow {
		l.stopEdit()
	}
}

// ResetDraft discards the draft and starts a fresh one.
func (l *ListEditor[T, D]) ResetDraft() {
	l.draft = l.factory(l.data)
	if l.editing && l.editRow == draftRow {
		l.stopEdit()
	}
}

// Search returns the filter text.
func (l ListEditor[T, D]) Search() string { return l.search.Value() }

// SetSearch replaces the filter text.
func (l *ListEditor[T, D]) SetSearch(q string) {
	l.search.SetValue(q)
	l.clampCursor()
}

// Visible returns the indices of the items passing the filter, in list order.
func (l ListEditor[T, D]) Visible() []int {
	q := l.search.Value()
	out := make([]int, 0, len(*l.items))
	for i, it := range *l.items {
		if q == "" || it.Matches(q, l.data) {
			out = append(out, i)
		}
	}
	return out
}

// IsOpen reports whether item i is expanded.
func (l ListEditor[T, D]) IsOpen(i int) bool { return l.open[i] }

// DraftOpen reports whether the draft row is expanded.
func (l ListEditor[T, D]) DraftOpen() bool { return l.draftOpen }

// Toggle expands or collapses item i, or the draft row for a negative i.
func (l *ListEditor[T, D]) Toggle(i int) {
	if i < 0 {
		l.draftOpen = !l.draftOpen
		return
	}
	l.open[i] = !l.open[i]
}

// Copy appends a clone of item i to the end of the list.
func (l *ListEditor[T, D]) Copy(i int) {
	if i < 0 || i >= len(*l.items) {
		return
	}
	*l.items = append(*l.items, (*l.items)[i].Clone())
}

// Delete removes item i, keeping the expand state of the rows after it.
func (l *ListEditor[T, D]) Delete(i int) {
	items := *l.items
	if i < 0 || i >= len(items) {
		return
	}
	var zero T
	copy(items[i:], items[i+1:])
	items[len(items)-1] = zero
	*l.items = items[:len(items)-1]

	open := make(map[int]bool, len(l.open))
	for k, v := range l.open {
		switch {
		case k < i:
			open[k] = v
		case k > i:
			open[k-1] = v
		}
	}
	l.open = open

	if l.editing && l.editRow >= i {
		l.stopEdit()
	}
	l.clampCursor()
}

// Cursor returns the row under the cursor: draftRow or an item index.
func (l ListEditor[T, D]) Cursor() int {
	if l.cursor == 0 {
		return draftRow
	}
	vis := l.Visible()
	if l.cursor-1 < len(vis) {
		return vis[l.cursor-1]
	}
	return draftRow
}

// Err returns the last error reported by a field setter.
func (l ListEditor[T, D]) Err() error { return l.err }

// Update handles key input while focused. A ChangedMsg is emitted whenever
// the list or one of its items changes.
func (l ListEditor[T, D]) Update(msg tea.Msg) (ListEditor[T, D], tea.Cmd) {
	if !l.focused {
		return l, nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		switch {
		case l.editing:
			l.input, cmd = l.input.Update(msg)
		case l.searching:
			l.search, cmd = l.search.Update(msg)
		}
		return l, cmd
	}

	if l.editing {
		return l.updateEdit(km)
	}
	if l.searching {
		return l.updateSearch(km)
	}

	switch {
	case key.Matches(km, l.Keys.Up):
		l.moveCursor(-1)
	case key.Matches(km, l.Keys.Down):
		l.moveCursor(1)
	case key.Matches(km, l.Keys.Toggle):
		l.Toggle(l.Cursor())
	case key.Matches(km, l.Keys.Edit):
		return l, l.beginEdit(l.Cursor())
	case key.Matches(km, l.Keys.Search):
		l.searching = true
		return l, l.search.Focus()
	case key.Matches(km, l.Keys.Add):
		l.Add()
		return l, changedCmd(l.ID)
	case key.Matches(km, l.Keys.Reset):
		l.ResetDraft()
	case key.Matches(km, l.Keys.Copy):
		if row := l.Cursor(); row != draftRow {
			l.Copy(row)
			return l, changedCmd(l.ID)
		}
	case key.Matches(km, l.Keys.Delete):
		if row := l.Cursor(); row != draftRow {
			l.Delete(row)
			return l, changedCmd(l.ID)
		}
	}
	return l, nil
}

func (l ListEditor[T, D]) updateSearch(km tea.KeyMsg) (ListEditor[T, D], tea.Cmd) {
	switch {
	case key.Matches(km, l.Keys.Confirm):
		l.searching = false
		l.search.Blur()
		return l, nil
	case key.Matches(km, l.Keys.Cancel):
		l.searching = false
		l.search.Blur()
		l.search.SetValue("")
		l.clampCursor()
		return l, nil
	}
	var cmd tea.Cmd
	l.search, cmd = l.search.Update(km)
	l.clampCursor()
	return l, cmd
}

func (l ListEditor[T, D]) updateEdit(km tea.KeyMsg) (ListEditor[T, D], tea.Cmd) {
	switch {
	case key.Matches(km, l.Keys.Cancel):
		l.stopEdit()
		return l, nil
	case key.Matches(km, l.Keys.Confirm):
		if !l.commit() {
			return l, nil
		}
		l.stopEdit()
		return l, changedCmd(l.ID)
	case key.Matches(km, l.Keys.NextField), key.Matches(km, l.Keys.PrevField):
		if !l.commit() {
			return l, nil
		}
		step := 1
		if key.Matches(km, l.Keys.PrevField) {
			step = -1
		}
		l.moveField(step)
		return l, changedCmd(l.ID)
	}
	var cmd tea.Cmd
	l.input, cmd = l.input.Update(km)
	return l, cmd
}

func (l *ListEditor[T, D]) fields(row int) []Field {
	if row == draftRow {
		return l.draft.Fields(l.data)
	}
	if row < 0 || row >= len(*l.items) {
		return nil
	}
	return (*l.items)[row].Fields(l.data)
}

func (l *ListEditor[T, D]) beginEdit(row int) tea.Cmd {
	fields := l.fields(row)
	first := -1
	for i, f := range fields {
		if f.Set != nil {
			first = i
			break
		}
	}
	if first < 0 {
		return nil
	}
	if row == draftRow {
		l.draftOpen = true
	} else {
		l.open[row] = true
	}
	l.editing = true
	l.editRow = row
	l.err = nil
	l.loadField(first, fields)
	return l.input.Focus()
}

func (l *ListEditor[T, D]) loadField(idx int, fields []Field) {
	l.editIdx = idx
	l.input.SetValue(fields[idx].Value)
	l.input.CursorEnd()
}

// moveField advances to the next settable field, wrapping around.
func (l *ListEditor[T, D]) moveField(step int) {
	fields := l.fields(l.editRow)
	n := len(fields)
	for i := 1; i <= n; i++ {
		idx := ((l.editIdx+step*i)%n + n) % n
		if fields[idx].Set != nil {
			l.loadField(idx, fields)
			return
		}
	}
}

// commit writes the input into the field being edited. It reports false and
// keeps the editor open when the setter rejects the value.
func (l *ListEditor[T, D]) commit() bool {
	fields := l.fields(l.editRow)
	if l.editIdx >= len(fields) || fields[l.editIdx].Set == nil {
		return true
	}
	if err := fields[l.editIdx].Set(l.input.Value()); err != nil {
		l.err = fmt.Errorf("%s: %w", fields[l.editIdx].Label, err)
		return false
	}
	l.err = nil
	return true
}

func (l *ListEditor[T, D]) stopEdit() {
	l.editing = false
	l.input.Blur()
}

func (l *ListEditor[T, D]) moveCursor(step int) {
	l.cursor += step
	l.clampCursor()
}

func (l *ListEditor[T, D]) clampCursor() {
	rows := len(l.Visible()) + 1
	l.cursor = max(0, min(l.cursor, rows-1))
}

// View renders the draft row, the filter box and the list.
func (l ListEditor[T, D]) View() string {
	s := l.Styles
	var b strings.Builder

	cursorRow := l.Cursor()
	b.WriteString(l.renderRow(l.draft.NewTitle(l.data), l.draftOpen, cursorRow == draftRow && l.focused,
		s.hint("a", l.text.Add)+"  "+s.hint("r", l.text.Reset)))
	if l.draftOpen {
		b.WriteString(l.renderFields(draftRow))
	}

	b.WriteString(s.rule(l.Width))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(l.text.Filter + ": "))
	b.WriteString(l.search.View())
	b.WriteString("\n")

	for _, i := range l.Visible() {
		it := (*l.items)[i]
		b.WriteString(l.renderRow(it.Title(l.data), l.open[i], cursorRow == i && l.focused,
			s.hint("c", l.text.Copy)+"  "+s.hint("d", l.text.Delete)))
		if l.open[i] {
			b.WriteString(l.renderFields(i))
		}
	}

	if l.err != nil {
		b.WriteString(s.Error.Render(l.err.Error()))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (l ListEditor[T, D]) renderRow(title string, open, active bool, buttons string) string {
	s := l.Styles
	head := arrow(open) + " " + title
	if active {
		head = s.Selected.Render(head)
	} else {
		head = s.Text.Render(head)
	}
	if !active {
		return head + "\n"
	}
	return head + "  " + buttons + "\n"
}

func (l ListEditor[T, D]) renderFields(row int) string {
	s := l.Styles
	fields := l.fields(row)
	if len(fields) == 0 {
		return ""
	}
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Label))
	}

	var b strings.Builder
	for i, f := range fields {
		b.WriteString("    ")
		b.WriteString(s.Muted.Render(fmt.Sprintf("%-*s", width, f.Label)))
		b.WriteString("  ")
		if l.editing && l.editRow == row && l.editIdx == i {
			b.WriteString(l.input.View())
		} else {
			b.WriteString(s.Text.Render(f.Value))
		}
		b.WriteString("\n")
	}
	return b.String()
}
