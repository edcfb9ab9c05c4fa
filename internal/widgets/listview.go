package widgets

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewItem is an element of a ListViewer.
type ViewItem[D any] interface {
	// Label is shown in the list.
	Label(data D) string
	// ID is unique within the list and survives reordering.
	ID(data D) string
	// Matches reports whether the item passes the search text.
	Matches(query string, data D) bool
	// Detail is shown below the list while the item is selected.
	Detail(data D) string
}

const defaultMaxHeight = 10

// ListViewer shows a read-only list with a search box and a single
// selection. The selection is remembered by item ID, so a selected item
// stays selected (and its detail stays visible) while the search hides it.
type ListViewer[T ViewItem[D], D any] struct {
	ID    string
	Title string
	// MaxHeight caps the number of list rows shown, excluding the title and
	// the detail pane.
	MaxHeight int
	Width     int
	Keys      KeyMap
	Styles    Styles

	items []T
	data  D

	search    textinput.Model
	searching bool
	selected  string
	cursor    int
	offset    int
	focused   bool
}

// NewListViewer returns a viewer over items.
func NewListViewer[T ViewItem[D], D any](id, title string, items []T, data D, text Text) ListViewer[T, D] {
	text = text.orDefault()
	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = text.SearchHint
	search.CharLimit = 100

	return ListViewer[T, D]{
		ID:        id,
		Title:     title,
		MaxHeight: defaultMaxHeight,
		Width:     60,
		Keys:      DefaultKeyMap(),
		Styles:    DefaultStyles(),
		items:     items,
		data:      data,
		search:    search,
	}
}

// SetItems replaces the list. The selection is kept if its ID is still present.
func (v *ListViewer[T, D]) SetItems(items []T) {
	v.items = items
	v.clampCursor()
}

func (v *ListViewer[T, D]) Focus() { v.focused = true }

func (v ListViewer[T, D]) Focused() bool { return v.focused }

// Capturing reports whether the search box is consuming every key.
func (v ListViewer[T, D]) Capturing() bool { return v.searching }

func (v ListViewer[T, D]) Search() string { return v.search.Value() }

// SelectedID returns the ID of the selected item, or "" for none.
func (v ListViewer[T, D]) SelectedID() string { return v.selected }

func (v *ListViewer[T, D]) Blur() {
	v.focused = false
	v.searching = false
	v.search.Blur()
}

// SetSearch replaces the search text.
func (v *ListViewer[T, D]) SetSearch(q string) {
	v.search.SetValue(q)
	v.clampCursor()
}

// Visible returns the items passing the search, in list order.
func (v ListViewer[T, D]) Visible() []T {
	q := v.search.Value()
	if q == "" {
		return v.items
	}
	out := make([]T, 0, len(v.items))
	for _, it := range v.items {
		if it.Matches(q, v.data) {
			out = append(out, it)
		}
	}
	return out
}

// Selected returns the selected item, whether or not the search hides it.
func (v ListViewer[T, D]) Selected() (T, bool) {
	var zero T
	if v.selected == "" {
		return zero, false
	}
	for _, it := range v.items {
		if it.ID(v.data) == v.selected {
			return it, true
		}
	}
	return zero, false
}

// Select marks the item with the given ID. It reports whether the selection changed.
func (v *ListViewer[T, D]) Select(id string) bool {
	if id == v.selected {
		return false
	}
	v.selected = id
	return true
}

// Update handles key input while focused. A SelectedMsg is emitted when the
// selection changes.
func (v ListViewer[T, D]) Update(msg tea.Msg) (ListViewer[T, D], tea.Cmd) {
	if !v.focused {
		return v, nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if !v.searching {
			return v, nil
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}

	if v.searching {
		switch {
		case key.Matches(km, v.Keys.Confirm):
			v.searching = false
			v.search.Blur()
			return v, nil
		case key.Matches(km, v.Keys.Cancel):
			v.searching = false
			v.search.Blur()
			v.SetSearch("")
			return v, nil
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(km)
		v.clampCursor()
		return v, cmd
	}

	switch {
	case key.Matches(km, v.Keys.Up):
		v.cursor--
		v.clampCursor()
	case key.Matches(km, v.Keys.Down):
		v.cursor++
		v.clampCursor()
	case key.Matches(km, v.Keys.Search):
		v.searching = true
		return v, v.search.Focus()
	case key.Matches(km, v.Keys.Edit), key.Matches(km, v.Keys.Toggle):
		vis := v.Visible()
		if v.cursor >= len(vis) {
			return v, nil
		}
		id := vis[v.cursor].ID(v.data)
		if v.Select(id) {
			return v, selectedCmd(v.ID, id)
		}
	}
	return v, nil
}

func (v ListViewer[T, D]) height() int {
	if v.MaxHeight <= 0 {
		return defaultMaxHeight
	}
	return v.MaxHeight
}

func (v *ListViewer[T, D]) clampCursor() {
	n := len(v.Visible())
	v.cursor = max(0, min(v.cursor, n-1))
	h := v.height()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+h {
		v.offset = v.cursor - h + 1
	}
	v.offset = max(0, min(v.offset, n-h))
}

// View renders the title, search box, list window and detail pane.
func (v ListViewer[T, D]) View() string {
	s := v.Styles
	var b strings.Builder

	b.WriteString(s.Title.Render(v.Title))
	b.WriteString("  ")
	b.WriteString(v.search.View())
	b.WriteString("\n")
	b.WriteString(s.rule(v.Width))
	b.WriteString("\n")

	vis := v.Visible()
	end := min(len(vis), v.offset+v.height())
	for i := v.offset; i < end; i++ {
		it := vis[i]
		mark := "  "
		if it.ID(v.data) == v.selected {
			mark = s.Accent.Render("● ")
		}
		label := it.Label(v.data)
		if v.focused && i == v.cursor {
			label = s.Selected.Render(label)
		} else {
			label = s.Text.Render(label)
		}
		b.WriteString(mark + label + "\n")
	}
	if hidden := len(vis) - end; hidden > 0 {
		b.WriteString(s.Muted.Render("  …"))
		b.WriteString("\n")
	}

	if it, ok := v.Selected(); ok {
		b.WriteString(s.rule(v.Width))
		b.WriteString("\n")
		b.WriteString(it.Detail(v.data))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
