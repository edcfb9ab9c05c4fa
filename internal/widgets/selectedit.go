package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultMaxSuggestions = 5

// SelectEdit is a single-line text input with a suggestion popup. The popup
// is open while the input has focus; picking a suggestion replaces the text.
type SelectEdit struct {
	ID string
	// Filter limits suggestions to options containing the current text.
	// Empty text always shows every option.
	Filter         bool
	MaxSuggestions int
	Keys           KeyMap
	Styles         Styles

	input     textinput.Model
	options   []string
	highlight int
	offset    int
}

// NewSelectEdit returns an editor suggesting options.
func NewSelectEdit(id string, options []string) SelectEdit {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 200
	return SelectEdit{
		ID:             id,
		MaxSuggestions: defaultMaxSuggestions,
		Keys:           DefaultKeyMap(),
		Styles:         DefaultStyles(),
		input:          input,
		options:        options,
	}
}

// Options converts any Stringer values into suggestion text.
func Options[S fmt.Stringer](values []S) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

// SetHint sets the placeholder shown while the text is empty.
func (s *SelectEdit) SetHint(hint string) { s.input.Placeholder = hint }

// SetOptions replaces the suggestion list.
func (s *SelectEdit) SetOptions(options []string) {
	s.options = options
	s.clamp()
}

func (s SelectEdit) Value() string { return s.input.Value() }

func (s *SelectEdit) SetValue(v string) {
	s.input.SetValue(v)
	s.input.CursorEnd()
	s.clamp()
}

// Focus focuses the input and opens the popup.
func (s *SelectEdit) Focus() tea.Cmd {
	s.highlight, s.offset = 0, 0
	return s.input.Focus()
}

// Blur closes the popup.
func (s *SelectEdit) Blur() { s.input.Blur() }

func (s SelectEdit) Focused() bool { return s.input.Focused() }

// Capturing reports whether the input is consuming every key.
func (s SelectEdit) Capturing() bool { return s.input.Focused() }

// Open reports whether the suggestion popup is shown.
func (s SelectEdit) Open() bool { return s.input.Focused() }

// Suggestions returns the options currently offered, in option order.
func (s SelectEdit) Suggestions() []string {
	text := s.input.Value()
	if text == "" || !s.Filter {
		return s.options
	}
	out := make([]string, 0, len(s.options))
	for _, o := range s.options {
		if strings.Contains(o, text) {
			out = append(out, o)
		}
	}
	return out
}

// Highlighted returns the suggestion under the popup cursor.
func (s SelectEdit) Highlighted() (string, bool) {
	sugg := s.Suggestions()
	if s.highlight < len(sugg) {
		return sugg[s.highlight], true
	}
	return "", false
}

// Update handles key input while focused. Typing and picking a suggestion
// both emit a ChangedMsg; esc closes the popup.
func (s SelectEdit) Update(msg tea.Msg) (SelectEdit, tea.Cmd) {
	if !s.input.Focused() {
		return s, nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch {
	case key.Matches(km, s.Keys.Cancel):
		s.Blur()
		return s, nil
	case key.Matches(km, s.Keys.PrevOption):
		s.highlight--
		s.clamp()
		return s, nil
	case key.Matches(km, s.Keys.NextOption):
		s.highlight++
		s.clamp()
		return s, nil
	case key.Matches(km, s.Keys.Confirm):
		pick, ok := s.Highlighted()
		if !ok {
			return s, nil
		}
		before := s.input.Value()
		s.SetValue(pick)
		if pick != before {
			return s, changedCmd(s.ID)
		}
		return s, nil
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(km)
	if s.input.Value() != before {
		s.highlight, s.offset = 0, 0
		return s, tea.Batch(cmd, changedCmd(s.ID))
	}
	return s, cmd
}

func (s SelectEdit) rows() int {
	if s.MaxSuggestions <= 0 {
		return defaultMaxSuggestions
	}
	return s.MaxSuggestions
}

func (s *SelectEdit) clamp() {
	n := len(s.Suggestions())
	s.highlight = max(0, min(s.highlight, n-1))
	h := s.rows()
	if s.highlight < s.offset {
		s.offset = s.highlight
	}
	if s.highlight >= s.offset+h {
		s.offset = s.highlight - h + 1
	}
	s.offset = max(0, min(s.offset, n-h))
}

// View renders the input and, while focused, the popup below it.
func (s SelectEdit) View() string {
	var b strings.Builder
	b.WriteString(s.input.View())
	if !s.Open() {
		return b.String()
	}
	sugg := s.Suggestions()
	end := min(len(sugg), s.offset+s.rows())
	for i := s.offset; i < end; i++ {
		b.WriteString("\n  ")
		if i == s.highlight {
			b.WriteString(s.Styles.Selected.Render(sugg[i]))
		} else {
			b.WriteString(s.Styles.Text.Render(sugg[i]))
		}
	}
	if end < len(sugg) {
		b.WriteString("\n  ")
		b.WriteString(s.Styles.Muted.Render("…"))
	}
	return b.String()
}
