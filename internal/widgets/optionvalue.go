package widgets

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ValueEditor edits the inner value of an OptionValue.
type ValueEditor[T any] interface {
	// Begin starts editing v.
	Begin(v T) tea.Cmd
	// End stops editing.
	End()
	// Update applies msg to v and reports whether v changed.
	Update(msg tea.Msg, v *T) (bool, tea.Cmd)
	View(v T) string
}

// OptionValue is a checkbox over an optional value. Unchecking clears the
// value; checking initialises it from New (the zero value when New is nil).
// While the value is set, enter hands keys to Editor until enter or esc.
type OptionValue[T any] struct {
	ID     string
	Label  string
	New    func() T
	Editor ValueEditor[T]
	Keys   KeyMap
	Styles Styles

	value   *T
	editing bool
	focused bool
}

// NewOptionValue returns a toggle starting from initial; nil means unset.
func NewOptionValue[T any](id, label string, initial *T) OptionValue[T] {
	return OptionValue[T]{
		ID:     id,
		Label:  label,
		Keys:   DefaultKeyMap(),
		Styles: DefaultStyles(),
		value:  initial,
	}
}

// Value returns the current value and whether it is set.
func (o OptionValue[T]) Value() (T, bool) {
	if o.value == nil {
		var zero T
		return zero, false
	}
	return *o.value, true
}

// Checked reports whether the value is set.
func (o OptionValue[T]) Checked() bool { return o.value != nil }

// Toggle flips the checkbox.
func (o *OptionValue[T]) Toggle() {
	if o.value != nil {
		o.value = nil
		o.stopEdit()
		return
	}
	var v T
	if o.New != nil {
		v = o.New()
	}
	o.value = &v
}

func (o *OptionValue[T]) Focus() { o.focused = true }

func (o *OptionValue[T]) Blur() {
	o.focused = false
	o.stopEdit()
}

func (o OptionValue[T]) Focused() bool { return o.focused }

// Capturing reports whether the inner editor is consuming every key.
func (o OptionValue[T]) Capturing() bool { return o.editing }

func (o *OptionValue[T]) stopEdit() {
	if o.editing && o.Editor != nil {
		o.Editor.End()
	}
	o.editing = false
}

// Update handles key input while focused and emits a ChangedMsg whenever the
// value is set, cleared or edited.
func (o OptionValue[T]) Update(msg tea.Msg) (OptionValue[T], tea.Cmd) {
	if !o.focused {
		return o, nil
	}
	km, isKey := msg.(tea.KeyMsg)

	if o.editing {
		if isKey && (key.Matches(km, o.Keys.Confirm) || key.Matches(km, o.Keys.Cancel)) {
			o.stopEdit()
			return o, nil
		}
		changed, cmd := o.Editor.Update(msg, o.value)
		if changed {
			return o, tea.Batch(cmd, changedCmd(o.ID))
		}
		return o, cmd
	}

	if !isKey {
		return o, nil
	}
	switch {
	case key.Matches(km, o.Keys.Toggle):
		o.Toggle()
		return o, changedCmd(o.ID)
	case key.Matches(km, o.Keys.Edit):
		if o.value == nil || o.Editor == nil {
			return o, nil
		}
		o.editing = true
		return o, o.Editor.Begin(*o.value)
	}
	return o, nil
}

// View renders the checkbox, the label and the value when set.
func (o OptionValue[T]) View() string {
	s := o.Styles
	box := "[ ]"
	if o.value != nil {
		box = "[x]"
	}
	label := box + " " + o.Label
	if o.focused && !o.editing {
		label = s.Selected.Render(label)
	} else {
		label = s.Text.Render(label)
	}
	if o.value == nil {
		return label
	}
	var shown string
	if o.Editor != nil {
		shown = o.Editor.View(*o.value)
	} else {
		shown = s.Muted.Render(fmt.Sprint(*o.value))
	}
	return label + "  " + shown
}

// TextEditor is a ValueEditor for strings backed by a text input.
type TextEditor struct {
	input textinput.Model
}

// NewTextEditor returns a TextEditor showing placeholder while empty.
func NewTextEditor(placeholder string) *TextEditor {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 200
	return &TextEditor{input: in}
}

func (e *TextEditor) Begin(v string) tea.Cmd {
	e.input.SetValue(v)
	e.input.CursorEnd()
	return e.input.Focus()
}

func (e *TextEditor) End() { e.input.Blur() }

func (e *TextEditor) Update(msg tea.Msg, v *string) (bool, tea.Cmd) {
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	if e.input.Value() == *v {
		return false, cmd
	}
	*v = e.input.Value()
	return true, cmd
}

func (e *TextEditor) View(v string) string {
	if e.input.Focused() {
		return e.input.View()
	}
	return v
}
