package widgets

import (
	"strings"
	"testing"
)

func TestOptionValue_ToggleUsesNew(t *testing.T) {
	o := NewOptionValue[string]("name", "Name", nil)
	o.New = func() string { return "anonymous" }
	o.Focus()

	if o.Checked() {
		t.Fatalf("nil initial value should start unchecked")
	}
	o, cmd := o.Update(keyPress(" "))
	if got := mustMsg(t, cmd); got != (ChangedMsg{ID: "name"}) {
		t.Fatalf("msg = %#v, want ChangedMsg", got)
	}
	if v, ok := o.Value(); !ok || v != "anonymous" {
		t.Fatalf("Value() = %q, %v; want anonymous", v, ok)
	}
	if !strings.Contains(o.View(), "[x]") {
		t.Fatalf("checked box not rendered:\n%s", o.View())
	}
}

func TestOptionValue_ToggleWithoutNewUsesZero(t *testing.T) {
	o := NewOptionValue[int]("n", "Count", nil)
	o.Toggle()
	if v, ok := o.Value(); !ok || v != 0 {
		t.Fatalf("Value() = %d, %v; want 0, true", v, ok)
	}
}

func TestOptionValue_UncheckClearsValue(t *testing.T) {
	initial := 42
	o := NewOptionValue("n", "Count", &initial)
	o.Focus()

	o, cmd := o.Update(keyPress(" "))
	mustMsg(t, cmd)
	if _, ok := o.Value(); ok {
		t.Fatalf("unchecking should clear the value")
	}
	if !strings.Contains(o.View(), "[ ]") {
		t.Fatalf("unchecked box not rendered:\n%s", o.View())
	}
}

func TestOptionValue_EditRequiresValue(t *testing.T) {
	o := NewOptionValue[string]("s", "Suffix", nil)
	o.Editor = NewTextEditor("suffix")
	o.Focus()

	o, cmd := o.Update(keyPress("enter"))
	if cmd != nil || o.Capturing() {
		t.Fatalf("enter on an unset value should not start editing")
	}
}

func TestOptionValue_TextEditorUpdatesValue(t *testing.T) {
	initial := "ab"
	o := NewOptionValue("s", "Suffix", &initial)
	o.Editor = NewTextEditor("suffix")
	o.Focus()

	o, _ = o.Update(keyPress("enter"))
	if !o.Capturing() {
		t.Fatalf("enter should hand keys to the editor")
	}
	// Space is text while editing, not a toggle.
	o, _ = o.Update(keyPress("c"))
	o, _ = o.Update(keyPress(" "))
	if v, _ := o.Value(); v != "abc " {
		t.Fatalf("Value() = %q, want %q", v, "abc ")
	}

	o, cmd := o.Update(keyPress("esc"))
	if cmd != nil || o.Capturing() {
		t.Fatalf("esc should finish editing without a change")
	}
	if !o.Checked() {
		t.Fatalf("finishing the edit should keep the value set")
	}
}

func TestOptionValue_BlurEndsEditing(t *testing.T) {
	initial := "x"
	o := NewOptionValue("s", "Suffix", &initial)
	o.Editor = NewTextEditor("")
	o.Focus()
	o, _ = o.Update(keyPress("enter"))

	o.Blur()
	if o.Capturing() || o.Focused() {
		t.Fatalf("Blur should end editing")
	}
	_, cmd := o.Update(keyPress(" "))
	if cmd != nil {
		t.Fatalf("blurred option reacted to input")
	}
}
