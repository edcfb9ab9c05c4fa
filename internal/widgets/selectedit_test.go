package widgets

import (
	"strings"
	"testing"
)

type level int

func (l level) String() string { return [...]string{"trace", "debug", "info", "warn", "error"}[l] }

func newTestSelect(filter bool) SelectEdit {
	s := NewSelectEdit("level", Options([]level{0, 1, 2, 3, 4}))
	s.Filter = filter
	_ = s.Focus()
	return s
}

func TestSelectEdit_EmptyTextOffersEveryOption(t *testing.T) {
	s := newTestSelect(true)
	if got := strings.Join(s.Suggestions(), ","); got != "trace,debug,info,warn,error" {
		t.Fatalf("Suggestions() = %s", got)
	}
}

func TestSelectEdit_FilterNarrowsSuggestions(t *testing.T) {
	s := newTestSelect(true)
	s.SetValue("r")
	if got := strings.Join(s.Suggestions(), ","); got != "trace,warn,error" {
		t.Fatalf("Suggestions() = %s, want trace,warn,error", got)
	}

	s.Filter = false
	if len(s.Suggestions()) != 5 {
		t.Fatalf("unfiltered editor should offer every option")
	}
}

func TestSelectEdit_EnterPicksHighlight(t *testing.T) {
	s := newTestSelect(false)

	s, _ = s.Update(keyPress("down"))
	s, _ = s.Update(keyPress("down"))
	if h, _ := s.Highlighted(); h != "info" {
		t.Fatalf("Highlighted() = %q, want info", h)
	}
	s, cmd := s.Update(keyPress("enter"))
	if got := mustMsg(t, cmd); got != (ChangedMsg{ID: "level"}) {
		t.Fatalf("msg = %#v, want ChangedMsg", got)
	}
	if s.Value() != "info" {
		t.Fatalf("Value() = %q, want info", s.Value())
	}

	// Picking the current value again is not a change.
	_, cmd = s.Update(keyPress("enter"))
	if cmd != nil {
		t.Fatalf("picking the same value should not emit a message")
	}
}

func TestSelectEdit_HighlightStaysInRange(t *testing.T) {
	s := newTestSelect(true)
	s.SetValue("de")

	s, _ = s.Update(keyPress("up"))
	for range 5 {
		s, _ = s.Update(keyPress("down"))
	}
	if h, ok := s.Highlighted(); !ok || h != "debug" {
		t.Fatalf("Highlighted() = %q, %v; want debug", h, ok)
	}
}

func TestSelectEdit_EscClosesPopup(t *testing.T) {
	s := newTestSelect(false)
	if !s.Open() || !strings.Contains(s.View(), "warn") {
		t.Fatalf("focused editor should show suggestions:\n%s", s.View())
	}

	s, _ = s.Update(keyPress("esc"))
	if s.Open() || s.Capturing() {
		t.Fatalf("esc should close the popup")
	}
	if strings.Contains(s.View(), "warn") {
		t.Fatalf("closed popup still rendered:\n%s", s.View())
	}
}

func TestSelectEdit_PopupWindow(t *testing.T) {
	s := newTestSelect(false)
	s.MaxSuggestions = 2

	if v := s.View(); strings.Contains(v, "info") || !strings.Contains(v, "…") {
		t.Fatalf("popup should show two rows and an ellipsis:\n%s", v)
	}
	for range 4 {
		s, _ = s.Update(keyPress("down"))
	}
	if v := s.View(); !strings.Contains(v, "error") || strings.Contains(v, "trace") {
		t.Fatalf("popup should scroll to the highlight:\n%s", v)
	}
}
