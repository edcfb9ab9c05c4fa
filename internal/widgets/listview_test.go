package widgets

import (
	"strings"
	"testing"
)

func testEntries() []entry {
	return []entry{{1, "alpha"}, {2, "beta"}, {3, "gamma"}, {4, "delta"}}
}

func newTestViewer() ListViewer[entry, struct{}] {
	v := NewListViewer[entry]("entries", "Entries", testEntries(), struct{}{}, Text{})
	v.Focus()
	return v
}

func TestListViewer_EnterSelectsItemUnderCursor(t *testing.T) {
	v := newTestViewer()

	v, _ = v.Update(keyPress("down"))
	v, cmd := v.Update(keyPress("enter"))
	got := mustMsg(t, cmd)
	if got != (SelectedMsg{ID: "entries", ItemID: "2"}) {
		t.Fatalf("msg = %#v, want SelectedMsg for item 2", got)
	}
	if v.SelectedID() != "2" {
		t.Fatalf("SelectedID() = %q, want 2", v.SelectedID())
	}

	// Selecting the same item again is not a change.
	_, cmd = v.Update(keyPress("enter"))
	if cmd != nil {
		t.Fatalf("reselecting should not emit a message")
	}
}

func TestListViewer_SelectionSurvivesSearch(t *testing.T) {
	v := newTestViewer()
	v.Select("1")

	v.SetSearch("ta")
	for _, e := range v.Visible() {
		if e.id == 1 {
			t.Fatalf("alpha should be hidden by the search")
		}
	}
	it, ok := v.Selected()
	if !ok || it.name != "alpha" {
		t.Fatalf("Selected() = %v, %v; want alpha", it, ok)
	}
	if !strings.Contains(v.View(), "id 1") {
		t.Fatalf("detail pane should stay visible:\n%s", v.View())
	}
}

func TestListViewer_SetItemsDropsMissingSelection(t *testing.T) {
	v := newTestViewer()
	v.Select("4")

	v.SetItems(testEntries()[:2])
	if _, ok := v.Selected(); ok {
		t.Fatalf("selection should not resolve once its item is gone")
	}
}

func TestListViewer_SearchKeys(t *testing.T) {
	v := newTestViewer()

	v, _ = v.Update(keyPress("/"))
	if !v.Capturing() {
		t.Fatalf("search box should capture keys")
	}
	v, _ = v.Update(keyPress("el"))
	v, _ = v.Update(keyPress("enter"))
	if v.Search() != "el" || v.Capturing() {
		t.Fatalf("Search() = %q, Capturing() = %v", v.Search(), v.Capturing())
	}
	if vis := v.Visible(); len(vis) != 1 || vis[0].name != "delta" {
		t.Fatalf("Visible() = %v, want [delta]", vis)
	}

	_, cmd := v.Update(keyPress("enter"))
	if got := mustMsg(t, cmd); got != (SelectedMsg{ID: "entries", ItemID: "4"}) {
		t.Fatalf("msg = %#v, want delta selected", got)
	}
}

func TestListViewer_MaxHeightLimitsRows(t *testing.T) {
	v := newTestViewer()
	v.MaxHeight = 2

	view := v.View()
	if !strings.Contains(view, "alpha") || !strings.Contains(view, "beta") {
		t.Fatalf("first window missing rows:\n%s", view)
	}
	if strings.Contains(view, "gamma") || !strings.Contains(view, "…") {
		t.Fatalf("rows past MaxHeight should be elided:\n%s", view)
	}

	for range 3 {
		v, _ = v.Update(keyPress("j"))
	}
	view = v.View()
	if !strings.Contains(view, "delta") || strings.Contains(view, "alpha") {
		t.Fatalf("window should follow the cursor:\n%s", view)
	}
}

func TestListViewer_IgnoresKeysWhenBlurred(t *testing.T) {
	v := newTestViewer()
	v.Blur()

	v, cmd := v.Update(keyPress("enter"))
	if cmd != nil || v.SelectedID() != "" {
		t.Fatalf("blurred viewer reacted to input")
	}
}
