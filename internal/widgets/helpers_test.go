package widgets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// mustMsg runs a command that is expected to produce a widget message.
func mustMsg(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("cmd = nil, want a message")
	}
	return cmd()
}

// record is a test item for ListEditor.
type record struct {
	ID   int
	Name string
}

type recordData struct {
	newTitle string
}

func newRecord(d recordData) *record { return &record{Name: d.newTitle} }

func (r *record) Title(recordData) string { return fmt.Sprintf("#%d %s", r.ID, r.Name) }

func (r *record) NewTitle(d recordData) string { return d.newTitle }

func (r *record) Matches(q string, _ recordData) bool { return strings.Contains(r.Name, q) }

func (r *record) Fields(recordData) []Field {
	return []Field{
		{Label: "kind", Value: "record"},
		{
			Label: "id",
			Value: strconv.Itoa(r.ID),
			Set: func(v string) error {
				n, err := strconv.Atoi(strings.TrimSpace(v))
				if err != nil {
					return errors.New("not a number")
				}
				r.ID = n
				return nil
			},
		},
		{
			Label: "name",
			Value: r.Name,
			Set: func(v string) error {
				r.Name = v
				return nil
			},
		},
	}
}

func (r *record) Clone() *record {
	c := *r
	return &c
}

// entry is a test item for ListViewer.
type entry struct {
	id   int
	name string
}

func (e entry) Label(struct{}) string { return e.name }
func (e entry) ID(struct{}) string { return strconv.Itoa(e.id) }
func (e entry) Matches(q string, _ struct{}) bool { return strings.Contains(e.name, q) }
func (e entry) Detail(struct{}) string { return "id " + strconv.Itoa(e.id) }
