package widgets

import tea "github.com/charmbracelet/bubbletea"

// ChangedMsg reports that a widget modified the value it edits.
type ChangedMsg struct {
	ID string
}

// SelectedMsg reports a new selection in a ListViewer.
type SelectedMsg struct {
	ID     string
	ItemID string
}

func changedCmd(id string) tea.Cmd {
	return func() tea.Msg { return ChangedMsg{ID: id} }
}

func selectedCmd(id, itemID string) tea.Cmd {
	return func() tea.Msg { return SelectedMsg{ID: id, ItemID: itemID} }
}
