// Package widgets provides reusable Bubble Tea components for editing and
// browsing collections.
//
// # Components
//
//   - ListEditor edits a caller-owned slice: a draft row with Add and Reset,
//     a filter box, and expandable rows with Copy, Delete and in-place field
//     editing. Items implement EditItem.
//   - ListViewer shows a read-only list with a search box, a single selection
//     keyed by item ID and a detail pane. Items implement ViewItem.
//   - SelectEdit is a text input with a suggestion popup, optionally filtered
//     by the current text.
//   - OptionValue is a checkbox over an optional value with an inner
//     ValueEditor.
//
// # State
//
// Each component is a value holding its own ephemeral state (search text,
// expanded rows, selection) and a stable ID that is echoed in the messages it
// emits. Labels are passed in through Text rather than package globals.
//
// # Focus
//
// Components only react to keys while focused. Capturing reports that a text
// field is active and the host should forward every key, including the ones
// it would normally handle itself.
package widgets
