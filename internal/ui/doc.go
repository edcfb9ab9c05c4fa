// Package ui provides the Bubble Tea interface for tracepanel.
//
// # Views
//
// Two views share one header and command bar:
//
//   - Logs: the captured records, oldest first, with a follow mode, regex
//     search and a filters modal. A warning or error arriving in a drain
//     flashes its level in the header for a few seconds.
//   - Widgets: the list editor, list viewer, select editor and optional
//     value widgets over a small set of demo services. Every change they
//     report is logged, so it also shows up in the logs view.
//
// # Event Flow
//
//  1. Run creates the Model and starts the program.
//  2. A tick every PollTick drains the tracelog.Log and re-renders the log box.
//  3. Keys go to the open modal first, then to the global bindings, then to
//     the current view. While a text field captures input (the log search
//     box or a widget in edit or filter mode) the global bindings are skipped,
//     except ctrl+c.
//  4. Theme and view changes are written to the preferences file.
//
// # Key Bindings
//
//   - Tab / Shift+Tab: switch view
//   - / then n/N: search logs, next/previous match
//   - Space: toggle follow (logs), expand or check (widgets)
//   - F: log filters; C: clear log
//   - [ and ]: previous/next widget
//   - T: cycle theme; ?: help
//   - e or Ctrl+C: exit
package ui
