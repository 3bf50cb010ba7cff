// Package ui provides the perch configuration inspector, a Bubble Tea TUI
// for looking at what perch resolved from the files on disk.
//
// # Overview
//
// The inspector never edits configuration. It reads snapshots from
// state.Store on a short tick and redraws when they change, so edits saved
// in another terminal show up on their own once the reloader has picked them
// up.
//
// # Layout
//
//	┌ header: theme, config path, load status ───────────┐
//	│ sidebar      │ section content                      │
//	│ ● Themes     │ theme catalog with palette swatches  │
//	│   Servers    │                                      │
//	│   ...        │                                      │
//	└ footer: key help ──────────────────────────────────┘
//
// The sidebar follows [sidebar].position: left or right gives a column, top
// or bottom gives a row of tabs.
//
// The Log section shows the end of perch.log while the inspector owns the
// terminal, refreshed on the same tick while it is open.
//
// # Events
//
// Keys are turned into sidebar Events before anything happens, mirroring the
// intents the chat client's sidebar raises. Selecting a section raises the
// event named by [sidebar].default_action: Open, Replace, or ToggleBuffer,
// which closes the section again when it is already open. The inspector also
// acts on ToggleFileTransfers, ToggleCommandBar and ReloadConfigFile; the
// remaining pane events have no meaning here and are ignored.
//
// # Key Bindings
//
// Bindings for reload, sidebar toggling, file transfers, the command bar,
// movement and quitting come from the [keyboard] table and are rebuilt on
// every new config generation. A few fixed keys are always available:
//
//   - j/k, up/down: move the sidebar cursor
//   - enter: open the highlighted section
//   - tab/shift+tab: open the next/previous section
//   - T: preview the next theme
//   - ?: toggle full help
//   - q: quit
//
// The previewed theme and the sidebar visibility are remembered in
// prefs.toml.
package ui
