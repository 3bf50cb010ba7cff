// Package app is the composition root for the perch inspector.
//
// # Overview
//
// Run wires configuration loading, the shared state.Store, the reloader and
// the UI together:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> Prepare()           default theme, initial config, legacy check
//	       ├─────> state.Store{}       shared snapshot container
//	       ├─────> Reloader.Load()     first load (errors go to the store)
//	       ├─────> Reloader.Start()    watch or poll for changes
//	       └─────> ui.Run()            inspector (blocks)
//
// # Reloading
//
// The reloader watches the config root, the themes directory and the sounds
// directory with fsnotify and runs a full config.Load after each settled
// burst of changes. Only .toml files and sound files count, and writes to
// prefs.toml are ignored so the inspector does not reload itself.
//
// When the platform watcher cannot start, StartPoller takes over: it compares
// file counts, sizes and modification times every interval, backing off up
// to 30 seconds while the directories cannot be read.
//
// Each load replaces the stored config wholesale. A failed load leaves the
// previous config in place and records the error, which the UI shows as a
// stale warning.
//
// # First Run
//
// Prepare never fails. It writes ferra.toml and config.toml when they are
// missing, logs the generated nickname, and warns when an old config.yaml is
// present.
package app
