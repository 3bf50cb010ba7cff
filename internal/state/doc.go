// Package state shares the current configuration between the reloader and
// the UI.
//
// # Overview
//
// The reloader produces a fresh config.Config each time the files on disk
// change; the UI reads whatever is current on its own schedule. Store sits
// between the two:
//
//	Producer (reloader):           Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ config.Load()  │            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  wait for fs   │            │  render UI      │
//	└────────────────┘            └─────────────────┘
//
// # Update Semantics
//
//	// Success: replace the config wholesale
//	store.Update(&cfg, nil)
//	→ snapshot.Config = cfg
//	→ snapshot.Generation++
//	→ snapshot.LastError = nil
//
//	// Failure: keep the last good config, record the error
//	store.Update(nil, err)
//	→ snapshot.Config = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// A broken edit therefore never blanks the UI; it shows the previous config
// and flags it as stale until the file loads again.
//
// Configs are never patched field by field. Generation lets a reader tell
// cheaply whether anything changed since its last look.
//
// # Copying
//
// Snapshot copies the slices and maps inside the config so a reader cannot
// reach the stored value. The zero Store is ready to use.
package state
