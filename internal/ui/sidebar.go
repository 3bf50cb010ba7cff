package ui

import (
	"fmt"
	"time"
)

// EventKind is a user intent raised from the sidebar. The inspector acts on
// some of them and passes the rest through untouched.
type EventKind int

const (
	EventOpen EventKind = iota
	EventReplace
	EventToggleBuffer
	EventClose
	EventSwap
	EventLeave
	EventToggleFileTransfers
	EventToggleCommandBar
	EventReloadConfigFile
	EventOpenReleaseWebsite
)

func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventReplace:
		return "replace"
	case EventToggleBuffer:
		return "toggle_buffer"
	case EventClose:
		return "close"
	case EventSwap:
		return "swap"
	case EventLeave:
		return "leave"
	case EventToggleFileTransfers:
		return "toggle_file_transfers"
	case EventToggleCommandBar:
		return "toggle_command_bar"
	case EventReloadConfigFile:
		return "reload_config_file"
	case EventOpenReleaseWebsite:
		return "open_release_website"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is an opaque intent. Buffer names the buffer for Open, Replace,
// ToggleBuffer and Leave; Pane and Target identify panes for Replace, Close
// and Swap.
type Event struct {
	Kind   EventKind
	Buffer string
	Pane   int
	Target int
}

// Sidebar is the buffer list's own state: whether it is shown and when the
// config was last reloaded from it.
type Sidebar struct {
	hidden     bool
	lastReload time.Time
	now        func() time.Time
}

// NewSidebar returns a visible sidebar.
func NewSidebar(hidden bool) Sidebar {
	return Sidebar{hidden: hidden, now: time.Now}
}

// Hidden reports whether the sidebar is collapsed.
func (s Sidebar) Hidden() bool {
	return s.hidden
}

// ToggleVisibility shows a hidden sidebar and hides a visible one.
func (s *Sidebar) ToggleVisibility() {
	s.hidden = !s.hidden
}

// LastReload is when a reload was last requested; zero if never.
func (s Sidebar) LastReload() time.Time {
	return s.lastReload
}

// Handle records what the sidebar itself cares about and returns ev for the
// caller to act on.
func (s *Sidebar) Handle(ev Event) Event {
	if ev.Kind == EventReloadConfigFile {
		now := s.now
		if now == nil {
			now = time.Now
		}
		s.lastReload = now()
	}
	return ev
}
