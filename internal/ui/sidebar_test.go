package ui

import (
	"testing"
	"time"
)

func TestSidebar_HandlePassesEventsThrough(t *testing.T) {
	s := NewSidebar(false)
	events := []Event{
		{Kind: EventOpen, Buffer: "Themes"},
		{Kind: EventReplace, Buffer: "Servers", Pane: 1},
		{Kind: EventToggleBuffer, Buffer: "Keyboard"},
		{Kind: EventClose, Pane: 2},
		{Kind: EventSwap, Pane: 1, Target: 2},
		{Kind: EventLeave, Buffer: "#perch"},
		{Kind: EventToggleFileTransfers},
		{Kind: EventToggleCommandBar},
		{Kind: EventOpenReleaseWebsite},
	}
	for _, ev := range events {
		if got := s.Handle(ev); got != ev {
			t.Fatalf("Handle(%v) = %v, want unchanged", ev, got)
		}
	}
	if !s.LastReload().IsZero() {
		t.Fatalf("LastReload = %v, want zero without a reload event", s.LastReload())
	}
}

func TestSidebar_ReloadRecordsTimestamp(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	s := NewSidebar(false)
	s.now = func() time.Time { return at }

	ev := s.Handle(Event{Kind: EventReloadConfigFile})
	if ev.Kind != EventReloadConfigFile {
		t.Fatalf("Kind = %s, want %s", ev.Kind, EventReloadConfigFile)
	}
	if !s.LastReload().Equal(at) {
		t.Fatalf("LastReload = %v, want %v", s.LastReload(), at)
	}
}

func TestSidebar_ToggleVisibility(t *testing.T) {
	s := NewSidebar(true)
	if !s.Hidden() {
		t.Fatalf("Hidden() = false, want true")
	}
	s.ToggleVisibility()
	if s.Hidden() {
		t.Fatalf("Hidden() = true after toggle, want false")
	}
}

func TestEventKind_String(t *testing.T) {
	if got := EventToggleFileTransfers.String(); got != "toggle_file_transfers" {
		t.Fatalf("String() = %q, want %q", got, "toggle_file_transfers")
	}
	if got := EventKind(99).String(); got != "event(99)" {
		t.Fatalf("String() = %q, want %q", got, "event(99)")
	}
}
