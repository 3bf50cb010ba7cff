package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/perch/internal/config"
	"github.com/five82/perch/internal/server"
	"github.com/five82/perch/internal/theme"
)

func sampleConfig() *config.Config {
	return &config.Config{
		Themes:  config.DefaultThemes(),
		Servers: server.Map{"libera": {Nickname: "perch1234", Host: "irc.libera.chat"}},
	}
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.Update(sampleConfig(), nil)

	snap := s.Snapshot()
	if !snap.HasConfig || snap.Generation != 1 {
		t.Fatalf("HasConfig/Generation = %v/%d, want true/1", snap.HasConfig, snap.Generation)
	}
	if snap.LastLoaded.Before(before) {
		t.Fatalf("LastLoaded = %v, want >= %v", snap.LastLoaded, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Config.Themes.All[0] = theme.New("Mutated", theme.DefaultPalette())
	snap.Config.Servers["other"] = server.Server{}
	snap2 := s.Snapshot()
	if snap2.Config.Themes.All[0].Name != theme.DefaultName {
		t.Fatalf("Snapshot should clone themes; got %q", snap2.Config.Themes.All[0].Name)
	}
	if _, ok := snap2.Config.Servers["other"]; ok {
		t.Fatalf("Snapshot should clone servers")
	}
}

func TestStore_UpdateErrorKeepsPreviousConfig(t *testing.T) {
	var s Store

	s.Update(sampleConfig(), nil)
	prev := s.Snapshot()

	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if !snap.HasConfig || snap.Generation != prev.Generation {
		t.Fatalf("config changed on error: generation %d want %d", snap.Generation, prev.Generation)
	}
	if snap.Config.Servers["libera"].Nickname != "perch1234" {
		t.Fatalf("servers changed on error: %#v", snap.Config.Servers)
	}
	if !snap.LastLoaded.Equal(prev.LastLoaded) {
		t.Fatalf("LastLoaded = %v, want unchanged %v", snap.LastLoaded, prev.LastLoaded)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
	if !snap.Stale() {
		t.Fatalf("Stale() = false, want true after failed reload")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.Stale() {
		t.Fatalf("zero Store: failures=%d stale=%v", snap.ConsecutiveFailures, snap.Stale())
	}

	s.Update(nil, errors.New("fail 1"))
	s.Update(nil, errors.New("fail 2"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 2 {
		t.Fatalf("ConsecutiveFailures = %d, want 2", snap.ConsecutiveFailures)
	}
	if snap.Stale() {
		t.Fatal("Stale() = true, want false without any config")
	}

	s.Update(sampleConfig(), nil)
	s.Update(sampleConfig(), nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after success", snap.ConsecutiveFailures)
	}
	if snap.Generation != 2 {
		t.Fatalf("Generation = %d, want 2", snap.Generation)
	}
}
