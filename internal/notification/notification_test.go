package notification

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/perch/internal/audio"
)

func writeWAV(t *testing.T, path string) {
	t.Helper()
	buf := make([]byte, 44)
	copy(buf[0:], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:], 36)
	copy(buf[8:], "WAVE")
	copy(buf[12:], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:], 16)
	binary.LittleEndian.PutUint16(buf[20:], 1)
	binary.LittleEndian.PutUint16(buf[22:], 1)
	binary.LittleEndian.PutUint32(buf[24:], 8000)
	binary.LittleEndian.PutUint32(buf[28:], 8000)
	binary.LittleEndian.PutUint16(buf[32:], 1)
	binary.LittleEndian.PutUint16(buf[34:], 8)
	copy(buf[36:], "data")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestDecode_NotificationsTable(t *testing.T) {
	var n Notifications[string]
	data := []byte(`
[highlight]
show_toast = true
sound = "peck"
delay = 500

[direct_message]
show_toast = true
`)
	if err := toml.Unmarshal(data, &n); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if !n.Highlight.ShowToast || n.Highlight.Sound == nil || *n.Highlight.Sound != "peck" {
		t.Fatalf("Highlight = %+v, want toast with sound peck", n.Highlight)
	}
	if got := n.Highlight.Delay(); got != 500*time.Millisecond {
		t.Fatalf("Highlight.Delay() = %v, want 500ms", got)
	}
	if n.DirectMessage.Sound != nil {
		t.Fatalf("DirectMessage.Sound = %v, want nil", *n.DirectMessage.Sound)
	}
	if n.Connected.Enabled() {
		t.Fatalf("Connected.Enabled() = true, want false")
	}
}

func TestLoadSounds_ResolvesReferencedSounds(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "peck.wav"))

	name := "peck"
	in := Notifications[string]{
		Highlight:     Notification[string]{ShowToast: true, Sound: &name},
		DirectMessage: Notification[string]{ShowToast: true},
	}

	out, err := LoadSounds(in, dir)
	if err != nil {
		t.Fatalf("LoadSounds returned error: %v", err)
	}
	if out.Highlight.Sound == nil || out.Highlight.Sound.Name != "peck" {
		t.Fatalf("Highlight.Sound = %+v, want loaded peck", out.Highlight.Sound)
	}
	if !out.DirectMessage.ShowToast || out.DirectMessage.Sound != nil {
		t.Fatalf("DirectMessage = %+v, want toast without sound", out.DirectMessage)
	}
}

func TestLoadSounds_MissingSoundFails(t *testing.T) {
	name := "missing"
	in := Notifications[string]{Connected: Notification[string]{Sound: &name}}

	_, err := LoadSounds(in, t.TempDir())
	var loadErr *audio.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("LoadSounds error = %v, want *audio.LoadError", err)
	}
	if loadErr.Name != "missing" {
		t.Fatalf("LoadError.Name = %q, want %q", loadErr.Name, "missing")
	}
}

func TestEntriesAndGet(t *testing.T) {
	n := Notifications[string]{MonitoredOffline: Notification[string]{ShowToast: true}}

	entries := n.Entries()
	if len(entries) != 8 {
		t.Fatalf("len(Entries()) = %d, want 8", len(entries))
	}
	got, ok := n.Get(EventMonitoredOffline)
	if !ok || !got.ShowToast {
		t.Fatalf("Get(monitored_offline) = %+v, %v; want toast", got, ok)
	}
	if _, ok := n.Get(Event("bogus")); ok {
		t.Fatalf("Get(bogus) ok = true, want false")
	}
}
