// Package notification holds per-event notification settings and resolves
// their sound references into loaded sounds.
package notification

import (
	"time"

	"github.com/five82/perch/internal/audio"
)

// Event identifies a notification trigger.
type Event string

const (
	EventConnected           Event = "connected"
	EventDisconnected        Event = "disconnected"
	EventReconnected         Event = "reconnected"
	EventHighlight           Event = "highlight"
	EventDirectMessage       Event = "direct_message"
	EventFileTransferRequest Event = "file_transfer_request"
	EventMonitoredOnline     Event = "monitored_online"
	EventMonitoredOffline    Event = "monitored_offline"
)

// Notification configures a single event. S is the sound representation:
// string names as written in the config file, audio.Sound once loaded.
type Notification[S any] struct {
	ShowToast bool    `toml:"show_toast"`
	Sound     *S      `toml:"sound"`
	DelayMS   *uint64 `toml:"delay"`
}

// Delay returns the configured minimum gap between notifications.
func (n Notification[S]) Delay() time.Duration {
	if n.DelayMS == nil {
		return 0
	}
	return time.Duration(*n.DelayMS) * time.Millisecond
}

// Enabled reports whether the notification does anything when triggered.
func (n Notification[S]) Enabled() bool {
	return n.ShowToast || n.Sound != nil
}

// Notifications is the full [notifications] table.
type Notifications[S any] struct {
	Connected           Notification[S] `toml:"connected"`
	Disconnected        Notification[S] `toml:"disconnected"`
	Reconnected         Notification[S] `toml:"reconnected"`
	Highlight           Notification[S] `toml:"highlight"`
	DirectMessage       Notification[S] `toml:"direct_message"`
	FileTransferRequest Notification[S] `toml:"file_transfer_request"`
	MonitoredOnline     Notification[S] `toml:"monitored_online"`
	MonitoredOffline    Notification[S] `toml:"monitored_offline"`
}

// Entry pairs an event with its settings.
type Entry[S any] struct {
	Event        Event
	Notification Notification[S]
}

// Entries lists every event in a stable order.
func (n Notifications[S]) Entries() []Entry[S] {
	return []Entry[S]{
		{EventConnected, n.Connected},
		{EventDisconnected, n.Disconnected},
		{EventReconnected, n.Reconnected},
		{EventHighlight, n.Highlight},
		{EventDirectMessage, n.DirectMessage},
		{EventFileTransferRequest, n.FileTransferRequest},
		{EventMonitoredOnline, n.MonitoredOnline},
		{EventMonitoredOffline, n.MonitoredOffline},
	}
}

// Get returns the settings for event.
func (n Notifications[S]) Get(event Event) (Notification[S], bool) {
	for _, entry := range n.Entries() {
		if entry.Event == event {
			return entry.Notification, true
		}
	}
	return Notification[S]{}, false
}

// LoadSounds loads every sound n references from dir. The first failure is
// returned as an *audio.LoadError.
func LoadSounds(n Notifications[string], dir string) (Notifications[audio.Sound], error) {
	var out Notifications[audio.Sound]
	var err error

	load := func(src Notification[string]) Notification[audio.Sound] {
		dst := Notification[audio.Sound]{ShowToast: src.ShowToast, DelayMS: src.DelayMS}
		if err != nil || src.Sound == nil {
			return dst
		}
		sound, loadErr := audio.Load(dir, *src.Sound)
		if loadErr != nil {
			err = loadErr
			return dst
		}
		dst.Sound = &sound
		return dst
	}

	out.Connected = load(n.Connected)
	out.Disconnected = load(n.Disconnected)
	out.Reconnected = load(n.Reconnected)
	out.Highlight = load(n.Highlight)
	out.DirectMessage = load(n.DirectMessage)
	out.FileTransferRequest = load(n.FileTransferRequest)
	out.MonitoredOnline = load(n.MonitoredOnline)
	out.MonitoredOffline = load(n.MonitoredOffline)

	if err != nil {
		return Notifications[audio.Sound]{}, err
	}
	return out, nil
}
