package config

import (
	"fmt"
	"strings"
	"time"
)

// Brackets wrap timestamps and nicknames in buffers.
type Brackets struct {
	Left  string `toml:"left"`
	Right string `toml:"right"`
}

// Timestamp is [buffer.timestamp].
type Timestamp struct {
	Format   string   `toml:"format"`
	Brackets Brackets `toml:"brackets"`
}

// Nickname is [buffer.nickname].
type Nickname struct {
	Color      string   `toml:"color"` // unique or solid
	Brackets   Brackets `toml:"brackets"`
	Alignment  string   `toml:"alignment"` // left, right or top
	ShowAccess bool     `toml:"show_access"`
}

// TextInput is [buffer.text_input].
type TextInput struct {
	Visibility string `toml:"visibility"` // always or focused
}

// Nicklist is [buffer.channel.nicklist].
type Nicklist struct {
	Enabled  bool   `toml:"enabled"`
	Position string `toml:"position"` // left or right
	Color    string `toml:"color"`    // unique or solid
}

// Topic is [buffer.channel.topic].
type Topic struct {
	Enabled  bool `toml:"enabled"`
	MaxLines int  `toml:"max_lines"`
}

// Channel is [buffer.channel].
type Channel struct {
	Nicklist Nicklist `toml:"nicklist"`
	Topic    Topic    `toml:"topic"`
}

// ServerMessage configures how one kind of server message is shown.
type ServerMessage struct {
	Enabled        bool   `toml:"enabled"`
	Smart          *int64 `toml:"smart"`           // seconds; hide if the user was silent this long
	UsernameFormat string `toml:"username_format"` // short or full
}

// ServerMessages is [buffer.server_messages].
type ServerMessages struct {
	Join  ServerMessage `toml:"join"`
	Part  ServerMessage `toml:"part"`
	Quit  ServerMessage `toml:"quit"`
	Topic ServerMessage `toml:"topic"`
}

// DateSeparators is [buffer.date_separators].
type DateSeparators struct {
	Format string `toml:"format"`
	Show   bool   `toml:"show"`
}

// Buffer is the [buffer] table.
type Buffer struct {
	Timestamp      Timestamp      `toml:"timestamp"`
	Nickname       Nickname       `toml:"nickname"`
	TextInput      TextInput      `toml:"text_input"`
	Channel        Channel        `toml:"channel"`
	ServerMessages ServerMessages `toml:"server_messages"`
	DateSeparators DateSeparators `toml:"date_separators"`
}

// DefaultBuffer returns buffer defaults.
func DefaultBuffer() Buffer {
	serverMessage := ServerMessage{Enabled: true, UsernameFormat: "full"}
	return Buffer{
		Timestamp: Timestamp{
			Format:   "%R",
			Brackets: Brackets{Left: "", Right: ""},
		},
		Nickname: Nickname{
			Color:      "unique",
			Brackets:   Brackets{Left: "<", Right: ">"},
			Alignment:  "left",
			ShowAccess: true,
		},
		TextInput: TextInput{Visibility: "always"},
		Channel: Channel{
			Nicklist: Nicklist{Enabled: true, Position: "right", Color: "unique"},
			Topic:    Topic{Enabled: false, MaxLines: 2},
		},
		ServerMessages: ServerMessages{
			Join:  serverMessage,
			Part:  serverMessage,
			Quit:  serverMessage,
			Topic: serverMessage,
		},
		DateSeparators: DateSeparators{Format: "%A, %B %-d", Show: true},
	}
}

// Validate checks enumerated buffer settings.
func (b Buffer) Validate() error {
	checks := []struct {
		field string
		value string
		valid []string
	}{
		{"buffer.nickname.color", b.Nickname.Color, []string{"unique", "solid"}},
		{"buffer.nickname.alignment", b.Nickname.Alignment, []string{"left", "right", "top"}},
		{"buffer.text_input.visibility", b.TextInput.Visibility, []string{"always", "focused"}},
		{"buffer.channel.nicklist.position", b.Channel.Nicklist.Position, []string{"left", "right"}},
		{"buffer.channel.nicklist.color", b.Channel.Nicklist.Color, []string{"unique", "solid"}},
		{"buffer.server_messages.join.username_format", b.ServerMessages.Join.UsernameFormat, []string{"short", "full"}},
		{"buffer.server_messages.part.username_format", b.ServerMessages.Part.UsernameFormat, []string{"short", "full"}},
		{"buffer.server_messages.quit.username_format", b.ServerMessages.Quit.UsernameFormat, []string{"short", "full"}},
		{"buffer.server_messages.topic.username_format", b.ServerMessages.Topic.UsernameFormat, []string{"short", "full"}},
	}
	for _, c := range checks {
		if err := oneOf(c.field, c.value, c.valid...); err != nil {
			return err
		}
	}
	if b.Channel.Topic.MaxLines < 1 {
		return fmt.Errorf("buffer.channel.topic.max_lines must be at least 1, got %d", b.Channel.Topic.MaxLines)
	}
	return nil
}

// Sidebar is the [sidebar] table.
type Sidebar struct {
	DefaultAction        string `toml:"default_action"` // new-pane, replace-pane or toggle-pane
	Width                uint16 `toml:"width"`
	Position             string `toml:"position"` // left, right, top or bottom
	ShowUnreadIndicators bool   `toml:"show_unread_indicators"`
	ShowUserMenu         bool   `toml:"show_user_menu"`
}

// DefaultSidebar returns sidebar defaults.
func DefaultSidebar() Sidebar {
	return Sidebar{
		DefaultAction:        "new-pane",
		Width:                120,
		Position:             "left",
		ShowUnreadIndicators: true,
		ShowUserMenu:         true,
	}
}

// Validate checks enumerated sidebar settings.
func (s Sidebar) Validate() error {
	if err := oneOf("sidebar.default_action", s.DefaultAction, "new-pane", "replace-pane", "toggle-pane"); err != nil {
		return err
	}
	if err := oneOf("sidebar.position", s.Position, "left", "right", "top", "bottom"); err != nil {
		return err
	}
	if s.Width == 0 {
		return fmt.Errorf("sidebar.width must be positive")
	}
	return nil
}

// Horizontal reports whether the sidebar runs along the top or bottom edge.
func (s Sidebar) Horizontal() bool {
	return s.Position == "top" || s.Position == "bottom"
}

// Keyboard is the [keyboard] table. Values are key combinations such as
// "ctrl+w" or "alt+up"; an empty value leaves the action unbound.
type Keyboard struct {
	MoveUp              string `toml:"move_up"`
	MoveDown            string `toml:"move_down"`
	MoveLeft            string `toml:"move_left"`
	MoveRight           string `toml:"move_right"`
	CloseBuffer         string `toml:"close_buffer"`
	MaximizeBuffer      string `toml:"maximize_buffer"`
	RestoreBuffer       string `toml:"restore_buffer"`
	CycleNextBuffer     string `toml:"cycle_next_buffer"`
	CyclePreviousBuffer string `toml:"cycle_previous_buffer"`
	ToggleNickList      string `toml:"toggle_nick_list"`
	ToggleSidebar       string `toml:"toggle_sidebar"`
	CommandBar          string `toml:"command_bar"`
	ReloadConfiguration string `toml:"reload_configuration"`
	FileTransfers       string `toml:"file_transfers"`
	QuitApplication     string `toml:"quit_application"`
}

// KeyBinding is one keyboard action and its combination.
type KeyBinding struct {
	Action string
	Keys   string
}

// DefaultKeyboard returns the default key bindings.
func DefaultKeyboard() Keyboard {
	return Keyboard{
		MoveUp:              "alt+up",
		MoveDown:            "alt+down",
		MoveLeft:            "alt+left",
		MoveRight:           "alt+right",
		CloseBuffer:         "ctrl+w",
		MaximizeBuffer:      "ctrl+up",
		RestoreBuffer:       "ctrl+down",
		CycleNextBuffer:     "ctrl+tab",
		CyclePreviousBuffer: "ctrl+shift+tab",
		ToggleNickList:      "ctrl+alt+m",
		ToggleSidebar:       "ctrl+b",
		CommandBar:          "ctrl+k",
		ReloadConfiguration: "ctrl+r",
		FileTransfers:       "ctrl+j",
		QuitApplication:     "ctrl+c",
	}
}

// Bindings lists every action with its key combination in a stable order.
func (k Keyboard) Bindings() []KeyBinding {
	return []KeyBinding{
		{"move_up", k.MoveUp},
		{"move_down", k.MoveDown},
		{"move_left", k.MoveLeft},
		{"move_right", k.MoveRight},
		{"close_buffer", k.CloseBuffer},
		{"maximize_buffer", k.MaximizeBuffer},
		{"restore_buffer", k.RestoreBuffer},
		{"cycle_next_buffer", k.CycleNextBuffer},
		{"cycle_previous_buffer", k.CyclePreviousBuffer},
		{"toggle_nick_list", k.ToggleNickList},
		{"toggle_sidebar", k.ToggleSidebar},
		{"command_bar", k.CommandBar},
		{"reload_configuration", k.ReloadConfiguration},
		{"file_transfers", k.FileTransfers},
		{"quit_application", k.QuitApplication},
	}
}

var keyModifiers = map[string]bool{"ctrl": true, "alt": true, "shift": true}

// Validate rejects malformed key combinations.
func (k Keyboard) Validate() error {
	for _, b := range k.Bindings() {
		if b.Keys == "" {
			continue
		}
		parts := strings.Split(strings.ToLower(b.Keys), "+")
		for i, part := range parts {
			if part == "" {
				return fmt.Errorf("keyboard.%s: malformed key %q", b.Action, b.Keys)
			}
			if i < len(parts)-1 && !keyModifiers[part] {
				return fmt.Errorf("keyboard.%s: unknown modifier %q in %q", b.Action, part, b.Keys)
			}
		}
	}
	return nil
}

// FileTransferServer is [file_transfer.server], used when not passive.
type FileTransferServer struct {
	PublicAddress string `toml:"public_address"`
	BindAddress   string `toml:"bind_address"`
	BindPortFirst uint16 `toml:"bind_port_first"`
	BindPortLast  uint16 `toml:"bind_port_last"`
}

// FileTransfer is the [file_transfer] table.
type FileTransfer struct {
	SaveDirectory *string             `toml:"save_directory"`
	Passive       bool                `toml:"passive"`
	TimeoutSecs   uint64              `toml:"timeout"`
	Server        *FileTransferServer `toml:"server"`
}

// DefaultFileTransfer returns file transfer defaults.
func DefaultFileTransfer() FileTransfer {
	return FileTransfer{Passive: true, TimeoutSecs: 300}
}

// Timeout returns the transfer timeout.
func (f FileTransfer) Timeout() time.Duration {
	return time.Duration(f.TimeoutSecs) * time.Second
}

// Validate checks the port range and that active mode has a server.
func (f FileTransfer) Validate() error {
	if f.TimeoutSecs == 0 {
		return fmt.Errorf("file_transfer.timeout must be positive")
	}
	if f.Server == nil {
		if !f.Passive {
			return fmt.Errorf("file_transfer.server is required when passive = false")
		}
		return nil
	}
	s := f.Server
	if strings.TrimSpace(s.PublicAddress) == "" {
		return fmt.Errorf("file_transfer.server: missing field public_address")
	}
	if s.BindPortFirst == 0 || s.BindPortLast == 0 {
		return fmt.Errorf("file_transfer.server: bind ports must be set")
	}
	if s.BindPortFirst > s.BindPortLast {
		return fmt.Errorf("file_transfer.server: bind_port_first %d is after bind_port_last %d", s.BindPortFirst, s.BindPortLast)
	}
	return nil
}

func oneOf(field, value string, valid ...string) error {
	for _, v := range valid {
		if value == v {
			return nil
		}
	}
	return fmt.Errorf("%s: invalid value %q (want one of %s)", field, value, strings.Join(valid, ", "))
}
