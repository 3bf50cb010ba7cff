// Package server defines the IRC server registry read from the [servers]
// table of the config file.
package server

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/five82/perch/internal/fsutil"
)

const (
	defaultTLSPort       = 6697
	defaultPlaintextPort = 6667
)

// ErrDuplicatePassword is returned when a secret is given both inline and
// through a file.
var ErrDuplicatePassword = errors.New("only one of password and password_file can be set")

// Server is one [servers.<name>] entry.
type Server struct {
	Nickname           string   `toml:"nickname"`
	NickPassword       *string  `toml:"nick_password"`
	NickPasswordFile   *string  `toml:"nick_password_file"`
	NickIdentifySyntax string   `toml:"nick_identify_syntax"`
	AltNicks           []string `toml:"alt_nicks"`
	Username           string   `toml:"username"`
	Realname           string   `toml:"realname"`
	Host               string   `toml:"server"`
	Port               uint16   `toml:"port"`
	Password           *string  `toml:"password"`
	PasswordFile       *string  `toml:"password_file"`
	Channels           []string `toml:"channels"`
	UseTLS             *bool    `toml:"use_tls"`
	AcceptInvalidCerts bool     `toml:"dangerously_accept_invalid_certs"`
	SASL               *SASL    `toml:"sasl"`
}

// SASL selects one authentication mechanism.
type SASL struct {
	Plain    *SASLPlain    `toml:"plain"`
	External *SASLExternal `toml:"external"`
}

// SASLPlain is username/password authentication.
type SASLPlain struct {
	Username     string  `toml:"username"`
	Password     *string `toml:"password"`
	PasswordFile *string `toml:"password_file"`
}

// SASLExternal is client certificate authentication.
type SASLExternal struct {
	Cert string `toml:"cert"`
	Key  string `toml:"key"`
}

// TLS reports whether the connection uses TLS. Defaults to true.
func (s Server) TLS() bool {
	return s.UseTLS == nil || *s.UseTLS
}

// EffectivePort returns the configured port or the TLS-dependent default.
func (s Server) EffectivePort() uint16 {
	if s.Port != 0 {
		return s.Port
	}
	if s.TLS() {
		return defaultTLSPort
	}
	return defaultPlaintextPort
}

// Address returns host:port.
func (s Server) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(int(s.EffectivePort())))
}

// Validate checks the fields every server needs.
func (s Server) Validate() error {
	if strings.TrimSpace(s.Nickname) == "" {
		return fmt.Errorf("missing field nickname")
	}
	if strings.TrimSpace(s.Host) == "" {
		return fmt.Errorf("missing field server")
	}
	if s.SASL != nil && s.SASL.Plain != nil && s.SASL.External != nil {
		return fmt.Errorf("sasl: only one of plain and external can be set")
	}
	return nil
}

// Map is the server registry keyed by the user's server name.
type Map map[string]Server

// Names returns the server names in sorted order.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate validates every server.
func (m Map) Validate() error {
	for _, name := range m.Names() {
		if err := m[name].Validate(); err != nil {
			return fmt.Errorf("server %s: %w", name, err)
		}
	}
	return nil
}

// ReadPasswordFiles replaces every *_file secret with the file's contents.
// Trailing newlines are trimmed.
func (m Map) ReadPasswordFiles() error {
	for _, name := range m.Names() {
		srv := m[name]

		if err := readInto(&srv.Password, srv.PasswordFile); err != nil {
			return fmt.Errorf("server %s: password: %w", name, err)
		}
		if err := readInto(&srv.NickPassword, srv.NickPasswordFile); err != nil {
			return fmt.Errorf("server %s: nick password: %w", name, err)
		}
		if srv.SASL != nil && srv.SASL.Plain != nil {
			plain := *srv.SASL.Plain
			if err := readInto(&plain.Password, plain.PasswordFile); err != nil {
				return fmt.Errorf("server %s: sasl password: %w", name, err)
			}
			sasl := *srv.SASL
			sasl.Plain = &plain
			srv.SASL = &sasl
		}

		m[name] = srv
	}
	return nil
}

func readInto(dst **string, file *string) error {
	if file == nil {
		return nil
	}
	if *dst != nil {
		return ErrDuplicatePassword
	}
	path, err := fsutil.ExpandPath(*file)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read password file: %w", err)
	}
	secret := strings.TrimRight(string(data), "\r\n")
	*dst = &secret
	return nil
}
