// Package proxy describes the optional [proxy] table and builds dialers for it.
package proxy

import (
	"bufio"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	netproxy "golang.org/x/net/proxy"
)

// Kind is the proxy protocol.
type Kind string

const (
	KindHTTP   Kind = "http"
	KindSOCKS5 Kind = "socks5"
)

// ErrUnsupportedKind is returned for a type other than http or socks5.
var ErrUnsupportedKind = errors.New("unsupported proxy type")

func init() {
	netproxy.RegisterDialerType(string(KindHTTP), newHTTPDialer)
}

// Proxy is the [proxy] table.
type Proxy struct {
	Kind     Kind    `toml:"type"`
	Host     string  `toml:"host"`
	Port     uint16  `toml:"port"`
	Username *string `toml:"username"`
	Password *string `toml:"password"`
}

// Validate checks the proxy is usable.
func (p Proxy) Validate() error {
	switch p.Kind {
	case KindHTTP, KindSOCKS5:
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedKind, p.Kind)
	}
	if strings.TrimSpace(p.Host) == "" {
		return fmt.Errorf("proxy: missing field host")
	}
	if p.Port == 0 {
		return fmt.Errorf("proxy: missing field port")
	}
	if p.Password != nil && p.Username == nil {
		return fmt.Errorf("proxy: password requires username")
	}
	return nil
}

// Address returns host:port.
func (p Proxy) Address() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(int(p.Port)))
}

// URL returns the proxy as a URL, credentials included.
func (p Proxy) URL() *url.URL {
	u := &url.URL{Scheme: string(p.Kind), Host: p.Address()}
	if p.Username != nil {
		if p.Password != nil {
			u.User = url.UserPassword(*p.Username, *p.Password)
		} else {
			u.User = url.User(*p.Username)
		}
	}
	return u
}

// Dialer returns a dialer that tunnels through the proxy. A nil forward dials
// the proxy directly.
func (p Proxy) Dialer(forward netproxy.Dialer) (netproxy.Dialer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if forward == nil {
		forward = netproxy.Direct
	}
	d, err := netproxy.FromURL(p.URL(), forward)
	if err != nil {
		return nil, fmt.Errorf("build %s dialer: %w", p.Kind, err)
	}
	return d, nil
}

// httpDialer tunnels connections with HTTP CONNECT.
type httpDialer struct {
	addr    string
	user    *url.Userinfo
	forward netproxy.Dialer
}

func newHTTPDialer(u *url.URL, forward netproxy.Dialer) (netproxy.Dialer, error) {
	return &httpDialer{addr: u.Host, user: u.User, forward: forward}, nil
}

func (d *httpDialer) Dial(network, addr string) (net.Conn, error) {
	conn, err := d.forward.Dial(network, d.addr)
	if err != nil {
		return nil, fmt.Errorf("dial proxy: %w", err)
	}

	req := &http.Request{
		Method: http.MethodConnect,
		URL:    &url.URL{Opaque: addr},
		Host:   addr,
		Header: make(http.Header),
	}
	if d.user != nil {
		password, _ := d.user.Password()
		token := base64.StdEncoding.EncodeToString([]byte(d.user.Username() + ":" + password))
		req.Header.Set("Proxy-Authorization", "Basic "+token)
	}
	if err := req.Write(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("write connect: %w", err)
	}

	br := bufio.NewReader(conn)
	resp, err := http.ReadResponse(br, req)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("read connect response: %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_ = conn.Close()
		return nil, fmt.Errorf("proxy refused connect: %s", resp.Status)
	}

	if br.Buffered() > 0 {
		return &bufferedConn{Conn: conn, r: br}, nil
	}
	return conn, nil
}

// bufferedConn drains bytes read past the CONNECT response before reading
// from the connection again.
type bufferedConn struct {
	net.Conn
	r *bufio.Reader
}

func (c *bufferedConn) Read(b []byte) (int, error) {
	return c.r.Read(b)
}
