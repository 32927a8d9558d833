// Package session is the thin multiplayer bootstrap: it lets a game host a
// session on the relay and hand out a join code, or join one by code. It
// carries opaque frames only; game protocol is out of scope here.
package session

import (
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ErrOffline is returned by Host and Join when the client runs in offline
// mode.
var ErrOffline = errors.New("session: offline mode")

// Client wraps one relay connection. The zero value is unusable; build
// with New. Offline clients satisfy EnsureReady but refuse to host or
// join, which lets single-player share the same startup path.
type Client struct {
	relayURL string
	offline  bool

	once  sync.Once
	ready error

	mu   sync.Mutex
	conn *websocket.Conn
	code string
}

// New builds a client for the given relay base URL, e.g.
// "ws://localhost:8080". An empty URL forces offline mode.
func New(relayURL string, offline bool) *Client {
	if relayURL == "" {
		offline = true
	}
	return &Client{relayURL: relayURL, offline: offline}
}

// EnsureReady prepares the networking layer. It is idempotent: the first
// call validates the relay URL, later calls return the remembered result.
func (c *Client) EnsureReady() error {
	c.once.Do(func() {
		if c.offline {
			log.Debug().Msg("Session layer ready (offline)")
			return
		}
		u, err := url.Parse(c.relayURL)
		if err != nil {
			c.ready = fmt.Errorf("session: bad relay url: %w", err)
			return
		}
		if u.Scheme != "ws" && u.Scheme != "wss" {
			c.ready = fmt.Errorf("session: relay url must be ws:// or wss://, got %q", u.Scheme)
			return
		}
		log.Debug().Str("relay", c.relayURL).Msg("Session layer ready")
	})
	return c.ready
}

// Host creates a session on the relay and returns its join code.
func (c *Client) Host() (string, error) {
	if err := c.EnsureReady(); err != nil {
		return "", err
	}
	if c.offline {
		return "", ErrOffline
	}

	conn, _, err := websocket.DefaultDialer.Dial(c.relayURL+"/ws/host", nil)
	if err != nil {
		return "", fmt.Errorf("session: dial relay: %w", err)
	}

	var msg struct {
		Type string `json:"type"`
		Code string `json:"code"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		_ = conn.Close()
		return "", fmt.Errorf("session: read join code: %w", err)
	}
	if msg.Type != "code" || msg.Code == "" {
		_ = conn.Close()
		return "", fmt.Errorf("session: unexpected relay greeting %q", msg.Type)
	}

	c.mu.Lock()
	c.conn = conn
	c.code = msg.Code
	c.mu.Unlock()

	log.Info().Str("code", msg.Code).Msg("Session hosted")
	return msg.Code, nil
}

// Join attaches to an existing session by code.
func (c *Client) Join(code string) error {
	if err := c.EnsureReady(); err != nil {
		return err
	}
	if c.offline {
		return ErrOffline
	}

	u := fmt.Sprintf("%s/ws/join?code=%s", c.relayURL, url.QueryEscape(code))
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		return fmt.Errorf("session: join %s: %w", code, err)
	}

	var msg struct {
		Type string `json:"type"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		_ = conn.Close()
		return fmt.Errorf("session: join handshake: %w", err)
	}
	if msg.Type != "joined" {
		_ = conn.Close()
		return fmt.Errorf("session: unexpected join reply %q", msg.Type)
	}

	c.mu.Lock()
	c.conn = conn
	c.code = code
	c.mu.Unlock()

	log.Info().Str("code", code).Msg("Session joined")
	return nil
}

// Code returns the active session's join code, empty when disconnected.
func (c *Client) Code() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.code
}

// Send writes a JSON frame to the peer through the relay.
func (c *Client) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return errors.New("session: not connected")
	}
	return c.conn.WriteJSON(v)
}

// Receive blocks for the next raw frame from the peer.
func (c *Client) Receive() ([]byte, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return nil, errors.New("session: not connected")
	}
	_, data, err := conn.ReadMessage()
	return data, err
}

// Close tears down the relay connection, if any.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
		c.code = ""
	}
}
