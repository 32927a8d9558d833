package server

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"

	"github.com/itswill307/TheNewSuzerainProject/assets"
)

// peer is one attached connection plus its write lock; gorilla/websocket
// allows only one concurrent writer per conn.
type peer struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (p *peer) sendJSON(msg controlMsg) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.WriteJSON(msg)
}

func (p *peer) forward(msgType int, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.WriteMessage(msgType, data)
}

// Session is one hosted game waiting for (or holding) a guest. The session
// mutex guards the peer slots, which host and join handlers touch from
// separate goroutines.
type Session struct {
	Code string

	mu    sync.Mutex
	host  *peer
	guest *peer
}

func (s *Session) setHost(conn *websocket.Conn) *peer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.host = &peer{conn: conn}
	return s.host
}

// attachGuest claims the guest slot; ok reports whether it was still free.
func (s *Session) attachGuest(conn *websocket.Conn) (*peer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.guest != nil {
		return nil, false
	}
	s.guest = &peer{conn: conn}
	return s.guest, true
}

func (s *Session) detachGuest() {
	s.mu.Lock()
	s.guest = nil
	s.mu.Unlock()
}

func (s *Session) full() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guest != nil
}

// peerOf returns the current counterpart of one side, or nil when that
// side has no connection attached.
func (s *Session) peerOf(fromGuest bool) *peer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fromGuest {
		return s.host
	}
	return s.guest
}

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	StatusHTML []byte

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewServerContext initializes the relay state and prepares the embedded
// status page, minified once up front.
func NewServerContext() *ServerContext {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)

	page, err := m.Bytes("text/html", assets.StatusHTML)
	if err != nil {
		log.Warn().Err(err).Msg("Status page minification failed, serving raw")
		page = assets.StatusHTML
	}

	return &ServerContext{
		StatusHTML: page,
		sessions:   make(map[string]*Session),
	}
}

// newCode derives a short join code and registers an empty session under
// it. Eight hex characters keeps codes easy to read over voice while the
// uniqueness check handles collisions.
func (s *ServerContext) newCode() string {
	for {
		code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
		s.mu.Lock()
		if _, exists := s.sessions[code]; !exists {
			s.sessions[code] = &Session{Code: code}
			s.mu.Unlock()
			return code
		}
		s.mu.Unlock()
	}
}

func (s *ServerContext) session(code string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[code]
}

func (s *ServerContext) drop(code string) {
	s.mu.Lock()
	delete(s.sessions, code)
	s.mu.Unlock()
}

// SessionCount reports the number of live sessions.
func (s *ServerContext) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
