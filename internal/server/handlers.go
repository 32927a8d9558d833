// Package server implements the session relay: it pairs a hosting game
// with a joining one by code and forwards frames between the two. No
// protocol beyond pairing lives here.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// controlMsg is the tiny envelope the relay itself speaks; everything else
// passes through opaque.
type controlMsg struct {
	Type string `json:"type"`
	Code string `json:"code,omitempty"`
}

// HandleStatus serves the relay status page.
func (s *ServerContext) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.StatusHTML))
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.StatusHTML)
}

// HandleSessions reports live session count as JSON.
func (s *ServerContext) HandleSessions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int{"sessions": s.SessionCount()})
}

// HandleHost upgrades the host connection, hands it a join code, and
// forwards its frames to the guest for as long as it stays connected. The
// session dies with the host.
func (s *ServerContext) HandleHost(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Host upgrade failed")
		return
	}

	code := s.newCode()
	sess := s.session(code)
	host := sess.setHost(conn)
	defer func() {
		s.drop(code)
		_ = conn.Close()
		log.Info().Str("code", code).Msg("Session closed")
	}()

	if err := host.sendJSON(controlMsg{Type: "code", Code: code}); err != nil {
		log.Error().Err(err).Str("code", code).Msg("Failed to send join code")
		return
	}

	log.Info().Str("code", code).Str("ip", r.RemoteAddr).Msg("Session hosted")
	pump(conn, sess, false)
}

// HandleJoin attaches a guest to an existing session by code and forwards
// its frames to the host. The occupancy check before the upgrade is only a
// courtesy for a plain HTTP error; the binding claim happens atomically
// after the upgrade, so two racing joins cannot both take the slot.
func (s *ServerContext) HandleJoin(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	sess := s.session(code)
	if sess == nil || sess.peerOf(true) == nil {
		http.Error(w, "unknown session code", http.StatusNotFound)
		return
	}
	if sess.full() {
		http.Error(w, "session is full", http.StatusConflict)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Guest upgrade failed")
		return
	}

	guest, ok := sess.attachGuest(conn)
	if !ok {
		// Lost the race for the slot after the upgrade.
		_ = conn.WriteJSON(controlMsg{Type: "full"})
		_ = conn.Close()
		return
	}
	defer func() {
		sess.detachGuest()
		_ = conn.Close()
	}()

	if err := guest.sendJSON(controlMsg{Type: "joined", Code: code}); err != nil {
		return
	}
	notify(sess, true, controlMsg{Type: "peer_joined"})

	log.Info().Str("code", code).Str("ip", r.RemoteAddr).Msg("Guest joined")
	pump(conn, sess, true)
	notify(sess, true, controlMsg{Type: "peer_left"})
}

// pump reads frames from one side and forwards them verbatim to the other
// until the connection drops. The counterpart is re-read under the session
// lock on every frame since it can attach or detach at any time.
func pump(conn *websocket.Conn, sess *Session, fromGuest bool) {
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		peer := sess.peerOf(fromGuest)
		if peer == nil {
			continue
		}
		if err := peer.forward(msgType, data); err != nil {
			log.Debug().Err(err).Str("code", sess.Code).Msg("Peer write failed")
		}
	}
}

func notify(sess *Session, fromGuest bool, msg controlMsg) {
	if peer := sess.peerOf(fromGuest); peer != nil {
		_ = peer.sendJSON(msg)
	}
}
