// Package spectate streams snapshots of running sessions to WebSocket
// viewers. The feed is read-only: nothing a viewer sends reaches a session.
package spectate

import (
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/strikers/internal/loop/server"
	"github.com/tomz197/strikers/internal/loop/session"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 54 * time.Second // Must be less than pongWait
	maxReadBytes = 512
)

// DefaultInterval is how often viewers are sent fresh snapshots.
const DefaultInterval = time.Second / 20

// Source provides the sessions to spectate.
type Source interface {
	Sessions() []server.SessionInfo
	Snapshot(id string) (session.Snapshot, uint64, bool)
}

// Frame is one msgpack message of the feed.
type Frame struct {
	SessionID string           `msgpack:"session"`
	Snapshot  session.Snapshot `msgpack:"snapshot"`
}

// Hub serves the spectator feed.
type Hub struct {
	src      Source
	logger   *log.Logger
	interval time.Duration
	upgrader websocket.Upgrader

	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool
}

// NewHub creates a hub reading from src. A non-positive interval means
// DefaultInterval.
func NewHub(src Source, logger *log.Logger, interval time.Duration) *Hub {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Hub{
		src:      src,
		logger:   logger,
		interval: interval,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the HTTP routes of the hub: /ws and /sessions.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", h.handleWebSocket)
	mux.HandleFunc("GET /sessions", h.handleSessions)
	return mux
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close disconnects every viewer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for conn := range h.conns {
		_ = conn.Close()
	}
	clear(h.conns)
}

func (h *Hub) handleSessions(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(h.src.Sessions()); err != nil {
		h.logger.Warn("Listing sessions failed", "err", err)
	}
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	only := r.URL.Query().Get("session")
	if only != "" && !h.known(only) {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "err", err)
		return
	}
	if !h.add(conn) {
		_ = conn.Close()
		return
	}
	h.logger.Info("Spectator joined", "remote", r.RemoteAddr, "session", only)

	done := make(chan struct{})
	go h.readPump(conn, done)
	h.writePump(conn, only, done)

	h.remove(conn)
	h.logger.Info("Spectator left", "remote", r.RemoteAddr)
}

func (h *Hub) known(id string) bool {
	for _, info := range h.src.Sessions() {
		if info.ID == id {
			return true
		}
	}
	return false
}

func (h *Hub) add(conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.conns[conn] = struct{}{}
	return true
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// readPump discards viewer messages, keeping the pong deadline alive, and
// closes done when the connection ends.
func (h *Hub) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxReadBytes)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("Spectator read error", "err", err)
			}
			return
		}
	}
}

// writePump sends every session snapshot that changed since the previous
// tick. With only set, other sessions are skipped, and the feed ends once
// that session is gone.
func (h *Hub) writePump(conn *websocket.Conn, only string, done <-chan struct{}) {
	ticker := time.NewTicker(h.interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	sent := make(map[string]uint64)
	for {
		select {
		case <-done:
			return

		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-ticker.C:
			if only != "" {
				if _, _, ok := h.src.Snapshot(only); !ok && !h.known(only) {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"),
						time.Now().Add(writeWait))
					return
				}
			}
			if err := h.sendChanged(conn, only, sent); err != nil {
				h.logger.Debug("Spectator write failed", "err", err)
				return
			}
		}
	}
}

func (h *Hub) sendChanged(conn *websocket.Conn, only string, sent map[string]uint64) error {
	ids := []string{only}
	if only == "" {
		ids = ids[:0]
		for _, info := range h.src.Sessions() {
			ids = append(ids, info.ID)
		}
		for id := range sent {
			if !slices.Contains(ids, id) {
				delete(sent, id)
			}
		}
	}

	for _, id := range ids {
		snap, version, ok := h.src.Snapshot(id)
		if !ok || sent[id] == version {
			continue
		}
		data, err := msgpack.Marshal(&Frame{SessionID: id, Snapshot: snap})
		if err != nil {
			return err
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			return err
		}
		sent[id] = version
	}
	return nil
}
