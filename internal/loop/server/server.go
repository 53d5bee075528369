// Package server keeps track of the game sessions running in this process:
// who is playing, the latest snapshot of each session, and shutdown notices.
package server

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/tomz197/strikers/internal/loop/session"
)

// GameServer is the interface clients use to announce their sessions.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(id string)
	Publish(id string, snap session.Snapshot)
}

// Server is the registry of live sessions. It is safe for concurrent use.
type Server struct {
	mu      sync.RWMutex
	clients map[string]*ClientHandle
	newID   func() string
	now     func() time.Time
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents one connected client and its session.
type ClientHandle struct {
	ID       string
	Username string
	Started  time.Time
	EventsCh chan ClientEvent // Events sent to the client (shutdown)

	snapshot atomic.Pointer[session.Snapshot]
	version  atomic.Uint64 // Bumped on every Publish
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// NewServer creates an empty registry.
func NewServer() *Server {
	return &Server{
		clients: make(map[string]*ClientHandle),
		newID:   func() string { return uuid.NewString() },
		now:     time.Now,
	}
}

// RegisterClient registers a new client and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	handle := &ClientHandle{
		ID:       s.newID(),
		Username: username,
		Started:  s.now(),
		EventsCh: make(chan ClientEvent, 4),
	}

	s.mu.Lock()
	s.clients[handle.ID] = handle
	s.mu.Unlock()
	return handle
}

// UnregisterClient removes a client. Unknown IDs are ignored.
func (s *Server) UnregisterClient(id string) {
	s.mu.Lock()
	delete(s.clients, id)
	s.mu.Unlock()
}

// Publish stores the latest snapshot of a client's session.
func (s *Server) Publish(id string, snap session.Snapshot) {
	s.mu.RLock()
	handle, ok := s.clients[id]
	s.mu.RUnlock()
	if !ok {
		return
	}
	handle.snapshot.Store(&snap)
	handle.version.Add(1)
}

// Snapshot returns the latest snapshot of a session and its version, which
// changes whenever a newer snapshot is published.
func (s *Server) Snapshot(id string) (session.Snapshot, uint64, bool) {
	s.mu.RLock()
	handle, ok := s.clients[id]
	s.mu.RUnlock()
	if !ok {
		return session.Snapshot{}, 0, false
	}
	snap := handle.snapshot.Load()
	if snap == nil {
		return session.Snapshot{}, 0, false
	}
	return *snap, handle.version.Load(), true
}

// Sessions lists the live sessions, oldest first.
func (s *Server) Sessions() []SessionInfo {
	s.mu.RLock()
	infos := make([]SessionInfo, 0, len(s.clients))
	for _, h := range s.clients {
		info := SessionInfo{ID: h.ID, Username: h.Username, Started: h.Started}
		if snap := h.snapshot.Load(); snap != nil {
			info.Playing = true
			info.Kills = snap.Stats.Kills
			info.BossHP = snap.BossHP
			info.Outcome = snap.Outcome.String()
		}
		infos = append(infos, info)
	}
	s.mu.RUnlock()

	slices.SortFunc(infos, func(a, b SessionInfo) int {
		return cmp.Or(a.Started.Compare(b.Started), cmp.Compare(a.ID, b.ID))
	})
	return infos
}

// Len returns the number of registered clients.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown notifies all connected clients and waits for them to
// unregister, up to the given timeout.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.Len() == 0 {
			return
		}
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}
