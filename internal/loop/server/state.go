package server

import "time"

// SessionInfo describes one live session for listings.
type SessionInfo struct {
	ID       string    `json:"id"`
	Username string    `json:"username,omitempty"`
	Started  time.Time `json:"started"`
	Playing  bool      `json:"playing"` // A snapshot has been published
	Kills    int       `json:"kills"`
	BossHP   int       `json:"boss_hp"`
	Outcome  string    `json:"outcome,omitempty"`
}
