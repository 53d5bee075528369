package client

import (
	"time"

	"github.com/tomz197/strikers/internal/input"
	"github.com/tomz197/strikers/internal/loop/session"
)

// GameState represents the current screen of a client.
type GameState int

const (
	GameStateMenu     GameState = iota // Title screen
	GameStatePlaying                   // A session in progress
	GameStateEnding                    // Showing the final frame of a session
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds the per-connection state around the running session.
type ClientState struct {
	Input         input.Input
	GameState     GameState
	prevGameState GameState
	Outcome       session.Outcome // Result of the last finished session
	Played        int             // Sessions started on this connection
	Running       bool            // Client loop running
	delta         time.Duration   // Frame delta time
	endTimer      time.Duration   // Remaining pause on the final frame
	shutdownTimer float64         // Countdown before auto-disconnect on shutdown
	isInactive    bool            // Whether the inactivity warning is shown
	wasInactive   bool
}

// NewClientState creates a client sitting on the title screen.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateMenu,
		Running:   true,
	}
}
