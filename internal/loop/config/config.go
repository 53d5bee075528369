// Package config holds the fixed presentation parameters of the terminal
// frontends. Gameplay tuning lives in internal/config.
package config

import "time"

// Render area limits in terminal cells. The field is square in logical
// units; with half-block sub-pixels a square needs twice as many columns
// as rows.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 100
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Pause on the last frame of a finished session before returning to the menu.
const EndPause = time.Second

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity, menu only: a session in play is never cut off.
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// MaxUsernameLength is the maximum display length for usernames.
const MaxUsernameLength = 16
