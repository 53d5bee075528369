// Package client runs one terminal connection: the title menu, the sessions
// played from it, and their rendering.
package client

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tomz197/strikers/internal/audio"
	settings "github.com/tomz197/strikers/internal/config"
	"github.com/tomz197/strikers/internal/draw"
	"github.com/tomz197/strikers/internal/input"
	"github.com/tomz197/strikers/internal/loop/config"
	"github.com/tomz197/strikers/internal/loop/server"
	"github.com/tomz197/strikers/internal/loop/session"
	"github.com/tomz197/strikers/internal/object"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	translator   input.Translator
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	tuning       settings.Tuning
	cache        *object.SpriteCache
	sound        Sound
	logger       *log.Logger
	styles       styles
	rng          *rand.Rand

	session   *session.Session
	snapshot  session.Snapshot // Latest frame of the session
	particles *object.Particles
	shapes    map[object.SpriteID][]draw.Point
	placeBuf  []draw.Point
}

// ClientOptions configures the client. Zero fields get defaults.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Tuning       settings.Tuning     // DefaultTuning when zero
	Cache        *object.SpriteCache // Shared mask cache; a private one when nil
	Sound        Sound               // Silent when nil
	Logger       *log.Logger         // log.Default() when nil
	Profile      termenv.Profile     // Colour profile of the terminal
}

// NewClient creates a new client registered with the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	tuning := opts.Tuning
	if tuning.ViewWidth == 0 {
		tuning = settings.DefaultTuning()
	}
	cache := opts.Cache
	if cache == nil {
		cache = object.NewSpriteCache()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	sound := opts.Sound
	if sound == nil {
		sound = audio.New(false, logger)
	}

	username := opts.Username
	if len(username) > config.MaxUsernameLength {
		username = username[:config.MaxUsernameLength]
	}
	handle := gs.RegisterClient(username)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight,
		float64(tuning.ViewWidth), float64(tuning.ViewHeight), newPalette(opts.Profile))
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		username:     username,
		termSizeFunc: termSizeFunc,
		tuning:       tuning,
		cache:        cache,
		sound:        sound,
		logger:       logger.With("client", handle.ID),
		styles:       newStyles(w, opts.Profile),
		rng:          rng,
		particles:    object.NewParticles(rng),
		shapes:       make(map[object.SpriteID][]draw.Point),
	}
}

// ID returns the session registry ID of this client.
func (c *Client) ID() string { return c.handle.ID }

// Run starts the client loop. Blocks until the user quits from the menu, the
// input ends, or the server shuts down.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	defer c.server.UnregisterClient(c.handle.ID)
	defer c.sound.StopMusic()

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		switch c.state.GameState {
		case GameStateMenu:
			c.updateMenuState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateEnding:
			c.updateEndingState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads this frame's input. Inactivity only counts on the menu.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	idle := time.Since(c.lastInput).Seconds()
	switch {
	case c.state.Input.Pressed > 0 || c.state.GameState != GameStateMenu:
		c.lastInput = time.Now()
		c.state.isInactive = false
	case idle > config.InactivityDisconnectUser:
		c.logger.Info("Disconnecting inactive client")
		c.state.Running = false
	case idle > config.InactivityWarnUser:
		c.state.isInactive = true
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			if event.Type == server.EventServerShutdown && c.state.GameState != GameStateShutdown {
				c.sound.StopMusic()
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.Clear()
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize fits the square field into the terminal and computes the
// centering offset. Half-block cells are twice as tall as wide, so a square
// takes twice as many columns as rows.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderHeight = max(min(termHeight, config.MaxTermHeight, termWidth/2), 1)
	renderWidth = min(renderHeight*2, config.MaxTermWidth)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

// updateMenuState handles the title screen.
func (c *Client) updateMenuState() {
	switch {
	case c.state.Input.Quit:
		c.state.Running = false
	case c.state.Input.Enter:
		c.startGame()
	}
}

// startGame starts a fresh session.
func (c *Client) startGame() {
	c.inputStream.Reset()
	c.translator.Reset()
	c.particles.Clear()

	c.session = session.New(c.tuning, c.cache, session.Options{
		Effects: frameEffects{particles: c.particles, sound: c.sound},
		Rand:    rand.New(rand.NewSource(c.rng.Int63())),
	})
	c.snapshot = c.session.Snapshot()
	c.server.Publish(c.handle.ID, c.snapshot)
	c.sound.StartMusic()

	c.state.Played++
	c.state.GameState = GameStatePlaying
	c.logger.Info("Session started", "user", c.username, "round", c.state.Played)
}

// updatePlayingState advances the session by one frame.
func (c *Client) updatePlayingState() {
	if c.state.Input.Quit {
		c.sound.StopMusic()
		c.logger.Info("Session abandoned", "frame", c.session.Stats().Frame)
		c.state.Outcome = session.OutcomeNone
		c.toMenu()
		return
	}

	outcome := c.session.Step(c.translator.Intents(c.state.Input))
	c.particles.Update(c.state.delta)
	c.snapshot = c.session.Snapshot()
	c.server.Publish(c.handle.ID, c.snapshot)

	if outcome.Terminal() {
		c.finish(outcome)
	}
}

// finish stops the music, plays the outcome's jingle and holds the final
// frame for a moment.
func (c *Client) finish(outcome session.Outcome) {
	c.sound.StopMusic()
	if outcome == session.OutcomeVictory {
		c.sound.GameClear()
	} else {
		c.sound.GameOver()
	}

	stats := c.session.Stats()
	c.logger.Info("Session ended",
		"outcome", outcome,
		"kills", stats.Kills,
		"missed", stats.Missed,
		"elapsed", c.session.Elapsed(),
	)

	c.state.Outcome = outcome
	c.state.endTimer = config.EndPause
	c.state.GameState = GameStateEnding
}

// updateEndingState counts down the pause after a finished session.
func (c *Client) updateEndingState() {
	c.particles.Update(c.state.delta)
	c.state.endTimer -= c.state.delta
	if c.state.endTimer <= 0 {
		c.toMenu()
	}
}

func (c *Client) toMenu() {
	c.inputStream.Reset()
	c.translator.Reset()
	c.particles.Clear()
	c.session = nil
	c.state.GameState = GameStateMenu
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 || c.state.Input.Quit {
		c.state.Running = false
	}
}
