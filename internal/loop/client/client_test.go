package client

import (
	"bufio"
	"bytes"
	"io"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/strikers/internal/loop/config"
	"github.com/tomz197/strikers/internal/loop/server"
	"github.com/tomz197/strikers/internal/loop/session"
	"github.com/tomz197/strikers/internal/object"
)

// recorder is a Sound that counts calls.
type recorder struct {
	mu     sync.Mutex
	calls  map[string]int
	blasts [][4]int
}

func newRecorder() *recorder { return &recorder{calls: make(map[string]int)} }

func (r *recorder) hit(name string) {
	r.mu.Lock()
	r.calls[name]++
	r.mu.Unlock()
}

func (r *recorder) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[name]
}

func (r *recorder) Explosion(x, y, w, h int) {
	r.mu.Lock()
	r.blasts = append(r.blasts, [4]int{x, y, w, h})
	r.mu.Unlock()
	r.hit("explosion")
}
func (r *recorder) ItemPickup() { r.hit("pickup") }
func (r *recorder) Shot(int)    { r.hit("shot") }
func (r *recorder) StartMusic() { r.hit("start") }
func (r *recorder) StopMusic()  { r.hit("stop") }
func (r *recorder) GameOver()   { r.hit("over") }
func (r *recorder) GameClear()  { r.hit("clear") }

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

// newTestClient builds a client whose input is a pipe the test writes to.
func newTestClient(t *testing.T, out io.Writer) (*Client, *server.Server, *recorder, *io.PipeWriter) {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	reg := server.NewServer()
	rec := newRecorder()
	c := NewClient(reg, bufio.NewReader(pr), out, ClientOptions{
		TermSizeFunc: fixedSize(80, 24),
		Username:     "alice",
		Sound:        rec,
		Logger:       log.New(io.Discard),
		Profile:      termenv.Ascii,
	})
	return c, reg, rec, pw
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		termW, termH             int
		renderW, renderH, oc, or int
	}{
		{80, 24, 48, 24, 16, 0},
		{40, 40, 40, 20, 0, 10},
		{500, 300, 200, 100, 150, 100},
		{1, 1, 2, 1, 0, 0},
	}
	for _, tt := range tests {
		w, h, oc, or := clampTermSize(tt.termW, tt.termH)
		assert.Equal(t, []int{tt.renderW, tt.renderH, tt.oc, tt.or}, []int{w, h, oc, or}, "%dx%d", tt.termW, tt.termH)
	}
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0:00:00", formatElapsed(0))
	assert.Equal(t, "0:01:05", formatElapsed(65))
	assert.Equal(t, "2:00:01", formatElapsed(7201))
	assert.Equal(t, "0:00:00", formatElapsed(-3))
}

func TestSpriteColors(t *testing.T) {
	assert.NotEqual(t, spriteColor(object.SpritePlayer1), spriteColor(object.SpritePlayer2))
	assert.Equal(t, colorBullet, spriteColor(object.SpriteBullet3))
	assert.Equal(t, colorEnemyBullet, spriteColor(object.SpriteEnemyBullet))
	assert.Equal(t, len(paletteHex), newPalette(termenv.ANSI256).Len())
}

func TestEffectsFanOut(t *testing.T) {
	rec := newRecorder()
	particles := object.NewParticles(rand.New(rand.NewSource(1)))
	fx := frameEffects{particles: particles, sound: rec}

	fx.Explosion(10, 20, 40, 40)
	fx.ItemPickup()
	fx.Shot(1)

	assert.Positive(t, particles.Len())
	assert.Equal(t, [][4]int{{10, 20, 40, 40}}, rec.blasts)
	assert.Equal(t, 1, rec.count("pickup"))
	assert.Equal(t, 1, rec.count("shot"))
}

func TestRegistersOnCreate(t *testing.T) {
	c, reg, _, _ := newTestClient(t, io.Discard)
	assert.Equal(t, 1, reg.Len())
	assert.NotEmpty(t, c.ID())
	assert.Equal(t, 48, c.canvas.TerminalWidth())
}

func TestSessionLifecycle(t *testing.T) {
	c, reg, rec, _ := newTestClient(t, io.Discard)

	c.startGame()
	require.Equal(t, GameStatePlaying, c.state.GameState)
	assert.Equal(t, 1, rec.count("start"))
	_, _, ok := reg.Snapshot(c.ID())
	assert.True(t, ok, "first frame published")

	c.state.delta = config.ClientTargetFrameTime
	c.updatePlayingState()
	assert.Equal(t, 1, c.session.Stats().Frame)

	c.finish(session.OutcomeVictory)
	assert.Equal(t, GameStateEnding, c.state.GameState)
	assert.Equal(t, 1, rec.count("stop"))
	assert.Equal(t, 1, rec.count("clear"))

	c.state.delta = config.EndPause / 2
	c.updateEndingState()
	assert.Equal(t, GameStateEnding, c.state.GameState)
	c.updateEndingState()
	assert.Equal(t, GameStateMenu, c.state.GameState)
	assert.Nil(t, c.session)

	c.startGame()
	c.finish(session.OutcomeDefeat)
	assert.Equal(t, 1, rec.count("over"))
	assert.Equal(t, 2, c.state.Played)
}

func TestQuitWhilePlayingReturnsToMenu(t *testing.T) {
	c, _, rec, _ := newTestClient(t, io.Discard)
	c.startGame()
	c.state.Input.Quit = true
	c.updatePlayingState()

	assert.Equal(t, GameStateMenu, c.state.GameState)
	assert.Equal(t, session.OutcomeNone, c.state.Outcome)
	assert.Equal(t, 1, rec.count("stop"))
	assert.True(t, c.state.Running, "quit from a session keeps the client")

	c.updateMenuState()
	assert.False(t, c.state.Running, "quit from the menu ends it")
}

func TestShutdownEvent(t *testing.T) {
	c, _, _, _ := newTestClient(t, io.Discard)
	c.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	c.processServerEvents()
	require.Equal(t, GameStateShutdown, c.state.GameState)

	c.state.delta = time.Second
	c.updateShutdownState()
	assert.True(t, c.state.Running)

	c.state.delta = config.ShutdownDisplaySeconds * time.Second
	c.updateShutdownState()
	assert.False(t, c.state.Running)
}

func TestInactivityOnMenuOnly(t *testing.T) {
	c, _, _, _ := newTestClient(t, io.Discard)

	c.lastInput = time.Now().Add(-(config.InactivityWarnUser + 1) * time.Second)
	c.processInput()
	assert.True(t, c.state.isInactive)
	assert.True(t, c.state.Running)

	c.lastInput = time.Now().Add(-(config.InactivityDisconnectUser + 1) * time.Second)
	c.processInput()
	assert.False(t, c.state.Running)

	c.state.Running = true
	c.state.GameState = GameStatePlaying
	c.lastInput = time.Now().Add(-(config.InactivityDisconnectUser + 1) * time.Second)
	c.processInput()
	assert.True(t, c.state.Running, "nobody is cut off mid-session")
	assert.False(t, c.state.isInactive)
}

func TestDrawFrames(t *testing.T) {
	var out bytes.Buffer
	c, _, _, _ := newTestClient(t, &out)

	require.NoError(t, c.drawFrame())
	menu := out.String()
	assert.Contains(t, menu, "STRIKERS 2022")
	assert.Contains(t, menu, "PRESS ENTER KEY")
	assert.Contains(t, menu, "TO START THE GAME.")

	out.Reset()
	c.startGame()
	require.NoError(t, c.drawFrame())
	play := out.String()
	assert.Contains(t, play, "KILL 0")
	assert.Contains(t, play, "BOSS HP 5000")
	assert.Contains(t, play, "TIME 0:00:00")
	assert.Contains(t, play, string(rune(0x2588)), "sprites drawn with blocks")

	out.Reset()
	c.finish(session.OutcomeDefeat)
	require.NoError(t, c.drawFrame())
	assert.Contains(t, out.String(), "GAME OVER")
}

func TestRunQuitsFromMenu(t *testing.T) {
	var out bytes.Buffer
	c, reg, rec, pw := newTestClient(t, &out)

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	_, err := pw.Write([]byte("\r"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return rec.count("start") == 1 }, 2*time.Second, 5*time.Millisecond)

	_, err = pw.Write([]byte("q"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return rec.count("stop") == 1 }, 2*time.Second, 5*time.Millisecond)

	_, err = pw.Write([]byte("q"))
	require.NoError(t, err)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("client did not quit")
	}

	assert.Zero(t, reg.Len(), "unregistered on exit")
	assert.True(t, strings.HasSuffix(out.String(), "\033[H\033[2J\033[?25h"), "screen cleared and cursor restored")
}
