package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/strikers/internal/object"
)

// newTestStream returns a stream without a reader goroutine and a clock the
// test controls.
func newTestStream() (*Stream, *time.Time) {
	clock := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &Stream{ch: make(chan byte, 128)}
	s.now = func() time.Time { return clock }
	return s, &clock
}

func send(s *Stream, keys string) {
	for i := 0; i < len(keys); i++ {
		s.ch <- keys[i]
	}
}

func TestKeyBindings(t *testing.T) {
	s, _ := newTestStream()
	send(s, "\x1b[A\x1b[D0ds ")

	in := ReadInput(s)
	assert.Equal(t, 10, in.Pressed)
	assert.Equal(t, Keys{Up: true, Left: true, Attack: true}, in.Players[0])
	assert.Equal(t, Keys{Right: true, Down: true, Attack: true}, in.Players[1])
	assert.False(t, in.Quit)
	assert.False(t, in.Enter)
}

func TestQuitAndEnterAreTaps(t *testing.T) {
	s, clock := newTestStream()
	send(s, "q\r")
	in := ReadInput(s)
	assert.True(t, in.Quit)
	assert.True(t, in.Enter)

	*clock = clock.Add(50 * time.Millisecond)
	in = ReadInput(s)
	assert.False(t, in.Quit)
	assert.False(t, in.Enter)

	send(s, "\x03")
	assert.True(t, ReadInput(s).Quit, "ctrl-c quits")
}

func TestHoldBridgesRepeatDelay(t *testing.T) {
	s, clock := newTestStream()
	send(s, "a")
	require.True(t, ReadInput(s).Players[1].Left)

	*clock = clock.Add(400 * time.Millisecond)
	assert.True(t, ReadInput(s).Players[1].Left, "waiting for auto-repeat")

	send(s, "a")
	ReadInput(s)
	*clock = clock.Add(60 * time.Millisecond)
	assert.True(t, ReadInput(s).Players[1].Left)

	*clock = clock.Add(60 * time.Millisecond)
	assert.False(t, ReadInput(s).Players[1].Left, "repeats stopped: released")
}

func TestSinglePressReleases(t *testing.T) {
	s, clock := newTestStream()
	send(s, "0")
	ReadInput(s)
	*clock = clock.Add(initialHold)
	assert.False(t, ReadInput(s).Players[0].Attack)
}

func TestResetForgetsPresses(t *testing.T) {
	s, _ := newTestStream()
	send(s, "w\r")
	ReadInput(s)
	s.Reset()
	in := ReadInput(s)
	assert.False(t, in.Players[1].Up)
	assert.False(t, in.Enter)
}

func TestClosedStreamQuits(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("")))
	require.Eventually(t, func() bool { return ReadInput(s).Quit }, time.Second, time.Millisecond)
}

func TestTranslatorEdges(t *testing.T) {
	var tr Translator

	out := tr.Intents(Input{Players: [Players]Keys{{Left: true, Attack: true}, {Down: true}}})
	assert.Equal(t, []object.Intent{object.IntentMoveLeft, object.IntentStartAttack}, out[0])
	assert.Equal(t, []object.Intent{object.IntentMoveDown}, out[1])

	out = tr.Intents(Input{Players: [Players]Keys{{Left: true, Attack: true}, {Down: true}}})
	assert.Empty(t, out[0], "held keys produce no new intents")
	assert.Empty(t, out[1])

	out = tr.Intents(Input{Players: [Players]Keys{{Left: true, Right: true}, {}}})
	assert.Equal(t, []object.Intent{object.IntentStopAttack}, out[0], "both directions keep the current one")
	assert.Equal(t, []object.Intent{object.IntentStopVertical}, out[1])

	out = tr.Intents(Input{Players: [Players]Keys{{Right: true}, {Up: true}}})
	assert.Equal(t, []object.Intent{object.IntentMoveRight}, out[0])
	assert.Equal(t, []object.Intent{object.IntentMoveUp}, out[1])

	out = tr.Intents(Input{})
	assert.Equal(t, []object.Intent{object.IntentStopHorizontal}, out[0])
	assert.Equal(t, []object.Intent{object.IntentStopVertical}, out[1])

	tr.Intents(Input{Players: [Players]Keys{{Attack: true}}})
	tr.Reset()
	out = tr.Intents(Input{Players: [Players]Keys{{Attack: true}}})
	assert.Equal(t, []object.Intent{object.IntentStartAttack}, out[0])
}
