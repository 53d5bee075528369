// Package input turns raw terminal bytes into per-player key state.
//
// Terminals report key presses only, never releases, so a key counts as held
// for a while after each press. The first press of a key holds it long enough
// to bridge the terminal's auto-repeat delay; once repeats arrive the window
// shrinks so that a release is noticed quickly.
package input

import (
	"bufio"
	"time"
)

// Hold windows.
const (
	initialHold = 550 * time.Millisecond // Bridges the auto-repeat delay
	repeatHold  = 90 * time.Millisecond  // Between auto-repeated presses
	tapHold     = 30 * time.Millisecond  // One-shot keys (quit, enter)
)

// Players is the number of local players sharing the keyboard.
const Players = 2

// Keys is the held state of one player's controls.
type Keys struct {
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Attack bool
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Enter   bool
	Players [Players]Keys
	Pressed int // Bytes received this frame
}

type key int

const (
	keyLeft key = iota
	keyRight
	keyUp
	keyDown
	keyAttack
	keysPerPlayer
)

// press tracks the last press of one key.
type press struct {
	at        time.Time
	repeating bool
}

func (p *press) hit(now time.Time) {
	p.repeating = p.held(now)
	p.at = now
}

func (p *press) held(now time.Time) bool {
	if p.at.IsZero() {
		return false
	}
	window := initialHold
	if p.repeating {
		window = repeatHold
	}
	return now.Sub(p.at) < window
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit    time.Time
	enter   time.Time
	players [Players][keysPerPlayer]press
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
	now    func() time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:  make(chan byte, 128),
		now: time.Now,
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// returns the resulting key state. A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	now := s.now()
	s.apply(buf, now)
	in := s.snapshot(now)
	in.Pressed = len(buf)
	in.Quit = in.Quit || s.closed
	return in
}

// Reset forgets every press, so keys held on a previous screen do not leak
// into the next one.
func (s *Stream) Reset() {
	s.state = keyState{}
}

// apply parses the collected bytes and updates key state timestamps.
func (s *Stream) apply(buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			p1 := &s.state.players[0]
			switch buf[i+2] {
			case 'A':
				p1[keyUp].hit(now)
			case 'B':
				p1[keyDown].hit(now)
			case 'C':
				p1[keyRight].hit(now)
			case 'D':
				p1[keyLeft].hit(now)
			default:
				continue
			}
			i += 2
			continue
		}

		applyByteToState(&s.state, b, now)
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	p1, p2 := &state.players[0], &state.players[1]
	switch b {
	case 'q', 'Q', 0x03: // Ctrl-C
		state.quit = now
	case '\n', '\r':
		state.enter = now
	case '0':
		p1[keyAttack].hit(now)
	case 'a', 'A':
		p2[keyLeft].hit(now)
	case 'd', 'D':
		p2[keyRight].hit(now)
	case 'w', 'W':
		p2[keyUp].hit(now)
	case 's', 'S':
		p2[keyDown].hit(now)
	case ' ':
		p2[keyAttack].hit(now)
	}
}

// snapshot builds input from key state. Keys are held if seen within their window.
func (s *Stream) snapshot(now time.Time) Input {
	in := Input{
		Quit:  !s.state.quit.IsZero() && now.Sub(s.state.quit) < tapHold,
		Enter: !s.state.enter.IsZero() && now.Sub(s.state.enter) < tapHold,
	}
	for i := range Players {
		p := &s.state.players[i]
		in.Players[i] = Keys{
			Left:   p[keyLeft].held(now),
			Right:  p[keyRight].held(now),
			Up:     p[keyUp].held(now),
			Down:   p[keyDown].held(now),
			Attack: p[keyAttack].held(now),
		}
	}
	return in
}
