// Package audio plays the game's synthesized sound effects and music.
package audio

import (
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Board plays sounds on the local speaker. A Board that could not open the
// speaker, or was created disabled, silently ignores every call.
type Board struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	music   *beep.Ctrl
	rng     *rand.Rand
	enabled bool
	lock    func() // Guards streamers the speaker is reading
	unlock  func()
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

// New opens the speaker. Failures are logged to logger and produce a silent
// Board.
func New(enabled bool, logger *log.Logger) *Board {
	if !enabled {
		logger.Debug("Audio off")
		return &Board{}
	}
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	})
	if speakerErr != nil {
		logger.Warn("Audio disabled", "err", speakerErr)
		return &Board{}
	}

	b := newBoard(speaker.Lock, speaker.Unlock)
	speaker.Play(b.mixer)
	return b
}

// newBoard creates an enabled board whose mixer is driven by the caller.
func newBoard(lock, unlock func()) *Board {
	return &Board{
		mixer:   &beep.Mixer{},
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		enabled: true,
		lock:    lock,
		unlock:  unlock,
	}
}

// Enabled reports whether sounds are actually played.
func (b *Board) Enabled() bool { return b.enabled }

func (b *Board) play(s beep.Streamer) {
	if !b.enabled {
		return
	}
	b.lock()
	b.mixer.Add(s)
	b.unlock()
}

// Explosion plays an explosion sized like the box (x, y, w, h).
func (b *Board) Explosion(_, _, w, h int) {
	if !b.enabled {
		return
	}
	b.mu.Lock()
	s := explosionSound(b.rng, w, h)
	b.mu.Unlock()
	b.play(s)
}

// ItemPickup plays the pickup chime.
func (b *Board) ItemPickup() { b.play(pickupSound()) }

// Shot plays a player's firing sound.
func (b *Board) Shot(player int) { b.play(shotSound(player)) }

// GameOver plays the defeat jingle.
func (b *Board) GameOver() { b.play(gameOverSound()) }

// GameClear plays the victory jingle.
func (b *Board) GameClear() { b.play(gameClearSound()) }

// StartMusic starts the background theme, restarting it if already playing.
func (b *Board) StartMusic() {
	if !b.enabled {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lock()
	if b.music != nil {
		b.music.Paused = true
	}
	b.music = &beep.Ctrl{Streamer: volume(newMelody(theme, 150*time.Millisecond), 0.08)}
	b.mixer.Add(b.music)
	b.unlock()
}

// StopMusic stops the background theme.
func (b *Board) StopMusic() {
	if !b.enabled {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.music == nil {
		return
	}
	b.lock()
	b.music.Paused = true
	b.music.Streamer = nil // Lets the mixer drop it
	b.unlock()
	b.music = nil
}

// Close stops everything that is playing.
func (b *Board) Close() {
	if !b.enabled {
		return
	}
	b.StopMusic()
	b.lock()
	b.mixer.Clear()
	b.unlock()
}
