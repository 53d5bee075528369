package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const sampleRate = beep.SampleRate(44100)

// tone returns a sine tone of the given length, or silence if freq is not
// playable at sampleRate.
func tone(freq float64, d time.Duration) beep.Streamer {
	s, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(sampleRate.N(d))
	}
	return beep.Take(sampleRate.N(d), s)
}

// decay fades s out exponentially; rate is in 1/seconds.
func decay(s beep.Streamer, rate float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := range n {
			g := math.Exp(-rate * float64(pos) / float64(sampleRate))
			samples[i][0] *= g
			samples[i][1] *= g
			pos++
		}
		return n, ok
	})
}

// noise is white noise of length d.
func noise(rng *rand.Rand, d time.Duration) beep.Streamer {
	left := sampleRate.N(d)
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if left <= 0 {
			return 0, false
		}
		n := min(len(samples), left)
		for i := range n {
			v := rng.Float64()*2 - 1
			samples[i][0] = v
			samples[i][1] = v
		}
		left -= n
		return n, true
	})
}

// volume scales s by gain (1 is unchanged, 0 mutes).
func volume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// explosionSound is a noise burst with a low rumble. Bigger explosions last
// longer.
func explosionSound(rng *rand.Rand, w, h int) beep.Streamer {
	d := 250 * time.Millisecond
	if w*h >= 100*100 {
		d = 900 * time.Millisecond
	}
	burst := beep.Mix(
		volume(noise(rng, d), 0.35),
		volume(tone(70, d), 0.4),
	)
	return decay(burst, 6)
}

func shotSound(player int) beep.Streamer {
	freq := 1320.0
	if player == 1 {
		freq = 1175
	}
	return volume(decay(tone(freq, 60*time.Millisecond), 40), 0.15)
}

func pickupSound() beep.Streamer {
	return volume(beep.Seq(
		tone(880, 70*time.Millisecond),
		tone(1320, 110*time.Millisecond),
	), 0.3)
}

// Note frequencies.
const (
	noteC4 = 261.63
	noteE4 = 329.63
	noteG4 = 392.00
	noteA4 = 440.00
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteC6 = 1046.50
)

func jingle(notes []float64, step time.Duration) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		parts[i] = decay(tone(f, step), 3)
	}
	return volume(beep.Seq(parts...), 0.35)
}

func gameOverSound() beep.Streamer {
	return jingle([]float64{noteG4, noteE4, noteC4, noteC4 / 2}, 300*time.Millisecond)
}

func gameClearSound() beep.Streamer {
	return jingle([]float64{noteC5, noteE5, noteG5, noteC6}, 180*time.Millisecond)
}

// melody loops notes forever, each lasting step. A zero note is a rest.
type melody struct {
	notes []float64
	step  int
	pos   int
}

var theme = []float64{
	noteA4, 0, noteC5, noteA4, noteE5, 0, noteC5, 0,
	noteG4, 0, noteC5, noteG4, noteE5, noteC5, noteG4, 0,
}

func newMelody(notes []float64, step time.Duration) *melody {
	return &melody{notes: notes, step: sampleRate.N(step)}
}

func (m *melody) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		note := (m.pos / m.step) % len(m.notes)
		inNote := m.pos % m.step
		v := 0.0
		if f := m.notes[note]; f > 0 {
			t := float64(m.pos) / float64(sampleRate)
			env := math.Exp(-4 * float64(inNote) / float64(sampleRate))
			v = env * math.Sin(2*math.Pi*f*t)
		}
		samples[i][0] = v
		samples[i][1] = v
		m.pos++
	}
	return len(samples), true
}

func (m *melody) Err() error { return nil }
