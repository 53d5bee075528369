package client

import (
	"github.com/tomz197/strikers/internal/loop/session"
	"github.com/tomz197/strikers/internal/object"
)

// Sound is what the client needs from a sound board.
type Sound interface {
	session.Effects
	session.ShotListener
	StartMusic()
	StopMusic()
	GameOver()
	GameClear()
}

// frameEffects turns combat notifications into sparks and sounds.
type frameEffects struct {
	particles *object.Particles
	sound     Sound
}

var (
	_ session.Effects      = frameEffects{}
	_ session.ShotListener = frameEffects{}
)

func (e frameEffects) Explosion(x, y, w, h int) {
	e.particles.Explosion(x, y, w, h)
	e.sound.Explosion(x, y, w, h)
}

func (e frameEffects) ItemPickup() { e.sound.ItemPickup() }

func (e frameEffects) Shot(player int) { e.sound.Shot(player) }
