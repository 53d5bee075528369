package object

import (
	"math"

	"github.com/tomz197/strikers/internal/physics"
)

// PlayerWeapon is a bullet fired straight up by a player.
type PlayerWeapon struct {
	body
	Speed      float64
	PowerLevel int
}

// NewPlayerWeapon creates a bullet with its top-left corner at (x,y).
// The power level picks the sprite; damage is taken from the firing player
// when the hit is resolved.
func NewPlayerWeapon(cache *SpriteCache, x, y float64, w, h int, speed float64, powerLevel int) *PlayerWeapon {
	return &PlayerWeapon{
		body:       newBody(cache, BulletSprite(powerLevel), x, y, w, h),
		Speed:      speed,
		PowerLevel: powerLevel,
	}
}

// Update moves the bullet up and removes it once it has fully left the top.
func (w *PlayerWeapon) Update(UpdateContext) bool {
	w.Y -= w.Speed
	return w.Y+float64(w.H) < 0
}

// EnemyWeapon is a projectile flying in a straight line toward where its
// target stood when it was fired.
type EnemyWeapon struct {
	body
	Speed     float64
	Direction float64 // Heading in radians
	Angle     float64 // Render rotation in degrees
}

// NewEnemyWeapon creates a projectile at (x,y) aimed at target.
func NewEnemyWeapon(cache *SpriteCache, x, y float64, w, h int, speed float64, target physics.Point) *EnemyWeapon {
	ew := &EnemyWeapon{
		body:  newBody(cache, SpriteEnemyBullet, x, y, w, h),
		Speed: speed,
	}
	c := ew.Center()
	ew.Angle = physics.Angle(c.X, c.Y, target.X, target.Y)
	ew.Direction = physics.Direction(x, y, target.X, target.Y)
	return ew
}

// Update moves the projectile along its heading and removes it once it is
// fully outside the field.
func (w *EnemyWeapon) Update(ctx UpdateContext) bool {
	w.X += math.Cos(w.Direction) * w.Speed
	w.Y += math.Sin(w.Direction) * w.Speed
	return w.OutOfScreen(ctx.Screen)
}

// OutOfScreen reports whether the projectile is fully outside the field.
func (w *EnemyWeapon) OutOfScreen(s Screen) bool {
	return !s.Contains(w.Bounds())
}

var (
	_ Entity = (*PlayerWeapon)(nil)
	_ Entity = (*EnemyWeapon)(nil)
)
