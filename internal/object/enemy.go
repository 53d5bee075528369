package object

import "github.com/tomz197/strikers/internal/physics"

// Enemy drifts straight down while turning to face the player of its lane.
type Enemy struct {
	body
	HP    int
	Speed float64
	Angle float64 // Render rotation in degrees toward the tracked player
}

// NewEnemy creates an enemy with its top-left corner at (x,y).
func NewEnemy(cache *SpriteCache, x, y float64, w, h int, speed float64, hp int) *Enemy {
	return &Enemy{
		body:  newBody(cache, SpriteEnemy, x, y, w, h),
		HP:    hp,
		Speed: speed,
	}
}

// Update turns toward ctx.Target and moves down. Leaving through the top is
// not expected in play and removes the enemy.
func (e *Enemy) Update(ctx UpdateContext) bool {
	c := e.Center()
	e.Angle = physics.Angle(c.X, c.Y, ctx.Target.X, ctx.Target.Y)

	e.Y += e.Speed
	return e.Y < 0
}

// OutOfScreen reports whether the enemy has left the field vertically.
func (e *Enemy) OutOfScreen(s Screen) bool {
	return e.Y < 0 || e.Y > float64(s.Height)
}

// TakeDamage subtracts damage and reports whether the enemy is dead.
func (e *Enemy) TakeDamage(damage int) bool {
	e.HP -= max(damage, 0)
	return e.HP <= 0
}

// Boss is the stationary target whose hit points drive the session.
type Boss struct {
	body
	HP int
}

// NewBoss creates the boss with its top-left corner at (x,y).
func NewBoss(cache *SpriteCache, x, y float64, w, h, hp int) *Boss {
	return &Boss{
		body: newBody(cache, SpriteBoss, x, y, w, h),
		HP:   hp,
	}
}

// Update is a no-op; the boss never moves.
func (b *Boss) Update(UpdateContext) bool {
	return false
}

// TakeDamage subtracts damage and reports whether the boss is beaten.
func (b *Boss) TakeDamage(damage int) bool {
	b.HP -= max(damage, 0)
	return b.HP <= 0
}

var (
	_ Entity = (*Enemy)(nil)
	_ Masked = (*Boss)(nil)
)
