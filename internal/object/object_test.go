package object

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/strikers/internal/physics"
)

var field = UpdateContext{Screen: Screen{Width: 1000, Height: 1000}}

func TestFireLevelFourSpacing(t *testing.T) {
	cache := NewSpriteCache()
	p := NewPlayer(cache, SpritePlayer1, 100, 900, 50, 80, 5)
	p.Weapons.NumberLevel = 4

	assert.InDeltaSlice(t, []float64{100, 112.5, 125, 137.5, 150}, p.MuzzlePositions(), 1e-9)

	p.Apply(IntentStartAttack)
	volley := p.Fire(cache, 10, 40, 15, 40)
	require.Len(t, volley, 5)

	wantLeft := []int{95, 107, 120, 132, 145}
	for i, w := range volley {
		b := w.Bounds()
		assert.Equal(t, wantLeft[i], b.X, "bullet %d", i)
		assert.Equal(t, 900, b.Y, "centre 940 minus rise 40")
		assert.Equal(t, 1, w.PowerLevel)
	}
}

func TestFireVolleySizes(t *testing.T) {
	cache := NewSpriteCache()
	for level, want := range map[int]int{1: 1, 2: 2, 3: 4, 4: 5} {
		p := NewPlayer(cache, SpritePlayer2, 300, 900, 50, 80, 5)
		p.Weapons.NumberLevel = level
		p.Weapons.PowerLevel = 3
		p.Apply(IntentStartAttack)

		volley := p.Fire(cache, 10, 40, 15, 40)
		require.Len(t, volley, want, "number level %d", level)
		for _, w := range volley {
			assert.Equal(t, 3, w.PowerLevel)
			assert.Equal(t, SpriteBullet3, w.Sprite().ID)
		}
	}
}

func TestFireNotReady(t *testing.T) {
	cache := NewSpriteCache()
	p := NewPlayer(cache, SpritePlayer1, 100, 900, 50, 80, 5)
	assert.Nil(t, p.Fire(cache, 10, 40, 15, 40), "not armed")
}

func TestPlayerMovementStaysInField(t *testing.T) {
	cache := NewSpriteCache()

	p := NewPlayer(cache, SpritePlayer1, 2, 500, 50, 80, 5)
	p.Apply(IntentMoveLeft)
	p.Update(field)
	assert.Equal(t, 2.0, p.X, "step past the left edge is undone")

	p.Apply(IntentMoveUp)
	p.Update(field)
	assert.Equal(t, 495.0, p.Y, "vertical axis still moves")
	assert.Equal(t, 2.0, p.X)

	p = NewPlayer(cache, SpritePlayer1, 948, 918, 50, 80, 5)
	p.Apply(IntentMoveRight)
	p.Apply(IntentMoveDown)
	p.Update(field)
	assert.Equal(t, 948.0, p.X)
	assert.Equal(t, 918.0, p.Y)

	p.Apply(IntentStopHorizontal)
	p.Apply(IntentStopVertical)
	p.Apply(IntentMoveLeft)
	p.Update(field)
	assert.Equal(t, 943.0, p.X)
}

func TestPlayerApplyAttack(t *testing.T) {
	p := NewPlayer(NewSpriteCache(), SpritePlayer1, 0, 0, 50, 80, 5)
	p.Apply(IntentStartAttack)
	assert.True(t, p.Weapons.Armed())
	p.Apply(IntentStopAttack)
	assert.False(t, p.Weapons.Armed())
}

func TestEnemyUpdate(t *testing.T) {
	cache := NewSpriteCache()
	e := NewEnemy(cache, 100, 5, 50, 50, 3, 2)

	ctx := field
	ctx.Target = physics.Point{X: 125, Y: 900}
	assert.False(t, e.Update(ctx))
	assert.Equal(t, 8.0, e.Y)
	assert.InDelta(t, 0, e.Angle, 1e-9, "target straight below")

	e.Y = 1001
	assert.True(t, e.OutOfScreen(field.Screen))
	e.Y = 500
	assert.False(t, e.OutOfScreen(field.Screen))

	e.Y = -10
	assert.True(t, e.Update(UpdateContext{Screen: field.Screen}), "top exit removes")
}

func TestEnemyTakeDamage(t *testing.T) {
	e := NewEnemy(NewSpriteCache(), 0, 0, 50, 50, 1, 2)
	assert.False(t, e.TakeDamage(1))
	assert.Equal(t, 1, e.HP)
	assert.True(t, e.TakeDamage(1))

	live := NewEnemy(NewSpriteCache(), 0, 0, 50, 50, 1, 2)
	assert.False(t, live.TakeDamage(-5), "negative damage is ignored")
	assert.Equal(t, 2, live.HP)
}

func TestBossNeverMoves(t *testing.T) {
	b := NewBoss(NewSpriteCache(), 250, 0, 500, 350, 5000)
	assert.False(t, b.Update(field))
	assert.Equal(t, physics.Rect{X: 250, Y: 0, W: 500, H: 350}, b.Bounds())
	assert.False(t, b.TakeDamage(4999))
	assert.True(t, b.TakeDamage(1))
}

func TestPlayerWeaponLeavesTop(t *testing.T) {
	w := NewPlayerWeapon(NewSpriteCache(), 100, -20, 10, 40, 15, 1)
	assert.False(t, w.Update(field), "bottom still at 5")
	assert.True(t, w.Update(field))
}

func TestEnemyWeaponFlightAndExit(t *testing.T) {
	cache := NewSpriteCache()
	w := NewEnemyWeapon(cache, 985, 500, 10, 40, 5, physics.Point{X: 2000, Y: 500})
	assert.InDelta(t, 0, w.Direction, 1e-9)
	assert.InDelta(t, 90, w.Angle, 2, "render rotation faces right")

	assert.False(t, w.Update(field))
	assert.InDelta(t, 990, w.X, 1e-9)
	assert.InDelta(t, 500, w.Y, 1e-9)
	assert.False(t, w.Update(field))
	assert.False(t, w.Update(field), "left edge on the field boundary")
	assert.True(t, w.Update(field))
}

func TestEnemyWeaponDiagonal(t *testing.T) {
	w := NewEnemyWeapon(NewSpriteCache(), 0, 0, 10, 40, 5, physics.Point{X: 100, Y: 100})
	w.Update(field)
	assert.InDelta(t, 5/math.Sqrt2, w.X, 1e-9)
	assert.InDelta(t, 5/math.Sqrt2, w.Y, 1e-9)
}

func TestItemFallsOffBottom(t *testing.T) {
	i := NewItem(NewSpriteCache(), ItemWeaponSpeed, 10, 999, 40, 40, 1)
	assert.Equal(t, SpriteItemSpeed, i.Sprite().ID)
	assert.False(t, i.Update(field))
	assert.True(t, i.Update(field))
}

func TestItemKindSprites(t *testing.T) {
	seen := map[SpriteID]bool{}
	for _, k := range ItemKinds {
		seen[k.Sprite()] = true
		assert.NotEqual(t, "unknown", k.String())
	}
	assert.Len(t, seen, len(ItemKinds))
}

func TestGroupCollisionAndSweep(t *testing.T) {
	cache := NewSpriteCache()
	g := NewGroup[*Enemy]()
	a := NewEnemy(cache, 100, 100, 50, 50, 1, 1)
	b := NewEnemy(cache, 100, 100, 50, 50, 1, 1)
	far := NewEnemy(cache, 600, 600, 50, 50, 1, 1)
	g.Add(a)
	g.Add(b)
	g.Add(far)

	shot := NewPlayerWeapon(cache, 120, 105, 10, 40, 15, 1)
	hit, ok := g.FirstCollision(shot)
	require.True(t, ok)
	assert.Same(t, a, hit)

	a.MarkDestroyed()
	hit, ok = g.FirstCollision(shot)
	require.True(t, ok)
	assert.Same(t, b, hit, "destroyed members are skipped")

	assert.Equal(t, 1, g.DestroyCollisions(shot))
	assert.Equal(t, 1, g.Len())
	assert.False(t, g.AnyCollision(shot))

	g.Sweep()
	assert.Equal(t, []*Enemy{far}, g.Live())
}

func TestGroupUpdateMarksRemovals(t *testing.T) {
	cache := NewSpriteCache()
	g := NewGroup[*Item]()
	g.Add(NewItem(cache, ItemHeal, 0, 1000, 40, 40, 1))
	g.Add(NewItem(cache, ItemHeal, 0, 10, 40, 40, 1))

	g.Update(field)
	assert.Equal(t, 1, g.Len())
	g.Sweep()
	require.Len(t, g.Live(), 1)
	assert.Equal(t, 11.0, g.Live()[0].Y)

	g.Clear()
	assert.Zero(t, g.Len())
}

func TestCollideIgnoresDestroyed(t *testing.T) {
	cache := NewSpriteCache()
	a := NewEnemy(cache, 0, 0, 50, 50, 1, 1)
	b := NewEnemy(cache, 0, 0, 50, 50, 1, 1)
	assert.True(t, Collide(a, b))
	b.MarkDestroyed()
	assert.False(t, Collide(a, b))
}

func TestSpriteCacheSharesMasks(t *testing.T) {
	cache := NewSpriteCache()
	a := NewEnemy(cache, 0, 0, 50, 50, 1, 1)
	b := NewEnemy(cache, 10, 10, 50, 50, 1, 1)
	assert.Same(t, a.Mask(), b.Mask())
	assert.Equal(t, 1, cache.Len())
}

func TestBulletSpriteClamps(t *testing.T) {
	assert.Equal(t, SpriteBullet1, BulletSprite(0))
	assert.Equal(t, SpriteBullet5, BulletSprite(9))
}

func TestParticlesBurnOut(t *testing.T) {
	ps := NewParticles(rand.New(rand.NewSource(12345)))
	ps.Explosion(100, 100, 40, 40)
	assert.Equal(t, minSparks, ps.Len())

	ps.Explosion(50, 100, 400, 300)
	assert.Equal(t, minSparks+maxSparks, ps.Len())

	visible := 0
	ps.Each(func(*Particle) { visible++ })
	assert.Equal(t, ps.Len(), visible)

	ps.Update(time.Second)
	assert.Zero(t, ps.Len())

	ps.Explosion(0, 0, 0, 10)
	assert.Zero(t, ps.Len())
}
