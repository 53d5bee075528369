package object

import (
	"fmt"
	"sync"

	"github.com/tomz197/strikers/internal/physics"
)

// SpriteID identifies a sprite's artwork independent of its size.
type SpriteID int

const (
	SpritePlayer1 SpriteID = iota
	SpritePlayer2
	SpriteEnemy
	SpriteBoss
	SpriteBullet1 // Player bullets, one per power level
	SpriteBullet2
	SpriteBullet3
	SpriteBullet4
	SpriteBullet5
	SpriteEnemyBullet
	SpriteItemHeal
	SpriteItemPower
	SpriteItemSpeed
	SpriteItemNumber
)

var spriteNames = map[SpriteID]string{
	SpritePlayer1:     "player1",
	SpritePlayer2:     "player2",
	SpriteEnemy:       "enemy",
	SpriteBoss:        "boss",
	SpriteBullet1:     "bullet1",
	SpriteBullet2:     "bullet2",
	SpriteBullet3:     "bullet3",
	SpriteBullet4:     "bullet4",
	SpriteBullet5:     "bullet5",
	SpriteEnemyBullet: "enemy_bullet",
	SpriteItemHeal:    "heal_item",
	SpriteItemPower:   "power_item",
	SpriteItemSpeed:   "speed_item",
	SpriteItemNumber:  "number_item",
}

func (id SpriteID) String() string {
	if name, ok := spriteNames[id]; ok {
		return name
	}
	return fmt.Sprintf("sprite(%d)", int(id))
}

// BulletSprite returns the player bullet sprite for a power level.
func BulletSprite(powerLevel int) SpriteID {
	powerLevel = min(max(powerLevel, 1), MaxWeaponPowerLevel)
	return SpriteBullet1 + SpriteID(powerLevel-1)
}

// SpriteKey is a sprite identity plus the size it is rendered at.
type SpriteKey struct {
	ID   SpriteID
	W, H int
}

// Unit-space outlines (0..1 on both axes). Unrotated sprites face down for
// enemies and up for players.
var (
	shipShape   = []physics.Point{{X: 0.5, Y: 0}, {X: 1, Y: 0.7}, {X: 0.8, Y: 1}, {X: 0.2, Y: 1}, {X: 0, Y: 0.7}}
	enemyShape  = []physics.Point{{X: 0.2, Y: 0}, {X: 0.8, Y: 0}, {X: 1, Y: 0.35}, {X: 0.5, Y: 1}, {X: 0, Y: 0.35}}
	bossShape   = []physics.Point{{X: 0.2, Y: 0}, {X: 0.8, Y: 0}, {X: 1, Y: 0.3}, {X: 0.9, Y: 0.8}, {X: 0.6, Y: 1}, {X: 0.4, Y: 1}, {X: 0.1, Y: 0.8}, {X: 0, Y: 0.3}}
	dartShape   = []physics.Point{{X: 0.5, Y: 0}, {X: 1, Y: 0.5}, {X: 0.5, Y: 1}, {X: 0, Y: 0.5}}
	itemShape   = []physics.Point{{X: 0.3, Y: 0}, {X: 0.7, Y: 0}, {X: 1, Y: 0.3}, {X: 1, Y: 0.7}, {X: 0.7, Y: 1}, {X: 0.3, Y: 1}, {X: 0, Y: 0.7}, {X: 0, Y: 0.3}}
	bulletWidth = [...]float64{0.4, 0.55, 0.7, 0.85, 1}
)

// Shape returns the unit-space outline of a sprite.
func Shape(id SpriteID) []physics.Point {
	switch id {
	case SpritePlayer1, SpritePlayer2:
		return shipShape
	case SpriteEnemy:
		return enemyShape
	case SpriteBoss:
		return bossShape
	case SpriteBullet1, SpriteBullet2, SpriteBullet3, SpriteBullet4, SpriteBullet5:
		half := bulletWidth[id-SpriteBullet1] / 2
		return []physics.Point{{X: 0.5 - half, Y: 0}, {X: 0.5 + half, Y: 0}, {X: 0.5 + half, Y: 1}, {X: 0.5 - half, Y: 1}}
	case SpriteEnemyBullet:
		return dartShape
	case SpriteItemHeal, SpriteItemPower, SpriteItemSpeed, SpriteItemNumber:
		return itemShape
	default:
		return []physics.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	}
}

// SpriteCache builds collision masks once per sprite identity and size.
// It is shared read-mostly by all sessions in the process.
type SpriteCache struct {
	mu    sync.RWMutex
	masks map[SpriteKey]*physics.Mask
}

// NewSpriteCache creates an empty cache.
func NewSpriteCache() *SpriteCache {
	return &SpriteCache{masks: make(map[SpriteKey]*physics.Mask)}
}

// Mask returns the mask for key, rasterizing it on first use.
func (c *SpriteCache) Mask(key SpriteKey) *physics.Mask {
	c.mu.RLock()
	m, ok := c.masks[key]
	c.mu.RUnlock()
	if ok {
		return m
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.masks[key]; ok {
		return m
	}
	m = physics.NewPolygonMask(key.W, key.H, Shape(key.ID))
	c.masks[key] = m
	return m
}

// Len returns the number of cached masks.
func (c *SpriteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.masks)
}
