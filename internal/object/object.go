// Package object holds the entity models of a play session.
package object

import (
	"math"

	"github.com/tomz197/strikers/internal/physics"
)

// Screen is the visible play field in world pixels.
type Screen struct {
	Width  int
	Height int
}

// Contains reports whether r lies at least partly inside the field.
func (s Screen) Contains(r physics.Rect) bool {
	return r.Right() >= 0 && r.X <= s.Width && r.Bottom() >= 0 && r.Y <= s.Height
}

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	Screen Screen
	Target physics.Point // Centre of the player this entity tracks
}

// Object is a positioned entity with a sprite.
type Object interface {
	// Update advances the entity by one frame. Returns true if it should be removed.
	Update(ctx UpdateContext) (remove bool)

	// Bounds returns the collision box in world pixels.
	Bounds() physics.Rect

	// Sprite returns the sprite identity used for masks and rendering.
	Sprite() SpriteKey
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on the next sweep.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Masked is implemented by objects that take part in pixel collision.
type Masked interface {
	Object
	Mask() *physics.Mask
}

// Entity is the constraint for group members.
type Entity interface {
	Masked
	Destructible
}

// Collide reports pixel overlap between two live entities.
// Destroyed entities never collide.
func Collide(a, b Masked) bool {
	if d, ok := a.(Destructible); ok && d.IsDestroyed() {
		return false
	}
	if d, ok := b.(Destructible); ok && d.IsDestroyed() {
		return false
	}
	return physics.Collide(a.Mask(), a.Bounds(), b.Mask(), b.Bounds())
}

// body is the shared position/size/destroyed state of every entity.
type body struct {
	X, Y      float64
	W, H      int
	key       SpriteKey
	mask      *physics.Mask
	destroyed bool
}

func newBody(cache *SpriteCache, id SpriteID, x, y float64, w, h int) body {
	key := SpriteKey{ID: id, W: w, H: h}
	return body{X: x, Y: y, W: w, H: h, key: key, mask: cache.Mask(key)}
}

// Bounds returns the collision box, truncating to whole pixels.
func (b *body) Bounds() physics.Rect {
	return physics.Rect{X: int(math.Floor(b.X)), Y: int(math.Floor(b.Y)), W: b.W, H: b.H}
}

// Center returns the box centre.
func (b *body) Center() physics.Point {
	return physics.Point{X: b.X + float64(b.W)/2, Y: b.Y + float64(b.H)/2}
}

// Sprite returns the sprite identity.
func (b *body) Sprite() SpriteKey { return b.key }

// Mask returns the collision mask.
func (b *body) Mask() *physics.Mask { return b.mask }

// MarkDestroyed marks the entity for removal (implements Destructible).
func (b *body) MarkDestroyed() { b.destroyed = true }

// IsDestroyed returns true if the entity is marked for destruction (implements Destructible).
func (b *body) IsDestroyed() bool { return b.destroyed }
