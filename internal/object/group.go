package object

// Group is an ordered set of entities of one kind, like a sprite group.
// Members marked destroyed stay in place until Sweep so that iteration order
// is stable for the rest of the frame.
type Group[T Entity] struct {
	items []T
}

// NewGroup creates an empty group.
func NewGroup[T Entity]() *Group[T] {
	return &Group[T]{}
}

// Add appends an entity.
func (g *Group[T]) Add(e T) {
	g.items = append(g.items, e)
}

// Len returns the number of live members.
func (g *Group[T]) Len() int {
	n := 0
	for _, e := range g.items {
		if !e.IsDestroyed() {
			n++
		}
	}
	return n
}

// Live returns the live members in insertion order.
// The slice is freshly allocated; callers may keep it across mutations.
func (g *Group[T]) Live() []T {
	live := make([]T, 0, len(g.items))
	for _, e := range g.items {
		if !e.IsDestroyed() {
			live = append(live, e)
		}
	}
	return live
}

// FirstCollision returns the first live member overlapping other.
func (g *Group[T]) FirstCollision(other Masked) (T, bool) {
	for _, e := range g.items {
		if Collide(other, e) {
			return e, true
		}
	}
	var zero T
	return zero, false
}

// AnyCollision reports whether any live member overlaps other.
func (g *Group[T]) AnyCollision(other Masked) bool {
	_, ok := g.FirstCollision(other)
	return ok
}

// DestroyCollisions marks every live member overlapping other and returns how many.
func (g *Group[T]) DestroyCollisions(other Masked) int {
	n := 0
	for _, e := range g.items {
		if Collide(other, e) {
			e.MarkDestroyed()
			n++
		}
	}
	return n
}

// Update advances every live member, marking those that ask to be removed.
func (g *Group[T]) Update(ctx UpdateContext) {
	for _, e := range g.items {
		if e.IsDestroyed() {
			continue
		}
		if e.Update(ctx) {
			e.MarkDestroyed()
		}
	}
}

// Sweep drops destroyed members, reusing the backing array.
func (g *Group[T]) Sweep() {
	kept := g.items[:0]
	for _, e := range g.items {
		if !e.IsDestroyed() {
			kept = append(kept, e)
		}
	}
	var zero T
	for i := len(kept); i < len(g.items); i++ {
		g.items[i] = zero
	}
	g.items = kept
}

// Clear removes every member.
func (g *Group[T]) Clear() {
	clear(g.items)
	g.items = g.items[:0]
}
