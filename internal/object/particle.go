package object

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived explosion spark in world pixels.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity in pixels per second
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per 60 Hz frame (1.0 = no drag)
	Hot         bool    // Drawn in the bright palette slot
}

// Visible reports whether the spark is still bright enough to draw.
func (p *Particle) Visible() bool {
	return p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime >= 0.25
}

// step advances the spark by dt seconds. Returns true when it burns out.
func (p *Particle) step(dt float64) bool {
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY *= dragFactor
	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false
}

// Explosion sizes. Sparks per explosion scale with the blast area.
const (
	sparksPerKilopixel = 3
	minSparks          = 12
	maxSparks          = 160
	sparkLifetime      = 0.6 // Seconds
)

// Particles owns the live explosion sparks of one presenter.
// It is not safe for concurrent use.
type Particles struct {
	items []*Particle
	rng   *rand.Rand
}

// NewParticles creates an empty particle set drawing randomness from rng.
func NewParticles(rng *rand.Rand) *Particles {
	return &Particles{rng: rng}
}

// Explosion bursts sparks out of the centre of the box (x,y,w,h).
func (ps *Particles) Explosion(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	cx := float64(x) + float64(w)/2
	cy := float64(y) + float64(h)/2
	count := min(max(w*h*sparksPerKilopixel/1000, minSparks), maxSparks)
	speed := float64(max(w, h)) * 2 // Reach roughly the box edge before fading

	for i := 0; i < count; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		spd := speed * (0.5 + ps.rng.Float64())
		life := sparkLifetime * (0.5 + ps.rng.Float64()*0.5)

		p := particlePool.Get().(*Particle)
		*p = Particle{
			X:           cx,
			Y:           cy,
			VX:          math.Cos(angle) * spd,
			VY:          math.Sin(angle) * spd,
			Lifetime:    life,
			MaxLifetime: life,
			Drag:        0.93,
			Hot:         ps.rng.Intn(3) == 0,
		}
		ps.items = append(ps.items, p)
	}
}

// Update advances every spark and releases the burnt-out ones to the pool.
func (ps *Particles) Update(delta time.Duration) {
	dt := delta.Seconds()
	kept := ps.items[:0]
	for _, p := range ps.items {
		if p.step(dt) {
			particlePool.Put(p)
			continue
		}
		kept = append(kept, p)
	}
	clear(ps.items[len(kept):])
	ps.items = kept
}

// Each calls fn for every visible spark.
func (ps *Particles) Each(fn func(p *Particle)) {
	for _, p := range ps.items {
		if p.Visible() {
			fn(p)
		}
	}
}

// Len returns the number of live sparks.
func (ps *Particles) Len() int {
	return len(ps.items)
}

// Clear releases every spark.
func (ps *Particles) Clear() {
	for _, p := range ps.items {
		particlePool.Put(p)
	}
	clear(ps.items)
	ps.items = ps.items[:0]
}
