package session

import "github.com/tomz197/strikers/internal/object"

// Sprite is one drawable entity as seen by a renderer.
type Sprite struct {
	ID    object.SpriteID `msgpack:"id"`
	X     int             `msgpack:"x"`
	Y     int             `msgpack:"y"`
	W     int             `msgpack:"w"`
	H     int             `msgpack:"h"`
	Angle float64         `msgpack:"angle,omitempty"` // Degrees counter-clockwise
}

// Levels are a player's weapon levels.
type Levels struct {
	Speed  int `msgpack:"speed"`
	Power  int `msgpack:"power"`
	Number int `msgpack:"number"`
}

// Snapshot is a self-contained copy of everything needed to draw a frame.
type Snapshot struct {
	Width          int             `msgpack:"width"`
	Height         int             `msgpack:"height"`
	Stats          Stats           `msgpack:"stats"`
	BossHP         int             `msgpack:"boss_hp"`
	ElapsedSeconds int             `msgpack:"elapsed"`
	Levels         [Players]Levels `msgpack:"levels"`
	Outcome        Outcome         `msgpack:"outcome"`
	Sprites        []Sprite        `msgpack:"sprites"` // In draw order
}

// Snapshot copies the current frame for presentation.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Width:          s.screen.Width,
		Height:         s.screen.Height,
		Stats:          s.stats,
		BossHP:         s.boss.HP,
		ElapsedSeconds: int(s.Elapsed().Seconds()),
		Outcome:        s.outcome,
	}
	for i, p := range s.players {
		snap.Levels[i] = Levels{Speed: p.Weapons.SpeedLevel, Power: p.Weapons.PowerLevel, Number: p.Weapons.NumberLevel}
	}

	n := 1 + Players + s.items.Len()
	for i := range Players {
		n += s.enemies[i].Len() + s.enemyWeapons[i].Len() + s.playerWeapons[i].Len()
	}
	snap.Sprites = make([]Sprite, 0, n)

	for lane := range Players {
		for _, e := range s.enemies[lane].Live() {
			snap.Sprites = append(snap.Sprites, spriteOf(e, e.Angle))
		}
	}
	for lane := range Players {
		for _, w := range s.enemyWeapons[lane].Live() {
			snap.Sprites = append(snap.Sprites, spriteOf(w, w.Angle))
		}
	}
	for i := range Players {
		for _, w := range s.playerWeapons[i].Live() {
			snap.Sprites = append(snap.Sprites, spriteOf(w, 0))
		}
	}
	for _, p := range s.players {
		snap.Sprites = append(snap.Sprites, spriteOf(p, 0))
	}
	snap.Sprites = append(snap.Sprites, spriteOf(s.boss, 0))
	for _, g := range s.items {
		for _, it := range g.Live() {
			snap.Sprites = append(snap.Sprites, spriteOf(it, 0))
		}
	}
	return snap
}

func spriteOf(o object.Object, angle float64) Sprite {
	b := o.Bounds()
	return Sprite{ID: o.Sprite().ID, X: b.X, Y: b.Y, W: b.W, H: b.H, Angle: angle}
}
