// Package session is the per-frame simulation of one co-op play session:
// two players, their lanes of enemies, the boss and the items.
package session

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/strikers/internal/config"
	"github.com/tomz197/strikers/internal/object"
	"github.com/tomz197/strikers/internal/physics"
)

// Players is the number of ships (and enemy lanes) in a session.
const Players = 2

// Options configures a session. Zero fields get defaults.
type Options struct {
	Effects Effects          // Combat notifications, Nop when nil
	Rand    *rand.Rand       // Spawn randomness, time seeded when nil
	Now     func() time.Time // Clock for the elapsed time, time.Now when nil
}

// Session owns every entity of one play session and advances them a frame
// at a time. It is not safe for concurrent use.
type Session struct {
	tuning  config.Tuning
	cache   *object.SpriteCache
	effects safeEffects
	spawner *Spawner
	screen  object.Screen
	now     func() time.Time
	started time.Time

	players       [Players]*object.Player
	boss          *object.Boss
	enemies       [Players]*object.Group[*object.Enemy]
	enemyWeapons  [Players]*object.Group[*object.EnemyWeapon]
	playerWeapons [Players]*object.Group[*object.PlayerWeapon]
	items         *ItemGroups

	grids     [Players]*physics.SpatialGrid // Broad phase over each enemy lane
	laneIndex [Players][]*object.Enemy      // Grid index to enemy, rebuilt per frame

	stats   Stats
	outcome Outcome
}

// New creates a session with every entity at its starting position.
// The tuning must already be valid.
func New(tuning config.Tuning, cache *object.SpriteCache, opts Options) *Session {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Session{
		tuning:  tuning,
		cache:   cache,
		effects: newSafeEffects(opts.Effects),
		spawner: NewSpawner(tuning, cache, opts.Rand),
		screen:  object.Screen{Width: tuning.ViewWidth, Height: tuning.ViewHeight},
		now:     opts.Now,
		items:   newItemGroups(),
	}

	w, h := float64(tuning.ViewWidth), float64(tuning.ViewHeight)
	ps := tuning.PlayerSize
	halfPlayer := float64(ps.W) / 2
	playerY := h - float64(ps.H)
	s.players[0] = object.NewPlayer(cache, object.SpritePlayer1, math.Round(w*2/3-halfPlayer), playerY, ps.W, ps.H, tuning.PlayerSpeed)
	s.players[1] = object.NewPlayer(cache, object.SpritePlayer2, math.Round(w/3-halfPlayer), playerY, ps.W, ps.H, tuning.PlayerSpeed)

	bs := tuning.BossSize
	s.boss = object.NewBoss(cache, math.Round(w/2-float64(bs.W)/2), 0, bs.W, bs.H, tuning.BossHP)

	cell := float64(max(tuning.EnemySize.W, tuning.EnemySize.H, tuning.PlayerWeaponSize.W, tuning.PlayerWeaponSize.H))
	for i := range Players {
		s.enemies[i] = object.NewGroup[*object.Enemy]()
		s.enemyWeapons[i] = object.NewGroup[*object.EnemyWeapon]()
		s.playerWeapons[i] = object.NewGroup[*object.PlayerWeapon]()
		s.grids[i] = physics.NewSpatialGrid(w, h, cell)
	}

	s.stats = Stats{HP: tuning.PlayersHP, EnemyLevel: 1}
	s.started = s.now()
	return s
}

// Step runs one frame. intents[i] are applied to player i in order before
// anything moves. Once a terminal outcome is reached further calls do nothing
// and return it again.
func (s *Session) Step(intents [Players][]object.Intent) Outcome {
	if s.outcome.Terminal() {
		return s.outcome
	}

	for i, p := range s.players {
		for _, in := range intents[i] {
			p.Apply(in)
		}
	}

	s.fire()
	for _, p := range s.players {
		p.Weapons.UpdateCounters()
	}

	s.spawner.SpawnEnemies(s.enemies, s.stats.Kills, s.stats.EnemyLevel, s.tuning.EnemySpawnProbability)
	if s.spawner.SpawnItemsForBossHP(s.items, s.boss.HP) {
		s.stats.EnemyLevel++
	}
	s.spawner.SpawnItemsPeriodic(s.items)

	s.spawnEnemyWeapons()
	s.stats.EnemyAttackCounter++

	s.pruneOutOfScreen()
	s.update()
	s.resolveCombat()
	s.sweep()

	s.stats.Frame++
	s.outcome = s.checkTerminal()
	return s.outcome
}

// fire launches a volley from every player whose weapon is ready.
func (s *Session) fire() {
	ws := s.tuning.PlayerWeaponSize
	for i, p := range s.players {
		volley := p.Fire(s.cache, ws.W, ws.H, s.tuning.PlayerWeaponSpeed, s.tuning.PlayerWeaponRise)
		if len(volley) == 0 {
			continue
		}
		for _, w := range volley {
			s.playerWeapons[i].Add(w)
		}
		s.effects.shot(i)
	}
}

// spawnEnemyWeapons makes every live enemy shoot at its lane's player on
// attack frames.
func (s *Session) spawnEnemyWeapons() {
	if s.stats.EnemyAttackCounter%s.tuning.EnemyAttackInterval != 0 {
		return
	}
	ws := s.tuning.EnemyWeaponSize
	for lane := range Players {
		target := s.players[lane].Center()
		for _, e := range s.enemies[lane].Live() {
			c := e.Center()
			x := math.Floor(c.X) - float64(ws.W)/2
			w := object.NewEnemyWeapon(s.cache, x, math.Floor(c.Y), ws.W, ws.H, s.tuning.EnemyWeaponSpeed, target)
			s.enemyWeapons[lane].Add(w)
		}
	}
}

// pruneOutOfScreen removes enemies and enemy weapons that have left the
// field. Every enemy removed here counts as missed.
func (s *Session) pruneOutOfScreen() {
	for lane := range Players {
		for _, e := range s.enemies[lane].Live() {
			if e.OutOfScreen(s.screen) {
				e.MarkDestroyed()
				s.stats.Missed++
			}
		}
		for _, w := range s.enemyWeapons[lane].Live() {
			if w.OutOfScreen(s.screen) {
				w.MarkDestroyed()
			}
		}
	}
}

// update moves every entity. Lane entities track their player's centre as it
// was before the players move.
func (s *Session) update() {
	for lane := range Players {
		ctx := object.UpdateContext{Screen: s.screen, Target: s.players[lane].Center()}
		s.enemies[lane].Update(ctx)
		s.enemyWeapons[lane].Update(ctx)
	}

	ctx := object.UpdateContext{Screen: s.screen}
	for i, p := range s.players {
		s.playerWeapons[i].Update(ctx)
		p.Update(ctx)
	}
	s.boss.Update(ctx)
	for _, g := range s.items {
		g.Update(ctx)
	}
}

// sweep drops every entity destroyed this frame.
func (s *Session) sweep() {
	for i := range Players {
		s.enemies[i].Sweep()
		s.enemyWeapons[i].Sweep()
		s.playerWeapons[i].Sweep()
	}
	for _, g := range s.items {
		g.Sweep()
	}
}

// checkTerminal clamps the hit point pools and decides the outcome. Defeat
// wins when both pools empty in the same frame.
func (s *Session) checkTerminal() Outcome {
	s.stats.HP = max(s.stats.HP, 0)
	s.boss.HP = max(s.boss.HP, 0)

	switch {
	case s.stats.HP == 0:
		return OutcomeDefeat
	case s.boss.HP == 0:
		return OutcomeVictory
	default:
		return OutcomeNone
	}
}

// Stats returns the session counters.
func (s *Session) Stats() Stats { return s.stats }

// Outcome returns the result of the last frame.
func (s *Session) Outcome() Outcome { return s.outcome }

// Player returns player i (0 or 1).
func (s *Session) Player(i int) *object.Player { return s.players[i] }

// Boss returns the boss.
func (s *Session) Boss() *object.Boss { return s.boss }

// Elapsed returns the wall time since the session started, in whole seconds.
func (s *Session) Elapsed() time.Duration {
	return s.now().Sub(s.started).Truncate(time.Second)
}

// Screen returns the play field.
func (s *Session) Screen() object.Screen { return s.screen }
