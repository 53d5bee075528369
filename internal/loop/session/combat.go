package session

import "github.com/tomz197/strikers/internal/object"

// Blast sizes for kill and contact explosions.
const (
	killBlast    = 40
	contactBlast = 50
)

// upgradeOrder is the order in which a player's upgrade pickups are checked.
var upgradeOrder = [...]object.ItemKind{object.ItemWeaponNumber, object.ItemWeaponPower, object.ItemWeaponSpeed}

// resolveCombat applies one frame of collisions in a fixed order. Entities
// destroyed by an earlier step no longer collide in later steps.
func (s *Session) resolveCombat() {
	s.indexLanes()
	s.playerWeaponsVsEnemies()
	s.playersVsEnemies()
	s.playersVsEnemyWeapons()
	s.playerWeaponsVsBoss()
	s.playersVsUpgrades()
	s.playersVsHeals()
	for _, p := range s.players {
		p.Weapons.ClampLevels()
	}
	s.removeContacts()
}

// indexLanes rebuilds the broad-phase grids over the live enemies.
func (s *Session) indexLanes() {
	for lane := range Players {
		s.grids[lane].Clear()
		s.laneIndex[lane] = s.enemies[lane].Live()
		for i, e := range s.laneIndex[lane] {
			c := e.Center()
			s.grids[lane].Insert(c.X, c.Y, i)
		}
	}
}

// firstEnemyHit returns the earliest-added live enemy of lane that overlaps w.
func (s *Session) firstEnemyHit(lane int, w *object.PlayerWeapon) *object.Enemy {
	live := s.laneIndex[lane]
	c := w.Center()
	i := s.grids[lane].Lowest(c.X, c.Y, func(i int) bool {
		return object.Collide(w, live[i])
	})
	if i < 0 {
		return nil
	}
	return live[i]
}

// playerWeaponsVsEnemies lets each bullet hit at most one enemy, checking
// lane 1 before lane 2.
func (s *Session) playerWeaponsVsEnemies() {
	for i, p := range s.players {
		power := p.Weapons.PowerLevel
		for _, w := range s.playerWeapons[i].Live() {
			for lane := range Players {
				e := s.firstEnemyHit(lane, w)
				if e == nil {
					continue
				}
				w.MarkDestroyed()
				if e.TakeDamage(power) {
					e.MarkDestroyed()
					b := e.Bounds()
					s.effects.explosion(b.X, b.Y, killBlast, killBlast)
					s.stats.Kills++
				}
				break
			}
		}
	}
}

// playersVsEnemies deals contact damage once per player per lane touched.
func (s *Session) playersVsEnemies() {
	for _, p := range s.players {
		for lane := range Players {
			if s.enemies[lane].AnyCollision(p) {
				s.contactDamage(p)
			}
		}
	}
}

// playersVsEnemyWeapons deals contact damage once per player per lane of
// enemy weapons touched.
func (s *Session) playersVsEnemyWeapons() {
	for _, p := range s.players {
		for lane := range Players {
			if s.enemyWeapons[lane].AnyCollision(p) {
				s.contactDamage(p)
			}
		}
	}
}

func (s *Session) contactDamage(p *object.Player) {
	s.stats.HP -= s.stats.EnemyLevel
	b := p.Bounds()
	s.effects.explosion(b.X, b.Y, contactBlast, contactBlast)
}

// playerWeaponsVsBoss consumes every bullet touching the boss. One explosion
// covers all hits of the frame.
func (s *Session) playerWeaponsVsBoss() {
	hits := 0
	for i, p := range s.players {
		for _, w := range s.playerWeapons[i].Live() {
			if !object.Collide(s.boss, w) {
				continue
			}
			w.MarkDestroyed()
			s.boss.TakeDamage(p.Weapons.PowerLevel)
			hits++
		}
	}
	if hits > 0 {
		b := s.boss.Bounds()
		s.effects.explosion(b.X+b.W/10, b.Y+b.H*2/7, b.W*4/5, b.H*6/7)
	}
}

// playersVsUpgrades grants one level per touched upgrade kind. Items stay in
// place until removeContacts, so both players can profit from the same one.
func (s *Session) playersVsUpgrades() {
	for _, p := range s.players {
		for _, kind := range upgradeOrder {
			if !s.items.Of(kind).AnyCollision(p) {
				continue
			}
			s.effects.itemPickup()
			switch kind {
			case object.ItemWeaponNumber:
				p.Weapons.UpgradeNumber()
			case object.ItemWeaponPower:
				p.Weapons.UpgradePower()
			case object.ItemWeaponSpeed:
				p.Weapons.UpgradeSpeed()
			}
		}
	}
}

// playersVsHeals heals the shared pool once per frame if either player
// touches a heal item.
func (s *Session) playersVsHeals() {
	heals := s.items.Of(object.ItemHeal)
	if !heals.AnyCollision(s.players[0]) && !heals.AnyCollision(s.players[1]) {
		return
	}
	s.effects.itemPickup()

	healed := s.stats.HP + s.tuning.HealAmount
	if limit := s.tuning.HealCap; limit > 0 && healed > limit {
		healed = max(s.stats.HP, limit)
	}
	s.stats.HP = healed
}

// removeContacts removes every enemy, enemy weapon and item touching a player.
func (s *Session) removeContacts() {
	for _, p := range s.players {
		for lane := range Players {
			s.enemies[lane].DestroyCollisions(p)
			s.enemyWeapons[lane].DestroyCollisions(p)
		}
		for _, g := range s.items {
			g.DestroyCollisions(p)
		}
	}
}
