package session

import (
	"math/rand"

	"github.com/tomz197/strikers/internal/config"
	"github.com/tomz197/strikers/internal/object"
)

// Kill counts at which enemy waves grow and speed up.
const (
	killsPerExtraEnemy  = 300
	killsPerMinSpeedUp  = 200
	killsPerMaxSpeedUp  = 100
	enemySpawnY         = 5
	itemSpawnY          = 10
	upgradePairsPerDraw = 3
)

// upgradePairs are the item pairs a boss threshold may drop besides the heal.
var upgradePairs = [upgradePairsPerDraw][2]object.ItemKind{
	{object.ItemWeaponPower, object.ItemWeaponSpeed},
	{object.ItemWeaponSpeed, object.ItemWeaponNumber},
	{object.ItemWeaponPower, object.ItemWeaponNumber},
}

// Spawner decides when enemies and items enter the field.
// All randomness comes from the injected source.
type Spawner struct {
	tuning    config.Tuning
	cache     *object.SpriteCache
	rng       *rand.Rand
	triggered []bool // Parallel to tuning.BossHPThresholds
	itemTimer int
}

// NewSpawner creates a spawner with every threshold armed.
func NewSpawner(tuning config.Tuning, cache *object.SpriteCache, rng *rand.Rand) *Spawner {
	return &Spawner{
		tuning:    tuning,
		cache:     cache,
		rng:       rng,
		triggered: make([]bool, len(tuning.BossHPThresholds)),
	}
}

// Reset re-arms every threshold and restarts the periodic item timer.
func (s *Spawner) Reset() {
	clear(s.triggered)
	s.itemTimer = 0
}

// randInclusive draws uniformly from [lo, hi].
func (s *Spawner) randInclusive(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// SpawnEnemies rolls one 1-in-probability chance. On a hit it adds a wave
// of enemies to both lanes, larger and faster the more kills there are.
func (s *Spawner) SpawnEnemies(lanes [2]*object.Group[*object.Enemy], kills, enemyLevel, probability int) int {
	if s.randInclusive(1, probability) != 1 {
		return 0
	}

	count := 1 + kills/killsPerExtraEnemy
	minSpeed := 1 + kills/killsPerMinSpeedUp
	maxSpeed := 1 + kills/killsPerMaxSpeedUp
	size := s.tuning.EnemySize

	for i := 0; i < count; i++ {
		speed := float64(s.randInclusive(minSpeed, maxSpeed))
		for _, lane := range lanes {
			x := s.randInclusive(0, s.tuning.ViewWidth-size.W)
			lane.Add(object.NewEnemy(s.cache, float64(x), enemySpawnY, size.W, size.H, speed, enemyLevel))
		}
	}
	return count * len(lanes)
}

// SpawnItemsForBossHP fires every threshold the boss has reached that has not
// fired yet. Each firing drops a heal item and two of the three upgrades.
// Reports whether anything fired.
func (s *Spawner) SpawnItemsForBossHP(items *ItemGroups, bossHP int) bool {
	fired := false
	for i, threshold := range s.tuning.BossHPThresholds {
		if s.triggered[i] || bossHP > threshold {
			continue
		}
		s.triggered[i] = true
		fired = true

		s.spawnItem(items, object.ItemHeal)
		pair := upgradePairs[s.rng.Intn(upgradePairsPerDraw)]
		s.spawnItem(items, pair[0])
		s.spawnItem(items, pair[1])
	}
	return fired
}

// SpawnItemsPeriodic advances the item timer and drops one random item each
// time it reaches the interval.
func (s *Spawner) SpawnItemsPeriodic(items *ItemGroups) bool {
	s.itemTimer++
	if s.itemTimer < s.tuning.ItemSpawnInterval {
		return false
	}
	s.itemTimer = 0
	s.spawnItem(items, object.ItemKinds[s.rng.Intn(len(object.ItemKinds))])
	return true
}

// Triggered reports how many thresholds have fired this session.
func (s *Spawner) Triggered() int {
	n := 0
	for _, t := range s.triggered {
		if t {
			n++
		}
	}
	return n
}

func (s *Spawner) spawnItem(items *ItemGroups, kind object.ItemKind) {
	size := s.tuning.ItemSize
	x := s.rng.Intn(s.tuning.ViewWidth - size.W)
	items.Of(kind).Add(object.NewItem(s.cache, kind, float64(x), itemSpawnY, size.W, size.H, s.tuning.ItemSpeed))
}

// ItemGroups holds one group per item kind.
type ItemGroups [len(object.ItemKinds)]*object.Group[*object.Item]

func newItemGroups() *ItemGroups {
	var g ItemGroups
	for i := range g {
		g[i] = object.NewGroup[*object.Item]()
	}
	return &g
}

// Of returns the group for kind.
func (g *ItemGroups) Of(kind object.ItemKind) *object.Group[*object.Item] {
	return g[kind]
}

// Len returns the number of live items of every kind.
func (g *ItemGroups) Len() int {
	n := 0
	for _, grp := range g {
		n += grp.Len()
	}
	return n
}
