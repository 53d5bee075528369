package session

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/strikers/internal/config"
	"github.com/tomz197/strikers/internal/object"
)

func newTestSpawner(tuning config.Tuning) *Spawner {
	return NewSpawner(tuning, object.NewSpriteCache(), rand.New(rand.NewSource(12345)))
}

func lanes() [2]*object.Group[*object.Enemy] {
	return [2]*object.Group[*object.Enemy]{object.NewGroup[*object.Enemy](), object.NewGroup[*object.Enemy]()}
}

func TestSpawnEnemiesWave(t *testing.T) {
	tests := []struct {
		kills            int
		perLane          int
		minSpeed, maxSpd float64
	}{
		{0, 1, 1, 1},
		{250, 1, 2, 3},
		{650, 3, 4, 7},
	}
	for _, tt := range tests {
		s := newTestSpawner(config.DefaultTuning())
		l := lanes()
		for roll := 0; roll < 20; roll++ {
			require.Equal(t, 2*tt.perLane, s.SpawnEnemies(l, tt.kills, 4, 1))
		}
		for _, lane := range l {
			require.Equal(t, 20*tt.perLane, lane.Len(), "kills %d", tt.kills)
			for _, e := range lane.Live() {
				assert.Equal(t, 4, e.HP)
				assert.Equal(t, 5.0, e.Y)
				assert.GreaterOrEqual(t, e.X, 0.0)
				assert.LessOrEqual(t, e.X, 950.0)
				assert.GreaterOrEqual(t, e.Speed, tt.minSpeed)
				assert.LessOrEqual(t, e.Speed, tt.maxSpd)
			}
		}
	}
}

func TestSpawnEnemiesLanesShareSpeed(t *testing.T) {
	s := newTestSpawner(config.DefaultTuning())
	l := lanes()
	s.SpawnEnemies(l, 900, 1, 1)
	a, b := l[0].Live(), l[1].Live()
	require.Len(t, a, 4)
	require.Len(t, b, 4)
	for i := range a {
		assert.Equal(t, a[i].Speed, b[i].Speed)
	}
}

func TestSpawnEnemiesRate(t *testing.T) {
	s := newTestSpawner(config.DefaultTuning())
	l := lanes()
	waves := 0
	for i := 0; i < 10000; i++ {
		if s.SpawnEnemies(l, 0, 1, 250) > 0 {
			waves++
		}
	}
	assert.InDelta(t, 40, waves, 25, "about one wave per 250 rolls")
}

func TestThresholdsFireOnceDescending(t *testing.T) {
	tuning := config.DefaultTuning()
	s := newTestSpawner(tuning)
	items := newItemGroups()

	fires := 0
	for hp := tuning.BossHP; hp >= 0; hp -= 7 {
		if s.SpawnItemsForBossHP(items, hp) {
			fires++
		}
	}
	assert.Equal(t, 15, fires)
	assert.Equal(t, 15, s.Triggered())
	assert.Equal(t, 15, items.Of(object.ItemHeal).Len())
	assert.Equal(t, 45, items.Len())

	assert.False(t, s.SpawnItemsForBossHP(items, 0), "nothing left to fire")
}

func TestThresholdNeverReached(t *testing.T) {
	s := newTestSpawner(config.DefaultTuning())
	items := newItemGroups()
	assert.False(t, s.SpawnItemsForBossHP(items, 4951))
	assert.Zero(t, items.Len())
	assert.Zero(t, s.Triggered())
}

func TestThresholdJumpFiresEachOnce(t *testing.T) {
	s := newTestSpawner(config.DefaultTuning())
	items := newItemGroups()
	assert.True(t, s.SpawnItemsForBossHP(items, 4800))
	assert.Equal(t, 3, s.Triggered())
	assert.False(t, s.SpawnItemsForBossHP(items, 4800))
	assert.Equal(t, 9, items.Len())
}

func TestThresholdDropsTwoDistinctUpgrades(t *testing.T) {
	s := newTestSpawner(config.DefaultTuning())
	pairs := map[[2]int]bool{}
	for _, threshold := range config.DefaultTuning().BossHPThresholds {
		items := newItemGroups()
		require.True(t, s.SpawnItemsForBossHP(items, threshold))

		assert.Equal(t, 1, items.Of(object.ItemHeal).Len())
		var got []int
		for _, k := range []object.ItemKind{object.ItemWeaponPower, object.ItemWeaponSpeed, object.ItemWeaponNumber} {
			n := items.Of(k).Len()
			require.LessOrEqual(t, n, 1)
			if n == 1 {
				got = append(got, int(k))
			}
		}
		require.Len(t, got, 2, "threshold %d", threshold)
		pairs[[2]int{got[0], got[1]}] = true
	}
	assert.LessOrEqual(t, len(pairs), 3)
}

func TestSpawnItemsPeriodic(t *testing.T) {
	s := newTestSpawner(config.DefaultTuning())
	items := newItemGroups()

	for i := 1; i < 300; i++ {
		require.False(t, s.SpawnItemsPeriodic(items), "frame %d", i)
	}
	assert.True(t, s.SpawnItemsPeriodic(items))
	assert.Equal(t, 1, items.Len())

	for i := 0; i < 600; i++ {
		s.SpawnItemsPeriodic(items)
	}
	assert.Equal(t, 3, items.Len())

	for _, g := range items {
		for _, it := range g.Live() {
			assert.Equal(t, 10.0, it.Y)
			assert.GreaterOrEqual(t, it.X, 0.0)
			assert.Less(t, it.X, 960.0)
		}
	}
}

func TestSpawnerReset(t *testing.T) {
	s := newTestSpawner(config.DefaultTuning())
	items := newItemGroups()
	s.SpawnItemsForBossHP(items, 0)
	s.SpawnItemsPeriodic(items)

	s.Reset()
	assert.Zero(t, s.Triggered())
	assert.True(t, s.SpawnItemsForBossHP(items, 4950))
}
