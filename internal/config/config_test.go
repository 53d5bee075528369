package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTuningValid(t *testing.T) {
	d := DefaultTuning()
	require.NoError(t, d.Validate())
	assert.Len(t, d.BossHPThresholds, 15)
	assert.Equal(t, 0, d.HealCap)
}

func TestLoadTuningEmptyPath(t *testing.T) {
	got, err := LoadTuning("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), got)
}

func TestLoadTuningOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
boss_hp: 3000
heal_cap: 1000
enemy_size: {w: 40, h: 30}
boss_hp_thresholds: [2500, 1000]
`), 0o600))

	got, err := LoadTuning(path)
	require.NoError(t, err)
	assert.Equal(t, 3000, got.BossHP)
	assert.Equal(t, 1000, got.HealCap)
	assert.Equal(t, Size{W: 40, H: 30}, got.EnemySize)
	assert.Equal(t, []int{2500, 1000}, got.BossHPThresholds)
	assert.Equal(t, 1000, got.PlayersHP, "unset keys keep defaults")
}

func TestLoadTuningErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTuning(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("boss_hp: [1"), 0o600))
	_, err = LoadTuning(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("boss_hp_thresholds: [100, 200]"), 0o600))
	_, err = LoadTuning(invalid)
	assert.ErrorContains(t, err, "descending")
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tuning)
		want   string
	}{
		{"zero view", func(t *Tuning) { t.ViewWidth = 0 }, "view_width"},
		{"zero spawn probability", func(t *Tuning) { t.EnemySpawnProbability = 0 }, "enemy_spawn_probability"},
		{"empty enemy", func(t *Tuning) { t.EnemySize = Size{} }, "enemy_size"},
		{"negative heal", func(t *Tuning) { t.HealAmount = -1 }, "heal_amount"},
		{"threshold above boss hp", func(t *Tuning) { t.BossHPThresholds = []int{6000} }, "outside"},
		{"wide boss", func(t *Tuning) { t.BossSize.W = 2000 }, "boss_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tu := DefaultTuning()
			tt.mutate(&tu)
			assert.ErrorContains(t, tu.Validate(), tt.want)
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("STRIKERS_TEST_VALUE", "x")
	assert.Equal(t, "x", GetEnv("STRIKERS_TEST_VALUE", "y"))
	assert.Equal(t, "y", GetEnv("STRIKERS_TEST_UNSET", "y"))

	t.Setenv("STRIKERS_TEST_BOOL", "false")
	assert.False(t, GetEnvBool("STRIKERS_TEST_BOOL", true))
	t.Setenv("STRIKERS_TEST_BOOL", "nope")
	assert.True(t, GetEnvBool("STRIKERS_TEST_BOOL", true))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("STRIKERS_DOTENV_A=from-file\nSTRIKERS_DOTENV_B=from-file\n"), 0o600))

	t.Setenv("STRIKERS_DOTENV_B", "preset")
	t.Cleanup(func() { os.Unsetenv("STRIKERS_DOTENV_A") })

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("STRIKERS_DOTENV_A"))
	assert.Equal(t, "preset", os.Getenv("STRIKERS_DOTENV_B"), "existing values win")
}

func TestNewLoggerLevelFromEnv(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv(EnvLogLevel, "warn")
	logger := NewLogger(&buf, "strikers")
	logger.Info("hidden")
	logger.Warn("shown", "session", "abc")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "session=abc")
	assert.Contains(t, out, "strikers")

	t.Setenv(EnvLogLevel, "loud")
	assert.Equal(t, log.InfoLevel, NewLogger(&buf, "").GetLevel())
}
