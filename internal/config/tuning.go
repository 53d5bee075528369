package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Size is a width/height pair in world pixels.
type Size struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Tuning holds the gameplay numbers of a session. The zero value is not
// usable; start from DefaultTuning.
type Tuning struct {
	ViewWidth  int `yaml:"view_width"`
	ViewHeight int `yaml:"view_height"`

	PlayersHP   int     `yaml:"players_hp"`
	PlayerSize  Size    `yaml:"player_size"`
	PlayerSpeed float64 `yaml:"player_speed"`

	BossHP   int  `yaml:"boss_hp"`
	BossSize Size `yaml:"boss_size"`

	EnemySize             Size `yaml:"enemy_size"`
	EnemySpawnProbability int  `yaml:"enemy_spawn_probability"`
	EnemyAttackInterval   int  `yaml:"enemy_attack_interval"`

	PlayerWeaponSize  Size    `yaml:"player_weapon_size"`
	PlayerWeaponSpeed float64 `yaml:"player_weapon_speed"`
	PlayerWeaponRise  float64 `yaml:"player_weapon_rise"`
	EnemyWeaponSize   Size    `yaml:"enemy_weapon_size"`
	EnemyWeaponSpeed  float64 `yaml:"enemy_weapon_speed"`

	ItemSize          Size    `yaml:"item_size"`
	ItemSpeed         float64 `yaml:"item_speed"`
	ItemSpawnInterval int     `yaml:"item_spawn_interval"`
	HealAmount        int     `yaml:"heal_amount"`
	HealCap           int     `yaml:"heal_cap"` // 0 leaves healing unbounded

	BossHPThresholds []int `yaml:"boss_hp_thresholds"`
}

// DefaultTuning returns the stock game balance.
func DefaultTuning() Tuning {
	return Tuning{
		ViewWidth:  1000,
		ViewHeight: 1000,

		PlayersHP:   1000,
		PlayerSize:  Size{W: 50, H: 80},
		PlayerSpeed: 5,

		BossHP:   5000,
		BossSize: Size{W: 500, H: 350},

		EnemySize:             Size{W: 50, H: 50},
		EnemySpawnProbability: 250,
		EnemyAttackInterval:   100,

		PlayerWeaponSize:  Size{W: 10, H: 40},
		PlayerWeaponSpeed: 15,
		PlayerWeaponRise:  40,
		EnemyWeaponSize:   Size{W: 10, H: 40},
		EnemyWeaponSpeed:  5,

		ItemSize:          Size{W: 40, H: 40},
		ItemSpeed:         1,
		ItemSpawnInterval: 300,
		HealAmount:        20,

		BossHPThresholds: []int{
			4950, 4900, 4850, 4750, 4650, 4550, 4350, 4050,
			3750, 3350, 2950, 2450, 1950, 1450, 950,
		},
	}
}

// Validate reports the first setting that cannot drive a session.
func (t Tuning) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"view_width", float64(t.ViewWidth)},
		{"view_height", float64(t.ViewHeight)},
		{"players_hp", float64(t.PlayersHP)},
		{"player_speed", t.PlayerSpeed},
		{"boss_hp", float64(t.BossHP)},
		{"enemy_spawn_probability", float64(t.EnemySpawnProbability)},
		{"enemy_attack_interval", float64(t.EnemyAttackInterval)},
		{"player_weapon_speed", t.PlayerWeaponSpeed},
		{"enemy_weapon_speed", t.EnemyWeaponSpeed},
		{"item_speed", t.ItemSpeed},
		{"item_spawn_interval", float64(t.ItemSpawnInterval)},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", p.name, p.value)
		}
	}

	sizes := []struct {
		name string
		size Size
	}{
		{"player_size", t.PlayerSize},
		{"boss_size", t.BossSize},
		{"enemy_size", t.EnemySize},
		{"player_weapon_size", t.PlayerWeaponSize},
		{"enemy_weapon_size", t.EnemyWeaponSize},
		{"item_size", t.ItemSize},
	}
	for _, s := range sizes {
		if s.size.W <= 0 || s.size.H <= 0 {
			return fmt.Errorf("%s must be positive, got %dx%d", s.name, s.size.W, s.size.H)
		}
	}

	if t.PlayerSize.W*2 > t.ViewWidth || t.PlayerSize.H > t.ViewHeight {
		return errors.New("player_size does not fit the view")
	}
	if t.BossSize.W > t.ViewWidth || t.BossSize.H > t.ViewHeight {
		return errors.New("boss_size does not fit the view")
	}
	if t.EnemySize.W > t.ViewWidth || t.ItemSize.W >= t.ViewWidth {
		return errors.New("enemy_size or item_size is wider than the view")
	}
	if t.HealAmount < 0 || t.HealCap < 0 {
		return errors.New("heal_amount and heal_cap must not be negative")
	}
	if t.PlayerWeaponRise < 0 {
		return errors.New("player_weapon_rise must not be negative")
	}

	for i, th := range t.BossHPThresholds {
		if th <= 0 || th >= t.BossHP {
			return fmt.Errorf("boss_hp_thresholds[%d] = %d outside (0, %d)", i, th, t.BossHP)
		}
		if i > 0 && th >= t.BossHPThresholds[i-1] {
			return fmt.Errorf("boss_hp_thresholds must be strictly descending at index %d", i)
		}
	}
	return nil
}

// LoadTuning reads a YAML tuning file over the defaults. Keys missing from the
// file keep their default value. An empty path returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("invalid tuning %s: %w", path, err)
	}
	return t, nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding values that are already set. Missing files
// are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}
