package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survivors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfigOverridesSubset(t *testing.T) {
	path := writeConfig(t, `
viewport_width: 800
player:
  speed: 5
enemy:
  contact_damage: 0
weapons:
  fire_cooldown: 12
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, 800.0, config.ViewportWidth)
	assert.Equal(t, defaults.ViewportHeight, config.ViewportHeight)
	assert.Equal(t, 5.0, config.Player.Speed)
	assert.Equal(t, defaults.Player.MaxHP, config.Player.MaxHP)
	assert.Equal(t, 0.0, config.Enemy.ContactDamage)
	assert.Equal(t, 12, config.Weapons.FireCooldown)
	assert.Equal(t, defaults.Weapons.LaserCooldown, config.Weapons.LaserCooldown)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	_, err = LoadConfig(writeConfig(t, "player: [not, a, map"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = LoadConfig(writeConfig(t, "progression:\n  xp_per_level: 0\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero player radius", func(c *Config) { c.Player.Radius = 0 }},
		{"viewport too small", func(c *Config) { c.ViewportHeight = 20 }},
		{"no hit points", func(c *Config) { c.Player.MaxHP = 0 }},
		{"spawn floor", func(c *Config) { c.Spawn.IntervalFloor = 0 }},
		{"no choices", func(c *Config) { c.Progression.ChoicesPerLevel = 0 }},
		{"fire cooldown", func(c *Config) { c.Weapons.FireCooldown = 0 }},
		{"grenade cooldown", func(c *Config) { c.Weapons.GrenadeCooldown = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
		})
	}
}
