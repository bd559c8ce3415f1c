package sim

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate when a configuration cannot drive a simulation
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every gameplay constant of the simulation.
// Durations are measured in ticks, distances in viewport pixels, speeds in pixels per tick.
type Config struct {
	// ViewportWidth is the width of the playfield
	ViewportWidth float64 `yaml:"viewport_width"`

	// ViewportHeight is the height of the playfield
	ViewportHeight float64 `yaml:"viewport_height"`

	Player      PlayerConfig      `yaml:"player"`
	Enemy       EnemyConfig       `yaml:"enemy"`
	Spawn       SpawnConfig       `yaml:"spawn"`
	Weapons     WeaponsConfig     `yaml:"weapons"`
	Orb         OrbConfig         `yaml:"orb"`
	Progression ProgressionConfig `yaml:"progression"`
}

// PlayerConfig holds the player's starting stats
type PlayerConfig struct {
	Radius      float64 `yaml:"radius"`
	Speed       float64 `yaml:"speed"`
	MaxHP       float64 `yaml:"max_hp"`
	AttackRange float64 `yaml:"attack_range"`
}

// EnemyConfig holds enemy stat scaling: hp = BaseHP + level*HPGrowth,
// speed = min(BaseSpeed + level*SpeedGrowth, SpeedCap)
type EnemyConfig struct {
	Radius      float64 `yaml:"radius"`
	BaseHP      float64 `yaml:"base_hp"`
	HPGrowth    float64 `yaml:"hp_growth"`
	BaseSpeed   float64 `yaml:"base_speed"`
	SpeedGrowth float64 `yaml:"speed_growth"`
	SpeedCap    float64 `yaml:"speed_cap"`

	// ContactDamage is the HP the player loses per tick per touching enemy
	ContactDamage float64 `yaml:"contact_damage"`
}

// SpawnConfig holds spawn pacing: interval = max(IntervalFloor, IntervalStart - level*IntervalSlope)
type SpawnConfig struct {
	IntervalStart int `yaml:"interval_start"`
	IntervalSlope int `yaml:"interval_slope"`
	IntervalFloor int `yaml:"interval_floor"`

	// Margin pushes spawn points outside the viewport edge
	Margin float64 `yaml:"margin"`
}

// WeaponsConfig holds the starting loadout and the fixed weapon geometry
type WeaponsConfig struct {
	// Base weapon
	FireCooldown     int     `yaml:"fire_cooldown"`
	MinFireCooldown  int     `yaml:"min_fire_cooldown"`
	BulletDamage     float64 `yaml:"bullet_damage"`
	BulletSpeed      float64 `yaml:"bullet_speed"`
	BulletRadius     float64 `yaml:"bullet_radius"`
	DoubleShotSpread float64 `yaml:"double_shot_spread"`

	// Orbiting daggers
	DaggerOrbitRadius  float64 `yaml:"dagger_orbit_radius"`
	DaggerAngularSpeed float64 `yaml:"dagger_angular_speed"`
	DaggerHitRadius    float64 `yaml:"dagger_hit_radius"`
	DaggerDamage       float64 `yaml:"dagger_damage"`

	// Radial laser
	LaserLength      float64 `yaml:"laser_length"`
	LaserLifetime    int     `yaml:"laser_lifetime"`
	LaserTolerance   float64 `yaml:"laser_tolerance"`
	LaserDamage      float64 `yaml:"laser_damage"`
	LaserCooldown    int     `yaml:"laser_cooldown"`
	MinLaserCooldown int     `yaml:"min_laser_cooldown"`

	// Grenades
	GrenadeSpeed          float64 `yaml:"grenade_speed"`
	GrenadeRadius         float64 `yaml:"grenade_radius"`
	GrenadeFuse           int     `yaml:"grenade_fuse"`
	GrenadeExplosionTicks int     `yaml:"grenade_explosion_ticks"`
	GrenadeDamage         float64 `yaml:"grenade_damage"`
	GrenadeBlastRadius    float64 `yaml:"grenade_blast_radius"`
	GrenadeCooldown       int     `yaml:"grenade_cooldown"`
	MinGrenadeCooldown    int     `yaml:"min_grenade_cooldown"`
}

// OrbConfig holds XP pickup settings
type OrbConfig struct {
	Radius        float64 `yaml:"radius"`
	Speed         float64 `yaml:"speed"`
	Value         float64 `yaml:"value"`
	PickupPadding float64 `yaml:"pickup_padding"`
}

// ProgressionConfig holds level-up settings: threshold(L) = L * XPPerLevel
type ProgressionConfig struct {
	XPPerLevel        float64 `yaml:"xp_per_level"`
	LevelUpRangeBonus float64 `yaml:"level_up_range_bonus"`
	ChoicesPerLevel   int     `yaml:"choices_per_level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ViewportWidth:  1024,
		ViewportHeight: 768,
		Player: PlayerConfig{
			Radius:      15,
			Speed:       3,
			MaxHP:       100,
			AttackRange: 150,
		},
		Enemy: EnemyConfig{
			Radius:        15,
			BaseHP:        2,
			HPGrowth:      1,
			BaseSpeed:     1.2,
			SpeedGrowth:   0.1,
			SpeedCap:      2.6,
			ContactDamage: 1,
		},
		Spawn: SpawnConfig{
			IntervalStart: 200,
			IntervalSlope: 15,
			IntervalFloor: 40,
			Margin:        15,
		},
		Weapons: WeaponsConfig{
			FireCooldown:     30,
			MinFireCooldown:  6,
			BulletDamage:     2,
			BulletSpeed:      8,
			BulletRadius:     4,
			DoubleShotSpread: 0.3,

			DaggerOrbitRadius:  50,
			DaggerAngularSpeed: 0.08,
			DaggerHitRadius:    8,
			DaggerDamage:       0.1,

			LaserLength:      300,
			LaserLifetime:    10,
			LaserTolerance:   3,
			LaserDamage:      0.3,
			LaserCooldown:    120,
			MinLaserCooldown: 30,

			GrenadeSpeed:          4,
			GrenadeRadius:         6,
			GrenadeFuse:           45,
			GrenadeExplosionTicks: 20,
			GrenadeDamage:         5,
			GrenadeBlastRadius:    60,
			GrenadeCooldown:       180,
			MinGrenadeCooldown:    45,
		},
		Orb: OrbConfig{
			Radius:        5,
			Speed:         2,
			Value:         1,
			PickupPadding: 0,
		},
		Progression: ProgressionConfig{
			XPPerLevel:        5,
			LevelUpRangeBonus: 10,
			ChoicesPerLevel:   3,
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig, so a file may override any subset of fields
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate checks that the configuration can drive a simulation
func (c Config) Validate() error {
	switch {
	case c.Player.Radius <= 0:
		return fmt.Errorf("%w: player radius must be positive", ErrInvalidConfig)
	case c.ViewportWidth < 2*c.Player.Radius || c.ViewportHeight < 2*c.Player.Radius:
		return fmt.Errorf("%w: viewport %.0fx%.0f cannot hold player of radius %.0f",
			ErrInvalidConfig, c.ViewportWidth, c.ViewportHeight, c.Player.Radius)
	case c.Player.MaxHP <= 0:
		return fmt.Errorf("%w: player max hp must be positive", ErrInvalidConfig)
	case c.Spawn.IntervalFloor < 1:
		return fmt.Errorf("%w: spawn interval floor must be at least 1 tick", ErrInvalidConfig)
	case c.Progression.XPPerLevel <= 0:
		return fmt.Errorf("%w: xp per level must be positive", ErrInvalidConfig)
	case c.Progression.ChoicesPerLevel < 1:
		return fmt.Errorf("%w: choices per level must be at least 1", ErrInvalidConfig)
	case c.Weapons.FireCooldown < 1 || c.Weapons.LaserCooldown < 1 || c.Weapons.GrenadeCooldown < 1:
		return fmt.Errorf("%w: weapon cooldowns must be at least 1 tick", ErrInvalidConfig)
	}
	return nil
}
