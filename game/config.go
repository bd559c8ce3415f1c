package game

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"survivors/sim"
)

// Config holds the windowed host configuration.
// The simulation settings are inlined, so one YAML file serves every host.
type Config struct {
	sim.Config `yaml:",inline"`

	Window    WindowConfig    `yaml:"window"`
	Profiling ProfilingConfig `yaml:"profiling"`
}

// WindowConfig holds presentation settings
type WindowConfig struct {
	// Title is the window title
	Title string `yaml:"title"`

	// Scale multiplies the viewport size to get the initial window size
	Scale float64 `yaml:"scale"`

	// Resizable lets the window be resized; the arena is letterboxed
	Resizable bool `yaml:"resizable"`

	// ShowAttackRange draws the base weapon's targeting ring around the player
	ShowAttackRange bool `yaml:"show_attack_range"`
}

// ProfilingConfig controls slow-step profile capture
type ProfilingConfig struct {
	// Enabled turns slow-step detection on
	Enabled bool `yaml:"enabled"`

	// Dir is where profiles and traces are written
	Dir string `yaml:"dir"`

	// StepBudget is the simulation step duration that triggers a capture
	StepBudget time.Duration `yaml:"step_budget"`

	// Cooldown is the minimum time between captures
	Cooldown time.Duration `yaml:"cooldown"`

	// CaptureDuration is how long each capture records
	CaptureDuration time.Duration `yaml:"capture_duration"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Config: sim.DefaultConfig(),
		Window: WindowConfig{
			Title:           "Survivors",
			Scale:           1,
			Resizable:       true,
			ShowAttackRange: true,
		},
		Profiling: ProfilingConfig{
			Enabled:         false,
			Dir:             "profiles",
			StepBudget:      8 * time.Millisecond,
			Cooldown:        10 * time.Second,
			CaptureDuration: 5 * time.Second,
		},
	}
}

// ScreenWidth returns the logical screen width in pixels
func (c Config) ScreenWidth() int {
	return int(c.ViewportWidth)
}

// ScreenHeight returns the logical screen height in pixels
func (c Config) ScreenHeight() int {
	return int(c.ViewportHeight)
}

// Validate checks the simulation settings and the host settings
func (c Config) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if c.Window.Scale <= 0 {
		return fmt.Errorf("%w: window scale must be positive", sim.ErrInvalidConfig)
	}
	if c.Profiling.Enabled && c.Profiling.StepBudget <= 0 {
		return fmt.Errorf("%w: profiling step budget must be positive", sim.ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads a YAML file over DefaultConfig. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, config.Validate()
}
