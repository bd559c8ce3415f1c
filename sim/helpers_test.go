package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// testRNG returns a seeded RNG for deterministic tests
func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

// testConfig returns the default config with contact damage disabled,
// so long-running tests do not end by accident
func testConfig() Config {
	config := DefaultConfig()
	config.Enemy.ContactDamage = 0
	return config
}

func newStartedSim(t *testing.T, config Config) *Simulation {
	t.Helper()
	s, err := NewSimulation(config, 42)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	return s
}

// idCounter returns an EntityID generator for subsystem tests
func idCounter() func() EntityID {
	var last EntityID
	return func() EntityID {
		last++
		return last
	}
}

type recordingMenu struct {
	presented [][]Upgrade
}

func (m *recordingMenu) PresentUpgradeChoices(options []Upgrade) {
	m.presented = append(m.presented, options)
}

type countingObserver struct {
	results []Result
}

func (o *countingObserver) GameOver(result Result) {
	o.results = append(o.results, result)
}

// randomInput returns an Input holding a random subset of directions
func randomInput(rng *rand.Rand) Input {
	keys := HeldKeys{}
	for d := DirUp; d <= DirRight; d++ {
		keys[d] = rng.Intn(2) == 0
	}
	return keys
}
