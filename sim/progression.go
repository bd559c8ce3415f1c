package sim

import "math/rand"

// XPThreshold returns the XP needed to leave level
func XPThreshold(level int, xpPerLevel float64) float64 {
	return float64(level) * xpPerLevel
}

// Progression turns collected XP into levels and upgrade choices
type Progression struct {
	config Config
	rng    *rand.Rand
	pool   []Upgrade
}

// NewProgression creates a progression controller over the fixed upgrade pool
func NewProgression(config Config, rng *rand.Rand) *Progression {
	return &Progression{
		config: config,
		rng:    rng,
		pool:   NewUpgradePool(config),
	}
}

// Pool returns a copy of the upgrade pool
func (p *Progression) Pool() []Upgrade {
	out := make([]Upgrade, len(p.pool))
	copy(out, p.pool)
	return out
}

// Threshold returns the XP needed to leave level
func (p *Progression) Threshold(level int) float64 {
	return XPThreshold(level, p.config.Progression.XPPerLevel)
}

// Check levels the player up once if XP reached the threshold.
// XP is decremented by the threshold so overflow carries into the next level.
// When upgrades are on offer the state switches to PhaseChoosingUpgrade and the sampled
// choices are returned; a level-up with nothing left to offer keeps the simulation running.
func (p *Progression) Check(s *State) (choices []Upgrade, leveled bool) {
	player := &s.Player
	threshold := p.Threshold(player.Level)
	if player.XP < threshold {
		return nil, false
	}

	player.XP -= threshold
	player.Level++
	player.AttackRange += p.config.Progression.LevelUpRangeBonus

	available := AvailableUpgrades(p.pool, *player)
	choices = SampleUpgrades(p.rng, available, p.config.Progression.ChoicesPerLevel)
	if len(choices) == 0 {
		return nil, true
	}
	s.Choices = choices
	s.Phase = PhaseChoosingUpgrade
	return choices, true
}
