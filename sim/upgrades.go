package sim

import (
	"fmt"
	"math/rand"
)

// UpgradeKind identifies a level-up reward
type UpgradeKind int

const (
	UpgradeFireRate UpgradeKind = iota
	UpgradeDamage
	UpgradeBulletSpeed
	UpgradeDoubleShot
	UpgradeAttackRange
	UpgradeDaggers
	UpgradeDaggerDamage
	UpgradeLaser
	UpgradeLaserDamage
	UpgradeLaserCooldown
	UpgradeGrenade
	UpgradeGrenadeDamage
	UpgradeBlastRadius
	UpgradeGrenadeCooldown
	UpgradeKindCount // Total number of upgrade kinds
)

// Upgrade is one entry of the upgrade pool.
// Magnitude is what Apply adds (or removes, for cooldowns); Limit is the floor for
// cooldown reductions and is ignored by other kinds.
type Upgrade struct {
	Kind      UpgradeKind
	Magnitude float64
	Limit     float64
}

// NewUpgradePool returns the fixed upgrade pool with magnitudes and cooldown floors from config
func NewUpgradePool(config Config) []Upgrade {
	w := config.Weapons
	return []Upgrade{
		{Kind: UpgradeFireRate, Magnitude: 4, Limit: float64(w.MinFireCooldown)},
		{Kind: UpgradeDamage, Magnitude: 1},
		{Kind: UpgradeBulletSpeed, Magnitude: 2},
		{Kind: UpgradeDoubleShot, Magnitude: 1},
		{Kind: UpgradeAttackRange, Magnitude: 30},
		{Kind: UpgradeDaggers, Magnitude: 1},
		{Kind: UpgradeDaggerDamage, Magnitude: 0.05},
		{Kind: UpgradeLaser, Magnitude: 1},
		{Kind: UpgradeLaserDamage, Magnitude: 0.15},
		{Kind: UpgradeLaserCooldown, Magnitude: 15, Limit: float64(w.MinLaserCooldown)},
		{Kind: UpgradeGrenade, Magnitude: 1},
		{Kind: UpgradeGrenadeDamage, Magnitude: 3},
		{Kind: UpgradeBlastRadius, Magnitude: 15},
		{Kind: UpgradeGrenadeCooldown, Magnitude: 30, Limit: float64(w.MinGrenadeCooldown)},
	}
}

// Label returns the short menu label
func (u Upgrade) Label() string {
	switch u.Kind {
	case UpgradeFireRate:
		return "Rapid Fire"
	case UpgradeDamage:
		return "Heavy Rounds"
	case UpgradeBulletSpeed:
		return "Velocity"
	case UpgradeDoubleShot:
		return "Double Shot"
	case UpgradeAttackRange:
		return "Long Sight"
	case UpgradeDaggers:
		return "Orbiting Dagger"
	case UpgradeDaggerDamage:
		return "Sharpened Daggers"
	case UpgradeLaser:
		return "Radial Laser"
	case UpgradeLaserDamage:
		return "Focused Beam"
	case UpgradeLaserCooldown:
		return "Capacitor"
	case UpgradeGrenade:
		return "Grenade"
	case UpgradeGrenadeDamage:
		return "High Explosive"
	case UpgradeBlastRadius:
		return "Wide Blast"
	case UpgradeGrenadeCooldown:
		return "Quick Pin"
	default:
		return "Unknown"
	}
}

// Description returns a one-line explanation of the effect
func (u Upgrade) Description() string {
	switch u.Kind {
	case UpgradeFireRate:
		return fmt.Sprintf("Fire %.0f ticks sooner", u.Magnitude)
	case UpgradeDamage:
		return fmt.Sprintf("+%g bullet damage", u.Magnitude)
	case UpgradeBulletSpeed:
		return fmt.Sprintf("+%g bullet speed", u.Magnitude)
	case UpgradeDoubleShot:
		return "Fire a second bullet at an angle"
	case UpgradeAttackRange:
		return fmt.Sprintf("+%g attack range", u.Magnitude)
	case UpgradeDaggers:
		return fmt.Sprintf("+%g dagger circling you", u.Magnitude)
	case UpgradeDaggerDamage:
		return fmt.Sprintf("+%g dagger damage per tick", u.Magnitude)
	case UpgradeLaser:
		return fmt.Sprintf("+%g laser beam around you", u.Magnitude)
	case UpgradeLaserDamage:
		return fmt.Sprintf("+%g laser damage per tick", u.Magnitude)
	case UpgradeLaserCooldown:
		return fmt.Sprintf("Lasers fire %.0f ticks sooner", u.Magnitude)
	case UpgradeGrenade:
		return fmt.Sprintf("+%g grenade per throw", u.Magnitude)
	case UpgradeGrenadeDamage:
		return fmt.Sprintf("+%g grenade damage", u.Magnitude)
	case UpgradeBlastRadius:
		return fmt.Sprintf("+%g blast radius", u.Magnitude)
	case UpgradeGrenadeCooldown:
		return fmt.Sprintf("Throw %.0f ticks sooner", u.Magnitude)
	default:
		return ""
	}
}

// String returns the label, for logs
func (u Upgrade) String() string {
	return u.Label()
}

// Available reports whether offering u to p would change anything
func (u Upgrade) Available(p Player) bool {
	l := p.Loadout
	switch u.Kind {
	case UpgradeFireRate:
		return float64(l.FireCooldown) > u.Limit
	case UpgradeDoubleShot:
		return !l.DoubleShot
	case UpgradeDaggerDamage:
		return l.DaggerCount > 0
	case UpgradeLaserDamage:
		return l.LaserCount > 0
	case UpgradeLaserCooldown:
		return l.LaserCount > 0 && float64(l.LaserCooldown) > u.Limit
	case UpgradeGrenadeDamage, UpgradeBlastRadius:
		return l.GrenadeCount > 0
	case UpgradeGrenadeCooldown:
		return l.GrenadeCount > 0 && float64(l.GrenadeCooldown) > u.Limit
	default:
		return u.Kind >= 0 && u.Kind < UpgradeKindCount
	}
}

// Apply returns p with the upgrade's effect applied; p itself is not modified
func (u Upgrade) Apply(p Player) Player {
	l := &p.Loadout
	switch u.Kind {
	case UpgradeFireRate:
		l.FireCooldown = reduceCooldown(l.FireCooldown, u.Magnitude, u.Limit)
	case UpgradeDamage:
		l.BulletDamage += u.Magnitude
	case UpgradeBulletSpeed:
		l.BulletSpeed += u.Magnitude
	case UpgradeDoubleShot:
		l.DoubleShot = true
	case UpgradeAttackRange:
		p.AttackRange += u.Magnitude
	case UpgradeDaggers:
		l.DaggerCount += int(u.Magnitude)
	case UpgradeDaggerDamage:
		l.DaggerDamage += u.Magnitude
	case UpgradeLaser:
		l.LaserCount += int(u.Magnitude)
	case UpgradeLaserDamage:
		l.LaserDamage += u.Magnitude
	case UpgradeLaserCooldown:
		l.LaserCooldown = reduceCooldown(l.LaserCooldown, u.Magnitude, u.Limit)
	case UpgradeGrenade:
		l.GrenadeCount += int(u.Magnitude)
	case UpgradeGrenadeDamage:
		l.GrenadeDamage += u.Magnitude
	case UpgradeBlastRadius:
		l.GrenadeBlastRadius += u.Magnitude
	case UpgradeGrenadeCooldown:
		l.GrenadeCooldown = reduceCooldown(l.GrenadeCooldown, u.Magnitude, u.Limit)
	}
	return p
}

func reduceCooldown(current int, by, floor float64) int {
	next := current - int(by)
	return max(next, int(floor), 1)
}

// AvailableUpgrades filters pool down to the upgrades that would change p
func AvailableUpgrades(pool []Upgrade, p Player) []Upgrade {
	out := make([]Upgrade, 0, len(pool))
	for _, u := range pool {
		if u.Available(p) {
			out = append(out, u)
		}
	}
	return out
}

// SampleUpgrades draws n distinct entries of pool without replacement.
// When the pool holds fewer than n entries all of them are returned, shuffled.
func SampleUpgrades(rng *rand.Rand, pool []Upgrade, n int) []Upgrade {
	candidates := make([]Upgrade, len(pool))
	copy(candidates, pool)
	n = min(n, len(candidates))

	// Partial Fisher-Yates: the first n slots end up as the sample
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	return candidates[:n]
}
