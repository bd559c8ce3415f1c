package sim

import (
	"math"
	"math/rand"
)

// laserPhaseStep rotates each laser volley relative to the previous one
const laserPhaseStep = 0.35

// cooldownGate tracks when a weapon last fired, measured in ticks
type cooldownGate struct {
	lastFired uint64
	fired     bool
}

// Ready checks if the weapon can fire at tick.
// A weapon that has never fired is always ready.
func (g cooldownGate) Ready(tick uint64, cooldown int) bool {
	if !g.fired {
		return true
	}
	return tick-g.lastFired >= uint64(max(cooldown, 0))
}

// Fire records tick as the last firing tick
func (g *cooldownGate) Fire(tick uint64) {
	g.lastFired = tick
	g.fired = true
}

// Armory owns the firing state of every weapon subsystem
type Armory struct {
	config Config
	rng    *rand.Rand
	nextID func() EntityID

	base    cooldownGate
	laser   cooldownGate
	grenade cooldownGate

	// orbitAngle is the dagger ring rotation, advanced every tick
	orbitAngle float64

	// laserPhase is the rotation of the next laser volley
	laserPhase float64
}

// NewArmory creates the weapon subsystems
func NewArmory(config Config, rng *rand.Rand, nextID func() EntityID) *Armory {
	return &Armory{
		config: config,
		rng:    rng,
		nextID: nextID,
	}
}

// Fire runs every weapon's cooldown gate and returns the projectiles created this tick
func (a *Armory) Fire(tick uint64, player Player, enemies []Enemy) []Projectile {
	var out []Projectile
	out = append(out, a.FireBase(tick, player, enemies)...)
	out = append(out, a.FireLasers(tick, player)...)
	out = append(out, a.ThrowGrenades(tick, player)...)
	return out
}

// NearestEnemy returns the index of the closest live enemy within maxRange of from, or -1.
// The first enemy in list order wins a tie.
func NearestEnemy(from Vec2, enemies []Enemy, maxRange float64) int {
	nearest := -1
	rangeSq := maxRange * maxRange
	nearestDistanceSq := rangeSq
	for i := range enemies {
		if enemies[i].Dead {
			continue
		}
		// Squared distance avoids a sqrt per candidate
		dx := enemies[i].Pos.X - from.X
		dy := enemies[i].Pos.Y - from.Y
		distanceSq := dx*dx + dy*dy
		if distanceSq > rangeSq {
			continue
		}
		// Ties keep the earlier enemy
		if nearest == -1 || distanceSq < nearestDistanceSq {
			nearestDistanceSq = distanceSq
			nearest = i
		}
	}
	return nearest
}

// FireBase fires the base weapon at the nearest enemy within attack range.
// With no target nothing is fired and the cooldown stays ready.
func (a *Armory) FireBase(tick uint64, player Player, enemies []Enemy) []Projectile {
	l := player.Loadout
	if !a.base.Ready(tick, l.FireCooldown) {
		return nil
	}

	target := NearestEnemy(player.Pos, enemies, player.AttackRange)
	if target < 0 {
		return nil
	}
	dir, ok := enemies[target].Pos.Sub(player.Pos).Normalize()
	if !ok {
		// Target sits exactly on the player; any direction hits it
		dir = Vec2{X: 0, Y: -1}
	}
	a.base.Fire(tick)

	angle := dir.Angle()
	shots := []Projectile{a.newBullet(player, angle)}
	if l.DoubleShot {
		shots = append(shots, a.newBullet(player, angle+a.config.Weapons.DoubleShotSpread))
	}
	return shots
}

func (a *Armory) newBullet(player Player, angle float64) Projectile {
	return Projectile{
		ID:     a.nextID(),
		Kind:   ProjectileBullet,
		Pos:    player.Pos,
		Vel:    FromAngle(angle).Scale(player.Loadout.BulletSpeed),
		Damage: player.Loadout.BulletDamage,
		Radius: a.config.Weapons.BulletRadius,
		Angle:  angle,
	}
}

// AdvanceDaggers rotates the dagger ring by one tick
func (a *Armory) AdvanceDaggers() {
	a.orbitAngle = NormalizeAngle(a.orbitAngle + a.config.Weapons.DaggerAngularSpeed)
}

// DaggerPoints appends the current dagger positions around the player to dst
func (a *Armory) DaggerPoints(player Player, dst []Vec2) []Vec2 {
	count := player.Loadout.DaggerCount
	if count <= 0 {
		return dst
	}
	step := 2 * math.Pi / float64(count)
	radius := a.config.Weapons.DaggerOrbitRadius
	for i := 0; i < count; i++ {
		angle := a.orbitAngle + float64(i)*step
		dst = append(dst, player.Pos.Add(FromAngle(angle).Scale(radius)))
	}
	return dst
}

// FireLasers emits count beams evenly spaced over the full circle around the player
func (a *Armory) FireLasers(tick uint64, player Player) []Projectile {
	l := player.Loadout
	if l.LaserCount <= 0 || !a.laser.Ready(tick, l.LaserCooldown) {
		return nil
	}
	a.laser.Fire(tick)

	w := a.config.Weapons
	step := 2 * math.Pi / float64(l.LaserCount)
	beams := make([]Projectile, 0, l.LaserCount)
	for i := 0; i < l.LaserCount; i++ {
		beams = append(beams, Projectile{
			ID:     a.nextID(),
			Kind:   ProjectileLaser,
			Pos:    player.Pos,
			Damage: l.LaserDamage,
			Radius: w.LaserTolerance,
			Angle:  NormalizeAngle(a.laserPhase + float64(i)*step),
			Length: w.LaserLength,
			Life:   w.LaserLifetime,
		})
	}
	a.laserPhase = NormalizeAngle(a.laserPhase + laserPhaseStep)
	return beams
}

// ThrowGrenades throws count grenades, each in a uniformly random direction
func (a *Armory) ThrowGrenades(tick uint64, player Player) []Projectile {
	l := player.Loadout
	if l.GrenadeCount <= 0 || !a.grenade.Ready(tick, l.GrenadeCooldown) {
		return nil
	}
	a.grenade.Fire(tick)

	w := a.config.Weapons
	grenades := make([]Projectile, 0, l.GrenadeCount)
	for i := 0; i < l.GrenadeCount; i++ {
		angle := a.rng.Float64() * 2 * math.Pi
		g := Projectile{
			ID:             a.nextID(),
			Kind:           ProjectileGrenade,
			Pos:            player.Pos,
			Vel:            FromAngle(angle).Scale(w.GrenadeSpeed),
			Damage:         l.GrenadeDamage,
			Radius:         w.GrenadeRadius,
			Angle:          angle,
			Phase:          GrenadeArmed,
			Fuse:           w.GrenadeFuse,
			BlastRadius:    l.GrenadeBlastRadius,
			ExplosionTicks: w.GrenadeExplosionTicks,
		}
		if g.Fuse <= 0 {
			g.Phase = GrenadeExploding
		}
		grenades = append(grenades, g)
	}
	return grenades
}

// advanceProjectiles moves bullets, ages laser beams and runs the grenade timers.
// Expired projectiles are marked Dead; the caller compacts.
func advanceProjectiles(projectiles []Projectile, width, height float64) {
	for i := range projectiles {
		p := &projectiles[i]
		if p.Dead {
			continue
		}
		switch p.Kind {
		case ProjectileBullet:
			p.Pos = p.Pos.Add(p.Vel)
			if p.Pos.X < -p.Radius || p.Pos.X > width+p.Radius ||
				p.Pos.Y < -p.Radius || p.Pos.Y > height+p.Radius {
				p.Dead = true
			}
		case ProjectileLaser:
			p.Life--
			if p.Life <= 0 {
				p.Dead = true
			}
		case ProjectileGrenade:
			advanceGrenade(p)
		}
	}
}

// advanceGrenade runs armed -> exploding -> expired.
// The explosion animation only starts counting once the blast has been applied.
func advanceGrenade(g *Projectile) {
	switch g.Phase {
	case GrenadeArmed:
		g.Pos = g.Pos.Add(g.Vel)
		g.Fuse--
		if g.Fuse <= 0 {
			g.Phase = GrenadeExploding
			g.Vel = Vec2{}
		}
	case GrenadeExploding:
		if !g.Detonated {
			return
		}
		g.ExplosionAge++
		if g.ExplosionAge >= g.ExplosionTicks {
			g.Phase = GrenadeExpired
			g.Dead = true
		}
	case GrenadeExpired:
		g.Dead = true
	}
}
