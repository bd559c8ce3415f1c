package sim

// CollisionSystem resolves every proximity rule of one tick, using a spatial grid
// to limit each query to nearby enemies
type CollisionSystem struct {
	config Config
	nextID func() EntityID

	grid       *Grid
	candidates []int
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(config Config, nextID func() EntityID) *CollisionSystem {
	return &CollisionSystem{
		config:     config,
		nextID:     nextID,
		grid:       NewGrid(config.ViewportWidth, config.ViewportHeight, gridCellSize),
		candidates: make([]int, 0, 64),
	}
}

// Resolve applies the collision rules in order: bullets, lasers, daggers, grenade blasts,
// enemy contact, orb pickup. Removals are only marked; the caller compacts afterwards.
// It returns true when the player died this tick, in which case orbs are not collected.
func (c *CollisionSystem) Resolve(s *State) (playerDied bool) {
	c.grid.Rebuild(s.Enemies)

	c.resolveBullets(s)
	c.resolveLasers(s)
	c.resolveDaggers(s)
	c.resolveGrenades(s)

	if c.resolveContact(s) {
		return true
	}
	c.resolveOrbs(s)
	return false
}

// DamageEnemy applies damage to a live enemy; a killed enemy drops an orb
func (c *CollisionSystem) DamageEnemy(s *State, enemy *Enemy, damage float64) {
	if enemy.Dead {
		return
	}
	enemy.HP -= damage
	if enemy.HP > 0 {
		return
	}
	enemy.Dead = true
	s.Kills++
	s.Orbs = append(s.Orbs, Orb{
		ID:     c.nextID(),
		Pos:    enemy.Pos,
		Radius: c.config.Orb.Radius,
		Value:  c.config.Orb.Value,
	})
}

// resolveBullets consumes each bullet on its first hit
func (c *CollisionSystem) resolveBullets(s *State) {
	for i := range s.Projectiles {
		p := &s.Projectiles[i]
		if p.Dead || p.Kind != ProjectileBullet {
			continue
		}
		c.candidates = c.grid.Near(p.Pos, p.Radius, c.candidates)
		for _, j := range c.candidates {
			e := &s.Enemies[j]
			if e.Dead {
				continue
			}
			if Distance(p.Pos, e.Pos) < p.Radius+e.Radius {
				c.DamageEnemy(s, e, p.Damage)
				p.Dead = true
				break
			}
		}
	}
}

// resolveLasers damages every enemy touching a live beam; beams are not consumed
func (c *CollisionSystem) resolveLasers(s *State) {
	for i := range s.Projectiles {
		p := &s.Projectiles[i]
		if p.Dead || p.Kind != ProjectileLaser {
			continue
		}
		end := p.BeamEnd()
		c.candidates = c.grid.NearSegment(p.Pos, end, p.Radius, c.candidates)
		for _, j := range c.candidates {
			e := &s.Enemies[j]
			if e.Dead {
				continue
			}
			if PointSegmentDistance(e.Pos, p.Pos, end) < e.Radius+p.Radius {
				c.DamageEnemy(s, e, p.Damage)
			}
		}
	}
}

// resolveDaggers damages enemies near any dagger point, once per point per tick
func (c *CollisionSystem) resolveDaggers(s *State) {
	if len(s.Daggers) == 0 {
		return
	}
	damage := s.Player.Loadout.DaggerDamage
	hitRadius := c.config.Weapons.DaggerHitRadius
	for _, point := range s.Daggers {
		c.candidates = c.grid.Near(point, hitRadius, c.candidates)
		for _, j := range c.candidates {
			e := &s.Enemies[j]
			if e.Dead {
				continue
			}
			if Distance(point, e.Pos) < e.Radius+hitRadius {
				c.DamageEnemy(s, e, damage)
			}
		}
	}
}

// resolveGrenades applies each blast exactly once, on the tick the grenade starts exploding
func (c *CollisionSystem) resolveGrenades(s *State) {
	for i := range s.Projectiles {
		p := &s.Projectiles[i]
		if p.Dead || p.Kind != ProjectileGrenade || p.Phase != GrenadeExploding || p.Detonated {
			continue
		}
		p.Detonated = true
		c.candidates = c.grid.Near(p.Pos, p.BlastRadius, c.candidates)
		for _, j := range c.candidates {
			e := &s.Enemies[j]
			if e.Dead {
				continue
			}
			if Distance(p.Pos, e.Pos) < p.BlastRadius+e.Radius {
				c.DamageEnemy(s, e, p.Damage)
			}
		}
	}
}

// resolveContact drains player HP for every touching enemy; enemies are not removed
func (c *CollisionSystem) resolveContact(s *State) bool {
	player := &s.Player
	c.candidates = c.grid.Near(player.Pos, player.Radius, c.candidates)
	for _, i := range c.candidates {
		e := &s.Enemies[i]
		if e.Dead {
			continue
		}
		if Distance(player.Pos, e.Pos) < player.Radius+e.Radius {
			player.HP -= c.config.Enemy.ContactDamage
		}
	}
	if player.HP <= 0 {
		player.HP = 0
		return true
	}
	return false
}

// resolveOrbs collects orbs within pickup distance
func (c *CollisionSystem) resolveOrbs(s *State) {
	player := &s.Player
	padding := c.config.Orb.PickupPadding
	for i := range s.Orbs {
		o := &s.Orbs[i]
		if o.Collected {
			continue
		}
		if Distance(player.Pos, o.Pos) < player.Radius+o.Radius+padding {
			o.Collected = true
			player.XP += o.Value
		}
	}
}
