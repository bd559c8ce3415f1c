package sim

// EntityID is a unique identifier for any entity of one simulation.
// IDs are never reused within a run, so renderers can key per-entity effects on them.
type EntityID uint64

// InvalidEntityID represents an unset entity reference
const InvalidEntityID EntityID = 0

// Loadout holds every owned weapon magnitude of the player
type Loadout struct {
	// Base weapon
	FireCooldown int
	BulletDamage float64
	BulletSpeed  float64
	DoubleShot   bool

	// Orbiting daggers (0 = not owned)
	DaggerCount  int
	DaggerDamage float64

	// Radial laser (0 = not owned)
	LaserCount    int
	LaserDamage   float64
	LaserCooldown int

	// Grenades (0 = not owned)
	GrenadeCount       int
	GrenadeDamage      float64
	GrenadeBlastRadius float64
	GrenadeCooldown    int
}

// Player is the avatar controlled by the input collaborator
type Player struct {
	Pos         Vec2
	Radius      float64
	Speed       float64
	HP          float64
	MaxHP       float64
	XP          float64
	Level       int
	AttackRange float64
	Loadout     Loadout
}

// Alive reports whether the player still has HP
func (p Player) Alive() bool {
	return p.HP > 0
}

// Enemy chases the player and dies when its HP reaches zero
type Enemy struct {
	ID     EntityID
	Pos    Vec2
	Radius float64
	HP     float64
	MaxHP  float64
	Speed  float64

	// Dead marks the enemy for removal at the end of the resolution pass
	Dead bool
}

// ProjectileKind identifies the weapon that created a projectile
type ProjectileKind int

const (
	ProjectileBullet ProjectileKind = iota
	ProjectileLaser
	ProjectileGrenade
)

// String returns the kind name
func (k ProjectileKind) String() string {
	switch k {
	case ProjectileBullet:
		return "bullet"
	case ProjectileLaser:
		return "laser"
	case ProjectileGrenade:
		return "grenade"
	default:
		return "unknown"
	}
}

// GrenadePhase is the lifecycle stage of a grenade
type GrenadePhase int

const (
	GrenadeArmed GrenadePhase = iota
	GrenadeExploding
	GrenadeExpired
)

// Projectile is a bullet, a laser beam or a grenade
type Projectile struct {
	ID     EntityID
	Kind   ProjectileKind
	Pos    Vec2
	Vel    Vec2
	Damage float64

	// Radius is the collision radius for bullets and grenades, and the hit tolerance for lasers
	Radius float64

	// Laser beams are segments from Pos along Angle with Length, alive for Life ticks
	Angle  float64
	Length float64
	Life   int

	// Grenade state
	Phase          GrenadePhase
	Fuse           int
	BlastRadius    float64
	ExplosionTicks int
	ExplosionAge   int
	Detonated      bool

	// Dead marks the projectile for removal at the end of the tick
	Dead bool
}

// BeamEnd returns the far end of a laser beam
func (p Projectile) BeamEnd() Vec2 {
	return p.Pos.Add(FromAngle(p.Angle).Scale(p.Length))
}

// ExplosionProgress returns 0..1 through the explosion animation
func (p Projectile) ExplosionProgress() float64 {
	if p.ExplosionTicks <= 0 {
		return 1
	}
	return clamp(float64(p.ExplosionAge)/float64(p.ExplosionTicks), 0, 1)
}

// Orb is an XP pickup dropped by a dead enemy
type Orb struct {
	ID     EntityID
	Pos    Vec2
	Radius float64
	Value  float64

	// Collected marks the orb for removal at the end of the tick
	Collected bool
}

// newPlayer creates the player at the center of the viewport
func newPlayer(config Config) Player {
	w := config.Weapons
	return Player{
		Pos:         Vec2{X: config.ViewportWidth / 2, Y: config.ViewportHeight / 2},
		Radius:      config.Player.Radius,
		Speed:       config.Player.Speed,
		HP:          config.Player.MaxHP,
		MaxHP:       config.Player.MaxHP,
		Level:       1,
		AttackRange: config.Player.AttackRange,
		Loadout: Loadout{
			FireCooldown:       w.FireCooldown,
			BulletDamage:       w.BulletDamage,
			BulletSpeed:        w.BulletSpeed,
			DaggerDamage:       w.DaggerDamage,
			LaserDamage:        w.LaserDamage,
			LaserCooldown:      w.LaserCooldown,
			GrenadeDamage:      w.GrenadeDamage,
			GrenadeBlastRadius: w.GrenadeBlastRadius,
			GrenadeCooldown:    w.GrenadeCooldown,
		},
	}
}

// compact removes, in place, every element for which remove returns true.
// The relative order of the kept elements is preserved.
func compact[T any](items []T, remove func(*T) bool) []T {
	kept := items[:0]
	for i := range items {
		if !remove(&items[i]) {
			kept = append(kept, items[i])
		}
	}
	// Zero the tail so removed values are not retained by the backing array
	var zero T
	for i := len(kept); i < len(items); i++ {
		items[i] = zero
	}
	return kept
}
