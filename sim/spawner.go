package sim

import "math/rand"

// Edge identifies one side of the viewport
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// Spawner produces enemies at the viewport edges on a tick timer
type Spawner struct {
	config Config
	rng    *rand.Rand
	nextID func() EntityID

	lastSpawnTick uint64
}

// NewSpawner creates a spawner drawing positions from rng and IDs from nextID
func NewSpawner(config Config, rng *rand.Rand, nextID func() EntityID) *Spawner {
	return &Spawner{
		config: config,
		rng:    rng,
		nextID: nextID,
	}
}

// SpawnInterval returns the number of ticks between spawns at level
func (s *Spawner) SpawnInterval(level int) int {
	c := s.config.Spawn
	return max(c.IntervalFloor, c.IntervalStart-level*c.IntervalSlope)
}

// TrySpawn returns a new enemy when tick has crossed the spawn interval since the last spawn.
// The first interval is measured from tick 0.
func (s *Spawner) TrySpawn(tick uint64, level int) (Enemy, bool) {
	interval := uint64(s.SpawnInterval(level))
	if tick-s.lastSpawnTick < interval {
		return Enemy{}, false
	}
	s.lastSpawnTick = tick

	enemy := NewEnemy(s.config, level, s.edgePoint())
	enemy.ID = s.nextID()
	return enemy, true
}

// NewEnemy creates an enemy whose stats are a pure function of level
func NewEnemy(config Config, level int, pos Vec2) Enemy {
	c := config.Enemy
	hp := c.BaseHP + float64(level)*c.HPGrowth
	speed := c.BaseSpeed + float64(level)*c.SpeedGrowth
	if c.SpeedCap > 0 && speed > c.SpeedCap {
		speed = c.SpeedCap
	}
	return Enemy{
		Pos:    pos,
		Radius: c.Radius,
		HP:     hp,
		MaxHP:  hp,
		Speed:  speed,
	}
}

// edgePoint returns a uniform point on a uniformly chosen edge, pushed Margin outside
func (s *Spawner) edgePoint() Vec2 {
	w := s.config.ViewportWidth
	h := s.config.ViewportHeight
	m := s.config.Spawn.Margin

	switch Edge(s.rng.Intn(4)) {
	case EdgeTop:
		return Vec2{X: s.rng.Float64() * w, Y: -m}
	case EdgeRight:
		return Vec2{X: w + m, Y: s.rng.Float64() * h}
	case EdgeBottom:
		return Vec2{X: s.rng.Float64() * w, Y: h + m}
	default:
		return Vec2{X: -m, Y: s.rng.Float64() * h}
	}
}
