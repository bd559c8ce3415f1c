package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlayer(config Config) Player {
	p := newPlayer(config)
	p.Pos = Vec2{X: 500, Y: 400}
	return p
}

func enemyAt(x, y float64) Enemy {
	return Enemy{Pos: Vec2{X: x, Y: y}, Radius: 15, HP: 10, MaxHP: 10}
}

func TestCooldownGate(t *testing.T) {
	var g cooldownGate
	assert.True(t, g.Ready(0, 5), "never fired")

	g.Fire(10)
	assert.False(t, g.Ready(14, 5))
	assert.True(t, g.Ready(15, 5))
}

func TestFireBaseWithoutTargetKeepsCooldownReady(t *testing.T) {
	config := DefaultConfig()
	a := NewArmory(config, testRNG(), idCounter())
	player := testPlayer(config)

	assert.Empty(t, a.FireBase(1, player, nil))
	assert.False(t, a.base.fired)

	// An enemy outside attack range is ignored
	far := []Enemy{enemyAt(500+player.AttackRange+1, 400)}
	assert.Empty(t, a.FireBase(2, player, far))
	assert.False(t, a.base.fired)
}

func TestFireBaseTargetsNearestEnemy(t *testing.T) {
	config := DefaultConfig()
	a := NewArmory(config, testRNG(), idCounter())
	player := testPlayer(config)

	enemies := []Enemy{
		enemyAt(600, 400), // 100 right
		enemyAt(450, 400), // 50 left
		enemyAt(500, 300), // 100 up
	}
	shots := a.FireBase(1, player, enemies)
	require.Len(t, shots, 1)

	b := shots[0]
	assert.Equal(t, ProjectileBullet, b.Kind)
	assert.Equal(t, player.Pos, b.Pos)
	assert.InDelta(t, -player.Loadout.BulletSpeed, b.Vel.X, 1e-9)
	assert.InDelta(t, 0.0, b.Vel.Y, 1e-9)
	assert.Equal(t, player.Loadout.BulletDamage, b.Damage)

	// Cooldown gate holds the next shot
	assert.Empty(t, a.FireBase(2, player, enemies))
	assert.Len(t, a.FireBase(1+uint64(player.Loadout.FireCooldown), player, enemies), 1)
}

func TestFireBaseSkipsDeadEnemies(t *testing.T) {
	config := DefaultConfig()
	player := testPlayer(config)

	enemies := []Enemy{enemyAt(450, 400), enemyAt(600, 400)}
	enemies[0].Dead = true
	assert.Equal(t, 1, NearestEnemy(player.Pos, enemies, player.AttackRange))
}

func TestNearestEnemyTiesAndRange(t *testing.T) {
	from := Vec2{X: 500, Y: 400}
	enemies := []Enemy{
		enemyAt(600, 400),
		enemyAt(440, 400),
		enemyAt(560, 400),
		enemyAt(500, 340),
	}
	// 1, 2 and 3 are all 60 away; the earliest wins
	assert.Equal(t, 1, NearestEnemy(from, enemies, 150))
	assert.Equal(t, 1, NearestEnemy(from, enemies, 60), "range is inclusive")
	assert.Equal(t, -1, NearestEnemy(from, enemies, 59))

	enemies[1].Dead = true
	assert.Equal(t, 2, NearestEnemy(from, enemies, 150))
}

func TestDoubleShotAddsOffsetBullet(t *testing.T) {
	config := DefaultConfig()
	a := NewArmory(config, testRNG(), idCounter())
	player := testPlayer(config)
	player.Loadout.DoubleShot = true

	shots := a.FireBase(1, player, []Enemy{enemyAt(600, 400)})
	require.Len(t, shots, 2)
	assert.InDelta(t, 0.3, shots[1].Angle-shots[0].Angle, 1e-9)
	assert.InDelta(t, 0.3, shots[1].Vel.Angle()-shots[0].Vel.Angle(), 1e-9)
	assert.NotEqual(t, shots[0].ID, shots[1].ID)
}

func TestFireLasersSpreadOverFullCircle(t *testing.T) {
	config := DefaultConfig()
	a := NewArmory(config, testRNG(), idCounter())
	player := testPlayer(config)

	assert.Empty(t, a.FireLasers(1, player), "laser not owned")

	player.Loadout.LaserCount = 4
	beams := a.FireLasers(1, player)
	require.Len(t, beams, 4)
	for i, beam := range beams {
		assert.Equal(t, ProjectileLaser, beam.Kind)
		assert.Equal(t, player.Pos, beam.Pos)
		assert.Equal(t, config.Weapons.LaserLength, beam.Length)
		assert.Equal(t, config.Weapons.LaserLifetime, beam.Life)
		assert.InDelta(t, float64(i)*math.Pi/2, beam.Angle, 1e-9)
	}

	assert.Empty(t, a.FireLasers(2, player), "on cooldown")

	// The next volley is rotated
	next := a.FireLasers(1+uint64(player.Loadout.LaserCooldown), player)
	require.Len(t, next, 4)
	assert.InDelta(t, laserPhaseStep, next[0].Angle, 1e-9)
}

func TestDaggerPointsOrbitThePlayer(t *testing.T) {
	config := DefaultConfig()
	a := NewArmory(config, testRNG(), idCounter())
	player := testPlayer(config)

	assert.Empty(t, a.DaggerPoints(player, nil))

	player.Loadout.DaggerCount = 3
	points := a.DaggerPoints(player, nil)
	require.Len(t, points, 3)
	for _, p := range points {
		assert.InDelta(t, config.Weapons.DaggerOrbitRadius, Distance(p, player.Pos), 1e-9)
	}
	assert.InDelta(t, player.Pos.X+config.Weapons.DaggerOrbitRadius, points[0].X, 1e-9)

	a.AdvanceDaggers()
	moved := a.DaggerPoints(player, nil)
	angle := moved[0].Sub(player.Pos).Angle()
	assert.InDelta(t, config.Weapons.DaggerAngularSpeed, angle, 1e-9)
}

func TestThrowGrenades(t *testing.T) {
	config := DefaultConfig()
	a := NewArmory(config, testRNG(), idCounter())
	player := testPlayer(config)

	assert.Empty(t, a.ThrowGrenades(1, player))

	player.Loadout.GrenadeCount = 2
	grenades := a.ThrowGrenades(1, player)
	require.Len(t, grenades, 2)
	for _, g := range grenades {
		assert.Equal(t, ProjectileGrenade, g.Kind)
		assert.Equal(t, GrenadeArmed, g.Phase)
		assert.Equal(t, config.Weapons.GrenadeFuse, g.Fuse)
		assert.Equal(t, player.Loadout.GrenadeBlastRadius, g.BlastRadius)
		assert.InDelta(t, config.Weapons.GrenadeSpeed, g.Vel.Len(), 1e-9)
	}
}

func TestAdvanceProjectiles(t *testing.T) {
	config := DefaultConfig()
	w, h := config.ViewportWidth, config.ViewportHeight

	projectiles := []Projectile{
		{Kind: ProjectileBullet, Pos: Vec2{X: w - 1, Y: 10}, Vel: Vec2{X: 10}, Radius: 4},
		{Kind: ProjectileBullet, Pos: Vec2{X: 100, Y: 100}, Vel: Vec2{X: 1}, Radius: 4},
		{Kind: ProjectileLaser, Life: 2},
	}
	advanceProjectiles(projectiles, w, h)
	assert.True(t, projectiles[0].Dead, "left the viewport")
	assert.False(t, projectiles[1].Dead)
	assert.Equal(t, Vec2{X: 101, Y: 100}, projectiles[1].Pos)
	assert.False(t, projectiles[2].Dead)

	advanceProjectiles(projectiles, w, h)
	assert.True(t, projectiles[2].Dead, "laser lifetime exhausted")
}

func TestGrenadeLifecycle(t *testing.T) {
	g := Projectile{
		Kind:           ProjectileGrenade,
		Vel:            Vec2{X: 2},
		Fuse:           2,
		ExplosionTicks: 3,
	}

	advanceGrenade(&g)
	assert.Equal(t, GrenadeArmed, g.Phase)
	assert.Equal(t, Vec2{X: 2}, g.Pos)

	advanceGrenade(&g)
	assert.Equal(t, GrenadeExploding, g.Phase)
	assert.Equal(t, Vec2{}, g.Vel)

	// The explosion animation waits for the blast to be applied
	advanceGrenade(&g)
	assert.Equal(t, 0, g.ExplosionAge)

	g.Detonated = true
	for i := 0; i < 2; i++ {
		advanceGrenade(&g)
		assert.False(t, g.Dead)
	}
	advanceGrenade(&g)
	assert.Equal(t, GrenadeExpired, g.Phase)
	assert.True(t, g.Dead)
}
