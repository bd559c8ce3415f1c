package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collisionFixture builds a state with the player parked in a corner, away from the action
func collisionFixture() (*CollisionSystem, *State) {
	config := DefaultConfig()
	c := NewCollisionSystem(config, idCounter())
	s := &State{Player: newPlayer(config), Phase: PhaseRunning}
	s.Player.Pos = Vec2{X: 20, Y: 20}
	return c, s
}

func TestBulletIsConsumedByFirstHit(t *testing.T) {
	c, s := collisionFixture()
	s.Enemies = []Enemy{enemyAt(500, 400), enemyAt(505, 400)}
	s.Projectiles = []Projectile{
		{Kind: ProjectileBullet, Pos: Vec2{X: 502, Y: 400}, Radius: 4, Damage: 3},
	}

	c.Resolve(s)

	assert.True(t, s.Projectiles[0].Dead)
	damaged := 0
	for _, e := range s.Enemies {
		if e.HP < e.MaxHP {
			damaged++
			assert.InDelta(t, 7.0, e.HP, 1e-9)
		}
	}
	assert.Equal(t, 1, damaged)
}

func TestKillDropsOrbAtLastPosition(t *testing.T) {
	c, s := collisionFixture()
	s.Enemies = []Enemy{enemyAt(500, 400)}
	s.Enemies[0].HP = 2
	s.Projectiles = []Projectile{
		{Kind: ProjectileBullet, Pos: Vec2{X: 500, Y: 400}, Radius: 4, Damage: 2},
		{Kind: ProjectileBullet, Pos: Vec2{X: 500, Y: 400}, Radius: 4, Damage: 2},
	}

	c.Resolve(s)

	assert.True(t, s.Enemies[0].Dead)
	assert.Equal(t, 1, s.Kills)
	require.Len(t, s.Orbs, 1)
	assert.Equal(t, Vec2{X: 500, Y: 400}, s.Orbs[0].Pos)
	assert.NotEqual(t, InvalidEntityID, s.Orbs[0].ID)

	// The second bullet found no live enemy and keeps flying
	assert.True(t, s.Projectiles[0].Dead)
	assert.False(t, s.Projectiles[1].Dead)
}

func TestLaserHitsEveryEnemyOnTheBeam(t *testing.T) {
	c, s := collisionFixture()
	s.Enemies = []Enemy{
		enemyAt(400, 400),
		enemyAt(550, 410),
		enemyAt(400, 500), // off the beam
	}
	s.Projectiles = []Projectile{
		{Kind: ProjectileLaser, Pos: Vec2{X: 300, Y: 400}, Angle: 0, Length: 300, Radius: 3, Damage: 1, Life: 5},
	}

	c.Resolve(s)
	c.Resolve(s)

	assert.False(t, s.Projectiles[0].Dead, "beams are not consumed")
	assert.InDelta(t, 8.0, s.Enemies[0].HP, 1e-9)
	assert.InDelta(t, 8.0, s.Enemies[1].HP, 1e-9)
	assert.InDelta(t, 10.0, s.Enemies[2].HP, 1e-9)
}

func TestDaggerDamageCompoundsEveryTick(t *testing.T) {
	c, s := collisionFixture()
	s.Player.Loadout.DaggerCount = 1
	s.Player.Loadout.DaggerDamage = 0.5
	s.Daggers = []Vec2{{X: 500, Y: 400}}
	s.Enemies = []Enemy{enemyAt(500, 400), enemyAt(700, 400)}

	for i := 0; i < 3; i++ {
		c.Resolve(s)
	}

	assert.InDelta(t, 8.5, s.Enemies[0].HP, 1e-9)
	assert.InDelta(t, 10.0, s.Enemies[1].HP, 1e-9)
}

func TestGrenadeBlastAppliesExactlyOnce(t *testing.T) {
	c, s := collisionFixture()
	center := Vec2{X: 500, Y: 400}
	s.Projectiles = []Projectile{{
		Kind:           ProjectileGrenade,
		Pos:            center,
		Damage:         5,
		Radius:         6,
		Phase:          GrenadeArmed,
		Fuse:           1,
		BlastRadius:    60,
		ExplosionTicks: 5,
	}}

	// Point-sized enemies so the blast edge sits exactly at 60
	point := func(dx, dy float64) Enemy {
		return Enemy{Pos: center.Add(Vec2{X: dx, Y: dy}), HP: 20, MaxHP: 20}
	}
	s.Enemies = []Enemy{
		point(20, 0),
		point(0, -40),
		point(-42, 42),
		point(61, 0),
	}

	for tick := 0; tick < 10; tick++ {
		advanceProjectiles(s.Projectiles, 1024, 768)
		c.Resolve(s)
	}

	for i := 0; i < 3; i++ {
		assert.InDelta(t, 15.0, s.Enemies[i].HP, 1e-9, "enemy %d", i)
	}
	assert.InDelta(t, 20.0, s.Enemies[3].HP, 1e-9)
	assert.True(t, s.Projectiles[0].Dead)
	assert.Equal(t, GrenadeExpired, s.Projectiles[0].Phase)
}

func TestContactDrainsPlayerWithoutRemovingEnemy(t *testing.T) {
	c, s := collisionFixture()
	p := s.Player.Pos
	s.Enemies = []Enemy{enemyAt(p.X+10, p.Y), enemyAt(p.X, p.Y+20), enemyAt(p.X+200, p.Y)}

	died := c.Resolve(s)

	assert.False(t, died)
	assert.InDelta(t, 98.0, s.Player.HP, 1e-9)
	for _, e := range s.Enemies {
		assert.False(t, e.Dead)
	}
}

func TestPlayerDeathSkipsOrbPickup(t *testing.T) {
	c, s := collisionFixture()
	s.Player.HP = 1
	p := s.Player.Pos
	s.Enemies = []Enemy{enemyAt(p.X+5, p.Y)}
	s.Orbs = []Orb{{Pos: p, Radius: 5, Value: 1}}

	died := c.Resolve(s)

	assert.True(t, died)
	assert.Equal(t, 0.0, s.Player.HP)
	assert.False(t, s.Orbs[0].Collected)
	assert.Equal(t, 0.0, s.Player.XP)
}

func TestOrbPickup(t *testing.T) {
	c, s := collisionFixture()
	p := s.Player.Pos
	s.Orbs = []Orb{
		{Pos: p.Add(Vec2{X: 10}), Radius: 5, Value: 1},
		{Pos: p.Add(Vec2{X: 100}), Radius: 5, Value: 1},
	}

	c.Resolve(s)

	assert.True(t, s.Orbs[0].Collected)
	assert.False(t, s.Orbs[1].Collected)
	assert.Equal(t, 1.0, s.Player.XP)
}

func TestDeadEnemyIsSkippedByLaterRules(t *testing.T) {
	c, s := collisionFixture()
	s.Enemies = []Enemy{enemyAt(500, 400)}
	s.Enemies[0].HP = 1
	s.Projectiles = []Projectile{
		{Kind: ProjectileBullet, Pos: Vec2{X: 500, Y: 400}, Radius: 4, Damage: 1},
		{Kind: ProjectileLaser, Pos: Vec2{X: 400, Y: 400}, Length: 300, Radius: 3, Damage: 1, Life: 5},
	}

	c.Resolve(s)

	assert.Equal(t, 1, s.Kills)
	assert.Len(t, s.Orbs, 1)
	assert.Equal(t, 0.0, s.Enemies[0].HP)
}

func TestCompactPreservesOrder(t *testing.T) {
	items := []Enemy{{ID: 1}, {ID: 2, Dead: true}, {ID: 3}, {ID: 4, Dead: true}, {ID: 5}}
	kept := compact(items, func(e *Enemy) bool { return e.Dead })

	require.Len(t, kept, 3)
	assert.Equal(t, EntityID(1), kept[0].ID)
	assert.Equal(t, EntityID(3), kept[1].ID)
	assert.Equal(t, EntityID(5), kept[2].ID)
	assert.Equal(t, Enemy{}, items[4], "tail is zeroed")
}
