package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnInterval(t *testing.T) {
	s := NewSpawner(DefaultConfig(), testRNG(), idCounter())

	tests := []struct {
		level int
		want  int
	}{
		{0, 200},
		{1, 185},
		{10, 50},
		{11, 40},
		{50, 40},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.SpawnInterval(tt.level), "level %d", tt.level)
	}
}

func TestTrySpawnWaitsForInterval(t *testing.T) {
	s := NewSpawner(DefaultConfig(), testRNG(), idCounter())

	_, ok := s.TrySpawn(184, 1)
	assert.False(t, ok)

	_, ok = s.TrySpawn(185, 1)
	assert.True(t, ok)

	_, ok = s.TrySpawn(186, 1)
	assert.False(t, ok)

	_, ok = s.TrySpawn(370, 1)
	assert.True(t, ok)
}

func TestSpawnedStatsAreAPureFunctionOfLevel(t *testing.T) {
	config := DefaultConfig()
	s := NewSpawner(config, testRNG(), idCounter())

	var enemies []Enemy
	for tick := uint64(1); len(enemies) < 100; tick++ {
		if e, ok := s.TrySpawn(tick, 5); ok {
			enemies = append(enemies, e)
		}
	}
	require.Len(t, enemies, 100)

	first := enemies[0]
	assert.InDelta(t, 7.0, first.HP, 1e-9)
	assert.InDelta(t, 1.7, first.Speed, 1e-9)
	for _, e := range enemies {
		assert.Equal(t, first.HP, e.HP)
		assert.Equal(t, first.MaxHP, e.MaxHP)
		assert.Equal(t, first.Speed, e.Speed)
		assert.Equal(t, first.Radius, e.Radius)
	}
}

func TestEnemySpeedIsCapped(t *testing.T) {
	config := DefaultConfig()
	e := NewEnemy(config, 100, Vec2{})
	assert.Equal(t, config.Enemy.SpeedCap, e.Speed)
	assert.InDelta(t, config.Enemy.BaseHP+100*config.Enemy.HPGrowth, e.HP, 1e-9)
}

func TestSpawnPositionsLieOnEdges(t *testing.T) {
	config := DefaultConfig()
	s := NewSpawner(config, testRNG(), idCounter())
	w, h, m := config.ViewportWidth, config.ViewportHeight, config.Spawn.Margin

	edges := map[Edge]int{}
	seen := map[EntityID]bool{}
	for tick := uint64(1); tick <= 185*400; tick++ {
		e, ok := s.TrySpawn(tick, 1)
		if !ok {
			continue
		}
		require.False(t, seen[e.ID], "duplicate id %d", e.ID)
		seen[e.ID] = true

		switch {
		case e.Pos.Y == -m:
			edges[EdgeTop]++
			assert.True(t, e.Pos.X >= 0 && e.Pos.X <= w)
		case e.Pos.X == w+m:
			edges[EdgeRight]++
			assert.True(t, e.Pos.Y >= 0 && e.Pos.Y <= h)
		case e.Pos.Y == h+m:
			edges[EdgeBottom]++
			assert.True(t, e.Pos.X >= 0 && e.Pos.X <= w)
		case e.Pos.X == -m:
			edges[EdgeLeft]++
			assert.True(t, e.Pos.Y >= 0 && e.Pos.Y <= h)
		default:
			t.Fatalf("enemy spawned off every edge at %+v", e.Pos)
		}
	}
	// 400 spawns spread over 4 edges: each edge is used
	assert.Len(t, edges, 4)
}
