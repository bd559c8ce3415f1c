package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridNearIsSortedAndSkipsDead(t *testing.T) {
	g := NewGrid(1024, 768, 64)
	enemies := []Enemy{
		enemyAt(300, 300),
		enemyAt(900, 700),
		enemyAt(310, 290),
		enemyAt(305, 305),
	}
	enemies[3].Dead = true
	g.Rebuild(enemies)

	got := g.Near(Vec2{X: 300, Y: 300}, 5, nil)
	assert.Equal(t, []int{0, 2}, got)
}

func TestGridClampsOutsidePositions(t *testing.T) {
	g := NewGrid(1024, 768, 64)
	enemies := []Enemy{enemyAt(-15, 400), enemyAt(1039, -15)}
	g.Rebuild(enemies)

	assert.Equal(t, []int{0}, g.Near(Vec2{X: 5, Y: 400}, 10, nil))
	assert.Equal(t, []int{1}, g.Near(Vec2{X: 1020, Y: 2}, 10, nil))
}

func TestGridFindsEverythingBruteForceFinds(t *testing.T) {
	config := DefaultConfig()
	g := NewGrid(config.ViewportWidth, config.ViewportHeight, gridCellSize)
	rng := testRNG()

	enemies := make([]Enemy, 300)
	for i := range enemies {
		enemies[i] = enemyAt(rng.Float64()*1100-40, rng.Float64()*850-40)
	}
	g.Rebuild(enemies)

	var found []int
	for trial := 0; trial < 200; trial++ {
		center := Vec2{X: rng.Float64() * 1024, Y: rng.Float64() * 768}
		reach := rng.Float64() * 100
		found = g.Near(center, reach, found)

		candidates := map[int]bool{}
		for _, i := range found {
			candidates[i] = true
		}
		for i, e := range enemies {
			if Distance(center, e.Pos) < reach+e.Radius {
				require.True(t, candidates[i], "trial %d missed enemy %d", trial, i)
			}
		}
	}
}

func TestGridNearSegment(t *testing.T) {
	g := NewGrid(1024, 768, 64)
	enemies := []Enemy{enemyAt(600, 400), enemyAt(100, 100), enemyAt(350, 410)}
	g.Rebuild(enemies)

	got := g.NearSegment(Vec2{X: 300, Y: 400}, Vec2{X: 600, Y: 400}, 3, nil)
	assert.Equal(t, []int{0, 2}, got)
}
