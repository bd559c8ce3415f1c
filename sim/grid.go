package sim

import (
	"math"
	"slices"
)

// gridCellSize is the edge length of a broadphase cell, a few enemy diameters
const gridCellSize = 64.0

// Grid is a uniform spatial partition of the arena holding enemy indices.
// Positions outside the arena fall into the nearest edge cell.
type Grid struct {
	cellSize   float64
	cols, rows int

	// Preallocated cells, row-major; each holds indices in ascending order
	cells [][]int

	// maxRadius is the largest enemy radius seen by the last Rebuild
	maxRadius float64
}

// NewGrid creates a grid covering a width x height arena
func NewGrid(width, height, cellSize float64) *Grid {
	cols := max(int(math.Ceil(width/cellSize)), 1)
	rows := max(int(math.Ceil(height/cellSize)), 1)
	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}
	return &Grid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// cellOf converts arena coordinates to clamped cell coordinates
func (g *Grid) cellOf(p Vec2) (int, int) {
	cx := int(math.Floor(p.X / g.cellSize))
	cy := int(math.Floor(p.Y / g.cellSize))
	return min(max(cx, 0), g.cols-1), min(max(cy, 0), g.rows-1)
}

// Rebuild re-registers every live enemy in its cell
func (g *Grid) Rebuild(enemies []Enemy) {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.maxRadius = 0
	for i := range enemies {
		e := &enemies[i]
		if e.Dead {
			continue
		}
		cx, cy := g.cellOf(e.Pos)
		g.cells[cy*g.cols+cx] = append(g.cells[cy*g.cols+cx], i)
		g.maxRadius = max(g.maxRadius, e.Radius)
	}
}

// Near appends to dst the indices of enemies whose center may lie within
// reach plus their own radius of center, in ascending order
func (g *Grid) Near(center Vec2, reach float64, dst []int) []int {
	r := reach + g.maxRadius
	return g.InRect(Vec2{X: center.X - r, Y: center.Y - r}, Vec2{X: center.X + r, Y: center.Y + r}, dst)
}

// NearSegment is Near for every point of the segment a-b
func (g *Grid) NearSegment(a, b Vec2, reach float64, dst []int) []int {
	r := reach + g.maxRadius
	lo := Vec2{X: min(a.X, b.X) - r, Y: min(a.Y, b.Y) - r}
	hi := Vec2{X: max(a.X, b.X) + r, Y: max(a.Y, b.Y) + r}
	return g.InRect(lo, hi, dst)
}

// InRect appends to dst the indices registered in every cell overlapping the rectangle,
// sorted so callers visit enemies in list order
func (g *Grid) InRect(lo, hi Vec2, dst []int) []int {
	dst = dst[:0]
	minX, minY := g.cellOf(lo)
	maxX, maxY := g.cellOf(hi)
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			dst = append(dst, g.cells[cy*g.cols+cx]...)
		}
	}
	slices.Sort(dst)
	return dst
}
