package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointSegmentDistance(t *testing.T) {
	a := Vec2{X: 0, Y: 0}
	b := Vec2{X: 10, Y: 0}

	tests := []struct {
		name  string
		point Vec2
		want  float64
	}{
		{"on segment", Vec2{X: 5, Y: 0}, 0},
		{"on endpoint", Vec2{X: 10, Y: 0}, 0},
		{"beyond far end", Vec2{X: 15, Y: 0}, 5},
		{"beyond near end", Vec2{X: -3, Y: 4}, 5},
		{"perpendicular", Vec2{X: 5, Y: 3}, 3},
		{"below", Vec2{X: 2, Y: -7}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PointSegmentDistance(tt.point, a, b), 1e-9)
		})
	}
}

func TestPointSegmentDistanceDegenerateSegment(t *testing.T) {
	p := Vec2{X: 3, Y: 4}
	got := PointSegmentDistance(p, Vec2{}, Vec2{})
	assert.False(t, math.IsNaN(got))
	assert.InDelta(t, 5.0, got, 1e-9)
}

func TestNormalizeZeroVector(t *testing.T) {
	unit, ok := Vec2{}.Normalize()
	assert.False(t, ok)
	assert.Equal(t, Vec2{}, unit)

	unit, ok = Vec2{X: 3, Y: 4}.Normalize()
	assert.True(t, ok)
	assert.InDelta(t, 1.0, unit.Len(), 1e-9)
}

func TestMoveTowardNeverOvershoots(t *testing.T) {
	from := Vec2{X: 0, Y: 0}
	target := Vec2{X: 3, Y: 4}

	assert.Equal(t, target, MoveToward(from, target, 10))

	step := MoveToward(from, target, 1)
	assert.InDelta(t, 1.0, step.Len(), 1e-9)
	assert.InDelta(t, 0.6, step.X, 1e-9)
	assert.InDelta(t, 0.8, step.Y, 1e-9)

	assert.Equal(t, target, MoveToward(target, target, 1))
}

func TestNormalizeAngle(t *testing.T) {
	assert.InDelta(t, 3*math.Pi/2, NormalizeAngle(-math.Pi/2), 1e-9)
	assert.InDelta(t, 0.5, NormalizeAngle(2*math.Pi+0.5), 1e-9)
	assert.InDelta(t, 0.0, NormalizeAngle(0), 1e-9)
}
