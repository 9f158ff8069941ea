package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type tilePoint struct{ X, Y int }

func collect(it *LineIterator) []tilePoint {
	var points []tilePoint
	for it.Next() {
		points = append(points, tilePoint{it.X(), it.Y()})
	}
	return points
}

func TestLineIteratorHorizontal(t *testing.T) {
	points := collect(NewLineIterator(0, 0, 5, 0))

	assert.Equal(t, 6, len(points), "should visit 6 points (0..5)")
	assert.Equal(t, 0, points[0].X)
	assert.Equal(t, 5, points[5].X)

	for _, p := range points {
		assert.Equal(t, 0, p.Y)
	}
}

func TestLineIteratorVertical(t *testing.T) {
	points := collect(NewLineIterator(0, 0, 0, 3))

	assert.Equal(t, 4, len(points))
	assert.Equal(t, 0, points[0].Y)
	assert.Equal(t, 3, points[3].Y)
}

func TestLineIteratorDiagonal(t *testing.T) {
	points := collect(NewLineIterator(0, 0, 3, 3))

	assert.Equal(t, []tilePoint{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, points)
}

func TestLineIteratorNegative(t *testing.T) {
	points := collect(NewLineIterator(5, 5, 2, 3))

	assert.Equal(t, tilePoint{5, 5}, points[0])
	assert.Equal(t, tilePoint{2, 3}, points[len(points)-1])
	assert.Equal(t, 4, len(points))
}

func TestLineIteratorSamePoint(t *testing.T) {
	points := collect(NewLineIterator(3, 3, 3, 3))

	// Only start point
	assert.Equal(t, 1, len(points))
}
