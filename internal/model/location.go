package model

import "math"

// FPoint — позиция в тайловых координатах карты (дробная часть — смещение внутри тайла).
// Value type, передаётся по значению.
type FPoint struct {
	X float32
	Y float32
}

// Point — целочисленные координаты тайла.
type Point struct {
	X int
	Y int
}

// NewFPoint создаёт FPoint с указанными координатами.
func NewFPoint(x, y float32) FPoint {
	return FPoint{X: x, Y: y}
}

// Tile возвращает тайл, в котором лежит точка (truncation, как и при проверке коллизий).
func (p FPoint) Tile() Point {
	return Point{X: int(p.X), Y: int(p.Y)}
}

// Center возвращает центр тайла.
func (p Point) Center() FPoint {
	return FPoint{X: float32(p.X) + 0.5, Y: float32(p.Y) + 0.5}
}

// DistanceSquared возвращает квадрат расстояния до другой точки (без sqrt для производительности).
func (p FPoint) DistanceSquared(other FPoint) float32 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Distance возвращает евклидово расстояние до другой точки.
func (p FPoint) Distance(other FPoint) float32 {
	return float32(math.Sqrt(float64(p.DistanceSquared(other))))
}
