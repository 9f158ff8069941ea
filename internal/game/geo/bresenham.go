package geo

// LineIterator implements the 2D Bresenham line algorithm over tiles.
// Steps through every tile along a line from start to end, both inclusive.
type LineIterator struct {
	currentX, currentY int
	targetX, targetY   int
	deltaX, deltaY     int
	stepX, stepY       int
	err                int
	xDominant          bool
	started            bool
}

// NewLineIterator creates a 2D Bresenham line iterator.
func NewLineIterator(sx, sy, ex, ey int) *LineIterator {
	it := &LineIterator{
		currentX: sx, currentY: sy,
		targetX: ex, targetY: ey,
	}

	it.deltaX = absInt(ex - sx)
	it.deltaY = absInt(ey - sy)

	if sx < ex {
		it.stepX = 1
	} else {
		it.stepX = -1
	}
	if sy < ey {
		it.stepY = 1
	} else {
		it.stepY = -1
	}

	// Determine dominant axis and init error term.
	if it.deltaX >= it.deltaY {
		it.xDominant = true
		it.err = it.deltaX / 2
	} else {
		it.err = it.deltaY / 2
	}

	return it
}

// Next advances the iterator to the next tile.
// Returns false when the target has been passed.
func (it *LineIterator) Next() bool {
	if !it.started {
		it.started = true
		return true // Return start point
	}

	if it.currentX == it.targetX && it.currentY == it.targetY {
		return false
	}

	if it.xDominant {
		it.currentX += it.stepX
		it.err += it.deltaY
		if it.err >= it.deltaX {
			it.currentY += it.stepY
			it.err -= it.deltaX
		}
	} else {
		it.currentY += it.stepY
		it.err += it.deltaX
		if it.err >= it.deltaY {
			it.currentX += it.stepX
			it.err -= it.deltaY
		}
	}

	return true
}

// X returns current X tile.
func (it *LineIterator) X() int { return it.currentX }

// Y returns current Y tile.
func (it *LineIterator) Y() int { return it.currentY }

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
