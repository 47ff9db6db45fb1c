package model

// AliveOffset is added to a cell's value while it is alive. It must stay above
// the largest possible neighbor count (8) so both fields can share one byte.
const AliveOffset uint8 = 42

const maxNeighbors = 8

func isAlive(v uint8) bool {
	return v >= AliveOffset
}

// neighborCount strips the alive offset and returns the live neighbor count
func neighborCount(v uint8) int {
	if isAlive(v) {
		return int(v - AliveOffset)
	}
	return int(v)
}

func encode(alive bool, neighbors int) uint8 {
	v := uint8(neighbors)
	if alive {
		v += AliveOffset
	}
	return v
}

// updateNeighbors adds delta to the neighbor count of every in-bounds cell
// around (x, y). Diagonals require both adjacent axis neighbors to exist.
func updateNeighbors(field []uint8, width, height, x, y int, delta int) {
	var (
		left   = x > 0
		right  = x < width-1
		top    = y > 0
		bottom = y < height-1
		d      = uint8(delta) // wraps for -1
		idx    = y*width + x
	)

	if left {
		field[idx-1] += d
	}
	if right {
		field[idx+1] += d
	}
	if top {
		field[idx-width] += d
	}
	if bottom {
		field[idx+width] += d
	}

	if left && top {
		field[idx-width-1] += d
	}
	if left && bottom {
		field[idx+width-1] += d
	}
	if right && top {
		field[idx-width+1] += d
	}
	if right && bottom {
		field[idx+width+1] += d
	}
}
