package game

const (
	horizontalMask uint64 = 0x7e7e7e7e7e7e7e7e
	verticalMask   uint64 = 0x00ffffffffffff00
	allSideMask    uint64 = 0x007e7e7e7e7e7e00
)

type direction int

const (
	up direction = iota
	upRight
	right
	downRight
	down
	downLeft
	left
	upLeft
)

var directions = [...]direction{up, upRight, right, downRight, down, downLeft, left, upLeft}

// legalBoard computes every destination for player by filling rays over
// opponent discs in the eight directions. A ray never spans more than six
// opponent discs, so the fill is unrolled to six steps.
func legalBoard(player, opponent uint64) uint64 {
	blank := ^(player | opponent)
	h := horizontalMask & opponent
	v := verticalMask & opponent
	a := allSideMask & opponent

	var legal uint64
	legal |= blank & (fill(player, h, 1, true) << 1)  // left
	legal |= blank & (fill(player, h, 1, false) >> 1) // right
	legal |= blank & (fill(player, v, 8, true) << 8)  // up
	legal |= blank & (fill(player, v, 8, false) >> 8) // down
	legal |= blank & (fill(player, a, 7, true) << 7)  // up-right
	legal |= blank & (fill(player, a, 9, true) << 9)  // up-left
	legal |= blank & (fill(player, a, 9, false) >> 9) // down-right
	legal |= blank & (fill(player, a, 7, false) >> 7) // down-left
	return legal
}

func fill(player, mask uint64, shift uint, leftward bool) uint64 {
	step := func(x uint64) uint64 {
		if leftward {
			return x << shift
		}
		return x >> shift
	}
	ray := mask & step(player)
	for i := 0; i < Size-3; i++ {
		ray |= mask & step(ray)
	}
	return ray
}

// transfer moves every bit in put one cell towards dir, dropping bits that
// would wrap around an edge.
func transfer(put uint64, dir direction) uint64 {
	switch dir {
	case up:
		return (put << 8) & 0xffffffffffffff00
	case upRight:
		return (put << 7) & 0x7f7f7f7f7f7f7f00
	case right:
		return (put >> 1) & 0x7f7f7f7f7f7f7f7f
	case downRight:
		return (put >> 9) & 0x007f7f7f7f7f7f7f
	case down:
		return (put >> 8) & 0x00ffffffffffffff
	case downLeft:
		return (put >> 7) & 0x00fefefefefefefe
	case left:
		return (put << 1) & 0xfefefefefefefefe
	case upLeft:
		return (put << 9) & 0xfefefefefefefe00
	default:
		return 0
	}
}

// flips returns the opponent discs captured by placing a disc on put.
func flips(put, player, opponent uint64) uint64 {
	var rev uint64
	for _, dir := range directions {
		var run uint64
		mask := transfer(put, dir)
		for mask != 0 && mask&opponent != 0 {
			run |= mask
			mask = transfer(mask, dir)
		}
		if mask&player != 0 {
			rev |= run
		}
	}
	return rev
}

func (b *Board) reverse(put uint64) {
	rev := flips(put, b.PlayerBoard, b.OpponentBoard)
	b.PlayerBoard ^= put | rev
	b.OpponentBoard ^= rev
}
