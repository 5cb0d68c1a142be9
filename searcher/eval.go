package searcher

import (
	"math/bits"

	"othello/game"
)

// mirror folds rows and columns 4..7 onto 3..0.
func mirror(i int) int {
	if i < game.Size/2 {
		return i
	}
	return game.Size - 1 - i
}

// cellIndex reduces a cell to one of ten classes over the triangle of the
// top-left quadrant.
func cellIndex(row, col int) int {
	i, j := mirror(row), mirror(col)
	if i < j {
		i, j = j, i
	}
	// Rows of the triangle start at 0, 1, 3, 6.
	return i*(i+1)/2 + j
}

var cellIndexes = func() [game.Size * game.Size]int {
	var indexes [game.Size * game.Size]int
	for k := range indexes {
		indexes[k] = cellIndex(k/game.Size, k%game.Size)
	}
	return indexes
}()

// EvalBoard scores a board from the mover's point of view. Each mover disc adds
// the weight of its cell class and each opponent disc subtracts it; mobility
// adds the mobility weight per legal move.
func (g Genome) EvalBoard(board game.Board) int {
	weights := g.Stage(board.Turn)

	score := 0
	for k, index := range cellIndexes {
		bit := uint64(1) << uint(63-k)
		switch {
		case board.PlayerBoard&bit != 0:
			score += int(weights[index])
		case board.OpponentBoard&bit != 0:
			score -= int(weights[index])
		}
	}
	score += bits.OnesCount64(board.LegalMoves()) * int(weights[MobilityIndex])
	return score
}
