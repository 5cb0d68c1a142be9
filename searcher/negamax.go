package searcher

import (
	"othello/game"
)

const (
	// WinScore is returned for a position the mover has already won.
	WinScore = 1 << 60

	nodeFloor   = -(1 << 61)
	choiceFloor = -(1 << 62)
)

// EvalNode scores board from the mover's point of view with a depth-limited
// negamax search. alpha is the best score the parent has secured so far; once
// this node proves the parent cannot improve on it, the search returns early.
func (g Genome) EvalNode(board game.Board, depth int, alpha int) int {
	if depth == 0 {
		return g.EvalBoard(board)
	}

	if board.IsSkip() {
		child := board
		mustUpdate(&child, game.Skip())
		return -g.EvalNode(child, depth-1, nodeFloor)
	}

	best := nodeFloor
	for _, choice := range board.Choices() {
		child := board
		result := mustUpdate(&child, choice)

		switch result.Outcome {
		case game.Draw:
			best = max(best, 0)
		case game.Win:
			if result.Winner == board.Player {
				return WinScore
			}
			best = max(best, -WinScore)
		default:
			best = max(best, -g.EvalNode(child, depth-1, best))
		}

		if alpha >= -best {
			return best
		}
	}
	return best
}

// ChooseBest picks the move with the highest negamax score at the given depth.
// Ties keep the earliest move in row-major order.
func (g Genome) ChooseBest(board game.Board, depth int) game.Choice {
	if depth < 1 {
		panic("search depth must be at least 1")
	}
	if board.IsSkip() {
		return game.Skip()
	}

	best := choiceFloor
	bestChoice := game.Skip()
	for _, choice := range board.Choices() {
		child := board
		result := mustUpdate(&child, choice)

		switch result.Outcome {
		case game.Draw:
			if best < 0 {
				best = 0
				bestChoice = choice
			}
		case game.Win:
			if result.Winner == board.Player {
				return choice
			}
			if best < -WinScore {
				best = -WinScore
				bestChoice = choice
			}
		default:
			score := -g.EvalNode(child, depth-1, best)
			if best < score {
				best = score
				bestChoice = choice
			}
		}
	}
	return bestChoice
}

func mustUpdate(board *game.Board, choice game.Choice) game.JudgeResult {
	result, err := board.Update(choice)
	if err != nil {
		panic(err)
	}
	return result
}
