package engine

import (
	"othello/game"
	"othello/metrics"
)

const (
	// MaxMoves bounds a game; Othello needs at most 60 placements plus passes.
	MaxMoves = 200
	// MaxRejects is how many rejected choices in a row an agent may submit.
	MaxRejects = 16
)

// Agent picks a choice for the side to move.
type Agent interface {
	FindMove(board game.Board) (game.Choice, error)
}

type Engine interface {
	// Run plays until the game is decided and returns the final judgement.
	Run() (game.JudgeResult, metrics.GameMetric, error)
}
