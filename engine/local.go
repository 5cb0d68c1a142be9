package engine

import (
	"time"

	"othello/game"
	"othello/metrics"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var (
	ErrTooManyRejects = errors.New("agent submitted too many rejected choices")
	ErrTooManyMoves   = errors.New("game exceeded the move limit")
)

type Option func(e *Local)

// WithObserver registers a callback invoked with the board before every move
// and once more with the final board.
func WithObserver(observe func(board game.Board)) Option {
	return func(e *Local) {
		if observe != nil {
			e.observe = observe
		}
	}
}

// WithBoard starts the game from a given position instead of the opening.
func WithBoard(board game.Board) Option {
	return func(e *Local) {
		e.Board = board
	}
}

type Local struct {
	Board   game.Board
	Agents  [2]Agent // indexed by game.Player
	observe func(board game.Board)
}

func LocalEngine(black, white Agent, options ...Option) *Local {
	if black == nil || white == nil {
		panic("need an agent for each side")
	}

	e := &Local{
		Board:   game.NewBoard(),
		Agents:  [2]Agent{black, white},
		observe: func(game.Board) {},
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop until one side wins or the game is drawn.
// Rejected choices are logged and the same agent is asked again.
func (e *Local) Run() (game.JudgeResult, metrics.GameMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Board.Player,
		StartTime:      time.Now(),
	}
	complete := func(result game.JudgeResult) metrics.GameMetric {
		gameMetric.EndTime = time.Now()
		gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
		gameMetric.Result = result
		gameMetric.Black, gameMetric.White = e.Board.Score()
		return gameMetric
	}

	rejects := 0
	for gameMetric.TotalMoves < MaxMoves {
		e.observe(e.Board)

		agent := e.Agents[e.Board.Player]
		choice, err := agent.FindMove(e.Board)
		if err != nil {
			return game.JudgeResult{}, complete(game.JudgeResult{}), errors.Wrapf(err, "%s failed to find a move", e.Board.Player)
		}

		result, err := e.Board.Update(choice)
		if err != nil {
			rejects++
			log.Warn().Err(err).Str("player", e.Board.Player.String()).Str("choice", choice.String()).Msg("rejected choice")
			if rejects >= MaxRejects {
				return game.JudgeResult{}, complete(game.JudgeResult{}), errors.Wrapf(ErrTooManyRejects, "%s", e.Board.Player)
			}
			continue
		}
		rejects = 0

		gameMetric.TotalMoves++
		if choice.IsSkip() {
			gameMetric.Passes++
		}
		log.Debug().Int("turn", e.Board.Turn-1).Str("choice", choice.String()).Msg("played")

		if result.Outcome != game.Continue {
			e.observe(e.Board)
			return result, complete(result), nil
		}
	}

	return game.JudgeResult{}, complete(game.JudgeResult{}), ErrTooManyMoves
}
