package runner

import (
	"fmt"
	"io"

	"othello/config"
	"othello/engine"
	"othello/game"
	"othello/player"
	"othello/searcher"
	"othello/storage"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
)

// Simulate plays the stored champion as Black against moves typed on in.
// The alpha genome stands in when no champion can be loaded.
func Simulate(cfg config.Config, in io.Reader, out io.Writer, opts ...termenv.OutputOption) (game.JudgeResult, error) {
	genome, err := storage.LoadGenome(cfg.WinnerLatestFileName)
	if err != nil {
		log.Warn().Err(err).Msg("playing the alpha genome")
		genome = searcher.NewAlphaGenome()
	}

	renderer := player.NewRenderer(out, opts...)
	e := engine.LocalEngine(
		searcher.NewCPU(genome, cfg.SimulationDepth),
		player.NewConsole(in, out),
		engine.WithObserver(func(board game.Board) {
			renderer.Draw(board, fmt.Sprintf("score: %d", genome.EvalBoard(board)))
		}),
	)

	result, metric, err := e.Run()
	if err != nil {
		return game.JudgeResult{}, err
	}
	renderer.Announce(result)
	log.Debug().Int("moves", metric.TotalMoves).Int("passes", metric.Passes).Dur("duration", metric.Duration).Msg("simulation finished")
	return result, nil
}
