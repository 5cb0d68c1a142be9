package runner

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"othello/config"
	"othello/engine"
	"othello/game"
	"othello/searcher"
	"othello/storage"
	"othello/tournament"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func testConfig(t *testing.T) config.Config {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.TournamentSize = 8
	cfg.Workers = 2
	cfg.BracketSize = 4
	cfg.LogTournamentGeneration = 2
	cfg.LearningDepth = 1
	cfg.SimulationDepth = 2
	cfg.TournamentLatestFileName = filepath.Join(dir, "tournament_latest.json")
	cfg.WinnerLatestFileName = filepath.Join(dir, "winner_latest.json")
	cfg.MetricsDir = filepath.Join(dir, "metrics")
	require.NoError(t, cfg.Validate())
	return cfg
}

func generationRecords(t *testing.T, cfg config.Config) [][]string {
	paths, err := filepath.Glob(filepath.Join(cfg.MetricsDir, "*", "generation_records.csv"))
	require.NoError(t, err)
	require.Len(t, paths, 1)

	f, err := os.Open(paths[0])
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestLearn(t *testing.T) {
	t.Run("checkpoints every few generations", func(t *testing.T) {
		cfg := testConfig(t)

		err := Learn(context.Background(), cfg, rand.New(rand.NewSource(1)), WithGenerations(3))
		require.NoError(t, err)

		population, err := storage.LoadTournament(cfg.TournamentLatestFileName, cfg.TournamentSize)
		require.NoError(t, err)
		require.Equal(t, 4, population.Generation)

		b, err := os.ReadFile(cfg.WinnerLatestFileName)
		require.NoError(t, err)
		require.Equal(t, 2, strings.Count(string(b), "\n"), "A champion is appended at generations 2 and 4")

		rows := generationRecords(t, cfg)
		require.Len(t, rows, 4)
		require.Equal(t, "generation", rows[0][0])
		require.Equal(t, []string{"1", "2", "3"}, []string{rows[1][0], rows[2][0], rows[3][0]})
	})

	t.Run("resumes from the stored population", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, Learn(context.Background(), cfg, rand.New(rand.NewSource(2)), WithGenerations(1)))

		cfg.LogTournamentGeneration = 1
		require.NoError(t, Learn(context.Background(), cfg, rand.New(rand.NewSource(3)), WithGenerations(1)))

		population, err := storage.LoadTournament(cfg.TournamentLatestFileName, cfg.TournamentSize)
		require.NoError(t, err)
		require.Equal(t, 3, population.Generation)
	})

	t.Run("same seed trains the same population", func(t *testing.T) {
		run := func() *tournament.Tournament {
			cfg := testConfig(t)
			require.NoError(t, Learn(context.Background(), cfg, rand.New(rand.NewSource(4)), WithGenerations(2)))
			population, err := storage.LoadTournament(cfg.TournamentLatestFileName, cfg.TournamentSize)
			require.NoError(t, err)
			return population
		}

		require.Equal(t, run(), run())
	})

	t.Run("wrong population size starts over", func(t *testing.T) {
		cfg := testConfig(t)
		stale := tournament.NewRandom(4, rand.New(rand.NewSource(5)))
		stale.Generation = 40
		require.NoError(t, storage.SaveTournament(cfg.TournamentLatestFileName, stale))

		require.NoError(t, Learn(context.Background(), cfg, rand.New(rand.NewSource(6)), WithGenerations(1)))

		population, err := storage.LoadTournament(cfg.TournamentLatestFileName, cfg.TournamentSize)
		require.NoError(t, err)
		require.Equal(t, 2, population.Generation)
	})

	t.Run("malformed snapshot starts over", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, os.WriteFile(cfg.TournamentLatestFileName, []byte(`{"cpus":[`), 0o644))

		require.NoError(t, Learn(context.Background(), cfg, rand.New(rand.NewSource(25)), WithGenerations(2)))

		population, err := storage.LoadTournament(cfg.TournamentLatestFileName, cfg.TournamentSize)
		require.NoError(t, err)
		require.Equal(t, 3, population.Generation)
	})

	t.Run("unreadable snapshot is left alone", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, os.Symlink(cfg.TournamentLatestFileName, cfg.TournamentLatestFileName))

		err := Learn(context.Background(), cfg, rand.New(rand.NewSource(26)), WithGenerations(2))

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to load population")
		info, err := os.Lstat(cfg.TournamentLatestFileName)
		require.NoError(t, err)
		require.NotZero(t, info.Mode()&os.ModeSymlink, "Snapshot path should not be replaced")
		_, err = os.Stat(cfg.WinnerLatestFileName)
		require.True(t, os.IsNotExist(err))
	})

	t.Run("cancelled context saves and stops", func(t *testing.T) {
		cfg := testConfig(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, Learn(ctx, cfg, rand.New(rand.NewSource(7))))

		population, err := storage.LoadTournament(cfg.TournamentLatestFileName, cfg.TournamentSize)
		require.NoError(t, err)
		require.Equal(t, 1, population.Generation)
		_, err = os.Stat(cfg.WinnerLatestFileName)
		require.True(t, os.IsNotExist(err))
	})

	t.Run("checkpoint errors are returned", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.WinnerLatestFileName = filepath.Join(t.TempDir(), "missing", "winner_latest.json")

		err := Learn(context.Background(), cfg, rand.New(rand.NewSource(8)), WithGenerations(2))
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to store champion")
	})
}

// lastMoveAgent plays the last legal move in row-major order and records it
// as console input.
type lastMoveAgent struct {
	lines []string
}

func (a *lastMoveAgent) FindMove(board game.Board) (game.Choice, error) {
	choice := game.Skip()
	if choices := board.Choices(); len(choices) > 0 {
		choice = choices[len(choices)-1]
	}
	a.lines = append(a.lines, choice.String())
	return choice, nil
}

// script plays genome against lastMoveAgent and returns White's moves as
// input lines with the final judgement.
func script(t *testing.T, genome searcher.Genome, depth int) (string, game.JudgeResult) {
	white := &lastMoveAgent{}
	result, _, err := engine.LocalEngine(searcher.NewCPU(genome, depth), white).Run()
	require.NoError(t, err)
	return strings.Join(white.lines, "\n") + "\n", result
}

func TestSimulate(t *testing.T) {
	t.Run("alpha genome without a champion", func(t *testing.T) {
		cfg := testConfig(t)
		input, want := script(t, searcher.NewAlphaGenome(), cfg.SimulationDepth)

		var out bytes.Buffer
		got, err := Simulate(cfg, strings.NewReader(input), &out, termenv.WithProfile(termenv.Ascii))

		require.NoError(t, err)
		require.Equal(t, want, got)
		require.Contains(t, out.String(), "score: ")
		require.Contains(t, out.String(), "  0 1 2 3 4 5 6 7")
		if want.Outcome == game.Draw {
			require.Contains(t, out.String(), "Draw!")
		} else {
			require.Contains(t, out.String(), want.Winner.String()+" wins!")
		}
	})

	t.Run("plays the latest champion", func(t *testing.T) {
		cfg := testConfig(t)
		rng := rand.New(rand.NewSource(9))
		require.NoError(t, storage.AppendGenome(cfg.WinnerLatestFileName, searcher.NewRandomGenome(rng)))
		champion := searcher.NewRandomGenome(rng)
		require.NoError(t, storage.AppendGenome(cfg.WinnerLatestFileName, champion))
		input, want := script(t, champion, cfg.SimulationDepth)

		got, err := Simulate(cfg, strings.NewReader(input), io.Discard)

		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("bad input is asked again", func(t *testing.T) {
		cfg := testConfig(t)
		input, want := script(t, searcher.NewAlphaGenome(), cfg.SimulationDepth)

		var out bytes.Buffer
		got, err := Simulate(cfg, strings.NewReader("hello\n99\ns\n"+input), &out, termenv.WithProfile(termenv.Ascii))

		require.NoError(t, err)
		require.Equal(t, want, got)
		require.Contains(t, out.String(), "wrong input length")
		require.Contains(t, out.String(), "index out of range")
	})

	t.Run("closed input ends the game with an error", func(t *testing.T) {
		cfg := testConfig(t)

		_, err := Simulate(cfg, strings.NewReader(""), io.Discard)

		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}
