package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"othello/searcher"
	"othello/tournament"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const fixture = `{"stage1":[1,2,3,4,5,6,7,8,9,10,11],"stage2":[-1,-2,-3,-4,-5,-6,-7,-8,-9,-10,-11],"stage3":[127,-128,0,0,0,0,0,0,0,0,0],"stage4":[0,0,0,0,0,0,0,0,0,0,42]}`

func TestGenomeEncoding(t *testing.T) {
	t.Run("fixture decodes stage by stage", func(t *testing.T) {
		var g searcher.Genome
		require.NoError(t, json.Unmarshal([]byte(fixture), &g))

		require.Equal(t, searcher.Weights{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, g.Stage1)
		require.Equal(t, int8(-11), g.Stage2[10])
		require.Equal(t, int8(127), g.Stage3[0])
		require.Equal(t, int8(-128), g.Stage3[1])
		require.Equal(t, int8(42), g.Stage4[searcher.MobilityIndex])

		b, err := json.Marshal(g)
		require.NoError(t, err)
		require.JSONEq(t, fixture, string(b))
	})

	t.Run("random genomes survive a file round trip", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		path := filepath.Join(t.TempDir(), "winner.json")
		for i := 0; i < 20; i++ {
			g := searcher.NewRandomGenome(rng)
			require.NoError(t, AppendGenome(path, g))

			loaded, err := LoadGenome(path)
			require.NoError(t, err)
			require.Equal(t, g, loaded)
		}
	})
}

func TestLoadGenome(t *testing.T) {
	t.Run("latest appended genome wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "winner.json")
		first, second := searcher.NewAlphaGenome(), searcher.Genome{}
		second.Stage2[3] = 9

		require.NoError(t, AppendGenome(path, first))
		require.NoError(t, AppendGenome(path, second))

		loaded, err := LoadGenome(path)
		require.NoError(t, err)
		require.Equal(t, second, loaded)

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, 2, countLines(b), "Earlier champions should be kept")
	})

	t.Run("trailing blank lines are ignored", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "winner.json")
		require.NoError(t, os.WriteFile(path, []byte(fixture+"\n\n  \n"), 0o644))

		loaded, err := LoadGenome(path)
		require.NoError(t, err)
		require.Equal(t, int8(42), loaded.Stage4[searcher.MobilityIndex])
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "winner.json")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := LoadGenome(path)
		require.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadGenome(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		require.True(t, os.IsNotExist(errors.Cause(err)))
	})

	t.Run("corrupt line", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "winner.json")
		require.NoError(t, os.WriteFile(path, []byte(fixture+"\n{\"stage1\":"), 0o644))

		_, err := LoadGenome(path)
		require.Error(t, err)
	})
}

func TestTournamentSnapshot(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tournament.json")
		population := tournament.NewRandom(8, rand.New(rand.NewSource(2)))
		population.Generation = 17

		require.NoError(t, SaveTournament(path, population))
		loaded, err := LoadTournament(path, 8)
		require.NoError(t, err)
		require.Equal(t, population, loaded)

		_, err = os.Stat(path + ".tmp")
		require.True(t, os.IsNotExist(err), "Temporary file should be renamed away")
	})

	t.Run("save replaces the previous snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tournament.json")
		rng := rand.New(rand.NewSource(3))

		require.NoError(t, SaveTournament(path, tournament.NewRandom(8, rng)))
		latest := tournament.NewRandom(4, rng)
		require.NoError(t, SaveTournament(path, latest))

		loaded, err := LoadTournament(path, 4)
		require.NoError(t, err)
		require.Equal(t, latest, loaded)
	})

	t.Run("size mismatch", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tournament.json")
		require.NoError(t, SaveTournament(path, tournament.NewRandom(8, rand.New(rand.NewSource(4)))))

		_, err := LoadTournament(path, 16)
		require.ErrorIs(t, err, ErrPopulationSize)
	})

	t.Run("malformed snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tournament.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"cpus":[`), 0o644))

		_, err := LoadTournament(path, 8)
		require.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("missing snapshot", func(t *testing.T) {
		_, err := LoadTournament(filepath.Join(t.TempDir(), "tournament.json"), 8)
		require.ErrorIs(t, err, os.ErrNotExist)
		require.NotErrorIs(t, err, ErrCorrupt)
	})

	t.Run("wire format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tournament.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"cpus":[`+fixture+`],"generation":3}`), 0o644))

		loaded, err := LoadTournament(path, 1)
		require.NoError(t, err)
		require.Equal(t, 3, loaded.Generation)
		require.Equal(t, int8(1), loaded.CPUs[0].Stage1[0])
	})
}

func countLines(b []byte) int {
	n := 0
	for _, c := range b {
		if c == '\n' {
			n++
		}
	}
	return n
}
