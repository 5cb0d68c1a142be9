package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"othello/searcher"
	"othello/tournament"

	"github.com/pkg/errors"
)

var (
	ErrEmpty          = errors.New("no genome recorded")
	ErrPopulationSize = errors.New("unexpected population size")
	ErrCorrupt        = errors.New("malformed snapshot")
)

// AppendGenome appends g as one JSON line, keeping earlier champions as history.
func AppendGenome(path string, g searcher.Genome) error {
	b, err := json.Marshal(g)
	if err != nil {
		return errors.Wrap(err, "failed to encode genome")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	if _, err := f.Write(append(b, '\n')); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to append to %s", path)
	}
	return errors.Wrapf(f.Close(), "failed to close %s", path)
}

// LoadGenome returns the last genome recorded in path.
func LoadGenome(path string) (searcher.Genome, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return searcher.Genome{}, errors.Wrapf(err, "failed to read %s", path)
	}

	last := ""
	scanner := bufio.NewScanner(bytes.NewReader(b))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			last = line
		}
	}
	if err := scanner.Err(); err != nil {
		return searcher.Genome{}, errors.Wrapf(err, "failed to scan %s", path)
	}
	if last == "" {
		return searcher.Genome{}, errors.Wrapf(ErrEmpty, "%s", path)
	}

	var g searcher.Genome
	if err := json.Unmarshal([]byte(last), &g); err != nil {
		return searcher.Genome{}, errors.Wrapf(err, "failed to decode genome in %s", path)
	}
	return g, nil
}

// SaveTournament replaces the population snapshot at path atomically.
func SaveTournament(path string, t *tournament.Tournament) error {
	b, err := json.Marshal(t)
	if err != nil {
		return errors.Wrap(err, "failed to encode tournament")
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", tmp)
	}
	return errors.Wrapf(os.Rename(tmp, path), "failed to replace %s", path)
}

// LoadTournament reads a population snapshot and checks it holds exactly size
// genomes.
func LoadTournament(path string, size int) (*tournament.Tournament, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	var t tournament.Tournament
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "%s: %v", path, err)
	}
	if len(t.CPUs) != size {
		return nil, errors.Wrapf(ErrPopulationSize, "%s holds %d genomes, want %d", path, len(t.CPUs), size)
	}
	return &t, nil
}
