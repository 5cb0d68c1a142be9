package config

import (
	"os"

	"othello/meta"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	SelectionTournament = "tournament"
	SelectionRoundRobin = "roundrobin"

	CrossoverAlpha    = "alpha"
	CrossoverTwoPoint = "twopoint"
	CrossoverUniform  = "uniform"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	LogTournamentGeneration  int     `yaml:"log_tournament_generation"`
	TournamentSize           int     `yaml:"tournament_size"`
	SelectTournamentSize     int     `yaml:"select_tournament_size"`
	LearningDepth            int     `yaml:"learning_depth"`
	SimulationDepth          int     `yaml:"simulation_depth"`
	CrossProb                float64 `yaml:"cross_prob"`
	MutateProb               float64 `yaml:"mutate_prob"`
	TournamentLatestFileName string  `yaml:"tournament_latest_file_name"`
	WinnerLatestFileName     string  `yaml:"winner_latest_file_name"`
	Workers                  int     `yaml:"workers"`
	BracketSize              int     `yaml:"bracket_size"`
	Selection                string  `yaml:"selection"`
	Crossover                string  `yaml:"crossover"`
	Seed                     uint64  `yaml:"seed"` // 0 draws a fresh seed
	MetricsDir               string  `yaml:"metrics_dir"`
}

func Default() Config {
	return Config{
		LogTournamentGeneration:  meta.LOG_TOURNAMENT_GENERATION,
		TournamentSize:           meta.TOURNAMENT_SIZE,
		SelectTournamentSize:     meta.SELECT_TOURNAMENT_SIZE,
		LearningDepth:            meta.LEARNING_DEPTH,
		SimulationDepth:          meta.SIMULATION_DEPTH,
		CrossProb:                meta.CROSS_PROB,
		MutateProb:               meta.MUTATE_PROB,
		TournamentLatestFileName: meta.TOURNAMENT_LATEST_FILE_NAME,
		WinnerLatestFileName:     meta.WINNER_LATEST_FILE_NAME,
		Workers:                  meta.WORKER_FAN_OUT,
		BracketSize:              meta.BRACKET_SIZE,
		Selection:                SelectionRoundRobin,
		Crossover:                CrossoverTwoPoint,
		MetricsDir:               meta.METRICS_DIR,
	}
}

// Load reads a YAML config file. Fields missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Default(), errors.Wrapf(err, "failed to parse config %s", path)
	}
	return cfg, nil
}

// Save writes the config as YAML, replacing any previous file.
func (c Config) Save(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	return errors.Wrapf(os.WriteFile(path, b, 0o644), "failed to write config %s", path)
}

// Validate reports settings the trainer cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Workers <= 0:
		return errors.Wrap(ErrInvalid, "workers must be positive")
	case c.TournamentSize <= 0 || c.TournamentSize%c.Workers != 0:
		return errors.Wrapf(ErrInvalid, "tournament_size %d must be a positive multiple of workers %d", c.TournamentSize, c.Workers)
	case c.LearningDepth < 1 || c.SimulationDepth < 1:
		return errors.Wrap(ErrInvalid, "search depths must be at least 1")
	case c.LogTournamentGeneration < 1:
		return errors.Wrap(ErrInvalid, "log_tournament_generation must be at least 1")
	case c.BracketSize < 2:
		return errors.Wrap(ErrInvalid, "bracket_size must be at least 2")
	case c.SelectTournamentSize < 1:
		return errors.Wrap(ErrInvalid, "select_tournament_size must be at least 1")
	case c.CrossProb < 0 || c.CrossProb > 1 || c.MutateProb < 0 || c.MutateProb > 1:
		return errors.Wrap(ErrInvalid, "probabilities must be within [0, 1]")
	}
	switch c.Selection {
	case SelectionTournament, SelectionRoundRobin:
	default:
		return errors.Wrapf(ErrInvalid, "unknown selection %q", c.Selection)
	}
	switch c.Crossover {
	case CrossoverAlpha, CrossoverTwoPoint, CrossoverUniform:
	default:
		return errors.Wrapf(ErrInvalid, "unknown crossover %q", c.Crossover)
	}
	return nil
}
