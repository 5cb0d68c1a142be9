package runner

import (
	"context"
	"os"

	"othello/config"
	"othello/metrics"
	"othello/storage"
	"othello/tournament"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Option func(o *options)

type options struct {
	generations int
}

// WithGenerations stops training after n generations. Zero or less trains
// until the context is cancelled.
func WithGenerations(n int) Option {
	return func(o *options) {
		o.generations = n
	}
}

// Learn evolves the population stored in cfg's tournament file, starting a
// random one when the file is missing or unusable. Every LogTournamentGeneration
// generations the population and its champion are written to disk along with
// the generation records. A cancelled context saves the population and
// returns nil.
func Learn(ctx context.Context, cfg config.Config, rng *rand.Rand, opts ...Option) error {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	population, err := loadPopulation(cfg, rng)
	if err != nil {
		return err
	}

	writer, err := metrics.NewWriter(cfg.MetricsDir)
	if err != nil {
		return errors.Wrap(err, "failed to create metrics writer")
	}

	trainer := tournament.NewTrainerFromConfig(cfg, metrics.NewCollector())
	records := []metrics.GenerationMetric{}

	log.Info().Msgf("training from generation %d with %d genomes on %d workers...", population.Generation, len(population.CPUs), cfg.Workers)

	for n := 0; o.generations <= 0 || n < o.generations; n++ {
		select {
		case <-ctx.Done():
			log.Info().Msgf("training interrupted at generation %d", population.Generation)
			return errors.Wrap(storage.SaveTournament(cfg.TournamentLatestFileName, population), "failed to save population")
		default:
		}

		record := trainer.Upgrade(population, rng)
		records = append(records, record)
		log.Info().
			Int("generation", population.Generation).
			Int("games", record.Games).
			Int("black_wins", record.BlackWins).
			Int("white_wins", record.WhiteWins).
			Int("draws", record.Draws).
			Dur("duration", record.Duration).
			Msg("completed generation")

		if population.Generation%cfg.LogTournamentGeneration != 0 {
			continue
		}
		if err := checkpoint(cfg, trainer, population, writer, records); err != nil {
			return err
		}
	}
	return nil
}

// loadPopulation resumes from the stored snapshot. A missing, malformed or
// wrongly sized snapshot starts a random population; any other read error is
// returned so the snapshot is not overwritten.
func loadPopulation(cfg config.Config, rng *rand.Rand) (*tournament.Tournament, error) {
	population, err := storage.LoadTournament(cfg.TournamentLatestFileName, cfg.TournamentSize)
	switch {
	case err == nil:
		return population, nil
	case errors.Is(err, os.ErrNotExist), errors.Is(err, storage.ErrCorrupt), errors.Is(err, storage.ErrPopulationSize):
		log.Warn().Err(err).Msg("starting from a random population")
		return tournament.NewRandom(cfg.TournamentSize, rng), nil
	default:
		return nil, errors.Wrap(err, "failed to load population")
	}
}

// checkpoint stores the population, its champion and the generation records
// concurrently and returns the first failure.
func checkpoint(cfg config.Config, trainer *tournament.Trainer, population *tournament.Tournament, writer *metrics.Writer, records []metrics.GenerationMetric) error {
	g := errgroup.Group{}
	g.Go(func() error {
		if err := storage.SaveTournament(cfg.TournamentLatestFileName, population); err != nil {
			return errors.Wrap(err, "failed to save population")
		}
		log.Info().Msgf("stored population at generation %d", population.Generation)
		return nil
	})
	g.Go(func() error {
		champion := trainer.Champion(population)
		if err := storage.AppendGenome(cfg.WinnerLatestFileName, champion); err != nil {
			return errors.Wrap(err, "failed to store champion")
		}
		log.Info().Msg("stored champion")
		return nil
	})
	g.Go(func() error {
		if err := writer.WriteGenerationRecords(records); err != nil {
			return errors.Wrap(err, "failed to write generation records")
		}
		log.Debug().Str("dir", writer.Dir()).Msg("stored generation records")
		return nil
	})
	return g.Wait()
}
