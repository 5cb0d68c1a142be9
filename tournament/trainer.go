package tournament

import (
	"fmt"
	"slices"

	"othello/config"
	"othello/meta"
	"othello/metrics"
	"othello/searcher"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

type Option func(tr *Trainer)

func WithDepth(depth int) Option {
	return func(tr *Trainer) {
		if depth > 0 {
			tr.depth = depth
		}
	}
}

// WithSelection chooses between "roundrobin" brackets and "tournament"
// elimination.
func WithSelection(name string) Option {
	return func(tr *Trainer) {
		switch name {
		case config.SelectionRoundRobin, config.SelectionTournament:
			tr.selection = name
		default:
			panic("unknown selection: " + name)
		}
	}
}

func WithSelectSize(size int) Option {
	return func(tr *Trainer) {
		if size > 0 {
			tr.selectSize = size
		}
	}
}

func WithBracketSize(size int) Option {
	return func(tr *Trainer) {
		if size > 1 {
			tr.bracketSize = size
		}
	}
}

func WithCrossover(name string) Option {
	return func(tr *Trainer) {
		tr.crossover = crossoverByName(name)
	}
}

func WithCrossProb(prob float64) Option {
	return func(tr *Trainer) {
		tr.crossProb = prob
	}
}

func WithMutateProb(prob float64) Option {
	return func(tr *Trainer) {
		tr.mutateProb = prob
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(tr *Trainer) {
		if collector != nil {
			tr.metrics = collector
		}
	}
}

// Trainer advances a Tournament one generation at a time. It holds no random
// state of its own; every Upgrade draws from the source it is given.
type Trainer struct {
	workers     int
	depth       int
	selection   string
	selectSize  int
	bracketSize int
	crossover   Crossover
	crossProb   float64
	mutateProb  float64
	metrics     metrics.Collector
}

func NewTrainer(workers int, options ...Option) *Trainer {
	if workers <= 0 {
		panic("Must use at least one worker")
	}
	tr := &Trainer{ // Default values
		workers:     workers,
		depth:       meta.LEARNING_DEPTH,
		selection:   config.SelectionRoundRobin,
		selectSize:  meta.SELECT_TOURNAMENT_SIZE,
		bracketSize: meta.BRACKET_SIZE,
		crossover:   CrossTwoPoint,
		crossProb:   meta.CROSS_PROB,
		mutateProb:  meta.MUTATE_PROB,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(tr)
	}
	return tr
}

// NewTrainerFromConfig builds a trainer with every setting taken from cfg.
func NewTrainerFromConfig(cfg config.Config, collector metrics.Collector) *Trainer {
	return NewTrainer(cfg.Workers,
		WithDepth(cfg.LearningDepth),
		WithSelection(cfg.Selection),
		WithSelectSize(cfg.SelectTournamentSize),
		WithBracketSize(cfg.BracketSize),
		WithCrossover(cfg.Crossover),
		WithCrossProb(cfg.CrossProb),
		WithMutateProb(cfg.MutateProb),
		WithMetrics(collector),
	)
}

// Upgrade replaces t's population with the next generation. Each worker owns
// one slice of the population and a random source seeded from rng, so the
// result only depends on rng's state. t is updated after every worker joins.
func (tr *Trainer) Upgrade(t *Tournament, rng *rand.Rand) metrics.GenerationMetric {
	size := len(t.CPUs)
	if size == 0 || size%tr.workers != 0 {
		panic(fmt.Sprintf("population size %d is not a multiple of %d workers", size, tr.workers))
	}

	tr.metrics.Start(t.Generation, tr.workers, size)

	chunks := lo.Chunk(t.CPUs, size/tr.workers)
	seeds := make([]uint64, tr.workers)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}

	offspring := fanOut(tr.workers, func(worker int) []searcher.Genome {
		local := rand.New(rand.NewSource(seeds[worker]))
		return tr.breed(slices.Clone(chunks[worker]), local)
	})

	next := lo.Flatten(offspring)
	if len(next) != size {
		panic(fmt.Sprintf("generation produced %d genomes, want %d", len(next), size))
	}
	t.CPUs = next
	t.Generation++

	metric := tr.metrics.Complete()
	log.Debug().Int("generation", t.Generation).Int("games", metric.Games).Dur("duration", metric.Duration).Msg("generation upgraded")
	return metric
}

// Champion folds the whole population pairwise through contests and returns
// the survivor.
func (tr *Trainer) Champion(t *Tournament) searcher.Genome {
	if len(t.CPUs) == 0 {
		panic("empty population has no champion")
	}
	return lo.Reduce(t.CPUs[1:], func(survivor searcher.Genome, challenger searcher.Genome, _ int) searcher.Genome {
		return Contest(survivor, challenger, tr.depth).Winner
	}, t.CPUs[0])
}

func (tr *Trainer) breed(population []searcher.Genome, rng *rand.Rand) []searcher.Genome {
	if tr.selection == config.SelectionTournament {
		return tr.eliminate(population, rng)
	}

	next := make([]searcher.Genome, 0, len(population))
	for _, bracket := range lo.Chunk(population, tr.bracketSize) {
		next = append(next, tr.offspring(tr.rank(bracket), rng)...)
	}
	return next
}

// contest plays one game and reports it to the metrics collector.
func (tr *Trainer) contest(black, white searcher.Genome) Result {
	r := Contest(black, white, tr.depth)
	tr.metrics.AddGame(r.Metric)
	return r
}

func (tr *Trainer) cross(left, right Scored, rng *rand.Rand) searcher.Genome {
	if rng.Float64() >= tr.crossProb {
		return left.Genome
	}
	return tr.crossover(left, right, rng)
}
