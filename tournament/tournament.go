package tournament

import (
	"othello/engine"
	"othello/game"
	"othello/metrics"
	"othello/searcher"

	"golang.org/x/exp/rand"
)

// Tournament is a fixed-size population of genomes and its generation counter.
type Tournament struct {
	CPUs       []searcher.Genome `json:"cpus"`
	Generation int               `json:"generation"`
}

// NewRandom returns a first generation of random genomes.
func NewRandom(size int, rng *rand.Rand) *Tournament {
	cpus := make([]searcher.Genome, size)
	for i := range cpus {
		cpus[i] = searcher.NewRandomGenome(rng)
	}
	return &Tournament{
		CPUs:       cpus,
		Generation: 1,
	}
}

// Result is the outcome of a contest. Black keeps the win on a draw. Final
// disc counts are in Metric.
type Result struct {
	Winner searcher.Genome
	Judge  game.JudgeResult
	Metric metrics.GameMetric
}

// BlackWins reports whether the genome playing Black survives the contest.
func (r Result) BlackWins() bool {
	return !(r.Judge.Outcome == game.Win && r.Judge.Winner == game.White)
}

// Contest plays a full game between two genomes, black moving first, each
// searching to depth. It is deterministic.
func Contest(black, white searcher.Genome, depth int) Result {
	e := engine.LocalEngine(searcher.NewCPU(black, depth), searcher.NewCPU(white, depth))
	judge, metric, err := e.Run()
	if err != nil {
		panic(err)
	}

	r := Result{
		Winner: black,
		Judge:  judge,
		Metric: metric,
	}
	if !r.BlackWins() {
		r.Winner = white
	}
	return r
}
