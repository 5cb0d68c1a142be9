package tournament

import (
	"sort"

	"othello/game"
	"othello/searcher"

	"golang.org/x/exp/rand"
)

// rank plays every pair of the bracket once, the earlier genome as Black, and
// orders the bracket by wins. Ties keep bracket order.
func (tr *Trainer) rank(bracket []searcher.Genome) []Scored {
	scored := make([]Scored, len(bracket))
	for i, g := range bracket {
		scored[i].Genome = g
	}

	for i := 0; i < len(bracket); i++ {
		for j := i + 1; j < len(bracket); j++ {
			r := tr.contest(bracket[i], bracket[j])
			scored[i].Score += r.Metric.Black
			scored[j].Score += r.Metric.White
			switch {
			case r.Judge.Outcome != game.Win:
			case r.Judge.Winner == game.Black:
				scored[i].Wins++
			default:
				scored[j].Wins++
			}
		}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Wins > scored[b].Wins
	})
	return scored
}

// offspring refills a ranked bracket: the leader is kept as is and every other
// slot is a crossed and possibly mutated child of two parents from the top
// half.
func (tr *Trainer) offspring(ranked []Scored, rng *rand.Rand) []searcher.Genome {
	next := make([]searcher.Genome, 0, len(ranked))
	next = append(next, ranked[0].Genome)

	parents := ranked[:(len(ranked)+1)/2]
	for k := 1; k < len(ranked); k++ {
		left := parents[(k-1)%len(parents)]
		right := parents[rng.Intn(len(parents))]
		child := tr.cross(left, right, rng)
		Mutate(&child, tr.mutateProb, rng)
		next = append(next, child)
	}
	return next
}

// eliminate fills the slice with children of tournament-selected parents.
func (tr *Trainer) eliminate(population []searcher.Genome, rng *rand.Rand) []searcher.Genome {
	next := make([]searcher.Genome, len(population))
	for k := range next {
		left := tr.survivor(population, rng)
		right := tr.survivor(population, rng)
		child := tr.cross(left, right, rng)
		Mutate(&child, tr.mutateProb, rng)
		next[k] = child
	}
	return next
}

// survivor samples selectSize distinct genomes and folds them through
// contests, the current survivor playing Black.
func (tr *Trainer) survivor(population []searcher.Genome, rng *rand.Rand) Scored {
	sample := rng.Perm(len(population))[:min(tr.selectSize, len(population))]
	survivor := Scored{Genome: population[sample[0]]}
	for _, k := range sample[1:] {
		challenger := population[k]
		r := tr.contest(survivor.Genome, challenger)
		if r.BlackWins() {
			survivor = Scored{Genome: survivor.Genome, Wins: survivor.Wins + 1, Score: r.Metric.Black}
		} else {
			survivor = Scored{Genome: challenger, Wins: 1, Score: r.Metric.White}
		}
	}
	return survivor
}
