package tournament

import (
	"math"

	"othello/config"
	"othello/searcher"

	"golang.org/x/exp/rand"
)

// Scored is a genome with the fitness it earned in its last matches.
type Scored struct {
	Genome searcher.Genome
	Wins   int
	Score  int // discs held at the end of its games
}

// Crossover produces one offspring from two parents.
type Crossover func(left, right Scored, rng *rand.Rand) searcher.Genome

func crossoverByName(name string) Crossover {
	switch name {
	case config.CrossoverAlpha:
		return CrossAlpha
	case config.CrossoverTwoPoint:
		return CrossTwoPoint
	case config.CrossoverUniform:
		return CrossUniform
	default:
		panic("unknown crossover: " + name)
	}
}

// CrossAlpha averages the parents' genes weighted by their scores and scales
// the result by 1.5 with ±10% jitter.
func CrossAlpha(left, right Scored, rng *rand.Rand) searcher.Genome {
	lw, rw := float64(left.Score), float64(right.Score)
	if lw+rw <= 0 {
		lw, rw = 1, 1
	}

	var child searcher.Genome
	l, r, c := left.Genome.Stages(), right.Genome.Stages(), child.Stages()
	for s := range c {
		for i := 0; i < searcher.WeightLen; i++ {
			avg := (lw*float64(l[s][i]) + rw*float64(r[s][i])) / (lw + rw)
			jitter := 1.5 * (0.9 + 0.2*rng.Float64())
			c[s][i] = clampInt8(avg * jitter)
		}
	}
	return child
}

// CrossTwoPoint copies genes [i, j) of every stage from the right parent and
// the rest from the left. Cut points are drawn per stage.
func CrossTwoPoint(left, right Scored, rng *rand.Rand) searcher.Genome {
	child := left.Genome
	r, c := right.Genome.Stages(), child.Stages()
	for s := range c {
		i := rng.Intn(searcher.WeightLen)
		j := i + rng.Intn(searcher.WeightLen-i)
		for k := i; k < j; k++ {
			c[s][k] = r[s][k]
		}
	}
	return child
}

// CrossUniform takes each gene from either parent with equal probability.
func CrossUniform(left, right Scored, rng *rand.Rand) searcher.Genome {
	child := left.Genome
	r, c := right.Genome.Stages(), child.Stages()
	for s := range c {
		for k := 0; k < searcher.WeightLen; k++ {
			if rng.Intn(2) == 1 {
				c[s][k] = r[s][k]
			}
		}
	}
	return child
}

// Mutate adds a fresh random value to every gene of g, wrapping on overflow,
// with probability prob. The whole genome mutates or none of it does.
func Mutate(g *searcher.Genome, prob float64, rng *rand.Rand) bool {
	if rng.Float64() >= prob {
		return false
	}
	for _, stage := range g.Stages() {
		for i := range stage {
			stage[i] += int8(rng.Uint32())
		}
	}
	return true
}

func clampInt8(x float64) int8 {
	return int8(math.Max(math.MinInt8, math.Min(math.MaxInt8, math.Trunc(x))))
}
