package searcher

import (
	"othello/game"

	"golang.org/x/exp/rand"
)

// WeightLen is the number of genes per stage: ten symmetry classes of cells
// plus one mobility weight.
const WeightLen = 11

// MobilityIndex is the gene scaling the number of legal moves.
const MobilityIndex = WeightLen - 1

type Weights [WeightLen]int8

// Genome is an evolvable evaluation strategy with one weight table per game
// phase.
type Genome struct {
	Stage1 Weights `json:"stage1"`
	Stage2 Weights `json:"stage2"`
	Stage3 Weights `json:"stage3"`
	Stage4 Weights `json:"stage4"`
}

func NewRandomGenome(rng *rand.Rand) Genome {
	var g Genome
	for _, stage := range g.Stages() {
		for i := range stage {
			stage[i] = int8(rng.Uint32())
		}
	}
	return g
}

// NewAlphaGenome returns the hand-tuned genome used when no trained champion
// is available.
func NewAlphaGenome() Genome {
	return Genome{
		// corner, C, X, 20, 21, 22, 30, 31, 32, center, mobility
		Stage1: Weights{100, -20, -50, 10, -2, -1, 5, -2, -1, 0, 12},
		Stage2: Weights{100, -20, -40, 10, -2, -1, 5, -1, 0, 0, 10},
		Stage3: Weights{100, -10, -25, 10, 0, 0, 5, 0, 1, 1, 6},
		Stage4: Weights{40, 10, 5, 15, 10, 10, 15, 10, 10, 10, 2},
	}
}

// Stages returns pointers to the four stage tables in phase order.
func (g *Genome) Stages() [4]*Weights {
	return [4]*Weights{&g.Stage1, &g.Stage2, &g.Stage3, &g.Stage4}
}

// Stage selects the weight table for the board's phase.
func (g Genome) Stage(turn int) Weights {
	switch {
	case turn < 15:
		return g.Stage1
	case turn < 30:
		return g.Stage2
	case turn < 45:
		return g.Stage3
	default:
		return g.Stage4
	}
}

// CPU plays a genome at a fixed search depth.
type CPU struct {
	Genome Genome
	Depth  int
}

func NewCPU(g Genome, depth int) CPU {
	return CPU{Genome: g, Depth: depth}
}

func (c CPU) FindMove(board game.Board) (game.Choice, error) {
	return c.Genome.ChooseBest(board, c.Depth), nil
}
