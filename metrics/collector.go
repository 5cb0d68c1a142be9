package metrics

import (
	"sync/atomic"
	"time"

	"othello/game"
)

type GameMetric struct {
	StartingPlayer game.Player
	Result         game.JudgeResult
	Black          int // final disc count
	White          int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Passes         int
}

type GenerationMetric struct {
	Generation int
	Workers    int
	Population int
	Games      int
	BlackWins  int
	WhiteWins  int
	Draws      int
	Passes     int
	StartTime  time.Time
	Duration   time.Duration
}

// Collector aggregates game metrics over one generation. AddGame is safe for
// concurrent use by workers.
type Collector interface {
	Start(generation, workers, population int)
	AddGame(metric GameMetric)
	Complete() GenerationMetric
}

type collector struct {
	generation int
	workers    int
	population int
	startTime  time.Time
	games      atomic.Int64
	blackWins  atomic.Int64
	whiteWins  atomic.Int64
	draws      atomic.Int64
	passes     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(generation, workers, population int) {
	m.startTime = time.Now()
	m.generation = generation
	m.workers = workers
	m.population = population
	m.games.Store(0)
	m.blackWins.Store(0)
	m.whiteWins.Store(0)
	m.draws.Store(0)
	m.passes.Store(0)
}

func (m *collector) AddGame(metric GameMetric) {
	m.games.Add(1)
	m.passes.Add(int64(metric.Passes))
	switch {
	case metric.Result.Outcome == game.Draw:
		m.draws.Add(1)
	case metric.Result.Outcome == game.Win && metric.Result.Winner == game.Black:
		m.blackWins.Add(1)
	case metric.Result.Outcome == game.Win:
		m.whiteWins.Add(1)
	}
}

func (m *collector) Complete() GenerationMetric {
	return GenerationMetric{
		Generation: m.generation,
		Workers:    m.workers,
		Population: m.population,
		Games:      int(m.games.Load()),
		BlackWins:  int(m.blackWins.Load()),
		WhiteWins:  int(m.whiteWins.Load()),
		Draws:      int(m.draws.Load()),
		Passes:     int(m.passes.Load()),
		StartTime:  m.startTime,
		Duration:   time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(generation, workers, population int) {}
func (m *dummyCollector) AddGame(metric GameMetric)                 {}
func (m *dummyCollector) Complete() GenerationMetric                { return GenerationMetric{} }
