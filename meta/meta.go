// meta/meta.go
package meta

// WORKER_FAN_OUT is the number of workers a generation is split across. The
// population size must be a multiple of it.
const WORKER_FAN_OUT = 128

// BRACKET_SIZE is the number of genomes playing each other in a round-robin bracket.
const BRACKET_SIZE = 8

// TOURNAMENT_SIZE is the default population size.
const TOURNAMENT_SIZE = 4096

const SELECT_TOURNAMENT_SIZE = 4

const LEARNING_DEPTH = 1

const SIMULATION_DEPTH = 8

const CROSS_PROB = 0.75

const MUTATE_PROB = 0.025

// LOG_TOURNAMENT_GENERATION is the number of generations between checkpoints.
const LOG_TOURNAMENT_GENERATION = 25

const CONFIG_FILE_NAME = "config.yaml"

const TOURNAMENT_LATEST_FILE_NAME = "tournament_latest.json"

const WINNER_LATEST_FILE_NAME = "winner_latest.json"

const METRICS_DIR = "experiments/training"
