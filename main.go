package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"othello/config"
	"othello/meta"
	"othello/runner"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

func main() {
	configPath := flag.String("config", meta.CONFIG_FILE_NAME, "Path to the YAML configuration")
	verbose := flag.Bool("v", false, "Log per-game details")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config path] [-v] learn|simulate\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Msg("using default configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := cfg.Save(*configPath); err != nil {
		log.Warn().Err(err).Msg("failed to write configuration back")
	}

	switch flag.Arg(0) {
	case "learn":
		learn(cfg)
	case "simulate":
		if _, err := runner.Simulate(cfg, os.Stdin, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("simulation failed")
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func learn(cfg config.Config) {
	seed := cfg.Seed
	if seed == 0 {
		seed = frand.Uint64n(1<<63) + 1
	}
	log.Info().Uint64("seed", seed).Msg("seeded trainer")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runner.Learn(ctx, cfg, rand.New(rand.NewSource(seed))); err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}
}
