package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/piecewar/piecewar/automatic"
	"github.com/piecewar/piecewar/config"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("got quit signal...")
		cancel()
	}()

	result, err := automatic.StartCompVCompGames(ctx, cfg,
		cfg.Games, cfg.Threads, cfg.BatchOutput)
	if err != nil {
		log.Fatal().Err(err).Msg("self-play batch failed")
	}
	fmt.Printf("%d games played: %d - %d (%d stalemates, %d forfeits)\n",
		result.Games, result.Wins[0], result.Wins[1],
		result.Stalemates, result.Forfeits)
	fmt.Printf("per-turn log written to %v\n", cfg.BatchOutput)
}
