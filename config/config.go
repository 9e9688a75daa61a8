package config

import "github.com/namsral/flag"

type Config struct {
	Piece1  string
	Piece2  string
	Player1 string
	Player2 string
	Start1  string
	Start2  string

	SearchDepth       int
	MoveTimeLimitSecs int
	Evaluator         string

	GameLogPath string
	Debug       bool

	// Self-play batch settings, used by the autoplay binary.
	Games       int
	Threads     int
	BatchOutput string
}

func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("piecewar", flag.ContinueOnError)
	fs.StringVar(&c.Piece1, "piece1", "knight", "piece kind for player 1: knight, bishop, queen, rook")
	fs.StringVar(&c.Piece2, "piece2", "bishop", "piece kind for player 2: knight, bishop, queen, rook")
	fs.StringVar(&c.Player1, "player1", "human", "player type for player 1: human, random, greedy, minimax, alphabeta")
	fs.StringVar(&c.Player2, "player2", "alphabeta", "player type for player 2: human, random, greedy, minimax, alphabeta")
	fs.StringVar(&c.Start1, "start1", "a1", "initial square for player 1's piece")
	fs.StringVar(&c.Start2, "start2", "g7", "initial square for player 2's piece")
	fs.IntVar(&c.SearchDepth, "search-depth", 3, "depth limit for the AI search")
	fs.IntVar(&c.MoveTimeLimitSecs, "move-time-limit", 10, "per-move time budget in seconds")
	fs.StringVar(&c.Evaluator, "evaluator", "composite", "heuristic for the AI search: composite, mobility, center, farsighted, null")
	fs.StringVar(&c.GameLogPath, "game-log", "", "if set, write a YAML game log here after each game")
	fs.BoolVar(&c.Debug, "debug", false, "debug logging on")
	fs.IntVar(&c.Games, "games", 100, "number of games in a self-play batch")
	fs.IntVar(&c.Threads, "threads", 4, "worker goroutines for self-play batches")
	fs.StringVar(&c.BatchOutput, "batch-output", "/tmp/piecewar-selfplay.csv", "per-turn CSV log for self-play batches")
	err := fs.Parse(args)
	return err
}

func DefaultConfig() Config {
	c := Config{}
	if err := c.Load(nil); err != nil {
		panic(err)
	}
	return c
}
