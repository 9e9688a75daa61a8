package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/piecewar/piecewar/config"
	"github.com/piecewar/piecewar/shell"
)

const banner = `
        _
  _ __ (_) ___  ___ ___ _      ____ _ _ __
 | '_ \| |/ _ \/ __/ _ \ \ /\ / / _` + "`" + ` | '__|
 | |_) | |  __/ (_|  __/\ V  V / (_| | |
 | .__/|_|\___|\___\___| \_/\_/ \__,_|_|
 |_|        two pieces enter, one leaves
`

func main() {
	fmt.Print(banner, "\n")

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")

	sc := shell.NewShellController(cfg)
	sc.Loop()
}
