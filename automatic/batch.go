package automatic

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/piecewar/piecewar/config"
	"github.com/piecewar/piecewar/game"
	"github.com/piecewar/piecewar/player"
)

// BatchResult tallies a batch of self-play games.
type BatchResult struct {
	Games      int
	Wins       [2]int
	Stalemates int
	Forfeits   int
}

// StartCompVCompGames plays numGames computer-vs-computer games across the
// given number of worker goroutines, writing a per-turn CSV log to
// outputFilename. Each worker owns its runner; no game state is shared.
func StartCompVCompGames(ctx context.Context, cfg *config.Config,
	numGames, threads int, outputFilename string) (BatchResult, error) {

	if cfg.Player1 == player.HumanPlayerName || cfg.Player2 == player.HumanPlayerName {
		return BatchResult{}, errors.New("self-play batches cannot include a human player")
	}
	logfile, err := os.Create(outputFilename)
	if err != nil {
		return BatchResult{}, err
	}
	log.Debug().Int("games", numGames).Int("threads", threads).
		Msg("starting self-play batch")

	jobs := make(chan int, numGames)
	for i := 0; i < numGames; i++ {
		jobs <- i
	}
	close(jobs)

	logchan := make(chan string, 100)
	reports := make(chan game.Report, numGames)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < threads; i++ {
		g.Go(func() error {
			r, err := NewGameRunner(logchan, cfg)
			if err != nil {
				return err
			}
			for range jobs {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				report, err := r.CompVsComp(ctx)
				if err != nil {
					return err
				}
				reports <- report
			}
			return nil
		})
	}

	writerDone := make(chan error, 1)
	go func() {
		_, werr := logfile.WriteString("player,gameID,ply,move,elapsed_sec\n")
		// Keep draining the channel even after a write error, so the
		// workers never block on a dead writer.
		for msg := range logchan {
			if werr != nil {
				continue
			}
			_, werr = logfile.WriteString(msg)
		}
		if cerr := logfile.Close(); werr == nil {
			werr = cerr
		}
		writerDone <- werr
	}()

	gerr := g.Wait()
	close(logchan)
	close(reports)
	if werr := <-writerDone; gerr == nil {
		gerr = werr
	}
	if gerr != nil {
		return BatchResult{}, fmt.Errorf("self-play batch: %w", gerr)
	}

	var result BatchResult
	for report := range reports {
		result.Games++
		result.Wins[report.Winner]++
		switch report.Reason {
		case game.ReasonStalemate:
			result.Stalemates++
		case game.ReasonForfeit:
			result.Forfeits++
		}
	}
	log.Info().Int("games", result.Games).
		Int("p1-wins", result.Wins[0]).Int("p2-wins", result.Wins[1]).
		Msg("self-play batch finished")
	return result, nil
}
