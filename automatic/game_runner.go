// Package automatic contains the logic for driving full games of piecewar:
// building players from a configuration, alternating turns, and collecting
// per-turn logs and end-of-game reports. Computer-vs-computer batches live
// here too.
package automatic

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/piecewar/piecewar/board"
	"github.com/piecewar/piecewar/config"
	"github.com/piecewar/piecewar/game"
	"github.com/piecewar/piecewar/player"
	"github.com/piecewar/piecewar/strategy"
)

// GameRunner is the master struct for the automatic game logic.
type GameRunner struct {
	game    *game.Game
	players [board.MaxPlayers]player.Player
	start   board.Position
	budget  time.Duration

	config  *config.Config
	logchan chan string
}

// NewGameRunner instantiates and initializes a game runner from the given
// config. Configuration mistakes (unknown piece kinds, player types, or
// squares) surface here, before any game starts.
func NewGameRunner(logchan chan string, cfg *config.Config) (*GameRunner, error) {
	r := &GameRunner{logchan: logchan, config: cfg}
	if err := r.Init(cfg.Player1, cfg.Player2); err != nil {
		return nil, err
	}
	return r, nil
}

// Init initializes the runner with the given player types, keeping the
// piece and square setup from the config. It may be called again to reuse
// the runner for another game.
func (r *GameRunner) Init(player1, player2 string) error {
	kind1, err := board.ParsePieceKind(r.config.Piece1)
	if err != nil {
		return err
	}
	kind2, err := board.ParsePieceKind(r.config.Piece2)
	if err != nil {
		return err
	}
	sq1, err := board.ParseSquare(r.config.Start1)
	if err != nil {
		return err
	}
	sq2, err := board.ParseSquare(r.config.Start2)
	if err != nil {
		return err
	}
	if sq1 == sq2 {
		return fmt.Errorf("both pieces cannot start on %v", sq1)
	}

	ev, err := strategy.New(r.config.Evaluator)
	if err != nil {
		return err
	}
	for idx, ptype := range []string{player1, player2} {
		p, err := player.New(ptype, ev, r.config.SearchDepth)
		if err != nil {
			return err
		}
		r.players[idx] = p
	}
	r.start = board.NewPosition(kind1, kind2, sq1, sq2)
	r.budget = time.Duration(r.config.MoveTimeLimitSecs) * time.Second
	return nil
}

// StartGame begins a fresh game from the configured starting position.
func (r *GameRunner) StartGame() {
	r.game = game.NewGame(r.players[0], r.players[1], r.start, r.budget)
}

// Game returns the game in progress (or the finished one).
func (r *GameRunner) Game() *game.Game { return r.game }

// PlayerFor returns the player instance for a side. The shell uses this to
// feed moves to a human player.
func (r *GameRunner) PlayerFor(side int) player.Player { return r.players[side] }

// PlayTurn plays a single turn of the current game, logging it to the
// logchan if one is attached.
func (r *GameRunner) PlayTurn(ctx context.Context) error {
	g := r.game
	onturn := g.PlayerOnTurn()
	ply := g.Plies()
	tstart := time.Now()
	if err := g.PlayTurn(ctx); err != nil {
		return err
	}
	if r.logchan != nil && g.Plies() > ply {
		history := g.History()
		r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%.3f\n",
			g.NameFor(onturn),
			g.Uid(),
			g.Plies(),
			history[len(history)-1],
			time.Since(tstart).Seconds())
	}
	return nil
}

// PlayFull plays the current game out to the end and returns the report.
func (r *GameRunner) PlayFull(ctx context.Context) (game.Report, error) {
	r.StartGame()
	for r.game.Playing() {
		if err := r.PlayTurn(ctx); err != nil {
			return game.Report{}, err
		}
	}
	return r.game.Report(), nil
}

// CompVsComp plays a single computer-vs-computer game with the configured
// player types and logs the outcome.
func (r *GameRunner) CompVsComp(ctx context.Context) (game.Report, error) {
	report, err := r.PlayFull(ctx)
	if err != nil {
		return report, err
	}
	log.Debug().Str("winner", report.WinnerName).
		Str("reason", report.Reason.String()).
		Int("plies", report.Plies).
		Msg("game over")
	return report, nil
}
