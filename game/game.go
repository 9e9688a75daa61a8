// Package game encapsulates the gameplay mechanics of piecewar: it owns the
// current position, alternates turns between two players, applies their
// moves, and decides when and why the game ended. A Game doesn't care what
// kind of players it is given; they all answer the same ChooseMove call.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/rs/zerolog/log"

	"github.com/piecewar/piecewar/board"
	"github.com/piecewar/piecewar/move"
	"github.com/piecewar/piecewar/movegen"
	"github.com/piecewar/piecewar/player"
)

// EndReason says why a finished game ended.
type EndReason uint8

const (
	ReasonNone EndReason = iota
	// ReasonStalemate: the losing side had no legal move on its turn.
	ReasonStalemate
	// ReasonForfeit: the losing side failed to move within the time budget.
	ReasonForfeit
)

func (r EndReason) String() string {
	switch r {
	case ReasonStalemate:
		return "stalemate"
	case ReasonForfeit:
		return "forfeit"
	}
	return "none"
}

// Report is the end-of-game summary handed to the driver.
type Report struct {
	Uid        string
	Winner     int
	WinnerName string
	Reason     EndReason
	Plies      int
}

// Game drives one match between two players.
type Game struct {
	uid     string
	pos     board.Position
	players [board.MaxPlayers]player.Player
	names   [board.MaxPlayers]string
	budget  time.Duration

	playing bool
	plies   int
	history []move.Move
	winner  int
	reason  EndReason
}

// NewGame instantiates a game from the starting position. The budget is the
// per-move wall-clock allowance for both sides.
func NewGame(p0, p1 player.Player, pos board.Position, budget time.Duration) *Game {
	g := &Game{
		uid:     shortuuid.New(),
		pos:     pos,
		players: [board.MaxPlayers]player.Player{p0, p1},
		names: [board.MaxPlayers]string{
			p0.Name() + "-1", p1.Name() + "-2",
		},
		budget:  budget,
		playing: true,
		winner:  -1,
	}
	log.Debug().Str("uid", g.uid).
		Str("p1", g.names[0]).Str("p2", g.names[1]).
		Dur("budget", budget).
		Msg("new-game")
	return g
}

func (g *Game) Uid() string              { return g.uid }
func (g *Game) Playing() bool            { return g.playing }
func (g *Game) Position() board.Position { return g.pos }
func (g *Game) Plies() int               { return g.plies }
func (g *Game) PlayerOnTurn() int        { return g.pos.PlayerOnTurn() }
func (g *Game) NameFor(side int) string  { return g.names[side] }

// History returns the moves played so far, in order.
func (g *Game) History() []move.Move {
	return append([]move.Move{}, g.history...)
}

// PlayTurn asks the side on turn for a move and applies it. Stalemate and
// forfeit signals from the player end the game with the appropriate reason.
// A non-signal error from a player, or an illegal returned move, aborts the
// turn without advancing the game.
func (g *Game) PlayTurn(ctx context.Context) error {
	if !g.playing {
		return errors.New("game is over")
	}
	onturn := g.pos.PlayerOnTurn()
	opp := g.pos.NextPlayer()

	m, err := g.players[onturn].ChooseMove(ctx, g.pos, g.budget)
	switch {
	case errors.Is(err, player.ErrNoLegalMoves):
		g.end(opp, ReasonStalemate)
		return nil
	case errors.Is(err, player.ErrTimeExceeded):
		g.end(opp, ReasonForfeit)
		return nil
	case err != nil:
		return err
	}

	if !g.isLegal(onturn, m) {
		return fmt.Errorf("player %v returned illegal move %v", g.names[onturn], m)
	}
	g.pos = g.pos.Apply(m.From, m.To)
	g.history = append(g.history, m)
	g.plies++
	log.Debug().Str("uid", g.uid).Int("ply", g.plies).
		Str("player", g.names[onturn]).Str("move", m.String()).
		Msg("played")

	// Check the terminal state before handing the turn over, so the driver
	// doesn't have to ask a stalemated player for a move.
	if movegen.Stalemate(g.pos) {
		g.end(onturn, ReasonStalemate)
	}
	return nil
}

func (g *Game) isLegal(side int, m move.Move) bool {
	for _, legal := range movegen.LegalMoves(g.pos, side) {
		if legal == m {
			return true
		}
	}
	return false
}

func (g *Game) end(winner int, reason EndReason) {
	g.playing = false
	g.winner = winner
	g.reason = reason
	log.Debug().Str("uid", g.uid).
		Str("winner", g.names[winner]).
		Str("reason", reason.String()).
		Int("plies", g.plies).
		Msg("game-over")
}

// Report returns the end-of-game summary. Reason is ReasonNone while the
// game is still going.
func (g *Game) Report() Report {
	r := Report{
		Uid:    g.uid,
		Winner: g.winner,
		Reason: g.reason,
		Plies:  g.plies,
	}
	if g.winner >= 0 {
		r.WinnerName = g.names[g.winner]
	}
	return r
}
