// Package player contains the polymorphic player abstraction. Every player
// type produces one move per turn through the same ChooseMove contract; the
// game driver never branches on what kind of player it is talking to.
package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/piecewar/piecewar/board"
	"github.com/piecewar/piecewar/move"
	"github.com/piecewar/piecewar/strategy"
)

// Player type names, as accepted by New and the config.
const (
	HumanPlayerName     = "human"
	RandomPlayerName    = "random"
	GreedyPlayerName    = "greedy"
	MinimaxPlayerName   = "minimax"
	AlphaBetaPlayerName = "alphabeta"
)

var (
	// ErrNoLegalMoves means the side to move is stalemated (or captured).
	// The driver records this as a stalemate loss, not a forfeit.
	ErrNoLegalMoves = errors.New("no legal moves available")
	// ErrTimeExceeded means the player failed to produce a move within the
	// budget. The driver records this as a forfeit.
	ErrTimeExceeded = errors.New("move time limit exceeded")
)

// Player produces one move per turn. Implementations must return
// ErrNoLegalMoves when stalemated and ErrTimeExceeded when they cannot
// answer within the budget; any returned move must be legal in pos.
type Player interface {
	ChooseMove(ctx context.Context, pos board.Position, budget time.Duration) (move.Move, error)
	Name() string
}

// New builds a player from its type name. Search-based players use the
// given evaluator and depth limit. An unknown name is a configuration
// error, reported at construction.
func New(playerType string, ev strategy.Evaluator, depth int) (Player, error) {
	switch playerType {
	case RandomPlayerName:
		return NewRandomPlayer(), nil
	case GreedyPlayerName:
		return NewGreedyPlayer(ev), nil
	case HumanPlayerName:
		return NewHumanPlayer(), nil
	case MinimaxPlayerName:
		return NewMinimaxPlayer(ev, depth)
	case AlphaBetaPlayerName:
		return NewAlphaBetaPlayer(ev, depth)
	}
	return nil, fmt.Errorf("%v is not a supported player type", playerType)
}
