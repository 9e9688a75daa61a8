package player

import (
	"context"
	"time"

	"lukechampine.com/frand"

	"github.com/piecewar/piecewar/board"
	"github.com/piecewar/piecewar/move"
	"github.com/piecewar/piecewar/movegen"
)

// RandomPlayer selects uniformly among the legal moves.
type RandomPlayer struct{}

func NewRandomPlayer() *RandomPlayer { return &RandomPlayer{} }

func (p *RandomPlayer) Name() string { return RandomPlayerName }

func (p *RandomPlayer) ChooseMove(ctx context.Context, pos board.Position,
	budget time.Duration) (move.Move, error) {

	legal := movegen.LegalMoves(pos, pos.PlayerOnTurn())
	if len(legal) == 0 {
		return move.Move{}, ErrNoLegalMoves
	}
	return legal[frand.Intn(len(legal))], nil
}
