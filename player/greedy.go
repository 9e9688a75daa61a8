package player

import (
	"context"
	"time"

	"github.com/piecewar/piecewar/board"
	"github.com/piecewar/piecewar/move"
	"github.com/piecewar/piecewar/movegen"
	"github.com/piecewar/piecewar/strategy"
)

// GreedyPlayer picks the move maximizing the evaluator's score of the
// resulting position. Equivalent to a minimax agent with a search depth of
// one.
type GreedyPlayer struct {
	ev strategy.Evaluator
}

func NewGreedyPlayer(ev strategy.Evaluator) *GreedyPlayer {
	return &GreedyPlayer{ev: ev}
}

func (p *GreedyPlayer) Name() string { return GreedyPlayerName }

func (p *GreedyPlayer) ChooseMove(ctx context.Context, pos board.Position,
	budget time.Duration) (move.Move, error) {

	onturn := pos.PlayerOnTurn()
	legal := movegen.LegalMoves(pos, onturn)
	if len(legal) == 0 {
		return move.Move{}, ErrNoLegalMoves
	}
	best := legal[0]
	bestScore := p.ev.Evaluate(pos.Apply(best.From, best.To), onturn)
	for _, m := range legal[1:] {
		score := p.ev.Evaluate(pos.Apply(m.From, m.To), onturn)
		if score > bestScore {
			best, bestScore = m, score
		}
	}
	return best, nil
}
