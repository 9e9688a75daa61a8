package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/piecewar/piecewar/board"
	"github.com/piecewar/piecewar/move"
	"github.com/piecewar/piecewar/movegen"
	"github.com/piecewar/piecewar/search"
	"github.com/piecewar/piecewar/search/alphabeta"
	"github.com/piecewar/piecewar/search/minimax"
	"github.com/piecewar/piecewar/strategy"
)

// timerThreshold is shaved off the budget so the search returns before the
// driver's own clock expires.
const timerThreshold = 10 * time.Millisecond

// AIPlayer wraps a search solver behind the Player contract. Iterative
// deepening inside the solver guarantees a move for any budget that allows
// even a depth-1 pass; if not even that completes, the first generated
// legal move is played rather than forfeiting the turn.
type AIPlayer struct {
	name   string
	solver search.Solver
	depth  int
}

// NewMinimaxPlayer returns an AI player backed by the plain minimax solver.
func NewMinimaxPlayer(ev strategy.Evaluator, depth int) (*AIPlayer, error) {
	if depth < 1 {
		return nil, fmt.Errorf("search depth must be at least 1, got %d", depth)
	}
	s := &minimax.Solver{}
	if err := s.Init(ev); err != nil {
		return nil, err
	}
	return &AIPlayer{name: MinimaxPlayerName, solver: s, depth: depth}, nil
}

// NewAlphaBetaPlayer returns an AI player backed by the pruning solver.
func NewAlphaBetaPlayer(ev strategy.Evaluator, depth int) (*AIPlayer, error) {
	if depth < 1 {
		return nil, fmt.Errorf("search depth must be at least 1, got %d", depth)
	}
	s := &alphabeta.Solver{}
	if err := s.Init(ev); err != nil {
		return nil, err
	}
	return &AIPlayer{name: AlphaBetaPlayerName, solver: s, depth: depth}, nil
}

func (p *AIPlayer) Name() string { return p.name }

func (p *AIPlayer) ChooseMove(ctx context.Context, pos board.Position,
	budget time.Duration) (move.Move, error) {

	if budget > timerThreshold {
		budget -= timerThreshold
	}
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	res, err := p.solver.Solve(ctx, pos, p.depth)
	if err == nil {
		return res.Move, nil
	}
	if errors.Is(err, search.ErrNoSolution) {
		return move.Move{}, ErrNoLegalMoves
	}
	// The budget expired before even depth 1 completed. Don't conflate
	// "too slow" with "no legal move": play the first generated move.
	legal := movegen.LegalMoves(pos, pos.PlayerOnTurn())
	if len(legal) == 0 {
		return move.Move{}, ErrNoLegalMoves
	}
	log.Warn().Str("player", p.name).Err(err).
		Msg("search budget exhausted before depth 1; playing first legal move")
	return legal[0], nil
}
