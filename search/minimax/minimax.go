// Package minimax implements a plain depth-limited minimax solver with
// iterative deepening.
package minimax

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/piecewar/piecewar/board"
	"github.com/piecewar/piecewar/move"
	"github.com/piecewar/piecewar/movegen"
	"github.com/piecewar/piecewar/search"
	"github.com/piecewar/piecewar/strategy"
)

// Solver implements the minimax algorithm without pruning. Values are
// always computed from the perspective of the player on turn at the root;
// the maximizing flag alternates down the tree.
type Solver struct {
	ev                   strategy.Evaluator
	iterativeDeepeningOn bool

	maximizer int
	nodes     uint64
}

// Init initializes the solver. Iterative deepening is on by default.
func (s *Solver) Init(ev strategy.Evaluator) error {
	s.ev = ev
	s.iterativeDeepeningOn = true
	return nil
}

func (s *Solver) SetIterativeDeepening(on bool) {
	s.iterativeDeepeningOn = on
}

// Nodes returns the number of nodes visited by the last Solve call.
func (s *Solver) Nodes() uint64 { return s.nodes }

// Solve searches the position to the given number of plies, or until the
// context deadline passes, and returns the best completed result. If the
// root has no legal moves it returns search.ErrNoSolution.
func (s *Solver) Solve(ctx context.Context, pos board.Position, plies int) (search.Result, error) {
	rootMoves := movegen.LegalMoves(pos, pos.PlayerOnTurn())
	if len(rootMoves) == 0 {
		return search.Result{}, search.ErrNoSolution
	}
	s.maximizer = pos.PlayerOnTurn()
	s.nodes = 0
	tstart := time.Now()

	var best search.Result
	completed := 0

	startDepth := plies
	if s.iterativeDeepeningOn {
		startDepth = 1
	}
	for depth := startDepth; depth <= plies; depth++ {
		bestMove, value, err := s.searchRoot(ctx, pos, rootMoves, depth)
		if err != nil {
			log.Debug().Err(err).Int("completed-depth", completed).
				Msg("minimax-stopping-early")
			break
		}
		completed = depth
		best = search.Result{Move: bestMove, Value: value, Depth: depth}
	}
	best.Nodes = s.nodes
	if completed == 0 {
		return search.Result{}, context.DeadlineExceeded
	}
	log.Debug().
		Int("depth", completed).
		Uint64("nodes", s.nodes).
		Float64("value", best.Value).
		Str("move", best.Move.String()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("minimax-solve-returning")
	return best, nil
}

// searchRoot picks the root move maximizing the minimax value. Ties are
// broken by the first-encountered move in generation order.
func (s *Solver) searchRoot(ctx context.Context, pos board.Position,
	rootMoves []move.Move, depth int) (move.Move, float64, error) {

	s.nodes++
	bestValue := math.Inf(-1)
	var bestMove move.Move
	for _, m := range rootMoves {
		child := pos.Apply(m.From, m.To)
		value, err := s.minimax(ctx, child, depth-1, false)
		if err != nil {
			return move.Move{}, 0, err
		}
		if value > bestValue {
			bestValue = value
			bestMove = m
		}
	}
	return bestMove, bestValue, nil
}

func (s *Solver) minimax(ctx context.Context, pos board.Position,
	depth int, maximizing bool) (float64, error) {

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}
	s.nodes++

	if depth == 0 || movegen.Stalemate(pos) {
		return s.ev.Evaluate(pos, s.maximizer), nil
	}

	moves := movegen.LegalMoves(pos, pos.PlayerOnTurn())
	if maximizing {
		value := math.Inf(-1)
		for _, m := range moves {
			child := pos.Apply(m.From, m.To)
			v, err := s.minimax(ctx, child, depth-1, false)
			if err != nil {
				return 0, err
			}
			value = math.Max(value, v)
		}
		return value, nil
	}
	value := math.Inf(1)
	for _, m := range moves {
		child := pos.Apply(m.From, m.To)
		v, err := s.minimax(ctx, child, depth-1, true)
		if err != nil {
			return 0, err
		}
		value = math.Min(value, v)
	}
	return value, nil
}
