// Package alphabeta implements a depth-limited minimax solver with
// alpha-beta pruning and an optional zobrist-keyed node cache.
package alphabeta

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
	"github.com/piecewar/piecewar/zobrist"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
(* Initial call *)
alphabeta(origin, depth, −∞, +∞, TRUE)
**/

type ttEntry struct {
	value float64
	depth int
}

// Solver implements the minimax + alphabeta algorithm. For the same
// position, depth, and evaluator it returns the same value as the plain
// minimax solver; the chosen move may differ only when several moves share
// the optimal value, since pruning can skip later-ordered equals.
type Solver struct {
	ev                   strategy.Evaluator
	iterativeDeepeningOn bool
	pruningDisabled      bool

	// nodeCache holds exact values only, keyed by zobrist hash, and an
	// entry is reused only at its own depth, so cache hits can never
	// change the value the search returns.
	nodeCacheOn bool
	nodeCache   map[uint64]ttEntry
	zobrist     zobrist.Zobrist

	maximizer int
	nodes     uint64
	cacheHits uint64
}

// Init initializes the solver. Iterative deepening and the node cache are
// on by default.
func (s *Solver) Init(ev strategy.Evaluator) error {
	s.ev = ev
	s.iterativeDeepeningOn = true
	s.nodeCacheOn = true
	s.zobrist.Initialize()
	return nil
}

func (s *Solver) SetIterativeDeepening(on bool) { s.iterativeDeepeningOn = on }

// SetPruningDisabled turns off cutoffs, degrading the solver to plain
// minimax. Used to verify pruning equivalence.
func (s *Solver) SetPruningDisabled(disabled bool) { s.pruningDisabled = disabled }

// SetNodeCacheOn toggles the transposition cache. Turn it off when
// comparing node counts against plain minimax.
func (s *Solver) SetNodeCacheOn(on bool) { s.nodeCacheOn = on }

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
	s.cacheHits = 0
	s.nodeCache = make(map[uint64]ttEntry)
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
				Msg("alphabeta-stopping-early")
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
		Uint64("cache-hits", s.cacheHits).
		Float64("value", best.Value).
		Str("move", best.Move.String()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("alphabeta-solve-returning")
	return best, nil
}

// searchRoot picks the root move maximizing the search value, carrying the
// (α, β) window down. Ties are broken by the first-encountered move in
// generation order; at the root the window never closes, so the root
// enumeration itself is never cut off.
func (s *Solver) searchRoot(ctx context.Context, pos board.Position,
	rootMoves []move.Move, depth int) (move.Move, float64, error) {

	s.nodes++
	α := math.Inf(-1)
	β := math.Inf(1)
	bestValue := math.Inf(-1)
	var bestMove move.Move
	for _, m := range rootMoves {
		child := pos.Apply(m.From, m.To)
		value, err := s.alphabeta(ctx, child, depth-1, α, β, false)
		if err != nil {
			return move.Move{}, 0, err
		}
		if value > bestValue {
			bestValue = value
			bestMove = m
		}
		if !s.pruningDisabled {
			α = math.Max(α, bestValue)
		}
	}
	return bestMove, bestValue, nil
}

func (s *Solver) alphabeta(ctx context.Context, pos board.Position,
	depth int, α, β float64, maximizing bool) (float64, error) {

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}
	s.nodes++

	if depth == 0 || movegen.Stalemate(pos) {
		return s.ev.Evaluate(pos, s.maximizer), nil
	}

	var nodeKey uint64
	if s.nodeCacheOn {
		nodeKey = s.zobrist.Hash(pos)
		if entry, ok := s.nodeCache[nodeKey]; ok && entry.depth == depth {
			s.cacheHits++
			return entry.value, nil
		}
	}

	moves := movegen.LegalMoves(pos, pos.PlayerOnTurn())
	α0, β0 := α, β
	var value float64
	if maximizing {
		value = math.Inf(-1)
		for _, m := range moves {
			child := pos.Apply(m.From, m.To)
			v, err := s.alphabeta(ctx, child, depth-1, α, β, false)
			if err != nil {
				return 0, err
			}
			value = math.Max(value, v)
			if s.pruningDisabled {
				continue
			}
			α = math.Max(α, value)
			if α >= β {
				break // β cut-off
			}
		}
	} else {
		value = math.Inf(1)
		for _, m := range moves {
			child := pos.Apply(m.From, m.To)
			v, err := s.alphabeta(ctx, child, depth-1, α, β, true)
			if err != nil {
				return 0, err
			}
			value = math.Min(value, v)
			if s.pruningDisabled {
				continue
			}
			β = math.Min(β, value)
			if β <= α {
				break // α cut-off
			}
		}
	}
	// Only exact values are cacheable; a value at or outside the original
	// window is just a bound on the true minimax value.
	if s.nodeCacheOn && value > α0 && value < β0 {
		s.nodeCache[nodeKey] = ttEntry{value: value, depth: depth}
	}
	return value, nil
}
