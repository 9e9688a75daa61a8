// Package search holds the types shared by the minimax and alpha-beta
// solvers. Both explore the same logical game tree and must agree on the
// value of the chosen move; alpha-beta is a pruning optimization, not a
// different policy.
package search

import (
	"context"
	"errors"

	"github.com/piecewar/piecewar/board"
	"github.com/piecewar/piecewar/move"
)

// ErrNoSolution is returned when the root position has no legal moves. The
// caller must interpret this as a loss for the side to move, never retry
// the search.
var ErrNoSolution = errors.New("no move available at the root")

// Result is the outcome of a solve: the best move found, its value from the
// root mover's perspective, the deepest fully-completed depth, and how many
// nodes the search visited.
type Result struct {
	Move  move.Move
	Value float64
	Depth int
	Nodes uint64
}

// Solver is the interface both search engines implement.
type Solver interface {
	Solve(ctx context.Context, pos board.Position, plies int) (Result, error)
}
