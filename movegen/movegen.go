// Package movegen generates the legal destination squares for a piece given
// its kind, its square, and the opponent's occupied square. Generation is
// deterministic: sliding pieces scan each direction in table order, walking
// outward; knights enumerate their offset table in order. Search relies on
// this order for reproducible tie-breaks.
package movegen

import (
	"github.com/piecewar/piecewar/board"
	"github.com/piecewar/piecewar/move"
)

type offset struct {
	df, dr int
}

var (
	rookDirs   = []offset{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirs = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = append(append([]offset{}, rookDirs...), bishopDirs...)

	knightOffsets = []offset{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
)

// LegalMoves returns every legal move for the given side, regardless of
// whose turn it is in the position. The result is empty when the side's
// piece has been captured. No side effects; the same position always yields
// the same slice contents in the same order.
func LegalMoves(pos board.Position, side int) []move.Move {
	if pos.Captured(side) {
		return nil
	}
	from := pos.SquareFor(side)
	switch pos.KindFor(side) {
	case board.Knight:
		return knightMoves(pos, side, from)
	case board.Bishop:
		return slidingMoves(pos, side, from, bishopDirs)
	case board.Rook:
		return slidingMoves(pos, side, from, rookDirs)
	case board.Queen:
		return slidingMoves(pos, side, from, queenDirs)
	}
	panic("unreachable piece kind")
}

// Stalemate reports whether the side on turn has no legal move. That side
// loses; this is the sole natural termination condition of the variant.
func Stalemate(pos board.Position) bool {
	return len(LegalMoves(pos, pos.PlayerOnTurn())) == 0
}

func slidingMoves(pos board.Position, side int, from board.Square, dirs []offset) []move.Move {
	var moves []move.Move
	for _, d := range dirs {
		f, r := int(from.File), int(from.Rank)
		for {
			f += d.df
			r += d.dr
			if !board.OnBoard(f, r) {
				break
			}
			to := board.NewSquare(f, r)
			moves = append(moves, move.Move{From: from, To: to})
			if pos.Occupied(side, to) {
				// A capture terminates the scan in this direction.
				break
			}
		}
	}
	return moves
}

func knightMoves(pos board.Position, side int, from board.Square) []move.Move {
	var moves []move.Move
	for _, d := range knightOffsets {
		f := int(from.File) + d.df
		r := int(from.Rank) + d.dr
		if !board.OnBoard(f, r) {
			continue
		}
		moves = append(moves, move.Move{From: from, To: board.NewSquare(f, r)})
	}
	return moves
}
