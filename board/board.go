// Package board contains the fundamental types for the piecewar board:
// squares, piece kinds, and the per-ply position snapshot.
package board

import (
	"fmt"
	"strings"
)

// Dim is the board dimension. Standard chessboard, 8x8.
const Dim = 8

// Square is a single board coordinate. File and Rank are both in [0, Dim).
type Square struct {
	File int8
	Rank int8
}

// NewSquare creates a square, panicking if the coordinates are off-board.
// Out-of-board coordinates are a programming-contract violation, not a
// recoverable runtime condition.
func NewSquare(file, rank int) Square {
	if file < 0 || file >= Dim || rank < 0 || rank >= Dim {
		panic(fmt.Sprintf("square (%d, %d) is off the board", file, rank))
	}
	return Square{File: int8(file), Rank: int8(rank)}
}

// OnBoard returns whether the given coordinates fit on the board. Use this
// before NewSquare when the coordinates come from arithmetic that may walk
// off an edge.
func OnBoard(file, rank int) bool {
	return file >= 0 && file < Dim && rank >= 0 && rank < Dim
}

// String returns the algebraic form of the square, e.g. "a1" or "h8".
func (s Square) String() string {
	return fmt.Sprintf("%c%d", rune('a'+s.File), s.Rank+1)
}

// ParseSquare parses an algebraic coordinate such as "d4".
func ParseSquare(coords string) (Square, error) {
	coords = strings.ToLower(strings.TrimSpace(coords))
	if len(coords) != 2 {
		return Square{}, fmt.Errorf("badly formatted square %q", coords)
	}
	file := int(coords[0] - 'a')
	rank := int(coords[1] - '1')
	if !OnBoard(file, rank) {
		return Square{}, fmt.Errorf("square %q is off the board", coords)
	}
	return Square{File: int8(file), Rank: int8(rank)}, nil
}

// PieceKind is the kind of the single piece a side plays with. It is fixed
// at game start and immutable afterwards.
type PieceKind uint8

const (
	Knight PieceKind = iota
	Bishop
	Queen
	Rook
)

func (k PieceKind) String() string {
	switch k {
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Queen:
		return "queen"
	case Rook:
		return "rook"
	}
	return "unknown"
}

// Letter returns the single-letter display form of the piece kind.
func (k PieceKind) Letter() string {
	switch k {
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	}
	return "?"
}

// ParsePieceKind parses a piece kind name ("knight", "bishop", "queen",
// "rook"), case-insensitively.
func ParsePieceKind(name string) (PieceKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "knight", "n":
		return Knight, nil
	case "bishop", "b":
		return Bishop, nil
	case "queen", "q":
		return Queen, nil
	case "rook", "r":
		return Rook, nil
	}
	return 0, fmt.Errorf("%v is not a supported piece kind", name)
}
