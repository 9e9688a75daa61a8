package board

import (
	"fmt"
	"strings"
)

// MaxPlayers is always two in this variant.
const MaxPlayers = 2

// Position is an immutable-per-ply snapshot of the game: both pieces'
// squares, both piece kinds, whose turn it is, and whether either piece has
// been captured. It is a pure value; applying a move produces a brand-new
// Position, so search code can recurse without any undo step.
type Position struct {
	squares  [MaxPlayers]Square
	kinds    [MaxPlayers]PieceKind
	onturn   int
	captured [MaxPlayers]bool
}

// NewPosition creates the starting position. It panics if the two squares
// coincide; that is a contract violation by the caller, never a runtime
// condition to recover from.
func NewPosition(kind0, kind1 PieceKind, sq0, sq1 Square) Position {
	if sq0 == sq1 {
		panic(fmt.Sprintf("both pieces cannot start on %v", sq0))
	}
	return Position{
		squares: [MaxPlayers]Square{sq0, sq1},
		kinds:   [MaxPlayers]PieceKind{kind0, kind1},
	}
}

// PlayerOnTurn returns the index (0 or 1) of the side to move.
func (p Position) PlayerOnTurn() int { return p.onturn }

// NextPlayer returns the index of the side not on turn.
func (p Position) NextPlayer() int { return (p.onturn + 1) % MaxPlayers }

// SquareFor returns the square occupied by the given side's piece. The
// result is meaningless if the side has been captured; check Captured first.
func (p Position) SquareFor(side int) Square { return p.squares[side] }

// KindFor returns the piece kind the given side plays with.
func (p Position) KindFor(side int) PieceKind { return p.kinds[side] }

// Captured returns whether the given side's piece has been taken. A
// captured side has no legal moves, which ends the game under the
// stalemate rule.
func (p Position) Captured(side int) bool { return p.captured[side] }

// Occupied returns whether an opposing live piece sits on sq from the
// point of view of side.
func (p Position) Occupied(side int, sq Square) bool {
	opp := (side + 1) % MaxPlayers
	return !p.captured[opp] && p.squares[opp] == sq
}

// Apply plays a move for the side on turn and returns the resulting
// position. The move's origin must match the mover's square; anything else
// is a contract violation and panics. Landing on the opponent's square
// captures their piece.
func (p Position) Apply(from, to Square) Position {
	mover := p.onturn
	if p.captured[mover] {
		panic("cannot apply a move for a captured side")
	}
	if from != p.squares[mover] {
		panic(fmt.Sprintf("move origin %v does not match piece square %v",
			from, p.squares[mover]))
	}
	next := p
	opp := p.NextPlayer()
	if !p.captured[opp] && to == p.squares[opp] {
		next.captured[opp] = true
	}
	next.squares[mover] = to
	next.onturn = opp
	return next
}

// ToDisplayText draws the board with rank/file legends, the way a human
// player sees it in the shell. Side 0 renders as its piece letter, side 1
// as the lowercased letter.
func (p Position) ToDisplayText() string {
	var str strings.Builder
	str.WriteString("   ")
	for f := 0; f < Dim; f++ {
		fmt.Fprintf(&str, " %c", rune('a'+f))
	}
	str.WriteString("\n")
	for r := Dim - 1; r >= 0; r-- {
		fmt.Fprintf(&str, "%2d |", r+1)
		for f := 0; f < Dim; f++ {
			sq := Square{File: int8(f), Rank: int8(r)}
			switch {
			case !p.captured[0] && p.squares[0] == sq:
				str.WriteString(p.kinds[0].Letter() + "|")
			case !p.captured[1] && p.squares[1] == sq:
				str.WriteString(strings.ToLower(p.kinds[1].Letter()) + "|")
			default:
				str.WriteString(" |")
			}
		}
		str.WriteString("\n")
	}
	return str.String()
}
