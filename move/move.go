// Package move defines the Move type. Moves are derived values: they are
// generated on demand from a position and never stored in it.
package move

import (
	"fmt"
	"strings"

	"github.com/piecewar/piecewar/board"
)

// Move is a single displacement of the mover's piece, from its current
// square to a destination. A destination equal to the opponent's square is
// a capture.
type Move struct {
	From board.Square
	To   board.Square
}

// String returns the long-algebraic form, e.g. "a1c2".
func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// Parse parses a long-algebraic move such as "a1c2" or "a1 c2".
func Parse(s string) (Move, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if len(s) != 4 {
		return Move{}, fmt.Errorf("badly formatted move %q; expected something like a1c2", s)
	}
	from, err := board.ParseSquare(s[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := board.ParseSquare(s[2:])
	if err != nil {
		return Move{}, err
	}
	if from == to {
		return Move{}, fmt.Errorf("move %q does not go anywhere", s)
	}
	return Move{From: from, To: to}, nil
}
