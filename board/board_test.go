package board

import (
	"testing"

	"github.com/matryer/is"
)

func TestParseSquare(t *testing.T) {
	is := is.New(t)
	sq, err := ParseSquare("d4")
	is.NoErr(err)
	is.Equal(sq, NewSquare(3, 3))
	is.Equal(sq.String(), "d4")

	_, err = ParseSquare("i9")
	is.True(err != nil)
	_, err = ParseSquare("d")
	is.True(err != nil)
}

func TestNewSquareOffBoardPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an off-board square")
		}
	}()
	NewSquare(8, 0)
}

func TestParsePieceKind(t *testing.T) {
	is := is.New(t)
	for name, expected := range map[string]PieceKind{
		"knight": Knight, "Bishop": Bishop, "QUEEN": Queen, "r": Rook,
	} {
		k, err := ParsePieceKind(name)
		is.NoErr(err)
		is.Equal(k, expected)
	}
	_, err := ParsePieceKind("king")
	is.True(err != nil)
}

func TestApplyProducesNewValue(t *testing.T) {
	is := is.New(t)
	pos := NewPosition(Knight, Bishop, NewSquare(0, 0), NewSquare(6, 6))
	is.Equal(pos.PlayerOnTurn(), 0)

	next := pos.Apply(NewSquare(0, 0), NewSquare(2, 1))
	// The original position is untouched.
	is.Equal(pos.SquareFor(0), NewSquare(0, 0))
	is.Equal(next.SquareFor(0), NewSquare(2, 1))
	is.Equal(next.PlayerOnTurn(), 1)
	is.True(!next.Captured(1))
}

func TestApplyCapture(t *testing.T) {
	is := is.New(t)
	pos := NewPosition(Rook, Queen, NewSquare(3, 3), NewSquare(3, 6))
	next := pos.Apply(NewSquare(3, 3), NewSquare(3, 6))
	is.True(next.Captured(1))
	is.True(!next.Captured(0))
	is.Equal(next.SquareFor(0), NewSquare(3, 6))
}

func TestApplyWrongOriginPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a mismatched move origin")
		}
	}()
	pos := NewPosition(Rook, Queen, NewSquare(0, 0), NewSquare(7, 7))
	pos.Apply(NewSquare(1, 1), NewSquare(1, 4))
}

func TestEqualStartSquaresPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for coinciding start squares")
		}
	}()
	NewPosition(Rook, Queen, NewSquare(4, 4), NewSquare(4, 4))
}
