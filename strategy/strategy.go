// Package strategy contains the static evaluators that drive lookahead
// search. Every evaluator honors the zero-sum contract: for any position P
// and sides X != Y, Evaluate(P, X) == -Evaluate(P, Y). Alpha-beta pruning
// depends on this symmetry for correctness, so each heuristic is expressed
// as a difference of per-side terms rather than a raw per-side score.
package strategy

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/piecewar/piecewar/board"
	"github.com/piecewar/piecewar/movegen"
)

// WinValue is the score assigned to a won position. Any reachable heuristic
// value is orders of magnitude smaller.
const WinValue = 1e6

// Evaluator assigns a static score to a position from one side's
// perspective; higher is better for that side.
type Evaluator interface {
	Evaluate(pos board.Position, perspective int) float64
}

// IsLoser reports whether the given side has lost the position outright:
// its piece was captured, or it is on turn with no legal moves.
func IsLoser(pos board.Position, side int) bool {
	if pos.Captured(side) {
		return true
	}
	return pos.PlayerOnTurn() == side && len(movegen.LegalMoves(pos, side)) == 0
}

// IsWinner reports whether the given side's opponent has lost.
func IsWinner(pos board.Position, side int) bool {
	return IsLoser(pos, (side+1)%board.MaxPlayers)
}

// terminal returns the win/loss short-circuit value, and whether the
// position is decided at all.
func terminal(pos board.Position, perspective int) (float64, bool) {
	if IsLoser(pos, perspective) {
		return -WinValue, true
	}
	if IsWinner(pos, perspective) {
		return WinValue, true
	}
	return 0, false
}

func mobility(pos board.Position, side int) float64 {
	return float64(len(movegen.LegalMoves(pos, side)))
}

// distance of the side's piece from the board center, squared. Captured
// pieces contribute nothing; terminal() fires before this matters.
func centerDistSq(pos board.Position, side int) float64 {
	if pos.Captured(side) {
		return 0
	}
	center := float64(board.Dim-1) / 2
	sq := pos.SquareFor(side)
	df := float64(sq.File) - center
	dr := float64(sq.Rank) - center
	return df*df + dr*dr
}

// NullScore presumes no knowledge for non-terminal states. Useful as a
// baseline and for testing the bare search machinery.
type NullScore struct{}

func (NullScore) Evaluate(pos board.Position, perspective int) float64 {
	if v, done := terminal(pos, perspective); done {
		return v
	}
	return 0
}

// MobilityScore is the mobility-difference heuristic: own legal moves minus
// the opponent's.
type MobilityScore struct{}

func (MobilityScore) Evaluate(pos board.Position, perspective int) float64 {
	if v, done := terminal(pos, perspective); done {
		return v
	}
	opp := (perspective + 1) % board.MaxPlayers
	return mobility(pos, perspective) - mobility(pos, opp)
}

// CenterScore favors central squares: the opponent's squared distance from
// the center minus our own.
type CenterScore struct{}

func (CenterScore) Evaluate(pos board.Position, perspective int) float64 {
	if v, done := terminal(pos, perspective); done {
		return v
	}
	opp := (perspective + 1) % board.MaxPlayers
	return centerDistSq(pos, opp) - centerDistSq(pos, perspective)
}

// FarsightedScore forecasts mobility one move ahead: for each side, it sums
// the mobility its piece would have after each of its current moves, then
// diffs the two totals. Slower than MobilityScore but sees cramped squares
// a ply earlier.
type FarsightedScore struct{}

func (FarsightedScore) Evaluate(pos board.Position, perspective int) float64 {
	if v, done := terminal(pos, perspective); done {
		return v
	}
	opp := (perspective + 1) % board.MaxPlayers
	return forecast(pos, perspective) - forecast(pos, opp)
}

func forecast(pos board.Position, side int) float64 {
	opp := (side + 1) % board.MaxPlayers
	oppSq := pos.SquareFor(opp)
	total := 0.0
	for _, m := range movegen.LegalMoves(pos, side) {
		if m.To == oppSq {
			// A capture ends the game; credit it a flat bonus instead of
			// forecasting from a board the opponent is no longer on.
			total += float64(board.Dim)
			continue
		}
		var hypo board.Position
		if side == 0 {
			hypo = board.NewPosition(pos.KindFor(0), pos.KindFor(1), m.To, oppSq)
		} else {
			hypo = board.NewPosition(pos.KindFor(0), pos.KindFor(1), oppSq, m.To)
		}
		total += mobility(hypo, side)
	}
	return total
}

type term struct {
	weight float64
	value  float64
}

// Composite combines the mobility and center heuristics with tunable
// weights. The weights are policy, not correctness; symmetry is preserved
// because each term is itself side-symmetric.
type Composite struct {
	MobilityWeight float64
	CenterWeight   float64
}

// NewDefaultEvaluator returns the evaluator used by the AI players unless
// configured otherwise. Mobility dominates; the center term breaks ties
// toward driving the opponent out of the middle.
func NewDefaultEvaluator() Evaluator {
	return Composite{MobilityWeight: 2.0, CenterWeight: 0.25}
}

// New builds an evaluator from its configured name. An unknown name is a
// configuration error, reported at construction.
func New(name string) (Evaluator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "null":
		return NullScore{}, nil
	case "mobility":
		return MobilityScore{}, nil
	case "center":
		return CenterScore{}, nil
	case "farsighted":
		return FarsightedScore{}, nil
	case "composite", "":
		return NewDefaultEvaluator(), nil
	}
	return nil, fmt.Errorf("%v is not a supported evaluator", name)
}

func (c Composite) Evaluate(pos board.Position, perspective int) float64 {
	if v, done := terminal(pos, perspective); done {
		return v
	}
	mob := MobilityScore{}.Evaluate(pos, perspective)
	ctr := CenterScore{}.Evaluate(pos, perspective)
	return lo.SumBy([]term{
		{c.MobilityWeight, mob},
		{c.CenterWeight, ctr},
	}, func(t term) float64 { return t.weight * t.value })
}
