package player

import (
	"context"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/piecewar/piecewar/board"
	"github.com/piecewar/piecewar/move"
	"github.com/piecewar/piecewar/movegen"
	"github.com/piecewar/piecewar/strategy"
)

func sq(coords string) board.Square {
	s, err := board.ParseSquare(coords)
	if err != nil {
		panic(err)
	}
	return s
}

func stalematedPosition() board.Position {
	// Capture side 1's piece; side 1 is then on turn with nothing to move.
	return board.NewPosition(board.Rook, board.Queen, sq("d4"), sq("d7")).
		Apply(sq("d4"), sq("d7"))
}

func TestRandomPlayerSignalsLossImmediately(t *testing.T) {
	is := is.New(t)
	p := NewRandomPlayer()
	start := time.Now()
	_, err := p.ChooseMove(context.Background(), stalematedPosition(), time.Second)
	is.Equal(err, ErrNoLegalMoves)
	// No selection was attempted and no budget consumed.
	is.True(time.Since(start) < 100*time.Millisecond)
}

func TestRandomPlayerReturnsLegalMove(t *testing.T) {
	is := is.New(t)
	pos := board.NewPosition(board.Knight, board.Bishop, sq("a1"), sq("h8"))
	p := NewRandomPlayer()
	legal := movegen.LegalMoves(pos, 0)
	for i := 0; i < 20; i++ {
		m, err := p.ChooseMove(context.Background(), pos, time.Second)
		is.NoErr(err)
		found := false
		for _, l := range legal {
			if l == m {
				found = true
			}
		}
		is.True(found)
	}
}

func TestGreedyPlayerTakesWinningCapture(t *testing.T) {
	is := is.New(t)
	pos := board.NewPosition(board.Rook, board.Queen, sq("d4"), sq("d7"))
	p := NewGreedyPlayer(strategy.NewDefaultEvaluator())
	m, err := p.ChooseMove(context.Background(), pos, time.Second)
	is.NoErr(err)
	is.Equal(m.To, sq("d7"))
}

func TestAIPlayersReportStalemateAsLoss(t *testing.T) {
	is := is.New(t)
	for _, name := range []string{MinimaxPlayerName, AlphaBetaPlayerName} {
		p, err := New(name, strategy.NewDefaultEvaluator(), 3)
		is.NoErr(err)
		_, err = p.ChooseMove(context.Background(), stalematedPosition(), time.Second)
		is.Equal(err, ErrNoLegalMoves)
	}
}

func TestAIPlayerStaysWithinBudget(t *testing.T) {
	assert := assert.New(t)
	p, err := New(AlphaBetaPlayerName, strategy.NewDefaultEvaluator(), 6)
	assert.NoError(err)
	pos := board.NewPosition(board.Queen, board.Queen, sq("d4"), sq("e6"))

	budget := 150 * time.Millisecond
	start := time.Now()
	m, err := p.ChooseMove(context.Background(), pos, budget)
	elapsed := time.Since(start)
	assert.NoError(err)
	assert.NotEqual(move.Move{}, m)
	// Generous slack; the point is that the search honors the deadline
	// instead of running the full nominal depth.
	assert.Less(elapsed, budget+250*time.Millisecond)
}

func TestAIPlayerFallsBackToFirstLegalMoveWhenBudgetExhausted(t *testing.T) {
	is := is.New(t)
	pos := board.NewPosition(board.Queen, board.Queen, sq("d4"), sq("e6"))
	first := movegen.LegalMoves(pos, 0)[0]
	// An already-cancelled context guarantees not even depth 1 completes,
	// whatever the machine's speed; the nanosecond budget matches what a
	// hopelessly small time limit would produce.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, name := range []string{MinimaxPlayerName, AlphaBetaPlayerName} {
		p, err := New(name, strategy.NewDefaultEvaluator(), 6)
		is.NoErr(err)
		m, err := p.ChooseMove(ctx, pos, time.Nanosecond)
		is.NoErr(err) // too slow is not a forfeit and not a stalemate
		is.Equal(m, first)
	}
}

func TestHumanPlayerForfeitsOnTimeout(t *testing.T) {
	is := is.New(t)
	pos := board.NewPosition(board.Knight, board.Bishop, sq("a1"), sq("h8"))
	p := NewHumanPlayer()
	_, err := p.ChooseMove(context.Background(), pos, 30*time.Millisecond)
	is.Equal(err, ErrTimeExceeded)
}

func TestHumanPlayerRejectsIllegalMove(t *testing.T) {
	is := is.New(t)
	pos := board.NewPosition(board.Knight, board.Bishop, sq("a1"), sq("h8"))
	p := NewHumanPlayer()

	type result struct {
		m   move.Move
		err error
	}
	done := make(chan result, 1)
	go func() {
		m, err := p.ChooseMove(context.Background(), pos, time.Second)
		done <- result{m, err}
	}()

	// Wait for the turn to become pending.
	var pending []move.Move
	for i := 0; i < 100; i++ {
		if pending = p.PendingMoves(); len(pending) > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	is.Equal(len(pending), 2) // knight at a1 has exactly c2 and b3

	// An illegal move is rejected locally and never reaches the game.
	err := p.SubmitMove(move.Move{From: sq("a1"), To: sq("h8")})
	is.True(err != nil)

	is.NoErr(p.SubmitMove(pending[0]))
	res := <-done
	is.NoErr(res.err)
	is.Equal(res.m, pending[0])
}

func TestNewRejectsUnknownPlayerType(t *testing.T) {
	is := is.New(t)
	_, err := New("psychic", strategy.NewDefaultEvaluator(), 3)
	is.True(err != nil)
}
