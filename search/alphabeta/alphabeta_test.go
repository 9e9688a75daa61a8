package alphabeta

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/piecewar/piecewar/board"
	"github.com/piecewar/piecewar/search"
	"github.com/piecewar/piecewar/search/minimax"
	"github.com/piecewar/piecewar/strategy"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func sq(coords string) board.Square {
	s, err := board.ParseSquare(coords)
	if err != nil {
		panic(err)
	}
	return s
}

func testPositions() []board.Position {
	return []board.Position{
		board.NewPosition(board.Knight, board.Bishop, sq("a1"), sq("h8")),
		board.NewPosition(board.Queen, board.Rook, sq("d4"), sq("d7")),
		board.NewPosition(board.Rook, board.Knight, sq("h1"), sq("b2")),
		board.NewPosition(board.Bishop, board.Queen, sq("c3"), sq("f6")),
		board.NewPosition(board.Knight, board.Knight, sq("b1"), sq("g8")),
	}
}

func solveBoth(t *testing.T, pos board.Position, plies int,
	ev strategy.Evaluator) (search.Result, search.Result) {
	t.Helper()
	mm := &minimax.Solver{}
	if err := mm.Init(ev); err != nil {
		t.Fatal(err)
	}
	ab := &Solver{}
	if err := ab.Init(ev); err != nil {
		t.Fatal(err)
	}
	ab.SetNodeCacheOn(false)

	mmRes, err := mm.Solve(context.Background(), pos, plies)
	if err != nil {
		t.Fatal(err)
	}
	abRes, err := ab.Solve(context.Background(), pos, plies)
	if err != nil {
		t.Fatal(err)
	}
	return mmRes, abRes
}

func TestValueEquivalenceWithMinimax(t *testing.T) {
	is := is.New(t)
	ev := strategy.NewDefaultEvaluator()
	for _, pos := range testPositions() {
		for plies := 1; plies <= 4; plies++ {
			mmRes, abRes := solveBoth(t, pos, plies, ev)
			// Values must match exactly. The chosen move may differ only
			// at exact value ties, so we compare values, not moves.
			is.Equal(mmRes.Value, abRes.Value)
		}
	}
}

func TestDepthOneReturnsIdenticalValue(t *testing.T) {
	is := is.New(t)
	for _, ev := range []strategy.Evaluator{
		strategy.MobilityScore{}, strategy.CenterScore{}, strategy.NewDefaultEvaluator(),
	} {
		for _, pos := range testPositions() {
			mmRes, abRes := solveBoth(t, pos, 1, ev)
			is.Equal(mmRes.Value, abRes.Value)
			// At depth 1 no cutoff can reorder ties before the first
			// optimum, so the moves agree too.
			is.Equal(mmRes.Move, abRes.Move)
		}
	}
}

func TestPruningVisitsFewerNodes(t *testing.T) {
	is := is.New(t)
	ev := strategy.NewDefaultEvaluator()
	sawCutoff := false
	for _, pos := range testPositions() {
		mmRes, abRes := solveBoth(t, pos, 3, ev)
		is.True(abRes.Nodes <= mmRes.Nodes)
		if abRes.Nodes < mmRes.Nodes {
			sawCutoff = true
		}
	}
	is.True(sawCutoff) // pruning should trigger somewhere in these trees
}

func TestPruningDisabledMatchesMinimaxNodeForNode(t *testing.T) {
	is := is.New(t)
	ev := strategy.NewDefaultEvaluator()
	for _, pos := range testPositions() {
		mm := &minimax.Solver{}
		is.NoErr(mm.Init(ev))
		ab := &Solver{}
		is.NoErr(ab.Init(ev))
		ab.SetNodeCacheOn(false)
		ab.SetPruningDisabled(true)

		mmRes, err := mm.Solve(context.Background(), pos, 3)
		is.NoErr(err)
		abRes, err := ab.Solve(context.Background(), pos, 3)
		is.NoErr(err)
		is.Equal(mmRes.Value, abRes.Value)
		is.Equal(mmRes.Move, abRes.Move)
		is.Equal(mmRes.Nodes, abRes.Nodes)
	}
}

func TestNodeCachePreservesValue(t *testing.T) {
	is := is.New(t)
	ev := strategy.NewDefaultEvaluator()
	for _, pos := range testPositions() {
		cached := &Solver{}
		is.NoErr(cached.Init(ev))
		uncached := &Solver{}
		is.NoErr(uncached.Init(ev))
		uncached.SetNodeCacheOn(false)

		cRes, err := cached.Solve(context.Background(), pos, 4)
		is.NoErr(err)
		uRes, err := uncached.Solve(context.Background(), pos, 4)
		is.NoErr(err)
		is.Equal(cRes.Value, uRes.Value)
	}
}

func TestNoSolutionAtStalematedRoot(t *testing.T) {
	is := is.New(t)
	// Capture side 1's piece; side 1 is then on turn with no legal moves.
	pos := board.NewPosition(board.Rook, board.Queen, sq("d4"), sq("d7")).
		Apply(sq("d4"), sq("d7"))
	s := &Solver{}
	is.NoErr(s.Init(strategy.NewDefaultEvaluator()))
	_, err := s.Solve(context.Background(), pos, 3)
	is.Equal(err, search.ErrNoSolution)
}

func TestDeadlineReturnsBestCompletedDepth(t *testing.T) {
	is := is.New(t)
	pos := board.NewPosition(board.Queen, board.Queen, sq("d4"), sq("e6"))
	s := &Solver{}
	is.NoErr(s.Init(strategy.NewDefaultEvaluator()))

	// A generous budget first, to have a reference.
	ref, err := s.Solve(context.Background(), pos, 3)
	is.NoErr(err)
	is.Equal(ref.Depth, 3)

	// A deadline that allows some deepening but nowhere near the nominal
	// depth must still return the deepest fully completed result.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	res, err := s.Solve(ctx, pos, 12)
	is.NoErr(err)
	is.True(res.Depth >= 1)
	is.True(res.Depth < 12)

	// An already-expired context cannot complete even depth 1.
	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel2()
	time.Sleep(time.Millisecond)
	_, err = s.Solve(ctx2, pos, 3)
	is.True(err != nil)
}

func TestFindsCaptureWin(t *testing.T) {
	is := is.New(t)
	// Rook at d4 can capture the queen at d7 outright; that ends the game
	// and should dominate every other move at depth >= 2.
	pos := board.NewPosition(board.Rook, board.Queen, sq("d4"), sq("d7"))
	s := &Solver{}
	is.NoErr(s.Init(strategy.NewDefaultEvaluator()))
	res, err := s.Solve(context.Background(), pos, 3)
	is.NoErr(err)
	is.Equal(res.Move.To, sq("d7"))
	is.Equal(res.Value, float64(strategy.WinValue))
}
