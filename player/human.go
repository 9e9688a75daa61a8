package player

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/piecewar/piecewar/board"
	"github.com/piecewar/piecewar/move"
	"github.com/piecewar/piecewar/movegen"
)

// HumanPlayer awaits an externally supplied move. The surrounding driver
// (the shell) prompts its user, parses input, and calls SubmitMove; this
// type only enforces legality and the time budget. If no legal move arrives
// within the budget, the turn is forfeited.
type HumanPlayer struct {
	mu      sync.Mutex
	legal   []move.Move
	waiting bool

	submitted chan move.Move
}

func NewHumanPlayer() *HumanPlayer {
	return &HumanPlayer{submitted: make(chan move.Move, 1)}
}

func (p *HumanPlayer) Name() string { return HumanPlayerName }

// PendingMoves returns the legal moves of the turn currently awaiting
// input, for the driver to display. Empty when no turn is pending.
func (p *HumanPlayer) PendingMoves() []move.Move {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.waiting {
		return nil
	}
	return append([]move.Move{}, p.legal...)
}

// SubmitMove hands the player a move for the pending turn. An illegal move
// is rejected here and never reaches the game state; the caller should
// re-prompt.
func (p *HumanPlayer) SubmitMove(m move.Move) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.waiting {
		return errors.New("no turn is awaiting a move")
	}
	for _, legal := range p.legal {
		if legal == m {
			p.waiting = false
			p.submitted <- m
			return nil
		}
	}
	return errors.New("illegal move, try again")
}

func (p *HumanPlayer) ChooseMove(ctx context.Context, pos board.Position,
	budget time.Duration) (move.Move, error) {

	legal := movegen.LegalMoves(pos, pos.PlayerOnTurn())
	if len(legal) == 0 {
		return move.Move{}, ErrNoLegalMoves
	}

	p.mu.Lock()
	p.legal = legal
	p.waiting = true
	p.mu.Unlock()

	timer := time.NewTimer(budget)
	defer timer.Stop()
	select {
	case m := <-p.submitted:
		return m, nil
	case <-timer.C:
	case <-ctx.Done():
	}
	p.mu.Lock()
	p.waiting = false
	// A submission may have raced the timeout; drop it so it cannot leak
	// into a later turn.
	select {
	case <-p.submitted:
	default:
	}
	p.mu.Unlock()
	return move.Move{}, ErrTimeExceeded
}
