// Package zobrist generates hashes for piecewar positions, used as
// transposition-table keys by the alpha-beta solver.
// https://en.wikipedia.org/wiki/Zobrist_hashing
package zobrist

import (
	"lukechampine.com/frand"

	"github.com/piecewar/piecewar/board"
)

const bignum = 1<<63 - 2

// Zobrist holds the random tables. Initialize must be called before Hash.
type Zobrist struct {
	theirTurn uint64

	posTable      [board.MaxPlayers][board.Dim * board.Dim]uint64
	capturedTable [board.MaxPlayers]uint64
}

func (z *Zobrist) Initialize() {
	for side := 0; side < board.MaxPlayers; side++ {
		for i := 0; i < board.Dim*board.Dim; i++ {
			z.posTable[side][i] = frand.Uint64n(bignum) + 1
		}
		z.capturedTable[side] = frand.Uint64n(bignum) + 1
	}
	z.theirTurn = frand.Uint64n(bignum) + 1
}

// Hash returns the key for a position. Piece kinds are fixed for the
// lifetime of a game, so they do not participate in the key.
func (z *Zobrist) Hash(pos board.Position) uint64 {
	var key uint64
	for side := 0; side < board.MaxPlayers; side++ {
		if pos.Captured(side) {
			key ^= z.capturedTable[side]
			continue
		}
		sq := pos.SquareFor(side)
		key ^= z.posTable[side][int(sq.Rank)*board.Dim+int(sq.File)]
	}
	if pos.PlayerOnTurn() == 1 {
		key ^= z.theirTurn
	}
	return key
}
