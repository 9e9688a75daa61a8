package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)
	c := Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.Piece1, "knight")
	is.Equal(c.Player2, "alphabeta")
	is.Equal(c.SearchDepth, 3)
	is.Equal(c.Evaluator, "composite")
	is.Equal(c.MoveTimeLimitSecs, 10)
}

func TestLoadOverrides(t *testing.T) {
	is := is.New(t)
	c := Config{}
	is.NoErr(c.Load([]string{
		"-piece1", "queen", "-player1", "random", "-search-depth", "5",
		"-evaluator", "farsighted",
	}))
	is.Equal(c.Piece1, "queen")
	is.Equal(c.Player1, "random")
	is.Equal(c.SearchDepth, 5)
	is.Equal(c.Evaluator, "farsighted")
}

func TestLoadRejectsBadFlags(t *testing.T) {
	is := is.New(t)
	c := Config{}
	is.True(c.Load([]string{"-no-such-flag"}) != nil)
}
