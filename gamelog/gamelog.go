// Package gamelog serializes finished games to YAML so that drivers can
// keep a replay record. The core keeps no history beyond the current game;
// persistence is this package's concern alone.
package gamelog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/piecewar/piecewar/game"
	"github.com/piecewar/piecewar/move"
)

type PlayerEntry struct {
	Name  string `yaml:"name"`
	Piece string `yaml:"piece"`
}

// GameLog is the on-disk representation of one finished game.
type GameLog struct {
	Uid     string        `yaml:"uid"`
	Players []PlayerEntry `yaml:"players"`
	Moves   []string      `yaml:"moves"`
	Winner  string        `yaml:"winner"`
	Reason  string        `yaml:"reason"`
	Plies   int           `yaml:"plies"`
}

// FromGame builds a log from a finished game.
func FromGame(g *game.Game) *GameLog {
	report := g.Report()
	pos := g.Position()
	glog := &GameLog{
		Uid:    report.Uid,
		Winner: report.WinnerName,
		Reason: report.Reason.String(),
		Plies:  report.Plies,
	}
	for side := 0; side < 2; side++ {
		glog.Players = append(glog.Players, PlayerEntry{
			Name:  g.NameFor(side),
			Piece: pos.KindFor(side).String(),
		})
	}
	for _, m := range g.History() {
		glog.Moves = append(glog.Moves, m.String())
	}
	return glog
}

// Moves parses the log's move list back into move values.
func (l *GameLog) ParsedMoves() ([]move.Move, error) {
	moves := make([]move.Move, 0, len(l.Moves))
	for _, s := range l.Moves {
		m, err := move.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("game log %v: %w", l.Uid, err)
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// Write encodes the log as a YAML document.
func (l *GameLog) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(l)
}

// WriteFile writes the log to the given path.
func (l *GameLog) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return l.Write(f)
}

// Read decodes a YAML game log.
func Read(r io.Reader) (*GameLog, error) {
	var l GameLog
	if err := yaml.NewDecoder(r).Decode(&l); err != nil {
		return nil, err
	}
	return &l, nil
}
