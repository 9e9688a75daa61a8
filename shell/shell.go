// Package shell implements the interactive console front-end. It owns all
// menu interaction, board rendering, and human move input; the game rules
// and search live entirely in the core packages it drives.
package shell

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/piecewar/piecewar/automatic"
	"github.com/piecewar/piecewar/config"
	"github.com/piecewar/piecewar/gamelog"
	"github.com/piecewar/piecewar/move"
	"github.com/piecewar/piecewar/player"
)

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "set piece1|piece2 <knight|bishop|queen|rook>\n")
	io.WriteString(w, "set player1|player2 <human|random|greedy|minimax|alphabeta>\n")
	io.WriteString(w, "set start1|start2 <square> - initial square, e.g. a1\n")
	io.WriteString(w, "set depth <n> - AI search depth\n")
	io.WriteString(w, "set evaluator <composite|mobility|center|farsighted|null> - AI heuristic\n")
	io.WriteString(w, "set timelimit <seconds> - per-move budget\n")
	io.WriteString(w, "show - print the current settings\n")
	io.WriteString(w, "play - play one game with the current settings\n")
	io.WriteString(w, "autoplay [games] [threads] - run a self-play batch\n")
	io.WriteString(w, "exit - quit\n")
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mpiecewar>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	return &ShellController{l: l, cfg: cfg}
}

// Loop runs the command interpreter until exit or EOF.
func (sc *ShellController) Loop() {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "exit", "bye":
			return
		case "help":
			usage(sc.l.Stderr())
		case "show":
			sc.showSettings()
		case "set":
			if err := sc.set(fields[1:]); err != nil {
				showMessage("error: "+err.Error(), sc.l.Stderr())
			}
		case "play":
			if err := sc.playGame(); err != nil {
				showMessage("error: "+err.Error(), sc.l.Stderr())
			}
		case "autoplay":
			if err := sc.autoplay(fields[1:]); err != nil {
				showMessage("error: "+err.Error(), sc.l.Stderr())
			}
		default:
			showMessage("unknown command; try help", sc.l.Stderr())
		}
	}
}

func (sc *ShellController) showSettings() {
	out := sc.l.Stderr()
	fmt.Fprintf(out, "player1: %v (%v) at %v\n", sc.cfg.Player1, sc.cfg.Piece1, sc.cfg.Start1)
	fmt.Fprintf(out, "player2: %v (%v) at %v\n", sc.cfg.Player2, sc.cfg.Piece2, sc.cfg.Start2)
	fmt.Fprintf(out, "search depth: %v, evaluator: %v, time limit: %vs\n",
		sc.cfg.SearchDepth, sc.cfg.Evaluator, sc.cfg.MoveTimeLimitSecs)
}

func (sc *ShellController) set(fields []string) error {
	if len(fields) != 2 {
		return fmt.Errorf("set needs a field and a value; try help")
	}
	field, value := fields[0], fields[1]
	switch field {
	case "piece1":
		sc.cfg.Piece1 = value
	case "piece2":
		sc.cfg.Piece2 = value
	case "player1":
		sc.cfg.Player1 = value
	case "player2":
		sc.cfg.Player2 = value
	case "start1":
		sc.cfg.Start1 = value
	case "start2":
		sc.cfg.Start2 = value
	case "depth":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("depth must be a positive integer")
		}
		sc.cfg.SearchDepth = n
	case "evaluator":
		sc.cfg.Evaluator = value
	case "timelimit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("timelimit must be a positive number of seconds")
		}
		sc.cfg.MoveTimeLimitSecs = n
	default:
		return fmt.Errorf("%v is not a setting; try help", field)
	}
	// Validate eagerly so mistakes surface now, not at play time.
	_, err := automatic.NewGameRunner(nil, sc.cfg)
	return err
}

func (sc *ShellController) autoplay(fields []string) error {
	games := sc.cfg.Games
	threads := sc.cfg.Threads
	var err error
	if len(fields) > 0 {
		if games, err = strconv.Atoi(fields[0]); err != nil {
			return err
		}
	}
	if len(fields) > 1 {
		if threads, err = strconv.Atoi(fields[1]); err != nil {
			return err
		}
	}
	result, err := automatic.StartCompVCompGames(context.Background(), sc.cfg,
		games, threads, sc.cfg.BatchOutput)
	if err != nil {
		return err
	}
	showMessage(fmt.Sprintf("%d games: %d - %d (%d stalemates, %d forfeits); log in %v",
		result.Games, result.Wins[0], result.Wins[1],
		result.Stalemates, result.Forfeits, sc.cfg.BatchOutput), sc.l.Stderr())
	return nil
}

func (sc *ShellController) playGame() error {
	runner, err := automatic.NewGameRunner(nil, sc.cfg)
	if err != nil {
		return err
	}
	runner.StartGame()
	g := runner.Game()
	out := sc.l.Stderr()
	showMessage(g.Position().ToDisplayText(), out)

	ctx := context.Background()
	for g.Playing() {
		onturn := g.PlayerOnTurn()
		if human, ok := runner.PlayerFor(onturn).(*player.HumanPlayer); ok {
			if err := sc.playHumanTurn(ctx, runner, human); err != nil {
				return err
			}
		} else {
			if err := runner.PlayTurn(ctx); err != nil {
				return err
			}
		}
		showMessage(g.Position().ToDisplayText(), out)
	}

	report := g.Report()
	showMessage(fmt.Sprintf("Winner: %v\nOutcome: %v\nPlies: %d",
		report.WinnerName, report.Reason, report.Plies), out)

	if sc.cfg.GameLogPath != "" {
		if err := gamelog.FromGame(g).WriteFile(sc.cfg.GameLogPath); err != nil {
			return err
		}
		log.Info().Str("path", sc.cfg.GameLogPath).Msg("wrote game log")
	}
	return nil
}

// playHumanTurn runs the turn in the background while this goroutine
// prompts for input. The HumanPlayer enforces the budget; if it expires
// the turn resolves as a forfeit regardless of what is typed afterwards.
func (sc *ShellController) playHumanTurn(ctx context.Context,
	runner *automatic.GameRunner, human *player.HumanPlayer) error {

	errc := make(chan error, 1)
	go func() {
		errc <- runner.PlayTurn(ctx)
	}()

	// Wait for the player to expose the pending turn. It may never do so
	// if the position is already terminal.
	var legal []move.Move
	for len(legal) == 0 {
		select {
		case err := <-errc:
			return err
		default:
		}
		legal = human.PendingMoves()
		if len(legal) == 0 {
			time.Sleep(10 * time.Millisecond)
		}
	}

	out := sc.l.Stderr()
	var moves strings.Builder
	moves.WriteString("Valid moves:")
	for i, m := range legal {
		fmt.Fprintf(&moves, "  [%d] %v", i+1, m)
	}
	showMessage(moves.String(), out)

	for {
		sc.l.SetPrompt("\033[33myour move>\033[0m ")
		line, err := sc.l.Readline()
		sc.l.SetPrompt("\033[31mpiecewar>\033[0m ")
		if err != nil {
			// Input was aborted; let the clock decide the turn.
			return <-errc
		}
		m, perr := parseHumanMove(strings.TrimSpace(line), legal)
		if perr != nil {
			showMessage(perr.Error(), out)
			continue
		}
		if serr := human.SubmitMove(m); serr != nil {
			select {
			case err := <-errc:
				// The budget ran out while we were prompting.
				return err
			default:
			}
			showMessage(serr.Error(), out)
			continue
		}
		return <-errc
	}
}

// parseHumanMove accepts either a 1-based index into the legal move list or
// a long-algebraic move such as a1c2.
func parseHumanMove(input string, legal []move.Move) (move.Move, error) {
	if idx, err := strconv.Atoi(input); err == nil {
		if idx < 1 || idx > len(legal) {
			return move.Move{}, fmt.Errorf("invalid index! try again")
		}
		return legal[idx-1], nil
	}
	m, err := move.Parse(input)
	if err != nil {
		return move.Move{}, fmt.Errorf("illegal move! try again")
	}
	return m, nil
}
