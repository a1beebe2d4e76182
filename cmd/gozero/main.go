// gozero plays Go (the board game) in the terminal, against an AI, or watching two AIs play.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/goZero/internal/players"
	_ "github.com/janpfeifer/goZero/internal/players/default"
	"github.com/janpfeifer/goZero/internal/profilers"
	. "github.com/janpfeifer/goZero/internal/state"
	"github.com/janpfeifer/goZero/internal/ui/cli"
	"github.com/janpfeifer/goZero/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagSize      = flag.Int("size", 9, "Size of the board.")
	flagKomi      = flag.Float64("komi", float64(DefaultKomi), "Komi added to White's score.")
	flagHotseat   = flag.Bool("hotseat", false, "Hotseat match: human vs human")
	flagWatch     = flag.Bool("watch", false, "Watch mode: AI vs AI playing")
	flagFirst     = flag.String("first", "", "Who plays first (Black): human or ai. Default is random.")
	flagAIConfig  = flag.String("config", "mcts,searches=400", "AI configuration against which to play")
	flagAIConfig2 = flag.String("config2", "mcts,searches=400", "Second AI configuration, if playing AI vs AI with --watch")
	flagMaxMoves  = flag.Int("max_moves", 0, "Max moves before the match is scored. Defaults to 3 times the number of points.")
	flagNoColor   = flag.Bool("no_color", false, "Disable colors in the terminal.")

	// aiPlayers: if nil, it's a human playing.
	aiPlayers = [2]players.Player{nil, nil}

	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagSize <= 0 || *flagSize > MaxBoardSize {
		klog.Fatalf("Invalid --size=%d, it must be between 1 and %d", *flagSize, MaxBoardSize)
	}
	if *flagMaxMoves < 0 {
		klog.Fatalf("Invalid --max_moves=%d", *flagMaxMoves)
	}

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	profilers.Setup(globalCtx)
	defer profilers.OnQuit()

	createPlayers()

	board := NewBoard(*flagSize, *flagSize)
	board.Komi = float32(*flagKomi)
	if *flagMaxMoves > 0 {
		board.MaxMoves = *flagMaxMoves
	}
	ui := cli.New(!*flagNoColor, false)

	for !board.IsGameOver() {
		if globalCtx.Err() != nil {
			return
		}
		aiPlayer := aiPlayers[board.ToPlay()]
		if aiPlayer == nil {
			move, err := readHumanMove(ui, board)
			if err != nil {
				klog.Exitf("Failed to run match: %+v", err)
			}
			observe(board, move)
			board.Play(move)
			continue
		}

		// AI plays.
		if *flagWatch {
			ui.Print(board)
		}
		fmt.Printf("\t%s (%s) move: ", board.ToPlay(), aiPlayer)
		s := spinning.New(globalCtx)
		move, err := aiPlayer.Play(board)
		elapsed := s.Done()
		if err != nil {
			klog.Exitf("AI %s failed at move #%d: %+v", aiPlayer, board.MovesPlayed(), err)
		}
		fmt.Printf("%s (%s)\n", move, elapsed.Truncate(time.Millisecond))
		observe(board, move)
		board.Play(move)
	}
	ui.Print(board)
	ui.PrintWinner(board)
}

func readHumanMove(ui *cli.UI, board *Board) (Move, error) {
	for {
		ui.Print(board)
		fmt.Println()
		move, err := ui.ReadCommand(board)
		if errors.Is(err, cli.ErrParsing) {
			continue
		}
		return move, err
	}
}

// observe informs the AI player that is not moving of the move played.
func observe(board *Board, move Move) {
	opponent := aiPlayers[board.ToPlay().Opponent()]
	if opponent == nil {
		return
	}
	if err := opponent.Observe(move); err != nil {
		klog.Warningf("AI %s failed to observe move %s: %v", opponent, move, err)
	}
}

// createPlayers in aiPlayers.
func createPlayers() {
	if *flagHotseat && *flagWatch {
		klog.Fatalf("--hotseat and --watch cannot be used together")
	}
	if *flagHotseat {
		// Both players are human, nothing to do.
		return
	}

	var aiPlayer Player
	if *flagWatch {
		aiPlayer = Black
	} else {
		switch strings.ToLower(*flagFirst) {
		case "human":
			aiPlayer = White
		case "ai":
			aiPlayer = Black
		case "":
			aiPlayer = Player(rand.IntN(2))
		default:
			exceptions.Panicf("invalid --first=%q, only valid values are \"human\" or \"ai\"", *flagFirst)
		}
	}
	aiPlayers[aiPlayer] = must.M1(players.New(*flagAIConfig))
	if !*flagWatch {
		return
	}
	aiPlayers[aiPlayer.Opponent()] = must.M1(players.New(*flagAIConfig2))
}
