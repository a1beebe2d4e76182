// compare plays a number of matches between two AI configurations, alternating who plays Black,
// and reports the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/janpfeifer/goZero/internal/players"
	_ "github.com/janpfeifer/goZero/internal/players/default"
	"github.com/janpfeifer/goZero/internal/profilers"
	"github.com/janpfeifer/goZero/internal/records"
	"github.com/janpfeifer/goZero/internal/state"
	"github.com/janpfeifer/goZero/internal/ui/cli"
	"github.com/janpfeifer/goZero/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

var (
	flagPlayer1Config = flag.String("ai1", "", "1st player configuration.")
	flagPlayer2Config = flag.String("ai2", "", "2nd player configuration.")
	flagNumMatches    = flag.Int("num_matches", 100, "Number of matches to play.")
	flagParallelism   = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many matches simultaneously.")
	flagPrintSteps = flag.Bool("print_steps", false, "Print board at each step. "+
		"Very verbose, and you probably want to set -parallelism to 1.")
	flagSize     = flag.Int("size", 9, "Size of the board.")
	flagKomi     = flag.Float64("komi", float64(state.DefaultKomi), "Komi added to White's score.")
	flagMaxMoves = flag.Int("max_moves", 0, "Max moves before the match is scored. Defaults to 3 times the number of points.")
	flagResults  = flag.String("results", "", "If set, save the record of every match to this Parquet file.")
)

// globalCtx is cancelled when the program is about to exit either by an interrupt (ctrl+C)
// or by reaching the end.
var globalCtx = context.Background()

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagPlayer1Config == "" || *flagPlayer2Config == "" {
		klog.Fatal("You must configure both players to compare with flags -ai1 and -ai2")
	}

	// Capture Control+C
	var globalCancel func()
	globalCtx, globalCancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(globalCancel, 5*time.Second)
	defer globalCancel()

	profilers.Setup(globalCtx)
	defer profilers.OnQuit()

	// Check configurations before starting.
	_ = must.M1(createAIPlayers())
	var recordsWriter *records.Writer
	if *flagResults != "" {
		recordsWriter = must.M1(records.Create(*flagResults))
	}
	must.M(runMatches(globalCtx, recordsWriter))
	if recordsWriter != nil {
		must.M(recordsWriter.Close())
	}
}

// createAIPlayers creates a new pair of players: players keep state (search trees, random
// number generators), so each match gets its own.
func createAIPlayers() (aiPlayers [2]players.Player, err error) {
	for playerIdx, config := range [2]string{*flagPlayer1Config, *flagPlayer2Config} {
		klog.V(2).Infof("Creating AI for player #%d from %q", playerIdx, config)
		aiPlayers[playerIdx], err = players.New(config)
		if err != nil {
			err = errors.WithMessagef(err, "AI-%d", playerIdx+1)
			return
		}
	}
	return
}

// Results of the matches, indexed by AI (0 for -ai1, 1 for -ai2).
type Results struct {
	mu                       sync.Mutex
	start                    time.Time
	winsAsBlack, winsAsWhite [2]int
	draws                    int
	played, total            int
}

func (r *Results) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Played %d of %d: ", r.played, r.total))
	for aiIdx := range 2 {
		parts = append(parts,
			fmt.Sprintf("AI-%d: %d Wins (Black: %d, White: %d) / ",
				aiIdx+1, r.winsAsBlack[aiIdx]+r.winsAsWhite[aiIdx],
				r.winsAsBlack[aiIdx], r.winsAsWhite[aiIdx]))
	}
	parts = append(parts, fmt.Sprintf("%d draws - %s", r.draws, time.Since(r.start).Truncate(time.Second)))
	parts = append(parts, "\033[0K")
	return strings.Join(parts, "")
}

// record the result of a match where aiBlack was the AI index playing Black.
func (r *Results) record(aiBlack int, winner state.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch winner {
	case state.Black:
		r.winsAsBlack[aiBlack]++
	case state.White:
		r.winsAsWhite[1-aiBlack]++
	default:
		r.draws++
	}
	r.played++
	fmt.Printf("\r%s", r)
}

// runMatches plays all matches, saving their records to recordsWriter if it is not nil.
func runMatches(ctx context.Context, recordsWriter *records.Writer) error {
	r := &Results{
		start: time.Now(),
		total: *flagNumMatches,
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(getParallelism())
	fmt.Printf("\r%s", r)

	for matchIdx := range r.total {
		g.Go(func() error {
			aiPlayers, err := createAIPlayers()
			if err != nil {
				return err
			}
			aiBlack := matchIdx % 2
			configs := [2]string{*flagPlayer1Config, *flagPlayer2Config}
			if aiBlack == 1 {
				aiPlayers[0], aiPlayers[1] = aiPlayers[1], aiPlayers[0]
				configs[0], configs[1] = configs[1], configs[0]
			}
			start := time.Now()
			board, moves, err := runMatch(ctx, matchIdx, aiPlayers)
			if err != nil || ctx.Err() != nil {
				return err
			}
			r.record(aiBlack, board.Winner())
			if recordsWriter == nil {
				return nil
			}
			return recordsWriter.Write(records.NewMatch(matchIdx, configs[0], configs[1], board, moves, time.Since(start)))
		})
	}
	err := g.Wait()
	fmt.Printf("\r%s\n", r)
	if globalCtx.Err() != nil {
		fmt.Printf("Interrupted: %s\n", globalCtx.Err())
		return nil
	}
	return err
}

var (
	stepUI   = cli.New(true, false)
	muStepUI sync.Mutex
)

// runMatch plays aiPlayers[0] as Black against aiPlayers[1] as White, and returns the final
// board and the moves played.
func runMatch(ctx context.Context, matchNum int, aiPlayers [2]players.Player) (*state.Board, []state.Move, error) {
	if klog.V(1).Enabled() {
		klog.Infof("Starting match %d", matchNum)
		defer klog.Infof("Finished match %d", matchNum)
	}
	board := state.NewBoard(*flagSize, *flagSize)
	board.Komi = float32(*flagKomi)
	if *flagMaxMoves > 0 {
		board.MaxMoves = *flagMaxMoves
	}
	matchName := fmt.Sprintf("Match-%05d", matchNum)
	var moves []state.Move

	for !board.IsGameOver() {
		if ctx.Err() != nil {
			klog.V(1).Infof("%s interrupted: %s", matchName, ctx.Err())
			return board, moves, nil
		}
		toPlay := board.ToPlay()
		move, err := aiPlayers[toPlay].Play(board)
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "%s: %s failed at move #%d",
				matchName, aiPlayers[toPlay], board.MovesPlayed())
		}
		if !board.Play(move) {
			return nil, nil, errors.Errorf("%s: %s played the illegal move %s at move #%d",
				matchName, aiPlayers[toPlay], move, board.MovesPlayed())
		}
		moves = append(moves, move)
		if err = aiPlayers[toPlay.Opponent()].Observe(move); err != nil {
			return nil, nil, errors.WithMessagef(err, "%s: %s failed to observe move %s",
				matchName, aiPlayers[toPlay.Opponent()], move)
		}
		if *flagPrintSteps {
			muStepUI.Lock()
			fmt.Printf("\n%s, move #%d: %s plays %s\n", matchName, board.MovesPlayed(), toPlay, move)
			stepUI.PrintBoard(board)
			fmt.Println("------------------")
			muStepUI.Unlock()
		}
	}
	return board, moves, nil
}

// getParallelism returns the parallelism.
func getParallelism() (parallelism int) {
	parallelism = runtime.GOMAXPROCS(0)
	if *flagParallelism > 0 {
		parallelism = *flagParallelism
	}
	return
}
