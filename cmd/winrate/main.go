// winrate estimates, with random rollouts, the probability that the player to move wins from
// a position given by a sequence of moves.
//
// Example:
//
//	$ winrate -size=5 -evaluator=linear=greedy -runs=2000 C3 D4 B2
package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"
	"time"

	"github.com/janpfeifer/goZero/internal/ai"
	_ "github.com/janpfeifer/goZero/internal/ai/linear"
	"github.com/janpfeifer/goZero/internal/parameters"
	"github.com/janpfeifer/goZero/internal/profilers"
	"github.com/janpfeifer/goZero/internal/searchers/rollout"
	. "github.com/janpfeifer/goZero/internal/state"
	"github.com/janpfeifer/goZero/internal/ui/cli"
	"github.com/janpfeifer/goZero/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagSize        = flag.Int("size", 9, "Size of the board.")
	flagKomi        = flag.Float64("komi", float64(DefaultKomi), "Komi added to White's score.")
	flagEvaluator   = flag.String("evaluator", "uniform", "Configuration of the evaluator used as rollout policy, e.g.: \"linear=greedy\".")
	flagRuns        = flag.Int("runs", 1000, "Number of rollouts.")
	flagSeed        = flag.Uint64("seed", 0, "Seed for the rollouts, 0 means a random seed.")
	flagMaxMoves    = flag.Int("max_moves", 0, "Rollouts stop at this move. Defaults to 3 times the number of points.")
	flagParallelism = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and run these many rollouts in parallel.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	profilers.Setup(ctx)
	defer profilers.OnQuit()

	board := NewBoard(*flagSize, *flagSize)
	board.Komi = float32(*flagKomi)
	must.M(playMoves(board, flag.Args()))
	evaluator := must.M1(newEvaluator(*flagEvaluator))

	maxMoves := board.MaxMoves
	if *flagMaxMoves > 0 {
		maxMoves = *flagMaxMoves
	}
	parallelism := runtime.GOMAXPROCS(0)
	if *flagParallelism > 0 {
		parallelism = *flagParallelism
	}
	seed := *flagSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	cli.New(true, false).Print(board)
	fmt.Printf("\nEstimating win rate for %s with %d rollouts of %s: ", board.ToPlay(), *flagRuns, evaluator)
	s := spinning.New(ctx)
	rate, err := rollout.ParallelWinRate(ctx, board, evaluator, maxMoves, seed, *flagRuns, parallelism)
	elapsed := s.Done()
	must.M(err)
	fmt.Printf("%.1f%% (%s, seed=%d)\n", 100*rate, elapsed.Truncate(time.Millisecond), seed)
}

func newEvaluator(config string) (ai.Evaluator, error) {
	params := parameters.NewFromConfigString(config)
	evaluator, err := ai.NewFromParams(params)
	if err != nil {
		return nil, err
	}
	return evaluator, parameters.CheckAllConsumed(params)
}

// playMoves plays the moves given in the usual notation (e.g. "C3", "pass").
func playMoves(board *Board, moves []string) error {
	for _, text := range moves {
		move, err := ParseMove(text)
		if err != nil {
			return err
		}
		if !board.Play(move) {
			return errors.Errorf("move #%d %s is not legal", board.MovesPlayed()+1, move)
		}
	}
	return nil
}
