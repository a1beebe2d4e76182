// Package rollout estimates the win probability of a position by playing it to the end many
// times, sampling the moves of both players from an evaluator's policy.
package rollout

import (
	"context"
	"math/rand/v2"
	"sync/atomic"

	"github.com/janpfeifer/goZero/internal/ai"
	"github.com/janpfeifer/goZero/internal/features"
	. "github.com/janpfeifer/goZero/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// MaxSampleAttempts is the number of illegal moves sampled from the policy, at one position,
// after which a uniformly random legal move is played instead.
const MaxSampleAttempts = 100

// Rollout plays the match from start (which is not changed) until it is over or maxMoves moves
// have been played in total (start.MovesPlayed() included), sampling every move from the
// evaluator policy.
//
// It returns whether the player to move at start is the winner of the final position by area
// scoring.
func Rollout(start *Board, evaluator ai.Evaluator, maxMoves int, rng *rand.Rand) (bool, error) {
	board := start.Clone()
	for !board.IsGameOver() && board.MovesPlayed() < maxMoves {
		evaluation, err := evaluator.Evaluate(features.Extract(board))
		if err != nil {
			return false, errors.WithMessagef(err, "rollout: evaluator %s failed at move #%d", evaluator, board.MovesPlayed())
		}
		if evaluation == nil {
			return false, errors.Errorf("rollout: evaluator %s returned no evaluation at move #%d", evaluator, board.MovesPlayed())
		}
		played := false
		for range MaxSampleAttempts {
			if board.Play(evaluation.RandomMove(rng)) {
				played = true
				break
			}
		}
		if !played {
			legalMoves := board.LegalMoves()
			move := legalMoves[rng.IntN(len(legalMoves))]
			if klog.V(2).Enabled() {
				klog.Infof("rollout: %d illegal samples at move #%d, playing %s", MaxSampleAttempts, board.MovesPlayed(), move)
			}
			board.Play(move)
		}
	}
	return board.Winner() == start.ToPlay(), nil
}

// WinRate runs numRuns rollouts from start, sequentially using rng, and returns the fraction
// of them won by the player to move at start.
func WinRate(start *Board, evaluator ai.Evaluator, maxMoves int, rng *rand.Rand, numRuns int) (float64, error) {
	if numRuns <= 0 {
		return 0, errors.Errorf("rollout: numRuns must be positive, got %d", numRuns)
	}
	wins := 0
	for range numRuns {
		won, err := Rollout(start, evaluator, maxMoves, rng)
		if err != nil {
			return 0, err
		}
		if won {
			wins++
		}
	}
	return float64(wins) / float64(numRuns), nil
}

// ParallelWinRate is like WinRate, but splits the runs among parallelism goroutines, each with its
// own random number generator derived from seed. The evaluator must be safe for concurrent use.
//
// The result is not the same as WinRate with the same seed.
func ParallelWinRate(ctx context.Context, start *Board, evaluator ai.Evaluator, maxMoves int,
	seed uint64, numRuns, parallelism int) (float64, error) {
	if numRuns <= 0 {
		return 0, errors.Errorf("rollout: numRuns must be positive, got %d", numRuns)
	}
	parallelism = max(1, min(parallelism, numRuns))
	var wins atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for worker := range parallelism {
		// Distribute the runs as evenly as possible.
		workerRuns := numRuns / parallelism
		if worker < numRuns%parallelism {
			workerRuns++
		}
		rng := rand.New(rand.NewPCG(seed, uint64(worker)))
		g.Go(func() error {
			for range workerRuns {
				if err := ctx.Err(); err != nil {
					return err
				}
				won, err := Rollout(start, evaluator, maxMoves, rng)
				if err != nil {
					return errors.WithMessagef(err, "worker #%d", worker)
				}
				if won {
					wins.Add(1)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return float64(wins.Load()) / float64(numRuns), nil
}
