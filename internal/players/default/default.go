// Package _default registers the default players that can be included in any
// front-end for goZero.
//
// Currently, it includes:
//
//   - "mcts": Monte Carlo Tree Search guided by an evaluator (linear by default).
//   - "flat": picks the move with the best rollout win rate, without a tree.
//   - "random": plays uniformly random legal moves.
package _default

import (
	"math/rand/v2"

	_ "github.com/janpfeifer/goZero/internal/ai/linear"
	"github.com/janpfeifer/goZero/internal/parameters"
	"github.com/janpfeifer/goZero/internal/players"
	"github.com/pkg/errors"
)

func init() {
	players.RegisterModule("mcts", NewMCTSPlayer)
	players.RegisterModule("flat", NewFlatPlayer)
	players.RegisterModule("random", NewRandomPlayer)
}

// newRandFromParams pops the "seed" parameter: 0 (default) means a random seed.
func newRandFromParams(params parameters.Params) (*rand.Rand, uint64, error) {
	seed, err := parameters.PopParamOr(params, "seed", 0)
	if err != nil {
		return nil, 0, err
	}
	if seed < 0 {
		return nil, 0, errors.Errorf("seed must be non-negative, got %d", seed)
	}
	seed64 := uint64(seed)
	if seed64 == 0 {
		seed64 = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed64, 0)), seed64, nil
}
