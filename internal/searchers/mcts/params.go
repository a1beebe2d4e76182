package mcts

import (
	"github.com/janpfeifer/goZero/internal/ai"
	"github.com/janpfeifer/goZero/internal/parameters"
	. "github.com/janpfeifer/goZero/internal/state"
	"github.com/pkg/errors"
)

// ConfigFromParams pops from params the MCTS configuration:
//
//   - searches (int): number of descents per move, default 100.
//   - decay (float): decay of the action weight at each visit, default 0.9.
//   - selector (string): "weights" (default), "uniform" or "puct".
//   - c_puct (float): exploration constant of the "puct" selector, default 1.1.
//   - seed (int): seed of the random number generator, 0 (default) means a random seed.
func ConfigFromParams(params parameters.Params) (config Config, err error) {
	config = DefaultConfig()
	config.SearchesPerMove, err = parameters.PopParamOr(params, "searches", config.SearchesPerMove)
	if err != nil {
		return
	}
	config.Decay, err = parameters.PopParamOr(params, "decay", config.Decay)
	if err != nil {
		return
	}
	selectorName, err := parameters.PopParamOr(params, "selector", "weights")
	if err != nil {
		return
	}
	cPuct, err := parameters.PopParamOr(params, "c_puct", float32(1.1))
	if err != nil {
		return
	}
	config.Selector, err = NewSelector(selectorName, cPuct)
	if err != nil {
		return
	}
	seed, err := parameters.PopParamOr(params, "seed", 0)
	if err != nil {
		return
	}
	if seed < 0 {
		err = errors.Errorf("seed must be non-negative, got %d", seed)
		return
	}
	config.Seed = uint64(seed)
	return
}

// NewFromParams creates an MCTS engine configured by params (see ConfigFromParams), starting
// at the initial position.
func NewFromParams(evaluator ai.Evaluator, params parameters.Params, initial *Board) (*MCTS, error) {
	config, err := ConfigFromParams(params)
	if err != nil {
		return nil, errors.WithMessage(err, "mcts: invalid configuration")
	}
	return New(config, initial, evaluator)
}
