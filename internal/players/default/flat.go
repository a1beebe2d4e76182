package _default

import (
	"fmt"
	"math/rand/v2"

	"github.com/janpfeifer/goZero/internal/ai"
	"github.com/janpfeifer/goZero/internal/parameters"
	"github.com/janpfeifer/goZero/internal/players"
	"github.com/janpfeifer/goZero/internal/searchers/rollout"
	. "github.com/janpfeifer/goZero/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// FlatPlayer estimates, for each legal move, the rollout win rate of the resulting position,
// and plays the best one. It is a baseline that uses no tree.
type FlatPlayer struct {
	evaluator ai.Evaluator
	rng       *rand.Rand
	runs      int
	maxMoves  int
}

var _ players.Player = (*FlatPlayer)(nil)

// NewFlatPlayer creates a FlatPlayer from params: the evaluator parameters used for the
// rollout policy (see ai.NewFromParams), "seed" and:
//
//   - runs (int): rollouts per legal move, default 20.
//   - max_moves (int): rollouts stop at this move, default 0 means the board's MaxMoves.
func NewFlatPlayer(params parameters.Params) (players.Player, error) {
	evaluator, err := ai.NewFromParams(params)
	if err != nil {
		return nil, err
	}
	p := &FlatPlayer{evaluator: evaluator, runs: 20}
	p.rng, _, err = newRandFromParams(params)
	if err != nil {
		return nil, err
	}
	p.runs, err = parameters.PopParamOr(params, "runs", p.runs)
	if err != nil {
		return nil, err
	}
	if p.runs <= 0 {
		return nil, errors.Errorf("runs must be positive, got %d", p.runs)
	}
	p.maxMoves, err = parameters.PopParamOr(params, "max_moves", p.maxMoves)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Play implements players.Player.
func (p *FlatPlayer) Play(board *Board) (Move, error) {
	if board.IsGameOver() {
		return Move{}, errors.New("flat player: the match is over")
	}
	maxMoves := p.maxMoves
	if maxMoves <= 0 {
		maxMoves = board.MaxMoves
	}
	bestMove, bestRate := PassMove, -1.0
	for _, move := range board.LegalMoves() {
		next := board.Clone()
		next.Play(move)
		// The opponent is to play at next.
		opponentRate, err := rollout.WinRate(next, p.evaluator, maxMoves, p.rng, p.runs)
		if err != nil {
			return Move{}, err
		}
		rate := 1 - opponentRate
		if rate > bestRate {
			bestMove, bestRate = move, rate
		}
	}
	if klog.V(2).Enabled() {
		klog.Infof("%s: move #%d %s, win rate %.2f", p, board.MovesPlayed(), bestMove, bestRate)
	}
	return bestMove, nil
}

// Observe implements players.Player. It is a no-op.
func (p *FlatPlayer) Observe(Move) error { return nil }

func (p *FlatPlayer) String() string {
	return fmt.Sprintf("flat(%s, runs=%d)", p.evaluator, p.runs)
}
