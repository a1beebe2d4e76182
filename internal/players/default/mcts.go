package _default

import (
	"fmt"

	"github.com/janpfeifer/goZero/internal/ai"
	"github.com/janpfeifer/goZero/internal/parameters"
	"github.com/janpfeifer/goZero/internal/players"
	"github.com/janpfeifer/goZero/internal/searchers"
	"github.com/janpfeifer/goZero/internal/searchers/mcts"
	. "github.com/janpfeifer/goZero/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// MCTSPlayer plays with an MCTS engine, reusing the search tree across its moves and the
// observed opponent moves.
type MCTSPlayer struct {
	evaluator ai.Evaluator
	config    mcts.Config

	// temperature applied to the visit counts to choose the move, during the first maxRandMoves
	// moves of the match. With temperature 0 the move with the most visits is played.
	temperature  float32
	maxRandMoves int

	// engine is created on the first call to Play.
	engine *mcts.MCTS
}

var _ players.Player = (*MCTSPlayer)(nil)

// NewMCTSPlayer creates an MCTSPlayer from params: the evaluator parameters (see
// ai.NewFromParams), the MCTS parameters (see mcts.ConfigFromParams) and:
//
//   - temperature (float): if > 0, the move is sampled from visits^(1/temperature), default 0.
//   - max_rand_moves (int): temperature is only used for moves before this one, default 10.
func NewMCTSPlayer(params parameters.Params) (players.Player, error) {
	evaluator, err := ai.NewFromParams(params)
	if err != nil {
		return nil, err
	}
	p := &MCTSPlayer{evaluator: evaluator, maxRandMoves: 10}
	p.config, err = mcts.ConfigFromParams(params)
	if err != nil {
		return nil, err
	}
	p.temperature, err = parameters.PopParamOr(params, "temperature", p.temperature)
	if err != nil {
		return nil, err
	}
	if p.temperature < 0 {
		return nil, errors.Errorf("negative temperature (%g given) not possible", p.temperature)
	}
	p.maxRandMoves, err = parameters.PopParamOr(params, "max_rand_moves", p.maxRandMoves)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// sync makes sure the engine is at the board position, reusing the tree if possible.
func (p *MCTSPlayer) sync(board *Board) error {
	if p.engine != nil {
		current := p.engine.Board()
		if current.MovesPlayed() == board.MovesPlayed()-1 {
			// Opponent move not observed.
			if lastMove, ok := board.LastMove(); ok {
				if err := p.engine.Advance(lastMove); err != nil {
					klog.Warningf("%s: failed to advance to the opponent move %s: %v", p, lastMove, err)
				}
				current = p.engine.Board()
			}
		}
		if samePosition(current, board) {
			return nil
		}
		if klog.V(1).Enabled() {
			klog.Infof("%s: search tree out of sync at move #%d, starting a new one", p, board.MovesPlayed())
		}
	}
	var err error
	p.engine, err = mcts.New(p.config, board, p.evaluator)
	return err
}

func samePosition(a, b *Board) bool {
	return a.MovesPlayed() == b.MovesPlayed() && a.ToPlay() == b.ToPlay() && a.String() == b.String()
}

// Play implements players.Player.
func (p *MCTSPlayer) Play(board *Board) (Move, error) {
	if err := p.sync(board); err != nil {
		return Move{}, err
	}
	if p.temperature == 0 || board.MovesPlayed() >= p.maxRandMoves {
		return p.engine.MoveOnce()
	}

	// Sample the move from the visits distribution.
	if board.IsGameOver() {
		return Move{}, mcts.ErrNoLegalMoves
	}
	if err := p.engine.Search(); err != nil {
		return Move{}, err
	}
	move, ok := searchers.SampleMove(p.engine.Policy(), p.temperature, p.engine.Rand())
	if !ok {
		return p.engine.MoveOnce()
	}
	if err := p.engine.Advance(move); err != nil {
		return Move{}, err
	}
	return move, nil
}

// Observe implements players.Player, and advances the search tree to the opponent move.
func (p *MCTSPlayer) Observe(move Move) error {
	if p.engine == nil {
		return nil
	}
	return p.engine.Advance(move)
}

// Engine returns the current MCTS engine, or nil if Play was not called yet.
func (p *MCTSPlayer) Engine() *mcts.MCTS { return p.engine }

func (p *MCTSPlayer) String() string {
	return fmt.Sprintf("mcts(%s, %s, searches=%d)", p.evaluator, p.config.Selector, p.config.SearchesPerMove)
}
