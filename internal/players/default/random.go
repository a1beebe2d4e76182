package _default

import (
	"math/rand/v2"

	"github.com/janpfeifer/goZero/internal/parameters"
	"github.com/janpfeifer/goZero/internal/players"
	. "github.com/janpfeifer/goZero/internal/state"
	"github.com/pkg/errors"
)

// RandomPlayer plays a uniformly random legal move.
type RandomPlayer struct {
	rng *rand.Rand
}

var _ players.Player = (*RandomPlayer)(nil)

// NewRandomPlayer creates a RandomPlayer, configured only by the optional "seed".
func NewRandomPlayer(params parameters.Params) (players.Player, error) {
	rng, _, err := newRandFromParams(params)
	if err != nil {
		return nil, err
	}
	return &RandomPlayer{rng: rng}, nil
}

// Play implements players.Player.
func (p *RandomPlayer) Play(board *Board) (Move, error) {
	moves := board.LegalMoves()
	if len(moves) == 0 {
		return Move{}, errors.New("random player: the match is over")
	}
	return moves[p.rng.IntN(len(moves))], nil
}

// Observe implements players.Player. It is a no-op.
func (p *RandomPlayer) Observe(Move) error { return nil }

func (p *RandomPlayer) String() string { return "random" }
