package mcts

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/janpfeifer/goZero/internal/generics"
	. "github.com/janpfeifer/goZero/internal/state"
	"github.com/pkg/errors"
)

// Selector chooses the move to explore at a node during a descent.
//
// It returns ok=false if there is no move to select, which happens only at terminal positions.
type Selector interface {
	Select(node *GameTree, rng *rand.Rand) (move Move, ok bool)
	String() string
}

// WeightSelector picks the legal move with the largest action weight, breaking ties at random.
//
// Since the weights decay at each visit, moves with a large prior are explored more often,
// but not exclusively.
type WeightSelector struct{}

// UniformSelector picks any of the legal moves, with equal probability.
type UniformSelector struct{}

// PUCTSelector picks the legal move with the largest upper confidence bound
// U(m) = actionWeight(m) * CPuct * sqrt(1 + totalVisits) / (1 + visits(m)), breaking ties at random.
type PUCTSelector struct {
	CPuct float32
}

var (
	_ Selector = WeightSelector{}
	_ Selector = UniformSelector{}
	_ Selector = (*PUCTSelector)(nil)
)

// selectMax selects among the legal moves the one with the highest score.
func selectMax(node *GameTree, rng *rand.Rand, score func(idx int) float32) (Move, bool) {
	legal := node.legal.Values()
	best := generics.ArgMax(len(legal), func(idx int) bool { return legal[idx] }, score, rng.IntN)
	if best < 0 {
		return Move{}, false
	}
	return node.legal.MoveAt(best), true
}

// Select implements Selector.
func (WeightSelector) Select(node *GameTree, rng *rand.Rand) (Move, bool) {
	weights := node.actionWeights.Values()
	return selectMax(node, rng, func(idx int) float32 { return weights[idx] })
}

func (WeightSelector) String() string { return "weights" }

// Select implements Selector.
func (UniformSelector) Select(node *GameTree, rng *rand.Rand) (Move, bool) {
	return selectMax(node, rng, func(int) float32 { return 0 })
}

func (UniformSelector) String() string { return "uniform" }

// Select implements Selector.
func (s *PUCTSelector) Select(node *GameTree, rng *rand.Rand) (Move, bool) {
	weights := node.actionWeights.Values()
	visits := node.visitCounts.Values()
	globalFactor := s.CPuct * math32.Sqrt(float32(1+node.totalVisits))
	return selectMax(node, rng, func(idx int) float32 {
		return weights[idx] * globalFactor / float32(1+visits[idx])
	})
}

func (s *PUCTSelector) String() string { return "puct" }

// NewSelector returns the selector for the given name: "weights", "uniform" or "puct".
// cPuct is only used by "puct".
func NewSelector(name string, cPuct float32) (Selector, error) {
	switch name {
	case "", "weights":
		return WeightSelector{}, nil
	case "uniform":
		return UniformSelector{}, nil
	case "puct":
		if cPuct < 0 {
			return nil, errors.Errorf("negative c_puct value (%g given) not possible", cPuct)
		}
		return &PUCTSelector{CPuct: cPuct}, nil
	}
	return nil, errors.Errorf("unknown selector %q, valid values are \"weights\", \"uniform\" and \"puct\"", name)
}
