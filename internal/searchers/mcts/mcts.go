// Package mcts implements a Monte Carlo Tree Search engine driven by an evaluator's policy.
//
// Each descent starts at the current node and follows the moves picked by a Selector, until it
// either expands one new node (the evaluation of the new position happens there), tries an illegal
// move, or reaches a terminal position. Every move taken records a visit, which decays its action
// weight, so that moves with a large prior are explored first but not exclusively.
//
// After a number of descents, the move with the most visits is played, and the tree below it is
// kept for the following searches.
//
// References:
//
//   - https://suragnair.github.io/posts/alphazero.html by Surag Nair
//   - AlphaGo Zero: https://www.nature.com/articles/nature24270
package mcts

import (
	"math/rand/v2"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/goZero/internal/ai"
	"github.com/janpfeifer/goZero/internal/generics"
	. "github.com/janpfeifer/goZero/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	// ErrNoLegalMoves is returned by MoveOnce when the current position is terminal.
	ErrNoLegalMoves = errors.New("no legal moves")

	// ErrIllegalMove is returned (wrapped) by Advance when the move is not legal.
	ErrIllegalMove = errors.New("illegal move")
)

// Config of the MCTS engine.
type Config struct {
	// SearchesPerMove is the number of descents run by MoveOnce. It must be >= 1.
	SearchesPerMove int

	// Decay multiplies the action weight of a move at each visit. It must be in (0, 1].
	Decay float32

	// Seed for the random number generator used to break ties. If 0, a random seed is used.
	Seed uint64

	// Selector picks the moves during the descents. If nil, WeightSelector is used.
	Selector Selector
}

// DefaultConfig returns the configuration used when no parameters are given.
func DefaultConfig() Config {
	return Config{
		SearchesPerMove: 100,
		Decay:           0.9,
		Selector:        WeightSelector{},
	}
}

// MCTS is the search engine. It owns the tree, and keeps track of the current node: the position
// after the moves played so far.
//
// It is not safe for concurrent use.
type MCTS struct {
	config    Config
	evaluator ai.Evaluator
	rng       *rand.Rand

	root, current *GameTree
	moves         []Move
	numNodes      int
}

// New creates an MCTS engine starting at the initial position, which is evaluated right away.
// The initial board is cloned and not changed.
func New(config Config, initial *Board, evaluator ai.Evaluator) (*MCTS, error) {
	if config.SearchesPerMove < 1 {
		return nil, errors.Errorf("mcts: SearchesPerMove must be >= 1, got %d", config.SearchesPerMove)
	}
	if !(config.Decay > 0 && config.Decay <= 1) {
		return nil, errors.Errorf("mcts: Decay must be in the range (0, 1], got %g", config.Decay)
	}
	if evaluator == nil {
		return nil, errors.New("mcts: evaluator must be given")
	}
	if initial == nil {
		return nil, errors.New("mcts: initial board must be given")
	}
	if config.Selector == nil {
		config.Selector = WeightSelector{}
	}
	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	m := &MCTS{
		config:    config,
		evaluator: evaluator,
		rng:       rand.New(rand.NewPCG(seed, 0)),
	}
	root, err := m.newNode(initial, nil)
	if err != nil {
		return nil, errors.WithMessage(err, "mcts: failed to evaluate initial position")
	}
	m.root, m.current = root, root
	return m, nil
}

func (m *MCTS) newNode(board *Board, parent *GameTree) (*GameTree, error) {
	node, err := newGameTree(m.config.Decay, board, m.evaluator, parent)
	if err != nil {
		return nil, err
	}
	m.numNodes++
	return node, nil
}

// SearchOnce runs one descent from the current node, expanding at most one new node.
//
// If the evaluation of the new node fails, the error is returned and the tree is left as it was
// at the leaf: the visit of the failed move is not recorded.
func (m *MCTS) SearchOnce() error {
	node := m.current
	for {
		move, ok := m.config.Selector.Select(node, m.rng)
		if !ok {
			// Terminal position.
			return nil
		}
		if child := node.Child(move); child != nil {
			node.RecordVisit(move)
			node = child
			continue
		}
		board := node.state.Clone()
		if !board.Play(move) {
			// Decaying the weight makes the selector less likely to pick it again.
			node.RecordVisit(move)
			return nil
		}
		child, err := m.newNode(board, node)
		if err != nil {
			return err
		}
		node.SetChild(move, child)
		node.RecordVisit(move)
		return nil
	}
}

// Search runs SearchesPerMove descents from the current node, without moving.
func (m *MCTS) Search() error {
	for range m.config.SearchesPerMove {
		if err := m.SearchOnce(); err != nil {
			return err
		}
	}
	return nil
}

// MoveOnce searches and then plays the legal move with the most visits at the current node,
// breaking ties at random. The current node becomes the child of the move played.
//
// It returns ErrNoLegalMoves if the current position is terminal.
func (m *MCTS) MoveOnce() (Move, error) {
	if m.current.IsTerminal() {
		return Move{}, ErrNoLegalMoves
	}
	if err := m.Search(); err != nil {
		return Move{}, err
	}
	node := m.current
	legal, visits := node.legal.Values(), node.visitCounts.Values()
	best := generics.ArgMax(len(visits),
		func(idx int) bool { return legal[idx] },
		func(idx int) int { return visits[idx] },
		m.rng.IntN)
	if best < 0 {
		return Move{}, ErrNoLegalMoves
	}
	move := node.visitCounts.MoveAt(best)
	child := node.Child(move)
	if child == nil {
		exceptions.Panicf("mcts: move %s selected with %d visits at move #%d has no child node",
			move, visits[best], node.state.MovesPlayed())
	}
	if klog.V(1).Enabled() {
		klog.Infof("MCTS move #%d: %s played %s (%d of %d visits), %d nodes",
			node.state.MovesPlayed(), node.state.ToPlay(), move, visits[best], node.totalVisits, m.numNodes)
	}
	m.moves = append(m.moves, move)
	m.current = child
	return move, nil
}

// Advance plays the given move, chosen outside the engine (e.g. by the opponent), at the
// current node. The existing subtree of the move is reused, or a new node is created.
//
// It returns an error wrapping ErrIllegalMove if the move is not legal.
func (m *MCTS) Advance(move Move) error {
	node := m.current
	child := node.Child(move)
	if child == nil {
		board := node.state.Clone()
		if !board.Play(move) {
			return errors.Wrapf(ErrIllegalMove, "mcts: can't play %s at move #%d", move, node.state.MovesPlayed())
		}
		var err error
		child, err = m.newNode(board, node)
		if err != nil {
			return err
		}
		node.SetChild(move, child)
	}
	m.moves = append(m.moves, move)
	m.current = child
	return nil
}

// Current returns the node of the current position.
func (m *MCTS) Current() *GameTree { return m.current }

// Root returns the node of the initial position.
func (m *MCTS) Root() *GameTree { return m.root }

// Board returns the current position. It must not be modified.
func (m *MCTS) Board() *Board { return m.current.state }

// Moves returns a copy of the moves played so far.
func (m *MCTS) Moves() []Move { return slices.Clone(m.moves) }

// Config returns the configuration of the engine, with defaults filled in.
func (m *MCTS) Config() Config { return m.config }

// Evaluator used by the engine.
func (m *MCTS) Evaluator() ai.Evaluator { return m.evaluator }

// NumNodes returns the number of nodes created so far.
func (m *MCTS) NumNodes() int { return m.numNodes }

// Policy returns the distribution of the visits over the legal moves at the current node.
// It is all zeros if there were no visits.
func (m *MCTS) Policy() Grid[float32] {
	node := m.current
	policy := NewGrid[float32](node.Width(), node.Height())
	values := policy.Values()
	for idx, count := range node.visitCounts.Values() {
		if node.legal.Values()[idx] {
			values[idx] = float32(count)
		}
	}
	Normalize(policy)
	return policy
}

// Rand returns the random number generator of the engine.
func (m *MCTS) Rand() *rand.Rand { return m.rng }

// String returns a description of the engine configuration.
func (m *MCTS) String() string {
	return "mcts(" + m.evaluator.String() + ", " + m.config.Selector.String() + ")"
}
