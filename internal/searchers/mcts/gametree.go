package mcts

import (
	"github.com/chewxy/math32"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/goZero/internal/ai"
	"github.com/janpfeifer/goZero/internal/features"
	. "github.com/janpfeifer/goZero/internal/state"
	"github.com/pkg/errors"
)

// GameTree is a node of the search tree: it holds a position, its evaluation and the search
// statistics of each move from the position.
//
// Children are created lazily, the first time a legal move is explored, and are owned by their
// parent. A GameTree is not safe for concurrent use.
type GameTree struct {
	// state is a clone owned by the node, and it is never changed.
	state *Board

	// evaluation of state, computed once at construction.
	evaluation *ai.Evaluation

	// actionWeights start as the evaluation policy, and decay at every visit of the move.
	actionWeights Grid[float32]

	// visitCounts per move, only incremented.
	visitCounts Grid[int]

	// children per move, nil if not expanded.
	children Grid[*GameTree]

	// legal caches state.IsLegal for each move.
	legal Grid[bool]

	// parent is nil for the root of the tree.
	parent *GameTree

	decay                    float32
	totalVisits, numChildren int
}

// newGameTree evaluates the position and creates a node for it. board is cloned, and it is not
// changed.
//
// It returns an error if the evaluator fails or returns an invalid evaluation: no node is
// created in that case.
func newGameTree(decay float32, board *Board, evaluator ai.Evaluator, parent *GameTree) (*GameTree, error) {
	state := board.Clone()
	evaluation, err := evaluator.Evaluate(features.Extract(state))
	if err != nil {
		return nil, errors.WithMessagef(err, "evaluator %s failed at move #%d", evaluator, state.MovesPlayed())
	}
	if evaluation == nil {
		return nil, errors.Errorf("evaluator %s returned no evaluation at move #%d", evaluator, state.MovesPlayed())
	}
	width, height := state.Width(), state.Height()
	if !evaluation.Policy.SameShape(width, height) {
		return nil, errors.Errorf("evaluator %s returned a %dx%d policy for a %dx%d board",
			evaluator, evaluation.Policy.Width(), evaluation.Policy.Height(), width, height)
	}
	for move, weight := range evaluation.Policy.All() {
		if weight < 0 || math32.IsNaN(weight) {
			return nil, errors.Errorf("evaluator %s returned invalid weight %g for move %s", evaluator, weight, move)
		}
	}

	node := &GameTree{
		state:         state,
		evaluation:    evaluation,
		actionWeights: evaluation.Policy.Clone(),
		visitCounts:   NewGrid[int](width, height),
		children:      NewGrid[*GameTree](width, height),
		legal:         NewGrid[bool](width, height),
		parent:        parent,
		decay:         decay,
	}
	for move := range node.legal.Moves() {
		node.legal.Set(move, state.IsLegal(move))
	}
	return node, nil
}

// RecordVisit increments the visit count of the move and decays its action weight.
func (node *GameTree) RecordVisit(move Move) {
	*node.visitCounts.Ptr(move)++
	*node.actionWeights.Ptr(move) *= node.decay
	node.totalVisits++
}

// Child returns the node reached by playing move, or nil if it hasn't been expanded.
func (node *GameTree) Child(move Move) *GameTree {
	return node.children.Get(move)
}

// SetChild installs child as the node reached by move. It panics if the move already has a child.
func (node *GameTree) SetChild(move Move, child *GameTree) {
	ptr := node.children.Ptr(move)
	if *ptr != nil {
		exceptions.Panicf("GameTree.SetChild(%s) at move #%d: child already exists", move, node.state.MovesPlayed())
	}
	if child == nil {
		exceptions.Panicf("GameTree.SetChild(%s) with a nil child", move)
	}
	*ptr = child
	node.numChildren++
}

// Width of the board.
func (node *GameTree) Width() int { return node.state.Width() }

// Height of the board.
func (node *GameTree) Height() int { return node.state.Height() }

// State returns the position of the node. It must not be modified: Clone it first.
func (node *GameTree) State() *Board { return node.state }

// Evaluation returns the evaluation of the position.
func (node *GameTree) Evaluation() *ai.Evaluation { return node.evaluation }

// Parent returns the parent node, or nil for the root.
func (node *GameTree) Parent() *GameTree { return node.parent }

// Visits returns how many times the move was selected at this node.
func (node *GameTree) Visits(move Move) int { return node.visitCounts.Get(move) }

// ActionWeight returns the current (decayed) weight of the move.
func (node *GameTree) ActionWeight(move Move) float32 { return node.actionWeights.Get(move) }

// IsLegal returns whether the move is legal at the node's position.
func (node *GameTree) IsLegal(move Move) bool { return node.legal.Get(move) }

// TotalVisits returns the sum of the visit counts of all moves.
func (node *GameTree) TotalVisits() int { return node.totalVisits }

// NumChildren returns the number of expanded children.
func (node *GameTree) NumChildren() int { return node.numChildren }

// IsTerminal returns whether there are no legal moves at the node, that is, the match is over.
func (node *GameTree) IsTerminal() bool { return node.state.IsGameOver() }
