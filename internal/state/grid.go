package state

import (
	"iter"
	"slices"

	"github.com/gomlx/exceptions"
	"golang.org/x/exp/constraints"
)

// Grid holds one value of type T per move of a board geometry: one per point plus one for pass.
//
// It is a flat slice indexed by Index: point (x, y) is at y*width+x and pass is the last element.
// Grid values share the underlying storage (like slices), use Clone for a copy.
type Grid[T any] struct {
	width, height int
	values        []T
}

// NewGrid returns a Grid for the given geometry, with all values set to T's zero value.
func NewGrid[T any](width, height int) Grid[T] {
	if width <= 0 || height <= 0 {
		exceptions.Panicf("invalid grid geometry %dx%d", width, height)
	}
	return Grid[T]{
		width:  width,
		height: height,
		values: make([]T, width*height+1),
	}
}

// Width of the board geometry.
func (g Grid[T]) Width() int { return g.width }

// Height of the board geometry.
func (g Grid[T]) Height() int { return g.height }

// Len is the number of moves, width*height+1.
func (g Grid[T]) Len() int { return len(g.values) }

// SameShape returns whether both grids have the same geometry.
func (g Grid[T]) SameShape(width, height int) bool {
	return g.width == width && g.height == height
}

// Index of the move in the flat representation. It panics if the move is off the board.
func (g Grid[T]) Index(m Move) int {
	if m.IsPass() {
		return g.width * g.height
	}
	if m.Pos.X < 0 || m.Pos.X >= g.width || m.Pos.Y < 0 || m.Pos.Y >= g.height {
		exceptions.Panicf("move %s off the %dx%d board", m, g.width, g.height)
	}
	return m.Pos.Y*g.width + m.Pos.X
}

// MoveAt is the inverse of Index.
func (g Grid[T]) MoveAt(idx int) Move {
	return moveAt(g.width, g.height, idx)
}

func moveAt(width, height, idx int) Move {
	if idx == width*height {
		return PassMove
	}
	return Stone(idx%width, idx/width)
}

// Get value for move.
func (g Grid[T]) Get(m Move) T {
	return g.values[g.Index(m)]
}

// Set value for move.
func (g Grid[T]) Set(m Move, value T) {
	g.values[g.Index(m)] = value
}

// Ptr returns a pointer to the value of the move, to be updated in place.
func (g Grid[T]) Ptr(m Move) *T {
	return &g.values[g.Index(m)]
}

// Fill sets all values to value.
func (g Grid[T]) Fill(value T) {
	for ii := range g.values {
		g.values[ii] = value
	}
}

// Clone returns a copy of the Grid that doesn't share storage.
func (g Grid[T]) Clone() Grid[T] {
	return Grid[T]{width: g.width, height: g.height, values: slices.Clone(g.values)}
}

// Values returns the flat values, indexed by Index. It is not a copy.
func (g Grid[T]) Values() []T {
	return g.values
}

// Moves iterates over all moves of the geometry: the points in row order, then pass.
func (g Grid[T]) Moves() iter.Seq[Move] {
	return AllMoves(g.width, g.height)
}

// All iterates over all moves and their values.
func (g Grid[T]) All() iter.Seq2[Move, T] {
	return func(yield func(Move, T) bool) {
		for idx, value := range g.values {
			if !yield(g.MoveAt(idx), value) {
				return
			}
		}
	}
}

// AllMoves iterates over all moves of a width x height board: the points in row order, then pass.
func AllMoves(width, height int) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		for idx := range width*height + 1 {
			if !yield(moveAt(width, height, idx)) {
				return
			}
		}
	}
}

// Number is any type the numeric Grid helpers accept.
type Number interface {
	constraints.Integer | constraints.Float
}

// Sum of all values of the grid.
func Sum[T Number](g Grid[T]) (sum T) {
	for _, value := range g.values {
		sum += value
	}
	return
}

// Max returns the maximum value in the grid.
func Max[T Number](g Grid[T]) T {
	return slices.Max(g.values)
}

// Normalize scales the values so they sum to 1. A grid summing to 0 is left untouched.
func Normalize[T constraints.Float](g Grid[T]) {
	sum := Sum(g)
	if sum == 0 {
		return
	}
	for ii := range g.values {
		g.values[ii] /= sum
	}
}
