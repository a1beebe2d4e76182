// Package generics implements generic data structure functions missing from the stdlib.
package generics

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// SliceMap executes the given function sequentially for every element on in, and returns a mapped slice.
func SliceMap[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}

// SortedKeys returns an iterator over the sorted keys of the given map.
//
// It extracts the keys, sort them and then iterate over, so it's convenient but not fast.
func SortedKeys[M interface{ ~map[K]V }, K cmp.Ordered, V any](m M) iter.Seq[K] {
	return slices.Values(SortedKeysSlice(m))
}

// SortedKeysSlice returns the keys of the map, sorted.
func SortedKeysSlice[M interface{ ~map[K]V }, K cmp.Ordered, V any](m M) []K {
	return slices.Sorted(maps.Keys(m))
}

// ArgMax returns the index in [0, n) with the largest score(i), among the indices for which
// keep(i) is true. Ties are broken by calling tieBreak(k), which must return a random number in
// [0, k): each of the tied indices is then equally likely to be selected.
//
// It returns -1 if no index is kept.
func ArgMax[S cmp.Ordered](n int, keep func(i int) bool, score func(i int) S, tieBreak func(k int) int) int {
	best, numTies := -1, 0
	var bestScore S
	for ii := range n {
		if !keep(ii) {
			continue
		}
		s := score(ii)
		switch {
		case best < 0 || s > bestScore:
			best, bestScore, numTies = ii, s, 1
		case s == bestScore:
			// Reservoir sampling among the tied indices.
			numTies++
			if tieBreak(numTies) == 0 {
				best = ii
			}
		}
	}
	return best
}

// Set implements a Set for the key type T.
type Set[T comparable] map[T]struct{}

// MakeSet returns an empty Set of the given type. Size is optional, and if given
// will reserve the expected size.
func MakeSet[T comparable](size ...int) Set[T] {
	if len(size) == 0 {
		return make(Set[T])
	}
	return make(Set[T], size[0])
}

// SetWith creates a Set[T] with the given elements inserted.
func SetWith[T comparable](elements ...T) Set[T] {
	s := MakeSet[T](len(elements))
	for _, element := range elements {
		s.Insert(element)
	}
	return s
}

// Has returns true if Set s has the given key.
func (s Set[T]) Has(key T) bool {
	_, found := s[key]
	return found
}

// Insert keys into set.
func (s Set[T]) Insert(keys ...T) {
	for _, key := range keys {
		s[key] = struct{}{}
	}
}
