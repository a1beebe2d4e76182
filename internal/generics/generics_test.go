package generics

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	m := map[int]string{1: "1", 5: "5", 3: "3"}
	// Since the builtin map iterator in Go is deliberately non-deterministic, we
	// run it a bunch of times to show it is stably sorted.
	want := []int{1, 3, 5}
	for range 100 {
		got := slices.Collect(SortedKeys(m))
		if !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	}
	assert.Equal(t, want, SortedKeysSlice(m))
}

func TestSliceMap(t *testing.T) {
	got := SliceMap([]int{1, 2, 3}, func(e int) string { return string(rune('a' + e - 1)) })
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestArgMax(t *testing.T) {
	values := []int{1, 3, 7, 2}
	keepAll := func(int) bool { return true }
	score := func(i int) int { return values[i] }
	rng := rand.New(rand.NewPCG(42, 0))
	assert.Equal(t, 2, ArgMax(len(values), keepAll, score, rng.IntN))
	assert.Equal(t, 1, ArgMax(len(values), func(i int) bool { return values[i] < 5 }, score, rng.IntN))
	assert.Equal(t, -1, ArgMax(len(values), func(int) bool { return false }, score, rng.IntN))

	// Ties are broken uniformly.
	values = []int{5, 1, 5, 5}
	counts := make([]int, len(values))
	for range 3000 {
		counts[ArgMax(len(values), keepAll, score, rng.IntN)]++
	}
	assert.Zero(t, counts[1])
	for _, idx := range []int{0, 2, 3} {
		assert.InDelta(t, 1000, counts[idx], 150, "counts=%v", counts)
	}
}

func TestSet(t *testing.T) {
	// Sets are created empty.
	s := MakeSet[int](10)
	assert.Len(t, s, 0)

	s.Insert(3, 7)
	assert.Len(t, s, 2)
	assert.True(t, s.Has(3))
	assert.False(t, s.Has(5))

	s2 := SetWith(5, 7)
	assert.True(t, s2.Has(5))
	assert.False(t, s2.Has(3))
}
