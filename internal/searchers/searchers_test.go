package searchers

import (
	"math/rand/v2"
	"testing"

	. "github.com/janpfeifer/goZero/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleMove(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	policy := NewGrid[float32](2, 1)
	_, ok := SampleMove(policy, 0, rng)
	assert.False(t, ok)
	_, ok = SampleMove(policy, 1, rng)
	assert.False(t, ok)

	policy.Set(Stone(0, 0), 3)
	policy.Set(Stone(1, 0), 1)
	for range 10 {
		move, ok := SampleMove(policy, 0, rng)
		require.True(t, ok)
		assert.Equal(t, Stone(0, 0), move)
	}

	const numSamples = 10_000
	count := func(temperature float32) float64 {
		n := 0
		for range numSamples {
			move, ok := SampleMove(policy, temperature, rng)
			require.True(t, ok)
			require.NotEqual(t, PassMove, move)
			if move == Stone(0, 0) {
				n++
			}
		}
		return float64(n) / numSamples
	}
	assert.InDelta(t, 0.75, count(1), 0.03)
	// With τ=0.5 the weights are squared: 9/(9+1).
	assert.InDelta(t, 0.9, count(0.5), 0.03)
}
