// Package searchers holds what is shared by the search algorithms in its sub-packages: choosing
// the move to play from the policy a search produces.
package searchers

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/janpfeifer/goZero/internal/generics"
	. "github.com/janpfeifer/goZero/internal/state"
)

// SampleMove picks a move from policy, a grid of non-negative weights (e.g. visit counts).
//
// temperature (usually represented as the greek letter τ) is an exponent applied to the weights:
// the move is sampled with probability proportional to weight^(1/τ). If set to zero, it always
// takes the move with the largest weight, ties broken at random.
//
// It returns false if no move has a positive weight.
func SampleMove(policy Grid[float32], temperature float32, rng *rand.Rand) (Move, bool) {
	values := policy.Values()
	if temperature <= 0 {
		best := generics.ArgMax(len(values),
			func(idx int) bool { return values[idx] > 0 },
			func(idx int) float32 { return values[idx] },
			rng.IntN)
		if best < 0 {
			return Move{}, false
		}
		return policy.MoveAt(best), true
	}

	probs := make([]float32, len(values))
	var sum float32
	for idx, w := range values {
		if w <= 0 {
			continue
		}
		if temperature == 1 {
			probs[idx] = w
		} else {
			probs[idx] = math32.Pow(w, 1/temperature)
		}
		sum += probs[idx]
	}
	if sum <= 0 {
		return Move{}, false
	}
	r := rng.Float32() * sum
	lastIdx := -1
	for idx, p := range probs {
		if p <= 0 {
			continue
		}
		lastIdx = idx
		if r < p {
			return policy.MoveAt(idx), true
		}
		r -= p
	}
	// Due to rounding errors we may get here, in this case return the last move with weight.
	return policy.MoveAt(lastIdx), true
}
