// Package ai (Artificial Intelligence) defines the Evaluator interface that AIs for the game
// have to implement, and a few simple implementations.
//
// An evaluator takes the features of a board and returns a policy (a prior probability for each
// move) and a value (how likely the player to move is to win).
package ai

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/janpfeifer/goZero/internal/features"
	. "github.com/janpfeifer/goZero/internal/state"
)

// WinGameScore for the winning side. For the losing side it is -WinGameScore.
// We make these +1 and -1, so it's easy to put a tanh(x) on the output of the model to get a
// value from +1 to -1.
const WinGameScore = float32(1)

// SquashScore converts any score to a value between +WinGameScore and -WinGameScore
// by using then tanh(x) function -- a type of S curve.
func SquashScore(x float32) float32 {
	return math32.Tanh(x) * WinGameScore
}

// Evaluation is the output of an Evaluator for one position.
type Evaluation struct {
	// Policy holds a non-negative weight for every move of the board, pass included.
	// It is normalized to sum 1.
	Policy Grid[float32]

	// Value from the perspective of the player to move: +1 is a sure win, -1 a sure loss.
	Value float32
}

// Evaluator returns an Evaluation for the given features.
//
// Implementations must be safe to call repeatedly, and the ones in this repository are also
// safe for concurrent use.
type Evaluator interface {
	Evaluate(f *features.Features) (*Evaluation, error)
	String() string
}

// RandomMove samples a move with probability proportional to the policy.
//
// It may return illegal moves if the evaluator gave them weight: callers must check for legality.
func (e *Evaluation) RandomMove(rng *rand.Rand) Move {
	values := e.Policy.Values()
	var total float32
	for _, w := range values {
		total += w
	}
	if total <= 0 {
		return PassMove
	}
	target := rng.Float32() * total
	lastPositive := len(values) - 1
	for idx, w := range values {
		if w <= 0 {
			continue
		}
		lastPositive = idx
		if target < w {
			return e.Policy.MoveAt(idx)
		}
		target -= w
	}
	// Rounding errors.
	return e.Policy.MoveAt(lastPositive)
}

// Softmax returns the Softmax of the given logits in a numerically stable way.
func Softmax(logits []float32) (probs []float32) {
	probs = make([]float32, len(logits))
	if len(logits) == 0 {
		return
	}
	var sum float32

	// Subtracting maxValue from all logits keeps the probabilities the same, but makes for
	// smaller exponentials.
	maxValue := logits[0]
	for _, value := range logits[1:] {
		maxValue = max(maxValue, value)
	}
	for ii, value := range logits {
		if math32.IsInf(value, -1) {
			continue
		}
		probs[ii] = math32.Exp(value - maxValue)
		sum += probs[ii]
	}
	if sum == 0 {
		return
	}
	for ii := range probs {
		probs[ii] /= sum
	}
	return
}
