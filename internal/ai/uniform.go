package ai

import (
	"github.com/janpfeifer/goZero/internal/features"
	. "github.com/janpfeifer/goZero/internal/state"
)

// UniformEvaluator gives the same prior to every legal move, pass included, and a value of 0.
// It is the baseline evaluator, and the policy used by random players.
type UniformEvaluator struct{}

// Uniform is the UniformEvaluator singleton.
var Uniform Evaluator = UniformEvaluator{}

// Evaluate implements Evaluator.
func (UniformEvaluator) Evaluate(f *features.Features) (*Evaluation, error) {
	policy := NewGrid[float32](f.Width, f.Height)
	legal := f.Plane(features.IdLegal)
	for idx, isLegal := range legal {
		if isLegal > 0 {
			policy.Values()[idx] = 1
		}
	}
	policy.Set(PassMove, 1)
	Normalize(policy)
	return &Evaluation{Policy: policy}, nil
}

// String implements Evaluator.
func (UniformEvaluator) String() string { return "uniform" }
