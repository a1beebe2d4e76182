package linear

import (
	"testing"

	"github.com/janpfeifer/goZero/internal/ai"
	"github.com/janpfeifer/goZero/internal/features"
	"github.com/janpfeifer/goZero/internal/parameters"
	. "github.com/janpfeifer/goZero/internal/state"
	. "github.com/janpfeifer/goZero/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy(t *testing.T) {
	b := FromASCII(
		". X .",
		"X O X",
		". . .",
	)
	eval, err := Default.Evaluate(features.Extract(b))
	require.NoError(t, err)
	assert.InDelta(t, 1, Sum(eval.Policy), 1e-5)

	// Illegal moves get no weight.
	assert.Zero(t, eval.Policy.Get(Stone(1, 1)))
	assert.Zero(t, eval.Policy.Get(Stone(0, 1)))

	// Capturing at B1 is the preferred move.
	best, bestWeight := PassMove, float32(-1)
	for m, w := range eval.Policy.All() {
		assert.GreaterOrEqual(t, w, float32(0))
		if w > bestWeight {
			best, bestWeight = m, w
		}
	}
	assert.Equal(t, Stone(1, 0), best)

	// Filling own eye at A3 is worse than passing.
	assert.Less(t, eval.Policy.Get(Stone(0, 2)), eval.Policy.Get(PassMove))
}

func TestValue(t *testing.T) {
	b := FromASCII(
		"X X",
		"X .",
	)
	b.Komi = 0
	eval, err := Default.Evaluate(features.Extract(b))
	require.NoError(t, err)
	assert.Greater(t, eval.Value, float32(0))
	assert.Less(t, eval.Value, ai.WinGameScore)

	b.SetToPlay(White)
	eval, err = Default.Evaluate(features.Extract(b))
	require.NoError(t, err)
	assert.Less(t, eval.Value, float32(0))

	// Komi favors White.
	b = NewBoard(5, 5)
	eval, err = Default.Evaluate(features.Extract(b))
	require.NoError(t, err)
	assert.Less(t, eval.Value, float32(0))
}

func TestEvaluateErrors(t *testing.T) {
	_, err := Default.Evaluate(nil)
	assert.Error(t, err)

	f := features.Extract(NewBoard(3, 3))
	f.Planes[features.IdLegal] = f.Planes[features.IdLegal][:4]
	_, err = Default.Evaluate(f)
	assert.Error(t, err)
}

func TestNewFromParams(t *testing.T) {
	params := parameters.NewFromConfigString("linear=greedy,searches=5")
	evaluator, err := ai.NewFromParams(params)
	require.NoError(t, err)
	assert.Same(t, Greedy, evaluator)
	assert.Equal(t, "linear(greedy)", evaluator.String())
	assert.Equal(t, parameters.Params{"searches": "5"}, params)

	// linear is the default evaluator.
	params = parameters.NewFromConfigString("pass_logit=-10")
	evaluator, err = ai.NewFromParams(params)
	require.NoError(t, err)
	assert.Equal(t, "linear(default)", evaluator.String())
	assert.Equal(t, float32(-10), evaluator.(*Evaluator).PassLogit)
	assert.Equal(t, float32(-2), Default.PassLogit, "Default must not be changed")
	assert.Empty(t, params)

	_, err = ai.NewFromParams(parameters.NewFromConfigString("linear=unknown"))
	assert.Error(t, err)

	assert.Contains(t, Default.AsGoCode(), "features.IdOpponentAtari: 3.0000")
}
