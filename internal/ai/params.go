package ai

import (
	"sync"

	"github.com/janpfeifer/goZero/internal/generics"
	"github.com/janpfeifer/goZero/internal/parameters"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// EvaluatorConstructor creates an Evaluator from the params. It should pop (parameters.PopParamOr)
// the keys it uses.
type EvaluatorConstructor func(params parameters.Params) (Evaluator, error)

// DefaultEvaluator is the name of the evaluator used if none is given in the params.
const DefaultEvaluator = "linear"

var (
	muRegistry   sync.Mutex
	constructors = map[string]EvaluatorConstructor{
		"uniform": func(params parameters.Params) (Evaluator, error) {
			delete(params, "uniform")
			return Uniform, nil
		},
	}
)

// RegisterEvaluator makes the evaluator available to NewFromParams under the given key.
// It is usually called from the init() function of the package implementing the evaluator.
func RegisterEvaluator(name string, constructor EvaluatorConstructor) {
	muRegistry.Lock()
	defer muRegistry.Unlock()
	constructors[name] = constructor
}

// NewFromParams creates the evaluator selected by params: either a registered evaluator's key is
// present (e.g. "uniform" or "linear=default"), or the "evaluator=<name>" key names one.
// If neither is given, DefaultEvaluator is used.
func NewFromParams(params parameters.Params) (Evaluator, error) {
	name, err := parameters.PopParamOr(params, "evaluator", "")
	if err != nil {
		return nil, err
	}
	muRegistry.Lock()
	defer muRegistry.Unlock()
	if name == "" {
		for key := range generics.SortedKeys(constructors) {
			if _, found := params[key]; found {
				if name != "" {
					return nil, errors.Errorf("more than one evaluator configured: %q and %q", name, key)
				}
				name = key
			}
		}
	}
	if name == "" {
		name = DefaultEvaluator
	}
	constructor, found := constructors[name]
	if !found {
		return nil, errors.Errorf("unknown evaluator %q, registered evaluators: %v",
			name, generics.SortedKeysSlice(constructors))
	}
	evaluator, err := constructor(params)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create evaluator %q", name)
	}
	if klog.V(1).Enabled() {
		klog.Infof("Evaluator: %s", evaluator)
	}
	return evaluator, nil
}
