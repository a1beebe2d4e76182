// Package linear implements a pure Go linear evaluator: the policy logit of each point is a
// weighted sum of the feature planes at the point and at its neighbors, and the value is a
// weighted sum of the mean of each plane.
package linear

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/janpfeifer/goZero/internal/ai"
	"github.com/janpfeifer/goZero/internal/features"
	"github.com/janpfeifer/goZero/internal/parameters"
	. "github.com/janpfeifer/goZero/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Evaluator is a linear model on the feature planes. It implements ai.Evaluator.
//
// It holds no state other than the weights, and it is safe for concurrent use.
type Evaluator struct {
	name string

	// PointWeights are applied to the value of each plane at the point being scored.
	PointWeights [features.NumPlanes]float32

	// NeighborWeights are applied to the sum of each plane over the neighbors of the point.
	NeighborWeights [features.NumPlanes]float32

	// PointBias is added to the logit of every point.
	PointBias float32

	// PassLogit is the logit of passing.
	PassLogit float32

	// ValueWeights are applied to the mean of each plane over the board.
	ValueWeights [features.NumPlanes]float32

	// KomiWeight is applied to the komi per point, negative when the player to move is Black.
	KomiWeight float32

	// ValueBias is added to the value logit.
	ValueBias float32
}

// Assert Evaluator implements ai.Evaluator.
var _ ai.Evaluator = (*Evaluator)(nil)

// WithName sets the name of the model, used by String.
func (e *Evaluator) WithName(name string) *Evaluator {
	e.name = name
	return e
}

// Clone returns a copy of the evaluator, that can be changed independently.
func (e *Evaluator) Clone() *Evaluator {
	newE := &Evaluator{}
	*newE = *e
	return newE
}

// String implements ai.Evaluator.
func (e *Evaluator) String() string {
	if e.name == "" {
		return "linear"
	}
	return fmt.Sprintf("linear(%s)", e.name)
}

// Evaluate implements ai.Evaluator.
func (e *Evaluator) Evaluate(f *features.Features) (*ai.Evaluation, error) {
	if f == nil {
		return nil, errors.New("linear.Evaluator.Evaluate: nil features")
	}
	numPoints := f.NumPoints()
	for id, plane := range f.Planes {
		if len(plane) != numPoints {
			return nil, errors.Errorf("linear.Evaluator.Evaluate: plane %s has %d values, expected %d for a %dx%d board",
				features.PlaneId(id), len(plane), numPoints, f.Width, f.Height)
		}
	}

	// Policy: illegal points are masked with -Inf. Passing is always allowed.
	logits := make([]float32, numPoints+1)
	legal := f.Plane(features.IdLegal)
	for idx := range numPoints {
		if legal[idx] == 0 {
			logits[idx] = math32.Inf(-1)
			continue
		}
		logits[idx] = e.pointLogit(f, idx)
	}
	logits[numPoints] = e.PassLogit
	policy := NewGrid[float32](f.Width, f.Height)
	copy(policy.Values(), ai.Softmax(logits))

	return &ai.Evaluation{
		Policy: policy,
		Value:  ai.SquashScore(e.valueLogit(f)),
	}, nil
}

func (e *Evaluator) pointLogit(f *features.Features, idx int) float32 {
	logit := e.PointBias
	for id, plane := range f.Planes {
		logit += e.PointWeights[id] * plane[idx]
		if e.NeighborWeights[id] == 0 {
			continue
		}
		var sum float32
		f.Neighbors(idx, func(nIdx int) {
			sum += plane[nIdx]
		})
		logit += e.NeighborWeights[id] * sum
	}
	return logit
}

func (e *Evaluator) valueLogit(f *features.Features) float32 {
	numPoints := float32(f.NumPoints())
	logit := e.ValueBias
	for id, plane := range f.Planes {
		if e.ValueWeights[id] == 0 {
			continue
		}
		var sum float32
		for _, v := range plane {
			sum += v
		}
		logit += e.ValueWeights[id] * sum / numPoints
	}
	komi := f.Komi / numPoints
	if f.ToPlay == Black {
		komi = -komi
	}
	logit += e.KomiWeight * komi
	return logit
}

// AsGoCode outputs the model as Go code describing the weights for each plane.
func (e *Evaluator) AsGoCode() string {
	var sb strings.Builder
	writeWeights := func(fieldName string, weights *[features.NumPlanes]float32) {
		fmt.Fprintf(&sb, "\t%s: [features.NumPlanes]float32{\n", fieldName)
		for _, spec := range features.PlaneSpecs {
			if weights[spec.Id] != 0 {
				fmt.Fprintf(&sb, "\t\tfeatures.Id%s: %.4f,\n", spec.Name, weights[spec.Id])
			}
		}
		sb.WriteString("\t},\n")
	}
	sb.WriteString("&Evaluator{\n")
	writeWeights("PointWeights", &e.PointWeights)
	writeWeights("NeighborWeights", &e.NeighborWeights)
	fmt.Fprintf(&sb, "\tPointBias: %.4f,\n\tPassLogit: %.4f,\n", e.PointBias, e.PassLogit)
	writeWeights("ValueWeights", &e.ValueWeights)
	fmt.Fprintf(&sb, "\tKomiWeight: %.4f,\n\tValueBias: %.4f,\n}", e.KomiWeight, e.ValueBias)
	return sb.String()
}

// NewFromParams returns the linear model selected by the "linear" key (default "default"), and pops
// the optional "pass_logit" key to override the logit of passing.
func NewFromParams(params parameters.Params) (ai.Evaluator, error) {
	modelName, err := parameters.PopParamOr(params, "linear", "")
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = Default.name
	}
	var selected *Evaluator
	for _, model := range Models {
		if model.name == modelName {
			selected = model
		}
	}
	if selected == nil {
		return nil, errors.Errorf("unknown linear model \"linear=%s\"", modelName)
	}
	if _, found := params["pass_logit"]; found {
		passLogit, err := parameters.PopParamOr(params, "pass_logit", selected.PassLogit)
		if err != nil {
			return nil, err
		}
		selected = selected.Clone()
		selected.PassLogit = passLogit
	}
	klog.V(1).Infof("Linear model %s", selected)
	return selected, nil
}

func init() {
	ai.RegisterEvaluator("linear", NewFromParams)
}
