package linear

import (
	. "github.com/janpfeifer/goZero/internal/features"
)

// Embedded hand-tuned linear models.

var (
	// Greedy only looks at captures and escaping atari.
	Greedy = (&Evaluator{
		NeighborWeights: [NumPlanes]float32{
			IdOwnAtari:      1.5,
			IdOpponentAtari: 3,
		},
		PointWeights: [NumPlanes]float32{
			IdOwnEyeish: -4,
		},
		PassLogit: -4,
	}).WithName("greedy")

	// Shape adds a preference for playing next to stones and away from own eyes, and a value
	// estimate based on material.
	Shape = (&Evaluator{
		NeighborWeights: [NumPlanes]float32{
			IdOwn:           -0.5,
			IdOpponent:      0.3,
			IdEmpty:         0.2,
			IdOwnAtari:      1.5,
			IdOpponentAtari: 3,
		},
		PointWeights: [NumPlanes]float32{
			IdOwnEyeish: -4,
		},
		PassLogit: -2,
		ValueWeights: [NumPlanes]float32{
			IdOwn:           2,
			IdOpponent:      -2,
			IdOwnAtari:      -1,
			IdOpponentAtari: 1,
		},
		KomiWeight: 1,
	}).WithName("shape")

	// Default is an alias to the current best linear model.
	Default = Shape.Clone().WithName("default")

	// Models lists the models that can be selected by name in NewFromParams.
	Models = []*Evaluator{Default, Greedy, Shape}
)
