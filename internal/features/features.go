// Package features implements the encoding of a board position into feature planes, the input
// of the evaluators.
//
// Each plane holds one float32 per point of the board, in the same order as state.Grid (row
// order), and is expressed from the point of view of the player to move: "own" stones are the
// stones of the player to move.
package features

import (
	"fmt"

	. "github.com/janpfeifer/goZero/internal/state"
	"k8s.io/klog/v2"
)

// PlaneId represents an enum of the feature planes.
type PlaneId uint8

const (
	// IdOwn is 1 where there is a stone of the player to move.
	IdOwn PlaneId = iota

	// IdOpponent is 1 where there is a stone of the opponent.
	IdOpponent

	// IdEmpty is 1 on empty points.
	IdEmpty

	// IdOwnAtari is 1 on the stones of the player to move whose group has a single liberty.
	IdOwnAtari

	// IdOpponentAtari is 1 on the opponent stones whose group has a single liberty.
	IdOpponentAtari

	// IdKo is 1 on the point forbidden by the ko rule.
	IdKo

	// IdLegal is 1 on the points where the player to move can legally place a stone.
	IdLegal

	// IdOwnEyeish is 1 on empty points surrounded (edges included) only by the stones of the
	// player to move: filling them is usually a bad idea.
	IdOwnEyeish

	// NumPlanes defined -- this must always be the last enum.
	NumPlanes
)

// PlaneSetter fills plane (one value per point) for the board b.
type PlaneSetter func(b *Board, plane []float32)

// PlaneSpec includes the feature plane name and the function that computes it.
type PlaneSpec struct {
	Id     PlaneId
	Name   string
	Setter PlaneSetter
}

// PlaneSpecs enumerates in order the planes extracted by Extract.
var PlaneSpecs = [NumPlanes]PlaneSpec{
	{IdOwn, "Own", fStones(false)},
	{IdOpponent, "Opponent", fStones(true)},
	{IdEmpty, "Empty", fEmpty},
	{IdOwnAtari, "OwnAtari", fAtari(false)},
	{IdOpponentAtari, "OpponentAtari", fAtari(true)},
	{IdKo, "Ko", fKo},
	{IdLegal, "Legal", fLegal},
	{IdOwnEyeish, "OwnEyeish", fOwnEyeish},
}

func init() {
	for ii := range PlaneSpecs {
		if PlaneSpecs[ii].Id != PlaneId(ii) {
			klog.Fatalf("features.PlaneSpecs index %d for %s doesn't match constant.",
				ii, PlaneSpecs[ii].Name)
		}
	}
}

// String returns the plane name.
func (id PlaneId) String() string {
	if id >= NumPlanes {
		return fmt.Sprintf("PlaneId(%d)", id)
	}
	return PlaneSpecs[id].Name
}

// Features is the encoding of a board position.
type Features struct {
	Width, Height int
	ToPlay        Player
	MovesPlayed   int
	Komi          float32

	// PassLegal indicates whether passing is legal: it is false only once the match is over.
	PassLegal bool

	// Planes, one per PlaneId, each with Width*Height values.
	Planes [NumPlanes][]float32
}

// Extract the features of the board. It is a pure function of the board, which is not modified.
func Extract(b *Board) *Features {
	numPoints := b.Width() * b.Height()
	f := &Features{
		Width:       b.Width(),
		Height:      b.Height(),
		ToPlay:      b.ToPlay(),
		MovesPlayed: b.MovesPlayed(),
		Komi:        b.Komi,
		PassLegal:   b.IsLegal(PassMove),
	}
	// A single allocation for all planes.
	storage := make([]float32, int(NumPlanes)*numPoints)
	for ii := range PlaneSpecs {
		f.Planes[ii] = storage[ii*numPoints : (ii+1)*numPoints]
		PlaneSpecs[ii].Setter(b, f.Planes[ii])
	}
	return f
}

// NumPoints is the number of points of the board, the length of each plane.
func (f *Features) NumPoints() int {
	return f.Width * f.Height
}

// Plane returns the values of the given plane.
func (f *Features) Plane(id PlaneId) []float32 {
	return f.Planes[id]
}

// At returns the value of plane id at point (x, y).
func (f *Features) At(id PlaneId, x, y int) float32 {
	return f.Planes[id][y*f.Width+x]
}

// Flat returns all planes concatenated in a newly allocated slice.
func (f *Features) Flat() []float32 {
	flat := make([]float32, 0, int(NumPlanes)*f.NumPoints())
	for _, plane := range f.Planes {
		flat = append(flat, plane...)
	}
	return flat
}

// Neighbors calls fn with the index of each of the up-to 4 neighbors of point idx.
func (f *Features) Neighbors(idx int, fn func(nIdx int)) {
	x, y := idx%f.Width, idx/f.Width
	if x > 0 {
		fn(idx - 1)
	}
	if x < f.Width-1 {
		fn(idx + 1)
	}
	if y > 0 {
		fn(idx - f.Width)
	}
	if y < f.Height-1 {
		fn(idx + f.Width)
	}
}

// PrettyPrint outputs the planes in text format, for debugging.
func (f *Features) PrettyPrint() {
	for ii := range PlaneSpecs {
		fmt.Printf("\t%s:\n", PlaneSpecs[ii].Name)
		plane := f.Planes[ii]
		for y := f.Height - 1; y >= 0; y-- {
			fmt.Print("\t\t")
			for x := range f.Width {
				fmt.Printf("%.0f ", plane[y*f.Width+x])
			}
			fmt.Println()
		}
	}
}

func fStones(opponent bool) PlaneSetter {
	return func(b *Board, plane []float32) {
		player := b.ToPlay()
		if opponent {
			player = player.Opponent()
		}
		color := player.Stone()
		forEachPoint(b, func(idx int, pos Pos) {
			if b.At(pos.X, pos.Y) == color {
				plane[idx] = 1
			}
		})
	}
}

func fEmpty(b *Board, plane []float32) {
	forEachPoint(b, func(idx int, pos Pos) {
		if b.At(pos.X, pos.Y) == Empty {
			plane[idx] = 1
		}
	})
}

func fAtari(opponent bool) PlaneSetter {
	return func(b *Board, plane []float32) {
		player := b.ToPlay()
		if opponent {
			player = player.Opponent()
		}
		color := player.Stone()
		forEachPoint(b, func(idx int, pos Pos) {
			if b.At(pos.X, pos.Y) == color && b.Liberties(pos) == 1 {
				plane[idx] = 1
			}
		})
	}
}

func fKo(b *Board, plane []float32) {
	if pos, found := b.Ko(); found {
		plane[pos.Y*b.Width()+pos.X] = 1
	}
}

func fLegal(b *Board, plane []float32) {
	forEachPoint(b, func(idx int, pos Pos) {
		if b.IsLegal(Stone(pos.X, pos.Y)) {
			plane[idx] = 1
		}
	})
}

func fOwnEyeish(b *Board, plane []float32) {
	own := b.ToPlay().Stone()
	forEachPoint(b, func(idx int, pos Pos) {
		if b.At(pos.X, pos.Y) != Empty {
			return
		}
		for _, n := range [4]Pos{{X: pos.X - 1, Y: pos.Y}, {X: pos.X + 1, Y: pos.Y}, {X: pos.X, Y: pos.Y - 1}, {X: pos.X, Y: pos.Y + 1}} {
			if b.OnBoard(n) && b.At(n.X, n.Y) != own {
				return
			}
		}
		plane[idx] = 1
	})
}

func forEachPoint(b *Board, fn func(idx int, pos Pos)) {
	width := b.Width()
	for idx := range width * b.Height() {
		fn(idx, Pos{X: idx % width, Y: idx / width})
	}
}
