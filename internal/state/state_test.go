package state_test

import (
	"fmt"
	"testing"

	. "github.com/janpfeifer/goZero/internal/state"
	. "github.com/janpfeifer/goZero/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Printf

func TestMoveString(t *testing.T) {
	for _, test := range []struct {
		move Move
		text string
	}{
		{Stone(0, 0), "A1"},
		{Stone(2, 3), "C4"},
		{Stone(8, 0), "J1"}, // "I" is skipped.
		{PassMove, "pass"},
	} {
		assert.Equal(t, test.text, test.move.String())
		parsed, err := ParseMove(test.text)
		require.NoError(t, err)
		assert.Equal(t, test.move, parsed)
	}
	_, err := ParseMove("I3")
	assert.Error(t, err)
	_, err = ParseMove("c0")
	assert.Error(t, err)
	m, err := ParseMove(" d4 ")
	require.NoError(t, err)
	assert.Equal(t, Stone(3, 3), m)
}

func TestGrid(t *testing.T) {
	g := NewGrid[float32](3, 2)
	require.Equal(t, 7, g.Len())
	assert.Equal(t, 6, g.Index(PassMove))
	assert.Equal(t, 5, g.Index(Stone(2, 1)))

	// Index and MoveAt are inverses of each other, and Moves enumerates in index order.
	idx := 0
	for m := range g.Moves() {
		assert.Equal(t, idx, g.Index(m))
		assert.Equal(t, m, g.MoveAt(idx))
		idx++
	}
	assert.Equal(t, g.Len(), idx)

	g.Set(Stone(1, 1), 3)
	*g.Ptr(PassMove) += 1
	assert.Equal(t, float32(3), g.Get(Stone(1, 1)))
	assert.Equal(t, float32(4), Sum(g))
	assert.Equal(t, float32(3), Max(g))

	c := g.Clone()
	Normalize(c)
	assert.InDelta(t, 0.75, c.Get(Stone(1, 1)), 1e-6)
	assert.Equal(t, float32(3), g.Get(Stone(1, 1)), "Clone must not share storage")

	assert.Panics(t, func() { g.Get(Stone(3, 0)) })
}

func TestCaptureAndSuicide(t *testing.T) {
	b := FromASCII(
		". X .",
		"X O X",
		". . .",
	)
	// Black captures the white stone at B2 by playing B1.
	require.True(t, b.Play(Stone(1, 0)))
	assert.Equal(t, Empty, b.At(1, 1))
	assert.Equal(t, 1, b.Captures(Black))
	assert.Equal(t, White, b.ToPlay())

	// White playing at B2 now is suicide.
	assert.False(t, b.IsLegal(Stone(1, 1)))
	assert.False(t, b.Play(Stone(1, 1)))
	assert.Equal(t, 1, b.MovesPlayed(), "illegal moves must leave the board untouched")

	// Occupied point.
	assert.False(t, b.IsLegal(Stone(0, 1)))
	// Off the board.
	assert.False(t, b.IsLegal(Stone(5, 5)))
}

func TestSuicideThatCapturesIsLegal(t *testing.T) {
	b := FromASCII(
		". O .",
		"O . .",
		". . .",
	)
	// Black at A3 would have no liberties and captures nothing.
	assert.False(t, b.IsLegal(Stone(0, 2)))

	b = FromASCII(
		". O X",
		"O X .",
		"X . .",
	)
	// Black at A3 has no liberties of its own, but it captures both white stones.
	require.True(t, b.Play(Stone(0, 2)))
	assert.Equal(t, Empty, b.At(1, 2))
	assert.Equal(t, Empty, b.At(0, 1))
	assert.Equal(t, 2, b.Captures(Black))

	b = FromASCII(
		"X O .",
		". X O",
		". . .",
	)
	b.SetToPlay(White)
	// White at A2 captures the black stone at A3.
	require.True(t, b.Play(Stone(0, 1)))
	assert.Equal(t, Empty, b.At(0, 2))
	assert.Equal(t, 1, b.Captures(White))
	_, found := b.Ko()
	assert.False(t, found)
}

func TestKo(t *testing.T) {
	b := FromASCII(
		". X O . .",
		"X O . O .",
		". X O . .",
	)
	// Black captures at C2, taking the white stone at B2.
	require.True(t, b.Play(Stone(2, 1)))
	assert.Equal(t, Empty, b.At(1, 1))
	koPos, found := b.Ko()
	require.True(t, found)
	assert.Equal(t, Pos{1, 1}, koPos)

	// White can't retake immediately.
	assert.False(t, b.IsLegal(Stone(1, 1)))

	// After an exchange elsewhere the ko can be retaken.
	require.True(t, b.Play(Stone(4, 0)))
	_, found = b.Ko()
	assert.False(t, found)
	require.True(t, b.Play(Stone(4, 2)))
	require.True(t, b.Play(Stone(1, 1)))
	assert.Equal(t, Empty, b.At(2, 1))
}

func TestGameOverAndScore(t *testing.T) {
	b := FromASCII(
		". X O .",
		". X O .",
		". X O .",
	)
	b.Komi = 0.5
	black, white := b.AreaScores()
	assert.Equal(t, 6, black)
	assert.Equal(t, 6, white)
	assert.Equal(t, float32(-0.5), b.Score())
	assert.Equal(t, White, b.Winner())

	require.True(t, b.Play(PassMove))
	assert.False(t, b.IsGameOver())
	require.True(t, b.Play(PassMove))
	assert.True(t, b.IsGameOver())
	assert.Empty(t, b.LegalMoves())
	assert.False(t, b.Play(PassMove))

	// Tie with integral komi.
	b.Komi = 0
	assert.Equal(t, PlayerNone, b.Winner())

	// MaxMoves ends the match.
	b = NewBoard(3, 3)
	b.MaxMoves = 1
	require.True(t, b.Play(Stone(1, 1)))
	assert.True(t, b.IsGameOver())
}

func TestSingleSquareBoard(t *testing.T) {
	b := NewBoard(1, 1)
	// Placing a stone on an empty 1x1 board is suicide: only pass is legal.
	assert.Equal(t, []Move{PassMove}, b.LegalMoves())
}

func TestClone(t *testing.T) {
	b := NewBoard(5, 5)
	require.True(t, b.Play(Stone(2, 2)))
	c := b.Clone()
	require.True(t, c.Play(Stone(1, 1)))
	assert.Equal(t, Empty, b.At(1, 1))
	assert.Equal(t, WhiteStone, c.At(1, 1))
	assert.Equal(t, 1, b.MovesPlayed())
	assert.Equal(t, 2, c.MovesPlayed())
	fmt.Println(c)
}
