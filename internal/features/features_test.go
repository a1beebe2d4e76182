package features_test

import (
	"testing"

	. "github.com/janpfeifer/goZero/internal/features"
	. "github.com/janpfeifer/goZero/internal/state"
	. "github.com/janpfeifer/goZero/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	b := FromASCII(
		". X O",
		"X O .",
		". . .",
	)
	b.SetToPlay(White)
	f := Extract(b)
	require.Equal(t, 3, f.Width)
	require.Equal(t, 3, f.Height)
	assert.Equal(t, White, f.ToPlay)
	assert.True(t, f.PassLegal)

	// Own is White, since White is to play.
	assert.Equal(t, float32(1), f.At(IdOwn, 2, 2))
	assert.Equal(t, float32(1), f.At(IdOwn, 1, 1))
	assert.Equal(t, float32(0), f.At(IdOwn, 1, 2))
	assert.Equal(t, float32(1), f.At(IdOpponent, 1, 2))
	assert.Equal(t, float32(1), f.At(IdEmpty, 0, 0))

	// White stone at C3 has a single liberty (C2).
	assert.Equal(t, float32(1), f.At(IdOwnAtari, 2, 2))
	assert.Equal(t, float32(0), f.At(IdOwnAtari, 1, 1))

	// Black stone at B3 has a single liberty (A3), and so does the one at A2 (A1, A3): no.
	assert.Equal(t, float32(1), f.At(IdOpponentAtari, 1, 2))
	assert.Equal(t, float32(0), f.At(IdOpponentAtari, 0, 1))

	// White playing at A3 captures B3... it is surrounded by black at A2 and B3: capturing B3 makes it legal.
	assert.Equal(t, float32(1), f.At(IdLegal, 0, 2))
	assert.Equal(t, float32(0), f.At(IdLegal, 1, 1), "occupied")

	// C1 is not eyeish for White (B1 is empty).
	assert.Equal(t, float32(0), f.At(IdOwnEyeish, 2, 0))

	flat := f.Flat()
	assert.Len(t, flat, int(NumPlanes)*9)
	for id := range NumPlanes {
		assert.Equal(t, f.Plane(id), flat[int(id)*9:int(id+1)*9], "plane %s", id)
	}
}

func TestExtractEyeAndKo(t *testing.T) {
	b := FromASCII(
		". X . .",
		"X . . .",
	)
	f := Extract(b)
	assert.Equal(t, float32(1), f.At(IdOwnEyeish, 0, 1))
	assert.Equal(t, float32(0), f.At(IdOwnEyeish, 1, 0))
	assert.Equal(t, "OwnEyeish", IdOwnEyeish.String())

	b = FromASCII(
		". X O . .",
		"X O . O .",
		". X O . .",
	)
	require.True(t, b.Play(Stone(2, 1)))
	f = Extract(b)
	assert.Equal(t, float32(1), f.At(IdKo, 1, 1))
	assert.Equal(t, float32(0), f.At(IdLegal, 1, 1))
}

func TestExtractGameOver(t *testing.T) {
	b := NewBoard(2, 2)
	require.True(t, b.Play(PassMove))
	require.True(t, b.Play(PassMove))
	f := Extract(b)
	assert.False(t, f.PassLegal)
	for _, v := range f.Plane(IdLegal) {
		assert.Equal(t, float32(0), v)
	}
}
