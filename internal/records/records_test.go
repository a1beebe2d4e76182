package records

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/janpfeifer/goZero/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatch(t *testing.T) {
	board := NewBoard(2, 2)
	moves := []Move{Stone(0, 0), PassMove}
	for _, move := range moves {
		require.True(t, board.Play(move))
	}
	m := NewMatch(3, "mcts", "random", board, moves, 1500*time.Millisecond)
	assert.False(t, m.Finished)
	assert.Equal(t, "None", m.Winner)
	assert.Equal(t, []string{"A1", "pass"}, m.Moves)
	assert.Equal(t, int64(1500), m.DurationMs)

	require.True(t, board.Play(PassMove))
	m = NewMatch(3, "mcts", "random", board, append(moves, PassMove), time.Second)
	assert.True(t, m.Finished)
	assert.Equal(t, "White", m.Winner) // 4 points against 7.5 of komi.
	assert.Equal(t, float32(4-7.5), m.Score)
}

func TestWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.parquet")
	w, err := Create(path)
	require.NoError(t, err)

	board := NewBoard(3, 3)
	var wg sync.WaitGroup
	for ii := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, w.Write(NewMatch(ii, "a", "b", board, nil, 0)))
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, w.NumRows())
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err), "records should only be visible after Close")

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	require.Error(t, w.Write(Match{}))

	matches, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, matches, 10)
	seen := make(map[int32]bool)
	for _, m := range matches {
		seen[m.MatchID] = true
		assert.Equal(t, int32(3), m.Width)
		assert.Equal(t, "a", m.Black)
	}
	assert.Len(t, seen, 10)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.parquet"))
	require.Error(t, err)
}
