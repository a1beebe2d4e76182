package _default

import (
	"testing"

	"github.com/janpfeifer/goZero/internal/parameters"
	"github.com/janpfeifer/goZero/internal/players"
	"github.com/janpfeifer/goZero/internal/searchers/mcts"
	. "github.com/janpfeifer/goZero/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlayer(t *testing.T, module players.Module, config string) players.Player {
	params := parameters.NewFromConfigString(config)
	p, err := module(params)
	require.NoError(t, err)
	require.NoError(t, parameters.CheckAllConsumed(params))
	return p
}

// playMatch plays p0 (Black) against p1 (White), informing each player of the opponent moves.
func playMatch(t *testing.T, board *Board, p0, p1 players.Player) {
	matchPlayers := [2]players.Player{p0, p1}
	for !board.IsGameOver() {
		current := matchPlayers[board.ToPlay()]
		move, err := current.Play(board)
		require.NoError(t, err, "%s failed at move #%d", current, board.MovesPlayed())
		require.Truef(t, board.IsLegal(move), "%s played the illegal move %s at:\n%s", current, move, board)
		opponent := matchPlayers[board.ToPlay().Opponent()]
		require.True(t, board.Play(move))
		require.NoError(t, opponent.Observe(move))
	}
}

func TestRandomPlayer(t *testing.T) {
	p0 := newPlayer(t, NewRandomPlayer, "seed=3")
	p1 := newPlayer(t, NewRandomPlayer, "seed=3")
	board := NewBoard(4, 4)
	for range 5 {
		m0, err := p0.Play(board)
		require.NoError(t, err)
		m1, err := p1.Play(board)
		require.NoError(t, err)
		assert.Equal(t, m0, m1, "same seed should play the same moves")
		require.True(t, board.Play(m0))
	}
	assert.Equal(t, "random", p0.String())

	board = NewBoard(2, 2)
	board.Play(PassMove)
	board.Play(PassMove)
	_, err := p0.Play(board)
	require.Error(t, err)

	_, err = NewRandomPlayer(parameters.NewFromConfigString("seed=-1"))
	require.Error(t, err)
}

func TestMCTSPlayerMatch(t *testing.T) {
	p0 := newPlayer(t, NewMCTSPlayer, "searches=30,seed=1")
	p1 := newPlayer(t, NewRandomPlayer, "seed=7")
	board := NewBoard(3, 3)
	board.MaxMoves = 20
	playMatch(t, board, p0, p1)
	assert.True(t, board.IsGameOver())

	_, err := p0.Play(board)
	require.ErrorIs(t, err, mcts.ErrNoLegalMoves)
}

func TestMCTSPlayerReusesTree(t *testing.T) {
	p := newPlayer(t, NewMCTSPlayer, "searches=20,seed=1,uniform").(*MCTSPlayer)
	assert.Nil(t, p.Engine())
	board := NewBoard(3, 3)
	move, err := p.Play(board)
	require.NoError(t, err)
	engine := p.Engine()
	require.NotNil(t, engine)
	require.True(t, board.Play(move))

	// Opponent move observed.
	opponentMove := board.LegalMoves()[0]
	require.True(t, board.Play(opponentMove))
	require.NoError(t, p.Observe(opponentMove))
	_, err = p.Play(board)
	require.NoError(t, err)
	assert.Same(t, engine, p.Engine())

	// Opponent move not observed: the player catches up by itself.
	board = NewBoard(3, 3)
	p = newPlayer(t, NewMCTSPlayer, "searches=20,seed=1,uniform").(*MCTSPlayer)
	move, err = p.Play(board)
	require.NoError(t, err)
	engine = p.Engine()
	require.True(t, board.Play(move))
	require.True(t, board.Play(PassMove))
	_, err = p.Play(board)
	require.NoError(t, err)
	assert.Same(t, engine, p.Engine())

	// Unrelated position: a new search tree is started.
	_, err = p.Play(NewBoard(3, 3))
	require.NoError(t, err)
	assert.NotSame(t, engine, p.Engine())
}

func TestMCTSPlayerTemperature(t *testing.T) {
	p0 := newPlayer(t, NewMCTSPlayer, "searches=10,seed=1,temperature=1.5,max_rand_moves=6,selector=puct")
	p1 := newPlayer(t, NewMCTSPlayer, "searches=10,seed=2,linear=greedy")
	board := NewBoard(3, 3)
	board.MaxMoves = 12
	playMatch(t, board, p0, p1)

	_, err := NewMCTSPlayer(parameters.NewFromConfigString("temperature=-1"))
	require.Error(t, err)
	_, err = NewMCTSPlayer(parameters.NewFromConfigString("searches=x"))
	require.Error(t, err)
}

func TestFlatPlayer(t *testing.T) {
	p0 := newPlayer(t, NewFlatPlayer, "runs=4,seed=1,uniform")
	p1 := newPlayer(t, NewRandomPlayer, "seed=2")
	board := NewBoard(3, 3)
	board.MaxMoves = 10
	playMatch(t, board, p0, p1)
	assert.Contains(t, p0.String(), "runs=4")

	_, err := p0.Play(board)
	require.Error(t, err)

	_, err = NewFlatPlayer(parameters.NewFromConfigString("runs=0"))
	require.Error(t, err)
}
