// Package state implements the game state of Go (the board game): the board, the rules of what
// is a legal move, captures, ko and the final area scoring.
//
// Board is compact and cheap to clone, since search algorithms clone it for every new position
// they explore.
package state

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/exceptions"
)

// Player is either Black (who plays first) or White.
type Player uint8

const (
	Black Player = iota
	White

	// PlayerNone represents no player, e.g. the winner of a tied match.
	PlayerNone
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	return 1 - p
}

// String implements fmt.Stringer.
func (p Player) String() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "None"
	}
}

// Stone returns the color of the player's stones.
func (p Player) Stone() Color {
	return Color(p + 1)
}

// Color of a point of the board.
type Color uint8

const (
	Empty Color = iota
	BlackStone
	WhiteStone
)

// Owner returns the player owning the stone, or PlayerNone for an Empty point.
func (c Color) Owner() Player {
	if c == Empty {
		return PlayerNone
	}
	return Player(c - 1)
}

// DefaultKomi is the compensation given to White, with a half point to avoid ties.
const DefaultKomi = float32(7.5)

// DefaultMaxMoves after which the match is considered finished: 3 moves per point.
func DefaultMaxMoves(width, height int) int {
	return 3 * width * height
}

// Board is the state of a match. It is mutated in place by Play: use Clone before exploring a move.
type Board struct {
	width, height int
	points        []Color
	toPlay        Player
	movesPlayed   int

	// consecutivePasses ends the match when it reaches 2.
	consecutivePasses int

	// ko is the index of the point where the player to move is not allowed to play, or -1.
	ko int

	captures [2]int
	lastMove Move
	hasLast  bool

	// Komi is added to White's score.
	Komi float32

	// MaxMoves is the number of moves (including passes) after which the match is over.
	MaxMoves int
}

// NewBoard creates an empty board, with Black to play.
func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 || width > MaxBoardSize || height > MaxBoardSize {
		exceptions.Panicf("invalid board size %dx%d, max is %d", width, height, MaxBoardSize)
	}
	return &Board{
		width:    width,
		height:   height,
		points:   make([]Color, width*height),
		toPlay:   Black,
		ko:       -1,
		Komi:     DefaultKomi,
		MaxMoves: DefaultMaxMoves(width, height),
	}
}

// Clone makes a deep copy of the board.
func (b *Board) Clone() *Board {
	newB := &Board{}
	*newB = *b
	newB.points = slices.Clone(b.points)
	return newB
}

// Width of the board.
func (b *Board) Width() int { return b.width }

// Height of the board.
func (b *Board) Height() int { return b.height }

// ToPlay returns the player to move next.
func (b *Board) ToPlay() Player { return b.toPlay }

// SetToPlay changes the player to move. It is meant to set up positions, e.g. in tests.
func (b *Board) SetToPlay(p Player) { b.toPlay = p }

// MovesPlayed is the number of moves played so far, passes included.
func (b *Board) MovesPlayed() int { return b.movesPlayed }

// Captures returns the number of opponent stones captured by the player.
func (b *Board) Captures(p Player) int { return b.captures[p] }

// LastMove played, if any.
func (b *Board) LastMove() (Move, bool) { return b.lastMove, b.hasLast }

// Ko returns the point where the player to move can't play due to the ko rule, if any.
func (b *Board) Ko() (Pos, bool) {
	if b.ko < 0 {
		return Pos{}, false
	}
	return b.posOf(b.ko), true
}

// OnBoard returns whether pos is within the board.
func (b *Board) OnBoard(pos Pos) bool {
	return pos.X >= 0 && pos.X < b.width && pos.Y >= 0 && pos.Y < b.height
}

// At returns the color of the point at (x, y).
func (b *Board) At(x, y int) Color {
	return b.points[b.index(Pos{x, y})]
}

// SetStone sets the color of the point at pos. It doesn't check for legality or captures,
// and it is meant to set up positions.
func (b *Board) SetStone(pos Pos, c Color) {
	b.points[b.index(pos)] = c
}

func (b *Board) index(pos Pos) int {
	return pos.Y*b.width + pos.X
}

func (b *Board) posOf(idx int) Pos {
	return Pos{idx % b.width, idx / b.width}
}

// neighbors yields the indices of the up-to 4 neighbors of the point idx.
func (b *Board) neighbors(idx int, fn func(nIdx int)) {
	x, y := idx%b.width, idx/b.width
	if x > 0 {
		fn(idx - 1)
	}
	if x < b.width-1 {
		fn(idx + 1)
	}
	if y > 0 {
		fn(idx - b.width)
	}
	if y < b.height-1 {
		fn(idx + b.width)
	}
}

// IsGameOver returns whether the match finished, either by two consecutive passes or by
// reaching MaxMoves.
func (b *Board) IsGameOver() bool {
	return b.consecutivePasses >= 2 || (b.MaxMoves > 0 && b.movesPlayed >= b.MaxMoves)
}

// IsLegal returns whether the move can be played by the player to move. It doesn't change the board.
func (b *Board) IsLegal(m Move) bool {
	if b.IsGameOver() {
		return false
	}
	if m.IsPass() {
		return true
	}
	if !b.OnBoard(m.Pos) {
		return false
	}
	idx := b.index(m.Pos)
	if b.points[idx] != Empty || idx == b.ko {
		return false
	}
	return !b.isSuicide(idx, b.toPlay.Stone())
}

// isSuicide returns whether placing a stone of color at the empty point idx would leave
// its group without liberties, after capturing.
func (b *Board) isSuicide(idx int, color Color) bool {
	suicide := true
	b.neighbors(idx, func(nIdx int) {
		if !suicide {
			return
		}
		switch b.points[nIdx] {
		case Empty:
			suicide = false
		case color:
			// idx is one of the group's liberties, it needs another one.
			if b.liberties(nIdx, 2) > 1 {
				suicide = false
			}
		default:
			// Capturing an opponent group gives a liberty.
			if b.liberties(nIdx, 2) == 1 {
				suicide = false
			}
		}
	})
	return suicide
}

// LegalMoves returns all legal moves, pass included if the match is not over.
func (b *Board) LegalMoves() []Move {
	var moves []Move
	for m := range AllMoves(b.width, b.height) {
		if b.IsLegal(m) {
			moves = append(moves, m)
		}
	}
	return moves
}

// Play the move for the player to move. It returns false, and leaves the board untouched, if
// the move is not legal.
func (b *Board) Play(m Move) bool {
	if !b.IsLegal(m) {
		return false
	}
	b.movesPlayed++
	b.lastMove, b.hasLast = m, true
	player := b.toPlay
	b.toPlay = player.Opponent()
	if m.IsPass() {
		b.consecutivePasses++
		b.ko = -1
		return true
	}
	b.consecutivePasses = 0
	b.ko = -1

	idx := b.index(m.Pos)
	color := player.Stone()
	b.points[idx] = color
	captured, lastCaptured := 0, -1
	b.neighbors(idx, func(nIdx int) {
		c := b.points[nIdx]
		if c == Empty || c == color {
			return
		}
		if b.liberties(nIdx, 1) == 0 {
			n := b.removeGroup(nIdx)
			captured += n
			lastCaptured = nIdx
		}
	})
	b.captures[player] += captured

	// Simple ko: a single stone captured by a lone stone left with a single liberty.
	if captured == 1 && b.groupSize(idx) == 1 && b.liberties(idx, 2) == 1 {
		b.ko = lastCaptured
	}
	return true
}

// floodGroup visits all stones of the group containing idx, and calls fn for each of them.
// fn returns false to stop the visit.
func (b *Board) floodGroup(idx int, fn func(stoneIdx int) bool) {
	color := b.points[idx]
	visited := make([]bool, len(b.points))
	stack := []int{idx}
	visited[idx] = true
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(current) {
			return
		}
		b.neighbors(current, func(nIdx int) {
			if !visited[nIdx] && b.points[nIdx] == color {
				visited[nIdx] = true
				stack = append(stack, nIdx)
			}
		})
	}
}

// liberties counts the distinct liberties of the group at idx, stopping early once it reaches limit.
func (b *Board) liberties(idx int, limit int) int {
	seen := make(map[int]struct{}, limit)
	b.floodGroup(idx, func(stoneIdx int) bool {
		b.neighbors(stoneIdx, func(nIdx int) {
			if b.points[nIdx] == Empty {
				seen[nIdx] = struct{}{}
			}
		})
		return len(seen) < limit
	})
	return len(seen)
}

// Liberties returns the number of liberties of the group of stones at pos, or 0 if the point is empty.
func (b *Board) Liberties(pos Pos) int {
	idx := b.index(pos)
	if b.points[idx] == Empty {
		return 0
	}
	return b.liberties(idx, len(b.points))
}

func (b *Board) groupSize(idx int) (size int) {
	b.floodGroup(idx, func(int) bool {
		size++
		return true
	})
	return
}

func (b *Board) removeGroup(idx int) (removed int) {
	var stones []int
	b.floodGroup(idx, func(stoneIdx int) bool {
		stones = append(stones, stoneIdx)
		return true
	})
	for _, stoneIdx := range stones {
		b.points[stoneIdx] = Empty
	}
	return len(stones)
}

// AreaScores returns the area score of each player: stones on the board plus empty regions
// bordered only by the player's stones. Komi is not included.
func (b *Board) AreaScores() (black, white int) {
	visited := make([]bool, len(b.points))
	for idx, c := range b.points {
		switch c {
		case BlackStone:
			black++
			continue
		case WhiteStone:
			white++
			continue
		}
		if visited[idx] {
			continue
		}
		// Flood fill the empty region, and collect which colors border it.
		size := 0
		var borders [3]bool
		stack := []int{idx}
		visited[idx] = true
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++
			b.neighbors(current, func(nIdx int) {
				nc := b.points[nIdx]
				if nc != Empty {
					borders[nc] = true
					return
				}
				if !visited[nIdx] {
					visited[nIdx] = true
					stack = append(stack, nIdx)
				}
			})
		}
		if borders[BlackStone] && !borders[WhiteStone] {
			black += size
		} else if borders[WhiteStone] && !borders[BlackStone] {
			white += size
		}
	}
	return
}

// Score returns Black's area score minus White's area score and komi.
// Positive values mean Black is winning.
func (b *Board) Score() float32 {
	black, white := b.AreaScores()
	return float32(black-white) - b.Komi
}

// Winner of the match by area scoring -- it is meaningful once the match is over.
// It returns PlayerNone on a tie, only possible with integral komi.
func (b *Board) Winner() Player {
	score := b.Score()
	switch {
	case score > 0:
		return Black
	case score < 0:
		return White
	default:
		return PlayerNone
	}
}

// String returns an ASCII rendering of the board: "X" for Black, "O" for White, top row first.
func (b *Board) String() string {
	var sb strings.Builder
	for y := b.height - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%2d ", y+1)
		for x := range b.width {
			sb.WriteByte(".XO"[b.At(x, y)])
			if x < b.width-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ")
	for x := range b.width {
		sb.WriteByte(columnLetters[x])
		if x < b.width-1 {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}
