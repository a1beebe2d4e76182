package state

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MoveType discriminates between placing a stone and passing.
type MoveType uint8

const (
	PlayStone MoveType = iota
	Pass
)

// Pos packages the x, y coordinates of a point of the board. (0, 0) is the bottom-left corner.
type Pos struct {
	X, Y int
}

// String returns a text representation of Pos.
func (pos Pos) String() string {
	return fmt.Sprintf("(%d, %d)", pos.X, pos.Y)
}

// Move is either placing a stone at a position of the board, or passing.
//
// Moves are comparable with ==, and can be used as map keys: always build them with
// Stone or PassMove, so the position of a pass is always zero.
type Move struct {
	Type MoveType
	Pos  Pos
}

// PassMove is the only valid representation of a pass.
var PassMove = Move{Type: Pass}

// Stone returns the move that places a stone at (x, y).
func Stone(x, y int) Move {
	return Move{Type: PlayStone, Pos: Pos{x, y}}
}

// IsPass returns whether the move is a pass.
func (m Move) IsPass() bool {
	return m.Type == Pass
}

// columnLetters used to name the columns: "I" is skipped, as usual in Go (the game) notation.
const columnLetters = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// MaxBoardSize is limited by the number of column letters.
const MaxBoardSize = len(columnLetters)

// String returns the move in the usual notation, e.g.: "C3", "pass".
func (m Move) String() string {
	if m.IsPass() {
		return "pass"
	}
	if m.Pos.X < 0 || m.Pos.X >= MaxBoardSize {
		return fmt.Sprintf("invalid%s", m.Pos)
	}
	return fmt.Sprintf("%c%d", columnLetters[m.Pos.X], m.Pos.Y+1)
}

// ParseMove is the inverse of Move.String. It is case-insensitive and ignores surrounding spaces.
func ParseMove(s string) (Move, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "PASS" {
		return PassMove, nil
	}
	if len(s) < 2 {
		return Move{}, errors.Errorf("invalid move %q", s)
	}
	x := strings.IndexByte(columnLetters, s[0])
	if x < 0 {
		return Move{}, errors.Errorf("invalid column %q in move %q", s[0:1], s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return Move{}, errors.Wrapf(err, "invalid row in move %q", s)
	}
	if row < 1 {
		return Move{}, errors.Errorf("invalid row %d in move %q", row, s)
	}
	return Stone(x, row-1), nil
}
