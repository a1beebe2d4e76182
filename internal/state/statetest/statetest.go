// Package statetest provides helper functions to create tests using Go board states.
package statetest

import (
	"strings"

	"github.com/gomlx/exceptions"
	. "github.com/janpfeifer/goZero/internal/state"
)

// FromASCII builds a board from rows of text, the top row first: "X" is a black stone,
// "O" a white stone and "." an empty point. Spaces are ignored.
//
// Stones are set directly, without checking captures, and Black is to play.
func FromASCII(rows ...string) *Board {
	cleaned := make([]string, len(rows))
	for ii, row := range rows {
		cleaned[ii] = strings.ReplaceAll(row, " ", "")
	}
	height := len(cleaned)
	if height == 0 {
		exceptions.Panicf("statetest.FromASCII requires at least one row")
	}
	width := len(cleaned[0])
	b := NewBoard(width, height)
	for rowIdx, row := range cleaned {
		if len(row) != width {
			exceptions.Panicf("row %d (%q) has %d points, expected %d", rowIdx, row, len(row), width)
		}
		y := height - 1 - rowIdx
		for x, r := range row {
			switch r {
			case 'X', 'x':
				b.SetStone(Pos{X: x, Y: y}, BlackStone)
			case 'O', 'o':
				b.SetStone(Pos{X: x, Y: y}, WhiteStone)
			case '.':
			default:
				exceptions.Panicf("invalid point %q in row %q", r, row)
			}
		}
	}
	return b
}
