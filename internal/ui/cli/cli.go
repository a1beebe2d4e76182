// Package cli implements a command-line UI for the game.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/goZero/internal/generics"
	. "github.com/janpfeifer/goZero/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/term"
	"k8s.io/klog/v2"
)

var (
	// ErrParsing is returned by ReadCommand after too many failed attempts to read a move.
	ErrParsing = errors.New("failed to read command 3 times")

	// ErrQuit is returned by ReadCommand if the user asks to quit the match.
	ErrQuit = errors.New("user quit the match")
)

var (
	ansiFilter   = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	quitCommands = generics.SetWith("quit", "exit", "q")
)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len([]rune(ansiFilter.ReplaceAllString(s, "")))
}

// UI for a human playing in the terminal.
type UI struct {
	color, clearScreen bool
	reader             *bufio.Reader
	out                io.Writer
}

// New creates a UI reading from the standard input and printing to the standard output.
func New(color bool, clearScreen bool) *UI {
	return NewWithIO(color, clearScreen, os.Stdin, os.Stdout)
}

// NewWithIO creates a UI reading commands from in and printing to out.
func NewWithIO(color bool, clearScreen bool, in io.Reader, out io.Writer) *UI {
	return &UI{
		color:       color,
		clearScreen: clearScreen,
		reader:      bufio.NewReader(in),
		out:         out,
	}
}

// printCentered prints the block of text centered in the terminal, if the output is a terminal.
func (ui *UI) printCentered(block string) {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	terminalWidth := 0
	if f, ok := ui.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		terminalWidth, _, _ = term.GetSize(int(f.Fd()))
	}
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max((terminalWidth-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			_, _ = fmt.Fprintln(ui.out)
			continue
		}
		_, _ = fmt.Fprintf(ui.out, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

// RunNextMove prints the board, reads the move of the human player and plays it.
// It retries if the user entered an invalid move too many times.
func (ui *UI) RunNextMove(board *Board) error {
	for {
		ui.Print(board)
		_, _ = fmt.Fprintln(ui.out)
		move, err := ui.ReadCommand(board)
		if errors.Is(err, ErrParsing) {
			continue
		}
		if err != nil {
			return err
		}
		board.Play(move)
		return nil
	}
}

// Run a match where the human plays both colors, until the match is over.
func (ui *UI) Run(board *Board) error {
	for !board.IsGameOver() {
		if err := ui.RunNextMove(board); err != nil {
			return err
		}
	}
	ui.Print(board)
	ui.PrintWinner(board)
	return nil
}

// PrintWinner prints a banner with the winner and the final scores.
func (ui *UI) PrintWinner(b *Board) {
	black, white := b.AreaScores()
	scores := fmt.Sprintf("Black %d, White %d + %.1f komi", black, white, b.Komi)
	winner := b.Winner()
	var msg string
	if winner == PlayerNone {
		msg = fmt.Sprintf("*** DRAW: %s ***", scores)
	} else {
		msg = fmt.Sprintf("*** %s PLAYER WINS!! (%s) ***", strings.ToUpper(winner.String()), scores)
	}
	_, _ = fmt.Fprintln(ui.out)
	if ui.color {
		style := lipgloss.NewStyle().Padding(1, 2).Bold(true)
		switch winner {
		case Black:
			style = style.Background(lipgloss.Color("0")).Foreground(lipgloss.Color("15"))
		case White:
			style = style.Background(lipgloss.Color("15")).Foreground(lipgloss.Color("0"))
		default:
			style = style.Background(lipgloss.Color("13")).Foreground(lipgloss.Color("0"))
		}
		msg = style.Render(msg)
	}
	ui.printCentered(msg)
	_, _ = fmt.Fprintln(ui.out)
}

// ReadCommand reads a move from the user, like "C3" or "pass". It returns ErrQuit if the user
// types "quit" (or "exit", "q"), and ErrParsing after 3 invalid attempts.
func (ui *UI) ReadCommand(b *Board) (Move, error) {
	// ANSI escape codes for:
	// - \033[30;45;2m: black on magenta (purple-ish), dimmed.
	// - \033[39;49;0m\033[0K: reset colors and clear to the end-of-line.
	const (
		inputAreaColor = "\033[30;45;2m"
		inputAreaReset = "\033[39;49;0m\033[0K"
		inputWidth     = 8
	)

	for range 3 {
		_, _ = fmt.Fprint(ui.out, "    ")
		ui.PrintPlayer(b.ToPlay())
		_, _ = fmt.Fprint(ui.out, " move > ")
		if ui.color {
			// Print the "input area" in purple, and move the cursor back to its beginning.
			_, _ = fmt.Fprintf(ui.out, "%s%s\033[%dD", inputAreaColor, strings.Repeat(" ", inputWidth), inputWidth-1)
		}
		text, err := ui.reader.ReadString('\n')
		if ui.color {
			_, _ = fmt.Fprint(ui.out, inputAreaReset)
		}
		if err != nil && (err != io.EOF || strings.TrimSpace(text) == "") {
			return Move{}, errors.Wrap(err, "failed to read move")
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if quitCommands.Has(strings.ToLower(text)) {
			return Move{}, ErrQuit
		}
		move, err := ParseMove(text)
		if err != nil {
			_, _ = fmt.Fprintf(ui.out, "    * Failed to parse your input %q (%v), use something like \"C3\" or \"pass\".\n", text, err)
			continue
		}
		if !b.IsLegal(move) {
			_, _ = fmt.Fprintf(ui.out, "    * Move %s is not legal.\n", move)
			continue
		}
		return move, nil
	}
	klog.V(1).Infof("too many invalid moves at move #%d", b.MovesPlayed())
	return Move{}, ErrParsing
}

// Print the move number, the board and who is to play.
func (ui *UI) Print(board *Board) {
	if ui.clearScreen {
		_, _ = fmt.Fprint(ui.out, "\033c")
	}
	title := fmt.Sprintf("Move #%d", board.MovesPlayed())
	if lastMove, ok := board.LastMove(); ok {
		title = fmt.Sprintf("%s (last: %s)", title, lastMove)
	}
	if ui.color {
		title = lipgloss.NewStyle().Bold(true).Italic(true).Render(title)
	}
	_, _ = fmt.Fprintf(ui.out, "\n%s\n\n", title)
	ui.PrintBoard(board)
	_, _ = fmt.Fprintf(ui.out, "\nCaptures: Black %d, White %d\n", board.Captures(Black), board.Captures(White))
	if !board.IsGameOver() {
		_, _ = fmt.Fprint(ui.out, "Turn to play: ")
		ui.PrintPlayer(board.ToPlay())
		_, _ = fmt.Fprintln(ui.out)
	}
}

// PrintPlayer prints the name of the player, in its color.
func (ui *UI) PrintPlayer(player Player) {
	name := player.String() + " Player"
	if ui.color {
		name = ui.stoneStyle(player.Stone()).Bold(true).Render(name)
	}
	_, _ = fmt.Fprint(ui.out, name)
}

var boardBackground = lipgloss.Color("178")

func (ui *UI) stoneStyle(c Color) lipgloss.Style {
	style := lipgloss.NewStyle().Background(boardBackground)
	switch c {
	case BlackStone:
		return style.Foreground(lipgloss.Color("0"))
	case WhiteStone:
		return style.Foreground(lipgloss.Color("15"))
	default:
		return style.Foreground(lipgloss.Color("94"))
	}
}

// pointSymbol returns the symbol for the point at pos.
func (ui *UI) pointSymbol(board *Board, pos Pos) string {
	c := board.At(pos.X, pos.Y)
	ko, hasKo := board.Ko()
	if !ui.color {
		if hasKo && ko == pos {
			return "*"
		}
		return string(".XO"[c])
	}
	symbol := "┼"
	if c != Empty {
		symbol = "●"
	} else if hasKo && ko == pos {
		symbol = "◌"
	}
	style := ui.stoneStyle(c)
	if lastMove, ok := board.LastMove(); ok && !lastMove.IsPass() && lastMove.Pos == pos {
		style = style.Underline(true)
	}
	return style.Render(symbol)
}

// PrintBoard prints the board, the top row first, with its coordinates.
func (ui *UI) PrintBoard(board *Board) {
	var sb strings.Builder
	columns := make([]string, board.Width())
	for x := range board.Width() {
		columns[x] = Stone(x, 0).String()[:1]
	}
	header := "   " + strings.Join(columns, " ")
	sb.WriteString(header + "\n")
	for y := board.Height() - 1; y >= 0; y-- {
		points := make([]string, board.Width())
		for x := range board.Width() {
			points[x] = ui.pointSymbol(board, Pos{X: x, Y: y})
		}
		separator := " "
		if ui.color {
			separator = lipgloss.NewStyle().Background(boardBackground).Foreground(lipgloss.Color("94")).Render("─")
		}
		fmt.Fprintf(&sb, "%2d %s %d\n", y+1, strings.Join(points, separator), y+1)
	}
	sb.WriteString(header + "\n")
	ui.printCentered(sb.String())
}
