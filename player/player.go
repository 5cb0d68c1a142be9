package player

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"othello/game"

	"github.com/pkg/errors"
)

var (
	ErrInputLength = errors.New("wrong input length")
	ErrInputDigits = errors.New("wrong input")
)

// ParseChoice reads a console move: "s" passes, otherwise two digits give the
// row and the column. Range checks are left to the board.
func ParseChoice(line string) (game.Choice, error) {
	line = strings.TrimSpace(line)
	if line == "s" {
		return game.Skip(), nil
	}

	runes := []rune(line)
	if len(runes) != 2 {
		return game.Choice{}, errors.Wrapf(ErrInputLength, "%q", line)
	}
	for _, r := range runes {
		if r < '0' || r > '9' {
			return game.Choice{}, errors.Wrapf(ErrInputDigits, "%q", line)
		}
	}
	return game.At(int(runes[0]-'0'), int(runes[1]-'0')), nil
}

// Console is a human agent typing moves line by line. Malformed or illegal
// moves are reported on out and asked again.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (c *Console) FindMove(board game.Board) (game.Choice, error) {
	for {
		fmt.Fprintf(c.out, "%s> ", board.Player)
		if !c.scanner.Scan() {
			if err := c.scanner.Err(); err != nil {
				return game.Choice{}, errors.Wrap(err, "failed to read move")
			}
			return game.Choice{}, errors.Wrap(io.ErrUnexpectedEOF, "input closed before the game ended")
		}

		choice, err := ParseChoice(c.scanner.Text())
		if err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}

		probe := board
		if _, err := probe.Update(choice); err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		return choice, nil
	}
}
