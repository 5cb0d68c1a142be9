package player

import (
	"fmt"
	"io"
	"strings"

	"othello/game"

	"github.com/muesli/termenv"
)

const (
	blackColor = "#f5f5f5"
	whiteColor = "#e0a526"
	legalColor = "#4c8c4a"
)

// Renderer draws boards for a terminal. Colours degrade to plain text when the
// writer is not a colour terminal.
type Renderer struct {
	out *termenv.Output
}

func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, opts...)}
}

// Draw writes the board, the legal cells of the mover and a status line.
func (r *Renderer) Draw(board game.Board, status string) {
	fmt.Fprint(r.out, r.Render(board))
	if status != "" {
		fmt.Fprintln(r.out, status)
	}
}

func (r *Renderer) Render(board game.Board) string {
	legal := board.LegalMoves()

	var sb strings.Builder
	sb.WriteString("  0 1 2 3 4 5 6 7\n")
	for row := 0; row < game.Size; row++ {
		fmt.Fprintf(&sb, "%d", row)
		for col := 0; col < game.Size; col++ {
			sb.WriteByte(' ')
			owner, ok := board.Owner(row, col)
			switch {
			case ok && owner == game.Black:
				sb.WriteString(r.out.String("x").Foreground(r.out.Color(blackColor)).String())
			case ok:
				sb.WriteString(r.out.String("o").Foreground(r.out.Color(whiteColor)).String())
			case legal&game.CoordinateToBit(row, col) != 0:
				sb.WriteString(r.out.String("*").Foreground(r.out.Color(legalColor)).String())
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	black, white := board.Score()
	fmt.Fprintf(&sb, "turn %d, %s to move, black %d, white %d\n", board.Turn, board.Player, black, white)
	return sb.String()
}

// Announce writes the final verdict of a game.
func (r *Renderer) Announce(result game.JudgeResult) {
	switch result.Outcome {
	case game.Draw:
		fmt.Fprintln(r.out, "Draw!")
	case game.Win:
		fmt.Fprintf(r.out, "%s wins!\n", result.Winner)
	}
}
