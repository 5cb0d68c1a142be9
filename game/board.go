package game

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

type Player int

const (
	Black Player = iota
	White
)

func (p Player) Next() Player {
	return 1 - p
}

func (p Player) String() string {
	if p == Black {
		return "Black"
	}
	return "White"
}

var (
	ErrOutOfRange  = errors.New("index out of range")
	ErrIllegalMove = errors.New("illegal move")
	ErrIllegalSkip = errors.New("illegal skip: legal moves are available")
)

const (
	Size = 8

	initialPlayerBoard   uint64 = 0x0000000810000000
	initialOpponentBoard uint64 = 0x0000001008000000
)

type Coordinate struct {
	Row int
	Col int
}

// Choice is either a forced pass or a disc placement.
type Choice struct {
	skip bool
	Coordinate
}

func Skip() Choice {
	return Choice{skip: true}
}

func At(row, col int) Choice {
	return Choice{Coordinate: Coordinate{Row: row, Col: col}}
}

func (c Choice) IsSkip() bool {
	return c.skip
}

func (c Choice) String() string {
	if c.skip {
		return "s"
	}
	return fmt.Sprintf("%d%d", c.Row, c.Col)
}

type Outcome int

const (
	Continue Outcome = iota
	Draw
	Win
)

// JudgeResult is produced after every update. Winner is only meaningful for Win.
type JudgeResult struct {
	Outcome Outcome
	Winner  Player
}

func (r JudgeResult) String() string {
	switch r.Outcome {
	case Draw:
		return "Draw"
	case Win:
		return fmt.Sprintf("%s wins", r.Winner)
	default:
		return "Continue"
	}
}

// Board is the authoritative game state. PlayerBoard always holds the discs of
// the side about to move; the two sets are swapped after every update.
// Copying a Board clones it.
type Board struct {
	Turn          int
	Player        Player
	PlayerBoard   uint64
	OpponentBoard uint64
}

// NewBoard returns the standard opening position with Black to move.
func NewBoard() Board {
	return Board{
		Turn:          1,
		Player:        Black,
		PlayerBoard:   initialPlayerBoard,
		OpponentBoard: initialOpponentBoard,
	}
}

// CoordinateToBit maps (row, col) to its single-bit mask at index 63-row*8-col.
func CoordinateToBit(row, col int) uint64 {
	return 1 << uint(63-row*Size-col)
}

// Update applies a choice for the side to move.
func (b *Board) Update(choice Choice) (JudgeResult, error) {
	if choice.IsSkip() {
		if b.LegalMoves() != 0 {
			return JudgeResult{}, ErrIllegalSkip
		}
		b.swap()
		return JudgeResult{Outcome: Continue}, nil
	}

	row, col := choice.Row, choice.Col
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return JudgeResult{}, errors.Wrapf(ErrOutOfRange, "coordinate %d%d", row, col)
	}
	put := CoordinateToBit(row, col)
	if b.LegalMoves()&put == 0 {
		return JudgeResult{}, errors.Wrapf(ErrIllegalMove, "coordinate %d%d", row, col)
	}

	b.reverse(put)
	b.swap()

	if !b.IsFinished() {
		return JudgeResult{Outcome: Continue}, nil
	}
	black, white := b.Score()
	switch {
	case black > white:
		return JudgeResult{Outcome: Win, Winner: Black}, nil
	case white > black:
		return JudgeResult{Outcome: Win, Winner: White}, nil
	default:
		return JudgeResult{Outcome: Draw}, nil
	}
}

func (b *Board) swap() {
	b.PlayerBoard, b.OpponentBoard = b.OpponentBoard, b.PlayerBoard
	b.Player = b.Player.Next()
	b.Turn++
}

// LegalMoves returns the set of cells the mover may play.
func (b Board) LegalMoves() uint64 {
	return legalBoard(b.PlayerBoard, b.OpponentBoard)
}

func (b Board) opponentLegalMoves() uint64 {
	return legalBoard(b.OpponentBoard, b.PlayerBoard)
}

// IsSkip reports whether the mover must pass.
func (b Board) IsSkip() bool {
	return b.LegalMoves() == 0 && b.opponentLegalMoves() != 0
}

func (b Board) IsFinished() bool {
	return b.LegalMoves() == 0 && b.opponentLegalMoves() == 0
}

// Discs returns the disc counts of the mover and the opponent.
func (b Board) Discs() (player, opponent int) {
	return bits.OnesCount64(b.PlayerBoard), bits.OnesCount64(b.OpponentBoard)
}

// Score returns the disc counts of Black and White.
func (b Board) Score() (black, white int) {
	player, opponent := b.Discs()
	if b.Player == Black {
		return player, opponent
	}
	return opponent, player
}

// Choices lists the legal placements in row-major order.
func (b Board) Choices() []Choice {
	legal := b.LegalMoves()
	choices := make([]Choice, 0, bits.OnesCount64(legal))
	for k := 0; k < Size*Size; k++ {
		if legal&(1<<uint(63-k)) != 0 {
			choices = append(choices, At(k/Size, k%Size))
		}
	}
	return choices
}

// Owner reports the owner of a cell; ok is false for an empty cell.
func (b Board) Owner(row, col int) (owner Player, ok bool) {
	bit := CoordinateToBit(row, col)
	switch {
	case b.PlayerBoard&bit != 0:
		return b.Player, true
	case b.OpponentBoard&bit != 0:
		return b.Player.Next(), true
	default:
		return 0, false
	}
}

func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("  01234567\n")
	for row := 0; row < Size; row++ {
		fmt.Fprintf(&sb, "%d ", row)
		for col := 0; col < Size; col++ {
			owner, ok := b.Owner(row, col)
			switch {
			case !ok:
				sb.WriteByte('.')
			case owner == Black:
				sb.WriteByte('x')
			default:
				sb.WriteByte('o')
			}
		}
		sb.WriteByte('\n')
	}
	black, white := b.Score()
	fmt.Fprintf(&sb, "turn %d, %s to move, black %d, white %d\n", b.Turn, b.Player, black, white)
	return sb.String()
}
