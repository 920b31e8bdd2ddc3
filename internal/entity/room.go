package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-relay/internal/apperror"
)

const (
	PlayerO = "O"
	PlayerX = "X"

	ResultDraw = "draw"

	EmptyCell = ""

	MaxPlayers = 2
)

// WinCombos - the eight winning lines, checked in a fixed order:
// rows, then columns, then diagonals.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Room holds one game: the board in row-major order and the players in
// join order. The first player always plays O, the second X.
type Room struct {
	ID      string    `json:"id"`
	Board   [9]string `json:"board"`
	Players []*Player `json:"players,omitempty"`
}

func NewRoom(id string) *Room {
	return &Room{
		ID:    id,
		Board: [9]string{},
	}
}

// ApplyMove writes the mark into the cell. Only range and occupancy are
// checked; turn order is not enforced.
func (that *Room) ApplyMove(mark string, cell int) error {
	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = mark

	return nil
}

// DetermineResult - pure function of the board: the winning mark if any
// line is complete, ResultDraw when all cells are filled without one,
// empty string while the game continues.
func (that *Room) DetermineResult() string {
	for _, combo := range WinCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	for _, cell := range that.Board {
		if cell == EmptyCell {
			return ""
		}
	}

	return ResultDraw
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= MaxPlayers
}

func (that *Room) IsEmpty() bool {
	return len(that.Players) == 0
}

func (that *Room) RemovePlayer(playerID string) {
	remaining := make([]*Player, 0, len(that.Players))
	for _, player := range that.Players {
		if player.ID != playerID {
			remaining = append(remaining, player)
		}
	}

	that.Players = remaining
}
