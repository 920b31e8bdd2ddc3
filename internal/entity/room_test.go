package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-relay/internal/apperror"
)

func TestNewRoom(t *testing.T) {
	// When: create a new room
	room := NewRoom("abc1234")

	// Then: the room should have an empty board and no players
	require.NotNil(t, room)
	require.Equal(t, "abc1234", room.ID)
	require.Equal(t, [9]string{}, room.Board)
	require.Empty(t, room.Players)
}

func TestRoom_ApplyMove(t *testing.T) {
	t.Run("Writes the mark into an empty cell", func(t *testing.T) {
		// Given: a new room
		room := NewRoom("000")

		// When: a move is applied
		err := room.ApplyMove(PlayerO, 4)

		// Then: the cell holds the mark and nothing else changed
		require.NoError(t, err)
		require.Equal(t, [9]string{4: PlayerO}, room.Board)
	})

	t.Run("Rejects an occupied cell and leaves the board unchanged", func(t *testing.T) {
		// Given: a room with cell 0 taken by O
		room := NewRoom("000")
		require.NoError(t, room.ApplyMove(PlayerO, 0))

		// When: X plays the same cell
		err := room.ApplyMove(PlayerX, 0)

		// Then: ErrCellOccupied is returned and the cell still holds O
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		require.Equal(t, [9]string{0: PlayerO}, room.Board)
	})

	t.Run("Rejects an out-of-range cell", func(t *testing.T) {
		// Given: a new room
		room := NewRoom("000")

		// When: cell indexes outside 0-8 are played
		errHigh := room.ApplyMove(PlayerO, 9)
		errLow := room.ApplyMove(PlayerO, -1)

		// Then: ErrInvalidCell is returned and the board stays empty
		assert.ErrorIs(t, errHigh, apperror.ErrInvalidCell)
		assert.ErrorIs(t, errLow, apperror.ErrInvalidCell)
		assert.Equal(t, [9]string{}, room.Board)
	})

	t.Run("Does not enforce turn order", func(t *testing.T) {
		// Given: a new room
		room := NewRoom("000")

		// When: the same mark plays twice in a row
		require.NoError(t, room.ApplyMove(PlayerO, 0))
		err := room.ApplyMove(PlayerO, 1)

		// Then: both moves are accepted; occupancy is the only check
		require.NoError(t, err)
		require.Equal(t, [9]string{PlayerO, PlayerO}, room.Board)
	})
}

func TestRoom_DetermineResult(t *testing.T) {
	t.Run("Empty board has no result", func(t *testing.T) {
		room := NewRoom("000")

		require.Equal(t, "", room.DetermineResult())
	})

	t.Run("Completed row wins", func(t *testing.T) {
		// Given: O holds the whole top row
		room := NewRoom("000")
		room.Board = [9]string{PlayerO, PlayerO, PlayerO, PlayerX, PlayerX, EmptyCell, EmptyCell, EmptyCell, EmptyCell}

		// Then: O is the result
		require.Equal(t, PlayerO, room.DetermineResult())
	})

	t.Run("Completed column wins", func(t *testing.T) {
		// Given: X holds the left column
		room := NewRoom("000")
		room.Board = [9]string{PlayerX, PlayerO, PlayerO, PlayerX, EmptyCell, EmptyCell, PlayerX, EmptyCell, EmptyCell}

		require.Equal(t, PlayerX, room.DetermineResult())
	})

	t.Run("Completed diagonal wins", func(t *testing.T) {
		// Given: O holds the main diagonal
		room := NewRoom("000")
		room.Board = [9]string{PlayerO, PlayerX, PlayerX, EmptyCell, PlayerO, EmptyCell, EmptyCell, EmptyCell, PlayerO}

		require.Equal(t, PlayerO, room.DetermineResult())
	})

	t.Run("Ongoing game has no result", func(t *testing.T) {
		// Given: a board with moves but no line and empty cells left
		room := NewRoom("000")
		room.Board = [9]string{PlayerO, PlayerX, PlayerO, EmptyCell, PlayerX, EmptyCell, PlayerO, EmptyCell, EmptyCell}

		require.Equal(t, "", room.DetermineResult())
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: a full board where no line is complete
		room := NewRoom("000")
		room.Board = [9]string{PlayerO, PlayerX, PlayerO, PlayerO, PlayerX, PlayerX, PlayerX, PlayerO, PlayerO}

		assert.Equal(t, ResultDraw, room.DetermineResult())
	})

	t.Run("Evaluation is idempotent", func(t *testing.T) {
		// Given: a terminal board
		room := NewRoom("000")
		room.Board = [9]string{PlayerO, PlayerO, PlayerO, PlayerX, PlayerX, EmptyCell, EmptyCell, EmptyCell, EmptyCell}

		// When: the board is evaluated repeatedly
		first := room.DetermineResult()
		second := room.DetermineResult()

		// Then: the result never changes and the board is untouched
		require.Equal(t, first, second)
		require.Equal(t, PlayerO, first)
		require.Equal(t, [9]string{PlayerO, PlayerO, PlayerO, PlayerX, PlayerX, EmptyCell, EmptyCell, EmptyCell, EmptyCell}, room.Board)
	})
}

func TestRoom_RemovePlayer(t *testing.T) {
	// Given: a room with two players
	room := NewRoom("000")
	room.Players = []*Player{
		{ID: "p1", Mark: PlayerO, RoomID: "000"},
		{ID: "p2", Mark: PlayerX, RoomID: "000"},
	}

	// When: the first player is removed
	room.RemovePlayer("p1")

	// Then: only the second player remains, in order
	require.Len(t, room.Players, 1)
	require.Equal(t, "p2", room.Players[0].ID)
	require.False(t, room.IsEmpty())

	// When: the second player is removed too
	room.RemovePlayer("p2")

	// Then: the room is empty
	require.True(t, room.IsEmpty())

	// When: removing an unknown player from an empty room
	room.RemovePlayer("ghost")

	// Then: nothing happens
	assert.True(t, room.IsEmpty())
}
