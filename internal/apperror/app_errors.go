package apperror

import "errors"

var (
	ErrRoomNotFound    = errors.New("room does not exist")
	ErrRoomFull        = errors.New("room is full")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrSessionNotFound = errors.New("session not found")
)
