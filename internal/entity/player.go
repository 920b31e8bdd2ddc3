package entity

// Player is the per-connection session record: which room the connection
// belongs to and which mark it plays. RoomID and Mark are set on
// createRoom/joinRoom and cleared when the player leaves the room.
type Player struct {
	ID     string `json:"id"`
	Mark   string `json:"mark,omitempty"`
	RoomID string `json:"room_id,omitempty"`
}
