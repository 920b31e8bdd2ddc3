package protocol

// Inbound message types.
const (
	TypeCreateRoom = "createRoom"
	TypeJoinRoom   = "joinRoom"
	TypeMakeMove   = "makeMove"
	TypeExitGame   = "exitGame"
)

// Outbound message types.
const (
	TypeRoomCreated = "roomCreated"
	TypeStartGame   = "startGame"
	TypeMoveMade    = "moveMade"
	TypeGameEnd     = "gameEnd"
	TypeError       = "error"
)

// Message is the tagged union carried over the socket, discriminated by
// Type. Index is a pointer so cell 0 survives omitempty and a missing
// index is distinguishable from a zero one.
type Message struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomID,omitempty"`
	Symbol  string `json:"symbol,omitempty"`
	Index   *int   `json:"index,omitempty"`
	Result  string `json:"result,omitempty"`
	Message string `json:"message,omitempty"`
}

func NewRoomCreated(roomID string) *Message {
	return &Message{Type: TypeRoomCreated, RoomID: roomID}
}

func NewStartGame(symbol string) *Message {
	return &Message{Type: TypeStartGame, Symbol: symbol}
}

func NewMoveMade(index int, symbol string) *Message {
	return &Message{Type: TypeMoveMade, Index: &index, Symbol: symbol}
}

func NewGameEnd(result string) *Message {
	return &Message{Type: TypeGameEnd, Result: result}
}

func NewError(message string) *Message {
	return &Message{Type: TypeError, Message: message}
}
