package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-relay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-relay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-relay/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-relay/internal/protocol"
)

// The requester cannot tell a missing room from a full one.
const msgRoomUnavailable = "Room is full or does not exist"

// Conn is one client's outbound channel. Sends are fire and forget: a
// failed send is logged and otherwise ignored, the read loop closing is
// the authoritative disconnect signal.
type Conn interface {
	Send(message *protocol.Message) error
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	DeleteByID(ctx context.Context, id string) error
}

// RoomManager owns the registry of live rooms and runs the protocol state
// machine. One mutex serializes registry and room mutation, so broadcasts
// leave in the order moves were accepted.
type RoomManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo

	mu    sync.Mutex
	rooms map[string]*entity.Room
	conns map[string]Conn
}

func NewRoomManager(logger *slog.Logger, sessionRepo sessionRepo) *RoomManager {
	return &RoomManager{
		logger:      logger,
		sessionRepo: sessionRepo,
		rooms:       make(map[string]*entity.Room),
		conns:       make(map[string]Conn),
	}
}

// Register binds a connection to its player id so broadcasts can reach it.
func (that *RoomManager) Register(playerID string, conn Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.conns[playerID] = conn
}

// Unregister drops the connection binding. Room cleanup is ExitRoom's job.
func (that *RoomManager) Unregister(playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.conns, playerID)
}

// CreateRoom - creates a room with a fresh id, the requester as sole
// player with mark O, and acks it with roomCreated.
func (that *RoomManager) CreateRoom(ctx context.Context, playerID string) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	roomID := pkg.GenerateRoomID()
	for _, exists := that.rooms[roomID]; exists; _, exists = that.rooms[roomID] {
		roomID = pkg.GenerateRoomID()
	}

	player := &entity.Player{ID: playerID, RoomID: roomID, Mark: entity.PlayerO}
	if err := that.sessionRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	room := entity.NewRoom(roomID)
	room.Players = append(room.Players, player)
	that.rooms[roomID] = room

	that.send(playerID, protocol.NewRoomCreated(roomID))

	that.logger.Info("room created", "roomID", roomID)

	return room, nil
}

// JoinRoom - adds the requester as second player with mark X and notifies
// both players with startGame, creator first. A missing or full room gets
// an error message back and leaves all state untouched.
func (that *RoomManager) JoinRoom(ctx context.Context, roomID, playerID string) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		that.send(playerID, protocol.NewError(msgRoomUnavailable))
		return nil, fmt.Errorf("%w: room id %s", apperror.ErrRoomNotFound, roomID)
	}

	if room.IsFull() {
		that.send(playerID, protocol.NewError(msgRoomUnavailable))
		return nil, fmt.Errorf("%w: room id %s", apperror.ErrRoomFull, roomID)
	}

	player := &entity.Player{ID: playerID, RoomID: roomID, Mark: entity.PlayerX}
	if err := that.sessionRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	room.Players = append(room.Players, player)

	for _, p := range room.Players {
		that.send(p.ID, protocol.NewStartGame(p.Mark))
	}

	that.logger.Info("player joined room", "roomID", roomID)

	return room, nil
}

// MakeMove - applies the move and broadcasts moveMade to the whole room,
// then gameEnd when the board is terminal. A move with no session, no live
// room, an out-of-range index or an occupied cell changes nothing and
// sends nothing; the returned sentinel is for the caller's logs only.
func (that *RoomManager) MakeMove(ctx context.Context, playerID string, cell int) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	room, ok := that.rooms[session.RoomID]
	if !ok {
		return nil, fmt.Errorf("%w: room id %s", apperror.ErrRoomNotFound, session.RoomID)
	}

	if err = room.ApplyMove(session.Mark, cell); err != nil {
		return nil, err
	}

	that.broadcast(room, protocol.NewMoveMade(cell, session.Mark))

	// The room is left as-is on a terminal board; only exitGame or a
	// disconnect clears it.
	if result := room.DetermineResult(); result != "" {
		that.broadcast(room, protocol.NewGameEnd(result))
		that.logger.Info("game ended", "roomID", room.ID, "result", result)
	}

	return room, nil
}

// ExitRoom - removes the player from its room and deletes the room once
// it is empty. The remaining player is not notified. Idempotent: exiting
// with no session or no room is a no-op.
func (that *RoomManager) ExitRoom(ctx context.Context, playerID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionRepo.GetByID(ctx, playerID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	if room, ok := that.rooms[session.RoomID]; ok {
		room.RemovePlayer(playerID)

		if room.IsEmpty() {
			delete(that.rooms, room.ID)
			that.logger.Info("room deleted", "roomID", room.ID)
		}
	}

	if err = that.sessionRepo.DeleteByID(ctx, playerID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (that *RoomManager) send(playerID string, message *protocol.Message) {
	conn, ok := that.conns[playerID]
	if !ok {
		that.logger.Warn("connection not found for player", "playerID", playerID)
		return
	}

	if err := conn.Send(message); err != nil {
		that.logger.Error("failed to send message", "playerID", playerID, "error", err)
	}
}

func (that *RoomManager) broadcast(room *entity.Room, message *protocol.Message) {
	for _, player := range room.Players {
		that.send(player.ID, message)
	}
}
