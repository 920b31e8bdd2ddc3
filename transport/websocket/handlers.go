package websocket

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-relay/internal/protocol"
)

func (that *Server) handleCreateRoom(ctx context.Context, playerID string, _ *protocol.Message) error {
	log := that.logger.With("method", "handleCreateRoom", "playerID", playerID)

	room, err := that.roomManager.CreateRoom(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	log.Info("room created for player", "roomID", room.ID)

	return nil
}

func (that *Server) handleJoinRoom(ctx context.Context, playerID string, message *protocol.Message) error {
	log := that.logger.With("method", "handleJoinRoom", "playerID", playerID)

	// A rejected join already produced the error message for the
	// requester; nothing more to send from here.
	room, err := that.roomManager.JoinRoom(ctx, message.RoomID, playerID)
	if err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	log.Info("player joined room", "roomID", room.ID)

	return nil
}

func (that *Server) handleMakeMove(ctx context.Context, playerID string, message *protocol.Message) error {
	log := that.logger.With("method", "handleMakeMove", "playerID", playerID)

	if message.Index == nil {
		log.Debug("dropping move without index")
		return nil
	}

	// Rejected moves are dropped without a response by design; the
	// sentinel only feeds the debug log.
	if _, err := that.roomManager.MakeMove(ctx, playerID, *message.Index); err != nil {
		return fmt.Errorf("move dropped: %w", err)
	}

	return nil
}

func (that *Server) handleExitGame(ctx context.Context, playerID string, _ *protocol.Message) error {
	log := that.logger.With("method", "handleExitGame", "playerID", playerID)

	if err := that.roomManager.ExitRoom(ctx, playerID); err != nil {
		return fmt.Errorf("failed to exit room: %w", err)
	}

	log.Info("player left room")

	return nil
}
