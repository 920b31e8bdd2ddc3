package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-relay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-relay/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-relay/internal/protocol"
	"github.com/rocketscienceinc/tictactoe-relay/internal/usecase"
)

type roomManager interface {
	Register(playerID string, conn usecase.Conn)
	Unregister(playerID string)

	CreateRoom(ctx context.Context, playerID string) (*entity.Room, error)
	JoinRoom(ctx context.Context, roomID, playerID string) (*entity.Room, error)
	MakeMove(ctx context.Context, playerID string, cell int) (*entity.Room, error)
	ExitRoom(ctx context.Context, playerID string) error
}

type Server struct {
	logger      *slog.Logger
	roomManager roomManager

	handlers map[string]func(ctx context.Context, playerID string, message *protocol.Message) error
}

func New(logger *slog.Logger, roomManager roomManager) *Server {
	server := &Server{
		logger:      logger,
		roomManager: roomManager,

		handlers: make(map[string]func(context.Context, string, *protocol.Message) error),
	}

	server.handlers[protocol.TypeCreateRoom] = server.handleCreateRoom
	server.handlers[protocol.TypeJoinRoom] = server.handleJoinRoom
	server.handlers[protocol.TypeMakeMove] = server.handleMakeMove
	server.handlers[protocol.TypeExitGame] = server.handleExitGame

	return server
}

// Start - starts WebSocket server, over TLS when a certificate pair is
// configured.
func (that *Server) Start(ctx context.Context, port, certFile, keyFile string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	if certFile != "" && keyFile != "" {
		if err := srv.ListenAndServeTLS(certFile, keyFile); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}

		return nil
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket and serves it
// until the peer goes away.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	if req.Header.Get("Upgrade") != "websocket" {
		http.Error(writer, "not a websocket upgrade", http.StatusBadRequest)
		return
	}

	key := req.Header.Get("Sec-WebSocket-Key")
	acceptKey := pkg.GenerateAcceptKey(key)

	writer.Header().Set("Upgrade", "websocket")
	writer.Header().Set("Connection", "Upgrade")
	writer.Header().Set("Sec-WebSocket-Accept", acceptKey)
	writer.WriteHeader(http.StatusSwitchingProtocols)

	hijacker, ok := writer.(http.Hijacker)
	if !ok {
		log.Error("web server does not support hijacking", "error", http.StatusText(http.StatusInternalServerError))
		return
	}

	netConn, bufrw, err := hijacker.Hijack()
	if err != nil {
		log.Error("failed to hijack connection", "error", err)
		return
	}

	defer netConn.Close()

	playerID := pkg.GenerateNewSessionID()
	conn := &connection{bufrw: bufrw}
	that.roomManager.Register(playerID, conn)

	log = log.With("playerID", playerID)
	log.Info("WebSocket connection established")

	if err = that.handleMessages(ctx, playerID, conn); err != nil {
		log.Debug("connection closed", "reason", err)
	}

	// The read loop exits exactly once per connection, so room cleanup
	// runs exactly once whether the client left politely or not.
	that.handleDisconnect(ctx, playerID)
}

// handleMessages - processes messages from the client until the channel
// breaks.
func (that *Server) handleMessages(ctx context.Context, playerID string, conn *connection) error {
	log := that.logger.With("method", "handleMessages", "playerID", playerID)

	for {
		reqBody, err := conn.readRequest()
		if err != nil {
			return fmt.Errorf("error reading message: %w", err)
		}

		var message protocol.Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Debug("dropping undecodable message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Type]
		if !ok {
			log.Debug("dropping message of unknown type", "type", message.Type)
			continue
		}

		if err = handler(ctx, playerID, &message); err != nil {
			log.Debug("command rejected", "type", message.Type, "error", err)
		}
	}
}

func (that *Server) handleDisconnect(ctx context.Context, playerID string) {
	log := that.logger.With("method", "handleDisconnect", "playerID", playerID)

	if err := that.roomManager.ExitRoom(ctx, playerID); err != nil {
		log.Error("failed to clean up room on disconnect", "error", err)
	}

	that.roomManager.Unregister(playerID)

	log.Info("player disconnected")
}
