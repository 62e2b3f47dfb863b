package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/benbeisheim/easychess-backend/internal/middleware"
	"github.com/benbeisheim/easychess-backend/internal/model"
	"github.com/benbeisheim/easychess-backend/internal/service"
	"github.com/benbeisheim/easychess-backend/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewWebSocketController(gameService *service.GameService, logger *zap.Logger) *WebSocketController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals(middleware.WSGameIDKey).(string)
	playerID, _ := c.Locals(middleware.WSPlayerIDKey).(string)
	log := wsc.logger.With(zap.String("game_id", gameID), zap.String("player_id", playerID))

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warn("failed to register connection", zap.Error(err))
		wsc.sendError(log, gameID, c, err.Error())
		if err := c.Close(); err != nil {
			log.Debug("close error", zap.Error(err))
		}
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug("read error", zap.Error(err))
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug("parse error", zap.Error(err))
			wsc.sendError(log, gameID, c, "malformed message")
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Debug("handle error", zap.Error(err))
			wsc.sendError(log, gameID, c, err.Error())
		}
	}
}

func (wsc *WebSocketController) sendError(log *zap.Logger, gameID string, conn model.Conn, text string) {
	if err := wsc.gameService.SendError(gameID, conn, text); err != nil {
		log.Debug("failed to send error", zap.Error(err))
	}
}

// handleMessage dispatches one client message. State updates reach the
// client through the game's broadcast, not through a reply here.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.Move
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return err
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
