// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/benbeisheim/easychess-backend/internal/model"
	"github.com/benbeisheim/easychess-backend/internal/ws"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
	ErrBadOpponent  = errors.New("unknown opponent")
)

type GameManager struct {
	games  map[string]*model.Game
	mu     sync.RWMutex
	logger *zap.Logger
}

func NewGameManager(logger *zap.Logger) *GameManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameManager{
		games:  make(map[string]*model.Game),
		logger: logger,
	}
}

func (gm *GameManager) CreateGame(gameID string, opponent model.Opponent) (*model.Game, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, ErrGameExists
	}

	game := model.NewGame(gameID, opponent, gm.logger)
	gm.games[gameID] = game
	gm.logger.Info("game created", zap.String("game_id", gameID), zap.String("opponent", string(opponent)))
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.White, err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameView, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return game.View(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.Move) (model.GameView, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) LegalDestinations(gameID string, from model.Square) ([]model.Square, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	if !from.InBounds() {
		return nil, model.ErrOutOfBounds
	}
	return game.LegalDestinations(from), nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

// Send writes msg to conn through the game's connection writer.
func (gm *GameManager) Send(gameID string, conn model.Conn, msg ws.Message) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(conn, msg)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
