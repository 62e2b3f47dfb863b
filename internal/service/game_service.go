package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/benbeisheim/easychess-backend/internal/model"
	"github.com/benbeisheim/easychess-backend/internal/ws"
)

type GameService struct {
	gameManager     *GameManager
	defaultOpponent model.Opponent
}

func NewGameService(gameManager *GameManager, defaultOpponent model.Opponent) *GameService {
	if !defaultOpponent.Valid() {
		defaultOpponent = model.OpponentAI
	}
	return &GameService{
		gameManager:     gameManager,
		defaultOpponent: defaultOpponent,
	}
}

// CreateGame starts a new game with playerID seated as white. An empty
// opponent selects the configured default.
func (gs *GameService) CreateGame(playerID string, opponent model.Opponent) (string, error) {
	if opponent == "" {
		opponent = gs.defaultOpponent
	}
	if !opponent.Valid() {
		return "", fmt.Errorf("%w %q", ErrBadOpponent, opponent)
	}

	gameID := uuid.New().String()
	game, err := gs.gameManager.CreateGame(gameID, opponent)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	if _, err := game.AddPlayer(playerID); err != nil {
		return "", fmt.Errorf("failed to seat creator: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameView, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.Move) (model.GameView, error) {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) LegalDestinations(gameID string, from model.Square) ([]model.Square, error) {
	return gs.gameManager.LegalDestinations(gameID, from)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

// SendError writes an error envelope to conn. Writes to connections of a
// known game are serialised with that game's broadcasts.
func (gs *GameService) SendError(gameID string, conn model.Conn, text string) error {
	msg := ws.ErrorMessage(text)
	err := gs.gameManager.Send(gameID, conn, msg)
	if errors.Is(err, ErrGameNotFound) {
		// no game, so nothing else writes to conn
		return conn.WriteJSON(msg)
	}
	return err
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
