package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/benbeisheim/easychess-backend/internal/ws"
)

// Conn is the subset of a websocket connection a Game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections watching a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
	writeMu     sync.Mutex // one writer per connection at a time
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// GameView is the read-only snapshot sent to clients.
type GameView struct {
	ID              string         `json:"id"`
	Board           [8][8]*Piece   `json:"board"`
	Turn            Color          `json:"turn"`
	State           Status         `json:"state"`
	CastlingRights  CastlingRights `json:"castlingRights"`
	EnPassantTarget *Square        `json:"enPassantTarget"`
	LastMove        *AppliedMove   `json:"lastMove"`
	Winner          *Color         `json:"winner"`
	Opponent        Opponent       `json:"opponent"`
	Players         Players        `json:"players"`
}

// The Game owns one Position and serialises every access to it.
type Game struct {
	ID          string
	mu          sync.Mutex
	pos         *Position
	status      Status
	opponent    Opponent
	players     Players
	lastMove    *AppliedMove
	connections *GameConnections
	logger      *zap.Logger
}

func NewGame(id string, opponent Opponent, logger *zap.Logger) *Game {
	return newGameFromPosition(id, opponent, NewPosition(), logger)
}

func newGameFromPosition(id string, opponent Opponent, pos *Position, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Game{
		ID:          id,
		pos:         pos,
		opponent:    opponent,
		connections: NewGameConnections(),
		logger:      logger.With(zap.String("game_id", id)),
	}
	g.players.White.Color = White
	g.players.Black.Color = Black
	if opponent == OpponentAI {
		g.players.Black.ID = aiPlayerID
	}
	g.status = pos.Classify(pos.Turn)
	return g
}

func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.players.colorOf(playerID); ok {
		return c, nil
	}
	for _, c := range []Color{White, Black} {
		seat := g.players.seat(c)
		if seat.ID == "" {
			seat.ID = playerID
			g.logger.Info("player joined", zap.String("player_id", playerID), zap.Stringer("color", c))
			return c, nil
		}
	}
	return White, ErrGameFull
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.players.colorOf(playerID)
	return ok
}

func (g *Game) hasOpenSeat() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

func (g *Game) Board() Board {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.pos.Board
}

func (g *Game) State() Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.status
}

func (g *Game) Turn() Color {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.pos.Turn
}

func (g *Game) LegalDestinations(from Square) []Square {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.pos.LegalDestinations(from)
}

func (g *Game) View() GameView {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.view()
}

func (g *Game) view() GameView {
	v := GameView{
		ID:             g.ID,
		Turn:           g.pos.Turn,
		State:          g.status,
		CastlingRights: g.pos.Castling,
		Opponent:       g.opponent,
		Players:        g.players,
	}
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if piece := g.pos.Board[r][c]; !piece.IsEmpty() {
				v.Board[r][c] = &piece
			}
		}
	}
	if g.pos.EnPassant != nil {
		ep := *g.pos.EnPassant
		v.EnPassantTarget = &ep
	}
	if g.lastMove != nil {
		last := *g.lastMove
		v.LastMove = &last
	}
	if g.status == StatusCheckmate {
		winner := g.pos.Turn.Opponent()
		v.Winner = &winner
	}
	return v
}

// ApplyHumanMove applies from->to for the human side and, in games against
// the computer, the computer's reply. It reports whether the move was
// accepted; a rejected move leaves the game untouched.
func (g *Game) ApplyHumanMove(from, to Square) bool {
	g.mu.Lock()
	err := g.applyHumanMove(from, to)
	g.mu.Unlock()

	if err != nil {
		g.logger.Debug("move rejected", zap.Stringer("from", from), zap.Stringer("to", to), zap.Error(err))
		return false
	}
	g.broadcastState()
	return true
}

// MakeMove is ApplyHumanMove for a seated player, with the rejection reason.
func (g *Game) MakeMove(playerID string, move Move) (GameView, error) {
	g.mu.Lock()
	color, ok := g.players.colorOf(playerID)
	var err error
	switch {
	case !ok:
		err = ErrNotInGame
	case color != g.pos.Turn:
		err = ErrNotYourTurn
	default:
		err = g.applyHumanMove(move.From, move.To)
	}
	view := g.view()
	g.mu.Unlock()

	if err != nil {
		return view, err
	}
	g.broadcastState()
	return view, nil
}

func (g *Game) applyHumanMove(from, to Square) error {
	if g.status.IsTerminal() {
		return ErrGameOver
	}
	if !from.InBounds() || !to.InBounds() {
		return ErrOutOfBounds
	}
	if g.opponent == OpponentAI && g.pos.Turn != White {
		return ErrNotYourTurn
	}
	piece := g.pos.Board.Get(from)
	if piece.IsEmpty() {
		return ErrNoPiece
	}
	if piece.Color != g.pos.Turn {
		return ErrNotYourTurn
	}
	if !g.pos.IsLegal(from, to) {
		return fmt.Errorf("%w: %s to %s", ErrIllegalMove, from, to)
	}

	g.apply(Move{From: from, To: to})

	if g.opponent == OpponentAI && !g.status.IsTerminal() {
		g.playComputer()
	}
	return nil
}

func (g *Game) playComputer() {
	m, ok := g.pos.SelectMove(g.pos.Turn)
	if !ok {
		return
	}
	g.logger.Info("computer move", zap.Stringer("from", m.From), zap.Stringer("to", m.To))
	g.apply(m)
}

func (g *Game) apply(m Move) {
	applied := g.pos.Apply(m)
	g.lastMove = &applied
	g.status = g.pos.Classify(g.pos.Turn)
	g.logger.Debug("move applied",
		zap.Stringer("piece", applied.Piece),
		zap.Stringer("from", m.From),
		zap.Stringer("to", m.To),
		zap.String("state", string(g.status)),
	)
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	open := g.hasOpenSeat()
	g.mu.Unlock()

	if !open && !g.IsPlayerInGame(playerID) {
		return ErrNotInGame
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection and reject the new one
		g.connections.mu.Unlock()
		g.rejectConnection(playerID, conn)
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	g.logger.Info("connection registered", zap.String("player_id", playerID))

	g.broadcastState()
	return nil
}

func (g *Game) rejectConnection(playerID string, conn Conn) {
	log := g.logger.With(zap.String("player_id", playerID))
	err := conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
	)
	if err != nil {
		log.Debug("failed to send close frame", zap.Error(err))
	}
	if err := conn.Close(); err != nil {
		log.Debug("failed to close duplicate connection", zap.Error(err))
	}
}

// UnregisterConnection drops conn only if it is still the player's current connection.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		g.logger.Info("connection unregistered", zap.String("player_id", playerID))
	}
}

// Send writes msg to a single connection. Every write to a connection of
// this game goes through writeMu.
func (g *Game) Send(conn Conn, msg ws.Message) error {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()

	return conn.WriteJSON(msg)
}

// broadcastState sends the current state to every connection. The snapshot
// is taken under writeMu, so clients see states in the order they occurred.
func (g *Game) broadcastState() {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()

	g.mu.Lock()
	view := g.view()
	g.mu.Unlock()

	payload, err := json.Marshal(view)
	if err != nil {
		g.logger.Error("failed to marshal game state", zap.Error(err))
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: json.RawMessage(payload)}

	g.connections.mu.RLock()
	active := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			g.logger.Warn("failed to send state", zap.String("player_id", playerID), zap.Error(err))
			g.UnregisterConnection(playerID, conn)
		}
	}
}
