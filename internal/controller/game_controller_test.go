package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/benbeisheim/easychess-backend/internal/model"
	"github.com/benbeisheim/easychess-backend/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	gs := service.NewGameService(service.NewGameManager(nil), model.OpponentAI)
	app := fiber.New()
	RegisterRoutes(app, NewGameController(gs, nil), NewWebSocketController(gs, nil), "http://localhost:5173")
	return app
}

func do(t *testing.T, app *fiber.App, method, target, player string, body string, out interface{}) int {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if player != "" {
		req.Header.Set("X-Player-ID", player)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode response: %v", method, target, err)
		}
	}
	return resp.StatusCode
}

func createGame(t *testing.T, app *fiber.App, player string) string {
	t.Helper()
	var created struct {
		GameID string `json:"game_id"`
		Color  string `json:"color"`
	}
	if status := do(t, app, http.MethodPost, "/api/game/create", player, "", &created); status != fiber.StatusOK {
		t.Fatalf("create status = %d, want 200", status)
	}
	if created.GameID == "" || created.Color != "white" {
		t.Fatalf("create response = %+v", created)
	}
	return created.GameID
}

func TestPlayerIDRequired(t *testing.T) {
	app := newTestApp(t)
	if status := do(t, app, http.MethodPost, "/api/game/create", "", "", nil); status != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestPlayerIDFromQuery(t *testing.T) {
	app := newTestApp(t)
	if status := do(t, app, http.MethodPost, "/api/game/create?playerId=alice", "", "", nil); status != fiber.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
}

func TestGetGameState(t *testing.T) {
	app := newTestApp(t)
	gameID := createGame(t, app, "alice")

	var view model.GameView
	if status := do(t, app, http.MethodGet, "/api/game/"+gameID, "alice", "", &view); status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if view.State != model.StatusPlaying || view.Turn != model.White {
		t.Errorf("state, turn = %s, %s; want playing, white", view.State, view.Turn)
	}
	if p := view.Board[7][4]; p == nil || *p != model.NewPiece(model.White, model.King) {
		t.Errorf("e1 = %v, want white king", p)
	}
	if view.Board[4][4] != nil {
		t.Errorf("e4 = %v, want empty", view.Board[4][4])
	}

	if status := do(t, app, http.MethodGet, "/api/game/nope", "alice", "", nil); status != fiber.StatusNotFound {
		t.Errorf("unknown game status = %d, want 404", status)
	}
}

func TestMakeMove(t *testing.T) {
	app := newTestApp(t)
	gameID := createGame(t, app, "alice")
	target := "/api/game/" + gameID + "/move"

	var view model.GameView
	body := `{"from":{"row":6,"col":4},"to":{"row":4,"col":4}}`
	if status := do(t, app, http.MethodPost, target, "alice", body, &view); status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if view.Turn != model.White {
		t.Errorf("turn = %s, want white after the computer reply", view.Turn)
	}
	if view.LastMove == nil || view.LastMove.Piece.Color != model.Black {
		t.Errorf("lastMove = %+v, want a black move", view.LastMove)
	}

	tests := []struct {
		name   string
		player string
		body   string
		want   int
	}{
		{"illegal", "alice", `{"from":{"row":6,"col":0},"to":{"row":3,"col":0}}`, fiber.StatusConflict},
		{"empty origin", "alice", `{"from":{"row":4,"col":0},"to":{"row":3,"col":0}}`, fiber.StatusConflict},
		{"off board", "alice", `{"from":{"row":6,"col":0},"to":{"row":-1,"col":0}}`, fiber.StatusBadRequest},
		{"stranger", "mallory", `{"from":{"row":6,"col":0},"to":{"row":5,"col":0}}`, fiber.StatusForbidden},
		{"bad body", "alice", `{"from":`, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp map[string]string
			if status := do(t, app, http.MethodPost, target, tt.player, tt.body, &resp); status != tt.want {
				t.Errorf("status = %d, want %d (%v)", status, tt.want, resp)
			}
			if resp["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestJoinComputerGame(t *testing.T) {
	app := newTestApp(t)
	gameID := createGame(t, app, "alice")

	if status := do(t, app, http.MethodPost, "/api/game/join/"+gameID, "bob", "", nil); status != fiber.StatusConflict {
		t.Errorf("join status = %d, want 409", status)
	}
}

func TestJoinHumanGame(t *testing.T) {
	app := newTestApp(t)
	var created struct {
		GameID string `json:"game_id"`
	}
	do(t, app, http.MethodPost, "/api/game/create?opponent=human", "alice", "", &created)

	var joined struct {
		Color string `json:"color"`
	}
	if status := do(t, app, http.MethodPost, "/api/game/join/"+created.GameID, "bob", "", &joined); status != fiber.StatusOK {
		t.Fatalf("join status = %d, want 200", status)
	}
	if joined.Color != "black" {
		t.Errorf("color = %q, want black", joined.Color)
	}

	if status := do(t, app, http.MethodPost, "/api/game/create?opponent=robot", "alice", "", nil); status != fiber.StatusBadRequest {
		t.Errorf("bad opponent status = %d, want 400", status)
	}
}

func TestLegalDestinations(t *testing.T) {
	app := newTestApp(t)
	gameID := createGame(t, app, "alice")

	var resp struct {
		Destinations []model.Square `json:"destinations"`
	}
	if status := do(t, app, http.MethodGet, "/api/game/"+gameID+"/legal?row=6&col=4", "alice", "", &resp); status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	want := []model.Square{{Row: 4, Col: 4}, {Row: 5, Col: 4}}
	if diff := cmp.Diff(want, resp.Destinations); diff != "" {
		t.Errorf("destinations mismatch (-want +got):\n%s", diff)
	}

	if status := do(t, app, http.MethodGet, "/api/game/"+gameID+"/legal", "alice", "", nil); status != fiber.StatusBadRequest {
		t.Errorf("missing square status = %d, want 400", status)
	}
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	app := newTestApp(t)
	if status := do(t, app, http.MethodGet, "/ws/game/abc", "alice", "", nil); status != fiber.StatusUpgradeRequired {
		t.Errorf("status = %d, want 426", status)
	}
}
