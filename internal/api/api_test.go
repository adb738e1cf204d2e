package api_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/cluegame-go/internal/api"
	"github.com/mcoot/cluegame-go/internal/api/apierr"
	"github.com/mcoot/cluegame-go/internal/api/response"
	"github.com/mcoot/cluegame-go/internal/factory"
	"github.com/mcoot/cluegame-go/internal/model"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp()
	app.MockRandom.QueueString("GAME00000001")

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		LobbyController: app.LobbyController,
		Storage:         app.Storage,
		Events:          app.Events,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, playerID model.PlayerID) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if playerID != 0 {
		req.Header.Set("X-Player-ID", strconv.Itoa(int(playerID)))
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// join registers a player and returns its ID
func (ts *testServer) join(t *testing.T, name string) model.PlayerID {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/lobby/join", map[string]string{"name": name}, 0)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp response.Join
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.PlayerID
}

// startGame seats ann (1, scarlet) and bob (2, mustard) and starts the game.
// The test deal gives ann [lounge, white] and bob [mustard, rope]; the
// killing combination is {dagger, hall, scarlet}.
func (ts *testServer) startGame(t *testing.T) (model.PlayerID, model.PlayerID) {
	t.Helper()

	ann := ts.join(t, "ann")
	bob := ts.join(t, "bob")

	rr := ts.request(http.MethodPost, "/api/v1/lobby/start", nil, ann)
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())
	return ann, bob
}

// moveIntoHall walks ann from the scarlet start into the hall
func (ts *testServer) moveIntoHall(t *testing.T, ann model.PlayerID) {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/game/roll-dice", map[string]any{"dice": []int{2, 2}}, ann)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = ts.request(http.MethodPost, "/api/v1/game/move-pawn", map[string]int{"x": 4, "y": 0}, ann)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()

	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, 0)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","players":0,"isGameStarted":false}`, rr.Body.String())
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	ts.join(t, "ann")
	rr = ts.request(http.MethodGet, "/api/v1/health", nil, 0)
	assert.JSONEq(t, `{"status":"ok","players":1,"isGameStarted":false}`, rr.Body.String())
}

func TestJoinSetsCookie(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/lobby/join", map[string]string{"name": "ann"}, 0)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Join
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, model.PlayerID(1), resp.PlayerID)
	assert.False(t, resp.IsFull)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "playerId", cookies[0].Name)
	assert.Equal(t, "1", cookies[0].Value)
}

func TestCookieIdentifiesPlayer(t *testing.T) {
	ts := newTestServer(t)
	ts.join(t, "ann")
	ts.join(t, "bob")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lobby/start", nil)
	req.AddCookie(&http.Cookie{Name: "playerId", Value: "2"})
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestJoinFullLobby(t *testing.T) {
	ts := newTestServer(t)
	ts.join(t, "ann")
	ts.join(t, "bob")

	rr := ts.request(http.MethodPost, "/api/v1/lobby/join", map[string]string{"name": "cat"}, 0)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp response.Join
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.IsFull)

	rr = ts.request(http.MethodPost, "/api/v1/lobby/join", map[string]string{"name": "dan"}, 0)
	assert.Equal(t, http.StatusNotAcceptable, rr.Code)
	apiErr := decodeError(t, rr)
	assert.Equal(t, apierr.CodeLobbyFull, apiErr.Code)
	assert.Equal(t, "Room is Full", apiErr.Message)
}

func TestJoinInvalidName(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/lobby/join", map[string]string{"name": "   "}, 0)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidName, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/lobby/join", "not an object", 0)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)
}

func TestLobbyStatus(t *testing.T) {
	ts := newTestServer(t)
	ts.join(t, "ann")

	rr := ts.request(http.MethodGet, "/api/v1/lobby", nil, 0)
	require.Equal(t, http.StatusOK, rr.Code)

	var status model.LobbyStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	require.Len(t, status.Members, 1)
	assert.Equal(t, "ann", status.Members[0].Name)
	assert.Equal(t, model.Character("scarlet"), status.Members[0].Character)
	assert.Equal(t, 3, status.MaxPlayers)
	assert.False(t, status.IsGameStarted)
}

func TestIdentityRequired(t *testing.T) {
	ts := newTestServer(t)
	ts.join(t, "ann")

	tests := []struct {
		name     string
		playerID model.PlayerID
	}{
		{"no identity", 0},
		{"unknown player", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodGet, "/api/v1/game/state", nil, tt.playerID)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, apierr.CodeUnauthorized, decodeError(t, rr).Code)
		})
	}
}

func TestStartRequiresEnoughPlayers(t *testing.T) {
	ts := newTestServer(t)
	ann := ts.join(t, "ann")

	rr := ts.request(http.MethodPost, "/api/v1/lobby/start", nil, ann)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeInsufficientPlayers, decodeError(t, rr).Code)

	rr = ts.request(http.MethodGet, "/api/v1/game/state", nil, ann)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeGameNotStarted, decodeError(t, rr).Code)
}

func TestLeaveLobby(t *testing.T) {
	ts := newTestServer(t)
	ann := ts.join(t, "ann")

	rr := ts.request(http.MethodPost, "/api/v1/lobby/leave", nil, ann)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/lobby/leave", nil, ann)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestInitialStateHidesOtherHands(t *testing.T) {
	ts := newTestServer(t)
	ann, _ := ts.startGame(t)

	rr := ts.request(http.MethodGet, "/api/v1/game/initial-state", nil, ann)
	require.Equal(t, http.StatusOK, rr.Code)

	var state response.InitialState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	assert.Len(t, state.Players, 2)
	assert.Equal(t, []model.Card{
		{Category: model.CategoryRoom, Title: "lounge"},
		{Category: model.CategorySuspect, Title: "white"},
	}, state.Cards)
	assert.Equal(t, []string{"hall", "lounge"}, state.CardsInfo.Room)
	assert.NotContains(t, rr.Body.String(), `"hand"`)
}

func TestGameState(t *testing.T) {
	ts := newTestServer(t)
	ann, bob := ts.startGame(t)

	rr := ts.request(http.MethodGet, "/api/v1/game/state", nil, ann)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"currentPlayerId":1,"action":null,"isGameOver":false,"isYourTurn":true}`, rr.Body.String())

	rr = ts.request(http.MethodGet, "/api/v1/game/state", nil, bob)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"currentPlayerId":1,"action":null,"isGameOver":false,"isYourTurn":false}`, rr.Body.String())
}

func TestPlayersInfo(t *testing.T) {
	ts := newTestServer(t)
	ann, _ := ts.startGame(t)

	rr := ts.request(http.MethodGet, "/api/v1/game/players-info", nil, ann)
	require.Equal(t, http.StatusOK, rr.Code)

	var info model.PlayersInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.Equal(t, model.PlayerID(1), info.CurrentPlayerID)
	assert.True(t, info.CanRollDice)
	assert.True(t, info.CanAccuse)
	assert.False(t, info.CanMovePawn)
	assert.False(t, info.ShouldEndTurn)
	assert.Empty(t, info.StrandedPlayerIDs)
	assert.Equal(t, model.Position{X: 0, Y: 1}, info.CharacterPositions["mustard"])
}

func TestRollDiceServerSide(t *testing.T) {
	ts := newTestServer(t)
	ann, bob := ts.startGame(t)
	ts.app.MockRandom.QueueDice(3, 5)

	rr := ts.request(http.MethodPost, "/api/v1/game/roll-dice", nil, bob)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeNotYourTurn, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/roll-dice", nil, ann)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"dice":[3,5]}`, rr.Body.String())

	rr = ts.request(http.MethodPost, "/api/v1/game/roll-dice", nil, ann)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeActionNotPermitted, decodeError(t, rr).Code)
}

func TestRollDiceRejectsBadDice(t *testing.T) {
	ts := newTestServer(t)
	ann, _ := ts.startGame(t)

	rr := ts.request(http.MethodPost, "/api/v1/game/roll-dice", map[string]any{"dice": []int{0, 7}}, ann)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)
}

func TestPossiblePositionsAndMove(t *testing.T) {
	ts := newTestServer(t)
	ann, _ := ts.startGame(t)

	rr := ts.request(http.MethodGet, "/api/v1/game/possible-positions", nil, ann)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/roll-dice", map[string]any{"dice": []int{2, 2}}, ann)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/game/possible-positions", nil, ann)
	require.Equal(t, http.StatusOK, rr.Code)
	var positions response.PossiblePositions
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &positions))
	assert.Equal(t, model.DiceCombination{2, 2}, positions.Dice)
	assert.Contains(t, positions.Positions, "4,0")
	assert.NotContains(t, positions.Positions, "0,0")

	// Unreachable tile
	rr = ts.request(http.MethodPost, "/api/v1/game/move-pawn", map[string]int{"x": 1, "y": 0}, ann)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeNotMoved, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/move-pawn", map[string]int{"x": 4, "y": 0}, ann)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"isMoved":true,"canSuspect":true,"room":"hall"}`, rr.Body.String())

	rr = ts.request(http.MethodGet, "/api/v1/game/last-suspicion-position", nil, ann)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"room":"hall"}`, rr.Body.String())

	rr = ts.request(http.MethodGet, "/api/v1/game/character-positions", nil, ann)
	require.Equal(t, http.StatusOK, rr.Code)
	var characterPositions map[model.Character]model.Position
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &characterPositions))
	assert.Equal(t, model.Position{X: 4, Y: 0}, characterPositions["scarlet"])
}

func TestMovePawnNotYourTurn(t *testing.T) {
	ts := newTestServer(t)
	_, bob := ts.startGame(t)

	rr := ts.request(http.MethodPost, "/api/v1/game/move-pawn", map[string]int{"x": 1, "y": 1}, bob)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeNotYourTurn, decodeError(t, rr).Code)
}

func TestSuspicionFlow(t *testing.T) {
	ts := newTestServer(t)
	ann, bob := ts.startGame(t)
	ts.moveIntoHall(t, ann)

	suspicion := map[string]string{"weapon": "rope", "room": "hall", "suspect": "mustard"}

	// Suspecting needs the prompt opened first
	rr := ts.request(http.MethodPost, "/api/v1/game/suspect", suspicion, ann)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/start-suspicion", nil, ann)
	require.Equal(t, http.StatusNoContent, rr.Code)

	// The room must be the one just entered
	rr = ts.request(http.MethodPost, "/api/v1/game/suspect", map[string]string{"weapon": "rope", "room": "lounge", "suspect": "mustard"}, ann)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, apierr.CodeInvalidCombination, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/suspect", suspicion, ann)
	require.Equal(t, http.StatusOK, rr.Code)

	// Only the disprover sees the matching cards
	rr = ts.request(http.MethodGet, "/api/v1/game/rule-out-suspicion", nil, bob)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"invalidatedBy":2,"matchingCards":[{"type":"suspect","title":"mustard"},{"type":"weapon","title":"rope"}]}`, rr.Body.String())

	rr = ts.request(http.MethodGet, "/api/v1/game/rule-out-suspicion", nil, ann)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"invalidatedBy":2,"matchingCards":[]}`, rr.Body.String())

	// A card outside the suspicion is refused
	rr = ts.request(http.MethodPost, "/api/v1/game/invalidate", map[string]string{"card": "dagger"}, bob)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, apierr.CodeInvalidCard, decodeError(t, rr).Code)

	// Only the disprover may reveal, and only once
	rr = ts.request(http.MethodPost, "/api/v1/game/invalidate", map[string]string{"card": "hall"}, ann)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeActionNotPermitted, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/invalidate", map[string]string{"card": "rope"}, bob)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/invalidate", map[string]string{"card": "mustard"}, bob)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeActionNotPermitted, decodeError(t, rr).Code)

	rr = ts.request(http.MethodGet, "/api/v1/game/suspicion", nil, ann)
	require.Equal(t, http.StatusOK, rr.Code)
	var view response.Suspicion
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, "rope", view.InvalidatedCard)
	require.NotNil(t, view.InvalidatorID)
	assert.Equal(t, bob, *view.InvalidatorID)

	rr = ts.request(http.MethodGet, "/api/v1/game/state", nil, bob)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"action":"invalidated"`)
}

func TestSuspicionHiddenFromBystanders(t *testing.T) {
	ts := newTestServer(t)
	ann := ts.join(t, "ann")
	bob := ts.join(t, "bob")
	cat := ts.join(t, "cat")
	ts.moveIntoHall(t, ann)

	rr := ts.request(http.MethodPost, "/api/v1/game/start-suspicion", nil, ann)
	require.Equal(t, http.StatusNoContent, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/game/suspect", map[string]string{"weapon": "rope", "room": "hall", "suspect": "white"}, ann)
	require.Equal(t, http.StatusOK, rr.Code)

	// Three seats: bob holds [mustard], cat holds [white]; ann holds rope
	rr = ts.request(http.MethodGet, "/api/v1/game/rule-out-suspicion", nil, cat)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"invalidatedBy":3,"matchingCards":[{"type":"suspect","title":"white"}]}`, rr.Body.String())

	rr = ts.request(http.MethodPost, "/api/v1/game/invalidate", map[string]string{"card": "white"}, cat)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/game/suspicion", nil, bob)
	require.Equal(t, http.StatusOK, rr.Code)
	var view response.Suspicion
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Empty(t, view.InvalidatedCard)
	require.NotNil(t, view.InvalidatorID)
	assert.Equal(t, cat, *view.InvalidatorID)
}

func TestNoOpenSuspicion(t *testing.T) {
	ts := newTestServer(t)
	ann, _ := ts.startGame(t)

	rr := ts.request(http.MethodGet, "/api/v1/game/suspicion", nil, ann)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeNoOpenSuspicion, decodeError(t, rr).Code)

	rr = ts.request(http.MethodGet, "/api/v1/game/rule-out-suspicion", nil, ann)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAccusationAndGameOver(t *testing.T) {
	ts := newTestServer(t)
	ann, bob := ts.startGame(t)

	// The secret stays hidden while the game runs
	rr := ts.request(http.MethodGet, "/api/v1/game/game-over", nil, ann)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeGameInProgress, decodeError(t, rr).Code)

	rr = ts.request(http.MethodGet, "/api/v1/game/accusation-result", nil, ann)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"accusationCombination":null}`, rr.Body.String())

	// Accusing needs the accusation phase
	accusation := map[string]string{"weapon": "rope", "room": "lounge", "suspect": "white"}
	rr = ts.request(http.MethodPost, "/api/v1/game/accuse", accusation, ann)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/start-accusation", nil, ann)
	require.Equal(t, http.StatusNoContent, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/game/accuse", accusation, ann)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"isWon":false,"killingCombination":{"weapon":"dagger","room":"hall","suspect":"scarlet"}}`, rr.Body.String())

	rr = ts.request(http.MethodGet, "/api/v1/game/accusation-result", nil, bob)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"accusationCombination":{"weapon":"rope","room":"lounge","suspect":"white"}}`, rr.Body.String())

	rr = ts.request(http.MethodPost, "/api/v1/game/end-turn", nil, ann)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"currentPlayerId":2,"action":"turnEnded","isGameOver":false,"isYourTurn":false}`, rr.Body.String())

	rr = ts.request(http.MethodPost, "/api/v1/game/start-accusation", nil, bob)
	require.Equal(t, http.StatusNoContent, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/game/accuse", map[string]string{"weapon": "dagger", "room": "hall", "suspect": "scarlet"}, bob)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/game/game-over", nil, ann)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"killingCombination":{"weapon":"dagger","room":"hall","suspect":"scarlet"},"isGameWon":true}`, rr.Body.String())

	rr = ts.request(http.MethodPost, "/api/v1/game/end-turn", nil, bob)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeGameOver, decodeError(t, rr).Code)
}

func TestIncompleteAccusation(t *testing.T) {
	ts := newTestServer(t)
	ann, _ := ts.startGame(t)

	rr := ts.request(http.MethodPost, "/api/v1/game/start-accusation", nil, ann)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/accuse", map[string]string{"weapon": "rope"}, ann)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, apierr.CodeInvalidCombination, decodeError(t, rr).Code)
}

func TestHistory(t *testing.T) {
	ts := newTestServer(t)
	ann, _ := ts.startGame(t)

	rr := ts.request(http.MethodGet, "/api/v1/history", nil, 0)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"games":[]}`, rr.Body.String())

	rr = ts.request(http.MethodPost, "/api/v1/game/start-accusation", nil, ann)
	require.Equal(t, http.StatusNoContent, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/game/accuse", map[string]string{"weapon": "dagger", "room": "hall", "suspect": "scarlet"}, ann)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/history", nil, 0)
	require.Equal(t, http.StatusOK, rr.Code)
	var history response.History
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &history))
	require.Len(t, history.Games, 1)
	assert.Equal(t, "GAME00000001", history.Games[0].ID)
	require.NotNil(t, history.Games[0].WinnerID)
	assert.Equal(t, ann, *history.Games[0].WinnerID)
	assert.Empty(t, history.Games[0].StrandedPlayerIDs)

	rr = ts.request(http.MethodGet, "/api/v1/history/GAME00000001", nil, 0)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/history/NOPE", nil, 0)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeGameSummaryNotFound, decodeError(t, rr).Code)

	rr = ts.request(http.MethodGet, "/api/v1/history?limit=abc", nil, 0)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Reset clears the finished match
	rr = ts.request(http.MethodPost, "/api/v1/lobby/reset", nil, ann)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/lobby", nil, 0)
	require.Equal(t, http.StatusOK, rr.Code)
	var status model.LobbyStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Empty(t, status.Members)
}

func TestResetRefusedMidGame(t *testing.T) {
	ts := newTestServer(t)
	ann, _ := ts.startGame(t)

	rr := ts.request(http.MethodPost, "/api/v1/lobby/reset", nil, ann)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeGameInProgress, decodeError(t, rr).Code)
}

// readEvent reads one event-stream frame, skipping keepalive comments
func readEvent(t *testing.T, reader *bufio.Reader) (string, string) {
	t.Helper()

	var name, data string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimSuffix(line, "\n")

		switch {
		case line == "" && name != "":
			return name, data
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data += strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestEventStream(t *testing.T) {
	ts := newTestServer(t)
	ann, bob := ts.startGame(t)

	srv := httptest.NewServer(ts.handler)
	t.Cleanup(srv.Close)
	t.Cleanup(ts.app.Events.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	// Streams are for lobby members only
	resp, err := http.Get(srv.URL + "/api/v1/events")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events", nil)
	require.NoError(t, err)
	req.Header.Set("X-Player-ID", strconv.Itoa(int(bob)))
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	name, _ := readEvent(t, reader)
	require.Equal(t, "connected", name)

	// A turn action by ann reaches bob's stream
	rr := ts.request(http.MethodPost, "/api/v1/game/roll-dice", map[string]any{"dice": []int{1, 2}}, ann)
	require.Equal(t, http.StatusOK, rr.Code)

	name, data := readEvent(t, reader)
	assert.Equal(t, "game", name)
	assert.JSONEq(t, `{"currentPlayerId":1,"action":"diceRolled","isGameOver":false}`, data)
}
