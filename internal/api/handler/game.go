package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/mcoot/cluegame-go/internal/api/middleware"
	"github.com/mcoot/cluegame-go/internal/api/request"
	"github.com/mcoot/cluegame-go/internal/api/response"
	"github.com/mcoot/cluegame-go/internal/model"
	"github.com/mcoot/cluegame-go/internal/services/game"
	"github.com/mcoot/cluegame-go/internal/services/lobby"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	lobbyController lobby.ControllerInterface
	notifier        Notifier
}

// NewGameHandler creates a new game handler
func NewGameHandler(lobbyController lobby.ControllerInterface, notifier Notifier) *GameHandler {
	return &GameHandler{
		lobbyController: lobbyController,
		notifier:        notifier,
	}
}

// currentGame returns the running match, writing the error if there is none
func (h *GameHandler) currentGame(w http.ResponseWriter) (*game.Controller, bool) {
	g, err := h.lobbyController.Game()
	if err != nil {
		WriteError(w, err)
		return nil, false
	}
	return g, true
}

// CardsInfo handles GET /api/v1/game/cards-info
func (h *GameHandler) CardsInfo(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.lobbyController.CardsInfo())
}

// InitialState handles GET /api/v1/game/initial-state
func (h *GameHandler) InitialState(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	cards, err := g.CardsOfPlayer(playerID)
	if err != nil {
		WriteError(w, err)
		return
	}
	info := g.PlayersInfo()

	response.OK(w, response.InitialState{
		Players:            info.Players,
		CharacterPositions: info.CharacterPositions,
		Cards:              cards,
		CardsInfo:          h.lobbyController.CardsInfo(),
	})
}

// State handles GET /api/v1/game/state
func (h *GameHandler) State(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	response.OK(w, response.GameState{
		GameState:  g.State(),
		IsYourTurn: g.IsCurrentPlayer(playerID),
	})
}

// PlayersInfo handles GET /api/v1/game/players-info
func (h *GameHandler) PlayersInfo(w http.ResponseWriter, r *http.Request) {
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	response.OK(w, g.PlayersInfo())
}

// RollDice handles POST /api/v1/game/roll-dice
// An empty body rolls on the server; a body may carry dice rolled by the client.
func (h *GameHandler) RollDice(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	var req request.RollDiceRequest
	if err := decodeBody(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, err)
		return
	}

	var dice model.DiceCombination
	if req.Dice != nil {
		if !req.Dice.IsValid() {
			WriteError(w, NewInvalidRequestError("Each die must be between 1 and 6"))
			return
		}
		if err := g.UpdateDiceCombination(playerID, *req.Dice); err != nil {
			WriteError(w, err)
			return
		}
		dice = *req.Dice
	} else {
		rolled, err := g.RollDice(playerID)
		if err != nil {
			WriteError(w, err)
			return
		}
		dice = rolled
	}

	h.notifier.GameChanged(g.State())
	response.OK(w, response.DiceRoll{Dice: dice})
}

// PossiblePositions handles GET /api/v1/game/possible-positions
func (h *GameHandler) PossiblePositions(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	dice := g.LastDiceCombination()
	positions, err := g.FindPossiblePositions(playerID, dice.Sum())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.PossiblePositions{
		Dice:      dice,
		Positions: positions,
	})
}

// MovePawn handles POST /api/v1/game/move-pawn
func (h *GameHandler) MovePawn(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	var req request.MovePawnRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	if !g.IsCurrentPlayer(playerID) {
		WriteError(w, model.ErrNotPlayerTurn)
		return
	}

	result := g.MovePawn(req.Position(), playerID)
	if !result.IsMoved {
		WriteError(w, NewNotMovedError())
		return
	}

	h.notifier.GameChanged(g.State())
	response.OK(w, result)
}

// EndTurn handles POST /api/v1/game/end-turn
func (h *GameHandler) EndTurn(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	if err := g.ChangeTurn(playerID); err != nil {
		WriteError(w, err)
		return
	}

	h.notifier.GameChanged(g.State())
	response.OK(w, response.GameState{
		GameState:  g.State(),
		IsYourTurn: g.IsCurrentPlayer(playerID),
	})
}

// StartAccusation handles POST /api/v1/game/start-accusation
func (h *GameHandler) StartAccusation(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	if err := g.ToggleIsAccusing(playerID); err != nil {
		WriteError(w, err)
		return
	}

	h.notifier.GameChanged(g.State())
	response.NoContent(w)
}

// Accuse handles POST /api/v1/game/accuse
func (h *GameHandler) Accuse(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	var req request.CombinationRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	result, err := g.ValidateAccuse(r.Context(), playerID, req.Combination())
	if err != nil {
		WriteError(w, err)
		return
	}

	h.notifier.GameChanged(g.State())
	response.OK(w, result)
}

// AccusationResult handles GET /api/v1/game/accusation-result
func (h *GameHandler) AccusationResult(w http.ResponseWriter, r *http.Request) {
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	var resp response.AccusationResult
	if combination, made := g.LastAccusationCombination(); made {
		resp.AccusationCombination = &combination
	}

	response.OK(w, resp)
}

// StartSuspicion handles POST /api/v1/game/start-suspicion
func (h *GameHandler) StartSuspicion(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	if err := g.ToggleIsSuspecting(playerID); err != nil {
		WriteError(w, err)
		return
	}

	h.notifier.GameChanged(g.State())
	response.NoContent(w)
}

// Suspect handles POST /api/v1/game/suspect
func (h *GameHandler) Suspect(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	var req request.CombinationRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	if err := g.ValidateSuspicion(playerID, req.Combination()); err != nil {
		WriteError(w, err)
		return
	}

	h.notifier.GameChanged(g.State())
	suspicion, _ := g.LastSuspicion()
	response.OK(w, response.SuspicionFromModel(suspicion, playerID))
}

// Suspicion handles GET /api/v1/game/suspicion
func (h *GameHandler) Suspicion(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	suspicion, open := g.LastSuspicion()
	if !open {
		WriteError(w, model.ErrNoOpenSuspicion)
		return
	}

	response.OK(w, response.SuspicionFromModel(suspicion, playerID))
}

// RuleOutSuspicion handles GET /api/v1/game/rule-out-suspicion
func (h *GameHandler) RuleOutSuspicion(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	disproof, err := g.RuleOutSuspicion()
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.DisproofFromModel(disproof, playerID))
}

// Invalidate handles POST /api/v1/game/invalidate
func (h *GameHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	var req request.InvalidateRequest
	if err := decodeBody(w, r, &req); err != nil || req.Card == "" {
		WriteError(w, NewInvalidRequestError("card is required"))
		return
	}

	if err := g.InvalidateCard(playerID, req.Card); err != nil {
		WriteError(w, err)
		return
	}

	h.notifier.GameChanged(g.State())
	response.NoContent(w)
}

// CharacterPositions handles GET /api/v1/game/character-positions
func (h *GameHandler) CharacterPositions(w http.ResponseWriter, r *http.Request) {
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	response.OK(w, g.CharacterPositions())
}

// LastSuspicionPosition handles GET /api/v1/game/last-suspicion-position
func (h *GameHandler) LastSuspicionPosition(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	room, err := g.LastSuspicionPosition(playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	var resp response.LastSuspicionPosition
	if room != "" {
		resp.Room = &room
	}
	response.OK(w, resp)
}

// GameOver handles GET /api/v1/game/game-over
// The killing combination stays secret until the game has ended.
func (h *GameHandler) GameOver(w http.ResponseWriter, r *http.Request) {
	g, ok := h.currentGame(w)
	if !ok {
		return
	}

	if !g.IsGameOver() {
		WriteError(w, model.ErrGameInProgress)
		return
	}

	response.OK(w, g.GameOverInfo())
}
