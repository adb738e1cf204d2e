package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mcoot/cluegame-go/internal/api/middleware"
	"github.com/mcoot/cluegame-go/internal/api/request"
	"github.com/mcoot/cluegame-go/internal/api/response"
	"github.com/mcoot/cluegame-go/internal/services/lobby"
)

// LobbyHandler handles lobby-related endpoints
type LobbyHandler struct {
	lobbyController lobby.ControllerInterface
	notifier        Notifier
}

// NewLobbyHandler creates a new lobby handler
func NewLobbyHandler(lobbyController lobby.ControllerInterface, notifier Notifier) *LobbyHandler {
	return &LobbyHandler{
		lobbyController: lobbyController,
		notifier:        notifier,
	}
}

// notify pushes the lobby status, and the game state when a join or start
// has just dealt the cards
func (h *LobbyHandler) notify(ctx context.Context) {
	status, err := h.lobbyController.Status(ctx)
	if err != nil {
		return
	}
	h.notifier.LobbyChanged(status)

	if g, err := h.lobbyController.Game(); err == nil {
		h.notifier.GameChanged(g.State())
	}
}

// Join handles POST /api/v1/lobby/join
func (h *LobbyHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	result, err := h.lobbyController.Join(r.Context(), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.PlayerIDCookie,
		Value:    strconv.Itoa(int(result.PlayerID)),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.notify(r.Context())
	response.OK(w, response.JoinFromModel(result))
}

// Get handles GET /api/v1/lobby
func (h *LobbyHandler) Get(w http.ResponseWriter, r *http.Request) {
	status, err := h.lobbyController.Status(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, status)
}

// Leave handles POST /api/v1/lobby/leave
func (h *LobbyHandler) Leave(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())

	if err := h.lobbyController.Leave(r.Context(), playerID); err != nil {
		WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   middleware.PlayerIDCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	h.notify(r.Context())
	response.NoContent(w)
}

// Start handles POST /api/v1/lobby/start
func (h *LobbyHandler) Start(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())

	if err := h.lobbyController.Start(r.Context(), playerID); err != nil {
		WriteError(w, err)
		return
	}

	h.notify(r.Context())
	response.NoContent(w)
}

// Reset handles POST /api/v1/lobby/reset
func (h *LobbyHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.lobbyController.Reset(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	h.notify(r.Context())
	response.NoContent(w)
}
