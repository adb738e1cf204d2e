package handler

import (
	"net/http"

	"github.com/mcoot/cluegame-go/internal/api/response"
	"github.com/mcoot/cluegame-go/internal/services/lobby"
)

// HealthHandler reports liveness along with a lobby summary
type HealthHandler struct {
	lobbyController lobby.ControllerInterface
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(lobbyController lobby.ControllerInterface) *HealthHandler {
	return &HealthHandler{lobbyController: lobbyController}
}

// Check handles GET /api/v1/health. A lobby that cannot be read (storage
// down) is reported as unavailable.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status, err := h.lobbyController.Status(r.Context())
	if err != nil {
		response.JSON(w, http.StatusServiceUnavailable, response.Health{Status: "unavailable"})
		return
	}

	response.OK(w, response.Health{
		Status:        "ok",
		Players:       len(status.Members),
		IsGameStarted: status.IsGameStarted,
	})
}
