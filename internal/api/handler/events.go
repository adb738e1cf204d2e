package handler

import (
	"net/http"

	"github.com/mcoot/cluegame-go/internal/api/middleware"
	"github.com/mcoot/cluegame-go/internal/events"
	"github.com/mcoot/cluegame-go/internal/model"
)

// Notifier is told about state changes so connected streams can refresh
type Notifier interface {
	LobbyChanged(status model.LobbyStatus)
	GameChanged(state model.GameState)
}

// EventsHandler serves the push stream of lobby and game changes
type EventsHandler struct {
	hub *events.Hub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *events.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream handles GET /api/v1/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	events.Serve(w, r, h.hub, playerID)
}
