package events

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/cluegame-go/internal/model"
)

// Event names
const (
	EventConnected = "connected"
	EventLobby     = "lobby"
	EventGame      = "game"
)

// Publisher turns state changes into events. Payloads are the public
// projections only; hands never go out on the stream.
type Publisher struct {
	hub    *Hub
	logger *slog.Logger
}

// NewPublisher creates a new Publisher
func NewPublisher(hub *Hub, logger *slog.Logger) *Publisher {
	return &Publisher{
		hub:    hub,
		logger: logger.With(slog.String("component", "events-publisher")),
	}
}

// LobbyChanged broadcasts the lobby status after a join, leave, start or reset
func (p *Publisher) LobbyChanged(status model.LobbyStatus) {
	p.publish(EventLobby, status)
}

// GameChanged broadcasts the compact game state after a turn action
func (p *Publisher) GameChanged(state model.GameState) {
	p.publish(EventGame, state)
}

func (p *Publisher) publish(eventName string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to encode event",
			slog.String("event", eventName),
			slog.String("error", err.Error()))
		return
	}
	p.hub.BroadcastEvent(eventName, string(data))
}
