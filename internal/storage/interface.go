package storage

import (
	"context"

	"github.com/mcoot/cluegame-go/internal/model"
)

// Storage defines the interface for data persistence.
// Live game state stays in memory; only the lobby record and the outcome of
// finished games are stored.
type Storage interface {
	// Lobby operations
	SaveLobby(ctx context.Context, lobby *model.Lobby) error
	GetLobby(ctx context.Context) (*model.Lobby, error)
	DeleteLobby(ctx context.Context) error

	// Game history operations
	SaveGameSummary(ctx context.Context, summary *model.GameSummary) error
	GetGameSummary(ctx context.Context, id model.GameID) (*model.GameSummary, error)
	ListGameSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error)
}
