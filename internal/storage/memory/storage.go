package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/cluegame-go/internal/model"
	"github.com/mcoot/cluegame-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	lobby     *model.Lobby
	summaries map[model.GameID]*model.GameSummary
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		summaries: make(map[model.GameID]*model.GameSummary),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Lobby operations

func (s *Storage) SaveLobby(ctx context.Context, lobby *model.Lobby) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lobby = copyLobby(lobby)
	return nil
}

func (s *Storage) GetLobby(ctx context.Context) (*model.Lobby, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lobby == nil {
		return nil, model.ErrLobbyNotFound
	}
	return copyLobby(s.lobby), nil
}

func (s *Storage) DeleteLobby(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lobby = nil
	return nil
}

// Game history operations

func (s *Storage) SaveGameSummary(ctx context.Context, summary *model.GameSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[summary.ID] = copySummary(summary)
	return nil
}

func (s *Storage) GetGameSummary(ctx context.Context, id model.GameID) (*model.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.summaries[id]
	if !ok {
		return nil, model.ErrGameSummaryNotFound
	}
	return copySummary(summary), nil
}

// ListGameSummaries returns the most recently completed games first.
// A non-positive limit returns every summary.
func (s *Storage) ListGameSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.GameSummary, 0, len(s.summaries))
	for _, summary := range s.summaries {
		result = append(result, copySummary(summary))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CompletedAt.Equal(result[j].CompletedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CompletedAt.After(result[j].CompletedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func copyLobby(lobby *model.Lobby) *model.Lobby {
	copied := *lobby
	copied.Members = append([]model.LobbyMember(nil), lobby.Members...)
	return &copied
}

func copySummary(summary *model.GameSummary) *model.GameSummary {
	copied := *summary
	copied.StrandedPlayerIDs = append([]model.PlayerID(nil), summary.StrandedPlayerIDs...)
	if summary.WinnerID != nil {
		winner := *summary.WinnerID
		copied.WinnerID = &winner
	}
	return &copied
}
