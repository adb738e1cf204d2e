package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cluegame-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context

	// redisAddr points the suite at a real server instead of miniredis
	redisAddr string
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.ctx = context.Background()

	addr := s.redisAddr
	if addr == "" {
		s.mini = miniredis.RunT(s.T())
		addr = s.mini.Addr()
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if s.mini == nil {
		s.Require().NoError(client.FlushDB(s.ctx).Err())
	}

	cfg := DefaultConfig()
	cfg.LobbyTTL = time.Hour
	cfg.HistoryTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
		s.mini = nil
	}
}

func (s *StorageSuite) requireMiniredis() {
	if s.mini == nil {
		s.T().Skip("needs miniredis clock control")
	}
}

// Lobby tests

func (s *StorageSuite) TestSaveAndGetLobby() {
	lobby := &model.Lobby{
		Members: []model.LobbyMember{
			{ID: 1, Name: "Alice", Character: "scarlet"},
			{ID: 2, Name: "Bob", Character: "mustard"},
		},
		Config:        model.DefaultLobbyConfig(),
		IsGameStarted: true,
		NextID:        4,
	}

	err := s.storage.SaveLobby(s.ctx, lobby)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetLobby(s.ctx)
	s.Require().NoError(err)
	s.Len(retrieved.Members, 2)
	s.Equal(model.Character("mustard"), retrieved.Members[1].Character)
	s.True(retrieved.IsGameStarted)
	s.Equal(model.PlayerID(4), retrieved.NextID)
}

func (s *StorageSuite) TestGetLobbyNotFound() {
	_, err := s.storage.GetLobby(s.ctx)
	s.ErrorIs(err, model.ErrLobbyNotFound)
}

func (s *StorageSuite) TestLobbyHasTTL() {
	s.requireMiniredis()
	_ = s.storage.SaveLobby(s.ctx, &model.Lobby{})

	ttl := s.mini.TTL(lobbyKey())
	s.Equal(time.Hour, ttl)

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetLobby(s.ctx)
	s.ErrorIs(err, model.ErrLobbyNotFound)
}

func (s *StorageSuite) TestDeleteLobby() {
	_ = s.storage.SaveLobby(s.ctx, &model.Lobby{})

	err := s.storage.DeleteLobby(s.ctx)
	s.Require().NoError(err)

	_, err = s.storage.GetLobby(s.ctx)
	s.ErrorIs(err, model.ErrLobbyNotFound)
}

// Game history tests

func (s *StorageSuite) TestSaveAndGetGameSummary() {
	winner := model.PlayerID(3)
	summary := &model.GameSummary{
		ID:                 "GAME1",
		WinnerID:           &winner,
		KillingCombination: model.Combination{Weapon: "dagger", Room: "lounge", Suspect: "mustard"},
		StrandedPlayerIDs:  []model.PlayerID{1, 2},
		CompletedAt:        time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	err := s.storage.SaveGameSummary(s.ctx, summary)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGameSummary(s.ctx, "GAME1")
	s.Require().NoError(err)
	s.Equal(summary.KillingCombination, retrieved.KillingCombination)
	s.Equal(winner, *retrieved.WinnerID)
	s.Equal(summary.StrandedPlayerIDs, retrieved.StrandedPlayerIDs)
	s.True(summary.CompletedAt.Equal(retrieved.CompletedAt))
}

func (s *StorageSuite) TestSummaryWithoutWinner() {
	_ = s.storage.SaveGameSummary(s.ctx, &model.GameSummary{ID: "LOST"})

	retrieved, err := s.storage.GetGameSummary(s.ctx, "LOST")
	s.Require().NoError(err)
	s.Nil(retrieved.WinnerID)
}

func (s *StorageSuite) TestGetGameSummaryNotFound() {
	_, err := s.storage.GetGameSummary(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameSummaryNotFound)
}

func (s *StorageSuite) TestListGameSummariesNewestFirst() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveGameSummary(s.ctx, &model.GameSummary{ID: "OLD", CompletedAt: base})
	_ = s.storage.SaveGameSummary(s.ctx, &model.GameSummary{ID: "NEW", CompletedAt: base.Add(time.Hour)})
	_ = s.storage.SaveGameSummary(s.ctx, &model.GameSummary{ID: "MID", CompletedAt: base.Add(time.Minute)})

	summaries, err := s.storage.ListGameSummaries(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(summaries, 3)
	s.Equal(model.GameID("NEW"), summaries[0].ID)
	s.Equal(model.GameID("MID"), summaries[1].ID)
	s.Equal(model.GameID("OLD"), summaries[2].ID)

	limited, err := s.storage.ListGameSummaries(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(limited, 2)
}

func (s *StorageSuite) TestListGameSummariesSkipsExpired() {
	s.requireMiniredis()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveGameSummary(s.ctx, &model.GameSummary{ID: "GONE", CompletedAt: base})

	s.mini.FastForward(2 * time.Hour)

	summaries, err := s.storage.ListGameSummaries(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(summaries)
}

func (s *StorageSuite) TestListGameSummariesEmpty() {
	summaries, err := s.storage.ListGameSummaries(s.ctx, 5)
	s.Require().NoError(err)
	s.Empty(summaries)
}
