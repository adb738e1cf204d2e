package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/cluegame-go/internal/model"
	"github.com/mcoot/cluegame-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Lobby operations

func (s *Storage) SaveLobby(ctx context.Context, lobby *model.Lobby) error {
	data, err := json.Marshal(lobby)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, lobbyKey(), data, s.cfg.LobbyTTL).Err()
}

func (s *Storage) GetLobby(ctx context.Context) (*model.Lobby, error) {
	data, err := s.client.Get(ctx, lobbyKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrLobbyNotFound
		}
		return nil, err
	}

	var lobby model.Lobby
	if err := json.Unmarshal(data, &lobby); err != nil {
		return nil, err
	}
	return &lobby, nil
}

func (s *Storage) DeleteLobby(ctx context.Context) error {
	return s.client.Del(ctx, lobbyKey()).Err()
}

// Game history operations

func (s *Storage) SaveGameSummary(ctx context.Context, summary *model.GameSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	key := summaryKey(summary.ID)

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, s.cfg.HistoryTTL)
	pipe.ZAdd(ctx, summariesByTimeIndexKey(), redis.Z{
		Score:  float64(summary.CompletedAt.UnixMilli()),
		Member: key,
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGameSummary(ctx context.Context, id model.GameID) (*model.GameSummary, error) {
	data, err := s.client.Get(ctx, summaryKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameSummaryNotFound
		}
		return nil, err
	}

	var summary model.GameSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListGameSummaries returns the most recently completed games first.
// A non-positive limit returns every summary.
func (s *Storage) ListGameSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	keys, err := s.client.ZRevRange(ctx, summariesByTimeIndexKey(), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.GameSummary{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	summaries := make([]*model.GameSummary, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue // Summary expired; index entry is stale
		}

		str, ok := v.(string)
		if !ok {
			continue
		}

		var summary model.GameSummary
		if err := json.Unmarshal([]byte(str), &summary); err != nil {
			return nil, err
		}
		summaries = append(summaries, &summary)
	}

	return summaries, nil
}
