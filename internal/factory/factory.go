package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/cluegame-go/internal/dependencies/clock"
	"github.com/mcoot/cluegame-go/internal/dependencies/random"
	"github.com/mcoot/cluegame-go/internal/events"
	"github.com/mcoot/cluegame-go/internal/model"
	"github.com/mcoot/cluegame-go/internal/services/board"
	"github.com/mcoot/cluegame-go/internal/services/deck"
	"github.com/mcoot/cluegame-go/internal/services/lobby"
	"github.com/mcoot/cluegame-go/internal/storage"
	"github.com/mcoot/cluegame-go/internal/storage/memory"
	redisstorage "github.com/mcoot/cluegame-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	BoardService    *board.Service
	DeckService     *deck.Service
	LobbyController *lobby.Controller

	// Events is the running hub for pushed state changes
	Events *events.Hub
}

// Config holds configuration for the application factory
type Config struct {
	// BoardPath is the path to the board JSON file
	BoardPath string
	// CardsPath is the path to the card master list JSON file
	CardsPath string
	// LobbyConfig holds the seating limits (optional)
	// If zero value, defaults to model.DefaultLobbyConfig()
	LobbyConfig model.LobbyConfig
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	boardConfig, err := board.LoadConfig(cfg.BoardPath)
	if err != nil {
		return nil, err
	}
	cardsInfo, err := deck.LoadCardsInfo(cfg.CardsPath)
	if err != nil {
		return nil, err
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Use default lobby config if not provided
	lobbyCfg := cfg.LobbyConfig
	if lobbyCfg.MaxPlayers == 0 {
		lobbyCfg = model.DefaultLobbyConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), boardConfig, cardsInfo, lobbyCfg, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	boardConfig model.BoardConfig,
	cardsInfo model.CardsInfo,
	lobbyCfg model.LobbyConfig,
	logger *slog.Logger,
) (*App, error) {
	// Create services
	boardService, err := board.New(boardConfig)
	if err != nil {
		return nil, err
	}
	deckService, err := deck.New(cardsInfo, rnd)
	if err != nil {
		return nil, err
	}
	if err := deckService.CheckRooms(boardService.Rooms()); err != nil {
		return nil, err
	}
	lobbyController, err := lobby.NewController(store, boardService, deckService, lobbyCfg, clk, rnd, logger)
	if err != nil {
		return nil, fmt.Errorf("lobby: %w", err)
	}

	hub := events.NewHub(logger)
	go hub.Run()

	width, height := boardService.Size()
	logger.Info("application wired",
		slog.Int("board_width", width),
		slog.Int("board_height", height),
		slog.Int("rooms", len(boardService.Rooms())),
		slog.Int("max_players", lobbyCfg.MaxPlayers),
	)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		BoardService:    boardService,
		DeckService:     deckService,
		LobbyController: lobbyController,
		Events:          hub,
	}, nil
}
