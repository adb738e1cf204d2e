package lobby

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mcoot/cluegame-go/internal/dependencies/clock"
	"github.com/mcoot/cluegame-go/internal/dependencies/random"
	"github.com/mcoot/cluegame-go/internal/model"
	"github.com/mcoot/cluegame-go/internal/services/board"
	"github.com/mcoot/cluegame-go/internal/services/deck"
	"github.com/mcoot/cluegame-go/internal/services/game"
	"github.com/mcoot/cluegame-go/internal/services/roster"
	"github.com/mcoot/cluegame-go/internal/storage"
)

const (
	// GameIDLength is the length of generated game IDs
	GameIDLength = 12
	// GameIDAlphabet is the characters used in game IDs (avoid confusing chars)
	GameIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// MaxNameLength bounds player names, in runes
	MaxNameLength = 24
)

// Controller registers players for the single match and assembles the game
// once the seats are taken
type Controller struct {
	mu sync.Mutex

	storage      storage.Storage
	boardService *board.Service
	deckService  *deck.Service
	config       model.LobbyConfig
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger

	game *game.Controller
}

// NewController creates a new LobbyController. The board must have a start
// position for every seat.
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	deckService *deck.Service,
	config model.LobbyConfig,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) (*Controller, error) {
	if config.MinPlayers < 1 || config.MaxPlayers < config.MinPlayers {
		return nil, fmt.Errorf("invalid lobby size %d-%d", config.MinPlayers, config.MaxPlayers)
	}
	if starts := len(boardService.StartPositions()); starts < config.MaxPlayers {
		return nil, fmt.Errorf("%w: %d starts for %d seats", model.ErrInsufficientStarts, starts, config.MaxPlayers)
	}

	return &Controller{
		storage:      storage,
		boardService: boardService,
		deckService:  deckService,
		config:       config,
		clock:        clock,
		random:       random,
		logger:       logger,
	}, nil
}

// loadLobby returns the stored lobby, or a fresh one if none exists yet
func (c *Controller) loadLobby(ctx context.Context) (*model.Lobby, error) {
	lobby, err := c.storage.GetLobby(ctx)
	if errors.Is(err, model.ErrLobbyNotFound) {
		now := c.clock.Now()
		return &model.Lobby{
			Members:   []model.LobbyMember{},
			Config:    c.config,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	return lobby, err
}

// Join registers a player and assigns the next free character. Filling the
// last seat starts the game.
func (c *Controller) Join(ctx context.Context, name string) (model.JoinResult, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return model.JoinResult{}, model.ErrInvalidName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, err := c.loadLobby(ctx)
	if err != nil {
		return model.JoinResult{}, err
	}

	if lobby.IsFull() {
		return model.JoinResult{}, model.ErrLobbyFull
	}
	if lobby.IsGameStarted {
		return model.JoinResult{}, model.ErrGameInProgress
	}

	member := model.LobbyMember{
		ID:        lobby.AssignPlayerID(),
		Name:      name,
		Character: c.nextCharacter(lobby),
		JoinedAt:  c.clock.Now(),
	}
	lobby.Members = append(lobby.Members, member)
	lobby.UpdatedAt = c.clock.Now()

	c.logger.Info("player joined",
		slog.Int("player_id", int(member.ID)),
		slog.String("name", member.Name),
		slog.String("character", string(member.Character)),
	)

	if lobby.IsFull() {
		if err := c.startGame(ctx, lobby); err != nil {
			return model.JoinResult{}, err
		}
	} else if err := c.storage.SaveLobby(ctx, lobby); err != nil {
		return model.JoinResult{}, err
	}

	return model.JoinResult{
		PlayerID: member.ID,
		IsFull:   lobby.IsFull(),
	}, nil
}

// nextCharacter returns the first start character no member holds
func (c *Controller) nextCharacter(lobby *model.Lobby) model.Character {
	taken := make(map[model.Character]bool, len(lobby.Members))
	for _, m := range lobby.Members {
		taken[m.Character] = true
	}
	for _, start := range c.boardService.StartPositions() {
		if !taken[start.Character] {
			return start.Character
		}
	}
	return ""
}

// Leave removes a player who has not started playing yet
func (c *Controller) Leave(ctx context.Context, playerID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, err := c.loadLobby(ctx)
	if err != nil {
		return err
	}

	if lobby.IsGameStarted {
		return model.ErrGameInProgress
	}
	if lobby.GetMember(playerID) == nil {
		return model.ErrNotInLobby
	}

	for i, m := range lobby.Members {
		if m.ID == playerID {
			lobby.Members = append(lobby.Members[:i], lobby.Members[i+1:]...)
			break
		}
	}
	lobby.UpdatedAt = c.clock.Now()

	c.logger.Info("player left", slog.Int("player_id", int(playerID)))

	return c.storage.SaveLobby(ctx, lobby)
}

// Start begins the game before every seat is taken
func (c *Controller) Start(ctx context.Context, playerID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, err := c.loadLobby(ctx)
	if err != nil {
		return err
	}

	if lobby.GetMember(playerID) == nil {
		return model.ErrNotInLobby
	}
	if lobby.IsGameStarted {
		return model.ErrGameInProgress
	}
	if len(lobby.Members) < c.config.MinPlayers {
		return model.ErrInsufficientPlayers
	}

	return c.startGame(ctx, lobby)
}

// startGame deals the deck, seats the members in join order and hands the
// first turn out
func (c *Controller) startGame(ctx context.Context, lobby *model.Lobby) error {
	dealt, err := c.deckService.Deal(len(lobby.Members))
	if err != nil {
		return err
	}

	startOf := make(map[model.Character]model.Position)
	for _, start := range c.boardService.StartPositions() {
		startOf[start.Character] = start.Position
	}

	players := make([]*roster.Player, 0, len(lobby.Members))
	for i, m := range lobby.Members {
		players = append(players, roster.NewPlayer(model.PlayerSetup{
			ID:        m.ID,
			Name:      m.Name,
			Character: m.Character,
			Position:  startOf[m.Character],
			Hand:      dealt.Hands[i],
		}))
	}

	gameID := model.GameID(c.random.String(GameIDLength, GameIDAlphabet))
	g := game.NewController(
		gameID,
		roster.New(players),
		c.boardService,
		dealt.KillingCombination,
		c.storage,
		c.clock,
		c.random,
		c.logger,
	)
	if err := g.Start(); err != nil {
		return err
	}

	lobby.IsGameStarted = true
	lobby.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveLobby(ctx, lobby); err != nil {
		return err
	}

	c.game = g
	return nil
}

// Reset clears a finished match so a new one can be registered
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.game != nil && !c.game.IsGameOver() {
		return model.ErrGameInProgress
	}

	if err := c.storage.DeleteLobby(ctx); err != nil {
		return err
	}
	c.game = nil

	c.logger.Info("lobby reset")
	return nil
}

// Status returns the public view of the lobby
func (c *Controller) Status(ctx context.Context) (model.LobbyStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, err := c.loadLobby(ctx)
	if err != nil {
		return model.LobbyStatus{}, err
	}

	return model.LobbyStatus{
		Members:       lobby.Members,
		MaxPlayers:    c.config.MaxPlayers,
		IsFull:        lobby.IsFull(),
		IsGameStarted: lobby.IsGameStarted && c.game != nil,
	}, nil
}

// IsMember reports whether the ID belongs to a registered player
func (c *Controller) IsMember(ctx context.Context, playerID model.PlayerID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, err := c.loadLobby(ctx)
	if err != nil {
		return false, err
	}
	return lobby.GetMember(playerID) != nil, nil
}

// Game returns the running match
func (c *Controller) Game() (*game.Controller, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.game == nil {
		return nil, model.ErrGameNotStarted
	}
	return c.game, nil
}

// CardsInfo returns the card master list
func (c *Controller) CardsInfo() model.CardsInfo {
	return c.deckService.Info()
}

// Interface for dependency injection
type ControllerInterface interface {
	Join(ctx context.Context, name string) (model.JoinResult, error)
	Leave(ctx context.Context, playerID model.PlayerID) error
	Start(ctx context.Context, playerID model.PlayerID) error
	Reset(ctx context.Context) error
	Status(ctx context.Context) (model.LobbyStatus, error)
	IsMember(ctx context.Context, playerID model.PlayerID) (bool, error)
	Game() (*game.Controller, error)
	CardsInfo() model.CardsInfo
}

var _ ControllerInterface = (*Controller)(nil)
