package game

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/mcoot/cluegame-go/internal/dependencies/clock"
	"github.com/mcoot/cluegame-go/internal/dependencies/random"
	"github.com/mcoot/cluegame-go/internal/model"
	"github.com/mcoot/cluegame-go/internal/services/board"
	"github.com/mcoot/cluegame-go/internal/services/roster"
	"github.com/mcoot/cluegame-go/internal/storage"
)

// Controller is the turn state machine for a single match. Every operation
// that acts for a player checks the turn and permission under the same lock
// as the mutation it guards.
type Controller struct {
	mu sync.Mutex

	id                 model.GameID
	roster             *roster.Roster
	board              board.ServiceInterface
	killingCombination model.Combination

	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	current           *roster.Player
	action            model.Action
	lastDice          model.DiceCombination
	possiblePositions map[string]model.Position
	lastAccusation    *model.Accusation
	lastSuspicion     *model.Suspicion
	canSuspect        bool
	isAccusing        bool
	isSuspecting      bool
	isGameWon         bool
	isGameOver        bool
}

// NewController creates the controller for a match. The roster, board and
// killing combination are fixed from here on.
func NewController(
	id model.GameID,
	players *roster.Roster,
	boardService board.ServiceInterface,
	killingCombination model.Combination,
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		id:                 id,
		roster:             players,
		board:              boardService,
		killingCombination: killingCombination,
		storage:            storage,
		clock:              clock,
		random:             random,
		logger:             logger,
		possiblePositions:  make(map[string]model.Position),
	}
}

// ID returns the match identifier
func (c *Controller) ID() model.GameID {
	return c.id
}

// Start hands the first turn to the first eligible player
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		return model.ErrGameInProgress
	}

	next, err := c.roster.NextPlayer()
	if err != nil {
		return err
	}
	next.SetupInitialPermissions()
	c.current = next

	c.logger.Info("game started",
		slog.String("game_id", string(c.id)),
		slog.Int("player_count", c.roster.Size()),
		slog.Int("first_player_id", int(next.ID())),
	)
	return nil
}

// requireTurn checks that the game is live and playerID holds the turn
func (c *Controller) requireTurn(playerID model.PlayerID) error {
	if c.isGameOver {
		return model.ErrGameOver
	}
	if c.current == nil {
		return model.ErrGameNotStarted
	}
	if c.current.ID() != playerID {
		return model.ErrNotPlayerTurn
	}
	return nil
}

// requirePermission checks the turn and that the current player holds permission
func (c *Controller) requirePermission(playerID model.PlayerID, permission model.Permission) error {
	if err := c.requireTurn(playerID); err != nil {
		return err
	}
	if !c.current.Can(permission) {
		return model.ErrActionNotPermitted
	}
	return nil
}

// UpdateDiceCombination records a roll made outside the engine
func (c *Controller) UpdateDiceCombination(playerID model.PlayerID, dice model.DiceCombination) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requirePermission(playerID, model.PermRollDice); err != nil {
		return err
	}
	c.updateDiceCombination(dice)
	return nil
}

// RollDice rolls two six-sided dice for the current player
func (c *Controller) RollDice(playerID model.PlayerID) (model.DiceCombination, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requirePermission(playerID, model.PermRollDice); err != nil {
		return model.DiceCombination{}, err
	}

	dice := model.DiceCombination{c.random.RollDie(), c.random.RollDie()}
	c.updateDiceCombination(dice)

	c.logger.Info("dice rolled",
		slog.String("game_id", string(c.id)),
		slog.Int("player_id", int(playerID)),
		slog.Int("first", dice[0]),
		slog.Int("second", dice[1]),
	)
	return dice, nil
}

func (c *Controller) updateDiceCombination(dice model.DiceCombination) {
	c.action = model.ActionDiceRolled
	c.current.Allow(model.PermMovePawn)
	c.current.Revoke(model.PermRollDice)
	c.lastDice = dice
	c.possiblePositions = make(map[string]model.Position)
}

// FindPossiblePositions lists the tiles the current player can reach in
// exactly stepCount steps. A dead end turns the move into an end-turn.
func (c *Controller) FindPossiblePositions(playerID model.PlayerID, stepCount int) (map[string]model.Position, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requirePermission(playerID, model.PermMovePawn); err != nil {
		return map[string]model.Position{}, err
	}

	positions := c.board.PossibleDestinations(stepCount, c.current.Position(), c.roster.OccupiedPositions())
	if len(positions) == 0 {
		c.current.Revoke(model.PermMovePawn)
		c.current.Allow(model.PermEndTurn)
		c.logger.Info("no reachable tiles",
			slog.String("game_id", string(c.id)),
			slog.Int("player_id", int(playerID)),
			slog.Int("step_count", stepCount),
		)
	}

	c.possiblePositions = positions
	return copyPositions(positions), nil
}

// PossiblePositions returns the destinations last computed this turn
func (c *Controller) PossiblePositions() map[string]model.Position {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyPositions(c.possiblePositions)
}

// MovePawn moves the current player's token by the last dice roll. Any
// illegal request yields {IsMoved: false} and changes nothing.
func (c *Controller) MovePawn(target model.Position, playerID model.PlayerID) model.MoveResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requirePermission(playerID, model.PermMovePawn); err != nil {
		return model.MoveResult{IsMoved: false}
	}

	validation := c.board.ValidateMove(c.lastDice.Sum(), c.current.Position(), c.roster.OccupiedPositions(), target)
	if !validation.CanMove {
		return model.MoveResult{IsMoved: false}
	}

	c.current.MovePawn(validation.NewPos)
	c.current.Revoke(model.PermMovePawn)
	c.current.Allow(model.PermEndTurn)
	c.action = model.ActionUpdateBoard
	c.possiblePositions = make(map[string]model.Position)

	result := model.MoveResult{IsMoved: true}
	if validation.Room != "" {
		result.CanSuspect = true
		result.Room = validation.Room
		c.current.UpdateLastSuspicionPosition(validation.Room)
		c.canSuspect = true
	}

	c.logger.Info("pawn moved",
		slog.String("game_id", string(c.id)),
		slog.Int("player_id", int(playerID)),
		slog.String("position", validation.NewPos.Key()),
		slog.String("room", string(validation.Room)),
	)
	return result
}

// ToggleIsAccusing commits the current player to an accusation
func (c *Controller) ToggleIsAccusing(playerID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requirePermission(playerID, model.PermAccuse); err != nil {
		return err
	}

	c.isAccusing = true
	c.action = model.ActionAccusing
	c.current.StartAccusing()
	return nil
}

// ValidateAccuse resolves an accusation. A full match wins the game; anything
// else strands the accuser, which ends the game once nobody is left.
func (c *Controller) ValidateAccuse(ctx context.Context, playerID model.PlayerID, combination model.Combination) (model.AccusationResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireTurn(playerID); err != nil {
		return model.AccusationResult{}, err
	}
	if !c.isAccusing {
		return model.AccusationResult{}, model.ErrActionNotPermitted
	}
	if !isComplete(combination) {
		return model.AccusationResult{}, model.ErrInvalidCombination
	}

	isWon := combination.Matches(c.killingCombination)
	c.lastAccusation = &model.Accusation{
		AccuserID:   playerID,
		Combination: combination,
		IsWon:       isWon,
	}

	if isWon {
		c.isGameWon = true
		c.isGameOver = true
	} else {
		if err := c.roster.StrandPlayer(playerID); err != nil {
			return model.AccusationResult{}, err
		}
		c.isGameOver = c.roster.AllStranded()
		c.logger.Info("player stranded",
			slog.String("game_id", string(c.id)),
			slog.Int("player_id", int(playerID)),
		)
	}

	c.isAccusing = false
	c.isSuspecting = false
	c.canSuspect = false
	c.action = model.ActionAccused
	c.current.Allow(model.PermEndTurn)

	if c.isGameOver {
		c.recordSummary(ctx)
	}

	return model.AccusationResult{
		IsWon:              isWon,
		KillingCombination: c.killingCombination,
	}, nil
}

// recordSummary stores the outcome of the finished game. A storage failure
// does not undo the result.
func (c *Controller) recordSummary(ctx context.Context) {
	summary := &model.GameSummary{
		ID:                 c.id,
		KillingCombination: c.killingCombination,
		StrandedPlayerIDs:  c.roster.StrandedIDs(),
		CompletedAt:        c.clock.Now(),
	}
	if c.isGameWon {
		winner := c.lastAccusation.AccuserID
		summary.WinnerID = &winner
	}

	c.logger.Info("game over",
		slog.String("game_id", string(c.id)),
		slog.Bool("is_won", c.isGameWon),
		slog.Int("stranded_count", len(summary.StrandedPlayerIDs)),
	)

	if err := c.storage.SaveGameSummary(ctx, summary); err != nil {
		c.logger.Error("failed to save game summary",
			slog.String("game_id", string(c.id)),
			slog.String("error", err.Error()),
		)
	}
}

// ToggleIsSuspecting opens the suspicion prompt after entering a room
func (c *Controller) ToggleIsSuspecting(playerID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireTurn(playerID); err != nil {
		return err
	}
	if !c.canSuspect || c.isAccusing || c.current.IsStranded() {
		return model.ErrActionNotPermitted
	}

	c.isSuspecting = true
	c.action = model.ActionSuspecting
	return nil
}

// ValidateSuspicion records the suspicion raised by the current player. The
// room must be the one the player just entered.
func (c *Controller) ValidateSuspicion(playerID model.PlayerID, combination model.Combination) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireTurn(playerID); err != nil {
		return err
	}
	if !c.isSuspecting || c.current.IsStranded() {
		return model.ErrActionNotPermitted
	}
	if !isComplete(combination) || combination.Room != string(c.current.LastSuspicionPosition()) {
		return model.ErrInvalidCombination
	}

	c.lastSuspicion = &model.Suspicion{
		Combination: combination,
		SuspectorID: playerID,
	}
	c.canSuspect = false
	c.action = model.ActionSuspected

	c.logger.Info("suspicion raised",
		slog.String("game_id", string(c.id)),
		slog.Int("player_id", int(playerID)),
		slog.String("room", combination.Room),
	)
	return nil
}

// RuleOutSuspicion finds the first player able to disprove the open suspicion
func (c *Controller) RuleOutSuspicion() (model.Disproof, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastSuspicion == nil {
		return model.Disproof{}, model.ErrNoOpenSuspicion
	}
	return c.roster.RuleOutSuspicion(c.lastSuspicion.SuspectorID, c.lastSuspicion.Combination.Cards()), nil
}

// InvalidateCard records the card revealed against the open suspicion. Only
// the player that RuleOutSuspicion names may reveal, once, and only a card
// they hold.
func (c *Controller) InvalidateCard(invalidatorID model.PlayerID, cardTitle string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isGameOver {
		return model.ErrGameOver
	}
	if c.lastSuspicion == nil {
		return model.ErrNoOpenSuspicion
	}
	if c.lastSuspicion.InvalidatorID != nil {
		return model.ErrActionNotPermitted
	}
	if !c.lastSuspicion.Combination.Contains(cardTitle) {
		return model.ErrInvalidCard
	}
	if _, err := c.roster.FindPlayer(invalidatorID); err != nil {
		return err
	}

	disproof := c.roster.RuleOutSuspicion(c.lastSuspicion.SuspectorID, c.lastSuspicion.Combination.Cards())
	if !disproof.Found() || *disproof.InvalidatedBy != invalidatorID {
		return model.ErrActionNotPermitted
	}
	if !slices.ContainsFunc(disproof.MatchingCards, func(card model.Card) bool { return card.Title == cardTitle }) {
		return model.ErrInvalidCard
	}

	id := invalidatorID
	c.lastSuspicion.InvalidatorID = &id
	c.lastSuspicion.InvalidatedCard = cardTitle
	c.action = model.ActionInvalidated
	return nil
}

// ChangeTurn passes the turn to the next player who is not stranded
func (c *Controller) ChangeTurn(playerID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireTurn(playerID); err != nil {
		return err
	}

	next, err := c.roster.NextPlayer()
	if err != nil {
		return err
	}
	next.SetupInitialPermissions()

	c.current = next
	c.action = model.ActionTurnEnded
	c.canSuspect = false
	c.isAccusing = false
	c.isSuspecting = false
	c.possiblePositions = make(map[string]model.Position)

	c.logger.Info("turn changed",
		slog.String("game_id", string(c.id)),
		slog.Int("from_player_id", int(playerID)),
		slog.Int("to_player_id", int(next.ID())),
	)
	return nil
}

// Read projections

// State returns the compact snapshot clients poll
func (c *Controller) State() model.GameState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return model.GameState{
		CurrentPlayerID: c.currentID(),
		Action:          c.action,
		IsGameOver:      c.isGameOver,
	}
}

// IsCurrentPlayer reports whether playerID holds the turn
func (c *Controller) IsCurrentPlayer(playerID model.PlayerID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != nil && c.current.ID() == playerID
}

// PlayersInfo returns the broadcast view of the roster and the turn
func (c *Controller) PlayersInfo() model.PlayersInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	info := model.PlayersInfo{
		Players:             c.roster.Info(),
		CurrentPlayerID:     c.currentID(),
		StrandedPlayerIDs:   c.roster.StrandedIDs(),
		CharacterPositions:  c.roster.CharacterPositions(),
		DiceRollCombination: c.lastDice,
		IsAccusing:          c.isAccusing,
		IsSuspecting:        c.isSuspecting,
	}
	if c.current != nil {
		info.PermissionFlags = c.current.Permissions().Flags()
	}
	return info
}

// CharacterPositions maps every character to its token position
func (c *Controller) CharacterPositions() map[model.Character]model.Position {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.CharacterPositions()
}

// GameOverInfo discloses the killing combination. Callers must only expose
// it once the game is over.
func (c *Controller) GameOverInfo() model.GameOverInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	return model.GameOverInfo{
		KillingCombination: c.killingCombination,
		IsGameWon:          c.isGameWon,
	}
}

// IsGameOver reports whether the game has ended
func (c *Controller) IsGameOver() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isGameOver
}

// LastAccusation returns the last accusation made, if any
func (c *Controller) LastAccusation() (model.Accusation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastAccusation == nil {
		return model.Accusation{}, false
	}
	return *c.lastAccusation, true
}

// LastAccusationCombination returns the combination the last accuser named
func (c *Controller) LastAccusationCombination() (model.Combination, bool) {
	accusation, ok := c.LastAccusation()
	return accusation.Combination, ok
}

// LastSuspicion returns the open suspicion, if any
func (c *Controller) LastSuspicion() (model.Suspicion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastSuspicion == nil {
		return model.Suspicion{}, false
	}
	suspicion := *c.lastSuspicion
	if suspicion.InvalidatorID != nil {
		id := *suspicion.InvalidatorID
		suspicion.InvalidatorID = &id
	}
	return suspicion, true
}

// LastSuspicionCombination returns the combination of the open suspicion
func (c *Controller) LastSuspicionCombination() (model.Combination, bool) {
	suspicion, ok := c.LastSuspicion()
	return suspicion.Combination, ok
}

// LastDiceCombination returns the last recorded roll, [0, 0] before any
func (c *Controller) LastDiceCombination() model.DiceCombination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastDice
}

// LastSuspicionPosition returns the room a player last entered
func (c *Controller) LastSuspicionPosition(playerID model.PlayerID) (model.RoomName, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.LastSuspicionPosition(playerID)
}

// CardsOfPlayer returns one player's hand. Only that player may see it.
func (c *Controller) CardsOfPlayer(playerID model.PlayerID) ([]model.Card, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.CardsOfPlayer(playerID)
}

func (c *Controller) currentID() model.PlayerID {
	if c.current == nil {
		return 0
	}
	return c.current.ID()
}

func isComplete(combination model.Combination) bool {
	return combination.Weapon != "" && combination.Room != "" && combination.Suspect != ""
}

func copyPositions(positions map[string]model.Position) map[string]model.Position {
	copied := make(map[string]model.Position, len(positions))
	for k, v := range positions {
		copied[k] = v
	}
	return copied
}

// Interface for dependency injection
type ControllerInterface interface {
	Start() error
	UpdateDiceCombination(playerID model.PlayerID, dice model.DiceCombination) error
	RollDice(playerID model.PlayerID) (model.DiceCombination, error)
	FindPossiblePositions(playerID model.PlayerID, stepCount int) (map[string]model.Position, error)
	PossiblePositions() map[string]model.Position
	MovePawn(target model.Position, playerID model.PlayerID) model.MoveResult
	ToggleIsAccusing(playerID model.PlayerID) error
	ValidateAccuse(ctx context.Context, playerID model.PlayerID, combination model.Combination) (model.AccusationResult, error)
	ToggleIsSuspecting(playerID model.PlayerID) error
	ValidateSuspicion(playerID model.PlayerID, combination model.Combination) error
	RuleOutSuspicion() (model.Disproof, error)
	InvalidateCard(invalidatorID model.PlayerID, cardTitle string) error
	ChangeTurn(playerID model.PlayerID) error
	State() model.GameState
	IsCurrentPlayer(playerID model.PlayerID) bool
	PlayersInfo() model.PlayersInfo
	CharacterPositions() map[model.Character]model.Position
	GameOverInfo() model.GameOverInfo
	IsGameOver() bool
	LastAccusation() (model.Accusation, bool)
	LastAccusationCombination() (model.Combination, bool)
	LastSuspicion() (model.Suspicion, bool)
	LastSuspicionCombination() (model.Combination, bool)
	LastDiceCombination() model.DiceCombination
	LastSuspicionPosition(playerID model.PlayerID) (model.RoomName, error)
	CardsOfPlayer(playerID model.PlayerID) ([]model.Card, error)
}

var _ ControllerInterface = (*Controller)(nil)
