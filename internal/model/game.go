package model

import (
	"encoding/json"
	"time"
)

// GameID uniquely identifies a finished game in the history
type GameID string

// Action is the current phase of the turn state machine
type Action string

const (
	ActionNone        Action = "" // Serialised as null
	ActionDiceRolled  Action = "diceRolled"
	ActionUpdateBoard Action = "updateBoard"
	ActionAccusing    Action = "accusing"
	ActionAccused     Action = "accused"
	ActionSuspecting  Action = "suspecting"
	ActionSuspected   Action = "suspected"
	ActionInvalidated Action = "invalidated"
	ActionTurnEnded   Action = "turnEnded"
)

// MarshalJSON writes the idle phase as null
func (a Action) MarshalJSON() ([]byte, error) {
	if a == ActionNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(a))
}

// UnmarshalJSON reads null as the idle phase
func (a *Action) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = ActionNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = Action(s)
	return nil
}

// GameState is the compact state snapshot polled by clients
type GameState struct {
	CurrentPlayerID PlayerID `json:"currentPlayerId"`
	Action          Action   `json:"action"`
	IsGameOver      bool     `json:"isGameOver"`
}

// PlayersInfo is the broadcast projection of the roster and the current turn
type PlayersInfo struct {
	Players             []PlayerInfo           `json:"players"`
	CurrentPlayerID     PlayerID               `json:"currentPlayerId"`
	StrandedPlayerIDs   []PlayerID             `json:"strandedPlayerIds"`
	CharacterPositions  map[Character]Position `json:"characterPositions"`
	DiceRollCombination DiceCombination        `json:"diceRollCombination"`
	IsAccusing          bool                   `json:"isAccusing"`
	IsSuspecting        bool                   `json:"isSuspecting"`
	PermissionFlags
}

// GameOverInfo discloses the secret once the game is over
type GameOverInfo struct {
	KillingCombination Combination `json:"killingCombination"`
	IsGameWon          bool        `json:"isGameWon"`
}

// MoveResult is the outcome of a pawn move request
type MoveResult struct {
	IsMoved    bool     `json:"isMoved"`
	CanSuspect bool     `json:"canSuspect,omitempty"`
	Room       RoomName `json:"room,omitempty"`
}

// AccusationResult is returned to the accuser
type AccusationResult struct {
	IsWon              bool        `json:"isWon"`
	KillingCombination Combination `json:"killingCombination"`
}

// Accusation is the last accusation submitted
type Accusation struct {
	AccuserID   PlayerID    `json:"accuserId"`
	Combination Combination `json:"combination"`
	IsWon       bool        `json:"isWon"`
}

// Suspicion is the open suspicion of the current turn
type Suspicion struct {
	Combination     Combination `json:"combination"`
	SuspectorID     PlayerID    `json:"suspectorId"`
	InvalidatorID   *PlayerID   `json:"invalidatorId,omitempty"`
	InvalidatedCard string      `json:"invalidatedCard,omitempty"`
}

// Disproof names the first player able to disprove a suspicion.
// InvalidatedBy is nil when nobody can.
type Disproof struct {
	InvalidatedBy *PlayerID `json:"invalidatedBy"`
	MatchingCards []Card    `json:"matchingCards"`
}

// Found reports whether some player can disprove the suspicion
func (d Disproof) Found() bool {
	return d.InvalidatedBy != nil
}

// GameSummary is the record kept for a finished game
type GameSummary struct {
	ID                 GameID      `json:"id"`
	WinnerID           *PlayerID   `json:"winnerId"` // Nil when every player was stranded
	KillingCombination Combination `json:"killingCombination"`
	StrandedPlayerIDs  []PlayerID  `json:"strandedPlayerIds"`
	CompletedAt        time.Time   `json:"completedAt"`
}
