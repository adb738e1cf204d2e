package response

import (
	"time"

	"github.com/mcoot/cluegame-go/internal/model"
)

// Join is the response to a lobby registration
type Join struct {
	PlayerID model.PlayerID `json:"playerId"`
	IsFull   bool           `json:"isFull"`
}

// JoinFromModel converts model.JoinResult
func JoinFromModel(r model.JoinResult) Join {
	return Join{
		PlayerID: r.PlayerID,
		IsFull:   r.IsFull,
	}
}

// InitialState is everything a client needs to draw the table: the public
// roster and the caller's own hand
type InitialState struct {
	Players            []model.PlayerInfo                 `json:"players"`
	CharacterPositions map[model.Character]model.Position `json:"characterPositions"`
	Cards              []model.Card                       `json:"cards"`
	CardsInfo          model.CardsInfo                    `json:"cardsInfo"`
}

// GameState is the polled state snapshot
type GameState struct {
	model.GameState
	IsYourTurn bool `json:"isYourTurn"`
}

// DiceRoll is the dice recorded for the current turn
type DiceRoll struct {
	Dice model.DiceCombination `json:"dice"`
}

// PossiblePositions lists the destinations reachable with the last roll
type PossiblePositions struct {
	Dice      model.DiceCombination     `json:"dice"`
	Positions map[string]model.Position `json:"possiblePositions"`
}

// AccusationResult reveals the combination the last accuser named
type AccusationResult struct {
	AccusationCombination *model.Combination `json:"accusationCombination"`
}

// Suspicion is the open suspicion as shown to one player. The revealed
// card is only visible to the suspector and the invalidator.
type Suspicion struct {
	Combination     model.Combination `json:"combination"`
	SuspectorID     model.PlayerID    `json:"suspectorId"`
	InvalidatorID   *model.PlayerID   `json:"invalidatorId"`
	InvalidatedCard string            `json:"invalidatedCard,omitempty"`
}

// SuspicionFromModel converts model.Suspicion for the viewer
func SuspicionFromModel(s model.Suspicion, viewer model.PlayerID) Suspicion {
	resp := Suspicion{
		Combination:   s.Combination,
		SuspectorID:   s.SuspectorID,
		InvalidatorID: s.InvalidatorID,
	}
	if viewer == s.SuspectorID || (s.InvalidatorID != nil && viewer == *s.InvalidatorID) {
		resp.InvalidatedCard = s.InvalidatedCard
	}
	return resp
}

// Disproof names who must disprove the open suspicion. The matching cards
// are only disclosed to that player.
type Disproof struct {
	InvalidatedBy *model.PlayerID `json:"invalidatedBy"`
	MatchingCards []model.Card    `json:"matchingCards"`
}

// DisproofFromModel converts model.Disproof for the viewer
func DisproofFromModel(d model.Disproof, viewer model.PlayerID) Disproof {
	resp := Disproof{
		InvalidatedBy: d.InvalidatedBy,
		MatchingCards: []model.Card{},
	}
	if d.InvalidatedBy != nil && viewer == *d.InvalidatedBy {
		resp.MatchingCards = d.MatchingCards
	}
	return resp
}

// LastSuspicionPosition is the room the caller last entered
type LastSuspicionPosition struct {
	Room *model.RoomName `json:"room"`
}

// GameSummary represents a completed game summary
type GameSummary struct {
	ID                 string            `json:"id"`
	WinnerID           *model.PlayerID   `json:"winnerId"`
	KillingCombination model.Combination `json:"killingCombination"`
	StrandedPlayerIDs  []model.PlayerID  `json:"strandedPlayerIds"`
	CompletedAt        time.Time         `json:"completedAt"`
}

// GameSummaryFromModel converts model.GameSummary
func GameSummaryFromModel(g model.GameSummary) GameSummary {
	stranded := g.StrandedPlayerIDs
	if stranded == nil {
		stranded = []model.PlayerID{}
	}
	return GameSummary{
		ID:                 string(g.ID),
		WinnerID:           g.WinnerID,
		KillingCombination: g.KillingCombination,
		StrandedPlayerIDs:  stranded,
		CompletedAt:        g.CompletedAt,
	}
}

// History lists finished games, newest first
type History struct {
	Games []GameSummary `json:"games"`
}

// HistoryFromModel converts a list of model.GameSummary
func HistoryFromModel(summaries []*model.GameSummary) History {
	games := make([]GameSummary, len(summaries))
	for i, g := range summaries {
		games[i] = GameSummaryFromModel(*g)
	}
	return History{Games: games}
}

// Health is the liveness response
type Health struct {
	Status        string `json:"status"`
	Players       int    `json:"players"`
	IsGameStarted bool   `json:"isGameStarted"`
}
