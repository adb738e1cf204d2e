package request

import "github.com/mcoot/cluegame-go/internal/model"

// JoinRequest is the request body for joining the lobby
type JoinRequest struct {
	Name string `json:"name"`
}

// MovePawnRequest is the request body for moving the caller's pawn
type MovePawnRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Position returns the requested destination
func (r MovePawnRequest) Position() model.Position {
	return model.Position{X: r.X, Y: r.Y}
}

// CombinationRequest is the request body for accusations and suspicions
type CombinationRequest struct {
	Weapon  string `json:"weapon"`
	Room    string `json:"room"`
	Suspect string `json:"suspect"`
}

// Combination converts the request to a model.Combination
func (r CombinationRequest) Combination() model.Combination {
	return model.Combination{
		Weapon:  r.Weapon,
		Room:    r.Room,
		Suspect: r.Suspect,
	}
}

// InvalidateRequest is the request body for revealing a card against a suspicion
type InvalidateRequest struct {
	Card string `json:"card"`
}

// RollDiceRequest optionally carries dice rolled by the client.
// When Dice is nil the server rolls.
type RollDiceRequest struct {
	Dice *model.DiceCombination `json:"dice,omitempty"`
}
