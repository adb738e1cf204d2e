package model

// PlayerID identifies a registered player. Assigned sequentially by the lobby.
type PlayerID int

// Character is the token a player moves around the board
type Character string

// PlayerInfo is the public projection of a player. It never carries the hand.
type PlayerInfo struct {
	ID                    PlayerID  `json:"id"`
	Name                  string    `json:"name"`
	Character             Character `json:"character"`
	Position              Position  `json:"currentPosition"`
	IsStranded            bool      `json:"isStranded"`
	LastSuspicionPosition RoomName  `json:"lastSuspicionPosition,omitempty"`
}

// PlayerSetup holds everything needed to seat a player at game start
type PlayerSetup struct {
	ID        PlayerID
	Name      string
	Character Character
	Position  Position
	Hand      []Card
}
