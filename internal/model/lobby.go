package model

import "time"

// LobbyConfig holds the seating limits for the single match
type LobbyConfig struct {
	MinPlayers int
	MaxPlayers int
}

// DefaultLobbyConfig returns the default lobby configuration
func DefaultLobbyConfig() LobbyConfig {
	return LobbyConfig{
		MinPlayers: 2,
		MaxPlayers: 6,
	}
}

// LobbyMember is a registered player waiting for, or seated in, the match
type LobbyMember struct {
	ID        PlayerID  `json:"id"`
	Name      string    `json:"name"`
	Character Character `json:"character"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// Lobby is the registration record for the match
type Lobby struct {
	Members       []LobbyMember `json:"members"`
	Config        LobbyConfig   `json:"config"`
	IsGameStarted bool          `json:"isGameStarted"`
	// NextID is never lowered while the record lives, so IDs of departed
	// members are not handed out again
	NextID    PlayerID  `json:"nextId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsFull returns true when no seat is left
func (l *Lobby) IsFull() bool {
	return len(l.Members) >= l.Config.MaxPlayers
}

// GetMember returns the member with the given ID, or nil if not found
func (l *Lobby) GetMember(id PlayerID) *LobbyMember {
	for i := range l.Members {
		if l.Members[i].ID == id {
			return &l.Members[i]
		}
	}
	return nil
}

// AssignPlayerID hands out the next player ID and advances the counter.
// Records written before the counter existed continue past the highest member.
func (l *Lobby) AssignPlayerID() PlayerID {
	id := l.NextID
	for _, m := range l.Members {
		if m.ID >= id {
			id = m.ID + 1
		}
	}
	if id < 1 {
		id = 1
	}
	l.NextID = id + 1
	return id
}

// JoinResult is returned to a registrant
type JoinResult struct {
	PlayerID PlayerID `json:"playerId"`
	IsFull   bool     `json:"isFull"`
}

// LobbyStatus is the public view of the lobby
type LobbyStatus struct {
	Members       []LobbyMember `json:"members"`
	MaxPlayers    int           `json:"maxPlayers"`
	IsFull        bool          `json:"isFull"`
	IsGameStarted bool          `json:"isGameStarted"`
}
