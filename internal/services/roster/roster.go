package roster

import "github.com/mcoot/cluegame-go/internal/model"

// Roster is the fixed, ordered set of players with a rotation cursor
type Roster struct {
	players      []*Player
	currentIndex int // -1 until the first rotation
}

// New creates a roster in turn order
func New(players []*Player) *Roster {
	return &Roster{
		players:      players,
		currentIndex: -1,
	}
}

// Size returns the number of seated players
func (r *Roster) Size() int {
	return len(r.players)
}

// Current returns the player holding the turn, or nil before the first rotation
func (r *Roster) Current() *Player {
	if r.currentIndex < 0 {
		return nil
	}
	return r.players[r.currentIndex]
}

// NextPlayer advances the cursor to the next player who is not stranded.
// The cursor does not move when every player is stranded.
func (r *Roster) NextPlayer() (*Player, error) {
	n := len(r.players)
	for step := 1; step <= n; step++ {
		idx := (r.currentIndex + step) % n
		if !r.players[idx].IsStranded() {
			r.currentIndex = idx
			return r.players[idx], nil
		}
	}
	return nil, model.ErrNoEligiblePlayer
}

// FindPlayer looks a player up by ID
func (r *Roster) FindPlayer(id model.PlayerID) (*Player, error) {
	for _, p := range r.players {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, model.ErrPlayerNotFound
}

// PlayerPosition returns the token position of a player
func (r *Roster) PlayerPosition(id model.PlayerID) (model.Position, error) {
	p, err := r.FindPlayer(id)
	if err != nil {
		return model.Position{}, err
	}
	return p.Position(), nil
}

// CharacterPositions maps every character, stranded or not, to its token position
func (r *Roster) CharacterPositions() map[model.Character]model.Position {
	positions := make(map[model.Character]model.Position, len(r.players))
	for _, p := range r.players {
		positions[p.Character()] = p.Position()
	}
	return positions
}

// PlayersPositions maps every player ID to its token position
func (r *Roster) PlayersPositions() map[model.PlayerID]model.Position {
	positions := make(map[model.PlayerID]model.Position, len(r.players))
	for _, p := range r.players {
		positions[p.ID()] = p.Position()
	}
	return positions
}

// OccupiedPositions returns the positions of every token in turn order
func (r *Roster) OccupiedPositions() []model.Position {
	positions := make([]model.Position, 0, len(r.players))
	for _, p := range r.players {
		positions = append(positions, p.Position())
	}
	return positions
}

// StrandPlayer strands the player with the given ID
func (r *Roster) StrandPlayer(id model.PlayerID) error {
	p, err := r.FindPlayer(id)
	if err != nil {
		return err
	}
	p.Strand()
	return nil
}

// StrandedIDs returns the stranded players in turn order
func (r *Roster) StrandedIDs() []model.PlayerID {
	ids := make([]model.PlayerID, 0)
	for _, p := range r.players {
		if p.IsStranded() {
			ids = append(ids, p.ID())
		}
	}
	return ids
}

// AllStranded reports whether no player is left in the rotation
func (r *Roster) AllStranded() bool {
	for _, p := range r.players {
		if !p.IsStranded() {
			return false
		}
	}
	return true
}

// RuleOutSuspicion finds the first player after the suspector, in turn
// order, who holds any of the suspicion cards. Stranded players are skipped.
// The search never considers the suspector's own hand.
func (r *Roster) RuleOutSuspicion(suspectorID model.PlayerID, cards []model.Card) model.Disproof {
	start := -1
	for i, p := range r.players {
		if p.ID() == suspectorID {
			start = i
			break
		}
	}

	n := len(r.players)
	for step := 1; step <= n; step++ {
		idx := (start + step) % n
		p := r.players[idx]
		if p.ID() == suspectorID || p.IsStranded() {
			continue
		}
		if matches := p.MatchingCards(cards); len(matches) > 0 {
			id := p.ID()
			return model.Disproof{InvalidatedBy: &id, MatchingCards: matches}
		}
	}

	return model.Disproof{MatchingCards: []model.Card{}}
}

// Info returns the public projection of every player in turn order
func (r *Roster) Info() []model.PlayerInfo {
	infos := make([]model.PlayerInfo, 0, len(r.players))
	for _, p := range r.players {
		infos = append(infos, p.Info())
	}
	return infos
}

// CardsOfPlayer returns the hand of a single player
func (r *Roster) CardsOfPlayer(id model.PlayerID) ([]model.Card, error) {
	p, err := r.FindPlayer(id)
	if err != nil {
		return nil, err
	}
	return p.Hand(), nil
}

// LastSuspicionPosition returns the room a player last entered
func (r *Roster) LastSuspicionPosition(id model.PlayerID) (model.RoomName, error) {
	p, err := r.FindPlayer(id)
	if err != nil {
		return "", err
	}
	return p.LastSuspicionPosition(), nil
}
