package roster

import "github.com/mcoot/cluegame-go/internal/model"

// Player is one participant's mutable game state. Only the game controller
// mutates it, always while holding the controller lock.
type Player struct {
	id                    model.PlayerID
	name                  string
	character             model.Character
	position              model.Position
	hand                  []model.Card
	permissions           model.Permissions
	isStranded            bool
	isAccusing            bool
	lastSuspicionPosition model.RoomName
}

// NewPlayer seats a player with the start-of-turn permissions
func NewPlayer(setup model.PlayerSetup) *Player {
	return &Player{
		id:          setup.ID,
		name:        setup.Name,
		character:   setup.Character,
		position:    setup.Position,
		hand:        append([]model.Card(nil), setup.Hand...),
		permissions: model.DefaultPermissions,
	}
}

func (p *Player) ID() model.PlayerID { return p.id }
func (p *Player) Name() string { return p.name }
func (p *Player) Character() model.Character { return p.character }
func (p *Player) Position() model.Position { return p.position }
func (p *Player) Permissions() model.Permissions { return p.permissions }
func (p *Player) IsStranded() bool { return p.isStranded }
func (p *Player) IsAccusing() bool { return p.isAccusing }
func (p *Player) LastSuspicionPosition() model.RoomName { return p.lastSuspicionPosition }
func (p *Player) Can(permission model.Permission) bool { return p.permissions.Has(permission) }

// Hand returns a copy of the player's cards
func (p *Player) Hand() []model.Card {
	return append([]model.Card(nil), p.hand...)
}

// Allow grants a single permission
func (p *Player) Allow(permission model.Permission) {
	p.permissions = p.permissions.With(permission)
}

// Revoke withdraws a single permission
func (p *Player) Revoke(permission model.Permission) {
	p.permissions = p.permissions.Without(permission)
}

// SetupInitialPermissions resets the player for the start of a turn
func (p *Player) SetupInitialPermissions() {
	p.permissions = model.DefaultPermissions
	p.isAccusing = false
}

// MovePawn places the token. The move must already have been validated.
func (p *Player) MovePawn(pos model.Position) {
	p.position = pos
}

// Strand removes the player from the turn rotation for good
func (p *Player) Strand() {
	p.isStranded = true
}

// StartAccusing commits the player to an accusation for the rest of the turn
func (p *Player) StartAccusing() {
	p.isAccusing = true
	p.permissions = p.permissions.
		Without(model.PermRollDice).
		Without(model.PermMovePawn).
		Without(model.PermAccuse)
}

// UpdateLastSuspicionPosition records the room the player last entered
func (p *Player) UpdateLastSuspicionPosition(room model.RoomName) {
	p.lastSuspicionPosition = room
}

// MatchingCards returns the cards in the hand that appear in cards, in hand order
func (p *Player) MatchingCards(cards []model.Card) []model.Card {
	var matches []model.Card
	for _, held := range p.hand {
		for _, card := range cards {
			if held == card {
				matches = append(matches, held)
				break
			}
		}
	}
	return matches
}

// Info returns the public projection of the player. It never carries the hand.
func (p *Player) Info() model.PlayerInfo {
	return model.PlayerInfo{
		ID:                    p.id,
		Name:                  p.name,
		Character:             p.character,
		Position:              p.position,
		IsStranded:            p.isStranded,
		LastSuspicionPosition: p.lastSuspicionPosition,
	}
}
