package model

// CardCategory is the kind of a card
type CardCategory string

const (
	CategoryWeapon  CardCategory = "weapon"
	CategoryRoom    CardCategory = "room"
	CategorySuspect CardCategory = "suspect"
)

// Categories lists every card category in display order
func Categories() []CardCategory {
	return []CardCategory{CategoryWeapon, CategoryRoom, CategorySuspect}
}

// Card is a single card in the deck
type Card struct {
	Category CardCategory `json:"type"`
	Title    string       `json:"title"`
}

// Combination names one card per category. Used for the killing combination,
// suspicions and accusations.
type Combination struct {
	Weapon  string `json:"weapon"`
	Room    string `json:"room"`
	Suspect string `json:"suspect"`
}

// Title returns the card title held for a category
func (c Combination) Title(category CardCategory) string {
	switch category {
	case CategoryWeapon:
		return c.Weapon
	case CategoryRoom:
		return c.Room
	case CategorySuspect:
		return c.Suspect
	default:
		return ""
	}
}

// Cards returns the non-empty entries of the combination as cards
func (c Combination) Cards() []Card {
	cards := make([]Card, 0, 3)
	for _, category := range Categories() {
		if title := c.Title(category); title != "" {
			cards = append(cards, Card{Category: category, Title: title})
		}
	}
	return cards
}

// Contains reports whether any category of the combination carries the title
func (c Combination) Contains(title string) bool {
	if title == "" {
		return false
	}
	return c.Weapon == title || c.Room == title || c.Suspect == title
}

// Matches reports whether every category equals the other combination
func (c Combination) Matches(other Combination) bool {
	return c.Weapon == other.Weapon && c.Room == other.Room && c.Suspect == other.Suspect
}

// CardsInfo is the card master list, one title list per category
type CardsInfo struct {
	Weapon  []string `json:"weapon"`
	Room    []string `json:"room"`
	Suspect []string `json:"suspect"`
}

// Titles returns the master list for a category
func (ci CardsInfo) Titles(category CardCategory) []string {
	switch category {
	case CategoryWeapon:
		return ci.Weapon
	case CategoryRoom:
		return ci.Room
	case CategorySuspect:
		return ci.Suspect
	default:
		return nil
	}
}
