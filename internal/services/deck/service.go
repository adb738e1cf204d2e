package deck

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mcoot/cluegame-go/internal/dependencies/random"
	"github.com/mcoot/cluegame-go/internal/model"
)

// Deal is the outcome of dealing a fresh deck
type Deal struct {
	KillingCombination model.Combination
	Hands              [][]model.Card // One hand per seat, in seat order
}

// Service owns the card master list and deals it for each match
type Service struct {
	info   model.CardsInfo
	random random.Random
}

// New creates a deck service over a validated master list
func New(info model.CardsInfo, random random.Random) (*Service, error) {
	if err := Validate(info); err != nil {
		return nil, err
	}
	return &Service{
		info:   info,
		random: random,
	}, nil
}

// LoadCardsInfo reads the card master list from a JSON file
func LoadCardsInfo(path string) (model.CardsInfo, error) {
	var info model.CardsInfo

	data, err := os.ReadFile(path)
	if err != nil {
		return info, fmt.Errorf("failed to read cards info: %w", err)
	}

	if err := json.Unmarshal(data, &info); err != nil {
		return info, fmt.Errorf("%w: %v", model.ErrInvalidCardsInfo, err)
	}

	return info, Validate(info)
}

// Validate checks that every category has cards and no title repeats
func Validate(info model.CardsInfo) error {
	seen := make(map[string]model.CardCategory)
	for _, category := range model.Categories() {
		titles := info.Titles(category)
		if len(titles) == 0 {
			return fmt.Errorf("%w: no %s cards", model.ErrInvalidCardsInfo, category)
		}
		for _, title := range titles {
			if title == "" {
				return fmt.Errorf("%w: empty %s title", model.ErrInvalidCardsInfo, category)
			}
			if other, dup := seen[title]; dup {
				return fmt.Errorf("%w: %q is both a %s and a %s card", model.ErrInvalidCardsInfo, title, other, category)
			}
			seen[title] = category
		}
	}
	return nil
}

// Info returns the master list
func (s *Service) Info() model.CardsInfo {
	return s.info
}

// CheckRooms verifies that every room card names a room on the board
func (s *Service) CheckRooms(rooms []model.RoomName) error {
	onBoard := make(map[string]bool, len(rooms))
	for _, r := range rooms {
		onBoard[string(r)] = true
	}
	for _, title := range s.info.Room {
		if !onBoard[title] {
			return fmt.Errorf("%w: room card %q has no room on the board", model.ErrInvalidCardsInfo, title)
		}
	}
	return nil
}

// Deal draws one card per category as the killing combination, then
// shuffles the rest and deals them round-robin. Hands differ in size by at
// most one card.
func (s *Service) Deal(playerCount int) (Deal, error) {
	if playerCount <= 0 {
		return Deal{}, model.ErrInsufficientPlayers
	}

	var killing model.Combination
	var rest []model.Card
	for _, category := range model.Categories() {
		titles := s.info.Titles(category)
		pick := s.random.Intn(len(titles))
		for i, title := range titles {
			if i == pick {
				continue
			}
			rest = append(rest, model.Card{Category: category, Title: title})
		}

		switch category {
		case model.CategoryWeapon:
			killing.Weapon = titles[pick]
		case model.CategoryRoom:
			killing.Room = titles[pick]
		case model.CategorySuspect:
			killing.Suspect = titles[pick]
		}
	}

	s.random.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})

	hands := make([][]model.Card, playerCount)
	for i, card := range rest {
		seat := i % playerCount
		hands[seat] = append(hands[seat], card)
	}

	return Deal{
		KillingCombination: killing,
		Hands:              hands,
	}, nil
}
