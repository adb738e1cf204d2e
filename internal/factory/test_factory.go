package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/cluegame-go/internal/dependencies/mocks"
	"github.com/mcoot/cluegame-go/internal/model"
	"github.com/mcoot/cluegame-go/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// It plays on TestBoardConfig with TestCardsInfo and seats up to three players.
//
// With nothing queued on MockRandom the deal is fixed: the killing
// combination is {dagger, hall, scarlet}. With two players, player 1 holds
// [lounge, white] and player 2 holds [mustard, rope].
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app, err := newWithDependencies(store, mockClock, mockRandom, TestBoardConfig(), TestCardsInfo(), model.LobbyConfig{
		MinPlayers: 2,
		MaxPlayers: 3,
	}, logger)
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// TestBoardConfig is a 5x2 board with a room at the end of each row:
//
//	S . . . H     S = scarlet start, H = hall
//	M . W . L     M = mustard, W = white, L = lounge
func TestBoardConfig() model.BoardConfig {
	return model.BoardConfig{
		Width:  5,
		Height: 2,
		Tiles: []model.TileConfig{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0, Label: "hall-door"},
			{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1, Label: "lounge-door"},
		},
		Rooms: map[model.RoomName][]string{
			"hall":   {"hall-door"},
			"lounge": {"lounge-door"},
		},
		Starts: []model.StartConfig{
			{Character: "scarlet", Position: model.Position{X: 0, Y: 0}},
			{Character: "mustard", Position: model.Position{X: 0, Y: 1}},
			{Character: "white", Position: model.Position{X: 2, Y: 1}},
		},
	}
}

// TestCardsInfo is the card master list matching TestBoardConfig
func TestCardsInfo() model.CardsInfo {
	return model.CardsInfo{
		Weapon:  []string{"dagger", "rope"},
		Room:    []string{"hall", "lounge"},
		Suspect: []string{"scarlet", "mustard", "white"},
	}
}
