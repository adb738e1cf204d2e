package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cluegame-go/internal/model"
	"github.com/mcoot/cluegame-go/internal/services/game"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// startTwoPlayerGame seats ann (1, scarlet) and bob (2, mustard) and starts
func (s *IntegrationSuite) startTwoPlayerGame() *game.Controller {
	s.app.MockRandom.QueueString("GAME00000001")

	ann, err := s.app.LobbyController.Join(s.ctx, "ann")
	s.Require().NoError(err)
	s.Equal(model.PlayerID(1), ann.PlayerID)
	s.False(ann.IsFull)

	bob, err := s.app.LobbyController.Join(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(model.PlayerID(2), bob.PlayerID)

	s.Require().NoError(s.app.LobbyController.Start(s.ctx, ann.PlayerID))

	g, err := s.app.LobbyController.Game()
	s.Require().NoError(err)
	return g
}

// Test: Complete game flow from registration to a winning accusation
func (s *IntegrationSuite) TestCompleteGameFlow() {
	g := s.startTwoPlayerGame()
	s.Equal(model.GameID("GAME00000001"), g.ID())
	s.Equal(model.GameState{CurrentPlayerID: 1, Action: model.ActionNone}, g.State())

	hand, err := g.CardsOfPlayer(1)
	s.Require().NoError(err)
	s.Equal([]model.Card{
		{Category: model.CategoryRoom, Title: "lounge"},
		{Category: model.CategorySuspect, Title: "white"},
	}, hand)

	// Turn 1: ann walks into the hall and raises a suspicion
	s.Require().NoError(g.UpdateDiceCombination(1, model.DiceCombination{2, 2}))
	positions, err := g.FindPossiblePositions(1, g.LastDiceCombination().Sum())
	s.Require().NoError(err)
	s.Contains(positions, "4,0")

	moved := g.MovePawn(model.Position{X: 4, Y: 0}, 1)
	s.True(moved.IsMoved)
	s.True(moved.CanSuspect)
	s.Equal(model.RoomName("hall"), moved.Room)

	s.Require().NoError(g.ToggleIsSuspecting(1))
	s.Require().NoError(g.ValidateSuspicion(1, model.Combination{Weapon: "rope", Room: "hall", Suspect: "mustard"}))

	disproof, err := g.RuleOutSuspicion()
	s.Require().NoError(err)
	s.Require().True(disproof.Found())
	s.Equal(model.PlayerID(2), *disproof.InvalidatedBy)
	s.Equal([]model.Card{
		{Category: model.CategorySuspect, Title: "mustard"},
		{Category: model.CategoryWeapon, Title: "rope"},
	}, disproof.MatchingCards)

	s.Require().NoError(g.InvalidateCard(2, "rope"))
	s.Require().NoError(g.ChangeTurn(1))

	// Turn 2: bob accuses correctly
	s.True(g.IsCurrentPlayer(2))
	s.Require().NoError(g.ToggleIsAccusing(2))
	result, err := g.ValidateAccuse(s.ctx, 2, model.Combination{Weapon: "dagger", Room: "hall", Suspect: "scarlet"})
	s.Require().NoError(err)
	s.True(result.IsWon)
	s.True(g.IsGameOver())

	// The outcome is on record
	summaries, err := s.app.Storage.ListGameSummaries(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(summaries, 1)
	s.Require().NotNil(summaries[0].WinnerID)
	s.Equal(model.PlayerID(2), *summaries[0].WinnerID)
	s.Equal(s.app.MockClock.Now(), summaries[0].CompletedAt)

	// A finished match can be cleared for the next one
	s.Require().NoError(s.app.LobbyController.Reset(s.ctx))
	_, err = s.app.LobbyController.Game()
	s.ErrorIs(err, model.ErrGameNotStarted)
}

// Test: Every player strands themselves and nobody wins
func (s *IntegrationSuite) TestAllPlayersStranded() {
	g := s.startTwoPlayerGame()
	wrong := model.Combination{Weapon: "rope", Room: "lounge", Suspect: "white"}

	s.Require().NoError(g.ToggleIsAccusing(1))
	result, err := g.ValidateAccuse(s.ctx, 1, wrong)
	s.Require().NoError(err)
	s.False(result.IsWon)
	s.False(g.IsGameOver())
	s.Require().NoError(g.ChangeTurn(1))

	s.Require().NoError(g.ToggleIsAccusing(2))
	_, err = g.ValidateAccuse(s.ctx, 2, wrong)
	s.Require().NoError(err)
	s.True(g.IsGameOver())
	s.False(g.GameOverInfo().IsGameWon)

	s.ErrorIs(g.ChangeTurn(2), model.ErrGameOver)

	summary, err := s.app.Storage.GetGameSummary(s.ctx, "GAME00000001")
	s.Require().NoError(err)
	s.Nil(summary.WinnerID)
	s.Equal([]model.PlayerID{1, 2}, summary.StrandedPlayerIDs)
}

// Test: The last seat starts the game without an explicit start
func (s *IntegrationSuite) TestFullLobbyStartsGame() {
	for _, name := range []string{"ann", "bob"} {
		_, err := s.app.LobbyController.Join(s.ctx, name)
		s.Require().NoError(err)
	}
	result, err := s.app.LobbyController.Join(s.ctx, "cat")
	s.Require().NoError(err)
	s.True(result.IsFull)

	g, err := s.app.LobbyController.Game()
	s.Require().NoError(err)

	positions := g.CharacterPositions()
	s.Equal(model.Position{X: 0, Y: 0}, positions["scarlet"])
	s.Equal(model.Position{X: 0, Y: 1}, positions["mustard"])
	s.Equal(model.Position{X: 2, Y: 1}, positions["white"])

	_, err = s.app.LobbyController.Join(s.ctx, "dan")
	s.ErrorIs(err, model.ErrLobbyFull)
}

// Test: A stranded player is skipped for the rest of the game
func (s *IntegrationSuite) TestStrandedPlayerIsSkipped() {
	for _, name := range []string{"ann", "bob", "cat"} {
		_, err := s.app.LobbyController.Join(s.ctx, name)
		s.Require().NoError(err)
	}
	g, err := s.app.LobbyController.Game()
	s.Require().NoError(err)

	s.Require().NoError(g.ToggleIsAccusing(1))
	_, err = g.ValidateAccuse(s.ctx, 1, model.Combination{Weapon: "rope", Room: "hall", Suspect: "white"})
	s.Require().NoError(err)
	s.Require().NoError(g.ChangeTurn(1))
	s.Require().NoError(g.ChangeTurn(2))
	s.Require().NoError(g.ChangeTurn(3))

	s.True(g.IsCurrentPlayer(2))
	s.Equal([]model.PlayerID{1}, g.PlayersInfo().StrandedPlayerIDs)
}

// Test: The shipped data files wire into a working application
func (s *IntegrationSuite) TestNewWithShippedData() {
	app, err := New(Config{
		BoardPath: "../../data/board.json",
		CardsPath: "../../data/cards.json",
	})
	s.Require().NoError(err)
	s.Len(app.BoardService.StartPositions(), 6)
	s.Len(app.DeckService.Info().Room, 9)

	status, err := app.LobbyController.Status(s.ctx)
	s.Require().NoError(err)
	s.Equal(6, status.MaxPlayers)
	s.Empty(status.Members)
}

func (s *IntegrationSuite) TestNewRejectsBadConfig() {
	_, err := New(Config{BoardPath: "missing.json", CardsPath: "../../data/cards.json"})
	s.Error(err)

	_, err = New(Config{
		BoardPath:   "../../data/board.json",
		CardsPath:   "../../data/cards.json",
		StorageType: "sqlite",
	})
	s.Error(err)

	_, err = New(Config{
		BoardPath:   "../../data/board.json",
		CardsPath:   "../../data/cards.json",
		StorageType: StorageTypeRedis,
	})
	s.Error(err)
}
