package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound   = errors.New("player not found")
	ErrNoEligiblePlayer = errors.New("no eligible player: every player is stranded")

	// Lobby errors
	ErrLobbyNotFound       = errors.New("lobby not found")
	ErrLobbyFull           = errors.New("lobby is full")
	ErrNotInLobby          = errors.New("player is not in lobby")
	ErrGameInProgress      = errors.New("game is in progress")
	ErrGameNotStarted      = errors.New("game has not started")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")
	ErrInvalidName         = errors.New("invalid player name")

	// Game errors
	ErrNotPlayerTurn      = errors.New("not this player's turn")
	ErrActionNotPermitted = errors.New("action not permitted in this phase")
	ErrGameOver           = errors.New("game is over")
	ErrNoOpenSuspicion    = errors.New("no suspicion is open")
	ErrInvalidCard        = errors.New("card is not part of the suspicion")
	ErrInvalidCombination = errors.New("combination must name one card per category")

	// History errors
	ErrGameSummaryNotFound = errors.New("game summary not found")

	// Configuration errors
	ErrInvalidBoardConfig = errors.New("invalid board configuration")
	ErrInvalidCardsInfo   = errors.New("invalid card master list")
	ErrInsufficientStarts = errors.New("board has fewer start positions than players")
)
