package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/cluegame-go/internal/api/handler"
	"github.com/mcoot/cluegame-go/internal/api/middleware"
	"github.com/mcoot/cluegame-go/internal/events"
	"github.com/mcoot/cluegame-go/internal/services/lobby"
	"github.com/mcoot/cluegame-go/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	LobbyController lobby.ControllerInterface
	Storage         storage.Storage
	Events          *events.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	publisher := events.NewPublisher(cfg.Events, cfg.Logger)
	lobbyHandler := handler.NewLobbyHandler(cfg.LobbyController, publisher)
	gameHandler := handler.NewGameHandler(cfg.LobbyController, publisher)
	historyHandler := handler.NewHistoryHandler(cfg.Storage)
	eventsHandler := handler.NewEventsHandler(cfg.Events)
	healthHandler := handler.NewHealthHandler(cfg.LobbyController)

	// Create middleware
	identityMiddleware := middleware.Identity(cfg.LobbyController)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Lobby routes (joining and viewing need no identity)
	api.HandleFunc("/lobby", lobbyHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/lobby/join", lobbyHandler.Join).Methods(http.MethodPost)

	lobbyMembers := api.PathPrefix("/lobby").Subrouter()
	lobbyMembers.Use(identityMiddleware)
	lobbyMembers.HandleFunc("/start", lobbyHandler.Start).Methods(http.MethodPost)
	lobbyMembers.HandleFunc("/leave", lobbyHandler.Leave).Methods(http.MethodPost)
	lobbyMembers.HandleFunc("/reset", lobbyHandler.Reset).Methods(http.MethodPost)

	// Game routes (all require a registered player)
	games := api.PathPrefix("/game").Subrouter()
	games.Use(identityMiddleware)
	games.HandleFunc("/cards-info", gameHandler.CardsInfo).Methods(http.MethodGet)
	games.HandleFunc("/initial-state", gameHandler.InitialState).Methods(http.MethodGet)
	games.HandleFunc("/state", gameHandler.State).Methods(http.MethodGet)
	games.HandleFunc("/players-info", gameHandler.PlayersInfo).Methods(http.MethodGet)
	games.HandleFunc("/roll-dice", gameHandler.RollDice).Methods(http.MethodPost)
	games.HandleFunc("/possible-positions", gameHandler.PossiblePositions).Methods(http.MethodGet)
	games.HandleFunc("/move-pawn", gameHandler.MovePawn).Methods(http.MethodPost)
	games.HandleFunc("/end-turn", gameHandler.EndTurn).Methods(http.MethodPost)
	games.HandleFunc("/start-accusation", gameHandler.StartAccusation).Methods(http.MethodPost)
	games.HandleFunc("/accuse", gameHandler.Accuse).Methods(http.MethodPost)
	games.HandleFunc("/accusation-result", gameHandler.AccusationResult).Methods(http.MethodGet)
	games.HandleFunc("/start-suspicion", gameHandler.StartSuspicion).Methods(http.MethodPost)
	games.HandleFunc("/suspect", gameHandler.Suspect).Methods(http.MethodPost)
	games.HandleFunc("/suspicion", gameHandler.Suspicion).Methods(http.MethodGet)
	games.HandleFunc("/rule-out-suspicion", gameHandler.RuleOutSuspicion).Methods(http.MethodGet)
	games.HandleFunc("/invalidate", gameHandler.Invalidate).Methods(http.MethodPost)
	games.HandleFunc("/character-positions", gameHandler.CharacterPositions).Methods(http.MethodGet)
	games.HandleFunc("/last-suspicion-position", gameHandler.LastSuspicionPosition).Methods(http.MethodGet)
	games.HandleFunc("/game-over", gameHandler.GameOver).Methods(http.MethodGet)

	// Push stream of lobby and game changes (members only)
	api.Handle("/events", identityMiddleware(http.HandlerFunc(eventsHandler.Stream))).Methods(http.MethodGet)

	// History routes (public)
	api.HandleFunc("/history", historyHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/history/{id}", historyHandler.Get).Methods(http.MethodGet)

	// Health check endpoint (no identity)
	api.HandleFunc("/health", healthHandler.Check).Methods(http.MethodGet)

	return r
}
