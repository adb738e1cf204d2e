package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/cluegame-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidName         = "INVALID_NAME"
	CodeInvalidCard         = "INVALID_CARD"
	CodeInvalidCombination  = "INVALID_COMBINATION"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNotYourTurn         = "NOT_YOUR_TURN"
	CodeNotMoved            = "NOT_MOVED"
	CodeActionNotPermitted  = "ACTION_NOT_PERMITTED"
	CodeNoOpenSuspicion     = "NO_OPEN_SUSPICION"
	CodeNoEligiblePlayer    = "NO_ELIGIBLE_PLAYER"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeGameSummaryNotFound = "GAME_SUMMARY_NOT_FOUND"
	CodeLobbyFull           = "LOBBY_FULL"
	CodeNotInLobby          = "NOT_IN_LOBBY"
	CodeGameInProgress      = "GAME_IN_PROGRESS"
	CodeGameNotStarted      = "GAME_NOT_STARTED"
	CodeGameOver            = "GAME_OVER"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Turn errors
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusUnauthorized, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrActionNotPermitted):
		return &httpError{http.StatusConflict, APIError{CodeActionNotPermitted, "Action not permitted in this phase"}}
	case errors.Is(err, model.ErrGameOver):
		return &httpError{http.StatusConflict, APIError{CodeGameOver, "Game is over"}}
	case errors.Is(err, model.ErrNoOpenSuspicion):
		return &httpError{http.StatusConflict, APIError{CodeNoOpenSuspicion, "No suspicion is open"}}
	case errors.Is(err, model.ErrNoEligiblePlayer):
		return &httpError{http.StatusConflict, APIError{CodeNoEligiblePlayer, "Every player is stranded"}}
	case errors.Is(err, model.ErrInvalidCard):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidCard, "Card not present"}}
	case errors.Is(err, model.ErrInvalidCombination):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidCombination, "Combination must name a weapon, a room and a suspect"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}

	// Lobby errors
	case errors.Is(err, model.ErrLobbyFull):
		return &httpError{http.StatusNotAcceptable, APIError{CodeLobbyFull, "Room is Full"}}
	case errors.Is(err, model.ErrNotInLobby):
		return &httpError{http.StatusForbidden, APIError{CodeNotInLobby, "Not in the lobby"}}
	case errors.Is(err, model.ErrGameInProgress):
		return &httpError{http.StatusConflict, APIError{CodeGameInProgress, "Game is in progress"}}
	case errors.Is(err, model.ErrGameNotStarted):
		return &httpError{http.StatusConflict, APIError{CodeGameNotStarted, "Game has not started"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrInvalidName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidName, "Name must be 1-24 characters"}}

	// History errors
	case errors.Is(err, model.ErrGameSummaryNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameSummaryNotFound, "Game summary not found"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewNotMovedError is returned when a pawn move was refused
func NewNotMovedError() error {
	return &httpError{http.StatusBadRequest, APIError{CodeNotMoved, "Pawn was not moved"}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Player identity required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
