package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/mcoot/cluegame-go/internal/api/apierr"
	"github.com/mcoot/cluegame-go/internal/model"
)

type contextKey string

const playerIDContextKey contextKey = "player_id"

const (
	// PlayerIDHeader carries the caller's player ID
	PlayerIDHeader = "X-Player-ID"
	// PlayerIDCookie is set on join so browsers identify themselves
	PlayerIDCookie = "playerId"
)

// MemberChecker reports whether an ID belongs to a registered player
type MemberChecker interface {
	IsMember(ctx context.Context, playerID model.PlayerID) (bool, error)
}

// Identity resolves the calling player against the lobby
func Identity(members MemberChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			playerID, ok := extractPlayerID(r)
			if !ok {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			isMember, err := members.IsMember(r.Context(), playerID)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}
			if !isMember {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), playerIDContextKey, playerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractPlayerID reads the player ID from the request
func extractPlayerID(r *http.Request) (model.PlayerID, bool) {
	// Check header first
	raw := strings.TrimSpace(r.Header.Get(PlayerIDHeader))

	// Fall back to cookie
	if raw == "" {
		if cookie, err := r.Cookie(PlayerIDCookie); err == nil {
			raw = cookie.Value
		}
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return model.PlayerID(id), true
}

// GetPlayerID returns the calling player's ID from the request context
func GetPlayerID(ctx context.Context) (model.PlayerID, bool) {
	playerID, ok := ctx.Value(playerIDContextKey).(model.PlayerID)
	return playerID, ok
}

// MustGetPlayerID returns the calling player's ID or panics
func MustGetPlayerID(ctx context.Context) model.PlayerID {
	playerID, ok := GetPlayerID(ctx)
	if !ok {
		panic("no player in context - identity middleware not applied?")
	}
	return playerID
}
