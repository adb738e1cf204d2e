package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/mcoot/cluegame-go/internal/api/apierr"
)

// Recovery turns a panicking handler into a 500 JSON error.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				attrs := []any{
					slog.Any("error", rec),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())),
				}
				// Logging runs inside recovery and has already tagged the response
				if requestID := w.Header().Get(RequestIDHeader); requestID != "" {
					attrs = append(attrs, slog.String("request_id", requestID))
				}
				if playerID, ok := extractPlayerID(r); ok {
					attrs = append(attrs, slog.Int("player_id", int(playerID)))
				}
				logger.Error("handler panic", attrs...)

				apierr.WriteError(w, apierr.NewInternalError())
			}()

			next.ServeHTTP(w, r)
		})
	}
}
