// internal/api/handler/auth_middleware.go
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"kumbara-api/internal/service"
	"kumbara-api/internal/util"
)

type contextKey string

// userIDKey carries the authenticated account ID through the request context.
const userIDKey contextKey = "userID"

// Authenticate validates the bearer token and injects the account ID
// into the request context.
func Authenticate(authService service.AuthService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondWithError(logger, w, util.ErrUnauthorized)
				return
			}

			userID, err := authService.VerifyToken(token)
			if err != nil {
				respondWithError(logger, w, util.ErrUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated account ID set by Authenticate.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
