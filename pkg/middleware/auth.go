package middleware

import (
	"context"
	"net/http"
	"strings"

	jwtutil "github.com/Dauren914/Reminder_Manager/pkg/jwt"
	"github.com/Dauren914/Reminder_Manager/pkg/logger"
)

type contextKey string

const userContextKey contextKey = "user"

// AuthMiddleware validates the Bearer token and stores its claims in the
// request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "Missing or malformed Authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := jwtutil.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				logger.Log.WithError(err).Warn("Rejected invalid token")
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the authenticated employee's claims, or nil if
// the request was not authenticated.
func GetUserFromContext(ctx context.Context) *jwtutil.Claims {
	claims, _ := ctx.Value(userContextKey).(*jwtutil.Claims)
	return claims
}
