package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/moodkeeper/internal/server/handlers"
	"github.com/iudanet/moodkeeper/internal/server/jwt"
)

// TokenValidator проверяет access token и возвращает его claims
type TokenValidator interface {
	Validate(tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware создает middleware для проверки JWT токена
func AuthMiddleware(logger *slog.Logger, tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Missing Authorization header", "path", r.URL.Path)
				writeError(w, "missing token", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				logger.Warn("Invalid Authorization header format")
				writeError(w, "invalid token format", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Validate(strings.TrimSpace(token))
			if err != nil {
				logger.Warn("Invalid access token", "error", err)
				writeError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			logger.Debug("User authenticated", "user_id", claims.UserID, "username", claims.Username)

			next.ServeHTTP(w, r.WithContext(handlers.WithUser(r.Context(), claims.UserID, claims.Username)))
		})
	}
}
