package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/capitolyouth/admin/internal/access"
	"github.com/capitolyouth/admin/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the JWT claims this service issues and accepts. The subject is
// the user id; Email is informational.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// BearerAuth returns middleware that validates a Bearer token and injects
// the resolved caller into the request context. Program-level authorization
// happens in the service layer against the caller's program assignment;
// this middleware only establishes identity.
func BearerAuth(cfg *config.AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				slog.Warn("auth: missing bearer token",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				http.Error(w, `{"error":"missing bearer token","code":"auth_missing_token"}`, http.StatusUnauthorized)
				return
			}

			caller, err := parseToken(token, cfg)
			if err != nil {
				slog.Warn("auth: invalid token",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
					"error", err,
				)
				http.Error(w, `{"error":"invalid token","code":"auth_invalid_token"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(access.WithCaller(r.Context(), caller)))
		})
	}
}

// parseToken validates signature, issuer, and expiry, and extracts the caller.
func parseToken(token string, cfg *config.AuthConfig) (access.Caller, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return access.Caller{}, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return access.Caller{}, err
	}

	return access.Caller{UserID: userID, Email: claims.Email}, nil
}
