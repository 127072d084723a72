package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"his-backend/internal/domain/entity"
	"his-backend/internal/usecase"
	"his-backend/pkg/response"
)

type contextKey string

const authContextKey contextKey = "auth_context"

// Authenticator is the slice of the auth use case the middleware needs.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*entity.AuthContext, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Authenticate resolves the bearer token into an AuthContext and stores it on
// the request context. Requests without a valid, unrevoked token stop here.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		auth, err := m.auth.Authenticate(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrInvalidToken):
				response.Unauthorized(w, "Invalid or expired token")
			case errors.Is(err, usecase.ErrSessionNotFound):
				response.Unauthorized(w, "Session has been revoked")
			case errors.Is(err, usecase.ErrUserInvalid):
				response.Unauthorized(w, "Account is not usable")
			default:
				response.InternalServerError(w, "Failed to authenticate request")
			}
			return
		}

		ctx := context.WithValue(r.Context(), authContextKey, auth)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAuthContext extracts the authenticated identity from context
func GetAuthContext(ctx context.Context) (*entity.AuthContext, bool) {
	auth, ok := ctx.Value(authContextKey).(*entity.AuthContext)
	return auth, ok
}
