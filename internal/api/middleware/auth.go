package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tilematch/backend/internal/api/apierr"
	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/services/identity"
)

type contextKey string

const (
	userContextKey    contextKey = "user"
	sessionContextKey contextKey = "session"
)

// Auth creates authentication middleware
func Auth(identityService *identity.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := identityService.ValidateSession(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			// Add session and user to context
			ctx := r.Context()
			ctx = context.WithValue(ctx, sessionContextKey, session)
			ctx = context.WithValue(ctx, userContextKey, &session.User)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie("session")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetUser returns the authenticated user from the request context
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *identity.Session {
	session, _ := ctx.Value(sessionContextKey).(*identity.Session)
	return session
}

// MustGetUser returns the authenticated user or panics
func MustGetUser(ctx context.Context) *model.User {
	user := GetUser(ctx)
	if user == nil {
		panic("no user in context - auth middleware not applied?")
	}
	return user
}
