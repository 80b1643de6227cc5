package common

import (
	"context"
	"log"
	"net/http"
	"strings"
)

type contextKey string

const authUserContextKey contextKey = "authUser"

// AuthenticatedUser represents the JWT-derived principal.
type AuthenticatedUser struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Picture  string `json:"picture,omitempty"`
	Role     string `json:"role,omitempty"`
}

// DisplayName picks the friendliest non-empty name.
func (u AuthenticatedUser) DisplayName() string {
	for _, candidate := range []string{u.Name, u.Username} {
		if v := strings.TrimSpace(candidate); v != "" {
			return v
		}
	}
	return ""
}

// ContextWithUser stores the authenticated user into context.
func ContextWithUser(ctx context.Context, user AuthenticatedUser) context.Context {
	return context.WithValue(ctx, authUserContextKey, user)
}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (AuthenticatedUser, bool) {
	user, ok := ctx.Value(authUserContextKey).(AuthenticatedUser)
	return user, ok
}

// RequireRole rejects requests whose authenticated user lacks role.
// It must run after the authentication middleware.
func RequireRole(logger *log.Logger, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				WriteError(logger, w, http.StatusUnauthorized, "authentication required")
				return
			}
			if role == "" || user.Role != role {
				WriteError(logger, w, http.StatusForbidden, "moderator access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
