package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jmehl/goblog/internal/models"
	"github.com/jmehl/goblog/internal/services"
	"github.com/jmehl/goblog/internal/session"
)

// contextKey is the context key type for the current user.
type contextKey string

const userContextKey = contextKey("currentUser")

// WithUser attaches the logged-in user to the context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// CurrentUser returns the logged-in user for this request, or nil for an
// anonymous request.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// LoadUser resolves the session's user id to a user row before every
// request. A session pointing at an id that no longer resolves (deleted
// account) reads as anonymous rather than an error.
func LoadUser(sessions *session.Manager, users services.UserServiceProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := sessions.UserID(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			user, err := users.GetUserByID(r.Context(), id)
			if err != nil {
				if !errors.Is(err, services.ErrNotFound) {
					log.Error().Err(err).Int64("user_id", id).Msg("Failed to load session user")
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), &user)))
		})
	}
}

// RequireLogin short-circuits anonymous requests with a redirect to the
// login page instead of invoking the wrapped handler.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			http.Redirect(w, r, "/auth/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
