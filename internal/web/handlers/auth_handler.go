package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jmehl/goblog/internal/services"
	"github.com/jmehl/goblog/internal/session"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	users    services.UserServiceProvider
	sessions *session.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

// Register renders the registration form and creates the account on POST.
// Validation and duplicate-username failures re-render the form with a
// flash message; success redirects to the login page.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		username := r.FormValue("username")
		err := h.users.Register(r.Context(), username, r.FormValue("password"))
		if err == nil {
			http.Redirect(w, r, "/auth/login", http.StatusFound)
			return
		}
		if msg, ok := flashMessage(err); ok {
			render(w, r, registerTmpl, viewData{Flash: msg})
			return
		}
		log.Error().Err(err).Str("username", username).Msg("Failed to register user")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	render(w, r, registerTmpl, viewData{})
}

// Login renders the login form and starts a session on POST. The session's
// prior state is replaced by the user id alone.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		username := r.FormValue("username")
		user, err := h.users.Authenticate(r.Context(), username, r.FormValue("password"))
		if err == nil {
			if err := h.sessions.SetUserID(w, r, user.ID); err != nil {
				log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to save session")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		if msg, ok := flashMessage(err); ok {
			render(w, r, loginTmpl, viewData{Flash: msg})
			return
		}
		log.Error().Err(err).Str("username", username).Msg("Failed to authenticate user")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	render(w, r, loginTmpl, viewData{})
}

// Logout clears the session unconditionally and returns to the post index.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		log.Error().Err(err).Msg("Failed to clear session")
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
