package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	cookieName = "session"
	userIDKey  = "user_id"
)

// Manager wraps a signed-cookie session whose payload is exactly one
// optional field: the logged-in user's id.
type Manager struct {
	store *sessions.CookieStore
}

// NewManager creates a session manager that signs cookies with secret.
func NewManager(secret string) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

// UserID returns the user id carried by the request's session, if any. A
// missing or tampered cookie reads as anonymous.
func (m *Manager) UserID(r *http.Request) (int64, bool) {
	sess, err := m.store.Get(r, cookieName)
	if err != nil {
		return 0, false
	}
	id, ok := sess.Values[userIDKey].(int64)
	return id, ok
}

// SetUserID drops any previous session state and stores id as the sole
// session payload.
func (m *Manager) SetUserID(w http.ResponseWriter, r *http.Request, id int64) error {
	sess, _ := m.store.Get(r, cookieName)
	sess.Values = map[interface{}]interface{}{userIDKey: id}
	return sess.Save(r, w)
}

// Clear removes all session state. Clearing an absent session succeeds.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, cookieName)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}
