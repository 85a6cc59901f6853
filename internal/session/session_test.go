package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip writes a session via write and returns a follow-up request
// carrying whatever cookies came back.
func roundTrip(t *testing.T, write func(w http.ResponseWriter, r *http.Request)) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	write(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	return next
}

func TestUserIDAbsentWithoutSession(t *testing.T) {
	m := NewManager("test-secret")

	_, ok := m.UserID(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestSetUserIDRoundTrip(t *testing.T) {
	m := NewManager("test-secret")

	next := roundTrip(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, m.SetUserID(w, r, 7))
	})

	id, ok := m.UserID(next)
	require.True(t, ok)
	assert.Equal(t, int64(7), id)
}

func TestClearRemovesUserID(t *testing.T) {
	m := NewManager("test-secret")

	withSession := roundTrip(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, m.SetUserID(w, r, 7))
	})

	rec := httptest.NewRecorder()
	require.NoError(t, m.Clear(rec, withSession))

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			next.AddCookie(c)
		}
	}
	_, ok := m.UserID(next)
	assert.False(t, ok)
}

func TestTamperedCookieReadsAsAnonymous(t *testing.T) {
	m := NewManager("test-secret")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: "garbage"})

	_, ok := m.UserID(r)
	assert.False(t, ok)
}

func TestDifferentSecretRejectsCookie(t *testing.T) {
	signer := NewManager("secret-one")
	verifier := NewManager("secret-two")

	next := roundTrip(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, signer.SetUserID(w, r, 7))
	})

	_, ok := verifier.UserID(next)
	assert.False(t, ok)
}
