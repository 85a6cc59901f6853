package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmehl/goblog/internal/services"
)

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		message  string
	}{
		{"both empty, username takes priority", "", "", "Username is required."},
		{"empty username", "", "a", "Username is required."},
		{"empty password", "a", "", "Password is required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			svc := services.NewUserService(db)

			err := svc.Register(context.Background(), tt.username, tt.password)

			var ve *services.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.message, ve.Message)

			var count int
			require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM user").Scan(&count))
			assert.Zero(t, count, "no row may be written on a validation failure")
		})
	}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewUserService(db)

	require.NoError(t, svc.Register(context.Background(), "a", "a"))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM user").Scan(&count))
	assert.Equal(t, 1, count)

	var stored string
	require.NoError(t, db.QueryRow("SELECT password FROM user WHERE username = 'a'").Scan(&stored))
	assert.NotEqual(t, "a", stored, "plaintext must never be stored")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("a")))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewUserService(db)
	seedUser(t, db, "test", "test")

	err := svc.Register(context.Background(), "test", "other")

	var ce *services.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "User test is already registered.", ce.Message)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM user").Scan(&count))
	assert.Equal(t, 1, count, "duplicate insert must not create a row")
}

func TestAuthenticateUnknownUsername(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewUserService(db)
	seedUser(t, db, "test", "test")

	// The username error wins even when the password would match another
	// account.
	_, err := svc.Authenticate(context.Background(), "nobody", "test")

	var ve *services.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Incorrect username.", ve.Message)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewUserService(db)
	seedUser(t, db, "test", "test")

	_, err := svc.Authenticate(context.Background(), "test", "wrong")

	var ve *services.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Incorrect password.", ve.Message)
}

func TestAuthenticateSuccess(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewUserService(db)
	id := seedUser(t, db, "test", "test")

	user, err := svc.Authenticate(context.Background(), "test", "test")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "test", user.Username)
}

func TestGetUserByID(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewUserService(db)
	id := seedUser(t, db, "test", "test")

	user, err := svc.GetUserByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "test", user.Username)

	_, err = svc.GetUserByID(context.Background(), id+1)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
