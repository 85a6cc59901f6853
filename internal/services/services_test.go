package services_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jmehl/goblog/internal/database"
	"github.com/jmehl/goblog/internal/services"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Init(db))
	return db
}

// seedUser registers a user through the service and returns its id.
func seedUser(t *testing.T, db *database.DB, username, password string) int64 {
	t.Helper()
	require.NoError(t, services.NewUserService(db).Register(context.Background(), username, password))

	var id int64
	require.NoError(t, db.QueryRow("SELECT id FROM user WHERE username = ?", username).Scan(&id))
	return id
}

// seedPost inserts a post directly so tests can control the created time.
func seedPost(t *testing.T, db *database.DB, title, body string, authorID int64, created time.Time) int64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO post (title, body, author_id, created) VALUES (?, ?, ?, ?)",
		title, body, authorID, created,
	)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func postCount(t *testing.T, db *database.DB) int {
	t.Helper()
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM post").Scan(&count))
	return count
}
