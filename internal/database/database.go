package database

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS user (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS post (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	author_id INTEGER NOT NULL,
	created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	title TEXT NOT NULL,
	body TEXT NOT NULL DEFAULT '',
	FOREIGN KEY (author_id) REFERENCES user (id)
);
`

// DB wraps the connection pool. Statements issued through Querier run on the
// request-scoped connection when the context carries one.
type DB struct {
	*sql.DB
}

// New creates a new database connection pool.
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite3", dataSourceName+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return &DB{db}, nil
}

// Querier is the subset of database/sql the services use. Both *sql.DB and
// *sql.Conn satisfy it.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Querier returns the connection to run statements on: the request-scoped
// connection when the context carries one, the pool otherwise.
func (d *DB) Querier(ctx context.Context) (Querier, error) {
	if rc := requestConn(ctx); rc != nil {
		return rc.Acquire(ctx)
	}
	return d.DB, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *DB) error {
	_, err := db.Exec(schema)
	return err
}

// Init drops any existing tables and recreates the schema from scratch,
// destroying all data.
func Init(db *DB) error {
	if _, err := db.Exec("DROP TABLE IF EXISTS post; DROP TABLE IF EXISTS user;"); err != nil {
		return err
	}
	return Migrate(db)
}
