package database

import (
	"context"
	"database/sql"
	"net/http"
)

type ctxKey struct{}

// RequestConn scopes one dedicated connection to a single request. The first
// Acquire checks a connection out of the pool; subsequent calls within the
// same request return that same connection.
type RequestConn struct {
	db     *sql.DB
	conn   *sql.Conn
	closed bool
}

// NewRequestConn creates an empty RequestConn; no connection is opened until
// Acquire is called.
func NewRequestConn(db *DB) *RequestConn {
	return &RequestConn{db: db.DB}
}

// Acquire returns the request's connection, opening it on first use.
func (rc *RequestConn) Acquire(ctx context.Context) (*sql.Conn, error) {
	if rc.closed {
		return nil, sql.ErrConnDone
	}
	if rc.conn == nil {
		conn, err := rc.db.Conn(ctx)
		if err != nil {
			return nil, err
		}
		rc.conn = conn
	}
	return rc.conn, nil
}

// Close returns the connection to the pool. Closing an already-closed or
// never-acquired RequestConn is a no-op.
func (rc *RequestConn) Close() error {
	if rc.closed || rc.conn == nil {
		rc.closed = true
		return nil
	}
	rc.closed = true
	return rc.conn.Close()
}

// WithRequestConn attaches rc to the context.
func WithRequestConn(ctx context.Context, rc *RequestConn) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

func requestConn(ctx context.Context) *RequestConn {
	rc, _ := ctx.Value(ctxKey{}).(*RequestConn)
	return rc
}

// Middleware scopes a lazily-opened connection to each request and releases
// it when the handler returns, on every exit path.
func Middleware(db *DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc := NewRequestConn(db)
			defer rc.Close()
			next.ServeHTTP(w, r.WithContext(WithRequestConn(r.Context(), rc)))
		})
	}
}
