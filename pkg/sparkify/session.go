package sparkify

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Session holds the single database connection an ETL run works through.
//
// Session manages the lifecycle of the pool and the connection acquired from
// it and releases both through Close().
//
// Thread-Safety: NOT safe for concurrent use. The ETL is sequential by
// contract, and the per-file surrogate key scheme relies on it.
//
// Example usage:
//
//	session, err := sessionManager.Open(ctx, connConfig)
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
type Session struct {
	pool *pgxpool.Pool
	conn *pgxpool.Conn
}

// NewSession creates a new Session instance.
//
// Panics if pool or conn is nil.
func NewSession(pool *pgxpool.Pool, conn *pgxpool.Conn) *Session {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if conn == nil {
		panic("conn cannot be nil")
	}

	return &Session{
		pool: pool,
		conn: conn,
	}
}

// Conn returns the connection every statement of the run goes through.
// The connection is valid until Close() is called.
func (s *Session) Conn() *pgxpool.Conn {
	return s.conn
}

// Close releases the connection and closes the pool.
// This method is idempotent and safe to call multiple times.
func (s *Session) Close() error {
	if s.conn != nil {
		s.conn.Release()
		s.conn = nil
	}

	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}

	return nil
}
