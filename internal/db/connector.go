package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

// The ETL runs every statement through one connection, so the pool never
// needs more than one.
const (
	DefaultMaxConns = 1
	DefaultMinConns = 0
)

func configurePool(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
}

// StandardConnector implements the Connector interface for standard
// username/password authentication. A failed connection attempt is not
// retried.
type StandardConnector struct {
	config *sparkify.ConnectionConfig
}

// NewStandardConnector creates a new StandardConnector with the given configuration.
func NewStandardConnector(config *sparkify.ConnectionConfig) *StandardConnector {
	return &StandardConnector{config: config}
}

// Connect establishes a single-connection pool and verifies it with a ping.
func (c *StandardConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(BuildConnectionString(c.config))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %v: %w", err, sparkify.ErrInvalidConfig)
	}

	configurePool(poolConfig)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
	}

	return pool, nil
}

// NewConnector is the connector factory used by the session manager.
func NewConnector(config *sparkify.ConnectionConfig) (sparkify.Connector, error) {
	if config == nil {
		return nil, fmt.Errorf("connection config is nil: %w", sparkify.ErrInvalidConfig)
	}
	return NewStandardConnector(config), nil
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
// The original error stays reachable through errors.Is / errors.As.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	var hint string
	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		hint = fmt.Sprintf("connection refused to %s (is PostgreSQL running? check: pg_isready -h %s -p %d)", addr, host, port)
	case strings.Contains(errStr, "no such host"):
		hint = fmt.Sprintf("cannot resolve host %q", host)
	case strings.Contains(errStr, "password authentication failed"):
		hint = fmt.Sprintf("password authentication failed for database %q (check $PGPASSWORD or ~/.pgpass)", database)
	case strings.Contains(errStr, "does not exist"):
		hint = fmt.Sprintf("database %q does not exist (run: createdb %s, then sparkify tables create)", database, database)
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		hint = fmt.Sprintf("connection timed out to %s", addr)
	default:
		hint = "failed to connect to database"
	}

	return fmt.Errorf("%s: %w: %w", hint, sparkify.ErrConnectionFailed, err)
}
