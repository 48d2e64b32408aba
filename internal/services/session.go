package services

import (
	"context"
	"fmt"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

// SessionManager connects to the target database and acquires the single
// connection a run works through.
type SessionManager struct {
	connectorFactory func(*sparkify.ConnectionConfig) (sparkify.Connector, error)
	logger           sparkify.Logger
}

// NewSessionManager creates a SessionManager.
//
// Panics if any dependency is nil.
func NewSessionManager(
	connectorFactory func(*sparkify.ConnectionConfig) (sparkify.Connector, error),
	logger sparkify.Logger,
) *SessionManager {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &SessionManager{
		connectorFactory: connectorFactory,
		logger:           logger,
	}
}

// Open connects and acquires one connection. The caller must Close the session.
func (sm *SessionManager) Open(ctx context.Context, connConfig *sparkify.ConnectionConfig) (*sparkify.Session, error) {
	sm.logger.Verbose("Connecting to database '%s'", connConfig.Database)

	connector, err := sm.connectorFactory(connConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %q: %w", connConfig.Database, err)
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to acquire connection: %w: %w", sparkify.ErrConnectionFailed, err)
	}

	return sparkify.NewSession(pool, conn), nil
}
