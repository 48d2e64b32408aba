package services

import (
	"context"
	"fmt"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/db"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/facts"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/files/filesystem"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/schema"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/store"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

// ETLService runs whole ETL jobs and schema maintenance against a database.
type ETLService struct {
	sessions *SessionManager
	fs       filesystem.FileSystemProvider
	locator  sparkify.FileLocator
	queries  schema.Queries
	logger   sparkify.Logger
}

// NewETLService creates an ETLService.
//
// Panics if any dependency is nil.
func NewETLService(
	sessions *SessionManager,
	fsProvider filesystem.FileSystemProvider,
	locator sparkify.FileLocator,
	queries schema.Queries,
	logger sparkify.Logger,
) *ETLService {
	if sessions == nil {
		panic("sessions cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if locator == nil {
		panic("locator cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &ETLService{
		sessions: sessions,
		fs:       fsProvider,
		locator:  locator,
		queries:  queries,
		logger:   logger,
	}
}

// Run loads all song files, then all log files, into the database named by
// config.ConnectionString.
func (s *ETLService) Run(ctx context.Context, config sparkify.RunConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	connConfig, err := parseConnectionString(config.ConnectionString)
	if err != nil {
		return err
	}

	session, err := s.sessions.Open(ctx, connConfig)
	if err != nil {
		return err
	}
	defer session.Close()

	transactor := store.NewTransactor(session.Conn(), s.queries)
	pipeline := NewPipeline(s.locator, transactor, s.logger)

	songs := NewSongProcessor(s.fs, s.logger)
	logs := NewLogProcessor(s.fs, facts.NewLoader(s.logger), s.logger)

	if err := pipeline.Run(ctx, config.SongDataPath, songs, config.LogDataPath, logs); err != nil {
		return err
	}

	s.logger.Verbose("ETL run completed")
	return nil
}

// CreateTables creates the star schema if it does not exist.
func (s *ETLService) CreateTables(ctx context.Context, connConfig *sparkify.ConnectionConfig) error {
	return s.withSession(ctx, connConfig, func(ctx context.Context, session *sparkify.Session) error {
		if err := schema.CreateTables(ctx, session.Conn()); err != nil {
			return err
		}
		s.logger.Info("Tables created in '%s'", connConfig.Database)
		return nil
	})
}

// DropTables drops the star schema if it exists.
func (s *ETLService) DropTables(ctx context.Context, connConfig *sparkify.ConnectionConfig) error {
	return s.withSession(ctx, connConfig, func(ctx context.Context, session *sparkify.Session) error {
		if err := schema.DropTables(ctx, session.Conn()); err != nil {
			return err
		}
		s.logger.Info("Tables dropped in '%s'", connConfig.Database)
		return nil
	})
}

func (s *ETLService) withSession(ctx context.Context, connConfig *sparkify.ConnectionConfig, fn func(context.Context, *sparkify.Session) error) error {
	session, err := s.sessions.Open(ctx, connConfig)
	if err != nil {
		return err
	}
	defer session.Close()

	return fn(ctx, session)
}

func parseConnectionString(connStr string) (*sparkify.ConnectionConfig, error) {
	connConfig, err := db.ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w: %w", sparkify.ErrInvalidConfig, err)
	}
	return connConfig, nil
}
