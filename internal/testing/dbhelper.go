package testing

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/db"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/files/filesystem"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/files/locator"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/logging"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/schema"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/services"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/testinfra"
)

// TestConnEnvVar names the environment variable that points integration
// tests at an existing server instead of a container.
const TestConnEnvVar = "SPARKIFY_TEST_CONN"

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		container, err := testinfra.StartPostgres(context.Background())
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns the test database connection string.
// Priority: SPARKIFY_TEST_CONN env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv(TestConnEnvVar); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", TestConnEnvVar, err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// NewTestETLService creates an ETLService over the OS filesystem with the
// standard connector and a silent logger.
func NewTestETLService(t *testing.T) *services.ETLService {
	t.Helper()
	return NewTestETLServiceWithFS(t, filesystem.NewOSFileSystem())
}

// NewTestETLServiceWithFS creates an ETLService reading input from fsProvider.
func NewTestETLServiceWithFS(t *testing.T, fsProvider filesystem.FileSystemProvider) *services.ETLService {
	t.Helper()

	logger := logging.NewNullLogger()
	return services.NewETLService(
		services.NewSessionManager(db.NewConnector, logger),
		fsProvider,
		locator.NewLocatorWithFS(fsProvider),
		schema.Default(),
		logger,
	)
}

// NewTestDatabase creates a uniquely named database with the sparkify
// tables, drops it when the test ends and returns its connection string.
func NewTestDatabase(t *testing.T, connString string) string {
	t.Helper()

	dbName := "sparkify_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	t.Cleanup(CreateTestDB(t, connString, dbName))

	pool := GetTestPool(t, connString, dbName)
	if err := schema.CreateTables(context.Background(), pool); err != nil {
		t.Fatalf("Failed to create tables in %s: %v", dbName, err)
	}

	return TargetConnectionString(t, connString, dbName)
}

// TargetConnectionString rewrites connString to point at dbName.
func TargetConnectionString(t *testing.T, connString, dbName string) string {
	t.Helper()

	config, err := db.ParseConnectionString(connString)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}
	config.Database = dbName
	return db.BuildConnectionString(config)
}

// CreateTestDB creates a test database with the given name.
// Returns a cleanup function that should be called with t.Cleanup().
func CreateTestDB(t *testing.T, connString, dbName string) func() {
	t.Helper()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect for test DB creation: %v", err)
	}

	_, err = pool.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", dbName))
	pool.Close()
	if err != nil {
		t.Fatalf("Failed to create test database %s: %v", dbName, err)
	}

	return func() {
		CleanupTestDB(t, connString, dbName)
	}
}

// CleanupTestDB drops the test database.
// Safe to call multiple times (uses DROP DATABASE IF EXISTS).
func CleanupTestDB(t *testing.T, connString, dbName string) {
	t.Helper()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Logf("Warning: Failed to connect for cleanup: %v", err)
		return
	}
	defer pool.Close()

	_, err = pool.Exec(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()
	`, dbName)
	if err != nil {
		t.Logf("Warning: Failed to terminate connections to %s: %v", dbName, err)
	}

	if _, err = pool.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName)); err != nil {
		t.Logf("Warning: Failed to drop database %s: %v", dbName, err)
	}
}

// GetTestPool creates a connection pool to the specified database for testing.
// The pool is automatically closed when the test completes.
func GetTestPool(t *testing.T, connString, dbName string) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), TargetConnectionString(t, connString, dbName))
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}
