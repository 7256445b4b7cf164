package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Integration tests run against a throwaway Postgres container.
// They are skipped with -short or when no Docker provider is reachable.

var (
	containerOnce sync.Once
	container     *postgres.PostgresContainer
	containerDSN  string
	containerErr  error
)

func TestMain(m *testing.M) {
	code := m.Run()
	if container != nil {
		_ = container.Terminate(context.Background())
	}
	os.Exit(code)
}

func startContainer(ctx context.Context) {
	container, containerErr = postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("volleypro_test"),
		postgres.WithUsername("volleypro"),
		postgres.WithPassword("volleypro"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if containerErr != nil {
		return
	}
	containerDSN, containerErr = container.ConnectionString(ctx, "sslmode=disable")
}

func setupTestDB(t *testing.T) (*Database, context.Context) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	containerOnce.Do(func() { startContainer(ctx) })
	require.NoError(t, containerErr, "Failed to start postgres container")

	db, err := NewDatabase(ctx, Config{URL: containerDSN, MaxConns: 5})
	require.NoError(t, err, "Failed to connect to test database")

	// Every test starts from empty tables
	require.NoError(t, db.Reset(ctx))

	return db, ctx
}

func teardownTestDB(t *testing.T, db *Database) {
	db.Close()
}

func TestDatabaseConnection(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	err := db.Health(ctx)
	assert.NoError(t, err, "Database health check should pass")

	stats := db.PoolStats()
	assert.NotNil(t, stats, "Should return connection pool stats")
	assert.Equal(t, int32(5), stats["max_conns"].(int32))
}

func TestDatabase_MigrateIsNonDestructive(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Pool.Exec(ctx, `INSERT INTO beach_tournaments (code) VALUES ('KEEP')`)
	require.NoError(t, err)

	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.Migrate(ctx))

	count, err := db.Beach.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "Migrate must not drop existing rows")
}

func TestDatabase_Reset(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Pool.Exec(ctx, `INSERT INTO volley_tournaments (code) VALUES ('GONE')`)
	require.NoError(t, err)

	require.NoError(t, db.Reset(ctx))

	count, err := db.Volley.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
