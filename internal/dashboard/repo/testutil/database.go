package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/radieske/betting-admin-dashboard/internal/shared/db"
)

// TestDatabase é um Postgres descartável com as migrations aplicadas
type TestDatabase struct {
	Container *postgres.PostgresContainer
	DB        *sql.DB
	DSN       string
}

// SetupTestDatabase sobe um container Postgres e roda as migrations.
// Pulado com -short (precisa de Docker).
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("dashboard_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		postgres.BasicWaitStrategies(),
		testcontainers.CustomizeRequest(testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Labels: map[string]string{
					"test":      "admin-dashboard-repo",
					"test-name": t.Name(),
				},
			},
		}),
	)
	require.NoError(t, err)

	td := &TestDatabase{Container: container}
	t.Cleanup(func() { td.cleanup(t) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	_, err = db.MigrateUp(dsn)
	require.NoError(t, err)

	conn, err := db.ConnectPostgres(ctx, dsn)
	require.NoError(t, err)

	td.DB = conn
	td.DSN = dsn
	return td
}

func (td *TestDatabase) cleanup(t *testing.T) {
	if td.DB != nil {
		_ = td.DB.Close()
	}
	if td.Container == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := td.Container.Terminate(ctx); err != nil {
		t.Logf("Warning: failed to terminate test container: %v", err)
	}
}
