package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/database"
)

// setupTestDatabase connects to TEST_DATABASE_URL, applies the schema and
// empties every table. Tests are skipped when the variable is unset.
func setupTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	ctx := context.Background()
	require.NoError(t, db.EnsureSchema(ctx))
	_, err = db.Exec(ctx, `TRUNCATE employees, attendance, holidays, settings, sync_runs`)
	require.NoError(t, err)

	return db
}
