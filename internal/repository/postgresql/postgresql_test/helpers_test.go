package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	ctx := context.Background()

	setup, err := NewTestDatabase(ctx)
	if errors.Is(err, ErrNoTestDatabase) {
		t.Skip("TEST_DATABASE_URL not set, skipping repository integration test")
	}
	require.NoError(t, err)
	t.Cleanup(setup.Close)

	require.NoError(t, setup.TruncateAllTables(ctx))
	return setup
}

func createTestDepartment(t *testing.T, ctx context.Context, setup *TestDatabaseSetup, name string) string {
	var id string
	err := setup.DB.QueryRow(ctx, `INSERT INTO departments (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	require.NoError(t, err)
	return id
}
