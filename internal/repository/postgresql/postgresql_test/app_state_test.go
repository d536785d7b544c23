package postgresql_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/lovelys-studio/backoffice/internal/fixtures"
	"github.com/lovelys-studio/backoffice/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppStateRepository_LoadMissing(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	repo := postgresql.NewAppStateRepository(setup.DB, "colombia1", 3)

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, studio.ErrStateNotFound)
}

func TestAppStateRepository_SaveAndLoad(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	repo := postgresql.NewAppStateRepository(setup.DB, "colombia1", 3)
	state := fixtures.GetDefaultState()

	require.NoError(t, repo.Save(ctx, state))
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)

	want, err := json.Marshal(state)
	require.NoError(t, err)
	got, err := json.Marshal(loaded)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestAppStateRepository_PrunesRevisions(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	repo := postgresql.NewAppStateRepository(setup.DB, "colombia1", 3)
	state := fixtures.GetDefaultState()

	for i := 0; i < 5; i++ {
		state.Rules.DailyTargetHours = float64(i)
		require.NoError(t, repo.Save(ctx, state))
	}

	var count int
	err := setup.DB.QueryRow(ctx, `SELECT COUNT(*) FROM app_state_revisions WHERE document_id = $1`, "colombia1").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4.0, loaded.Rules.DailyTargetHours)
}
