package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/lovelys-studio/backoffice/internal/pkg/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (studio.StateRepository, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := storage.NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)
	return NewAppStateRepository(fs, "colombia1"), dir
}

func TestAppStateRepository_LoadMissing(t *testing.T) {
	repo, _ := newRepo(t)

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, studio.ErrStateNotFound)
}

func TestAppStateRepository_SaveAndLoad(t *testing.T) {
	repo, dir := newRepo(t)
	ctx := context.Background()
	state := studio.State{
		Rooms: []studio.Room{{ID: 1, Name: "Tokio Mañana", Kind: studio.RoomKindCleaning}},
		Rules: studio.Rules{UsdExchangeRate: decimal.NewFromInt(4100)},
	}

	require.NoError(t, repo.Save(ctx, state))
	assert.FileExists(t, filepath.Join(dir, "state", "colombia1.json"))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, studio.RoomKindCleaning, loaded.Rooms[0].Kind)
	assert.True(t, loaded.Rules.UsdExchangeRate.Equal(decimal.NewFromInt(4100)))
}

func TestAppStateRepository_ReadsLegacyDocument(t *testing.T) {
	repo, dir := newRepo(t)
	legacy := `{"rooms":[{"id":101,"name":"Monitoras","isMonitorRoom":true,"platforms":[]}],"rules":{"usdExchangeRate":"4000"}}`
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "state"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "state", "colombia1.json"), []byte(legacy), 0644))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, studio.RoomKindMonitor, loaded.Rooms[0].Kind)
}

func TestAppStateRepository_CorruptDocument(t *testing.T) {
	repo, dir := newRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "state"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "state", "colombia1.json"), []byte("{not json"), 0644))

	_, err := repo.Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, studio.ErrStateNotFound)
}
