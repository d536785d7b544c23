package state

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func defaultsForTest() studio.State {
	return stateNamed("seed")
}

func TestLoad_NotFoundSeedsDefaults(t *testing.T) {
	got := Load(context.Background(), &fakeRepo{}, defaultsForTest)
	assert.Equal(t, "seed", got.Rooms[0].Name)
}

func TestLoad_ErrorFallsBackToDefaults(t *testing.T) {
	got := Load(context.Background(), &fakeRepo{loadErr: errors.New("timeout")}, defaultsForTest)
	assert.Equal(t, "seed", got.Rooms[0].Name)
}

func TestLoad_NormalizesRoomKind(t *testing.T) {
	doc := studio.State{Rooms: []studio.Room{{ID: 7, Name: "legacy"}}}
	got := Load(context.Background(), &fakeRepo{doc: &doc}, defaultsForTest)

	require.Len(t, got.Rooms, 1)
	assert.Equal(t, studio.RoomKindModel, got.Rooms[0].Kind)
	assert.Equal(t, studio.RoomKind(""), doc.Rooms[0].Kind, "loaded document must not be modified in place")
}

func TestNormalize_FillsNullCollections(t *testing.T) {
	var doc studio.State
	require.NoError(t, json.Unmarshal([]byte(`{"rooms":[{"id":3,"name":"Rumania","logs":null,"advances":null}],"rules":{"usdExchangeRate":"4000"}}`), &doc))

	got := Normalize(doc)

	room := got.Rooms[0]
	for name, isNil := range map[string]bool{
		"platforms":         room.Platforms == nil,
		"logs":              room.Logs == nil,
		"advances":          room.Advances == nil,
		"sexShopItems":      room.SexShopItems == nil,
		"sexShopPayments":   room.SexShopPayments == nil,
		"snackConsumptions": room.SnackConsumptions == nil,
		"monitorShifts":     room.MonitorShifts == nil,
		"accounts":          got.Rules.Accounts == nil,
		"snackCatalog":      got.Rules.SnackCatalog == nil,
		"incomeRecords":     got.Rules.IncomeRecords == nil,
	} {
		assert.False(t, isNil, name)
	}

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "null")
}

func TestHashLegacyPasswords(t *testing.T) {
	s := studio.State{Rules: studio.Rules{Accounts: []studio.Account{
		{ID: "1", Username: "andresb", Password: "secret"},
		{ID: "2", Username: "monica", PasswordHash: "$2a$10$alreadyhashed"},
	}}}

	got, migrated, err := HashLegacyPasswords(s)
	require.NoError(t, err)

	assert.Equal(t, 1, migrated)
	assert.Empty(t, got.Rules.Accounts[0].Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.Rules.Accounts[0].PasswordHash), []byte("secret")))
	assert.Equal(t, "$2a$10$alreadyhashed", got.Rules.Accounts[1].PasswordHash)
	assert.Equal(t, "secret", s.Rules.Accounts[0].Password, "input must not be modified in place")
}
