package state

import (
	"errors"
	"testing"

	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_UpdateSwapsSnapshot(t *testing.T) {
	store := NewStore(studio.State{Rooms: []studio.Room{{ID: 1, Name: "Tokio Mañana"}}})
	before := store.Snapshot()

	var seen []studio.State
	store.OnChange(func(s studio.State) { seen = append(seen, s) })

	next, err := store.Update(func(s studio.State) (studio.State, error) {
		room, _ := s.RoomByID(1)
		room.Name = "Tokio Tarde"
		return s.WithRoom(room), nil
	})
	require.NoError(t, err)

	assert.Equal(t, "Tokio Tarde", next.Rooms[0].Name)
	assert.Equal(t, "Tokio Tarde", store.Snapshot().Rooms[0].Name)
	assert.Equal(t, "Tokio Mañana", before.Rooms[0].Name, "earlier snapshot must not change")
	require.Len(t, seen, 1)
}

func TestStore_FailedUpdateKeepsState(t *testing.T) {
	store := NewStore(studio.State{Rooms: []studio.Room{{ID: 1}}})
	calls := 0
	store.OnChange(func(studio.State) { calls++ })

	boom := errors.New("boom")
	_, err := store.Update(func(s studio.State) (studio.State, error) {
		s.Rooms = nil
		return s, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Len(t, store.Snapshot().Rooms, 1)
	assert.Equal(t, 0, calls)
}
