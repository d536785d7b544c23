package studio

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoom_UnmarshalLegacyFlags(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want RoomKind
	}{
		{"no flags", `{"id":1,"name":"Tokio Mañana"}`, RoomKindModel},
		{"monitor flag", `{"id":101,"isMonitorRoom":true}`, RoomKindMonitor},
		{"cleaning flag", `{"id":201,"isCleaningRoom":true}`, RoomKindCleaning},
		{"both flags", `{"id":300,"isMonitorRoom":true,"isCleaningRoom":true}`, RoomKindMonitor},
		{"explicit kind wins", `{"id":5,"kind":"cleaning","isMonitorRoom":true}`, RoomKindCleaning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Room
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &r))
			assert.Equal(t, tt.want, r.Kind)
		})
	}
}

func TestRoom_UnmarshalKeepsLegacyCollections(t *testing.T) {
	doc := `{
		"id": 3,
		"name": "Colombia Mañana",
		"platforms": ["Chaturbate"],
		"dulceriaQuantities": {"s1": 4},
		"sexShopAbonosHistory": [{"id": "abono-1", "date": "2024-01-06", "amount": 10000}],
		"logs": [{"id": "log-1", "date": "2024-01-06", "status": "present", "platformTokens": [{"platform": "Chaturbate", "tokens": 250}]}]
	}`

	var r Room
	require.NoError(t, json.Unmarshal([]byte(doc), &r))

	assert.Equal(t, 4, r.SnackQuantities["s1"])
	require.Len(t, r.SexShopPayments, 1)
	assert.True(t, r.SexShopPayments[0].Amount.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, int64(250), r.Logs[0].TokenTotal())
	assert.True(t, r.HasPlatform("Chaturbate"))
	assert.False(t, r.HasPlatform("Stripchat"))
}

func TestState_RoundTripWithEmptyCollections(t *testing.T) {
	original := State{
		Rooms: []Room{{ID: 1, Name: "empty", Kind: RoomKindModel, Platforms: []string{}, Logs: []DailyLog{}}},
		Rules: Rules{
			UsdExchangeRate: decimal.NewFromInt(4000),
			SnackCatalog:    []Product{},
			SexShopCatalog:  []Product{},
		},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded State
	require.NoError(t, json.Unmarshal(data, &decoded))
	again, err := json.Marshal(decoded)
	require.NoError(t, err)

	assert.JSONEq(t, string(data), string(again))
	assert.NotNil(t, decoded.Rooms[0].Logs)
	assert.Empty(t, decoded.Rules.SnackCatalog)
}

func TestState_WithRoomCopiesRoomList(t *testing.T) {
	s := State{Rooms: []Room{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}}

	next := s.WithRoom(Room{ID: 2, Name: "b2"})

	assert.Equal(t, "b", s.Rooms[1].Name)
	assert.Equal(t, "b2", next.Rooms[1].Name)
	assert.Equal(t, 3, next.NextRoomID())
	assert.Equal(t, -1, next.RoomIndex(99))
}

func TestAttendanceStatus(t *testing.T) {
	assert.True(t, StatusPresent.Attended())
	assert.True(t, StatusLate.Attended())
	assert.False(t, StatusAbsent.Attended())
	assert.False(t, StatusExcused.Attended())
	assert.False(t, AttendanceStatus("sick").IsValid())
}
