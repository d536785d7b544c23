package report

import (
	"context"
	"errors"
	"testing"

	"github.com/lovelys-studio/backoffice/internal/domain/auth"
	"github.com/lovelys-studio/backoffice/internal/domain/report"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/lovelys-studio/backoffice/internal/service/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	answer string
	err    error

	gotSystem string
	gotPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, systemInstruction string, prompt string) (string, error) {
	f.gotSystem = systemInstruction
	f.gotPrompt = prompt
	return f.answer, f.err
}

func testStore() *state.Store {
	return state.NewStore(studio.State{
		Rooms: []studio.Room{{ID: 1, Name: "Tokio Mañana", Kind: studio.RoomKindModel}},
		Rules: studio.Rules{Accounts: []studio.Account{
			{ID: "admin-1", Username: "andresb", Role: studio.RoleAdmin, PasswordHash: "$2a$10$secrethash", Password: "3113"},
		}},
	})
}

var adminCtx = auth.NewContext(context.Background(), auth.Actor{UserID: "admin-1", Role: studio.RoleAdmin})

func TestAsk_SendsStrippedSnapshot(t *testing.T) {
	gen := &fakeGenerator{answer: "La sala Tokio Mañana lidera."}
	svc := NewReportService(testStore(), gen)

	resp, err := svc.Ask(adminCtx, report.AssistantRequest{Query: "¿Quién lidera?"})
	require.NoError(t, err)

	assert.Equal(t, "La sala Tokio Mañana lidera.", resp.Answer)
	assert.False(t, resp.Fallback)
	assert.Contains(t, gen.gotSystem, "Asistente Virtual Lovelys")
	assert.Contains(t, gen.gotPrompt, "Tokio Mañana")
	assert.Contains(t, gen.gotPrompt, "Consulta del Usuario: ¿Quién lidera?")
	assert.NotContains(t, gen.gotPrompt, "secrethash")
	assert.NotContains(t, gen.gotPrompt, "3113")
}

func TestAsk_FallbackOnFailure(t *testing.T) {
	tests := []struct {
		name string
		gen  report.Generator
	}{
		{"generator error", &fakeGenerator{err: errors.New("quota exceeded")}},
		{"empty answer", &fakeGenerator{answer: "  "}},
		{"no generator", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewReportService(testStore(), tt.gen)

			resp, err := svc.Ask(adminCtx, report.AssistantRequest{Query: "resumen"})
			require.NoError(t, err)
			assert.True(t, resp.Fallback)
			assert.Equal(t, FallbackAnswer, resp.Answer)
		})
	}
}

func TestAsk_AdminOnly(t *testing.T) {
	svc := NewReportService(testStore(), &fakeGenerator{answer: "ok"})
	ctx := auth.NewContext(context.Background(), auth.Actor{UserID: "mgr-1", Role: studio.RoleManager})

	_, err := svc.Ask(ctx, report.AssistantRequest{Query: "resumen"})
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestStripCredentials_DoesNotTouchInput(t *testing.T) {
	st := testStore().Snapshot()

	stripped := StripCredentials(st)

	assert.Empty(t, stripped.Rules.Accounts[0].PasswordHash)
	assert.Equal(t, "andresb", stripped.Rules.Accounts[0].Username)
	assert.NotEmpty(t, st.Rules.Accounts[0].PasswordHash)
}
