package settlement

import (
	"bytes"
	"testing"
	"time"

	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCop(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0"},
		{"950", "$950"},
		{"180000", "$180.000"},
		{"1234567", "$1.234.567"},
		{"-50000", "-$50.000"},
		{"179999.6", "$180.000"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, formatCop(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatUsd(t *testing.T) {
	assert.Equal(t, "US$45.00", formatUsd(decimal.NewFromInt(45)))
	assert.Equal(t, "US$0.05", formatUsd(decimal.RequireFromString("0.05")))
}

func TestBuildReceipt_CopiesSettlement(t *testing.T) {
	room := modelRoom()
	room.Billing.ModelCedula = "1020304050"
	room.Billing.BankAccount = "Bancolombia 123"
	result := Settle(room, studioRules(), Q1(1, 2024))

	issued := time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC)
	receipt := BuildReceipt(result, "Lovely's Studio", issued)

	assert.Equal(t, "Lovely's Studio", receipt.StudioName)
	assert.Equal(t, "2024-01-20 09:30", receipt.IssuedAt)
	assert.Equal(t, 1, receipt.RoomID)
	assert.Equal(t, "1020304050", receipt.ModelCedula)
	assert.Equal(t, int64(1500), receipt.TotalTokens)
	assert.Equal(t, 60, receipt.ModelPercentage)
	assert.Len(t, receipt.Platforms, 2)
	assertDecimal(t, "180000", receipt.NetPayout)
}

func TestRenderReceipt_ModelRoom(t *testing.T) {
	room := modelRoom()
	room.Billing.ModelCedula = "1020304050"
	result := Settle(room, studioRules(), Q1(1, 2024))

	var buf bytes.Buffer
	err := RenderReceipt(&buf, BuildReceipt(result, "Lovely's Studio", time.Now()))
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "LOVELY&#39;S STUDIO")
	assert.Contains(t, html, "1020304050")
	assert.Contains(t, html, "2024-01-05 al 2024-01-19")
	assert.Contains(t, html, "CHATURBATE")
	assert.Contains(t, html, "US$50.00")
	assert.Contains(t, html, "$180.000")
	assert.Contains(t, html, "Inasistencias")
	assert.NotContains(t, html, "Sueldo base")
}

func TestRenderReceipt_StaffRoom(t *testing.T) {
	room := studio.Room{
		ID:   101,
		Name: "Monitores",
		Kind: studio.RoomKindMonitor,
		Billing: &studio.RoomBilling{
			BaseSalary: decimal.NewFromInt(600000),
		},
	}
	result := Settle(room, studioRules(), Q1(1, 2024))
	require.Equal(t, settlement.ModeStaff, result.Mode)

	var buf bytes.Buffer
	require.NoError(t, RenderReceipt(&buf, BuildReceipt(result, "Lovely's Studio", time.Now())))

	html := buf.String()
	assert.Contains(t, html, "Sueldo base")
	assert.Contains(t, html, "$600.000")
	assert.NotContains(t, html, "Inasistencias")
	assert.NotContains(t, html, "Canal")
}
