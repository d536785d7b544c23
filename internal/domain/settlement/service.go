package settlement

import (
	"context"
	"io"
)

type SettlementService interface {
	GetSettlement(ctx context.Context, roomID int, query PeriodQuery) (Settlement, error)
	GetReceipt(ctx context.Context, roomID int, query PeriodQuery) (Receipt, error)
	RenderReceipt(ctx context.Context, roomID int, query PeriodQuery, w io.Writer) error
	ExportReceipt(ctx context.Context, roomID int, query PeriodQuery) (ReceiptExportResponse, error)
}
