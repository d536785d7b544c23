package dashboard

import (
	"context"

	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard settles every room for the period in parallel and adds the studio ledger
	GetDashboard(ctx context.Context, query settlement.PeriodQuery) (*DashboardResponse, error)
}
