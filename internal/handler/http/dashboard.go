package http

import (
	"net/http"

	"github.com/lovelys-studio/backoffice/internal/domain/dashboard"
	"github.com/lovelys-studio/backoffice/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns every room's settlement plus the studio ledger
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	query, err := periodQueryFromURL(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
