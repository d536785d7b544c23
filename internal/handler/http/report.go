package http

import (
	"net/http"

	"github.com/lovelys-studio/backoffice/internal/domain/report"
	"github.com/lovelys-studio/backoffice/internal/handler/http/response"
)

type ReportHandler interface {
	Ask(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// Ask handles POST /reports/assistant. A failed generation still answers 200
// with the fallback text.
func (h *reportHandlerImpl) Ask(w http.ResponseWriter, r *http.Request) {
	var req report.AssistantRequest
	if !decodeBody(w, r, &req, "Ask") {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.Ask(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
