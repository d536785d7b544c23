package http

import (
	"bytes"
	"net/http"

	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/handler/http/response"
)

type SettlementHandler interface {
	// GetSettlement returns the computed payout for the selected period
	GetSettlement(w http.ResponseWriter, r *http.Request)
	// GetReceipt renders the printable receipt as HTML
	GetReceipt(w http.ResponseWriter, r *http.Request)
	// ExportReceipt stores the rendered receipt and returns its URL
	ExportReceipt(w http.ResponseWriter, r *http.Request)
}

type settlementHandlerImpl struct {
	settlementService settlement.SettlementService
}

func NewSettlementHandler(settlementService settlement.SettlementService) SettlementHandler {
	return &settlementHandlerImpl{settlementService: settlementService}
}

// GetSettlement handles GET /rooms/{roomId}/settlement
func (h *settlementHandlerImpl) GetSettlement(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}
	query, err := periodQueryFromURL(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.settlementService.GetSettlement(r.Context(), roomID, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetReceipt handles GET /rooms/{roomId}/receipt
func (h *settlementHandlerImpl) GetReceipt(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}
	query, err := periodQueryFromURL(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Render fully before writing so failures still get a JSON error.
	var buf bytes.Buffer
	if err := h.settlementService.RenderReceipt(r.Context(), roomID, query, &buf); err != nil {
		response.HandleError(w, err)
		return
	}
	response.HTML(w, http.StatusOK, buf.Bytes())
}

// ExportReceipt handles POST /rooms/{roomId}/receipt/export
func (h *settlementHandlerImpl) ExportReceipt(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}
	query, err := periodQueryFromURL(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.settlementService.ExportReceipt(r.Context(), roomID, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Receipt exported successfully", result)
}
