package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lovelys-studio/backoffice/internal/domain/room"
	"github.com/lovelys-studio/backoffice/internal/handler/http/response"
)

type RoomHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	AddPlatform(w http.ResponseWriter, r *http.Request)
	RenamePlatform(w http.ResponseWriter, r *http.Request)
	RemovePlatform(w http.ResponseWriter, r *http.Request)

	CreateLog(w http.ResponseWriter, r *http.Request)
	UpdateLog(w http.ResponseWriter, r *http.Request)
	DeleteLog(w http.ResponseWriter, r *http.Request)

	CreateAdvance(w http.ResponseWriter, r *http.Request)
	UpdateAdvance(w http.ResponseWriter, r *http.Request)
	DeleteAdvance(w http.ResponseWriter, r *http.Request)

	AddSexShopItem(w http.ResponseWriter, r *http.Request)
	DeleteSexShopItem(w http.ResponseWriter, r *http.Request)
	AddSexShopPayment(w http.ResponseWriter, r *http.Request)
	DeleteSexShopPayment(w http.ResponseWriter, r *http.Request)

	AdjustSnack(w http.ResponseWriter, r *http.Request)
	UpdateBilling(w http.ResponseWriter, r *http.Request)
	UpdateShift(w http.ResponseWriter, r *http.Request)
}

type roomHandlerImpl struct {
	roomService room.RoomService
}

func NewRoomHandler(roomService room.RoomService) RoomHandler {
	return &roomHandlerImpl{roomService: roomService}
}

// List handles GET /rooms
func (h *roomHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomService.ListRooms(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rooms)
}

// Get handles GET /rooms/{roomId}
func (h *roomHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}

	result, err := h.roomService.GetRoom(r.Context(), roomID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Create handles POST /rooms
func (h *roomHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req room.CreateRoomRequest
	if !decodeBody(w, r, &req, "CreateRoom") {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.roomService.CreateRoom(r.Context(), req)
	if err != nil || result.Outcome == room.OutcomeDenied {
		writeMutation(w, result, err, "")
		return
	}
	response.Created(w, "Room created successfully", result)
}

// Update handles PATCH /rooms/{roomId}
func (h *roomHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}

	var req room.UpdateRoomRequest
	if !decodeBody(w, r, &req, "UpdateRoom") {
		return
	}
	req.RoomID = roomID
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.roomService.UpdateRoom(r.Context(), req)
	writeMutation(w, result, err, "Room updated successfully")
}

// Delete handles DELETE /rooms/{roomId}?confirm=true
func (h *roomHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}
	confirm := r.URL.Query().Get("confirm") == "true"

	outcome, err := h.roomService.DeleteRoom(r.Context(), roomID, confirm)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if outcome == room.OutcomeDenied {
		response.Denied(w, "Insufficient privileges for this action", nil)
		return
	}

	slog.Info("Room deleted", "room_id", roomID)
	response.SuccessWithMessage(w, "Room deleted successfully", nil)
}

// ========== PLATFORMS ==========

// AddPlatform handles POST /rooms/{roomId}/platforms
func (h *roomHandlerImpl) AddPlatform(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}

	var req room.PlatformRequest
	if !decodeBody(w, r, &req, "AddPlatform") {
		return
	}
	req.RoomID = roomID
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.roomService.AddPlatform(r.Context(), req)
	writeMutation(w, result, err, "Platform added successfully")
}

// RenamePlatform handles PUT /rooms/{roomId}/platforms/{index}
func (h *roomHandlerImpl) RenamePlatform(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}
	index, ok := urlIntParam(w, r, "index")
	if !ok {
		return
	}

	var req room.PlatformRequest
	if !decodeBody(w, r, &req, "RenamePlatform") {
		return
	}
	req.RoomID = roomID
	req.Index = index
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.roomService.RenamePlatform(r.Context(), req)
	writeMutation(w, result, err, "Platform renamed successfully")
}

// RemovePlatform handles DELETE /rooms/{roomId}/platforms/{index}
func (h *roomHandlerImpl) RemovePlatform(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}
	index, ok := urlIntParam(w, r, "index")
	if !ok {
		return
	}

	result, err := h.roomService.RemovePlatform(r.Context(), roomID, index)
	writeMutation(w, result, err, "Platform removed successfully")
}

// ========== LOGS ==========

// CreateLog handles POST /rooms/{roomId}/logs. Without a date the log lands on
// the first day of the period selected in the query string.
func (h *roomHandlerImpl) CreateLog(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}

	var req room.CreateLogRequest
	if !decodeBody(w, r, &req, "CreateLog") {
		return
	}
	period, err := periodQueryFromURL(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.RoomID = roomID
	req.Period = period
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.roomService.CreateLog(r.Context(), req)
	writeMutation(w, result, err, "Daily log created successfully")
}

// UpdateLog handles PATCH /rooms/{roomId}/logs/{logId}
func (h *roomHandlerImpl) UpdateLog(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}

	var req room.UpdateLogRequest
	if !decodeBody(w, r, &req, "UpdateLog") {
		return
	}
	req.RoomID = roomID
	req.LogID = chi.URLParam(r, "logId")
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.roomService.UpdateLog(r.Context(), req)
	writeMutation(w, result, err, "Daily log updated successfully")
}

// DeleteLog handles DELETE /rooms/{roomId}/logs/{logId}
func (h *roomHandlerImpl) DeleteLog(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}

	result, err := h.roomService.DeleteLog(r.Context(), roomID, chi.URLParam(r, "logId"))
	writeMutation(w, result, err, "Daily log deleted successfully")
}

// ========== ADVANCES ==========

// CreateAdvance handles POST /rooms/{roomId}/advances
func (h *roomHandlerImpl) CreateAdvance(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}

	var req room.CreateAdvanceRequest
	if !decodeBody(w, r, &req, "CreateAdvance") {
		return
	}
	req.RoomID = roomID
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.roomService.CreateAdvance(r.Context(), req)
	writeMutation(w, result, err, "Advance created successfully")
}

// UpdateAdvance handles PATCH /rooms/{roomId}/advances/{advanceId}
func (h *roomHandlerImpl) UpdateAdvance(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}

	var req room.UpdateAdvanceRequest
	if !decodeBody(w, r, &req, "UpdateAdvance") {
		return
	}
	req.RoomID = roomID
	req.AdvanceID = chi.URLParam(r, "advanceId")
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.roomService.UpdateAdvance(r.Context(), req)
	writeMutation(w, result, err, "Advance updated successfully")
}

// DeleteAdvance handles DELETE /rooms/{roomId}/advances/{advanceId}
func (h *roomHandlerImpl) DeleteAdvance(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}

	result, err := h.roomService.DeleteAdvance(r.Context(), roomID, chi.URLParam(r, "advanceId"))
	writeMutation(w, result, err, "Advance deleted successfully")
}

// ========== SEX-SHOP ==========

// AddSexShopItem handles POST /rooms/{roomId}/sexshop/items
func (h *roomHandlerImpl) AddSexShopItem(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}

	var req room.CreateSexShopItemRequest
	if !decodeBody(w, r, &req, "AddSexShopItem") {
		return
	}
	req.RoomID = roomID
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.roomService.AddSexShopItem(r.Context(), req)
	writeMutation(w, result, err, "Sex-shop item added successfully")
}

// DeleteSexShopItem handles DELETE /rooms/{roomId}/sexshop/items/{itemId}
func (h *roomHandlerImpl) DeleteSexShopItem(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}

	result, err := h.roomService.DeleteSexShopItem(r.Context(), roomID, chi.URLParam(r, "itemId"))
	writeMutation(w, result, err, "Sex-shop item deleted successfully")
}

// AddSexShopPayment handles POST /rooms/{roomId}/sexshop/payments
func (h *roomHandlerImpl) AddSexShopPayment(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}

	var req room.CreateSexShopPaymentRequest
	if !decodeBody(w, r, &req, "AddSexShopPayment") {
		return
	}
	req.RoomID = roomID
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.roomService.AddSexShopPayment(r.Context(), req)
	writeMutation(w, result, err, "Sex-shop payment added successfully")
}

// DeleteSexShopPayment handles DELETE /rooms/{roomId}/sexshop/payments/{paymentId}
func (h *roomHandlerImpl) DeleteSexShopPayment(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}

	result, err := h.roomService.DeleteSexShopPayment(r.Context(), roomID, chi.URLParam(r, "paymentId"))
	writeMutation(w, result, err, "Sex-shop payment deleted successfully")
}

// ========== SNACKS, BILLING, SHIFTS ==========

// AdjustSnack handles POST /rooms/{roomId}/snacks
func (h *roomHandlerImpl) AdjustSnack(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}

	var req room.AdjustSnackRequest
	if !decodeBody(w, r, &req, "AdjustSnack") {
		return
	}
	req.RoomID = roomID
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.roomService.AdjustSnack(r.Context(), req)
	writeMutation(w, result, err, "Snack consumption adjusted successfully")
}

// UpdateBilling handles PATCH /rooms/{roomId}/billing
func (h *roomHandlerImpl) UpdateBilling(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}

	var req room.UpdateBillingRequest
	if !decodeBody(w, r, &req, "UpdateBilling") {
		return
	}
	req.RoomID = roomID
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.roomService.UpdateBilling(r.Context(), req)
	writeMutation(w, result, err, "Billing updated successfully")
}

// UpdateShift handles PUT /rooms/{roomId}/shifts/{shiftId}
func (h *roomHandlerImpl) UpdateShift(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlIntParam(w, r, "roomId")
	if !ok {
		return
	}

	var req room.UpdateShiftRequest
	if !decodeBody(w, r, &req, "UpdateShift") {
		return
	}
	req.RoomID = roomID
	req.ShiftID = chi.URLParam(r, "shiftId")
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.roomService.UpdateShift(r.Context(), req)
	writeMutation(w, result, err, "Shift updated successfully")
}
