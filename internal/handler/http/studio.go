package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/lovelys-studio/backoffice/internal/handler/http/response"
)

type StudioHandler interface {
	// Rules
	GetRules(w http.ResponseWriter, r *http.Request)
	UpdateRules(w http.ResponseWriter, r *http.Request)

	// Catalogs
	CreateProduct(w http.ResponseWriter, r *http.Request)
	UpdateProduct(w http.ResponseWriter, r *http.Request)
	DeleteProduct(w http.ResponseWriter, r *http.Request)
	LookupSexShopCode(w http.ResponseWriter, r *http.Request)
	GetInventory(w http.ResponseWriter, r *http.Request)

	// Ledgers
	CreateExpense(w http.ResponseWriter, r *http.Request)
	DeleteExpense(w http.ResponseWriter, r *http.Request)
	CreateIncome(w http.ResponseWriter, r *http.Request)
	DeleteIncome(w http.ResponseWriter, r *http.Request)

	// Accounts
	ListAccounts(w http.ResponseWriter, r *http.Request)
	CreateAccount(w http.ResponseWriter, r *http.Request)
	DeleteAccount(w http.ResponseWriter, r *http.Request)
}

type studioHandlerImpl struct {
	studioService studio.StudioService
}

func NewStudioHandler(studioService studio.StudioService) StudioHandler {
	return &studioHandlerImpl{studioService: studioService}
}

func catalogKind(r *http.Request) studio.CatalogKind {
	return studio.CatalogKind(chi.URLParam(r, "kind"))
}

// ========== RULES ==========

// GetRules handles GET /studio/rules
func (h *studioHandlerImpl) GetRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.studioService.GetRules(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rules)
}

// UpdateRules handles PATCH /studio/rules
func (h *studioHandlerImpl) UpdateRules(w http.ResponseWriter, r *http.Request) {
	var req studio.UpdateRulesRequest
	if !decodeBody(w, r, &req, "UpdateRules") {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rules, err := h.studioService.UpdateRules(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Rules updated successfully", rules)
}

// ========== CATALOGS ==========

// CreateProduct handles POST /studio/catalogs/{kind}
func (h *studioHandlerImpl) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req studio.CreateProductRequest
	if !decodeBody(w, r, &req, "CreateProduct") {
		return
	}
	req.Kind = catalogKind(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	product, err := h.studioService.CreateProduct(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Product created successfully", product)
}

// UpdateProduct handles PATCH /studio/catalogs/{kind}/{productId}
func (h *studioHandlerImpl) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req studio.UpdateProductRequest
	if !decodeBody(w, r, &req, "UpdateProduct") {
		return
	}
	req.Kind = catalogKind(r)
	req.ID = chi.URLParam(r, "productId")
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	product, err := h.studioService.UpdateProduct(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /studio/catalogs/{kind}/{productId}
func (h *studioHandlerImpl) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.studioService.DeleteProduct(r.Context(), catalogKind(r), chi.URLParam(r, "productId")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Product deleted successfully", nil)
}

// LookupSexShopCode handles GET /studio/catalogs/sexshop/lookup?code=
func (h *studioHandlerImpl) LookupSexShopCode(w http.ResponseWriter, r *http.Request) {
	product, err := h.studioService.LookupSexShopCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, product)
}

// GetInventory handles GET /studio/catalogs/{kind}/inventory
func (h *studioHandlerImpl) GetInventory(w http.ResponseWriter, r *http.Request) {
	inventory, err := h.studioService.GetInventory(r.Context(), catalogKind(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, inventory)
}

// ========== LEDGERS ==========

// CreateExpense handles POST /studio/expenses
func (h *studioHandlerImpl) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req studio.CreateExpenseRequest
	if !decodeBody(w, r, &req, "CreateExpense") {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	expense, err := h.studioService.CreateExpense(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Expense created successfully", expense)
}

// DeleteExpense handles DELETE /studio/expenses/{id}
func (h *studioHandlerImpl) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.studioService.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Expense deleted successfully", nil)
}

// CreateIncome handles POST /studio/income
func (h *studioHandlerImpl) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var req studio.CreateIncomeRequest
	if !decodeBody(w, r, &req, "CreateIncome") {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	income, err := h.studioService.CreateIncome(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Income record created successfully", income)
}

// DeleteIncome handles DELETE /studio/income/{id}
func (h *studioHandlerImpl) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	if err := h.studioService.DeleteIncome(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Income record deleted successfully", nil)
}

// ========== ACCOUNTS ==========

// ListAccounts handles GET /studio/accounts
func (h *studioHandlerImpl) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.studioService.ListAccounts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, accounts)
}

// CreateAccount handles POST /studio/accounts
func (h *studioHandlerImpl) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req studio.CreateAccountRequest
	if !decodeBody(w, r, &req, "CreateAccount") {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	account, err := h.studioService.CreateAccount(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Account created successfully", account)
}

// DeleteAccount handles DELETE /studio/accounts/{id}
func (h *studioHandlerImpl) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.studioService.DeleteAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Account deleted successfully", nil)
}
