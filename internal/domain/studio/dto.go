package studio

import (
	"strings"

	"github.com/lovelys-studio/backoffice/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== RULES DTOs ==========

type RulesResponse struct {
	DailyTargetHours  float64         `json:"daily_target_hours"`
	WeeklyTargetHours float64         `json:"weekly_target_hours"`
	UsdExchangeRate   decimal.Decimal `json:"usd_exchange_rate"`
	Platforms         []string        `json:"platforms"`
	SnackCatalog      []Product       `json:"snack_catalog"`
	SexShopCatalog    []Product       `json:"sex_shop_catalog"`
	Expenses          []Expense       `json:"expenses"`
	IncomeRecords     []IncomeRecord  `json:"income_records"`
}

type UpdateRulesRequest struct {
	UsdExchangeRate   *decimal.Decimal `json:"usd_exchange_rate,omitempty"`
	DailyTargetHours  *float64         `json:"daily_target_hours,omitempty"`
	WeeklyTargetHours *float64         `json:"weekly_target_hours,omitempty"`
	Platforms         []string         `json:"platforms,omitempty"`
}

func (r *UpdateRulesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UsdExchangeRate != nil && !r.UsdExchangeRate.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "usd_exchange_rate", Message: "must be greater than zero"})
	}
	if r.DailyTargetHours != nil && (*r.DailyTargetHours < 0 || *r.DailyTargetHours > 24) {
		errs = append(errs, validator.ValidationError{Field: "daily_target_hours", Message: "must be between 0 and 24"})
	}
	if r.WeeklyTargetHours != nil && (*r.WeeklyTargetHours < 0 || *r.WeeklyTargetHours > 168) {
		errs = append(errs, validator.ValidationError{Field: "weekly_target_hours", Message: "must be between 0 and 168"})
	}
	seen := make(map[string]bool)
	for _, p := range r.Platforms {
		name := strings.TrimSpace(p)
		if name == "" {
			errs = append(errs, validator.ValidationError{Field: "platforms", Message: "must not contain empty names"})
			break
		}
		if seen[name] {
			errs = append(errs, validator.ValidationError{Field: "platforms", Message: "must not contain duplicates"})
			break
		}
		seen[name] = true
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== CATALOG DTOs ==========

type CatalogKind string

const (
	CatalogSnack   CatalogKind = "snack"
	CatalogSexShop CatalogKind = "sexshop"
)

func (k CatalogKind) IsValid() bool {
	return k == CatalogSnack || k == CatalogSexShop
}

type CreateProductRequest struct {
	Kind         CatalogKind     `json:"-"`
	Code         string          `json:"code,omitempty"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	InitialStock int             `json:"initial_stock"`
}

func (r *CreateProductRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Kind.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be 'snack' or 'sexshop'"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.UnitPrice.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "unit_price", Message: "must be non-negative"})
	}
	if r.InitialStock < 0 {
		errs = append(errs, validator.ValidationError{Field: "initial_stock", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateProductRequest struct {
	Kind         CatalogKind      `json:"-"`
	ID           string           `json:"-"`
	Code         *string          `json:"code,omitempty"`
	Name         *string          `json:"name,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	InitialStock *int             `json:"initial_stock,omitempty"`
}

func (r *UpdateProductRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Kind.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be 'snack' or 'sexshop'"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.UnitPrice != nil && r.UnitPrice.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "unit_price", Message: "must be non-negative"})
	}
	if r.InitialStock != nil && *r.InitialStock < 0 {
		errs = append(errs, validator.ValidationError{Field: "initial_stock", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type InventoryLine struct {
	ProductID    string          `json:"product_id"`
	Code         string          `json:"code,omitempty"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	InitialStock int             `json:"initial_stock"`
	Sold         int             `json:"sold"`
	Available    int             `json:"available"`
	SalesValue   decimal.Decimal `json:"sales_value"`
	StockValue   decimal.Decimal `json:"stock_value"`
}

type InventoryResponse struct {
	Kind            CatalogKind     `json:"kind"`
	Lines           []InventoryLine `json:"lines"`
	TotalSalesValue decimal.Decimal `json:"total_sales_value"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
}

// ========== LEDGER DTOs ==========

type CreateExpenseRequest struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
}

func (r *CreateExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateIncomeRequest struct {
	Date              string          `json:"date"`
	Platform          string          `json:"platform"`
	AmountUsdPaid     decimal.Decimal `json:"amount_usd_paid"`
	AmountUsdReceived decimal.Decimal `json:"amount_usd_received"`
}

func (r *CreateIncomeRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.Platform) {
		errs = append(errs, validator.ValidationError{Field: "platform", Message: "is required"})
	}
	if !r.AmountUsdPaid.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount_usd_paid", Message: "must be greater than zero"})
	}
	if r.AmountUsdReceived.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount_usd_received", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type IncomeRecordResponse struct {
	IncomeRecord
	UsdLost decimal.Decimal `json:"usdLost"`
}

// ========== ACCOUNT DTOs ==========

type CreateAccountRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	RoomID   *int   `json:"room_id,omitempty"`
}

func (r *CreateAccountRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "is required"})
	}
	if !r.Role.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be 'admin', 'manager' or 'model'"})
	}
	if r.Role == RoleModel && r.RoomID == nil {
		errs = append(errs, validator.ValidationError{Field: "room_id", Message: "is required for model accounts"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AccountResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	RoomID   *int   `json:"room_id,omitempty"`
}

// NormalizeUsername is the case-normalised form used for lookups and uniqueness.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
