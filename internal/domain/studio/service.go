package studio

import "context"

// StudioService covers the administration surface: rules, catalogs, ledgers and accounts.
type StudioService interface {
	// Rules
	GetRules(ctx context.Context) (RulesResponse, error)
	UpdateRules(ctx context.Context, req UpdateRulesRequest) (RulesResponse, error)

	// Catalogs
	CreateProduct(ctx context.Context, req CreateProductRequest) (Product, error)
	UpdateProduct(ctx context.Context, req UpdateProductRequest) (Product, error)
	DeleteProduct(ctx context.Context, kind CatalogKind, id string) error
	LookupSexShopCode(ctx context.Context, code string) (Product, error)
	GetInventory(ctx context.Context, kind CatalogKind) (InventoryResponse, error)

	// Ledgers
	CreateExpense(ctx context.Context, req CreateExpenseRequest) (Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	CreateIncome(ctx context.Context, req CreateIncomeRequest) (IncomeRecordResponse, error)
	DeleteIncome(ctx context.Context, id string) error

	// Accounts
	ListAccounts(ctx context.Context) ([]AccountResponse, error)
	CreateAccount(ctx context.Context, req CreateAccountRequest) (AccountResponse, error)
	DeleteAccount(ctx context.Context, id string) error
}
