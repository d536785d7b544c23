package studio

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/lovelys-studio/backoffice/internal/domain/auth"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/lovelys-studio/backoffice/internal/pkg/sse"
	"github.com/lovelys-studio/backoffice/internal/pkg/validator"
	settlementsvc "github.com/lovelys-studio/backoffice/internal/service/settlement"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const EventStudioUpdated = "studio.updated"

type StudioServiceImpl struct {
	store    studio.StateStore
	hub      *sse.Hub
	hashCost int
}

func NewStudioService(store studio.StateStore, hub *sse.Hub) studio.StudioService {
	return &StudioServiceImpl{
		store:    store,
		hub:      hub,
		hashCost: bcrypt.DefaultCost,
	}
}

// requireActor checks the caller against a privilege and returns auth.ErrForbidden when it fails.
func requireActor(ctx context.Context, allowed func(auth.Actor) bool) (auth.Actor, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return auth.Actor{}, err
	}
	if !allowed(actor) {
		return actor, auth.ErrForbidden
	}
	return actor, nil
}

// updateRules runs fn on the current state under the store lock and swaps in the returned rules.
func (s *StudioServiceImpl) updateRules(ctx context.Context, fn func(st studio.State) (studio.Rules, error)) (studio.Rules, error) {
	actor, err := requireActor(ctx, auth.Actor.CanEditFinances)
	if err != nil {
		return studio.Rules{}, err
	}

	next, err := s.store.Update(func(st studio.State) (studio.State, error) {
		rules, err := fn(st)
		if err != nil {
			return st, err
		}
		st.Rules = rules
		return st, nil
	})
	if err != nil {
		return studio.Rules{}, err
	}

	if s.hub != nil {
		s.hub.Broadcast(sse.Event{Event: EventStudioUpdated, Data: map[string]interface{}{"by": actor.Username}})
	}
	return next.Rules, nil
}

// ========== RULES ==========

func rulesResponse(r studio.Rules) studio.RulesResponse {
	return studio.RulesResponse{
		DailyTargetHours:  r.DailyTargetHours,
		WeeklyTargetHours: r.WeeklyTargetHours,
		UsdExchangeRate:   r.UsdExchangeRate,
		Platforms:         r.Platforms,
		SnackCatalog:      r.SnackCatalog,
		SexShopCatalog:    r.SexShopCatalog,
		Expenses:          r.Expenses,
		IncomeRecords:     r.IncomeRecords,
	}
}

// GetRules implements studio.StudioService. Accounts are never part of the response.
func (s *StudioServiceImpl) GetRules(ctx context.Context) (studio.RulesResponse, error) {
	if _, err := requireActor(ctx, auth.Actor.CanEditBasic); err != nil {
		return studio.RulesResponse{}, err
	}
	return rulesResponse(s.store.Snapshot().Rules), nil
}

// UpdateRules implements studio.StudioService.
func (s *StudioServiceImpl) UpdateRules(ctx context.Context, req studio.UpdateRulesRequest) (studio.RulesResponse, error) {
	rules, err := s.updateRules(ctx, func(st studio.State) (studio.Rules, error) {
		r := st.Rules
		if req.UsdExchangeRate != nil {
			r.UsdExchangeRate = *req.UsdExchangeRate
		}
		if req.DailyTargetHours != nil {
			r.DailyTargetHours = *req.DailyTargetHours
		}
		if req.WeeklyTargetHours != nil {
			r.WeeklyTargetHours = *req.WeeklyTargetHours
		}
		if req.Platforms != nil {
			platforms := make([]string, 0, len(req.Platforms))
			for _, p := range req.Platforms {
				platforms = append(platforms, strings.TrimSpace(p))
			}
			r.Platforms = platforms
		}
		return r, nil
	})
	if err != nil {
		return studio.RulesResponse{}, err
	}

	slog.Info("Studio rules updated", "usd_exchange_rate", rules.UsdExchangeRate.String())
	return rulesResponse(rules), nil
}

// ========== CATALOGS ==========

func catalog(r studio.Rules, kind studio.CatalogKind) []studio.Product {
	if kind == studio.CatalogSexShop {
		return r.SexShopCatalog
	}
	return r.SnackCatalog
}

func withCatalog(r studio.Rules, kind studio.CatalogKind, products []studio.Product) studio.Rules {
	if kind == studio.CatalogSexShop {
		r.SexShopCatalog = products
	} else {
		r.SnackCatalog = products
	}
	return r
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func codeTaken(products []studio.Product, code string, exceptID string) bool {
	return slices.ContainsFunc(products, func(p studio.Product) bool {
		return p.ID != exceptID && normalizeCode(p.Code) == code
	})
}

func checkCode(products []studio.Product, code string, exceptID string) error {
	if code == "" {
		return nil
	}
	if !validator.IsValidProductCode(code) {
		return validator.ValidationErrors{{Field: "code", Message: "must be 1-32 uppercase letters, digits or dashes"}}
	}
	if codeTaken(products, code, exceptID) {
		return studio.ErrProductCodeExists
	}
	return nil
}

// CreateProduct implements studio.StudioService.
func (s *StudioServiceImpl) CreateProduct(ctx context.Context, req studio.CreateProductRequest) (studio.Product, error) {
	product := studio.Product{
		ID:           string(req.Kind) + "-" + uuid.NewString(),
		Code:         normalizeCode(req.Code),
		Name:         strings.TrimSpace(req.Name),
		UnitPrice:    req.UnitPrice,
		InitialStock: req.InitialStock,
	}

	_, err := s.updateRules(ctx, func(st studio.State) (studio.Rules, error) {
		r := st.Rules
		products := catalog(r, req.Kind)
		if err := checkCode(products, product.Code, ""); err != nil {
			return r, err
		}
		return withCatalog(r, req.Kind, append(slices.Clone(products), product)), nil
	})
	if err != nil {
		return studio.Product{}, err
	}
	return product, nil
}

// UpdateProduct implements studio.StudioService. Sex-shop items already charged keep their frozen price.
func (s *StudioServiceImpl) UpdateProduct(ctx context.Context, req studio.UpdateProductRequest) (studio.Product, error) {
	var updated studio.Product
	_, err := s.updateRules(ctx, func(st studio.State) (studio.Rules, error) {
		r := st.Rules
		products := slices.Clone(catalog(r, req.Kind))
		idx := slices.IndexFunc(products, func(p studio.Product) bool { return p.ID == req.ID })
		if idx < 0 {
			return r, studio.ErrProductNotFound
		}

		p := products[idx]
		if req.Code != nil {
			code := normalizeCode(*req.Code)
			if err := checkCode(products, code, p.ID); err != nil {
				return r, err
			}
			p.Code = code
		}
		if req.Name != nil {
			p.Name = strings.TrimSpace(*req.Name)
		}
		if req.UnitPrice != nil {
			p.UnitPrice = *req.UnitPrice
		}
		if req.InitialStock != nil {
			p.InitialStock = *req.InitialStock
		}
		products[idx] = p
		updated = p
		return withCatalog(r, req.Kind, products), nil
	})
	if err != nil {
		return studio.Product{}, err
	}
	return updated, nil
}

// DeleteProduct implements studio.StudioService. Snack consumptions of a removed product cost nothing afterwards.
func (s *StudioServiceImpl) DeleteProduct(ctx context.Context, kind studio.CatalogKind, id string) error {
	if !kind.IsValid() {
		return studio.ErrInvalidCatalogKind
	}
	_, err := s.updateRules(ctx, func(st studio.State) (studio.Rules, error) {
		r := st.Rules
		products := catalog(r, kind)
		idx := slices.IndexFunc(products, func(p studio.Product) bool { return p.ID == id })
		if idx < 0 {
			return r, studio.ErrProductNotFound
		}
		return withCatalog(r, kind, slices.Delete(slices.Clone(products), idx, idx+1)), nil
	})
	return err
}

// LookupSexShopCode implements studio.StudioService.
func (s *StudioServiceImpl) LookupSexShopCode(ctx context.Context, code string) (studio.Product, error) {
	if _, err := requireActor(ctx, auth.Actor.CanEditBasic); err != nil {
		return studio.Product{}, err
	}

	code = normalizeCode(code)
	for _, p := range s.store.Snapshot().Rules.SexShopCatalog {
		if code != "" && normalizeCode(p.Code) == code {
			return p, nil
		}
	}
	return studio.Product{}, studio.ErrProductNotFound
}

// GetInventory implements studio.StudioService.
func (s *StudioServiceImpl) GetInventory(ctx context.Context, kind studio.CatalogKind) (studio.InventoryResponse, error) {
	if _, err := requireActor(ctx, auth.Actor.CanEditBasic); err != nil {
		return studio.InventoryResponse{}, err
	}
	if !kind.IsValid() {
		return studio.InventoryResponse{}, studio.ErrInvalidCatalogKind
	}
	return Inventory(s.store.Snapshot(), kind), nil
}

// Inventory computes sold units across every room. Snacks match by product id, counting
// both dated consumptions and the legacy quantity map; sex-shop items match by name.
func Inventory(st studio.State, kind studio.CatalogKind) studio.InventoryResponse {
	sold := make(map[string]int)
	for _, room := range st.Rooms {
		if kind == studio.CatalogSnack {
			for _, c := range room.SnackConsumptions {
				sold[c.ProductID] += c.Quantity
			}
			for id, qty := range room.SnackQuantities {
				sold[id] += qty
			}
			continue
		}
		for _, item := range room.SexShopItems {
			sold[inventoryName(item.Name)] += item.Quantity
		}
	}

	resp := studio.InventoryResponse{
		Kind:            kind,
		Lines:           []studio.InventoryLine{},
		TotalSalesValue: decimal.Zero,
		TotalStockValue: decimal.Zero,
	}
	for _, p := range catalog(st.Rules, kind) {
		key := p.ID
		if kind == studio.CatalogSexShop {
			key = inventoryName(p.Name)
		}
		line := studio.InventoryLine{
			ProductID:    p.ID,
			Code:         p.Code,
			Name:         p.Name,
			UnitPrice:    p.UnitPrice,
			InitialStock: p.InitialStock,
			Sold:         sold[key],
			Available:    p.InitialStock - sold[key],
		}
		line.SalesValue = p.UnitPrice.Mul(decimal.NewFromInt(int64(line.Sold)))
		line.StockValue = p.UnitPrice.Mul(decimal.NewFromInt(int64(max(line.Available, 0))))

		resp.Lines = append(resp.Lines, line)
		resp.TotalSalesValue = resp.TotalSalesValue.Add(line.SalesValue)
		resp.TotalStockValue = resp.TotalStockValue.Add(line.StockValue)
	}
	return resp
}

func inventoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ========== LEDGERS ==========

// CreateExpense implements studio.StudioService.
func (s *StudioServiceImpl) CreateExpense(ctx context.Context, req studio.CreateExpenseRequest) (studio.Expense, error) {
	expense := studio.Expense{
		ID:          "exp-" + uuid.NewString(),
		Date:        req.Date,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Category:    strings.TrimSpace(req.Category),
	}
	_, err := s.updateRules(ctx, func(st studio.State) (studio.Rules, error) {
		r := st.Rules
		r.Expenses = append(slices.Clone(r.Expenses), expense)
		return r, nil
	})
	if err != nil {
		return studio.Expense{}, err
	}
	return expense, nil
}

// DeleteExpense implements studio.StudioService.
func (s *StudioServiceImpl) DeleteExpense(ctx context.Context, id string) error {
	_, err := s.updateRules(ctx, func(st studio.State) (studio.Rules, error) {
		r := st.Rules
		idx := slices.IndexFunc(r.Expenses, func(e studio.Expense) bool { return e.ID == id })
		if idx < 0 {
			return r, studio.ErrExpenseNotFound
		}
		r.Expenses = slices.Delete(slices.Clone(r.Expenses), idx, idx+1)
		return r, nil
	})
	return err
}

// NewIncomeRecord converts the received dollars at rate, falling back to the studio default.
func NewIncomeRecord(id string, req studio.CreateIncomeRequest, rate decimal.Decimal) studio.IncomeRecord {
	if !rate.IsPositive() {
		rate = settlementsvc.DefaultExchangeRate
	}
	return studio.IncomeRecord{
		ID:                id,
		Date:              req.Date,
		Platform:          strings.TrimSpace(req.Platform),
		AmountUsdPaid:     req.AmountUsdPaid,
		AmountUsdReceived: req.AmountUsdReceived,
		ExchangeRate:      rate,
		TotalCop:          req.AmountUsdReceived.Mul(rate),
	}
}

// UsdLost is what the platform paid minus what reached the studio.
func UsdLost(r studio.IncomeRecord) decimal.Decimal {
	return r.AmountUsdPaid.Sub(r.AmountUsdReceived)
}

// CreateIncome implements studio.StudioService.
func (s *StudioServiceImpl) CreateIncome(ctx context.Context, req studio.CreateIncomeRequest) (studio.IncomeRecordResponse, error) {
	var record studio.IncomeRecord
	_, err := s.updateRules(ctx, func(st studio.State) (studio.Rules, error) {
		r := st.Rules
		record = NewIncomeRecord("inc-"+uuid.NewString(), req, r.UsdExchangeRate)
		r.IncomeRecords = append(slices.Clone(r.IncomeRecords), record)
		return r, nil
	})
	if err != nil {
		return studio.IncomeRecordResponse{}, err
	}
	return studio.IncomeRecordResponse{IncomeRecord: record, UsdLost: UsdLost(record)}, nil
}

// DeleteIncome implements studio.StudioService.
func (s *StudioServiceImpl) DeleteIncome(ctx context.Context, id string) error {
	_, err := s.updateRules(ctx, func(st studio.State) (studio.Rules, error) {
		r := st.Rules
		idx := slices.IndexFunc(r.IncomeRecords, func(i studio.IncomeRecord) bool { return i.ID == id })
		if idx < 0 {
			return r, studio.ErrIncomeRecordNotFound
		}
		r.IncomeRecords = slices.Delete(slices.Clone(r.IncomeRecords), idx, idx+1)
		return r, nil
	})
	return err
}

// ========== ACCOUNTS ==========

func accountResponse(a studio.Account) studio.AccountResponse {
	return studio.AccountResponse{
		ID:       a.ID,
		Username: a.Username,
		Name:     a.Name,
		Role:     a.Role,
		RoomID:   a.RoomID,
	}
}

// ListAccounts implements studio.StudioService.
func (s *StudioServiceImpl) ListAccounts(ctx context.Context) ([]studio.AccountResponse, error) {
	if _, err := requireActor(ctx, auth.Actor.IsAdmin); err != nil {
		return nil, err
	}

	accounts := s.store.Snapshot().Rules.Accounts
	resp := make([]studio.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, accountResponse(a))
	}
	return resp, nil
}

// CreateAccount implements studio.StudioService.
func (s *StudioServiceImpl) CreateAccount(ctx context.Context, req studio.CreateAccountRequest) (studio.AccountResponse, error) {
	if _, err := requireActor(ctx, auth.Actor.IsAdmin); err != nil {
		return studio.AccountResponse{}, err
	}

	username := studio.NormalizeUsername(req.Username)
	if !validator.IsValidUsername(username) {
		return studio.AccountResponse{}, validator.ValidationErrors{{Field: "username", Message: "must be 3-50 characters of a-z, 0-9, '.', '_' or '-'"}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return studio.AccountResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	account := studio.Account{
		ID:           "acc-" + uuid.NewString(),
		Username:     username,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		PasswordHash: string(hash),
	}
	if req.Role == studio.RoleModel {
		account.RoomID = req.RoomID
	}

	_, err = s.updateRules(ctx, func(st studio.State) (studio.Rules, error) {
		r := st.Rules
		if slices.ContainsFunc(r.Accounts, func(a studio.Account) bool {
			return studio.NormalizeUsername(a.Username) == username
		}) {
			return r, studio.ErrUsernameExists
		}
		if account.RoomID != nil {
			if _, ok := st.RoomByID(*account.RoomID); !ok {
				return r, studio.ErrRoomNotFound
			}
		}
		r.Accounts = append(slices.Clone(r.Accounts), account)
		return r, nil
	})
	if err != nil {
		return studio.AccountResponse{}, err
	}

	slog.Info("Account created", "account_id", account.ID, "role", account.Role)
	return accountResponse(account), nil
}

// DeleteAccount implements studio.StudioService.
func (s *StudioServiceImpl) DeleteAccount(ctx context.Context, id string) error {
	actor, err := requireActor(ctx, auth.Actor.IsAdmin)
	if err != nil {
		return err
	}
	if actor.UserID == id {
		return studio.ErrCannotDeleteSelf
	}

	_, err = s.updateRules(ctx, func(st studio.State) (studio.Rules, error) {
		r := st.Rules
		idx := slices.IndexFunc(r.Accounts, func(a studio.Account) bool { return a.ID == id })
		if idx < 0 {
			return r, studio.ErrAccountNotFound
		}
		r.Accounts = slices.Delete(slices.Clone(r.Accounts), idx, idx+1)
		return r, nil
	})
	return err
}
