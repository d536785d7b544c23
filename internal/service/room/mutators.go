package room

import (
	"slices"
	"strings"

	"github.com/lovelys-studio/backoffice/internal/domain/auth"
	"github.com/lovelys-studio/backoffice/internal/domain/room"
	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	settlementsvc "github.com/lovelys-studio/backoffice/internal/service/settlement"
)

// Mutation is a privilege-gated, copy-on-write change to one room. Apply must
// not write into the slices or maps of the room it receives.
type Mutation struct {
	Allowed func(auth.Actor) bool
	Apply   func(r studio.Room, rules studio.Rules) (studio.Room, error)
}

// Run checks the privilege before doing any work. A denied mutation returns the room unchanged.
func (m Mutation) Run(r studio.Room, rules studio.Rules, actor auth.Actor) (studio.Room, room.Outcome, error) {
	if !m.Allowed(actor) {
		return r, room.OutcomeDenied, nil
	}
	next, err := m.Apply(r, rules)
	if err != nil {
		return r, "", err
	}
	return next, room.OutcomeApplied, nil
}

func basic(a auth.Actor) bool    { return a.CanEditBasic() }
func finances(a auth.Actor) bool { return a.CanEditFinances() }

// ========== ROOM METADATA ==========

func Rename(name string) Mutation {
	return Mutation{Allowed: finances, Apply: func(r studio.Room, _ studio.Rules) (studio.Room, error) {
		r.Name = strings.TrimSpace(name)
		return r, nil
	}}
}

// ========== PLATFORMS ==========

func AddPlatform(name string) Mutation {
	return Mutation{Allowed: basic, Apply: func(r studio.Room, _ studio.Rules) (studio.Room, error) {
		name := strings.TrimSpace(name)
		if r.HasPlatform(name) {
			return r, room.ErrPlatformExists
		}
		r.Platforms = append(slices.Clone(r.Platforms), name)
		return r, nil
	}}
}

// RenamePlatform only changes the active list; token entries already logged keep the old name.
func RenamePlatform(index int, name string) Mutation {
	return Mutation{Allowed: basic, Apply: func(r studio.Room, _ studio.Rules) (studio.Room, error) {
		if index < 0 || index >= len(r.Platforms) {
			return r, room.ErrPlatformIndexOutOfRange
		}
		name := strings.TrimSpace(name)
		if existing := slices.Index(r.Platforms, name); existing >= 0 && existing != index {
			return r, room.ErrPlatformExists
		}
		platforms := slices.Clone(r.Platforms)
		platforms[index] = name
		r.Platforms = platforms
		return r, nil
	}}
}

// RemovePlatform leaves historical token entries in place; they become orphaned.
func RemovePlatform(index int) Mutation {
	return Mutation{Allowed: basic, Apply: func(r studio.Room, _ studio.Rules) (studio.Room, error) {
		if index < 0 || index >= len(r.Platforms) {
			return r, room.ErrPlatformIndexOutOfRange
		}
		r.Platforms = slices.Delete(slices.Clone(r.Platforms), index, index+1)
		return r, nil
	}}
}

// ========== LOGS ==========

// NewDefaultLog is a present 08:00-16:00 day with zero tokens on every active platform.
func NewDefaultLog(id, date string, platforms []string) studio.DailyLog {
	tokens := make([]studio.PlatformToken, 0, len(platforms))
	for _, p := range platforms {
		tokens = append(tokens, studio.PlatformToken{Platform: p, Tokens: 0})
	}
	return studio.DailyLog{
		ID:             id,
		Date:           date,
		Status:         studio.StatusPresent,
		StartTime:      "08:00",
		EndTime:        "16:00",
		TotalHours:     8,
		PlatformTokens: tokens,
	}
}

func dateTaken(logs []studio.DailyLog, date string, exceptID string) bool {
	return slices.ContainsFunc(logs, func(l studio.DailyLog) bool {
		return l.Date == date && l.ID != exceptID
	})
}

// AddLog appends a default log for date, one date per room.
func AddLog(id, date string) Mutation {
	return Mutation{Allowed: basic, Apply: func(r studio.Room, _ studio.Rules) (studio.Room, error) {
		if dateTaken(r.Logs, date, "") {
			return r, room.ErrLogDateTaken
		}
		r.Logs = append(slices.Clone(r.Logs), NewDefaultLog(id, date, r.Platforms))
		return r, nil
	}}
}

func UpdateLog(req room.UpdateLogRequest) Mutation {
	return Mutation{Allowed: basic, Apply: func(r studio.Room, _ studio.Rules) (studio.Room, error) {
		idx := slices.IndexFunc(r.Logs, func(l studio.DailyLog) bool { return l.ID == req.LogID })
		if idx < 0 {
			return r, room.ErrLogNotFound
		}
		log := r.Logs[idx]

		if req.Date != nil {
			if dateTaken(r.Logs, *req.Date, log.ID) {
				return r, room.ErrLogDateTaken
			}
			log.Date = *req.Date
		}
		if req.Status != nil {
			log.Status = *req.Status
		}
		if req.StartTime != nil {
			log.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			log.EndTime = *req.EndTime
		}
		if req.TotalHours != nil {
			log.TotalHours = *req.TotalHours
		}
		if req.Notes != nil {
			log.Notes = *req.Notes
		}
		if len(req.PlatformTokens) > 0 {
			tokens := slices.Clone(log.PlatformTokens)
			for _, pt := range req.PlatformTokens {
				i := slices.IndexFunc(tokens, func(t studio.PlatformToken) bool { return t.Platform == pt.Platform })
				if i >= 0 {
					tokens[i].Tokens = pt.Tokens
				} else {
					tokens = append(tokens, pt)
				}
			}
			log.PlatformTokens = tokens
		}

		logs := slices.Clone(r.Logs)
		logs[idx] = log
		r.Logs = logs
		return r, nil
	}}
}

func DeleteLog(logID string) Mutation {
	return Mutation{Allowed: basic, Apply: func(r studio.Room, _ studio.Rules) (studio.Room, error) {
		logs, ok := without(r.Logs, func(l studio.DailyLog) bool { return l.ID == logID })
		if !ok {
			return r, room.ErrLogNotFound
		}
		r.Logs = logs
		return r, nil
	}}
}

// ========== ADVANCES ==========

func AddAdvance(adv studio.Advance) Mutation {
	return Mutation{Allowed: finances, Apply: func(r studio.Room, _ studio.Rules) (studio.Room, error) {
		r.Advances = append(slices.Clone(r.Advances), adv)
		return r, nil
	}}
}

// UpdateAdvance lets managers fix the date or concept; changing the amount needs finance rights.
func UpdateAdvance(req room.UpdateAdvanceRequest) Mutation {
	allowed := basic
	if req.Amount != nil {
		allowed = finances
	}
	return Mutation{Allowed: allowed, Apply: func(r studio.Room, _ studio.Rules) (studio.Room, error) {
		idx := slices.IndexFunc(r.Advances, func(a studio.Advance) bool { return a.ID == req.AdvanceID })
		if idx < 0 {
			return r, room.ErrAdvanceNotFound
		}
		adv := r.Advances[idx]
		if req.Date != nil {
			adv.Date = *req.Date
		}
		if req.Concept != nil {
			adv.Concept = *req.Concept
		}
		if req.Amount != nil {
			adv.Amount = *req.Amount
		}
		advances := slices.Clone(r.Advances)
		advances[idx] = adv
		r.Advances = advances
		return r, nil
	}}
}

func DeleteAdvance(advanceID string) Mutation {
	return Mutation{Allowed: finances, Apply: func(r studio.Room, _ studio.Rules) (studio.Room, error) {
		advances, ok := without(r.Advances, func(a studio.Advance) bool { return a.ID == advanceID })
		if !ok {
			return r, room.ErrAdvanceNotFound
		}
		r.Advances = advances
		return r, nil
	}}
}

// ========== SEX SHOP ==========

// AddSexShopItem resolves the item from the catalog when it carries a code. The
// unit price is frozen on the item at entry time.
func AddSexShopItem(item studio.SexShopItem) Mutation {
	return Mutation{Allowed: basic, Apply: func(r studio.Room, rules studio.Rules) (studio.Room, error) {
		if code := strings.ToUpper(strings.TrimSpace(item.Code)); code != "" {
			idx := slices.IndexFunc(rules.SexShopCatalog, func(p studio.Product) bool {
				return strings.ToUpper(strings.TrimSpace(p.Code)) == code
			})
			if idx < 0 {
				return r, studio.ErrProductNotFound
			}
			product := rules.SexShopCatalog[idx]
			item.Code = product.Code
			item.Name = product.Name
			item.UnitPrice = product.UnitPrice
		}
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" || !item.UnitPrice.IsPositive() || item.Quantity < 1 {
			return r, room.ErrIncompleteProduct
		}
		r.SexShopItems = append(slices.Clone(r.SexShopItems), item)
		return r, nil
	}}
}

func DeleteSexShopItem(itemID string) Mutation {
	return Mutation{Allowed: basic, Apply: func(r studio.Room, _ studio.Rules) (studio.Room, error) {
		items, ok := without(r.SexShopItems, func(i studio.SexShopItem) bool { return i.ID == itemID })
		if !ok {
			return r, room.ErrItemNotFound
		}
		r.SexShopItems = items
		return r, nil
	}}
}

func AddSexShopPayment(payment studio.SexShopPayment) Mutation {
	return Mutation{Allowed: basic, Apply: func(r studio.Room, _ studio.Rules) (studio.Room, error) {
		r.SexShopPayments = append(slices.Clone(r.SexShopPayments), payment)
		return r, nil
	}}
}

func DeleteSexShopPayment(paymentID string) Mutation {
	return Mutation{Allowed: basic, Apply: func(r studio.Room, _ studio.Rules) (studio.Room, error) {
		payments, ok := without(r.SexShopPayments, func(p studio.SexShopPayment) bool { return p.ID == paymentID })
		if !ok {
			return r, room.ErrPaymentNotFound
		}
		r.SexShopPayments = payments
		return r, nil
	}}
}

// ========== SNACKS ==========

// AdjustSnack moves the quantity of the consumption dated on date by delta. The
// quantity never goes below zero and a consumption that reaches zero is removed.
func AdjustSnack(productID string, delta int, date string, newID string) Mutation {
	return Mutation{Allowed: basic, Apply: func(r studio.Room, rules studio.Rules) (studio.Room, error) {
		if !slices.ContainsFunc(rules.SnackCatalog, func(p studio.Product) bool { return p.ID == productID }) {
			return r, studio.ErrProductNotFound
		}

		idx := slices.IndexFunc(r.SnackConsumptions, func(c studio.SnackConsumption) bool {
			return c.ProductID == productID && c.Date == date
		})
		if idx < 0 {
			if delta <= 0 {
				return r, nil
			}
			r.SnackConsumptions = append(slices.Clone(r.SnackConsumptions), studio.SnackConsumption{
				ID:        newID,
				Date:      date,
				ProductID: productID,
				Quantity:  delta,
			})
			return r, nil
		}

		consumptions := slices.Clone(r.SnackConsumptions)
		qty := max(consumptions[idx].Quantity+delta, 0)
		if qty == 0 {
			consumptions = slices.Delete(consumptions, idx, idx+1)
		} else {
			consumptions[idx].Quantity = qty
		}
		r.SnackConsumptions = consumptions
		return r, nil
	}}
}

// ========== BILLING ==========

// UpdateBilling edits the billing fields. A room without billing starts from the
// defaults for period. Setting the exchange rate to zero clears the room override.
func UpdateBilling(req room.UpdateBillingRequest, period settlement.Period) Mutation {
	return Mutation{Allowed: finances, Apply: func(r studio.Room, _ studio.Rules) (studio.Room, error) {
		billing := settlementsvc.DefaultBilling(period)
		if r.Billing != nil {
			billing = *r.Billing
		}
		if req.PeriodStart != nil {
			billing.PeriodStart = *req.PeriodStart
		}
		if req.PeriodEnd != nil {
			billing.PeriodEnd = *req.PeriodEnd
		}
		if req.ModelCedula != nil {
			billing.ModelCedula = strings.TrimSpace(*req.ModelCedula)
		}
		if req.BankAccount != nil {
			billing.BankAccount = strings.TrimSpace(*req.BankAccount)
		}
		if req.PaymentMethod != nil {
			billing.PaymentMethod = strings.TrimSpace(*req.PaymentMethod)
		}
		if req.UsdExchangeRate != nil {
			billing.UsdExchangeRate = *req.UsdExchangeRate
		}
		if req.ModelPercentage != nil {
			billing.ModelPercentage = *req.ModelPercentage
		}
		if req.TokenValueUsd != nil {
			billing.TokenValueUsd = *req.TokenValueUsd
		}
		if req.AbsencesCount != nil {
			billing.AbsencesCount = *req.AbsencesCount
		}
		if req.BaseSalary != nil {
			billing.BaseSalary = *req.BaseSalary
		}
		r.Billing = &billing
		return r, nil
	}}
}

// ========== SHIFTS ==========

func UpdateShift(req room.UpdateShiftRequest) Mutation {
	return Mutation{Allowed: finances, Apply: func(r studio.Room, _ studio.Rules) (studio.Room, error) {
		if !r.Kind.IsStaff() {
			return r, room.ErrNotStaffRoom
		}
		idx := slices.IndexFunc(r.MonitorShifts, func(s studio.MonitorShift) bool { return s.ID == req.ShiftID })
		if idx < 0 {
			return r, room.ErrShiftNotFound
		}
		shifts := slices.Clone(r.MonitorShifts)
		if req.ShiftType != nil {
			shifts[idx].ShiftType = *req.ShiftType
		}
		if req.MonitorName != nil {
			shifts[idx].MonitorName = strings.TrimSpace(*req.MonitorName)
		}
		r.MonitorShifts = shifts
		return r, nil
	}}
}

// without returns a copy of records minus the first match.
func without[T any](records []T, match func(T) bool) ([]T, bool) {
	idx := slices.IndexFunc(records, match)
	if idx < 0 {
		return records, false
	}
	return slices.Delete(slices.Clone(records), idx, idx+1), true
}
