package studio

import (
	"encoding/json"
	"slices"

	"github.com/shopspring/decimal"
)

// AttendanceStatus enum
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusLate    AttendanceStatus = "late"
	StatusAbsent  AttendanceStatus = "absent"
	StatusExcused AttendanceStatus = "excused"
	StatusDayOff  AttendanceStatus = "day_off"
)

func (s AttendanceStatus) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusExcused, StatusDayOff:
		return true
	}
	return false
}

// Attended reports whether the status counts as a worked day.
func (s AttendanceStatus) Attended() bool {
	return s == StatusPresent || s == StatusLate
}

// Role enum
type Role string

const (
	RoleAdmin   Role = "admin"   // Full access, including finances
	RoleManager Role = "manager" // Daily operations on model rooms
	RoleModel   Role = "model"   // Read access to a single bound room
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleModel
}

// RoomKind separates commission rooms from fixed-salary staff rooms.
type RoomKind string

const (
	RoomKindModel    RoomKind = "model"
	RoomKindMonitor  RoomKind = "monitor"
	RoomKindCleaning RoomKind = "cleaning"
)

func (k RoomKind) IsValid() bool {
	return k == RoomKindModel || k == RoomKindMonitor || k == RoomKindCleaning
}

// IsStaff reports whether rooms of this kind are settled on a base salary.
func (k RoomKind) IsStaff() bool {
	return k == RoomKindMonitor || k == RoomKindCleaning
}

// ShiftType enum
type ShiftType string

const (
	ShiftMorning   ShiftType = "Mañana (6am-2pm)"
	ShiftAfternoon ShiftType = "Tarde (2pm-10pm)"
	ShiftNight     ShiftType = "Noche (10pm-6am)"
	ShiftRest      ShiftType = "Descanso"
)

func (t ShiftType) IsValid() bool {
	switch t {
	case ShiftMorning, ShiftAfternoon, ShiftNight, ShiftRest:
		return true
	}
	return false
}

// Account - Studio user in the account directory
type Account struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	RoomID       *int   `json:"roomId,omitempty"`
	PasswordHash string `json:"passwordHash,omitempty"`
	// Password is only read from legacy documents and hashed at boot.
	Password string `json:"password,omitempty"`
}

type PlatformToken struct {
	Platform string `json:"platform"`
	Tokens   int64  `json:"tokens"`
}

// DailyLog - One day of attendance and production for a model room
type DailyLog struct {
	ID             string           `json:"id"`
	Date           string           `json:"date"`
	Status         AttendanceStatus `json:"status"`
	StartTime      string           `json:"startTime"`
	EndTime        string           `json:"endTime"`
	TotalHours     float64          `json:"totalHours"`
	PlatformTokens []PlatformToken  `json:"platformTokens"`
	Notes          string           `json:"notes,omitempty"`
}

// TokenTotal sums every token entry of the log, including orphaned platforms.
func (l DailyLog) TokenTotal() int64 {
	var total int64
	for _, pt := range l.PlatformTokens {
		total += pt.Tokens
	}
	return total
}

// Advance - Cash advance against future pay
type Advance struct {
	ID      string          `json:"id"`
	Date    string          `json:"date"`
	Concept string          `json:"concept"`
	Amount  decimal.Decimal `json:"amount"`
}

// SexShopItem - Purchase charged to the room
type SexShopItem struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	Code      string          `json:"code,omitempty"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

func (i SexShopItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SexShopPayment - Abono already paid by the model toward sex-shop debt
type SexShopPayment struct {
	ID     string          `json:"id"`
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// SnackConsumption - Period-aware snack charge, priced against the current catalog
type SnackConsumption struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// RoomBilling - Per-room settlement configuration
type RoomBilling struct {
	PeriodStart     string          `json:"periodStart"`
	PeriodEnd       string          `json:"periodEnd"`
	ModelCedula     string          `json:"modelCedula"`
	BankAccount     string          `json:"bankAccount,omitempty"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	UsdExchangeRate decimal.Decimal `json:"usdExchangeRate"`
	ModelPercentage int             `json:"modelPercentage"`
	TokenValueUsd   decimal.Decimal `json:"tokenValueUsd"`
	AbsencesCount   int             `json:"absencesCount"`
	BaseSalary      decimal.Decimal `json:"baseSalary"`
}

// MonitorShift - Weekly roster entry of a staff room
type MonitorShift struct {
	ID          string    `json:"id"`
	Day         string    `json:"day"`
	ShiftType   ShiftType `json:"shiftType"`
	MonitorName string    `json:"monitorName"`
}

// Room - Billing/production unit
type Room struct {
	ID                int                `json:"id"`
	Name              string             `json:"name"`
	Kind              RoomKind           `json:"kind"`
	Platforms         []string           `json:"platforms"`
	Logs              []DailyLog         `json:"logs"`
	Advances          []Advance          `json:"advances"`
	SexShopItems      []SexShopItem      `json:"sexShopItems"`
	SexShopPayments   []SexShopPayment   `json:"sexShopAbonosHistory"`
	SnackQuantities   map[string]int     `json:"dulceriaQuantities,omitempty"`
	SnackConsumptions []SnackConsumption `json:"snackConsumptions"`
	Billing           *RoomBilling       `json:"billing,omitempty"`
	MonitorShifts     []MonitorShift     `json:"monitorShifts"`
}

// UnmarshalJSON accepts documents written before rooms carried a kind.
func (r *Room) UnmarshalJSON(data []byte) error {
	type roomAlias Room
	aux := struct {
		*roomAlias
		IsMonitorRoom  bool `json:"isMonitorRoom"`
		IsCleaningRoom bool `json:"isCleaningRoom"`
	}{roomAlias: (*roomAlias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if r.Kind == "" {
		switch {
		case aux.IsMonitorRoom:
			r.Kind = RoomKindMonitor
		case aux.IsCleaningRoom:
			r.Kind = RoomKindCleaning
		default:
			r.Kind = RoomKindModel
		}
	}
	return nil
}

// HasPlatform reports whether name is on the active platform list.
func (r Room) HasPlatform(name string) bool {
	return slices.Contains(r.Platforms, name)
}

// Product - Snack or sex-shop catalog entry
type Product struct {
	ID           string          `json:"id"`
	Code         string          `json:"code,omitempty"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	InitialStock int             `json:"initialStock,omitempty"`
}

// Expense - Studio operating expense
type Expense struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
}

// IncomeRecord - Platform payout received by the studio
type IncomeRecord struct {
	ID                string          `json:"id"`
	Date              string          `json:"date"`
	Platform          string          `json:"platform"`
	AmountUsdPaid     decimal.Decimal `json:"amountUsdPaid"`
	AmountUsdReceived decimal.Decimal `json:"amountUsdReceived"`
	ExchangeRate      decimal.Decimal `json:"exchangeRate"`
	TotalCop          decimal.Decimal `json:"totalCop"`
}

// Rules - Studio-wide configuration, catalogs and ledgers
type Rules struct {
	DailyTargetHours  float64         `json:"dailyTargetHours"`
	WeeklyTargetHours float64         `json:"weeklyTargetHours"`
	UsdExchangeRate   decimal.Decimal `json:"usdExchangeRate"`
	Platforms         []string        `json:"platforms"`
	Accounts          []Account       `json:"accounts"`
	SnackCatalog      []Product       `json:"snackCatalog"`
	SexShopCatalog    []Product       `json:"sexShopCatalog"`
	Expenses          []Expense       `json:"expenses"`
	IncomeRecords     []IncomeRecord  `json:"incomeRecords"`
}

// SnackPrice returns the current unit price of a snack product, zero when it no longer exists.
func (r Rules) SnackPrice(productID string) decimal.Decimal {
	for _, p := range r.SnackCatalog {
		if p.ID == productID {
			return p.UnitPrice
		}
	}
	return decimal.Zero
}

// State - The persisted application document
type State struct {
	Rooms []Room `json:"rooms"`
	Rules Rules  `json:"rules"`
}

// RoomIndex returns the position of the room with the given id, or -1.
func (s State) RoomIndex(id int) int {
	return slices.IndexFunc(s.Rooms, func(r Room) bool { return r.ID == id })
}

func (s State) RoomByID(id int) (Room, bool) {
	idx := s.RoomIndex(id)
	if idx < 0 {
		return Room{}, false
	}
	return s.Rooms[idx], true
}

// WithRoom returns a new state with the room of the same id replaced.
func (s State) WithRoom(room Room) State {
	rooms := slices.Clone(s.Rooms)
	if idx := s.RoomIndex(room.ID); idx >= 0 {
		rooms[idx] = room
	}
	s.Rooms = rooms
	return s
}

// NextRoomID returns one past the highest room id in use.
func (s State) NextRoomID() int {
	next := 1
	for _, r := range s.Rooms {
		if r.ID >= next {
			next = r.ID + 1
		}
	}
	return next
}

// Dated is implemented by every record that can be sliced by period.
type Dated interface {
	RecordDate() string
}

func (l DailyLog) RecordDate() string         { return l.Date }
func (a Advance) RecordDate() string          { return a.Date }
func (i SexShopItem) RecordDate() string      { return i.Date }
func (p SexShopPayment) RecordDate() string   { return p.Date }
func (c SnackConsumption) RecordDate() string { return c.Date }
func (e Expense) RecordDate() string          { return e.Date }
func (i IncomeRecord) RecordDate() string     { return i.Date }
