package fixtures

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/shopspring/decimal"
)

// ==========================================
// STUDIO CONSTANTS
// ==========================================

var (
	// DefaultPlatforms is the studio-wide platform list of a fresh install
	DefaultPlatforms = []string{"Chaturbate", "Stripchat", "CamSoda", "BongaCams", "Amateur TV"}

	// NewRoomPlatforms are the platforms a room created from the admin surface starts with
	NewRoomPlatforms = []string{"Chaturbate", "Stripchat"}

	// WeekDays in roster order
	WeekDays = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

	DefaultExchangeRate = decimal.NewFromInt(4000)
)

const (
	DefaultDailyTargetHours  = 8
	DefaultWeeklyTargetHours = 40
)

var roomCities = []string{"Tokio", "Rumania", "Colombia", "Berlin", "Polonia", "Francia", "Alemania", "Argentina", "Manizales", "Brasil"}
var roomShifts = []string{"Mañana", "Tarde", "Noche"}

// ==========================================
// CATALOGS
// ==========================================

func snack(id, name string, price int64) studio.Product {
	return studio.Product{ID: id, Name: name, UnitPrice: decimal.NewFromInt(price)}
}

// GetDefaultSnackCatalog returns the dulcería catalog of a fresh install
func GetDefaultSnackCatalog() []studio.Product {
	return []studio.Product{
		snack("s1", "Vive 100", 3300),
		snack("s2", "Coca Cola x 400", 3300),
		snack("s3", "Pony Personal", 3300),
		snack("s4", "Glacial x 400", 1800),
		snack("s5", "Hit x 500", 3000),
		snack("s6", "Nucita", 1000),
		snack("s7", "Bom Bom Bun", 800),
		snack("s8", "Leche Personal", 1600),
		snack("s9", "Trident Mediano", 2000),
		snack("s10", "Festibal Grande", 1800),
		snack("s11", "Chocolatina Yet", 1700),
		snack("s12", "Pañitos Humedos", 2000),
		snack("s13", "Gatorade", 4200),
		snack("s14", "Agua Cristal Mini", 1000),
		snack("s15", "Mani Moto", 2000),
		snack("s16", "Productos Papis", 2000),
		snack("s17", "Papas Margarita", 2500),
		snack("s18", "Gomas", 2500),
		snack("s19", "Chestres", 2000),
		snack("s20", "Doritos", 2800),
		snack("s21", "Boliquesos", 2000),
		snack("s22", "DeTodito", 3000),
		snack("s23", "Chokis Galleta", 3000),
		snack("s24", "Chocolores", 2200),
		snack("s25", "Choclitos", 2000),
		snack("s26", "Chocolatina Bianchi", 1600),
		snack("s27", "Trident Pequeño", 500),
		snack("s28", "Barquillo Piazza", 1000),
		snack("s29", "Arequipe", 2200),
		snack("s30", "Trocipollo", 2000),
		snack("s31", "Agua Grande", 2000),
		snack("s32", "Burbuja Yet", 2000),
		snack("s33", "Chocolates Gol", 2000),
		snack("s34", "Saviloe", 3000),
		snack("s35", "Avena", 2500),
		snack("s36", "Leche Saborizada", 2500),
		snack("s37", "Vaso Yogurt", 2000),
		snack("s38", "Cereales", 4500),
		snack("s39", "Rosquilas", 1500),
		snack("s40", "Lecheritas", 1600),
		snack("s41", "Chocolatina Bianchi XL", 2000),
	}
}

// ==========================================
// ROOMS
// ==========================================

// GetDefaultRoster returns a full week of shifts for a staff room
func GetDefaultRoster(idPrefix string, monitorName string) []studio.MonitorShift {
	shifts := make([]studio.MonitorShift, 0, len(WeekDays))
	for _, day := range WeekDays {
		shifts = append(shifts, studio.MonitorShift{
			ID:          fmt.Sprintf("shift-%s-%s", idPrefix, day),
			Day:         day,
			ShiftType:   studio.ShiftMorning,
			MonitorName: monitorName,
		})
	}
	return shifts
}

// NewEmptyRoom returns a room with every collection initialised
func NewEmptyRoom(id int, name string, kind studio.RoomKind, platforms []string) studio.Room {
	return studio.Room{
		ID:                id,
		Name:              name,
		Kind:              kind,
		Platforms:         slices.Clone(platforms),
		Logs:              []studio.DailyLog{},
		Advances:          []studio.Advance{},
		SexShopItems:      []studio.SexShopItem{},
		SexShopPayments:   []studio.SexShopPayment{},
		SnackConsumptions: []studio.SnackConsumption{},
		MonitorShifts:     []studio.MonitorShift{},
	}
}

// ==========================================
// ACCOUNTS
// ==========================================

func intPtr(i int) *int { return &i }

// Seed passwords are plaintext; they are hashed on first boot.
func defaultStaffAccounts() []studio.Account {
	return []studio.Account{
		{ID: "admin-1", Username: "andresb", Password: "3113", Role: studio.RoleAdmin, Name: "Andrés B."},
		{ID: "admin-2", Username: "andresv", Password: "0130", Role: studio.RoleAdmin, Name: "Andrés V."},
		{ID: "mgr-1", Username: "monica", Password: "123", Role: studio.RoleManager, Name: "Monica"},
		{ID: "mgr-2", Username: "daniela", Password: "123", Role: studio.RoleManager, Name: "Daniela"},
		{ID: "mgr-3", Username: "camila", Password: "123", Role: studio.RoleManager, Name: "Camila"},
	}
}

// ==========================================
// FULL STATE
// ==========================================

// GetDefaultState builds the document of a fresh install: 30 model rooms (10 cities x 3 shifts),
// 3 monitor rooms, 1 cleaning room and one model account per model room.
func GetDefaultState() studio.State {
	rooms := make([]studio.Room, 0, 34)
	accounts := defaultStaffAccounts()

	for i := 0; i < len(roomCities)*len(roomShifts); i++ {
		shift := roomShifts[i/len(roomCities)]
		city := roomCities[i%len(roomCities)]
		roomID := i + 1
		roomName := fmt.Sprintf("%s %s", city, shift)

		rooms = append(rooms, NewEmptyRoom(roomID, roomName, studio.RoomKindModel, DefaultPlatforms))

		shiftChar := strings.ToLower(string([]rune(shift)[0]))
		accounts = append(accounts, studio.Account{
			ID:       fmt.Sprintf("model-acc-%d", roomID),
			Username: fmt.Sprintf("%s%s%d", strings.ToLower(strings.ReplaceAll(city, " ", "")), shiftChar, roomID),
			Password: fmt.Sprintf("lovely%d", roomID),
			Role:     studio.RoleModel,
			Name:     "Modelo " + roomName,
			RoomID:   intPtr(roomID),
		})
	}

	for i := 1; i <= 3; i++ {
		roomID := 100 + i
		room := NewEmptyRoom(roomID, fmt.Sprintf("Gestión Monitoras %d", i), studio.RoomKindMonitor, nil)
		room.Platforms = []string{}
		room.MonitorShifts = GetDefaultRoster(fmt.Sprint(roomID), "")
		rooms = append(rooms, room)
	}

	cleaning := NewEmptyRoom(201, "Johana Aseo", studio.RoomKindCleaning, nil)
	cleaning.Platforms = []string{}
	cleaning.MonitorShifts = GetDefaultRoster("aseo-am", "Johana")
	rooms = append(rooms, cleaning)

	return studio.State{
		Rooms: rooms,
		Rules: studio.Rules{
			DailyTargetHours:  DefaultDailyTargetHours,
			WeeklyTargetHours: DefaultWeeklyTargetHours,
			UsdExchangeRate:   DefaultExchangeRate,
			Platforms:         slices.Clone(DefaultPlatforms),
			Accounts:          accounts,
			SnackCatalog:      GetDefaultSnackCatalog(),
			SexShopCatalog:    []studio.Product{},
			Expenses:          []studio.Expense{},
			IncomeRecords:     []studio.IncomeRecord{},
		},
	}
}
