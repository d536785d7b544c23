package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lovelys-studio/backoffice/internal/handler/http/middleware"
	"github.com/lovelys-studio/backoffice/internal/pkg/jwt"
)

const appVersion = "v1.0.0"

// RouterConfig carries the deployment settings the router needs.
type RouterConfig struct {
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
	// UploadsDir is served under /uploads when set.
	UploadsDir string
}

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	Room       RoomHandler
	Settlement SettlementHandler
	Studio     StudioHandler
	Dashboard  DashboardHandler
	Report     ReportHandler
	Event      EventHandler
}

// NewLogger builds the ECS-formatted JSON logger shared by the app and the request log.
func NewLogger(env string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "lovelys-backoffice"),
		slog.String("version", appVersion),
		slog.String("env", env),
	)
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logger := NewLogger(cfg.Env, cfg.LogLevel)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	if cfg.UploadsDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// The stream authenticates with its own short-lived token
		r.Get("/events/stream", h.Event.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/auth/me", h.Auth.Me)
			r.Get("/events/token", h.Auth.SSEToken)

			r.Route("/rooms", func(r chi.Router) {
				r.Get("/", h.Room.List)

				// Admin only
				r.With(middleware.AdminOnly).Post("/", h.Room.Create)

				r.Route("/{roomId}", func(r chi.Router) {
					r.Get("/", h.Room.Get)
					r.Patch("/", h.Room.Update)
					r.With(middleware.AdminOnly).Delete("/", h.Room.Delete)

					r.Get("/settlement", h.Settlement.GetSettlement)
					r.Get("/receipt", h.Settlement.GetReceipt)
					r.Post("/receipt/export", h.Settlement.ExportReceipt)

					// Mutators decide per privilege and answer 403 when denied
					r.Post("/platforms", h.Room.AddPlatform)
					r.Put("/platforms/{index}", h.Room.RenamePlatform)
					r.Delete("/platforms/{index}", h.Room.RemovePlatform)

					r.Post("/logs", h.Room.CreateLog)
					r.Patch("/logs/{logId}", h.Room.UpdateLog)
					r.Delete("/logs/{logId}", h.Room.DeleteLog)

					r.Post("/advances", h.Room.CreateAdvance)
					r.Patch("/advances/{advanceId}", h.Room.UpdateAdvance)
					r.Delete("/advances/{advanceId}", h.Room.DeleteAdvance)

					r.Route("/sexshop", func(r chi.Router) {
						r.Post("/items", h.Room.AddSexShopItem)
						r.Delete("/items/{itemId}", h.Room.DeleteSexShopItem)
						r.Post("/payments", h.Room.AddSexShopPayment)
						r.Delete("/payments/{paymentId}", h.Room.DeleteSexShopPayment)
					})

					r.Post("/snacks", h.Room.AdjustSnack)
					r.Patch("/billing", h.Room.UpdateBilling)
					r.Put("/shifts/{shiftId}", h.Room.UpdateShift)
				})
			})

			r.Route("/studio", func(r chi.Router) {
				r.Use(middleware.RequireStaff)

				r.Get("/rules", h.Studio.GetRules)
				r.Patch("/rules", h.Studio.UpdateRules)

				r.Route("/catalogs", func(r chi.Router) {
					r.Get("/sexshop/lookup", h.Studio.LookupSexShopCode)
					r.Post("/{kind}", h.Studio.CreateProduct)
					r.Get("/{kind}/inventory", h.Studio.GetInventory)
					r.Patch("/{kind}/{productId}", h.Studio.UpdateProduct)
					r.Delete("/{kind}/{productId}", h.Studio.DeleteProduct)
				})

				r.Post("/expenses", h.Studio.CreateExpense)
				r.Delete("/expenses/{id}", h.Studio.DeleteExpense)
				r.Post("/income", h.Studio.CreateIncome)
				r.Delete("/income/{id}", h.Studio.DeleteIncome)

				// Admin only
				r.Route("/accounts", func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Studio.ListAccounts)
					r.Post("/", h.Studio.CreateAccount)
					r.Delete("/{id}", h.Studio.DeleteAccount)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/dashboard", h.Dashboard.GetDashboard)
				r.Post("/reports/assistant", h.Report.Ask)
			})
		})
	})
	return r
}
