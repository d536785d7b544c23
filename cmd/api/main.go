package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lovelys-studio/backoffice/internal/config"
	"github.com/lovelys-studio/backoffice/internal/domain/auth"
	"github.com/lovelys-studio/backoffice/internal/domain/report"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/lovelys-studio/backoffice/internal/fixtures"
	appHTTP "github.com/lovelys-studio/backoffice/internal/handler/http"
	"github.com/lovelys-studio/backoffice/internal/pkg/cron"
	"github.com/lovelys-studio/backoffice/internal/pkg/database"
	"github.com/lovelys-studio/backoffice/internal/pkg/gemini"
	"github.com/lovelys-studio/backoffice/internal/pkg/jwt"
	"github.com/lovelys-studio/backoffice/internal/pkg/sse"
	"github.com/lovelys-studio/backoffice/internal/pkg/storage"
	"github.com/lovelys-studio/backoffice/internal/repository/filestore"
	"github.com/lovelys-studio/backoffice/internal/repository/postgresql"
	serviceAuth "github.com/lovelys-studio/backoffice/internal/service/auth"
	dashboardService "github.com/lovelys-studio/backoffice/internal/service/dashboard"
	reportService "github.com/lovelys-studio/backoffice/internal/service/report"
	roomService "github.com/lovelys-studio/backoffice/internal/service/room"
	settlementService "github.com/lovelys-studio/backoffice/internal/service/settlement"
	"github.com/lovelys-studio/backoffice/internal/service/state"
	studioService "github.com/lovelys-studio/backoffice/internal/service/studio"
)

const (
	EventPersistFailed = "state.persist_failed"
	shutdownTimeout    = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	slog.SetDefault(appHTTP.NewLogger(cfg.App.Env, cfg.SlogLevel()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	// State backend
	var (
		stateRepo     studio.StateRepository
		refreshTokens auth.RefreshTokenRepository
	)
	switch cfg.State.Backend {
	case config.StateBackendPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Error connecting to database: ", err)
		}
		defer db.Close()

		if err := database.Migrate(ctx, db); err != nil {
			log.Fatal("Failed to migrate database: ", err)
		}
		stateRepo = postgresql.NewAppStateRepository(db, cfg.State.DocumentID, postgresql.DefaultKeepRevisions)
		refreshTokens = postgresql.NewRefreshTokenRepository(db)
	case config.StateBackendFile:
		stateRepo = filestore.NewAppStateRepository(fileStorage, cfg.State.DocumentID)
	default:
		log.Fatal("Unsupported state backend: ", cfg.State.Backend)
	}

	initial := state.Load(ctx, stateRepo, fixtures.GetDefaultState)
	initial, migrated, err := state.HashLegacyPasswords(initial)
	if err != nil {
		log.Fatal("Failed to hash legacy passwords: ", err)
	}

	hub := sse.NewHub()
	store := state.NewStore(initial)
	persister := state.NewPersister(stateRepo, cfg.State.FlushDebounce, func(err error) {
		hub.Broadcast(sse.Event{
			Event: EventPersistFailed,
			Data:  map[string]interface{}{"error": "changes could not be saved, retrying"},
		})
	})
	store.OnChange(persister.Enqueue)
	if migrated > 0 {
		slog.Info("Hashed legacy account passwords", "count", migrated)
		persister.Enqueue(initial)
	}

	persisterDone := make(chan struct{})
	go func() {
		defer close(persisterDone)
		persister.Run(ctx)
	}()

	scheduler := cron.NewScheduler(ctx)
	cron.NewStateJobs(persister, refreshTokens, cfg.State.RetryInterval).RegisterJobs(scheduler)
	scheduler.Start()

	// Reporting assistant is optional
	var generator report.Generator
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			slog.Error("Failed to initialize report assistant, answering with fallback", "error", err)
		} else {
			generator = client
		}
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authService := serviceAuth.NewAuthService(store, JWTService, refreshTokens)
	roomSvc := roomService.NewRoomService(store, hub)
	settlementSvc := settlementService.NewSettlementService(store, fileStorage, cfg.App.StudioName)
	studioSvc := studioService.NewStudioService(store, hub)
	dashboardSvc := dashboardService.NewDashboardService(store)
	reportSvc := reportService.NewReportService(store, generator)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			UploadsDir:     cfg.Storage.BasePath,
		},
		JWTService,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(JWTService, authService),
			Room:       appHTTP.NewRoomHandler(roomSvc),
			Settlement: appHTTP.NewSettlementHandler(settlementSvc),
			Studio:     appHTTP.NewStudioHandler(studioSvc),
			Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
			Report:     appHTTP.NewReportHandler(reportSvc),
			Event:      appHTTP.NewEventHandler(authService, hub),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr, "state_backend", cfg.State.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	scheduler.Stop()
	<-persisterDone

	// Anything still inside the debounce window is written now.
	if err := persister.Flush(shutdownCtx); err != nil {
		slog.Error("Final state flush failed, latest changes are lost", "error", err)
	}
}
