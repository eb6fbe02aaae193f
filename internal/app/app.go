package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aidar/payteams/internal/config"
	"github.com/aidar/payteams/internal/handler"
	"github.com/aidar/payteams/internal/ledger"
	"github.com/aidar/payteams/internal/logging"
	"github.com/aidar/payteams/internal/metrics"
	"github.com/aidar/payteams/internal/middleware"
	"github.com/aidar/payteams/internal/repository/postgres"
	"github.com/aidar/payteams/internal/service"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config *config.Config
	db     *pgxpool.Pool
	server *http.Server
	logger *slog.Logger
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	// Формат и уровень логов задаются конфигом: JSON в проде, tint локально
	logger := logging.New(os.Stdout, cfg.Log.Format, cfg.Log.Level)
	slog.SetDefault(logger)

	app := &App{
		config: cfg,
		logger: logger,
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Подключаемся к базе данных
	if err := a.connectDB(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully")
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	// NUMERIC колонки сканируются прямо в decimal.Decimal
	poolConfig.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database")
	return nil
}

// setupServer создает HTTP сервер с настройками таймаутов
func (a *App) setupServer() {
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      NewRouter(a.db, a.config, a.logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr)
}

// NewRouter собирает репозитории, сервисы и обработчики поверх пула и
// возвращает готовый роутер
func NewRouter(db *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) http.Handler {
	// Инициализируем слой репозиториев (работа с БД)
	userRepo := postgres.NewUserRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	pricingRepo := postgres.NewPricingRepository(db)
	payinRepo := postgres.NewPayinRepository(db)
	payoutRepo := postgres.NewPayoutRepository(db)

	// Инициализируем слой сервисов (бизнес-логика)
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.GetExpiration(),
		service.AuthOptions{
			MinPasswordLength: cfg.Auth.MinPasswordLength,
			BcryptCost:        cfg.Auth.BcryptCost,
		},
	)
	userService := service.NewUserService(userRepo)
	teamService := service.NewTeamService(teamRepo, userRepo)
	projectService := service.NewProjectService(projectRepo, teamRepo)
	pricingService := service.NewPricingService(projectService, projectRepo, teamRepo, pricingRepo)
	payinService := service.NewPayinService(projectService, payinRepo)
	payoutService := service.NewPayoutService(projectService, payoutRepo, logger)
	ledgerService := service.NewLedgerService(projectService, pricingRepo, payinRepo, payoutRepo, ledger.Options{
		IncludeUnpricedPayees: cfg.Ledger.IncludeUnpricedPayees,
	})

	// Инициализируем HTTP обработчики
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	teamHandler := handler.NewTeamHandler(teamService)
	projectHandler := handler.NewProjectHandler(projectService)
	pricingHandler := handler.NewPricingHandler(pricingService)
	payinHandler := handler.NewPayinHandler(payinService)
	payoutHandler := handler.NewPayoutHandler(payoutService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(metrics.Middleware)

	// Доступ к маршрутам описан таблицей; сессия кладется в контекст здесь
	r.Use(middleware.Gate(authService, middleware.DefaultRoutes))

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		handler.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/me", authHandler.Me)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Get("/{userID}", userHandler.Get)
	})

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", teamHandler.List)
		r.Post("/", teamHandler.Create)

		r.Route("/{teamID}", func(r chi.Router) {
			r.Get("/", teamHandler.Get)
			r.Delete("/", teamHandler.Delete)
			r.Post("/members", teamHandler.AddMember)
			r.Delete("/members/{userID}", teamHandler.RemoveMember)
			r.Get("/available-users", teamHandler.AvailableUsers)
		})
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", projectHandler.List)
		r.Post("/", projectHandler.Create)

		r.Route("/{projectID}", func(r chi.Router) {
			r.Get("/", projectHandler.Get)
			r.Patch("/", projectHandler.Update)
			r.Delete("/", projectHandler.Delete)

			r.Get("/teams", projectHandler.Teams)
			r.Post("/teams", projectHandler.AssignTeam)
			r.Delete("/teams/{teamID}", projectHandler.UnassignTeam)
			r.Get("/available-teams", projectHandler.AvailableTeams)

			r.Get("/pricing", pricingHandler.List)
			r.Put("/pricing", pricingHandler.Set)
			r.Delete("/pricing/{teamID}/{userID}", pricingHandler.Delete)

			r.Get("/payins", payinHandler.List)
			r.Post("/payins", payinHandler.Create)
			r.Patch("/payins/{payinID}", payinHandler.Update)
			r.Delete("/payins/{payinID}", payinHandler.Delete)

			r.Get("/payouts", payoutHandler.List)
			r.Post("/payouts", payoutHandler.Create)
			r.Patch("/payouts/{payoutID}", payoutHandler.UpdateStatus)
			r.Delete("/payouts/{payoutID}", payoutHandler.Delete)

			r.Get("/ledger", ledgerHandler.Get)
		})
	})

	return r
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
