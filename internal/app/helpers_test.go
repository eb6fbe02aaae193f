package app_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aidar/payteams/internal/app"
	"github.com/aidar/payteams/internal/config"
	"github.com/aidar/payteams/migrations"
)

// TestEnvironment содержит все ресурсы необходимые для интеграционных тестов
type TestEnvironment struct {
	PostgresContainer *postgres.PostgresContainer
	App               *app.App
	BaseURL           string
	DB                *pgxpool.Pool
	ctx               context.Context
}

// envelope повторяет общий конверт ответов API
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// SetupTestEnvironment создает и инициализирует полное тестовое окружение
func SetupTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	ctx := context.Background()

	// Запускаем PostgreSQL контейнер
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("payteams_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	// Получаем строку подключения
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	// Применяем миграции
	applyMigrations(t, connStr)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	// Используем высокий порт для тестов чтобы избежать конфликтов
	testPort := "18080"
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port: testPort,
			Host: "127.0.0.1",
		},
		Database: config.DatabaseConfig{
			Host:     host,
			Port:     port.Port(),
			User:     "test_user",
			Password: "test_password",
			Name:     "payteams_test",
			SSLMode:  "disable",
			MaxConns: 10,
			MinConns: 1,
		},
		JWT: config.JWTConfig{
			Secret:          "test-jwt-secret-key-for-integration-tests",
			ExpirationHours: 24,
		},
		Auth: config.AuthConfig{
			MinPasswordLength: 8,
			BcryptCost:        4,
		},
		Log: config.LogConfig{
			Level:  "error",
			Format: "json",
		},
	}

	// Создаем и инициализируем приложение
	application, err := app.New(cfg)
	require.NoError(t, err, "Failed to create application")

	err = application.Initialize(ctx)
	require.NoError(t, err, "Failed to initialize application")

	// Запускаем сервер в фоне
	go func() {
		if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Logf("Server error: %v", err)
		}
	}()

	// Создаем подключение к БД для прямых запросов в тестах
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	return &TestEnvironment{
		PostgresContainer: pgContainer,
		App:               application,
		BaseURL:           fmt.Sprintf("http://%s:%s", cfg.Server.Host, testPort),
		DB:                pool,
		ctx:               ctx,
	}
}

// Cleanup очищает все тестовые ресурсы
func (te *TestEnvironment) Cleanup(t *testing.T) {
	t.Helper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if te.App != nil {
		_ = te.App.Shutdown(shutdownCtx)
	}

	if te.DB != nil {
		te.DB.Close()
	}

	if te.PostgresContainer != nil {
		_ = te.PostgresContainer.Terminate(te.ctx)
	}
}

// applyMigrations применяет встроенную схему БД
func applyMigrations(t *testing.T, connStr string) {
	t.Helper()

	db, err := sql.Open("pgx/v5", connStr)
	require.NoError(t, err, "Failed to open database connection")
	defer db.Close()

	migrationSQL, err := migrations.FS.ReadFile(migrations.InitSchema)
	require.NoError(t, err, "Failed to read migration file")

	_, err = db.Exec(string(migrationSQL))
	require.NoError(t, err, "Failed to apply migration")
}

// Do выполняет запрос к API и возвращает статус и разобранный конверт.
// body сериализуется в JSON, если не nil.
func (te *TestEnvironment) Do(t *testing.T, method, path string, body any, token string) (int, envelope) {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req, err := http.NewRequest(method, te.BaseURL+path, &payload)
	require.NoError(t, err, "Failed to create request")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "Failed to make request")
	defer resp.Body.Close()

	var env envelope
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp.StatusCode, env
}

// DoInto выполняет запрос, проверяет статус и раскладывает data в out
func (te *TestEnvironment) DoInto(t *testing.T, method, path string, body any, token string, wantStatus int, out any) {
	t.Helper()

	status, env := te.Do(t, method, path, body, token)
	require.Equal(t, wantStatus, status, "unexpected status for %s %s: %s", method, path, env.Error)
	require.True(t, env.Success)
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
}

// WaitForHealthCheck ждет пока приложение станет доступным
func (te *TestEnvironment) WaitForHealthCheck(t *testing.T) {
	t.Helper()

	for i := 0; i < 30; i++ {
		resp, err := http.Get(te.BaseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Fatal("Application did not become healthy in time")
}
