package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aidar/payteams/internal/app"
	"github.com/aidar/payteams/internal/config"
)

func main() {
	// Загружаем конфигурацию из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	// Создаем экземпляр приложения (логгер настраивается здесь же)
	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Не удалось создать приложение: %v", err)
	}

	// Инициализируем приложение (подключение к БД, настройка роутинга)
	ctx := context.Background()
	if err := application.Initialize(ctx); err != nil {
		slog.Error("Не удалось инициализировать приложение", "error", err)
		os.Exit(1)
	}

	// Настраиваем graceful shutdown для корректного завершения
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Запускаем HTTP сервер в отдельной горутине
	go func() {
		if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Ошибка сервера", "error", err)
			sigChan <- syscall.SIGTERM
		}
	}()

	// Ожидаем сигнал прерывания (Ctrl+C или SIGTERM)
	sig := <-sigChan
	slog.Info("Остановка сервера", "signal", sig.String())

	// Создаем контекст с таймаутом для graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	// Корректно останавливаем приложение
	if err := application.Shutdown(shutdownCtx); err != nil {
		cancel()
		slog.Error("Не удалось корректно остановить сервер", "error", err)
		os.Exit(1)
	}
	cancel()

	slog.Info("Сервер остановлен")
}
