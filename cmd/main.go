package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"puzzle-bot/config"
	telegram "puzzle-bot/internal/api"
	"puzzle-bot/internal/container"
	"puzzle-bot/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logg.Error("failed to create bot api", "error", err)
		os.Exit(1)
	}

	// Собираем сервисы приложения
	appContainer, err := container.New(cfg, telegram.NewFileDownloader(api), logg)
	if err != nil {
		logg.Error("failed to build container", "error", err)
		os.Exit(1)
	}

	// Создаём бота
	bot := telegram.NewBot(api, appContainer.Workflows, logg)

	logg.Info("bot is running", "render_backend", cfg.RenderBackend, "camera_device", cfg.CameraDevice)
	if err := bot.Run(ctx); err != nil {
		logg.Error("bot error", "error", err)
	}

	// Дожидаемся начатых анализов и освобождаем камеры
	appContainer.Workflows.Wait()
	if err := appContainer.Workflows.Close(); err != nil {
		logg.Warn("failed to release cameras", "error", err)
	}
	logg.Info("bot stopped")
}
