package main

import (
	"log/slog"
	"os"

	"expensebot/internal/bot"
	"expensebot/internal/config"
	applog "expensebot/internal/log"
	"expensebot/internal/service"
	"expensebot/internal/storage"
)

func main() {
	logger := applog.New("main", slog.LevelInfo)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewStore(cfg.DBPath)
	if err != nil {
		logger.Error("open store", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer store.Close()

	tracker := service.NewExpenseTracker(store, cfg.WeekStart)

	b, err := bot.NewBot(cfg.TelegramToken, tracker, logger.WithComponent("bot"))
	if err != nil {
		logger.Error("create bot", "error", err)
		os.Exit(1)
	}

	logger.Info("bot started", "db_path", cfg.DBPath, "week_start", cfg.WeekStart.String())

	if err := b.Start(); err != nil {
		logger.Error("bot stopped", "error", err)
		os.Exit(1)
	}
}
