package main

import (
	"context"
	"log/slog"

	"expensebot/internal/bot"
	"expensebot/internal/config"
	applog "expensebot/internal/log"
	"expensebot/internal/service"
	"expensebot/internal/storage"
)

// Request is the incoming API Gateway request wrapper.
type Request struct {
	Body string `json:"body"`
}

// Response is the API Gateway response wrapper.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Handler processes one Telegram webhook update per invocation.
func Handler(ctx context.Context, request Request) (*Response, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}

	store, err := storage.NewStore(cfg.DBPath)
	if err != nil {
		return errorResponse(err)
	}
	defer store.Close()

	tracker := service.NewExpenseTracker(store, cfg.WeekStart)

	b, err := bot.NewBot(cfg.TelegramToken, tracker, applog.New("bot", slog.LevelInfo))
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Entry point for local builds; the cloud runtime calls Handler.
}
