package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"expensebot/internal/charts"
	"expensebot/internal/log"
	"expensebot/internal/model"
	"expensebot/internal/service"
)

// Bot wires Telegram updates to the expense tracker.
type Bot struct {
	api     *tgbotapi.BotAPI
	tracker *service.ExpenseTracker
	charts  *charts.ChartGenerator
	logger  *log.Logger
}

func NewBot(token string, tracker *service.ExpenseTracker, logger *log.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		tracker: tracker,
		charts:  charts.NewChartGenerator(),
		logger:  logger,
	}, nil
}

// Start runs the bot in long-polling mode until the updates channel closes.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if err := b.handleUpdate(update); err != nil {
			// Log and keep serving; one user's failure must not stop the bot.
			b.logger.Error("handle update", "error", err)
		}
	}

	return nil
}

// HandleWebhook processes a single webhook-delivered update body.
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	return b.handleUpdate(update)
}

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	logger := b.logger.With("trace_id", uuid.NewString())

	if update.Message != nil && update.Message.IsCommand() {
		return b.handleCommand(logger, update.Message)
	}

	if update.CallbackQuery != nil {
		return b.handleCallback(logger, update.CallbackQuery)
	}

	return b.handleMessage(logger, update.Message)
}

func (b *Bot) handleCommand(logger *log.Logger, message *tgbotapi.Message) error {
	logger.Debug("command", "cmd", message.Command(), "user_id", message.From.ID)

	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "log":
		b.handleLog(message)
	case "stats":
		b.handleStats(message)
	case "export":
		b.handleExport(logger, message)
	}

	return nil
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID,
		"Welcome to the Family Expense Logger Bot! Use /log to log an expense or /stats to view statistics.")
	msg.ReplyToMessageID = message.MessageID
	msg.ReplyMarkup = b.mainKeyboard()
	b.api.Send(msg)
}

func (b *Bot) handleLog(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID, "Select a category:")
	msg.ReplyMarkup = b.categoriesKeyboard()
	b.api.Send(msg)
}

func (b *Bot) handleStats(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID, "Select a period:")
	msg.ReplyMarkup = b.periodsKeyboard()
	b.api.Send(msg)
}

func (b *Bot) handleCallback(logger *log.Logger, callback *tgbotapi.CallbackQuery) error {
	switch {
	case model.IsCategory(callback.Data):
		if err := b.tracker.SelectCategory(callback.From.ID, callback.Data); err != nil {
			return fmt.Errorf("select category: %w", err)
		}
		logger.Debug("category selected", "user_id", callback.From.ID, "category", callback.Data)
		edit := tgbotapi.NewEditMessageText(callback.Message.Chat.ID, callback.Message.MessageID,
			"Enter the amount of the expense:")
		b.api.Send(edit)
	case model.IsPeriod(callback.Data):
		b.handlePeriodCallback(logger, callback)
	}

	// Answer the callback to clear the client's loading indicator.
	b.api.Request(tgbotapi.NewCallback(callback.ID, ""))

	return nil
}

func (b *Bot) handlePeriodCallback(logger *log.Logger, callback *tgbotapi.CallbackQuery) {
	report, err := b.tracker.Report(context.Background(), callback.From.ID, callback.Data, time.Now())
	if err != nil {
		logger.Error("stats report", "user_id", callback.From.ID, "period", callback.Data, "error", err)
		b.sendErrorMessage(callback.Message.Chat.ID, fmt.Sprintf("An error occurred: %v", err))
		return
	}

	edit := tgbotapi.NewEditMessageText(callback.Message.Chat.ID, callback.Message.MessageID, report.Text)
	b.api.Send(edit)

	png, err := b.charts.CategoryChart("Expenses "+strings.ToLower(callback.Data), report.Totals)
	if err != nil {
		logger.Error("render chart", "user_id", callback.From.ID, "error", err)
		return
	}
	if len(png) > 0 {
		photo := tgbotapi.NewPhoto(callback.Message.Chat.ID, tgbotapi.FileBytes{
			Name:  "stats.png",
			Bytes: png,
		})
		b.api.Send(photo)
	}
}

func (b *Bot) handleMessage(logger *log.Logger, message *tgbotapi.Message) error {
	logged, err := b.tracker.LogExpense(context.Background(),
		message.From.ID, message.From.UserName, message.Text, time.Now())

	switch {
	case errors.Is(err, service.ErrNoPendingCategory):
		// Free text outside the logging flow is not ours to answer.
		return nil
	case errors.Is(err, service.ErrInvalidAmount):
		reply := tgbotapi.NewMessage(message.Chat.ID, "Invalid amount. Please enter a number.")
		reply.ReplyToMessageID = message.MessageID
		b.api.Send(reply)
		return nil
	case err != nil:
		logger.Error("log expense", "user_id", message.From.ID, "error", err)
		b.sendErrorMessage(message.Chat.ID, fmt.Sprintf("An error occurred: %v", err))
		return nil
	}

	logger.Info("expense logged",
		"user_id", message.From.ID, "id", logged.ID,
		"category", logged.Category, "amount", logged.Amount)

	reply := tgbotapi.NewMessage(message.Chat.ID,
		fmt.Sprintf("Expense logged! %s: %s", logged.Category, formatAmount(logged.Amount)))
	reply.ReplyToMessageID = message.MessageID
	b.api.Send(reply)

	return nil
}

func (b *Bot) handleExport(logger *log.Logger, message *tgbotapi.Message) {
	file, err := b.tracker.Export(context.Background(), time.Now())

	var exportErr *service.ExportError
	switch {
	case errors.Is(err, service.ErrNoExpenses):
		reply := tgbotapi.NewMessage(message.Chat.ID, "No expenses found to export.")
		reply.ReplyToMessageID = message.MessageID
		b.api.Send(reply)
		return
	case errors.As(err, &exportErr):
		logger.Error("export", "user_id", message.From.ID, "error", err)
		reply := tgbotapi.NewMessage(message.Chat.ID,
			"An error occurred during export: "+exportErr.Message)
		reply.ReplyToMessageID = message.MessageID
		b.api.Send(reply)
		return
	case err != nil:
		logger.Error("export", "user_id", message.From.ID, "error", err)
		b.sendErrorMessage(message.Chat.ID, fmt.Sprintf("An error occurred: %v", err))
		return
	}

	logger.Info("export sent", "user_id", message.From.ID, "file", file.Name, "bytes", len(file.Data))

	doc := tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FileBytes{
		Name:  file.Name,
		Bytes: file.Data,
	})
	doc.Caption = "Here is your expense data in CSV format!"
	b.api.Send(doc)
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "❌ "+text)
	b.api.Send(msg)
}

// formatAmount renders an amount the way the user typed it: minimal
// decimal form, no forced precision.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
