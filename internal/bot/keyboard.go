package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"expensebot/internal/model"
)

func (b *Bot) mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/log"),
			tgbotapi.NewKeyboardButton("/stats"),
		),
	)
}

func (b *Bot) categoriesKeyboard() tgbotapi.InlineKeyboardMarkup {
	var buttons [][]tgbotapi.InlineKeyboardButton

	// Two categories per row keeps the keyboard compact.
	for i := 0; i < len(model.Categories); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(model.Categories[i], model.Categories[i]),
		}
		if i+1 < len(model.Categories) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(model.Categories[i+1], model.Categories[i+1]))
		}
		buttons = append(buttons, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}

func (b *Bot) periodsKeyboard() tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(model.Periods))
	for _, p := range model.Periods {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(p, p))
	}

	return tgbotapi.NewInlineKeyboardMarkup(row)
}
