package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
)

// buildHiddenCardKeyboard builds the keyboard of a card whose answer is hidden.
func buildHiddenCardKeyboard(itemID string, canSkip bool) tgbotapi.InlineKeyboardMarkup {
	row := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("👀 Show answer", buildRevealCallback(itemID)),
	)
	if canSkip {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⏭ Skip", buildSkipCallback(itemID)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏹ Stop", buildStopCallback()),
		),
	)
}

// buildGradeKeyboard builds the grade buttons shown after the answer.
func buildGradeKeyboard(itemID string) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, q := range entities.GradeButtons {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(q.Label(), buildGradeCallback(itemID, q)))
	}

	// Five labels do not fit in one row on narrow screens.
	return tgbotapi.NewInlineKeyboardMarkup(row[:2], row[2:])
}

// buildRetryKeyboard offers to repeat a failed save.
func buildRetryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Retry save", buildRetryCallback()),
		),
	)
}

// buildStartKeyboard offers to start a review session.
func buildStartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Start review", buildStartCallback("")),
		),
	)
}

// buildCategoryKeyboard lists one button per category plus "All".
func buildCategoryKeyboard(categories []string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("All categories", buildStartCallback("")),
		),
	}

	for _, c := range categories {
		data := buildStartCallback(c)
		if data == "" {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(c, data)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
