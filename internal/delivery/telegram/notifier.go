package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// SendDueReminder sends the owner a reminder with a button that starts a
// session. The previous reminder is deleted so at most one stays in the chat.
func (h *Handler) SendDueReminder(ctx context.Context, due int, averageConfidence int) error {
	msg := newMessage(h.ownerID, renderReminder(due, averageConfidence))
	msg.ReplyMarkup = buildStartKeyboard()

	sent, err := h.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}

	prev, hadPrev := h.reminders.UpsertAndGetPrev(h.ownerID, sent.MessageID)
	if hadPrev {
		if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(prev.ChatID, prev.MessageID)); err != nil {
			h.logger.Debug("failed to delete previous reminder",
				zap.Int("message_id", prev.MessageID),
				zap.Error(err),
			)
		}
	}

	return nil
}
