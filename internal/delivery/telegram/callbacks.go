package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
	"github.com/aliskhannn/recall-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	cd := decodeCallback(cb.Data)

	var fn HandlerFunc
	switch cd.Action {
	case actionStart:
		fn = h.startCallback(cb.ID, cd)
	case actionReveal:
		fn = h.revealCallback(cb.ID, cd, messageID)
	case actionSkip:
		fn = h.skipCallback(cb.ID, cd, messageID)
	case actionGrade:
		fn = h.gradeCallback(cb.ID, cd, messageID)
	case actionRetry:
		fn = h.retryCallback(cb.ID, messageID)
	case actionStop:
		fn = h.stopCallback(cb.ID, messageID)
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
		h.answerCallback(cb.ID, "")
		return
	}

	_ = h.withErrorHandling(h.ownerOnly(cb.From.ID, fn))(ctx, chatID)
}

func (h *Handler) startCallback(callbackID string, cd callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.answerCallback(callbackID, "")

		if ok, err := h.ensureCollection(chatID); !ok {
			return err
		}
		return h.startSession(ctx, chatID, startCategory(cd))
	}
}

func (h *Handler) revealCallback(callbackID string, cd callbackData, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if !h.isCurrent(cd.param(0)) {
			h.answerCallback(callbackID, msgCardGone)
			return nil
		}

		if _, err := h.reviews.RevealAnswer(); err != nil {
			h.answerCallback(callbackID, msgCardGone)
			return nil
		}

		h.answerCallback(callbackID, "")
		return h.editCard(chatID, messageID)
	}
}

func (h *Handler) skipCallback(callbackID string, cd callbackData, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if !h.isCurrent(cd.param(0)) {
			h.answerCallback(callbackID, msgCardGone)
			return nil
		}

		h.reviews.Skip()
		h.answerCallback(callbackID, "")
		return h.editCard(chatID, messageID)
	}
}

func (h *Handler) gradeCallback(callbackID string, cd callbackData, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		q, err := entities.ParseQuality(cd.param(1))
		if err != nil {
			h.logger.Warn("bad grade callback", zap.String("data", cd.Raw), zap.Error(err))
			h.answerCallback(callbackID, "")
			return nil
		}

		id := cd.param(0)
		if id == "" {
			cur, err := h.reviews.Current()
			if err != nil {
				h.answerCallback(callbackID, msgCardGone)
				return nil
			}
			id = cur.ID
		}

		now := h.now()
		item, err := h.reviews.Grade(ctx, id, q, now)

		saveFailed := errors.Is(err, service.ErrSaveFailed)
		switch {
		case err == nil || saveFailed:
		case errors.Is(err, service.ErrEmptyQueue), errors.Is(err, service.ErrNotInQueue):
			h.answerCallback(callbackID, msgCardGone)
			return nil
		case errors.Is(err, service.ErrAnswerHidden):
			h.answerCallback(callbackID, "Show the answer first.")
			return nil
		default:
			h.answerCallback(callbackID, "")
			return err
		}

		h.answerCallback(callbackID, "")

		// The graded card stays in the chat as a summary.
		h.cards.Delete(chatID)
		edit := newEdit(chatID, messageID, renderGraded(item, q, now, saveFailed))
		if saveFailed {
			kb := buildRetryKeyboard()
			edit.ReplyMarkup = &kb
		}
		if err := h.send(edit); err != nil {
			return err
		}

		return h.sendCard(chatID)
	}
}

func (h *Handler) retryCallback(callbackID string, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.reviews.Flush(ctx); err != nil {
			h.request(tgbotapi.NewCallbackWithAlert(callbackID, msgSaveStillFailing))
			return nil
		}

		h.answerCallback(callbackID, msgSaveRetried)
		h.request(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
			InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
		}))
		return nil
	}
}

func (h *Handler) stopCallback(callbackID string, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.answerCallback(callbackID, msgSessionStopped)
		h.cards.Delete(chatID)

		stats := h.reviews.EndSession()
		text := md(msgSessionStopped)
		if stats.Reviewed > 0 {
			text = renderSessionDone(stats, h.now())
		}

		return h.send(newEdit(chatID, messageID, text))
	}
}

// isCurrent reports whether a card callback targets the head of the queue.
// An empty id is treated as the head.
func (h *Handler) isCurrent(itemID string) bool {
	cur, err := h.reviews.Current()
	if err != nil {
		return false
	}
	return itemID == "" || itemID == cur.ID
}
