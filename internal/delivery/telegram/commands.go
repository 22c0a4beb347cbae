package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
)

func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, msgWelcome))
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, msgHelp))
	}
}

func (h *Handler) handleUnknown() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

// handleReview starts a session. Without a category and with several
// categories due, the owner picks one first.
func (h *Handler) handleReview(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if ok, err := h.ensureCollection(chatID); !ok {
			return err
		}

		category := strings.TrimSpace(args)
		if category == "" {
			if categories := h.reviews.Categories(h.now()); len(categories) > 1 {
				msg := newMessage(chatID, renderCategoryPicker(categories))
				msg.ReplyMarkup = buildCategoryKeyboard(categories)
				return h.send(msg)
			}
		}

		return h.startSession(ctx, chatID, category)
	}
}

func (h *Handler) handleDue() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if ok, err := h.ensureCollection(chatID); !ok {
			return err
		}

		now := h.now()
		due := h.reviews.LoadDueItems(now)

		msg := newMessage(chatID, renderDue(due, h.reviews.Categories(now), now))
		if len(due) > 0 {
			msg.ReplyMarkup = buildStartKeyboard()
		}
		return h.send(msg)
	}
}

// handleList parses "[kind] [category]". When the first word is not a
// filter kind every word belongs to the category.
func (h *Handler) handleList(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if ok, err := h.ensureCollection(chatID); !ok {
			return err
		}

		filter := parseListArgs(args)

		now := h.now()
		items := h.reviews.ListItems(now, filter)
		return h.send(newMessage(chatID, renderList(items, filter, now)))
	}
}

func parseListArgs(args string) entities.Filter {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return entities.Filter{Kind: entities.FilterAll}
	}

	kind, err := entities.ParseFilterKind(fields[0])
	if err != nil {
		return entities.Filter{Kind: entities.FilterAll, Category: strings.Join(fields, " ")}
	}

	return entities.Filter{Kind: kind, Category: strings.Join(fields[1:], " ")}
}

func (h *Handler) handleStats() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.reviews.LoadFailed() {
			return h.send(newPlainMessage(chatID, msgStoreUnavailable))
		}

		now := h.now()
		summary := entities.Summarize(h.reviews.ListItems(now, entities.Filter{Kind: entities.FilterAll}), now)
		return h.send(newMessage(chatID, renderStats(summary, h.reviews.Stats(), now)))
	}
}

// handleAttempt treats plain text as a typed answer to the hidden card.
func (h *Handler) handleAttempt(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		cur, err := h.reviews.Current()
		if err != nil {
			return h.send(newPlainMessage(chatID, msgNoSession))
		}

		if h.reviews.Revealed() {
			return h.send(newPlainMessage(chatID, "Rate the card with the buttons above."))
		}

		check := h.checker.Check(text, cur.Answer)
		h.logger.Debug("typed attempt checked",
			zap.String("item_id", cur.ID),
			zap.String("verdict", string(check.Verdict)),
			zap.Float64("similarity", check.Similarity),
		)

		if _, err := h.reviews.RevealAnswer(); err != nil {
			return err
		}

		if err := h.send(newMessage(chatID, renderAttempt(check))); err != nil {
			return err
		}

		return h.sendCard(chatID)
	}
}

// ensureCollection tells the owner when there is nothing to work with. It
// reports whether the command should go on.
func (h *Handler) ensureCollection(chatID int64) (bool, error) {
	switch {
	case h.reviews.LoadFailed():
		return false, h.send(newPlainMessage(chatID, msgStoreUnavailable))
	case h.reviews.Empty():
		return false, h.send(newPlainMessage(chatID, msgEmptyCollection))
	default:
		return true, nil
	}
}

func (h *Handler) startSession(ctx context.Context, chatID int64, category string) error {
	if h.reviews.Dirty() {
		if err := h.reviews.Flush(ctx); err != nil {
			h.logger.Warn("pending progress still not saved", zap.Error(err))
		}
	}

	queue := h.reviews.StartSession(h.now(), entities.Filter{Kind: entities.FilterAll, Category: category})
	if len(queue) == 0 {
		h.retireCard(chatID)
		return h.send(newPlainMessage(chatID, msgNothingDue))
	}

	return h.sendCard(chatID)
}

// sendCard sends the head of the queue as a new message, or the session
// summary when the queue is empty.
func (h *Handler) sendCard(chatID int64) error {
	h.retireCard(chatID)

	text, kb, ok := h.cardView()
	if !ok {
		return h.send(newMessage(chatID, renderSessionDone(h.reviews.EndSession(), h.now())))
	}

	msg := newMessage(chatID, text)
	msg.ReplyMarkup = kb

	sent, err := h.bot.Send(msg)
	if err != nil {
		return err
	}

	h.cards.Store(chatID, sent.MessageID)
	return nil
}

// editCard redraws the head of the queue in place.
func (h *Handler) editCard(chatID int64, messageID int) error {
	text, kb, ok := h.cardView()
	if !ok {
		return h.sendCard(chatID)
	}

	edit := newEdit(chatID, messageID, text)
	edit.ReplyMarkup = &kb
	return h.send(edit)
}

// retireCard strips the buttons of the previous card message.
func (h *Handler) retireCard(chatID int64) {
	prev, ok := h.cards.Get(chatID)
	if !ok {
		return
	}

	h.cards.Delete(chatID)
	h.request(tgbotapi.NewEditMessageReplyMarkup(chatID, prev.MessageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	}))
}

func (h *Handler) cardView() (string, tgbotapi.InlineKeyboardMarkup, bool) {
	cur, err := h.reviews.Current()
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, false
	}

	queue := h.reviews.Queue()
	reviewed := h.reviews.Stats().Reviewed
	revealed := h.reviews.Revealed()

	text := renderCard(cur, revealed, reviewed+1, reviewed+len(queue))
	if revealed {
		return text, buildGradeKeyboard(cur.ID), true
	}

	return text, buildHiddenCardKeyboard(cur.ID, len(queue) > 1), true
}
