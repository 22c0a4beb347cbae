package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Commands shown in the Telegram menu.
var botCommands = []tgbotapi.BotCommand{
	{Command: "review", Description: "Review the cards that are due"},
	{Command: "due", Description: "Show what is due now"},
	{Command: "list", Description: "Browse the collection"},
	{Command: "stats", Description: "Collection and session statistics"},
	{Command: "help", Description: "Help"},
}

type Handler struct {
	bot       BotAPI
	logger    *zap.Logger
	reviews   ReviewService
	checker   AnswerChecker
	cards     CardStorage
	reminders ReminderStorage
	ownerID   int64
	now       func() time.Time
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	reviews ReviewService,
	checker AnswerChecker,
	cards CardStorage,
	reminders ReminderStorage,
	ownerID int64,
) *Handler {
	return &Handler{
		bot:       bot,
		logger:    logger,
		reviews:   reviews,
		checker:   checker,
		cards:     cards,
		reminders: reminders,
		ownerID:   ownerID,
		now:       time.Now,
	}
}

// RegisterCommands publishes the command menu.
func (h *Handler) RegisterCommands() error {
	if _, err := h.bot.Request(tgbotapi.NewSetMyCommands(botCommands...)); err != nil {
		return fmt.Errorf("set bot commands: %w", err)
	}
	return nil
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.Bool("command", update.Message.IsCommand()),
	)

	var fn HandlerFunc
	if update.Message.IsCommand() {
		args := update.Message.CommandArguments()

		switch update.Message.Command() {
		case "start":
			fn = h.handleStart()
		case "help":
			fn = h.handleHelp()
		case "review":
			fn = h.handleReview(args)
		case "due":
			fn = h.handleDue()
		case "list":
			fn = h.handleList(args)
		case "stats":
			fn = h.handleStats()
		default:
			fn = h.handleUnknown()
		}
	} else {
		fn = h.handleAttempt(update.Message.Text)
	}

	_ = h.withErrorHandling(h.ownerOnly(userID, fn))(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message", zap.Error(err))
		return err
	}
	return nil
}

// request is for calls whose response carries no message, such as deletes.
func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		h.logger.Debug("telegram request failed", zap.Error(err))
	}
}

func (h *Handler) answerCallback(id, text string) {
	h.request(tgbotapi.NewCallback(id, text))
}
