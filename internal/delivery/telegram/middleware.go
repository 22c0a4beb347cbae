package telegram

import (
	"context"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
			return nil
		}
		return nil
	}
}

// ownerOnly drops updates from anyone but the owner.
func (h *Handler) ownerOnly(userID int64, fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if userID != h.ownerID {
			h.logger.Warn("update from unknown user ignored",
				zap.Int64("user_id", userID),
				zap.Int64("chat_id", chatID),
			)
			return h.send(newPlainMessage(chatID, msgNotOwner))
		}
		return fn(ctx, chatID)
	}
}
