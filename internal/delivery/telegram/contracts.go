package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
	"github.com/aliskhannn/recall-bot/internal/service"
	"github.com/aliskhannn/recall-bot/internal/storage"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// ReviewService is the part of the review scheduler the bot drives.
type ReviewService interface {
	Empty() bool
	LoadFailed() bool
	LoadDueItems(now time.Time) []entities.ReviewItem
	ListItems(now time.Time, filter entities.Filter) []entities.ReviewItem
	Categories(now time.Time) []string

	StartSession(now time.Time, filter entities.Filter) []entities.ReviewItem
	Queue() []entities.ReviewItem
	Current() (entities.ReviewItem, error)
	Revealed() bool
	RevealAnswer() (entities.ReviewItem, error)
	Grade(ctx context.Context, id string, q entities.Quality, now time.Time) (entities.ReviewItem, error)
	Skip() []entities.ReviewItem
	EndSession() entities.SessionStats
	Flush(ctx context.Context) error
	Dirty() bool
	Stats() entities.SessionStats

	DueCount(now time.Time) int
	AverageConfidence(now time.Time) float64
}

type AnswerChecker interface {
	Check(attempt, answer string) service.AnswerCheck
}

type ReminderStorage interface {
	UpsertAndGetPrev(chatID int64, messageID int) (prev storage.Message, hadPrev bool)
}

type CardStorage interface {
	Store(chatID int64, messageID int)
	Get(chatID int64) (storage.Message, bool)
	Delete(chatID int64)
}
