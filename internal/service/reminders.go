package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultReminderSchedule fires at the top of every hour.
const DefaultReminderSchedule = "0 * * * *"

// ReminderService nudges the owner when review items are due.
type ReminderService struct {
	summary  DueSummary
	notifier ReminderNotifier
	schedule string
	logger   *zap.Logger
	now      func() time.Time
}

// NewReminderService creates a new reminder service. An empty schedule falls
// back to DefaultReminderSchedule.
func NewReminderService(summary DueSummary, schedule string, logger *zap.Logger) *ReminderService {
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}

	return &ReminderService{
		summary:  summary,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Start runs the cron loop until ctx is cancelled.
func (s *ReminderService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		if err := s.SendDue(ctx); err != nil {
			s.logger.Error("failed to send due reminder", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("reminder service started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	// Wait for a running job before returning.
	<-c.Stop().Done()
	s.logger.Info("reminder service stopped")

	return nil
}

// SendDue sends a reminder when at least one item is due. It does nothing
// when the queue is empty.
func (s *ReminderService) SendDue(ctx context.Context) error {
	now := s.now()

	due := s.summary.DueCount(now)
	if due == 0 {
		s.logger.Debug("no items due, reminder skipped")
		return nil
	}

	if s.notifier == nil {
		return fmt.Errorf("notifier not initialized")
	}

	avg := int(math.Round(s.summary.AverageConfidence(now)))
	if err := s.notifier.SendDueReminder(ctx, due, avg); err != nil {
		return fmt.Errorf("send due reminder: %w", err)
	}

	s.logger.Info("due reminder sent",
		zap.Int("due", due),
		zap.Int("average_confidence", avg),
	)

	return nil
}
