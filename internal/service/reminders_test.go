package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSummary struct {
	due int
	avg float64
}

func (s stubSummary) DueCount(time.Time) int { return s.due }
func (s stubSummary) AverageConfidence(time.Time) float64 { return s.avg }

type recordingNotifier struct {
	calls [][2]int
	err   error
}

func (n *recordingNotifier) SendDueReminder(_ context.Context, due int, avg int) error {
	n.calls = append(n.calls, [2]int{due, avg})
	return n.err
}

func TestReminderService_SendDue(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewReminderService(stubSummary{due: 3, avg: 56.5}, "", zap.NewNop())
	s.SetNotifier(notifier)

	require.NoError(t, s.SendDue(context.Background()))
	assert.Equal(t, [][2]int{{3, 57}}, notifier.calls)
	assert.Equal(t, DefaultReminderSchedule, s.schedule)
}

func TestReminderService_NothingDue(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewReminderService(stubSummary{}, "", zap.NewNop())
	s.SetNotifier(notifier)

	require.NoError(t, s.SendDue(context.Background()))
	assert.Empty(t, notifier.calls)
}

func TestReminderService_Errors(t *testing.T) {
	s := NewReminderService(stubSummary{due: 1}, "", zap.NewNop())
	assert.Error(t, s.SendDue(context.Background()), "notifier missing")

	s.SetNotifier(&recordingNotifier{err: errDiskFull})
	assert.ErrorIs(t, s.SendDue(context.Background()), errDiskFull)
}

func TestReminderService_StartRejectsBadSchedule(t *testing.T) {
	s := NewReminderService(stubSummary{}, "every now and then", zap.NewNop())
	assert.Error(t, s.Start(context.Background()))
}

func TestReminderService_StartStopsOnCancel(t *testing.T) {
	s := NewReminderService(stubSummary{}, "@every 1h", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("reminder service did not stop")
	}
}
