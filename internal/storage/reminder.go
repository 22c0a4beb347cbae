package storage

import (
	"sync"
	"time"
)

// Message points at a message the bot has sent.
type Message struct {
	ChatID    int64
	MessageID int
	SentAt    time.Time
}

// ReminderStorage remembers the last reminder sent to each chat so it can be
// removed when the next one goes out.
type ReminderStorage struct {
	mu       sync.RWMutex
	messages map[int64]Message
}

func NewReminderStorage() *ReminderStorage {
	return &ReminderStorage{
		messages: make(map[int64]Message),
	}
}

func (s *ReminderStorage) Get(chatID int64) (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[chatID]
	return msg, ok
}

func (s *ReminderStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, chatID)
}

// UpsertAndGetPrev records messageID as the latest reminder for chatID and
// returns the one it replaces.
func (s *ReminderStorage) UpsertAndGetPrev(chatID int64, messageID int) (prev Message, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.messages[chatID]

	s.messages[chatID] = Message{
		ChatID:    chatID,
		MessageID: messageID,
		SentAt:    time.Now(),
	}

	return prev, hadPrev
}
