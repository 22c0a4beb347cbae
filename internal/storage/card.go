package storage

import (
	"sync"
	"time"
)

// CardStorage tracks the message that shows the current review card in each
// chat, so the bot can edit it or strip its buttons when the card changes.
type CardStorage struct {
	mu    sync.RWMutex
	cards map[int64]Message
}

// NewCardStorage creates a new CardStorage.
func NewCardStorage() *CardStorage {
	return &CardStorage{
		cards: make(map[int64]Message),
	}
}

// Store saves messageID as the active card of chatID.
func (s *CardStorage) Store(chatID int64, messageID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[chatID] = Message{ChatID: chatID, MessageID: messageID, SentAt: time.Now()}
}

// Get returns the active card message of chatID.
func (s *CardStorage) Get(chatID int64) (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msg, ok := s.cards[chatID]
	return msg, ok
}

// Delete forgets the active card of chatID.
func (s *CardStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cards, chatID)
}
