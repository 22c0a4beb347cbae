package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReminderStorage_UpsertAndGetPrev(t *testing.T) {
	s := NewReminderStorage()

	_, had := s.UpsertAndGetPrev(42, 100)
	assert.False(t, had)

	prev, had := s.UpsertAndGetPrev(42, 101)
	assert.True(t, had)
	assert.Equal(t, 100, prev.MessageID)
	assert.Equal(t, int64(42), prev.ChatID)

	cur, ok := s.Get(42)
	assert.True(t, ok)
	assert.Equal(t, 101, cur.MessageID)

	s.Delete(42)
	_, ok = s.Get(42)
	assert.False(t, ok)
}

func TestCardStorage(t *testing.T) {
	s := NewCardStorage()

	_, ok := s.Get(7)
	assert.False(t, ok)

	s.Store(7, 11)
	s.Store(7, 12)

	msg, ok := s.Get(7)
	assert.True(t, ok)
	assert.Equal(t, 12, msg.MessageID)

	s.Delete(7)
	_, ok = s.Get(7)
	assert.False(t, ok)
}
