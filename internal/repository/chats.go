package repository

import "sync"

type Chats interface {
	Add(chatID int64, userID string)
	Remove(chatID int64)
	All() map[int64]string
}

// ChatsLocalStorage keeps recap subscriptions in memory, chat id to user id.
// Losing them on restart only means the user sends /recap again.
type ChatsLocalStorage struct {
	mu sync.RWMutex
	m  map[int64]string
}

func NewChatsLocalStorage() *ChatsLocalStorage {
	return &ChatsLocalStorage{
		m: make(map[int64]string),
	}
}

func (l *ChatsLocalStorage) Add(chatID int64, userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.m[chatID] = userID
}

func (l *ChatsLocalStorage) Remove(chatID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.m, chatID)
}

// All returns a copy, safe to iterate while subscriptions change.
func (l *ChatsLocalStorage) All() map[int64]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m := make(map[int64]string, len(l.m))
	for chatID, userID := range l.m {
		m[chatID] = userID
	}
	return m
}
