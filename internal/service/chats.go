package service

import (
	"moneytracker/internal/repository"
)

// Chats tracks which chats receive the end-of-day recap.
type Chats interface {
	Subscribe(chatID int64, userID string)
	Unsubscribe(chatID int64)
	Subscribers() map[int64]string
}

type chats struct {
	repo repository.Chats
}

func NewChats(repo repository.Chats) *chats {
	return &chats{
		repo: repo,
	}
}

func (c *chats) Subscribe(chatID int64, userID string) {
	c.repo.Add(chatID, userID)
}

func (c *chats) Unsubscribe(chatID int64) {
	c.repo.Remove(chatID)
}

func (c *chats) Subscribers() map[int64]string {
	return c.repo.All()
}
